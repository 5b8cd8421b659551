package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"repo-welcome-bot/internal/domain"
	"repo-welcome-bot/internal/web"

	"github.com/google/go-github/v68/github"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// EventDispatcher routes one parsed event to its handler.
type EventDispatcher interface {
	Dispatch(ctx context.Context, event domain.Event)
}

type WebhookController struct {
	Dispatcher    EventDispatcher
	WebhookSecret []byte
}

var issueEventKinds = map[string]domain.EventType{
	"opened": domain.IssueOpened,
	"closed": domain.IssueClosed,
}

var pullRequestEventKinds = map[string]domain.EventType{
	"opened":           domain.PullRequestOpened,
	"closed":           domain.PullRequestClosed,
	"edited":           domain.PullRequestEdited,
	"ready_for_review": domain.PullRequestReadyForReview,
}

var starEventKinds = map[string]domain.EventType{
	"created": domain.StarCreated,
	"deleted": domain.StarDeleted,
}

func (controller *WebhookController) Healthcheck(e echo.Context) error {
	return e.String(http.StatusOK, "ok")
}

// HandleWebhook verifies, parses and dispatches one delivery. Malformed
// payloads are logged and still acknowledged with 200: GitHub redelivers
// anything else, and a bad delivery will not get better on retry.
func (controller *WebhookController) HandleWebhook(e echo.Context) error {
	cc := e.(*web.AppContext)
	r := e.Request()

	payload, err := github.ValidatePayload(r, controller.WebhookSecret)
	if err != nil {
		cc.AppLogger.Warn("rejected webhook delivery", zap.Error(err))
		return e.NoContent(http.StatusUnauthorized)
	}

	webhookType := github.WebHookType(r)
	event, err := controller.parseEvent(webhookType, payload)
	if err != nil {
		cc.AppLogger.Error("failed to parse webhook payload",
			zap.String("event", webhookType),
			zap.Error(err))
		return e.NoContent(http.StatusOK)
	}
	if event == nil {
		// Recognized delivery, but not an event/action this bot acts on.
		return e.NoContent(http.StatusOK)
	}

	cc.AppLogger.Info("webhook received", zap.String("event", string(event.Type())))
	controller.Dispatcher.Dispatch(r.Context(), event)

	return e.NoContent(http.StatusOK)
}

// labelEventPayload is decoded by hand because go-github's LabelEvent does
// not expose the issue the label was applied to, which comment targeting
// needs.
type labelEventPayload struct {
	Action string `json:"action"`
	Label  struct {
		Name string `json:"name"`
	} `json:"label"`
	Issue struct {
		Number int `json:"number"`
	} `json:"issue"`
	Repository struct {
		FullName string `json:"full_name"`
	} `json:"repository"`
}

// parseEvent maps a delivery onto the domain event for its kind, returning
// (nil, nil) for event types and actions the bot does not subscribe to and
// an error when a required field is missing.
func (controller *WebhookController) parseEvent(webhookType string, payload []byte) (domain.Event, error) {
	if webhookType == "label" {
		return parseLabelEvent(payload)
	}

	parsed, err := github.ParseWebHook(webhookType, payload)
	if err != nil {
		return nil, err
	}

	switch event := parsed.(type) {
	case *github.IssuesEvent:
		kind, ok := issueEventKinds[event.GetAction()]
		if !ok {
			return nil, nil
		}
		if event.GetRepo().GetFullName() == "" || event.GetIssue() == nil {
			return nil, fmt.Errorf("issues event missing repository or issue")
		}
		return domain.IssueEvent{
			Kind:        kind,
			Repo:        domain.RepositoryIdentityFromFullName(event.GetRepo().GetFullName()),
			AuthorLogin: event.GetIssue().GetUser().GetLogin(),
			Number:      event.GetIssue().GetNumber(),
		}, nil

	case *github.PullRequestEvent:
		kind, ok := pullRequestEventKinds[event.GetAction()]
		if !ok {
			return nil, nil
		}
		if event.GetRepo().GetFullName() == "" || event.GetPullRequest() == nil {
			return nil, fmt.Errorf("pull request event missing repository or pull request")
		}
		return domain.PullRequestEvent{
			Kind:        kind,
			Repo:        domain.RepositoryIdentityFromFullName(event.GetRepo().GetFullName()),
			AuthorLogin: event.GetPullRequest().GetUser().GetLogin(),
			Number:      event.GetPullRequest().GetNumber(),
		}, nil

	case *github.StarEvent:
		kind, ok := starEventKinds[event.GetAction()]
		if !ok {
			return nil, nil
		}
		if event.GetRepo().GetFullName() == "" || event.GetSender() == nil {
			return nil, fmt.Errorf("star event missing repository or sender")
		}
		return domain.StarEvent{
			Kind:        kind,
			Repo:        domain.RepositoryIdentityFromFullName(event.GetRepo().GetFullName()),
			RepoURL:     event.GetRepo().GetHTMLURL(),
			SenderLogin: event.GetSender().GetLogin(),
			SenderURL:   event.GetSender().GetHTMLURL(),
		}, nil

	case *github.ForkEvent:
		if event.GetForkee().GetOwner().GetLogin() == "" || event.GetRepo().GetFullName() == "" {
			return nil, fmt.Errorf("fork event missing forkee owner or repository")
		}
		return domain.ForkEvent{
			ForkOwnerLogin:   event.GetForkee().GetOwner().GetLogin(),
			UpstreamFullName: event.GetRepo().GetFullName(),
		}, nil

	case *github.InstallationEvent:
		if event.GetAction() != "created" {
			return nil, nil
		}
		account := event.GetInstallation().GetAccount().GetLogin()
		if account == "" {
			return nil, fmt.Errorf("installation event missing account login")
		}
		return domain.InstallationEvent{
			Kind:         domain.InstallationCreated,
			AccountLogin: account,
			RepoNames:    repositoryNames(event.Repositories),
		}, nil

	case *github.InstallationRepositoriesEvent:
		if event.GetAction() != "added" {
			return nil, nil
		}
		account := event.GetInstallation().GetAccount().GetLogin()
		if account == "" {
			return nil, fmt.Errorf("installation repositories event missing account login")
		}
		return domain.InstallationEvent{
			Kind:         domain.InstallationRepositoriesAdded,
			AccountLogin: account,
			RepoNames:    repositoryNames(event.RepositoriesAdded),
		}, nil

	case *github.RepositoryEvent:
		if event.GetAction() != "created" {
			return nil, nil
		}
		if event.GetRepo().GetOwner().GetLogin() == "" || event.GetRepo().GetName() == "" {
			return nil, fmt.Errorf("repository event missing owner or name")
		}
		return domain.RepositoryCreatedEvent{
			OwnerLogin: event.GetRepo().GetOwner().GetLogin(),
			RepoName:   event.GetRepo().GetName(),
		}, nil

	case *github.PushEvent:
		return domain.PushEvent{}, nil

	default:
		return nil, nil
	}
}

func parseLabelEvent(payload []byte) (domain.Event, error) {
	var event labelEventPayload
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, err
	}
	if event.Action != "created" {
		return nil, nil
	}
	if event.Label.Name == "" || event.Issue.Number == 0 || event.Repository.FullName == "" {
		return nil, fmt.Errorf("label event missing label name, issue number or repository")
	}
	return domain.LabelEvent{
		LabelName:   event.Label.Name,
		Repo:        domain.RepositoryIdentityFromFullName(event.Repository.FullName),
		IssueNumber: event.Issue.Number,
	}, nil
}

func repositoryNames(repos []*github.Repository) []string {
	names := make([]string, 0, len(repos))
	for _, repo := range repos {
		names = append(names, repo.GetName())
	}
	return names
}
