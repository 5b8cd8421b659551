package bot

import (
	"context"
	"repo-welcome-bot/internal/domain"
	"sync"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

type handlerFunc func(ctx context.Context, event domain.Event)

// Dispatcher routes each parsed event to its handler. Handlers run the
// allow-list check first where it applies, then issue the comment post and
// the chat notification as independent concurrent calls; a failure in one
// never suppresses the other, and nothing is retried.
type Dispatcher struct {
	comments CommentPoster
	notifier Notifier
	logger   *zap.Logger
	handlers map[domain.EventType]handlerFunc
}

func NewDispatcher(comments CommentPoster, notifier Notifier, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		comments: comments,
		notifier: notifier,
		logger:   logger,
	}
	d.handlers = map[domain.EventType]handlerFunc{
		domain.IssueOpened:                   d.handleIssue,
		domain.IssueClosed:                   d.handleIssue,
		domain.PullRequestOpened:             d.handlePullRequest,
		domain.PullRequestClosed:             d.handlePullRequest,
		domain.PullRequestEdited:             d.handlePullRequest,
		domain.PullRequestReadyForReview:     d.handlePullRequest,
		domain.StarCreated:                   d.handleStar,
		domain.StarDeleted:                   d.handleStar,
		domain.ForkCreated:                   d.handleNotifyOnly,
		domain.LabelCreated:                  d.handleLabel,
		domain.InstallationCreated:           d.handleNotifyOnly,
		domain.InstallationRepositoriesAdded: d.handleNotifyOnly,
		domain.RepositoryCreated:             d.handleNotifyOnly,
		domain.Push:                          d.handlePush,
	}
	return d
}

// Dispatch runs the handler for one event. Events are independent; no
// ordering is guaranteed between deliveries, even for the same thread.
func (d *Dispatcher) Dispatch(ctx context.Context, event domain.Event) {
	handler, ok := d.handlers[event.Type()]
	if !ok {
		d.logger.Warn("no handler for event type", zap.String("event", string(event.Type())))
		return
	}
	handler(ctx, event)
}

func (d *Dispatcher) handleIssue(ctx context.Context, event domain.Event) {
	e, ok := event.(domain.IssueEvent)
	if !ok {
		d.unexpectedPayload(event)
		return
	}
	if !IsAllowedOwner(e.Repo.OwnerLogin) {
		return
	}
	d.send(ctx, e.Repo, e.Number, TemplateFor(e.Kind), BuildNotification(e))
}

func (d *Dispatcher) handlePullRequest(ctx context.Context, event domain.Event) {
	e, ok := event.(domain.PullRequestEvent)
	if !ok {
		d.unexpectedPayload(event)
		return
	}
	if !IsAllowedOwner(e.Repo.OwnerLogin) {
		return
	}
	d.send(ctx, e.Repo, e.Number, TemplateFor(e.Kind), BuildNotification(e))
}

func (d *Dispatcher) handleStar(ctx context.Context, event domain.Event) {
	e, ok := event.(domain.StarEvent)
	if !ok {
		d.unexpectedPayload(event)
		return
	}
	if !IsAllowedOwner(e.Repo.OwnerLogin) {
		return
	}
	d.send(ctx, e.Repo, 0, "", BuildNotification(e))
}

func (d *Dispatcher) handleLabel(ctx context.Context, event domain.Event) {
	e, ok := event.(domain.LabelEvent)
	if !ok {
		d.unexpectedPayload(event)
		return
	}
	body := LabelTemplateFor(e.LabelName)
	if body == "" {
		return
	}
	d.send(ctx, e.Repo, e.IssueNumber, body, nil)
}

// handleNotifyOnly covers the unfiltered announce-only events: forks,
// installations and new repositories.
func (d *Dispatcher) handleNotifyOnly(ctx context.Context, event domain.Event) {
	d.send(ctx, domain.RepositoryIdentity{}, 0, "", BuildNotification(event))
}

func (d *Dispatcher) handlePush(ctx context.Context, event domain.Event) {
	// Push is subscribed but intentionally inert.
	d.logger.Debug("push event received")
}

// send issues the comment post and the chat notification concurrently and
// waits for both. Either may be absent.
func (d *Dispatcher) send(ctx context.Context, repo domain.RepositoryIdentity, number int, body string, message *slack.WebhookMessage) {
	var wg sync.WaitGroup
	if body != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := d.comments.PostComment(ctx, repo, number, body); err != nil {
				d.logger.Error("failed to post comment",
					zap.String("repo", repo.FullName),
					zap.Int("number", number),
					zap.Error(err))
			}
		}()
	}
	if message != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := d.notifier.Notify(ctx, message); err != nil {
				d.logger.Error("failed to send chat notification", zap.Error(err))
			}
		}()
	}
	wg.Wait()
}

func (d *Dispatcher) unexpectedPayload(event domain.Event) {
	d.logger.Error("event payload does not match its type",
		zap.String("event", string(event.Type())))
}
