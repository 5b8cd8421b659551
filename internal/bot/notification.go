package bot

import (
	"fmt"
	"repo-welcome-bot/internal/domain"

	"github.com/lithammer/shortuuid/v4"
	"github.com/slack-go/slack"
)

const (
	starAvatarURL   = "https://api.dicebear.com/5.x/thumbs/svg?seed=%s"
	unstarAvatarURL = "https://api.dicebear.com/5.x/micah/svg?seed=%s&mouth=frown,nervous,sad,surprised"

	buttonActionID = "button-action"
	buttonValue    = "click_me_123"
)

// BuildNotification composes the Slack message for an event, or nil for
// event kinds that never notify. Star events get a rich Block Kit message;
// everything else is plain text. Building is pure; sending is the
// dispatcher's job.
func BuildNotification(event domain.Event) *slack.WebhookMessage {
	switch e := event.(type) {
	case domain.IssueEvent:
		if e.Kind != domain.IssueOpened {
			return nil
		}
		return textMessage(fmt.Sprintf("New issue opened by %s in %s", e.AuthorLogin, e.Repo.FullName))
	case domain.StarEvent:
		return starMessage(e)
	case domain.ForkEvent:
		return textMessage(fmt.Sprintf("New fork created by %s of %s", e.ForkOwnerLogin, e.UpstreamFullName))
	case domain.InstallationEvent:
		if len(e.RepoNames) == 0 {
			return nil
		}
		// Only the first affected repository is announced, even when the
		// installation covers several.
		if e.Kind == domain.InstallationRepositoriesAdded {
			return textMessage(fmt.Sprintf("New repository added by %s in %s", e.AccountLogin, e.RepoNames[0]))
		}
		return textMessage(fmt.Sprintf("New installation created by %s in %s", e.AccountLogin, e.RepoNames[0]))
	case domain.RepositoryCreatedEvent:
		return textMessage(fmt.Sprintf("New repository created by %s in %s", e.OwnerLogin, e.RepoName))
	default:
		return nil
	}
}

func textMessage(text string) *slack.WebhookMessage {
	return &slack.WebhookMessage{Text: text}
}

// starMessage builds the block-style announcement for a starred or
// unstarred repository: a section with a generated avatar, a divider, and
// two link buttons pointing at the repository and the sender's profile.
// The avatar seed is a fresh token per message, so every announcement gets
// a different face; unstar avatars draw from the unhappy mouth set.
func starMessage(e domain.StarEvent) *slack.WebhookMessage {
	var text, avatarURL string
	if e.Kind == domain.StarDeleted {
		text = fmt.Sprintf("Star removed! :star: \n The %s repository in the %s organization lost a star from %s! :cry: ",
			e.Repo.OwnerLogin, e.Repo.RepoName, e.SenderLogin)
		avatarURL = fmt.Sprintf(unstarAvatarURL, shortuuid.New())
	} else {
		text = fmt.Sprintf("New star created! :star: \n The %s repository in the %s organization was just starred by %s! :tada: ",
			e.Repo.OwnerLogin, e.Repo.RepoName, e.SenderLogin)
		avatarURL = fmt.Sprintf(starAvatarURL, shortuuid.New())
	}

	announcement := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, text, false, false),
		nil,
		slack.NewAccessory(slack.NewImageBlockElement(avatarURL, "image")),
	)

	repoButton := slack.NewButtonBlockElement(buttonActionID, buttonValue,
		slack.NewTextBlockObject(slack.PlainTextType, e.Repo.OwnerLogin, true, false))
	repoButton.URL = e.RepoURL
	repoSection := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, "View the repository.", false, false),
		nil,
		slack.NewAccessory(repoButton),
	)

	senderButton := slack.NewButtonBlockElement(buttonActionID, buttonValue,
		slack.NewTextBlockObject(slack.PlainTextType, e.SenderLogin, true, false))
	senderButton.URL = e.SenderURL
	senderSection := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, "View the user.", false, false),
		nil,
		slack.NewAccessory(senderButton),
	)

	return &slack.WebhookMessage{
		Blocks: &slack.Blocks{
			BlockSet: []slack.Block{
				announcement,
				slack.NewDividerBlock(),
				repoSection,
				senderSection,
			},
		},
	}
}
