package bot

import (
	"context"
	"repo-welcome-bot/internal/domain"

	"github.com/google/go-github/v68/github"
	"github.com/slack-go/slack"
)

// CommentPoster posts a comment on an issue or pull request thread.
type CommentPoster interface {
	PostComment(ctx context.Context, repo domain.RepositoryIdentity, number int, body string) error
}

// Notifier delivers a message to the team chat channel.
type Notifier interface {
	Notify(ctx context.Context, message *slack.WebhookMessage) error
}

// GithubCommentPoster posts comments through the issue-comment endpoint.
// Pull request comments go through the same endpoint keyed by PR number.
type GithubCommentPoster struct {
	Client *github.Client
}

func (p *GithubCommentPoster) PostComment(ctx context.Context, repo domain.RepositoryIdentity, number int, body string) error {
	comment := &github.IssueComment{Body: github.Ptr(body)}
	_, _, err := p.Client.Issues.CreateComment(ctx, repo.OwnerLogin, repo.RepoName, number, comment)
	return err
}

// SlackNotifier posts to a Slack incoming webhook.
type SlackNotifier struct {
	WebhookURL string
}

func (n *SlackNotifier) Notify(ctx context.Context, message *slack.WebhookMessage) error {
	return slack.PostWebhookContext(ctx, n.WebhookURL, message)
}
