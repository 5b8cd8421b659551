package domain

import "strings"

// EventType identifies one webhook event kind, qualified by its action
// where GitHub distinguishes actions within an event.
type EventType string

const (
	IssueOpened                   EventType = "issues.opened"
	IssueClosed                   EventType = "issues.closed"
	PullRequestOpened             EventType = "pull_request.opened"
	PullRequestClosed             EventType = "pull_request.closed"
	PullRequestEdited             EventType = "pull_request.edited"
	PullRequestReadyForReview     EventType = "pull_request.ready_for_review"
	StarCreated                   EventType = "star.created"
	StarDeleted                   EventType = "star.deleted"
	ForkCreated                   EventType = "fork"
	LabelCreated                  EventType = "label.created"
	InstallationCreated           EventType = "installation.created"
	InstallationRepositoriesAdded EventType = "installation_repositories.added"
	RepositoryCreated             EventType = "repository.created"
	Push                          EventType = "push"
)

// Event is one parsed webhook delivery. Each implementation carries only
// the fields its event kind guarantees; deliveries missing required fields
// are rejected at the transport boundary and never become Events.
type Event interface {
	Type() EventType
}

// RepositoryIdentity names the repository an event belongs to.
type RepositoryIdentity struct {
	OwnerLogin string
	RepoName   string
	FullName   string
}

// RepositoryIdentityFromFullName splits an "owner/repo" name into its
// halves, keeping the original full name alongside.
func RepositoryIdentityFromFullName(fullName string) RepositoryIdentity {
	owner, repo, _ := strings.Cut(fullName, "/")
	return RepositoryIdentity{
		OwnerLogin: owner,
		RepoName:   repo,
		FullName:   fullName,
	}
}

// IssueEvent covers issues.opened and issues.closed.
type IssueEvent struct {
	Kind        EventType
	Repo        RepositoryIdentity
	AuthorLogin string
	Number      int
}

func (e IssueEvent) Type() EventType { return e.Kind }

// PullRequestEvent covers the four pull request transitions. Comments on
// pull requests go through the issue-comment endpoint, so Number is the
// thread identifier for both.
type PullRequestEvent struct {
	Kind        EventType
	Repo        RepositoryIdentity
	AuthorLogin string
	Number      int
}

func (e PullRequestEvent) Type() EventType { return e.Kind }

// StarEvent covers star.created and star.deleted.
type StarEvent struct {
	Kind        EventType
	Repo        RepositoryIdentity
	RepoURL     string
	SenderLogin string
	SenderURL   string
}

func (e StarEvent) Type() EventType { return e.Kind }

// ForkEvent announces a new fork of one of the watched repositories.
// Ownership here is the forkee's owner, not the upstream repository owner.
type ForkEvent struct {
	ForkOwnerLogin   string
	UpstreamFullName string
}

func (ForkEvent) Type() EventType { return ForkCreated }

// LabelEvent carries the label name and the thread the triggering issue or
// pull request lives on.
type LabelEvent struct {
	LabelName   string
	Repo        RepositoryIdentity
	IssueNumber int
}

func (LabelEvent) Type() EventType { return LabelCreated }

// InstallationEvent covers installation.created and
// installation_repositories.added. RepoNames lists the affected
// repositories in delivery order.
type InstallationEvent struct {
	Kind         EventType
	AccountLogin string
	RepoNames    []string
}

func (e InstallationEvent) Type() EventType { return e.Kind }

// RepositoryCreatedEvent announces a freshly created repository.
type RepositoryCreatedEvent struct {
	OwnerLogin string
	RepoName   string
}

func (RepositoryCreatedEvent) Type() EventType { return RepositoryCreated }

// PushEvent is part of the subscription surface but triggers nothing.
type PushEvent struct{}

func (PushEvent) Type() EventType { return Push }
