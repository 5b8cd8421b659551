package routes

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"repo-welcome-bot/internal/domain"
	"repo-welcome-bot/internal/web"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testSecret = []byte("it's a secret to everybody")

type fakeDispatcher struct {
	events []domain.Event
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, event domain.Event) {
	f.events = append(f.events, event)
}

func signBody(body []byte) string {
	mac := hmac.New(sha256.New, testSecret)
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func deliverWebhook(t *testing.T, dispatcher EventDispatcher, eventType string, body string, signature string) *httptest.ResponseRecorder {
	t.Helper()

	controller := &WebhookController{Dispatcher: dispatcher, WebhookSecret: testSecret}

	req := httptest.NewRequest(http.MethodPost, "/webhook/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("X-GitHub-Event", eventType)
	req.Header.Set("X-Hub-Signature-256", signature)
	rec := httptest.NewRecorder()

	e := echo.New()
	cc := &web.AppContext{Context: e.NewContext(req, rec), AppLogger: zap.NewNop()}
	require.NoError(t, controller.HandleWebhook(cc))

	return rec
}

func TestWebhookRejectsInvalidSignature(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	body := `{"action":"opened"}`

	rec := deliverWebhook(t, dispatcher, "issues", body, "sha256="+strings.Repeat("0", 64))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, dispatcher.events)
}

func TestWebhookParsesIssueOpened(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	body := `{
		"action": "opened",
		"issue": {"number": 42, "user": {"login": "octocat"}},
		"repository": {"full_name": "fairdataihub/sodaforsparc"}
	}`

	rec := deliverWebhook(t, dispatcher, "issues", body, signBody([]byte(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, dispatcher.events, 1)
	event, ok := dispatcher.events[0].(domain.IssueEvent)
	require.True(t, ok)
	assert.Equal(t, domain.IssueOpened, event.Kind)
	assert.Equal(t, "fairdataihub", event.Repo.OwnerLogin)
	assert.Equal(t, "sodaforsparc", event.Repo.RepoName)
	assert.Equal(t, "octocat", event.AuthorLogin)
	assert.Equal(t, 42, event.Number)
}

func TestWebhookParsesPullRequestReadyForReview(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	body := `{
		"action": "ready_for_review",
		"pull_request": {"number": 133, "user": {"login": "octocat"}},
		"repository": {"full_name": "misanlab/sparclink"}
	}`

	rec := deliverWebhook(t, dispatcher, "pull_request", body, signBody([]byte(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, dispatcher.events, 1)
	event, ok := dispatcher.events[0].(domain.PullRequestEvent)
	require.True(t, ok)
	assert.Equal(t, domain.PullRequestReadyForReview, event.Kind)
	assert.Equal(t, 133, event.Number)
}

func TestWebhookParsesStarCreated(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	body := `{
		"action": "created",
		"repository": {
			"full_name": "fairdataihub/sodaforsparc",
			"html_url": "https://github.com/fairdataihub/sodaforsparc"
		},
		"sender": {"login": "octocat", "html_url": "https://github.com/octocat"}
	}`

	rec := deliverWebhook(t, dispatcher, "star", body, signBody([]byte(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, dispatcher.events, 1)
	event, ok := dispatcher.events[0].(domain.StarEvent)
	require.True(t, ok)
	assert.Equal(t, domain.StarCreated, event.Kind)
	assert.Equal(t, "https://github.com/fairdataihub/sodaforsparc", event.RepoURL)
	assert.Equal(t, "octocat", event.SenderLogin)
	assert.Equal(t, "https://github.com/octocat", event.SenderURL)
}

func TestWebhookParsesLabelCreatedWithIssueNumber(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	body := `{
		"action": "created",
		"label": {"name": "bug"},
		"issue": {"number": 9},
		"repository": {"full_name": "fairdataihub/sodaforsparc"}
	}`

	rec := deliverWebhook(t, dispatcher, "label", body, signBody([]byte(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, dispatcher.events, 1)
	event, ok := dispatcher.events[0].(domain.LabelEvent)
	require.True(t, ok)
	assert.Equal(t, "bug", event.LabelName)
	assert.Equal(t, 9, event.IssueNumber)
}

func TestWebhookParsesInstallationRepositoriesAdded(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	body := `{
		"action": "added",
		"installation": {"account": {"login": "fairdataihub"}},
		"repositories_added": [{"name": "first"}, {"name": "second"}]
	}`

	rec := deliverWebhook(t, dispatcher, "installation_repositories", body, signBody([]byte(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, dispatcher.events, 1)
	event, ok := dispatcher.events[0].(domain.InstallationEvent)
	require.True(t, ok)
	assert.Equal(t, domain.InstallationRepositoriesAdded, event.Kind)
	assert.Equal(t, "fairdataihub", event.AccountLogin)
	assert.Equal(t, []string{"first", "second"}, event.RepoNames)
}

func TestWebhookParsesPush(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	body := `{"ref": "refs/heads/main", "commits": []}`

	rec := deliverWebhook(t, dispatcher, "push", body, signBody([]byte(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, dispatcher.events, 1)
	assert.Equal(t, domain.Push, dispatcher.events[0].Type())
}

func TestWebhookIgnoresUnhandledAction(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	body := `{
		"action": "pinned",
		"issue": {"number": 42, "user": {"login": "octocat"}},
		"repository": {"full_name": "fairdataihub/sodaforsparc"}
	}`

	rec := deliverWebhook(t, dispatcher, "issues", body, signBody([]byte(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, dispatcher.events)
}

func TestWebhookAcknowledgesMalformedPayload(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	// A label delivery without the issue the comment would target.
	body := `{"action": "created", "label": {"name": "bug"}}`

	rec := deliverWebhook(t, dispatcher, "label", body, signBody([]byte(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, dispatcher.events)
}
