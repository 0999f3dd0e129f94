package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vikunja-voice-assistant/internal/model"
	"vikunja-voice-assistant/internal/task/repository"
	"vikunja-voice-assistant/pkg/openai"
)

// mockLogger discards all log output.
type mockLogger struct{}

func (mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (mockLogger) Info(ctx context.Context, args ...any)                   {}
func (mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (mockLogger) Error(ctx context.Context, args ...any)                  {}
func (mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

// mockVikunjaRepo counts calls and returns canned data per method.
type mockVikunjaRepo struct {
	projects []model.Project
	labels   []model.Label
	users    []model.User

	projectsErr error
	labelsErr   error
	createErr   error

	createdLabel model.Label
	created      repository.CreatedTask

	getProjectsCalls int
	getLabelsCalls   int
	createTaskCalls  int
	createLabelCalls int
	attachLabelCalls int
	assignUserCalls  int

	lastDraft     model.TaskDraft
	attachedIDs   []int64
	assignedUsers []int64
}

func (m *mockVikunjaRepo) GetProjects(ctx context.Context) ([]model.Project, error) {
	m.getProjectsCalls++
	return m.projects, m.projectsErr
}

func (m *mockVikunjaRepo) GetLabels(ctx context.Context) ([]model.Label, error) {
	m.getLabelsCalls++
	return m.labels, m.labelsErr
}

func (m *mockVikunjaRepo) CreateLabel(ctx context.Context, title string) (model.Label, error) {
	m.createLabelCalls++
	return m.createdLabel, nil
}

func (m *mockVikunjaRepo) CreateTask(ctx context.Context, draft model.TaskDraft) (repository.CreatedTask, error) {
	m.createTaskCalls++
	m.lastDraft = draft
	if m.createErr != nil {
		return repository.CreatedTask{}, m.createErr
	}
	if m.created.Title == "" {
		return repository.CreatedTask{ID: 101, Title: draft.Title}, nil
	}
	return m.created, nil
}

func (m *mockVikunjaRepo) AttachLabel(ctx context.Context, taskID, labelID int64) error {
	m.attachLabelCalls++
	m.attachedIDs = append(m.attachedIDs, labelID)
	return nil
}

func (m *mockVikunjaRepo) AssignUser(ctx context.Context, taskID, userID int64) error {
	m.assignUserCalls++
	m.assignedUsers = append(m.assignedUsers, userID)
	return nil
}

func (m *mockVikunjaRepo) CollectUsers(ctx context.Context) ([]model.User, error) {
	return m.users, nil
}

func (m *mockVikunjaRepo) TestConnection(ctx context.Context) error {
	return nil
}

// mockUserProvider serves a fixed snapshot.
type mockUserProvider struct {
	users []model.User
}

func (m *mockUserProvider) CurrentUsers() []model.User {
	return m.users
}

// newLLMServer returns an OpenAI client wired to an httptest server whose
// assistant reply is the given content. Close the server when done.
func newLLMServer(t *testing.T, content string) (*openai.Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := openai.Response{
			ID: "chatcmpl-test",
			Choices: []openai.Choice{
				{Message: openai.Message{Role: "assistant", Content: content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))

	client, err := openai.New(openai.Config{APIKey: "test-key", BaseURL: ts.URL})
	if err != nil {
		ts.Close()
		t.Fatalf("openai.New() error = %v", err)
	}
	return client, ts
}

func testBackend() Backend {
	return Backend{
		VikunjaURL:      "http://vikunja.local",
		VikunjaAPIToken: "token",
		OpenAIAPIKey:    "key",
	}
}
