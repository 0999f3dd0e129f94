package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vikunja-voice-assistant/internal/model"
	"vikunja-voice-assistant/internal/task"
	"vikunja-voice-assistant/pkg/openai"
)

func TestResolve_Success(t *testing.T) {
	llm, ts := newLLMServer(t, `{"title": "Pick up groceries", "project_id": 1, "due_date": "2030-06-09T12:00:00Z"}`)
	defer ts.Close()

	repo := &mockVikunjaRepo{
		projects: []model.Project{{ID: 1, Title: "Inbox"}},
	}
	uc := New(mockLogger{}, llm, repo, &mockUserProvider{}, testBackend(), task.Settings{
		DefaultDueDate:   "none",
		DefaultProjectID: 1,
	})

	out := uc.Resolve(context.Background(), task.ResolveInput{Description: "Reminder to pick up groceries tomorrow"})

	if !out.Success {
		t.Fatalf("Success = false, message = %q", out.Message)
	}
	if out.TaskTitle != "Pick up groceries" {
		t.Errorf("TaskTitle = %q", out.TaskTitle)
	}
	if out.Message != task.MsgSuccessPrefix+"Pick up groceries" {
		t.Errorf("Message = %q", out.Message)
	}
	if repo.createTaskCalls != 1 {
		t.Errorf("createTaskCalls = %d, want 1", repo.createTaskCalls)
	}
	if repo.getProjectsCalls != 1 {
		t.Errorf("getProjectsCalls = %d, want 1", repo.getProjectsCalls)
	}
	if repo.lastDraft.DueDate != "2030-06-09T12:00:00Z" {
		t.Errorf("draft due date = %q", repo.lastDraft.DueDate)
	}
}

func TestResolve_RecurringTask(t *testing.T) {
	llm, ts := newLLMServer(t, `{"title": "Take vitamins", "project_id": 1, "repeat_after": 86400}`)
	defer ts.Close()

	repo := &mockVikunjaRepo{projects: []model.Project{{ID: 1, Title: "Inbox"}}}
	uc := New(mockLogger{}, llm, repo, &mockUserProvider{}, testBackend(), task.Settings{DefaultProjectID: 1})

	out := uc.Resolve(context.Background(), task.ResolveInput{Description: "Take vitamins daily"})

	if !out.Success {
		t.Fatalf("Success = false, message = %q", out.Message)
	}
	if repo.lastDraft.RepeatAfter != 86400 {
		t.Errorf("draft repeat_after = %d, want 86400", repo.lastDraft.RepeatAfter)
	}
	if repo.lastDraft.DueDate != "" {
		t.Errorf("draft due date = %q, want empty", repo.lastDraft.DueDate)
	}
}

func TestResolve_EmptyInput(t *testing.T) {
	repo := &mockVikunjaRepo{}
	uc := New(mockLogger{}, nil, repo, &mockUserProvider{}, testBackend(), task.Settings{})

	for _, desc := range []string{"", "   ", "\n\t"} {
		out := uc.Resolve(context.Background(), task.ResolveInput{Description: desc})
		if out.Success {
			t.Errorf("Success = true for input %q", desc)
		}
		if out.Message != task.MsgEmptyInput {
			t.Errorf("Message = %q", out.Message)
		}
		if out.TaskTitle != "" {
			t.Errorf("TaskTitle = %q, want empty", out.TaskTitle)
		}
	}

	if repo.getProjectsCalls != 0 || repo.createTaskCalls != 0 {
		t.Error("blank input must not reach any collaborator")
	}
}

func TestResolve_MissingConfig(t *testing.T) {
	repo := &mockVikunjaRepo{}
	uc := New(mockLogger{}, nil, repo, &mockUserProvider{}, Backend{VikunjaURL: "http://vikunja.local"}, task.Settings{})

	out := uc.Resolve(context.Background(), task.ResolveInput{Description: "buy milk"})

	if out.Success {
		t.Error("Success = true with incomplete backend config")
	}
	if out.Message != task.MsgConfigError {
		t.Errorf("Message = %q", out.Message)
	}
	if repo.getProjectsCalls != 0 {
		t.Error("incomplete config must not reach the repository")
	}
}

func TestResolve_LLMUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	llm, err := openai.New(openai.Config{APIKey: "test-key", BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("openai.New() error = %v", err)
	}

	repo := &mockVikunjaRepo{projects: []model.Project{{ID: 1, Title: "Inbox"}}}
	uc := New(mockLogger{}, llm, repo, &mockUserProvider{}, testBackend(), task.Settings{DefaultProjectID: 1})

	out := uc.Resolve(context.Background(), task.ResolveInput{Description: "buy milk"})

	if out.Success {
		t.Error("Success = true despite LLM failure")
	}
	if out.Message != task.MsgLLMConnError {
		t.Errorf("Message = %q", out.Message)
	}
	if repo.createTaskCalls != 0 {
		t.Error("no task may be created when the completion fails")
	}
}

func TestResolve_NonJSONReply(t *testing.T) {
	llm, ts := newLLMServer(t, "Sorry, I can't help with that.")
	defer ts.Close()

	repo := &mockVikunjaRepo{projects: []model.Project{{ID: 1, Title: "Inbox"}}}
	uc := New(mockLogger{}, llm, repo, &mockUserProvider{}, testBackend(), task.Settings{DefaultProjectID: 1})

	out := uc.Resolve(context.Background(), task.ResolveInput{Description: "buy milk"})

	if out.Success {
		t.Error("Success = true for a non-JSON reply")
	}
	if out.Message != task.MsgProcessError {
		t.Errorf("Message = %q", out.Message)
	}
	if out.TaskTitle != "" {
		t.Errorf("TaskTitle = %q, want empty", out.TaskTitle)
	}
	if repo.createTaskCalls != 0 {
		t.Error("no task may be created from an unparseable reply")
	}
}

func TestResolve_CreateFailed(t *testing.T) {
	llm, ts := newLLMServer(t, `{"title": "Buy milk", "project_id": 1}`)
	defer ts.Close()

	repo := &mockVikunjaRepo{
		projects:  []model.Project{{ID: 1, Title: "Inbox"}},
		createErr: errors.New("503 service unavailable"),
	}
	uc := New(mockLogger{}, llm, repo, &mockUserProvider{}, testBackend(), task.Settings{DefaultProjectID: 1})

	out := uc.Resolve(context.Background(), task.ResolveInput{Description: "buy milk"})

	if out.Success {
		t.Error("Success = true despite create failure")
	}
	if out.Message != task.MsgVikunjaError {
		t.Errorf("Message = %q", out.Message)
	}
	if out.TaskTitle != "" {
		t.Errorf("TaskTitle = %q, want empty", out.TaskTitle)
	}
}

func TestResolve_EntityFetchFailureDegrades(t *testing.T) {
	llm, ts := newLLMServer(t, `{"title": "Buy milk", "project_id": 1}`)
	defer ts.Close()

	repo := &mockVikunjaRepo{
		projectsErr: errors.New("500"),
		labelsErr:   errors.New("500"),
	}
	uc := New(mockLogger{}, llm, repo, &mockUserProvider{}, testBackend(), task.Settings{DefaultProjectID: 1})

	out := uc.Resolve(context.Background(), task.ResolveInput{Description: "buy milk"})

	if !out.Success {
		t.Fatalf("Success = false, message = %q; entity fetch failures must degrade, not abort", out.Message)
	}
	if repo.createTaskCalls != 1 {
		t.Errorf("createTaskCalls = %d, want 1", repo.createTaskCalls)
	}
}

func TestResolve_DefaultProjectApplied(t *testing.T) {
	llm, ts := newLLMServer(t, `{"title": "Buy milk"}`)
	defer ts.Close()

	repo := &mockVikunjaRepo{projects: []model.Project{{ID: 3, Title: "Errands"}}}
	uc := New(mockLogger{}, llm, repo, &mockUserProvider{}, testBackend(), task.Settings{DefaultProjectID: 3})

	out := uc.Resolve(context.Background(), task.ResolveInput{Description: "buy milk"})

	if !out.Success {
		t.Fatalf("Success = false, message = %q", out.Message)
	}
	if repo.lastDraft.ProjectID != 3 {
		t.Errorf("draft project id = %d, want default 3", repo.lastDraft.ProjectID)
	}
}

func TestResolve_LabelHandling(t *testing.T) {
	llm, ts := newLLMServer(t, `{"title": "Buy milk", "project_id": 1, "label_ids": [7, 99]}`)
	defer ts.Close()

	repo := &mockVikunjaRepo{
		projects: []model.Project{{ID: 1, Title: "Inbox"}},
		labels:   []model.Label{{ID: 7, Title: "grocery"}},
	}
	uc := New(mockLogger{}, llm, repo, &mockUserProvider{}, testBackend(), task.Settings{DefaultProjectID: 1})

	out := uc.Resolve(context.Background(), task.ResolveInput{Description: "buy milk with the grocery label"})

	if !out.Success {
		t.Fatalf("Success = false, message = %q", out.Message)
	}
	if len(repo.attachedIDs) != 1 || repo.attachedIDs[0] != 7 {
		t.Errorf("attached labels = %v, want only the known id 7", repo.attachedIDs)
	}
	if len(repo.lastDraft.LabelIDs) != 0 {
		t.Errorf("draft label_ids = %v, want stripped before create", repo.lastDraft.LabelIDs)
	}
}

func TestResolve_AutoVoiceLabel(t *testing.T) {
	t.Run("existing label reused", func(t *testing.T) {
		llm, ts := newLLMServer(t, `{"title": "Buy milk", "project_id": 1}`)
		defer ts.Close()

		repo := &mockVikunjaRepo{
			projects: []model.Project{{ID: 1, Title: "Inbox"}},
			labels:   []model.Label{{ID: 12, Title: "Voice"}},
		}
		uc := New(mockLogger{}, llm, repo, &mockUserProvider{}, testBackend(), task.Settings{
			DefaultProjectID: 1,
			AutoVoiceLabel:   true,
		})

		out := uc.Resolve(context.Background(), task.ResolveInput{Description: "buy milk"})
		if !out.Success {
			t.Fatalf("Success = false, message = %q", out.Message)
		}
		if repo.createLabelCalls != 0 {
			t.Error("existing voice label must be reused, not recreated")
		}
		if len(repo.attachedIDs) != 1 || repo.attachedIDs[0] != 12 {
			t.Errorf("attached labels = %v, want [12]", repo.attachedIDs)
		}
	})

	t.Run("label created when missing", func(t *testing.T) {
		llm, ts := newLLMServer(t, `{"title": "Buy milk", "project_id": 1}`)
		defer ts.Close()

		repo := &mockVikunjaRepo{
			projects:     []model.Project{{ID: 1, Title: "Inbox"}},
			createdLabel: model.Label{ID: 44, Title: "voice"},
		}
		uc := New(mockLogger{}, llm, repo, &mockUserProvider{}, testBackend(), task.Settings{
			DefaultProjectID: 1,
			AutoVoiceLabel:   true,
		})

		out := uc.Resolve(context.Background(), task.ResolveInput{Description: "buy milk"})
		if !out.Success {
			t.Fatalf("Success = false, message = %q", out.Message)
		}
		if repo.createLabelCalls != 1 {
			t.Errorf("createLabelCalls = %d, want 1", repo.createLabelCalls)
		}
		if len(repo.attachedIDs) != 1 || repo.attachedIDs[0] != 44 {
			t.Errorf("attached labels = %v, want [44]", repo.attachedIDs)
		}
	})
}

func TestResolve_UserAssignment(t *testing.T) {
	llm, ts := newLLMServer(t, `{"title": "Prepare slides", "project_id": 1, "assignee": "william"}`)
	defer ts.Close()

	repo := &mockVikunjaRepo{projects: []model.Project{{ID: 1, Title: "Inbox"}}}
	users := &mockUserProvider{users: []model.User{
		{ID: 2, Name: "William", Username: "william"},
		{ID: 3, Name: "Alice", Username: "alice"},
	}}
	uc := New(mockLogger{}, llm, repo, users, testBackend(), task.Settings{
		DefaultProjectID:     1,
		EnableUserAssignment: true,
	})

	out := uc.Resolve(context.Background(), task.ResolveInput{Description: "assign prepare slides to William"})

	if !out.Success {
		t.Fatalf("Success = false, message = %q", out.Message)
	}
	if repo.assignUserCalls != 1 {
		t.Fatalf("assignUserCalls = %d, want 1", repo.assignUserCalls)
	}
	if repo.assignedUsers[0] != 2 {
		t.Errorf("assigned user id = %d, want 2", repo.assignedUsers[0])
	}
	if repo.lastDraft.Assignee != "" {
		t.Errorf("draft assignee = %q, want stripped before create", repo.lastDraft.Assignee)
	}
}

func TestResolve_UnknownAssigneeIgnored(t *testing.T) {
	llm, ts := newLLMServer(t, `{"title": "Prepare slides", "project_id": 1, "assignee": "nobody"}`)
	defer ts.Close()

	repo := &mockVikunjaRepo{projects: []model.Project{{ID: 1, Title: "Inbox"}}}
	users := &mockUserProvider{users: []model.User{{ID: 2, Name: "William", Username: "william"}}}
	uc := New(mockLogger{}, llm, repo, users, testBackend(), task.Settings{
		DefaultProjectID:     1,
		EnableUserAssignment: true,
	})

	out := uc.Resolve(context.Background(), task.ResolveInput{Description: "prepare slides for nobody"})

	if !out.Success {
		t.Fatalf("Success = false, message = %q", out.Message)
	}
	if repo.assignUserCalls != 0 {
		t.Error("unknown assignee must not trigger an assignment call")
	}
}

func TestResolve_DetailedResponse(t *testing.T) {
	llm, ts := newLLMServer(t, `{"title": "Buy milk", "project_id": 4, "priority": 2, "label_ids": [7]}`)
	defer ts.Close()

	repo := &mockVikunjaRepo{
		projects: []model.Project{{ID: 1, Title: "Inbox"}, {ID: 4, Title: "Errands"}},
		labels:   []model.Label{{ID: 7, Title: "grocery"}},
	}
	uc := New(mockLogger{}, llm, repo, &mockUserProvider{}, testBackend(), task.Settings{
		DefaultProjectID: 1,
		DetailedResponse: true,
	})

	out := uc.Resolve(context.Background(), task.ResolveInput{Description: "buy milk for errands, grocery label, low priority"})

	if !out.Success {
		t.Fatalf("Success = false, message = %q", out.Message)
	}
	for _, want := range []string{"project 'Errands'", "labels: grocery", "priority medium"} {
		if !strings.Contains(out.Message, want) {
			t.Errorf("Message = %q, missing %q", out.Message, want)
		}
	}
}
