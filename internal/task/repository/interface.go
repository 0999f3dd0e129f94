package repository

import (
	"context"

	"vikunja-voice-assistant/internal/model"
)

// CreatedTask identifies a task the backend just created.
type CreatedTask struct {
	ID    int64
	Title string
}

// VikunjaRepository defines the data access interface for the Vikunja backend.
type VikunjaRepository interface {
	// GetProjects returns all accessible projects.
	GetProjects(ctx context.Context) ([]model.Project, error)

	// GetLabels returns all labels visible to the token.
	GetLabels(ctx context.Context) ([]model.Label, error)

	// CreateLabel creates a new label with the given title.
	CreateLabel(ctx context.Context, title string) (model.Label, error)

	// CreateTask creates a task from a validated draft.
	CreateTask(ctx context.Context, draft model.TaskDraft) (CreatedTask, error)

	// AttachLabel attaches an existing label to a task.
	AttachLabel(ctx context.Context, taskID, labelID int64) error

	// AssignUser assigns a user to a task.
	AssignUser(ctx context.Context, taskID, userID int64) error

	// CollectUsers gathers unique assignable users across all projects.
	CollectUsers(ctx context.Context) ([]model.User, error)

	// TestConnection verifies the URL/token pair by listing projects.
	TestConnection(ctx context.Context) error
}
