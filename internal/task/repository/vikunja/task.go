package vikunja

import (
	"context"
	"fmt"

	"vikunja-voice-assistant/internal/model"
	"vikunja-voice-assistant/internal/task/repository"
	pkgLog "vikunja-voice-assistant/pkg/log"
)

// favoritesPseudoProjectID is Vikunja's virtual "Favorites" project; it
// has no project users of its own and is skipped during user collection.
const favoritesPseudoProjectID = -1

type implRepository struct {
	client *Client
	l      pkgLog.Logger
}

// New creates a VikunjaRepository backed by the REST client.
func New(client *Client, l pkgLog.Logger) repository.VikunjaRepository {
	return &implRepository{
		client: client,
		l:      l,
	}
}

func (r *implRepository) GetProjects(ctx context.Context) ([]model.Project, error) {
	raw, err := r.client.GetProjects(ctx)
	if err != nil {
		return nil, err
	}
	projects := make([]model.Project, 0, len(raw))
	for _, p := range raw {
		projects = append(projects, model.Project{ID: p.ID, Title: p.Title})
	}
	return projects, nil
}

func (r *implRepository) GetLabels(ctx context.Context) ([]model.Label, error) {
	raw, err := r.client.GetLabels(ctx)
	if err != nil {
		return nil, err
	}
	labels := make([]model.Label, 0, len(raw))
	for _, l := range raw {
		labels = append(labels, model.Label{ID: l.ID, Title: l.Title})
	}
	return labels, nil
}

func (r *implRepository) CreateLabel(ctx context.Context, title string) (model.Label, error) {
	created, err := r.client.CreateLabel(ctx, title)
	if err != nil {
		return model.Label{}, err
	}
	return model.Label{ID: created.ID, Title: created.Title}, nil
}

func (r *implRepository) CreateTask(ctx context.Context, draft model.TaskDraft) (repository.CreatedTask, error) {
	if draft.Title == "" {
		return repository.CreatedTask{}, fmt.Errorf("cannot create task: missing title")
	}

	// Label attach and assignment go through their own endpoints; the
	// creation body carries only fields Vikunja accepts on PUT.
	body := createTaskBody{
		Title:       draft.Title,
		Description: draft.Description,
		DueDate:     draft.DueDate,
		Priority:    draft.Priority,
		RepeatAfter: draft.RepeatAfter,
	}

	created, err := r.client.AddTask(ctx, draft.ProjectID, body)
	if err != nil {
		return repository.CreatedTask{}, err
	}
	return repository.CreatedTask{ID: created.ID, Title: created.Title}, nil
}

func (r *implRepository) AttachLabel(ctx context.Context, taskID, labelID int64) error {
	return r.client.AddLabelToTask(ctx, taskID, labelID)
}

func (r *implRepository) AssignUser(ctx context.Context, taskID, userID int64) error {
	return r.client.AssignUserToTask(ctx, taskID, userID)
}

// CollectUsers gathers unique users across all accessible projects.
// Per-project fetch failures are logged and skipped so one broken
// project cannot empty the whole set.
func (r *implRepository) CollectUsers(ctx context.Context) ([]model.User, error) {
	projects, err := r.client.GetProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve projects for user collection: %w", err)
	}

	seen := make(map[int64]struct{})
	var users []model.User
	for _, p := range projects {
		if p.ID == favoritesPseudoProjectID {
			continue
		}
		projectUsers, uErr := r.client.GetProjectUsers(ctx, p.ID)
		if uErr != nil {
			r.l.Errorf(ctx, "vikunja: failed to retrieve users for project %d: %v", p.ID, uErr)
			continue
		}
		for _, u := range projectUsers {
			if u.ID == 0 {
				continue
			}
			if _, ok := seen[u.ID]; ok {
				continue
			}
			seen[u.ID] = struct{}{}
			users = append(users, model.User{ID: u.ID, Name: u.Name, Username: u.Username})
		}
	}
	return users, nil
}

func (r *implRepository) TestConnection(ctx context.Context) error {
	return r.client.TestConnection(ctx)
}

// createTaskBody is the PUT /projects/{id}/tasks payload.
type createTaskBody struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	Priority    int    `json:"priority,omitempty"`
	RepeatAfter int64  `json:"repeat_after,omitempty"`
}
