package model

// TaskDraft is the validated task payload extracted from an LLM reply.
// It maps directly onto the Vikunja task-creation body; optional fields
// are omitted from the wire payload when unset.
type TaskDraft struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	ProjectID   int64   `json:"project_id"`
	DueDate     string  `json:"due_date,omitempty"`     // ISO-8601 UTC: YYYY-MM-DDTHH:MM:SSZ
	Priority    int     `json:"priority,omitempty"`     // 1..5
	RepeatAfter int64   `json:"repeat_after,omitempty"` // seconds
	LabelIDs    []int64 `json:"label_ids,omitempty"`
	Assignee    string  `json:"assignee,omitempty"` // username or display name, resolved before creation
}

// Project is a read-only projection of a Vikunja project.
type Project struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Label is a read-only projection of a Vikunja label.
type Label struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// User is an assignable Vikunja user as held in the user cache.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}
