package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"vikunja-voice-assistant/internal/model"
	"vikunja-voice-assistant/internal/task"
)

// extractTaskDraft converts an arbitrary LLM reply into a validated
// TaskDraft. The model is instructed to emit JSON only, but replies may
// still wrap the object in explanatory prose, so the parse target is the
// bounded substring from the first '{' to the last '}'. Unknown fields
// are ignored. No retry here; that is the orchestrator's call.
func extractTaskDraft(raw string) (model.TaskDraft, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return model.TaskDraft{}, task.ErrNoJSONFound
	}

	var draft model.TaskDraft
	if err := json.Unmarshal([]byte(raw[start:end+1]), &draft); err != nil {
		return model.TaskDraft{}, fmt.Errorf("%w: %v", task.ErrMalformedJSON, err)
	}

	if strings.TrimSpace(draft.Title) == "" {
		return model.TaskDraft{}, task.ErrMissingTitle
	}

	return draft, nil
}
