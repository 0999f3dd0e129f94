package usecase

import (
	"fmt"
	"strings"
	"time"

	"vikunja-voice-assistant/internal/model"
	"vikunja-voice-assistant/internal/task"
)

// genericProjectNames are catch-all buckets not worth speaking back.
var genericProjectNames = map[string]struct{}{
	"other":   {},
	"misc":    {},
	"general": {},
}

var priorityWords = map[int]string{
	1: "low",
	2: "medium",
	3: "high",
	4: "urgent",
	5: "do now",
}

// buildDetailedMessage appends a parenthesized metadata summary to the
// plain success message, e.g.
// "Successfully added task: Buy milk (project 'Errands'; due tomorrow)".
func (uc *implUseCase) buildDetailedMessage(
	title string,
	draft model.TaskDraft,
	projects []model.Project,
	labels []model.Label,
	labelIDs []int64,
	assignee string,
) string {
	var parts []string

	if name := uc.projectNamePart(draft.ProjectID, projects); name != "" {
		parts = append(parts, fmt.Sprintf("project '%s'", name))
	}
	if names := labelNamesPart(labelIDs, labels); names != "" {
		parts = append(parts, "labels: "+names)
	}
	if draft.DueDate != "" {
		parts = append(parts, "due "+friendlyDuePhrase(draft.DueDate, time.Now().UTC()))
	}
	if assignee != "" {
		parts = append(parts, "assigned to "+assignee)
	}
	if word, ok := priorityWords[draft.Priority]; ok {
		parts = append(parts, "priority "+word)
	}
	if phrase := friendlyRepeatPhrase(draft.RepeatAfter); phrase != "" {
		parts = append(parts, phrase)
	}

	msg := task.MsgSuccessPrefix + title
	if len(parts) > 0 {
		msg += " (" + strings.Join(parts, "; ") + ")"
	}
	return msg
}

func (uc *implUseCase) projectNamePart(projectID int64, projects []model.Project) string {
	if projectID == 0 || projectID == uc.settings.DefaultProjectID {
		return ""
	}
	for _, p := range projects {
		if p.ID != projectID {
			continue
		}
		name := strings.TrimSpace(p.Title)
		if _, generic := genericProjectNames[strings.ToLower(name)]; generic || name == "" {
			return ""
		}
		return name
	}
	return ""
}

func labelNamesPart(labelIDs []int64, labels []model.Label) string {
	if len(labelIDs) == 0 {
		return ""
	}
	byID := make(map[int64]string, len(labels))
	for _, l := range labels {
		byID[l.ID] = l.Title
	}
	var names []string
	for _, id := range labelIDs {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return strings.Join(names, ", ")
}

// friendlyDuePhrase renders an ISO due date as a spoken phrase relative
// to now: "today", "tomorrow", "in N days", "in N years (D days)". An
// unparseable value is returned verbatim.
func friendlyDuePhrase(isoDate string, now time.Time) string {
	cleaned := strings.TrimSuffix(isoDate, "Z")
	var due time.Time
	parsed := false
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, cleaned); err == nil {
			due = t
			parsed = true
			break
		}
	}
	if !parsed {
		return isoDate
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	days := int(dueDay.Sub(today).Hours() / 24)

	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days < 0:
		return "like currently"
	case days < 365:
		return fmt.Sprintf("in %d days", days)
	default:
		years := days / 365
		yearWord := "years"
		if years == 1 {
			yearWord = "year"
		}
		return fmt.Sprintf("in %d %s (%d days)", years, yearWord, days)
	}
}

// friendlyRepeatPhrase renders a repeat interval in seconds as a spoken
// phrase. Returns "" when the task does not repeat.
func friendlyRepeatPhrase(seconds int64) string {
	if seconds <= 0 {
		return ""
	}
	if seconds%86400 != 0 {
		return fmt.Sprintf("repeats every %d seconds", seconds)
	}
	days := seconds / 86400
	if days < 365 {
		plural := "s"
		if days == 1 {
			plural = ""
		}
		return fmt.Sprintf("repeats in %d day%s", days, plural)
	}
	years := days / 365
	yearWord := "years"
	if years == 1 {
		yearWord = "year"
	}
	return fmt.Sprintf("repeats in %d %s (%d days)", years, yearWord, days)
}
