package openai

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Default due date policies accepted by BuildTaskCreationMessages.
const (
	DueDateNone       = "none"
	DueDateTomorrow   = "tomorrow"
	DueDateEndOfWeek  = "end_of_week"
	DueDateEndOfMonth = "end_of_month"
)

// ProjectOption is an id/name pair embedded in the prompt so the model
// can select project_id by name match.
type ProjectOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// LabelOption is an id/name pair for label selection.
type LabelOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserOption is an assignable user offered to the model.
type UserOption struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// PromptInput carries everything the composer needs. Output is
// deterministic given identical input, including Now.
type PromptInput struct {
	Description          string
	Projects             []ProjectOption
	Labels               []LabelOption
	Users                []UserOption
	DefaultDueDate       string // one of the DueDate* policies
	VoiceCorrection      bool
	EnableUserAssignment bool
	Now                  time.Time
}

// BuildTaskCreationMessages assembles the system and user instruction
// texts for a task-extraction completion. No side effects, no network.
func BuildTaskCreationMessages(in PromptInput) (system string, user string) {
	tc := BuildTimeContext(in.Now)

	projectsJSON := mustMarshal(in.Projects)
	labelsJSON := mustMarshal(in.Labels)

	dueDateBlock := defaultDueDateBlock(in.DefaultDueDate, tc)
	if dueDateBlock == "" {
		dueDateBlock = "- No default due date configured"
	}

	voiceBlock := ""
	if in.VoiceCorrection {
		voiceBlock = voiceCorrectionInstructions
	}

	assignBlock := ""
	if in.EnableUserAssignment && len(in.Users) > 0 {
		assignBlock = fmt.Sprintf(assignmentInstructionsTemplate, mustMarshal(in.Users))
	}

	system = fmt.Sprintf(systemPromptTemplate,
		projectsJSON,
		labelsJSON,
		dueDateBlock,
		voiceBlock,
		tc.NowISO,
		tc.TodayDate,
		assignBlock,
	)
	user = fmt.Sprintf("Create task: %s", in.Description)
	return system, user
}

// defaultDueDateBlock renders the policy instruction block, or "" for the
// none policy. The blocks are mutually exclusive by construction.
func defaultDueDateBlock(policy string, tc TimeContext) string {
	var anchor string
	switch policy {
	case DueDateTomorrow:
		anchor = tc.TomorrowNoon
	case DueDateEndOfWeek:
		anchor = tc.EndOfWeek
	case DueDateEndOfMonth:
		anchor = tc.EndOfMonth
	default:
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf(defaultDueDateTemplate, anchor, anchor))
}

func mustMarshal(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

const defaultDueDateTemplate = `
IMPORTANT DEFAULT DUE DATE RULE:
- If no specific project or due date is mentioned in the task, use this default due date: %s
- If a specific project is mentioned, do not set any due date unless the user explicitly mentions one
- If a specific due date is mentioned by the user, always use that instead of the default
- Even if a recurring task instruction is given, if no due date is mentioned, set it to %s`

const voiceCorrectionInstructions = `SPEECH RECOGNITION CORRECTION:
- Task came from voice command - expect speech recognition errors
- Correct misheard project names, label names, dates, and common speech-to-text errors
- Ensure the task title is logically consistent with the project name, labels etc. If something doesn't make sense, attempt to find the most likely intended word/phrase based on context`

const assignmentInstructionsTemplate = `USER ASSIGNMENT:
- You can optionally include an assignee by username or name if clearly specified in the user's description.
- Output field: assignee (string) MUST be an existing username (preferred) or exact name match from available users.
- Available users: %s
- Only include assignee field if explicitly stated (e.g. 'assign to Alice', 'for william', 'give this to bob').
- Do not guess if unclear.`

const systemPromptTemplate = `You are an assistant that helps create tasks in Vikunja.
Given a task description, you will create a JSON payload for the Vikunja API.

Available projects: %s
Available labels: %s

DEFAULT DUE DATE RULE:
%s

%s

CORE OUTPUT REQUIREMENTS:
- Output ONLY valid JSON with these fields (only include optional fields when applicable):
    * title (string): Main task title (REQUIRED, MUST NOT BE EMPTY)
    * description (string, optional): Only include if the user explicitly asks for additional notes/context.
    * project_id (number): Project ID (always required, use 1 if no project specified)
    * due_date (string, optional): Due date in YYYY-MM-DDTHH:MM:SSZ format
    * priority (number, optional): Priority level 1-5, only when explicitly mentioned
    * repeat_after (number, optional): Repeat interval in seconds, only for recurring tasks
    * label_ids (array, optional): Array of existing label IDs
    * assignee (string, optional): Username (preferred) or exact name of assignee (ONLY if explicitly stated)

TASK FORMATTING:
- Extract clear, concise titles.
- Avoid redundant words implied by project context
- Remove date/time info from title (use due_date field) if confidently parsed.
- Remove label references from title (handled via label_ids).
- Remove project names from title (handled via project_id).
- Remove priority references from title (handled via priority field).
- Remove unnecessary qualifiers (e.g. "task", "to do", "reminder")
- Remove recurring task keywords from title (handled via repeat_after).

DATE HANDLING (Current: %s):
- Calculate future dates based on current date: %s
- Use ISO format with 'Z' timezone: YYYY-MM-DDTHH:MM:SSZ
- Default time: 12:00:00 (unless specific time mentioned)
- NEVER set past dates - always use future dates for ambiguous references

PRIORITY LEVELS (only when explicitly mentioned):
- 5: urgent, critical, emergency, ASAP, immediately
- 4: important, soon, priority, needs attention
- 3: medium priority, when possible, moderately important
- 2: low priority, when you have time, not urgent
- 1: sometime, eventually, no rush

RECURRING TASKS (only when explicitly mentioned):
- Daily: 86400 seconds | Weekly: 604800 seconds
- Monthly: 2592000 seconds | Yearly: 31536000 seconds
- Keywords: daily, weekly, monthly, yearly, every day/week, recurring, repeat...

EXAMPLES:
Input: "Reminder to pick up groceries tomorrow"
Output: {"title": "Pick up groceries", "project_id": 1, "due_date": "2023-06-09T12:00:00Z"}

Input: "URGENT: finish the report for work by Friday at 5pm tagged as urgent"
Output: {"title": "Finish work report", "project_id": 1, "due_date": "2023-06-09T17:00:00Z", "priority": 5}

Input: "Take vitamins daily with health"
Output: {"title": "Take vitamins", "project_id": 1, "repeat_after": 86400}

Input: "Add buy milk with the grocery label for next week"
(Assuming a label with name 'grocery' has id 7)
Output: {"title": "Buy milk", "project_id": 1, "label_ids": [7], "due_date": "2023-06-16T12:00:00Z"}

Input: "Schedule annual dentist appointment next March"
Output: {"title": "Schedule dentist appointment", "project_id": 1, "due_date": "2023-03-01T12:00:00Z"}

Input: "Finish the project report"
(assuming you have default due date settings set up)
Output: {"title": "Finish project report", "project_id": 1, "due_date": "2023-06-10T12:00:00Z"}

Input: "Assign prepare slides to William for next week"
Output: {"title": "Prepare slides", "project_id": 1, "due_date": "2023-06-16T12:00:00Z", "assignee": "william"}

%s`
