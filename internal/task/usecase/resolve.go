package usecase

import (
	"context"
	"strings"
	"time"

	"vikunja-voice-assistant/internal/model"
	"vikunja-voice-assistant/internal/task"
	"vikunja-voice-assistant/pkg/openai"
)

const voiceLabelTitle = "voice"

// Resolve turns a free-text description into a created Vikunja task.
// Steps run strictly in sequence and short-circuit on first failure;
// every failure mode maps to a user-facing outcome. Exactly one project
// read and at most one task write happen per call.
func (uc *implUseCase) Resolve(ctx context.Context, input task.ResolveInput) (out task.ResolveOutput) {
	defer func() {
		if r := recover(); r != nil {
			uc.l.Errorf(ctx, "resolve: unexpected panic: %v", r)
			out = failure(task.MsgUnexpected)
		}
	}()

	if strings.TrimSpace(input.Description) == "" {
		return failure(task.MsgEmptyInput)
	}

	if !uc.backend.complete() {
		uc.l.Error(ctx, "resolve: missing Vikunja URL/token or OpenAI key")
		return failure(task.MsgConfigError)
	}

	// Projects are re-fetched every request so project_id selection sees
	// current state. Fetch failures degrade to an empty list; the model
	// then falls back to the default project.
	projects, err := uc.repo.GetProjects(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "resolve: failed to fetch projects: %v", err)
		projects = nil
	}
	labels, err := uc.repo.GetLabels(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "resolve: failed to fetch labels: %v", err)
		labels = nil
	}

	var users []model.User
	if uc.settings.EnableUserAssignment {
		users = uc.users.CurrentUsers()
	}

	raw, err := uc.completeWithLLM(ctx, input.Description, projects, labels, users)
	if err != nil {
		uc.l.Errorf(ctx, "resolve: %v: %v", task.ErrLLMUnavailable, err)
		return failure(task.MsgLLMConnError)
	}

	draft, err := extractTaskDraft(raw)
	if err != nil {
		// The three extraction kinds stay distinct in logs only.
		uc.l.Errorf(ctx, "resolve: extraction failed: %v (raw=%q)", err, raw)
		return failure(task.MsgProcessError)
	}

	uc.normalizeDraft(ctx, &draft)

	labelIDs := validLabelIDs(draft.LabelIDs, labels)
	assignee := draft.Assignee
	draft.LabelIDs = nil
	draft.Assignee = ""

	if uc.settings.AutoVoiceLabel {
		if id, ok := uc.ensureVoiceLabel(ctx, labels); ok && !containsID(labelIDs, id) {
			labelIDs = append(labelIDs, id)
		}
	}

	created, err := uc.repo.CreateTask(ctx, draft)
	if err != nil {
		uc.l.Errorf(ctx, "resolve: %v: %v", task.ErrCreateFailed, err)
		return failure(task.MsgVikunjaError)
	}
	uc.l.Infof(ctx, "resolve: created Vikunja task %q (id=%d)", created.Title, created.ID)

	// Label attach and assignment failures are logged, never fatal: the
	// task itself exists already.
	for _, id := range labelIDs {
		if attachErr := uc.repo.AttachLabel(ctx, created.ID, id); attachErr != nil {
			uc.l.Errorf(ctx, "resolve: failed to attach label %d to task %d: %v", id, created.ID, attachErr)
		}
	}

	resolvedAssignee := ""
	if uc.settings.EnableUserAssignment && assignee != "" {
		resolvedAssignee = uc.tryAssignUser(ctx, created.ID, assignee, users)
	}

	message := task.MsgSuccessPrefix + created.Title
	if uc.settings.DetailedResponse {
		message = uc.buildDetailedMessage(created.Title, draft, projects, labels, labelIDs, resolvedAssignee)
	}

	return task.ResolveOutput{
		Success:   true,
		Message:   message,
		TaskTitle: created.Title,
	}
}

// completeWithLLM composes the prompt and performs the chat completion.
func (uc *implUseCase) completeWithLLM(
	ctx context.Context,
	description string,
	projects []model.Project,
	labels []model.Label,
	users []model.User,
) (string, error) {
	system, user := openai.BuildTaskCreationMessages(openai.PromptInput{
		Description:          description,
		Projects:             projectOptions(projects),
		Labels:               labelOptions(labels),
		Users:                userOptions(users),
		DefaultDueDate:       uc.settings.DefaultDueDate,
		VoiceCorrection:      uc.settings.VoiceCorrection,
		EnableUserAssignment: uc.settings.EnableUserAssignment,
		Now:                  time.Now(),
	})

	resp, err := uc.llm.CreateChatCompletion(ctx, &openai.Request{
		Messages: []openai.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: openai.DefaultTemperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil // extractor reports the empty reply
	}
	return resp.Choices[0].Message.Content, nil
}

// normalizeDraft applies defaults and best-effort sanity checks to a
// freshly extracted draft.
func (uc *implUseCase) normalizeDraft(ctx context.Context, draft *model.TaskDraft) {
	if draft.ProjectID == 0 {
		draft.ProjectID = uc.settings.DefaultProjectID
	}

	if draft.Priority < 0 || draft.Priority > 5 {
		uc.l.Warnf(ctx, "resolve: dropping out-of-range priority %d", draft.Priority)
		draft.Priority = 0
	}

	// The prompt forbids past due dates; a violation is model drift worth
	// seeing in logs, but the task is still created as extracted.
	if draft.DueDate != "" {
		if due, err := time.Parse(openai.TimestampFormat, draft.DueDate); err != nil {
			uc.l.Warnf(ctx, "resolve: due date %q is not %s", draft.DueDate, openai.TimestampFormat)
		} else if due.Before(time.Now().UTC()) {
			uc.l.Warnf(ctx, "resolve: model produced past due date %q", draft.DueDate)
		}
	}
}

// ensureVoiceLabel finds the "voice" label among the fetched labels, or
// creates it. Returns (id, true) on success; failures only log.
func (uc *implUseCase) ensureVoiceLabel(ctx context.Context, labels []model.Label) (int64, bool) {
	for _, l := range labels {
		if strings.EqualFold(l.Title, voiceLabelTitle) {
			return l.ID, true
		}
	}
	created, err := uc.repo.CreateLabel(ctx, voiceLabelTitle)
	if err != nil {
		uc.l.Errorf(ctx, "resolve: could not ensure %q label exists: %v", voiceLabelTitle, err)
		return 0, false
	}
	return created.ID, true
}

// tryAssignUser resolves the model's assignee string against the cached
// users and assigns on match. Returns the matched identifier, or "".
func (uc *implUseCase) tryAssignUser(ctx context.Context, taskID int64, assignee string, users []model.User) string {
	lookup := strings.ToLower(strings.TrimSpace(assignee))
	for _, u := range users {
		if lookup != strings.ToLower(u.Username) && lookup != strings.ToLower(u.Name) {
			continue
		}
		if err := uc.repo.AssignUser(ctx, taskID, u.ID); err != nil {
			uc.l.Errorf(ctx, "resolve: failed to assign user %q to task %d: %v", lookup, taskID, err)
			return ""
		}
		return assignee
	}
	uc.l.Warnf(ctx, "resolve: assignee %q not found in cached users", assignee)
	return ""
}

func failure(message string) task.ResolveOutput {
	return task.ResolveOutput{
		Success:   false,
		Message:   message,
		TaskTitle: "",
	}
}

func validLabelIDs(ids []int64, labels []model.Label) []int64 {
	if len(ids) == 0 {
		return nil
	}
	existing := make(map[int64]struct{}, len(labels))
	for _, l := range labels {
		existing[l.ID] = struct{}{}
	}
	var out []int64
	for _, id := range ids {
		if _, ok := existing[id]; ok && !containsID(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func projectOptions(projects []model.Project) []openai.ProjectOption {
	out := make([]openai.ProjectOption, 0, len(projects))
	for _, p := range projects {
		out = append(out, openai.ProjectOption{ID: p.ID, Name: p.Title})
	}
	return out
}

func labelOptions(labels []model.Label) []openai.LabelOption {
	out := make([]openai.LabelOption, 0, len(labels))
	for _, l := range labels {
		out = append(out, openai.LabelOption{ID: l.ID, Name: l.Title})
	}
	return out
}

func userOptions(users []model.User) []openai.UserOption {
	out := make([]openai.UserOption, 0, len(users))
	for _, u := range users {
		out = append(out, openai.UserOption{ID: u.ID, Name: u.Name, Username: u.Username})
	}
	return out
}
