package task

// ResolveInput is the input for one resolution request.
type ResolveInput struct {
	Description string // free text, often voice-transcribed
}

// ResolveOutput is the user-facing outcome of a resolution request.
// It is always fully populated: a success triple or a failure triple.
type ResolveOutput struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	TaskTitle string `json:"task_title"`
}

// Settings are the per-setup behavior knobs for the resolution pipeline.
type Settings struct {
	DefaultDueDate       string
	DefaultProjectID     int64
	VoiceCorrection      bool
	AutoVoiceLabel       bool
	EnableUserAssignment bool
	DetailedResponse     bool
}
