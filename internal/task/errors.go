package task

import "errors"

// Domain-specific errors for the task package. The three extraction
// errors are distinguished in logs only; they collapse to one user
// message at the orchestrator boundary.
var (
	ErrEmptyInput     = errors.New("task description is empty")
	ErrMissingConfig  = errors.New("missing backend configuration")
	ErrLLMUnavailable = errors.New("LLM request failed")
	ErrNoJSONFound    = errors.New("no JSON object found in LLM reply")
	ErrMalformedJSON  = errors.New("malformed JSON in LLM reply")
	ErrMissingTitle   = errors.New("missing required 'title' field")
	ErrCreateFailed   = errors.New("failed to create task in Vikunja")
)
