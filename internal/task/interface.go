package task

import "context"

// UseCase defines the business logic interface for the task domain.
type UseCase interface {
	// Resolve turns a free-text description into a created Vikunja task.
	// Every failure mode is mapped to a user-facing outcome; it never
	// returns an error to the caller.
	Resolve(ctx context.Context, input ResolveInput) ResolveOutput
}
