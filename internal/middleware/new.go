package middleware

import (
	pkgLog "vikunja-voice-assistant/pkg/log"
)

// Middleware bundles the cross-cutting gin middlewares.
type Middleware struct {
	l           pkgLog.Logger
	rateLimiter *rateLimiter
}

// New creates the middleware bundle. requestsPerMin bounds each client's
// rate on the API routes.
func New(l pkgLog.Logger, requestsPerMin int) Middleware {
	return Middleware{
		l:           l,
		rateLimiter: newRateLimiter(requestsPerMin),
	}
}
