package openai

import "time"

const (
	// DefaultBaseURL is the default OpenAI API endpoint
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is the default model to use
	DefaultModel = "gpt-5-mini"

	// DefaultTemperature keeps extraction output near-deterministic
	DefaultTemperature = 0.2
)

// Timeout budget for a single completion call. The overall ceiling bounds
// the full round trip; dial and response-header ceilings keep a stalled
// endpoint from eating the whole budget before any byte arrives.
const (
	OverallTimeout        = 60 * time.Second
	DialTimeout           = 10 * time.Second
	ResponseHeaderTimeout = 30 * time.Second
)

// TimestampFormat is the ISO-8601 UTC format used for all due dates.
const TimestampFormat = "2006-01-02T15:04:05Z"

// DateFormat is the calendar-date format used in the temporal context.
const DateFormat = "2006-01-02"
