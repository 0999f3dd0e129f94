package usercache

import "vikunja-voice-assistant/internal/model"

// Snapshot is the cached assignable-user set plus its refresh stamp.
// It is replaced as a whole on every successful refresh; readers never
// observe a partially updated snapshot.
type Snapshot struct {
	Users       []model.User `json:"users"`
	LastRefresh string       `json:"last_refresh"` // ISO-8601 UTC, empty until first success
}
