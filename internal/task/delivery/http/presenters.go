package http

import "errors"

// createFromTextReq is the body for POST /tasks/voice.
type createFromTextReq struct {
	Text string `json:"text"`
}

func (r createFromTextReq) validate() error {
	// Blank text is also caught by the usecase; rejecting it here keeps
	// the malformed-request path out of the resolution pipeline.
	if r.Text == "" {
		return errors.New("text is required")
	}
	return nil
}

// refreshCacheResp is the body for POST /users/cache/refresh.
type refreshCacheResp struct {
	Refreshed   bool   `json:"refreshed"`
	LastRefresh string `json:"last_refresh,omitempty"`
}
