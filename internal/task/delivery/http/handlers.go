package http

import (
	"vikunja-voice-assistant/internal/task"
	pkgResponse "vikunja-voice-assistant/pkg/response"

	"github.com/gin-gonic/gin"
)

// CreateFromText resolves a free-text description into a Vikunja task.
// @Summary     Create task from text
// @Description Turn a free-text (voice-transcribed) description into a Vikunja task
// @Tags        Tasks
// @Accept      json
// @Produce     json
// @Param       body body createFromTextReq true "task description"
// @Success     200 {object} response.Resp
// @Router      /api/v1/tasks/voice [post]
func (h *handler) CreateFromText(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCreateFromTextReq(c)
	if err != nil {
		h.l.Errorf(ctx, "task http: invalid create request: %v", err)
		pkgResponse.Error(c, err)
		return
	}

	out := h.uc.Resolve(ctx, task.ResolveInput{Description: req.Text})
	pkgResponse.OK(c, out)
}

// RefreshUserCache forces a refresh of the assignable-user cache.
// @Summary     Force user-cache refresh
// @Description Re-fetch the assignable users from Vikunja immediately
// @Tags        Users
// @Produce     json
// @Success     200 {object} response.Resp
// @Router      /api/v1/users/cache/refresh [post]
func (h *handler) RefreshUserCache(c *gin.Context) {
	ctx := c.Request.Context()

	refreshed := h.cache.Refresh(ctx, true)
	if !refreshed {
		h.l.Warn(ctx, "task http: forced user cache refresh did not run or failed")
	}

	pkgResponse.OK(c, refreshCacheResp{
		Refreshed:   refreshed,
		LastRefresh: h.cache.LastRefresh(),
	})
}
