package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"vikunja-voice-assistant/internal/task"
	pkgLog "vikunja-voice-assistant/pkg/log"
)

// Handler is the public interface for the task HTTP delivery layer.
type Handler interface {
	CreateFromText(c *gin.Context)
	RefreshUserCache(c *gin.Context)
}

// CacheRefresher is the slice of the user-cache manager this layer needs.
type CacheRefresher interface {
	Refresh(ctx context.Context, force bool) bool
	LastRefresh() string
}

type handler struct {
	l     pkgLog.Logger
	uc    task.UseCase
	cache CacheRefresher
}

// New creates a new HTTP handler for the task domain.
func New(l pkgLog.Logger, uc task.UseCase, cache CacheRefresher) Handler {
	return &handler{
		l:     l,
		uc:    uc,
		cache: cache,
	}
}
