package http

import (
	"github.com/gin-gonic/gin"

	"vikunja-voice-assistant/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	tasks := rg.Group("/tasks")
	{
		tasks.POST("/voice", mw.RateLimit(), h.CreateFromText)
	}

	users := rg.Group("/users")
	{
		users.POST("/cache/refresh", mw.RateLimit(), h.RefreshUserCache)
	}
}
