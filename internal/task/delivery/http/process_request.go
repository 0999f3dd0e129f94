package http

import (
	"github.com/gin-gonic/gin"
)

// processCreateFromTextReq binds and validates the voice-task request body.
func (h *handler) processCreateFromTextReq(c *gin.Context) (createFromTextReq, error) {
	var req createFromTextReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}
