package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// Envelope is the uniform JSON response shape for non-redirect routes.
type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondError(c *gin.Context, status int, errCode, message string) {
	c.JSON(status, Envelope{
		Success: false,
		Error:   errCode,
		Message: message,
	})
}

// bindJSON decodes and validates a JSON body. Returns false after
// writing the 400 response so callers can bail with a bare return.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindWith(v, binding.JSON); err != nil {
		respondError(c, 400, "Validation failed", err.Error())
		return false
	}
	return true
}
