package handler

import (
	"errors"
	"net/http"

	"habit-service/internal/logger"
	"habit-service/internal/user"

	"github.com/gin-gonic/gin"
)

type createProfileRequest struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// CreateProfile mirrors an auth-backend signup into a profile row.
// Idempotent: replaying the call for an existing user succeeds, so the
// signup trigger may fire more than once.
func (h *Handler) CreateProfile(c *gin.Context) {
	var req createProfileRequest
	_ = c.ShouldBindJSON(&req)

	if req.UserID == "" || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing userId or email"})
		return
	}

	err := h.deps.Profiles.CreateProfile(c.Request.Context(), req.UserID, req.Email)
	if err != nil && !errors.Is(err, user.ErrAlreadyExists) {
		logger.Error("profile creation failed", map[string]any{
			"user_id": req.UserID,
			"error":   err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
