package handler

import (
	"errors"
	"net/http"
	"time"

	"habit-service/internal/auth/credentials"
	"habit-service/internal/logger"
	"habit-service/internal/middleware"
	"habit-service/internal/session"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type sessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sessionPayload struct {
	User         sessionUser `json:"user"`
	Token        string      `json:"token"`
	RefreshToken string      `json:"refreshToken"`
	ExpiresAt    *string     `json:"expiresAt"`
}

// issueSession mints a session plus refresh token for an account, sets
// the browser cookie, and returns the client payload.
func (h *Handler) issueSession(c *gin.Context, account *credentials.Account) (*sessionPayload, error) {
	token, err := session.GenerateToken()
	if err != nil {
		return nil, err
	}
	refreshToken, err := session.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expiresAt := now.Add(session.SessionTTL)

	sess := session.Session{
		Token:     token,
		UserID:    account.UserID,
		Email:     account.Email,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}
	if err := h.deps.Sessions.Create(c.Request.Context(), sess); err != nil {
		return nil, err
	}

	rt := session.RefreshToken{
		Token:     refreshToken,
		UserID:    account.UserID,
		Email:     account.Email,
		ExpiresAt: now.Add(session.RefreshTTL),
	}
	if err := h.deps.Sessions.CreateRefresh(c.Request.Context(), rt); err != nil {
		return nil, err
	}

	session.SetCookie(c.Writer, token, expiresAt, session.CookieOptions{
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	iso := expiresAt.UTC().Format(time.RFC3339)
	return &sessionPayload{
		User: sessionUser{
			ID:    account.UserID,
			Email: account.Email,
			Name:  account.FullName,
		},
		Token:        token,
		RefreshToken: refreshToken,
		ExpiresAt:    &iso,
	}, nil
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	fullName := req.FirstName + " " + req.LastName

	account, err := h.deps.Credentials.Register(
		c.Request.Context(),
		req.Email,
		req.Password,
		fullName,
	)
	if err != nil {
		if errors.Is(err, credentials.ErrAlreadyRegistered) {
			respondError(c, http.StatusConflict, "Conflict", "Account already exists")
			return
		}
		logger.Error("registration failed", map[string]any{"error": err.Error()})
		respondError(c, http.StatusInternalServerError, "Internal server error", "Something went wrong during registration")
		return
	}

	payload, err := h.issueSession(c, account)
	if err != nil {
		logger.Error("session creation failed", map[string]any{"error": err.Error()})
		respondError(c, http.StatusInternalServerError, "Internal server error", "Failed to create session")
		return
	}

	respond(c, http.StatusCreated, "Registered successfully", payload)
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.deps.Credentials.Authenticate(
		c.Request.Context(),
		req.Email,
		req.Password,
	)
	if err != nil {
		// Identical response for unknown email and wrong password.
		respondError(c, http.StatusUnauthorized, "Unauthorized", "Invalid email or password")
		return
	}

	payload, err := h.issueSession(c, account)
	if err != nil {
		logger.Error("session creation failed", map[string]any{"error": err.Error()})
		respondError(c, http.StatusInternalServerError, "Internal server error", "Failed to create session")
		return
	}

	respond(c, http.StatusOK, "Logged in successfully", payload)
}

func (h *Handler) Logout(c *gin.Context) {
	principal, ok := middleware.PrincipalFromContext(c.Request.Context())
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized", "No valid authorization token provided")
		return
	}

	if err := h.deps.Sessions.Delete(c.Request.Context(), principal.Token); err != nil {
		logger.Error("logout failed", map[string]any{
			"user_id": principal.UserID,
			"error":   err.Error(),
		})
		respondError(c, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	session.ClearCookie(c.Writer, session.CookieOptions{
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	respond(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *Handler) Refresh(c *gin.Context) {
	var req refreshRequest
	// Tolerate an empty or malformed body; the explicit check below
	// produces the contract's 400 before any store call.
	_ = c.ShouldBindJSON(&req)

	if req.RefreshToken == "" {
		respondError(c, http.StatusBadRequest, "Bad Request", "refreshToken is required")
		return
	}

	rt, err := h.deps.Sessions.GetRefresh(c.Request.Context(), req.RefreshToken)
	if err != nil || rt == nil || time.Now().After(rt.ExpiresAt) {
		respondError(c, http.StatusUnauthorized, "Token refresh failed", "Invalid or expired refresh token")
		return
	}

	payload, err := h.issueSession(c, &credentials.Account{
		UserID: rt.UserID,
		Email:  rt.Email,
	})
	if err != nil {
		logger.Error("session rotation failed", map[string]any{"error": err.Error()})
		respondError(c, http.StatusInternalServerError, "Internal server error", "Failed to refresh session")
		return
	}

	// Rotation: the presented refresh token is single-use.
	if err := h.deps.Sessions.DeleteRefresh(c.Request.Context(), req.RefreshToken); err != nil {
		logger.Warn("stale refresh token not deleted", map[string]any{"error": err.Error()})
	}

	respond(c, http.StatusOK, "Token refreshed successfully", payload)
}
