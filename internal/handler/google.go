package handler

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"time"

	"habit-service/internal/google"
	"habit-service/internal/logger"
	"habit-service/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	stateCookieName = "__oauth_state"
	stateTTL        = 5 * time.Minute
)

func setStateCookie(c *gin.Context) string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)

	state := base64.RawURLEncoding.EncodeToString(b)

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(stateTTL.Seconds()),
	})

	return state
}

func clearStateCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// GoogleConnect starts the calendar consent flow for the current user.
func (h *Handler) GoogleConnect(c *gin.Context) {
	state := setStateCookie(c)
	c.Redirect(http.StatusFound, h.deps.GoogleAuth.AuthCodeURL(state))
}

// GoogleCallback finishes the calendar consent flow. Strictly linear:
// every path ends in exactly one redirect, and failures surface as a
// machine-readable error query parameter because the caller is a
// browser mid-navigation, not an API client.
func (h *Handler) GoogleCallback(c *gin.Context) {
	redirect := func(path string) {
		c.Redirect(http.StatusFound, h.deps.SiteURL+path)
	}

	if c.Query("error") != "" {
		redirect("/calendar?error=access_denied")
		return
	}

	code := c.Query("code")
	if code == "" {
		redirect("/calendar?error=no_code")
		return
	}

	// The browser identifies the user via the session cookie set at
	// login; the bearer header is not available mid-redirect.
	cookie, err := c.Request.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		redirect("/login?error=not_authenticated")
		return
	}

	sess, err := h.deps.Sessions.Get(c.Request.Context(), cookie.Value)
	if err != nil || sess == nil || time.Now().After(sess.ExpiresAt) {
		redirect("/login?error=not_authenticated")
		return
	}

	// State is only checked when this server initiated the flow (the
	// state cookie exists); legacy client-initiated connects carry none.
	if stateCookie, err := c.Request.Cookie(stateCookieName); err == nil && stateCookie.Value != "" {
		clearStateCookie(c)
		if c.Query("state") != stateCookie.Value {
			logger.Warn("google callback state mismatch", map[string]any{"user_id": sess.UserID})
			redirect("/calendar?error=auth_failed")
			return
		}
	}

	tokens, err := h.deps.GoogleAuth.Exchange(c.Request.Context(), code)
	if err != nil {
		logger.Error("google token exchange failed", map[string]any{
			"user_id": sess.UserID,
			"error":   err.Error(),
		})
		redirect("/calendar?error=auth_failed")
		return
	}

	err = h.deps.GoogleTokens.Upsert(c.Request.Context(), google.TokenRecord{
		UserID:       sess.UserID,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.Expiry,
		TokenType:    tokens.TokenType,
		Scope:        tokens.Scope,
	})
	if err != nil {
		logger.Error("google token storage failed", map[string]any{
			"user_id": sess.UserID,
			"error":   err.Error(),
		})
		redirect("/calendar?error=storage_failed")
		return
	}

	redirect("/calendar?connected=true")
}
