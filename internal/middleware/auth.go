package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"habit-service/internal/auth"
	"habit-service/internal/session"
)

// unexported, collision-proof context key
type userContextKeyType struct{}

var userKey = userContextKeyType{}

// Principal is the authenticated identity attached to the request
// context. Token is the session token the request authenticated with,
// kept so logout can revoke exactly that session.
type Principal struct {
	UserID string
	Email  string
	Token  string
}

// PrincipalFromContext extracts the authenticated principal from context.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(userKey).(Principal)
	return p, ok
}

type AuthMiddleware struct {
	Store session.Store
}

func NewAuthMiddleware(store session.Store) *AuthMiddleware {
	return &AuthMiddleware{Store: store}
}

func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Extract bearer token; fall back to the session cookie for
		// browser-origin requests.
		token, err := auth.ExtractBearer(r.Header.Get("Authorization"))
		if err != nil {
			cookie, cErr := r.Cookie(session.CookieName)
			if cErr != nil || cookie.Value == "" {
				unauthorized(w, "Unauthorized", "No valid authorization token provided")
				return
			}
			token = cookie.Value
		}

		// 2. Resolve token to a session
		sess, err := a.Store.Get(r.Context(), token)
		if err != nil || sess == nil {
			unauthorized(w, "Invalid token", "Invalid or expired token")
			return
		}

		// 3. Enforce session expiry
		if time.Now().After(sess.ExpiresAt) {
			_ = a.Store.Delete(r.Context(), token)
			unauthorized(w, "Invalid token", "Invalid or expired token")
			return
		}

		// 4. Attach identity to context
		ctx := context.WithValue(r.Context(), userKey, Principal{
			UserID: sess.UserID,
			Email:  sess.Email,
			Token:  token,
		})

		// 5. Continue request
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   errCode,
		"message": message,
	})
}
