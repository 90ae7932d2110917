package session

import (
	"context"
	"time"
)

// Session represents an authenticated user session. The session token is
// the bearer credential presented by API clients and doubles as the value
// of the browser session cookie.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RefreshToken is the long-lived credential used to mint a replacement
// session. Rotated on every use.
type RefreshToken struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store defines how sessions and refresh tokens are persisted.
// Implementations must be safe for concurrent use.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error

	CreateRefresh(ctx context.Context, rt RefreshToken) error
	GetRefresh(ctx context.Context, token string) (*RefreshToken, error)
	DeleteRefresh(ctx context.Context, token string) error
}
