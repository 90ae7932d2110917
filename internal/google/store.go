package google

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"habit-service/internal/db"
)

// ErrNoTokens means the user has never connected their Google account.
var ErrNoTokens = errors.New("google: no stored tokens")

// TokenRecord mirrors a row in user_google_tokens. One record per
// user; a later exchange replaces the prior record entirely.
type TokenRecord struct {
	UserID       string    `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	TokenType    string    `json:"token_type"`
	Scope        string    `json:"scope"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type TokenStore struct {
	db *db.DB
}

func NewTokenStore(db *db.DB) *TokenStore {
	return &TokenStore{db: db}
}

// Upsert replaces the user's token record wholesale, keyed on user_id.
// No merge: stale fields from a prior grant must not survive.
func (s *TokenStore) Upsert(ctx context.Context, rec TokenRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_google_tokens
			(user_id, access_token, refresh_token, expires_at, token_type, scope, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			expires_at = EXCLUDED.expires_at,
			token_type = EXCLUDED.token_type,
			scope = EXCLUDED.scope,
			updated_at = NOW()
	`, rec.UserID, rec.AccessToken, rec.RefreshToken, rec.ExpiresAt, rec.TokenType, rec.Scope)
	return err
}

func (s *TokenStore) Get(ctx context.Context, userID string) (*TokenRecord, error) {
	var rec TokenRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, access_token, refresh_token, expires_at, token_type, scope, updated_at
		FROM user_google_tokens
		WHERE user_id = $1
	`, userID).Scan(
		&rec.UserID, &rec.AccessToken, &rec.RefreshToken,
		&rec.ExpiresAt, &rec.TokenType, &rec.Scope, &rec.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoTokens
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
