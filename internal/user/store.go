package user

import (
	"context"
	"errors"

	"habit-service/internal/db"

	"github.com/lib/pq"
)

// ErrAlreadyExists signals a primary-key collision on profile creation.
// Callers that need idempotent creation treat it as success.
var ErrAlreadyExists = errors.New("user profile already exists")

const uniqueViolation = "23505"

type Store struct {
	db *db.DB
}

func NewStore(db *db.DB) *Store {
	return &Store{db: db}
}

// CreateProfile inserts a profile row with a caller-chosen id. This is
// the privileged path used by server-to-server signup sync; it is not
// gated by a session, so handlers must guard access themselves.
func (s *Store) CreateProfile(ctx context.Context, id, email string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, full_name, avatar_url)
		VALUES ($1, $2, '', '')
	`, id, email)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrAlreadyExists
	}

	return err
}

func (s *Store) GetProfile(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, full_name, avatar_url, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Email, &p.FullName, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
