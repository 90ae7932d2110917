package credentials

import (
	"context"
	"database/sql"
	"errors"

	"habit-service/internal/db"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyRegistered  = errors.New("credentials already exist")
)

// Account is the identity slice the auth handlers need after a
// successful register or login.
type Account struct {
	UserID   string
	Email    string
	FullName string
}

type Service struct {
	db *db.DB
}

func NewService(db *db.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Register(
	ctx context.Context,
	email string,
	password string,
	fullName string,
) (*Account, error) {

	var userID uuid.UUID

	// 1. Find or create user by email
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email).Scan(&userID)

	if err == sql.ErrNoRows {
		err = s.db.QueryRowContext(ctx, `
			INSERT INTO users (email, full_name)
			VALUES ($1, $2)
			RETURNING id
		`, email, fullName).Scan(&userID)
	}

	if err != nil {
		return nil, err
	}

	// 2. Check if credentials already exist
	var exists bool
	err = s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM credentials WHERE user_id = $1
		)
	`, userID).Scan(&exists)

	if err != nil {
		return nil, err
	}

	if exists {
		return nil, ErrAlreadyRegistered
	}

	// 3. Hash password
	hash, version, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	// 4. Insert credentials
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO credentials (user_id, password_hash, hash_version)
		VALUES ($1, $2, $3)
	`, userID, hash, version)

	if err != nil {
		return nil, err
	}

	return &Account{
		UserID:   userID.String(),
		Email:    email,
		FullName: fullName,
	}, nil
}

func (s *Service) Authenticate(
	ctx context.Context,
	email string,
	password string,
) (*Account, error) {

	var (
		userID       uuid.UUID
		storedEmail  string
		fullName     string
		passwordHash string
	)

	// 1. Find user + credentials
	err := s.db.QueryRowContext(ctx, `
		SELECT u.id, u.email, u.full_name, c.password_hash
		FROM users u
		JOIN credentials c ON c.user_id = u.id
		WHERE LOWER(u.email) = LOWER($1)
	`, email).Scan(&userID, &storedEmail, &fullName, &passwordHash)

	if err != nil {
		// hide whether user exists or not
		return nil, ErrInvalidCredentials
	}

	// 2. Verify password
	if err := VerifyPassword(passwordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &Account{
		UserID:   userID.String(),
		Email:    storedEmail,
		FullName: fullName,
	}, nil
}
