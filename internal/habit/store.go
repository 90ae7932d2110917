package habit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"habit-service/internal/db"
)

// ErrNotFound covers both a missing row and a row owned by someone
// else. Handlers must not tell the two apart.
var ErrNotFound = errors.New("habit: not found")

type Store struct {
	db *db.DB
}

func NewStore(db *db.DB) *Store {
	return &Store{db: db}
}

const habitColumns = `id, user_id, title, description, frequency, target_count, color, is_active, created_at, updated_at`

func scanHabit(row interface{ Scan(...any) error }) (*Habit, error) {
	var h Habit
	err := row.Scan(
		&h.ID, &h.UserID, &h.Title, &h.Description, &h.Frequency,
		&h.TargetCount, &h.Color, &h.IsActive, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (s *Store) Create(ctx context.Context, h Habit) (*Habit, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO habits (user_id, title, description, frequency, target_count, color)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+habitColumns,
		h.UserID, h.Title, h.Description, h.Frequency, h.TargetCount, h.Color,
	)
	return scanHabit(row)
}

func (s *Store) Get(ctx context.Context, id, userID string) (*Habit, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+habitColumns+`
		FROM habits
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return h, err
}

func (s *Store) List(ctx context.Context, userID string, activeOnly bool) ([]Habit, error) {
	query := `
		SELECT ` + habitColumns + `
		FROM habits
		WHERE user_id = $1`
	if activeOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []Habit{}
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, *h)
	}
	return habits, rows.Err()
}

// Update rewrites the mutable columns of an owned habit and returns the
// new row. Ownership is enforced in the WHERE clause, never by trusting
// a client-supplied user id.
func (s *Store) Update(ctx context.Context, h Habit) (*Habit, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE habits
		SET title = $3, description = $4, frequency = $5,
		    target_count = $6, color = $7, is_active = $8,
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING `+habitColumns,
		h.ID, h.UserID, h.Title, h.Description, h.Frequency,
		h.TargetCount, h.Color, h.IsActive,
	)

	updated, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return updated, err
}

func (s *Store) Delete(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM habits
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const logColumns = `id, habit_id, user_id, completed_at, notes, created_at`

func scanLog(row interface{ Scan(...any) error }) (*Log, error) {
	var l Log
	err := row.Scan(&l.ID, &l.HabitID, &l.UserID, &l.CompletedAt, &l.Notes, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *Store) CreateLog(ctx context.Context, l Log) (*Log, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO habit_logs (habit_id, user_id, completed_at, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING `+logColumns,
		l.HabitID, l.UserID, l.CompletedAt, l.Notes,
	)
	return scanLog(row)
}

// LogFilter narrows ListLogs. Zero values mean "no constraint".
type LogFilter struct {
	HabitID string
	From    time.Time
	To      time.Time
	Limit   int
}

func (s *Store) ListLogs(ctx context.Context, userID string, f LogFilter) ([]Log, error) {
	query := `
		SELECT ` + logColumns + `
		FROM habit_logs
		WHERE user_id = $1`
	args := []any{userID}

	if f.HabitID != "" {
		args = append(args, f.HabitID)
		query += fmt.Sprintf(" AND habit_id = $%d", len(args))
	}
	if !f.From.IsZero() {
		args = append(args, f.From)
		query += fmt.Sprintf(" AND completed_at >= $%d", len(args))
	}
	if !f.To.IsZero() {
		args = append(args, f.To)
		query += fmt.Sprintf(" AND completed_at <= $%d", len(args))
	}

	query += " ORDER BY completed_at DESC"

	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []Log{}
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

// DeleteLog removes an owned habit log and returns the deleted row.
// Zero rows matched maps to ErrNotFound regardless of whether the id
// exists under another owner.
func (s *Store) DeleteLog(ctx context.Context, id, userID string) (*Log, error) {
	row := s.db.QueryRowContext(ctx, `
		DELETE FROM habit_logs
		WHERE id = $1 AND user_id = $2
		RETURNING `+logColumns,
		id, userID,
	)

	l, err := scanLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return l, err
}

// SaveCalendarEvent records the Google Calendar event backing a habit
// reminder so the integration can be audited and cleaned up later.
func (s *Store) SaveCalendarEvent(ctx context.Context, userID, habitID, googleEventID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO habit_calendar_events (user_id, habit_id, google_event_id)
		VALUES ($1, $2, $3)
	`, userID, habitID, googleEventID)
	return err
}

// CompletionTimes returns every completion instant for one owned habit,
// oldest first. Input for streak computation.
func (s *Store) CompletionTimes(ctx context.Context, habitID, userID string) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT completed_at
		FROM habit_logs
		WHERE habit_id = $1 AND user_id = $2
		ORDER BY completed_at ASC
	`, habitID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	times := []time.Time{}
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, rows.Err()
}
