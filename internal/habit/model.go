package habit

import "time"

// Frequency is the cadence a habit is tracked at. Stats and calendar
// recurrence both key off it.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// ValidFrequency reports whether f is one of the supported cadences.
func ValidFrequency(f Frequency) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

type Habit struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Frequency   Frequency `json:"frequency"`
	TargetCount int       `json:"target_count"`
	Color       string    `json:"color"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Log records one completion of a habit.
type Log struct {
	ID          string    `json:"id"`
	HabitID     string    `json:"habit_id"`
	UserID      string    `json:"user_id"`
	CompletedAt time.Time `json:"completed_at"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

// Stats are the computed numbers for a single habit.
type Stats struct {
	HabitID           string      `json:"habitId"`
	CurrentStreak     int         `json:"currentStreak"`
	LongestStreak     int         `json:"longestStreak"`
	CompletionRate    float64     `json:"completionRate"`
	TotalCompletions  int         `json:"totalCompletions"`
	LastCompleted     *time.Time  `json:"lastCompleted"`
	CompletionHistory []time.Time `json:"completionHistory"`
}

// DashboardStats aggregates across all of a user's habits.
type DashboardStats struct {
	TotalHabits       int           `json:"totalHabits"`
	ActiveHabits      int           `json:"activeHabits"`
	TotalCompletions  int           `json:"totalCompletions"`
	AvgCompletionRate float64       `json:"avgCompletionRate"`
	CurrentStreaks    []StreakEntry `json:"currentStreaks"`
	RecentActivity    []Log         `json:"recentActivity"`
}

type StreakEntry struct {
	HabitID string `json:"habitId"`
	Title   string `json:"title"`
	Streak  int    `json:"streak"`
}
