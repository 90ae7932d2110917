package handler

import (
	"context"
	"time"

	"habit-service/internal/auth/credentials"
	"habit-service/internal/calendar"
	"habit-service/internal/google"
	"habit-service/internal/habit"
	"habit-service/internal/session"

	"github.com/gin-gonic/gin"
)

// CredentialService is the slice of the credentials package the auth
// handlers use.
type CredentialService interface {
	Register(ctx context.Context, email, password, fullName string) (*credentials.Account, error)
	Authenticate(ctx context.Context, email, password string) (*credentials.Account, error)
}

// ProfileStore is the privileged profile-creation path.
type ProfileStore interface {
	CreateProfile(ctx context.Context, id, email string) error
}

// HabitStore is the habit/log persistence surface the handlers use.
// Satisfied by *habit.Store.
type HabitStore interface {
	Create(ctx context.Context, h habit.Habit) (*habit.Habit, error)
	Get(ctx context.Context, id, userID string) (*habit.Habit, error)
	List(ctx context.Context, userID string, activeOnly bool) ([]habit.Habit, error)
	Update(ctx context.Context, h habit.Habit) (*habit.Habit, error)
	Delete(ctx context.Context, id, userID string) error

	CreateLog(ctx context.Context, l habit.Log) (*habit.Log, error)
	ListLogs(ctx context.Context, userID string, f habit.LogFilter) ([]habit.Log, error)
	DeleteLog(ctx context.Context, id, userID string) (*habit.Log, error)
	CompletionTimes(ctx context.Context, habitID, userID string) ([]time.Time, error)

	SaveCalendarEvent(ctx context.Context, userID, habitID, googleEventID string) error
}

// GoogleTokenStore persists per-user Google OAuth tokens.
type GoogleTokenStore interface {
	Upsert(ctx context.Context, rec google.TokenRecord) error
	Get(ctx context.Context, userID string) (*google.TokenRecord, error)
}

// CalendarAPI is the per-user Google Calendar client surface.
type CalendarAPI interface {
	CreateReminder(ctx context.Context, event calendar.Event) (*calendar.Event, error)
	ListHabitEvents(ctx context.Context, start, end string) ([]calendar.Event, error)
	DeleteReminder(ctx context.Context, eventID string) error
}

// GoogleAuth is the OAuth side of the Google integration.
type GoogleAuth interface {
	google.Exchanger
	AuthCodeURL(state string) string
}

// Deps are the collaborators a Handler composes. Everything is an
// interface so handler tests run without Postgres, Redis, or Google.
type Deps struct {
	Sessions     session.Store
	Credentials  CredentialService
	Profiles     ProfileStore
	Habits       HabitStore
	GoogleTokens GoogleTokenStore
	GoogleAuth   GoogleAuth

	// SiteURL is the public base for browser redirects.
	SiteURL string

	// NewCalendar builds a calendar client for a stored access token.
	// Defaults to the real Google-backed service.
	NewCalendar func(ctx context.Context, accessToken string) CalendarAPI
}

type Handler struct {
	deps Deps
}

func NewHandler(deps Deps) *Handler {
	if deps.NewCalendar == nil {
		deps.NewCalendar = func(ctx context.Context, accessToken string) CalendarAPI {
			return calendar.NewService(ctx, accessToken)
		}
	}
	return &Handler{deps: deps}
}

// RegisterRoutes wires the HTTP surface. requireAuth guards every
// route that operates on the caller's own rows.
func (h *Handler) RegisterRoutes(r *gin.Engine, requireAuth gin.HandlerFunc) {
	api := r.Group("/api")

	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.POST("/auth/refresh", h.Refresh)
	api.GET("/auth/google/callback", h.GoogleCallback)

	// Server-to-server signup sync; not session-gated.
	api.POST("/users/create-profile", h.CreateProfile)

	protected := api.Group("")
	protected.Use(requireAuth)

	protected.POST("/auth/logout", h.Logout)
	protected.GET("/auth/google/connect", h.GoogleConnect)

	protected.GET("/habits", h.ListHabits)
	protected.POST("/habits", h.CreateHabit)
	protected.GET("/habits/:id", h.GetHabit)
	protected.PUT("/habits/:id", h.UpdateHabit)
	protected.DELETE("/habits/:id", h.DeleteHabit)

	protected.GET("/habit-logs", h.ListHabitLogs)
	protected.POST("/habit-logs", h.CreateHabitLog)
	protected.DELETE("/habit-logs/:id", h.DeleteHabitLog)

	protected.GET("/analytics/dashboard", h.DashboardAnalytics)
	protected.GET("/analytics/habits/:id/stats", h.HabitStats)

	protected.POST("/calendar/reminders", h.CreateReminder)
	protected.GET("/calendar/reminders", h.ListReminders)
}
