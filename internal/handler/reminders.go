package handler

import (
	"errors"
	"net/http"
	"time"

	"habit-service/internal/calendar"
	"habit-service/internal/google"
	"habit-service/internal/habit"
	"habit-service/internal/logger"

	"github.com/gin-gonic/gin"
)

type createReminderRequest struct {
	HabitID      string `json:"habitId" binding:"required"`
	ReminderTime string `json:"reminderTime" binding:"required"`
}

// CreateReminder pushes a recurring reminder for an owned habit into
// the caller's Google Calendar using their stored tokens.
func (h *Handler) CreateReminder(c *gin.Context) {
	p := principal(c)
	ctx := c.Request.Context()

	var req createReminderRequest
	if !bindJSON(c, &req) {
		return
	}

	reminderTime, err := time.Parse(time.RFC3339, req.ReminderTime)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Validation failed", "reminderTime must be an RFC 3339 timestamp")
		return
	}

	hb, err := h.deps.Habits.Get(ctx, req.HabitID, p.UserID)
	if err != nil {
		if errors.Is(err, habit.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Not found", "Habit not found or unauthorized")
			return
		}
		logger.Error("habit fetch failed", map[string]any{"error": err.Error()})
		respondError(c, http.StatusInternalServerError, "Internal server error", "Failed to create calendar reminder")
		return
	}

	rec, err := h.deps.GoogleTokens.Get(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, google.ErrNoTokens) {
			respondError(c, http.StatusBadRequest, "Bad Request", "Google Calendar is not connected")
			return
		}
		logger.Error("google token fetch failed", map[string]any{"error": err.Error()})
		respondError(c, http.StatusInternalServerError, "Internal server error", "Failed to create calendar reminder")
		return
	}

	svc := h.deps.NewCalendar(ctx, rec.AccessToken)
	event := calendar.ReminderEvent(hb.Title, hb.Description, reminderTime, hb.Frequency)

	created, err := svc.CreateReminder(ctx, event)
	if err != nil {
		logger.Error("calendar event creation failed", map[string]any{"error": err.Error()})
		respondError(c, http.StatusInternalServerError, "Internal server error", "Failed to create calendar reminder")
		return
	}

	if err := h.deps.Habits.SaveCalendarEvent(ctx, p.UserID, hb.ID, created.ID); err != nil {
		logger.Error("calendar event record failed", map[string]any{"error": err.Error()})
		// Best-effort cleanup so the calendar does not keep an event
		// this service has no record of.
		if cleanupErr := svc.DeleteReminder(ctx, created.ID); cleanupErr != nil {
			logger.Warn("calendar event cleanup failed", map[string]any{"error": cleanupErr.Error()})
		}
		respondError(c, http.StatusInternalServerError, "Internal server error", "Failed to create calendar reminder")
		return
	}

	respond(c, http.StatusOK, "Calendar reminder created", gin.H{
		"eventId":  created.ID,
		"eventUrl": created.HTMLLink,
	})
}

func (h *Handler) ListReminders(c *gin.Context) {
	p := principal(c)
	ctx := c.Request.Context()

	start := c.Query("startDate")
	end := c.Query("endDate")
	if start == "" || end == "" {
		respondError(c, http.StatusBadRequest, "Bad Request", "startDate and endDate are required")
		return
	}

	rec, err := h.deps.GoogleTokens.Get(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, google.ErrNoTokens) {
			respondError(c, http.StatusBadRequest, "Bad Request", "Google Calendar is not connected")
			return
		}
		logger.Error("google token fetch failed", map[string]any{"error": err.Error()})
		respondError(c, http.StatusInternalServerError, "Internal server error", "Failed to fetch calendar events")
		return
	}

	events, err := h.deps.NewCalendar(ctx, rec.AccessToken).ListHabitEvents(ctx, start, end)
	if err != nil {
		logger.Error("calendar event list failed", map[string]any{"error": err.Error()})
		respondError(c, http.StatusInternalServerError, "Internal server error", "Failed to fetch calendar events")
		return
	}

	respond(c, http.StatusOK, "Calendar events fetched", gin.H{"events": events})
}
