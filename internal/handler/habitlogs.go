package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"habit-service/internal/habit"
	"habit-service/internal/logger"

	"github.com/gin-gonic/gin"
)

const defaultLogPageSize = 50

type createHabitLogRequest struct {
	HabitID     string `json:"habitId" binding:"required"`
	CompletedAt string `json:"completedAt"`
	Notes       string `json:"notes"`
}

func (h *Handler) ListHabitLogs(c *gin.Context) {
	p := principal(c)

	filter := habit.LogFilter{
		HabitID: c.Query("habitId"),
		Limit:   defaultLogPageSize,
	}

	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(c, http.StatusBadRequest, "Validation failed", "limit must be a positive integer")
			return
		}
		filter.Limit = n
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Validation failed", "from must be an RFC 3339 timestamp")
			return
		}
		filter.From = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Validation failed", "to must be an RFC 3339 timestamp")
			return
		}
		filter.To = t
	}

	// Fetch one extra row to learn whether a further page exists.
	probe := filter
	probe.Limit = filter.Limit + 1

	logs, err := h.deps.Habits.ListLogs(c.Request.Context(), p.UserID, probe)
	if err != nil {
		logger.Error("habit log list failed", map[string]any{"error": err.Error()})
		respondError(c, http.StatusInternalServerError, "Internal server error", "Something went wrong fetching habit logs")
		return
	}

	hasMore := len(logs) > filter.Limit
	if hasMore {
		logs = logs[:filter.Limit]
	}

	respond(c, http.StatusOK, "Habit logs fetched", gin.H{
		"logs":    logs,
		"total":   len(logs),
		"hasMore": hasMore,
	})
}

func (h *Handler) CreateHabitLog(c *gin.Context) {
	p := principal(c)

	var req createHabitLogRequest
	if !bindJSON(c, &req) {
		return
	}

	completedAt := time.Now()
	if req.CompletedAt != "" {
		t, err := time.Parse(time.RFC3339, req.CompletedAt)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Validation failed", "completedAt must be an RFC 3339 timestamp")
			return
		}
		completedAt = t
	}

	// The habit must exist and belong to the caller.
	if _, err := h.deps.Habits.Get(c.Request.Context(), req.HabitID, p.UserID); err != nil {
		if errors.Is(err, habit.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Not found", "Habit not found or unauthorized")
			return
		}
		logger.Error("habit fetch failed", map[string]any{"error": err.Error()})
		respondError(c, http.StatusInternalServerError, "Internal server error", "Something went wrong logging habit completion")
		return
	}

	created, err := h.deps.Habits.CreateLog(c.Request.Context(), habit.Log{
		HabitID:     req.HabitID,
		UserID:      p.UserID,
		CompletedAt: completedAt,
		Notes:       req.Notes,
	})
	if err != nil {
		logger.Error("habit log creation failed", map[string]any{"error": err.Error()})
		respondError(c, http.StatusInternalServerError, "Internal server error", "Something went wrong logging habit completion")
		return
	}

	respond(c, http.StatusCreated, "Habit completion logged", created)
}

// DeleteHabitLog removes one owned log entry. A missing id and an id
// owned by someone else produce the same 404 so existence never leaks.
func (h *Handler) DeleteHabitLog(c *gin.Context) {
	p := principal(c)

	deleted, err := h.deps.Habits.DeleteLog(c.Request.Context(), c.Param("id"), p.UserID)
	if err != nil {
		if errors.Is(err, habit.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Not found", "Habit log not found or unauthorized")
			return
		}
		logger.Error("habit log delete failed", map[string]any{"error": err.Error()})
		respondError(c, http.StatusInternalServerError, "Internal server error", "Something went wrong deleting habit log")
		return
	}

	respond(c, http.StatusOK, "Habit log deleted", deleted)
}
