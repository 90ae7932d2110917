package handler

import (
	"errors"
	"net/http"

	"habit-service/internal/habit"
	"habit-service/internal/logger"
	"habit-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type createHabitRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Frequency   string `json:"frequency" binding:"required"`
	TargetCount int    `json:"targetCount"`
	Color       string `json:"color"`
}

type updateHabitRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Frequency   string `json:"frequency" binding:"required"`
	TargetCount int    `json:"targetCount"`
	Color       string `json:"color"`
	IsActive    *bool  `json:"isActive"`
}

func principal(c *gin.Context) middleware.Principal {
	p, _ := middleware.PrincipalFromContext(c.Request.Context())
	return p
}

func (h *Handler) ListHabits(c *gin.Context) {
	p := principal(c)
	activeOnly := c.Query("active") == "true"

	habits, err := h.deps.Habits.List(c.Request.Context(), p.UserID, activeOnly)
	if err != nil {
		logger.Error("habit list failed", map[string]any{"error": err.Error()})
		respondError(c, http.StatusInternalServerError, "Internal server error", "Something went wrong fetching habits")
		return
	}

	respond(c, http.StatusOK, "Habits fetched", habits)
}

func (h *Handler) CreateHabit(c *gin.Context) {
	p := principal(c)

	var req createHabitRequest
	if !bindJSON(c, &req) {
		return
	}

	freq := habit.Frequency(req.Frequency)
	if !habit.ValidFrequency(freq) {
		respondError(c, http.StatusBadRequest, "Validation failed", "frequency must be daily, weekly or monthly")
		return
	}

	if req.TargetCount <= 0 {
		req.TargetCount = 1
	}
	if req.Color == "" {
		req.Color = "#10b981"
	}

	created, err := h.deps.Habits.Create(c.Request.Context(), habit.Habit{
		UserID:      p.UserID,
		Title:       req.Title,
		Description: req.Description,
		Frequency:   freq,
		TargetCount: req.TargetCount,
		Color:       req.Color,
	})
	if err != nil {
		logger.Error("habit creation failed", map[string]any{"error": err.Error()})
		respondError(c, http.StatusInternalServerError, "Internal server error", "Something went wrong creating habit")
		return
	}

	respond(c, http.StatusCreated, "Habit created", created)
}

func (h *Handler) GetHabit(c *gin.Context) {
	p := principal(c)

	found, err := h.deps.Habits.Get(c.Request.Context(), c.Param("id"), p.UserID)
	if err != nil {
		if errors.Is(err, habit.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Not found", "Habit not found or unauthorized")
			return
		}
		logger.Error("habit fetch failed", map[string]any{"error": err.Error()})
		respondError(c, http.StatusInternalServerError, "Internal server error", "Something went wrong fetching habit")
		return
	}

	respond(c, http.StatusOK, "Habit fetched", found)
}

func (h *Handler) UpdateHabit(c *gin.Context) {
	p := principal(c)

	var req updateHabitRequest
	if !bindJSON(c, &req) {
		return
	}

	freq := habit.Frequency(req.Frequency)
	if !habit.ValidFrequency(freq) {
		respondError(c, http.StatusBadRequest, "Validation failed", "frequency must be daily, weekly or monthly")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	if req.TargetCount <= 0 {
		req.TargetCount = 1
	}

	updated, err := h.deps.Habits.Update(c.Request.Context(), habit.Habit{
		ID:          c.Param("id"),
		UserID:      p.UserID,
		Title:       req.Title,
		Description: req.Description,
		Frequency:   freq,
		TargetCount: req.TargetCount,
		Color:       req.Color,
		IsActive:    isActive,
	})
	if err != nil {
		if errors.Is(err, habit.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Not found", "Habit not found or unauthorized")
			return
		}
		logger.Error("habit update failed", map[string]any{"error": err.Error()})
		respondError(c, http.StatusInternalServerError, "Internal server error", "Something went wrong updating habit")
		return
	}

	respond(c, http.StatusOK, "Habit updated", updated)
}

func (h *Handler) DeleteHabit(c *gin.Context) {
	p := principal(c)

	err := h.deps.Habits.Delete(c.Request.Context(), c.Param("id"), p.UserID)
	if err != nil {
		if errors.Is(err, habit.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Not found", "Habit not found or unauthorized")
			return
		}
		logger.Error("habit delete failed", map[string]any{"error": err.Error()})
		respondError(c, http.StatusInternalServerError, "Internal server error", "Something went wrong deleting habit")
		return
	}

	respond(c, http.StatusOK, "Habit deleted", nil)
}
