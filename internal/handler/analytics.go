package handler

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"habit-service/internal/habit"
	"habit-service/internal/logger"

	"github.com/gin-gonic/gin"
)

func (h *Handler) HabitStats(c *gin.Context) {
	p := principal(c)
	habitID := c.Param("id")

	found, err := h.deps.Habits.Get(c.Request.Context(), habitID, p.UserID)
	if err != nil {
		if errors.Is(err, habit.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Not found", "Habit not found or unauthorized")
			return
		}
		logger.Error("habit fetch failed", map[string]any{"error": err.Error()})
		respondError(c, http.StatusInternalServerError, "Internal server error", "Something went wrong fetching habit statistics")
		return
	}

	times, err := h.deps.Habits.CompletionTimes(c.Request.Context(), habitID, p.UserID)
	if err != nil {
		logger.Error("completion history fetch failed", map[string]any{"error": err.Error()})
		respondError(c, http.StatusInternalServerError, "Internal server error", "Something went wrong fetching habit statistics")
		return
	}

	respond(c, http.StatusOK, "Habit statistics fetched", habit.ComputeStats(found, times, time.Now()))
}

func (h *Handler) DashboardAnalytics(c *gin.Context) {
	p := principal(c)
	ctx := c.Request.Context()
	now := time.Now()

	habits, err := h.deps.Habits.List(ctx, p.UserID, false)
	if err != nil {
		logger.Error("habit list failed", map[string]any{"error": err.Error()})
		respondError(c, http.StatusInternalServerError, "Internal server error", "Something went wrong fetching dashboard analytics")
		return
	}

	stats := habit.DashboardStats{
		TotalHabits:    len(habits),
		CurrentStreaks: []habit.StreakEntry{},
	}

	var rateSum float64
	for i := range habits {
		hb := &habits[i]
		if hb.IsActive {
			stats.ActiveHabits++
		}

		times, err := h.deps.Habits.CompletionTimes(ctx, hb.ID, p.UserID)
		if err != nil {
			logger.Error("completion history fetch failed", map[string]any{"error": err.Error()})
			respondError(c, http.StatusInternalServerError, "Internal server error", "Something went wrong fetching dashboard analytics")
			return
		}

		stats.TotalCompletions += len(times)
		rateSum += habit.CompletionRate(times, hb.Frequency, hb.CreatedAt, now)

		if streak := habit.CurrentStreak(times, hb.Frequency, now); streak > 0 {
			stats.CurrentStreaks = append(stats.CurrentStreaks, habit.StreakEntry{
				HabitID: hb.ID,
				Title:   hb.Title,
				Streak:  streak,
			})
		}
	}

	if len(habits) > 0 {
		stats.AvgCompletionRate = rateSum / float64(len(habits))
	}
	sort.Slice(stats.CurrentStreaks, func(i, j int) bool {
		return stats.CurrentStreaks[i].Streak > stats.CurrentStreaks[j].Streak
	})

	recent, err := h.deps.Habits.ListLogs(ctx, p.UserID, habit.LogFilter{Limit: 10})
	if err != nil {
		logger.Error("recent activity fetch failed", map[string]any{"error": err.Error()})
		respondError(c, http.StatusInternalServerError, "Internal server error", "Something went wrong fetching dashboard analytics")
		return
	}
	stats.RecentActivity = recent

	respond(c, http.StatusOK, "Dashboard analytics fetched", stats)
}
