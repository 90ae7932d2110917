package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateHabit(t *testing.T) {
	e := newEnv(t)

	t.Run("requires title and frequency", func(t *testing.T) {
		rec := e.do(t, http.MethodPost, "/api/habits", map[string]any{}, asAlice())
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects unknown frequency", func(t *testing.T) {
		rec := e.do(t, http.MethodPost, "/api/habits", map[string]any{
			"title":     "Read",
			"frequency": "hourly",
		}, asAlice())
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("applies defaults", func(t *testing.T) {
		rec := e.do(t, http.MethodPost, "/api/habits", map[string]any{
			"title":     "Read",
			"frequency": "daily",
		}, asAlice())
		require.Equal(t, http.StatusCreated, rec.Code)
		data := envelope(t, rec)["data"].(map[string]any)
		assert.Equal(t, aliceID, data["user_id"])
		assert.Equal(t, float64(1), data["target_count"])
		assert.NotEmpty(t, data["color"])
		assert.Equal(t, true, data["is_active"])
	})
}

func TestGetHabitNotOwnedMatchesNotFound(t *testing.T) {
	e := newEnv(t)
	their := seedHabit(t, e, "user-mallory", "Other")

	recTheirs := e.do(t, http.MethodGet, "/api/habits/"+their.ID, nil, asAlice())
	recMissing := e.do(t, http.MethodGet, "/api/habits/no-such-habit", nil, asAlice())

	assert.Equal(t, http.StatusNotFound, recTheirs.Code)
	assert.Equal(t, recMissing.Body.String(), recTheirs.Body.String())
}

func TestUpdateHabit(t *testing.T) {
	e := newEnv(t)
	h := seedHabit(t, e, aliceID, "Read")

	rec := e.do(t, http.MethodPut, "/api/habits/"+h.ID, map[string]any{
		"title":     "Read more",
		"frequency": "weekly",
		"isActive":  false,
	}, asAlice())

	require.Equal(t, http.StatusOK, rec.Code)
	data := envelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, "Read more", data["title"])
	assert.Equal(t, "weekly", data["frequency"])
	assert.Equal(t, false, data["is_active"])
}

func TestDeleteHabit(t *testing.T) {
	e := newEnv(t)
	h := seedHabit(t, e, aliceID, "Read")

	rec := e.do(t, http.MethodDelete, "/api/habits/"+h.ID, nil, asAlice())
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodDelete, "/api/habits/"+h.ID, nil, asAlice())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListHabitsScopedToOwner(t *testing.T) {
	e := newEnv(t)
	seedHabit(t, e, aliceID, "Mine")
	seedHabit(t, e, "user-mallory", "Theirs")

	rec := e.do(t, http.MethodGet, "/api/habits", nil, asAlice())
	require.Equal(t, http.StatusOK, rec.Code)

	habits := envelope(t, rec)["data"].([]any)
	require.Len(t, habits, 1)
	assert.Equal(t, "Mine", habits[0].(map[string]any)["title"])
}
