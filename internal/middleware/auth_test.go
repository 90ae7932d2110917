package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"habit-service/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	sessions map[string]session.Session
	deleted  []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: make(map[string]session.Session)}
}

func (f *fakeStore) Create(_ context.Context, s session.Session) error {
	f.sessions[s.Token] = s
	return nil
}

func (f *fakeStore) Get(_ context.Context, token string) (*session.Session, error) {
	s, ok := f.sessions[token]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeStore) Delete(_ context.Context, token string) error {
	delete(f.sessions, token)
	f.deleted = append(f.deleted, token)
	return nil
}

func (f *fakeStore) CreateRefresh(context.Context, session.RefreshToken) error { return nil }
func (f *fakeStore) GetRefresh(context.Context, string) (*session.RefreshToken, error) {
	return nil, nil
}
func (f *fakeStore) DeleteRefresh(context.Context, string) error { return nil }

func okHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		require.True(t, ok, "principal must be attached on success")
		w.Header().Set("X-User", p.UserID)
		w.WriteHeader(http.StatusOK)
	})
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRequireAuthMissingHeader(t *testing.T) {
	mw := NewAuthMiddleware(newFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	mw.RequireAuth(okHandler(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Unauthorized", body["error"])
	assert.Equal(t, "No valid authorization token provided", body["message"])
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	mw := NewAuthMiddleware(newFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	mw.RequireAuth(okHandler(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", decodeEnvelope(t, rec)["error"])
}

func TestRequireAuthUnknownToken(t *testing.T) {
	mw := NewAuthMiddleware(newFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer nope")
	rec := httptest.NewRecorder()
	mw.RequireAuth(okHandler(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", decodeEnvelope(t, rec)["error"])
}

func TestRequireAuthValidBearer(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.Create(context.Background(), session.Session{
		Token:     "tok-1",
		UserID:    "user-1",
		Email:     "a@b.com",
		ExpiresAt: time.Now().Add(time.Hour),
	}))
	mw := NewAuthMiddleware(store)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	rec := httptest.NewRecorder()
	mw.RequireAuth(okHandler(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", rec.Header().Get("X-User"))
}

func TestRequireAuthSessionCookieFallback(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.Create(context.Background(), session.Session{
		Token:     "tok-2",
		UserID:    "user-2",
		ExpiresAt: time.Now().Add(time.Hour),
	}))
	mw := NewAuthMiddleware(store)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "tok-2"})
	rec := httptest.NewRecorder()
	mw.RequireAuth(okHandler(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-2", rec.Header().Get("X-User"))
}

func TestRequireAuthExpiredSessionIsDeleted(t *testing.T) {
	store := newFakeStore()
	store.sessions["tok-3"] = session.Session{
		Token:     "tok-3",
		UserID:    "user-3",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	mw := NewAuthMiddleware(store)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer tok-3")
	rec := httptest.NewRecorder()
	mw.RequireAuth(okHandler(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, store.deleted, "tok-3")
}
