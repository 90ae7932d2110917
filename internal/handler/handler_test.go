package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"habit-service/internal/auth/credentials"
	"habit-service/internal/calendar"
	"habit-service/internal/google"
	"habit-service/internal/habit"
	"habit-service/internal/middleware"
	"habit-service/internal/session"
	"habit-service/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------

type fakeSessions struct {
	sessions        map[string]session.Session
	refreshes       map[string]session.RefreshToken
	getRefreshCalls int
	deleteErr       error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{
		sessions:  make(map[string]session.Session),
		refreshes: make(map[string]session.RefreshToken),
	}
}

func (f *fakeSessions) Create(_ context.Context, s session.Session) error {
	f.sessions[s.Token] = s
	return nil
}

func (f *fakeSessions) Get(_ context.Context, token string) (*session.Session, error) {
	s, ok := f.sessions[token]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeSessions) Delete(_ context.Context, token string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessions) CreateRefresh(_ context.Context, rt session.RefreshToken) error {
	f.refreshes[rt.Token] = rt
	return nil
}

func (f *fakeSessions) GetRefresh(_ context.Context, token string) (*session.RefreshToken, error) {
	f.getRefreshCalls++
	rt, ok := f.refreshes[token]
	if !ok {
		return nil, nil
	}
	return &rt, nil
}

func (f *fakeSessions) DeleteRefresh(_ context.Context, token string) error {
	delete(f.refreshes, token)
	return nil
}

type fakeCredentials struct {
	accounts    map[string]credentials.Account // keyed by email
	passwords   map[string]string
	registerErr error
}

func newFakeCredentials() *fakeCredentials {
	return &fakeCredentials{
		accounts:  make(map[string]credentials.Account),
		passwords: make(map[string]string),
	}
}

func (f *fakeCredentials) Register(_ context.Context, email, password, fullName string) (*credentials.Account, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	if _, ok := f.accounts[email]; ok {
		return nil, credentials.ErrAlreadyRegistered
	}
	account := credentials.Account{
		UserID:   "user-" + email,
		Email:    email,
		FullName: fullName,
	}
	f.accounts[email] = account
	f.passwords[email] = password
	return &account, nil
}

func (f *fakeCredentials) Authenticate(_ context.Context, email, password string) (*credentials.Account, error) {
	account, ok := f.accounts[email]
	if !ok || f.passwords[email] != password {
		return nil, credentials.ErrInvalidCredentials
	}
	return &account, nil
}

type fakeProfiles struct {
	created   map[string]string // id -> email
	createErr error
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{created: make(map[string]string)}
}

func (f *fakeProfiles) CreateProfile(_ context.Context, id, email string) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.created[id]; ok {
		return user.ErrAlreadyExists
	}
	f.created[id] = email
	return nil
}

type fakeHabits struct {
	habits      map[string]habit.Habit
	logs        map[string]habit.Log
	times       map[string][]time.Time
	savedEvents map[string]string // habitID -> google event id
	saveErr     error
	nextID      int
}

func newFakeHabits() *fakeHabits {
	return &fakeHabits{
		habits:      make(map[string]habit.Habit),
		logs:        make(map[string]habit.Log),
		times:       make(map[string][]time.Time),
		savedEvents: make(map[string]string),
	}
}

func (f *fakeHabits) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeHabits) Create(_ context.Context, h habit.Habit) (*habit.Habit, error) {
	h.ID = f.id("habit")
	h.IsActive = true
	h.CreatedAt = time.Now()
	h.UpdatedAt = h.CreatedAt
	f.habits[h.ID] = h
	return &h, nil
}

func (f *fakeHabits) Get(_ context.Context, id, userID string) (*habit.Habit, error) {
	h, ok := f.habits[id]
	if !ok || h.UserID != userID {
		return nil, habit.ErrNotFound
	}
	return &h, nil
}

func (f *fakeHabits) List(_ context.Context, userID string, activeOnly bool) ([]habit.Habit, error) {
	out := []habit.Habit{}
	for _, h := range f.habits {
		if h.UserID != userID {
			continue
		}
		if activeOnly && !h.IsActive {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeHabits) Update(_ context.Context, h habit.Habit) (*habit.Habit, error) {
	existing, ok := f.habits[h.ID]
	if !ok || existing.UserID != h.UserID {
		return nil, habit.ErrNotFound
	}
	h.CreatedAt = existing.CreatedAt
	h.UpdatedAt = time.Now()
	f.habits[h.ID] = h
	return &h, nil
}

func (f *fakeHabits) Delete(_ context.Context, id, userID string) error {
	h, ok := f.habits[id]
	if !ok || h.UserID != userID {
		return habit.ErrNotFound
	}
	delete(f.habits, id)
	return nil
}

func (f *fakeHabits) CreateLog(_ context.Context, l habit.Log) (*habit.Log, error) {
	l.ID = f.id("log")
	l.CreatedAt = time.Now()
	f.logs[l.ID] = l
	return &l, nil
}

func (f *fakeHabits) ListLogs(_ context.Context, userID string, filter habit.LogFilter) ([]habit.Log, error) {
	out := []habit.Log{}
	for _, l := range f.logs {
		if l.UserID != userID {
			continue
		}
		if filter.HabitID != "" && l.HabitID != filter.HabitID {
			continue
		}
		out = append(out, l)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeHabits) DeleteLog(_ context.Context, id, userID string) (*habit.Log, error) {
	l, ok := f.logs[id]
	if !ok || l.UserID != userID {
		return nil, habit.ErrNotFound
	}
	delete(f.logs, id)
	return &l, nil
}

func (f *fakeHabits) CompletionTimes(_ context.Context, habitID, _ string) ([]time.Time, error) {
	return f.times[habitID], nil
}

func (f *fakeHabits) SaveCalendarEvent(_ context.Context, _, habitID, googleEventID string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedEvents[habitID] = googleEventID
	return nil
}

type fakeGoogleTokens struct {
	records   map[string]google.TokenRecord
	upsertErr error
}

func newFakeGoogleTokens() *fakeGoogleTokens {
	return &fakeGoogleTokens{records: make(map[string]google.TokenRecord)}
}

func (f *fakeGoogleTokens) Upsert(_ context.Context, rec google.TokenRecord) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.records[rec.UserID] = rec
	return nil
}

func (f *fakeGoogleTokens) Get(_ context.Context, userID string) (*google.TokenRecord, error) {
	rec, ok := f.records[userID]
	if !ok {
		return nil, google.ErrNoTokens
	}
	return &rec, nil
}

type fakeGoogleAuth struct {
	tokens        *google.Tokens
	exchangeErr   error
	exchangedCode string
}

func (f *fakeGoogleAuth) AuthCodeURL(state string) string {
	return "https://accounts.google.com/o/oauth2/auth?state=" + state
}

func (f *fakeGoogleAuth) Exchange(_ context.Context, code string) (*google.Tokens, error) {
	f.exchangedCode = code
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return f.tokens, nil
}

type fakeCalendar struct {
	created    []calendar.Event
	createErr  error
	deleted    []string
	listEvents []calendar.Event
	listErr    error
}

func (f *fakeCalendar) CreateReminder(_ context.Context, event calendar.Event) (*calendar.Event, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	event.ID = "evt-42"
	event.HTMLLink = "https://calendar.google.com/event?eid=evt-42"
	f.created = append(f.created, event)
	return &event, nil
}

func (f *fakeCalendar) ListHabitEvents(_ context.Context, _, _ string) ([]calendar.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listEvents, nil
}

func (f *fakeCalendar) DeleteReminder(_ context.Context, eventID string) error {
	f.deleted = append(f.deleted, eventID)
	return nil
}

// ---------------------------------------------------------------
// Harness
// ---------------------------------------------------------------

const (
	testSiteURL = "https://habits.example.com"
	aliceToken  = "alice-session-token"
	aliceID     = "user-alice"
)

type env struct {
	router   *gin.Engine
	sessions *fakeSessions
	creds    *fakeCredentials
	profiles *fakeProfiles
	habits   *fakeHabits
	gTokens  *fakeGoogleTokens
	gAuth    *fakeGoogleAuth
	cal      *fakeCalendar
}

// newEnv builds a full router over fakes with one authenticated user
// ("alice") already holding a valid session.
func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	e := &env{
		sessions: newFakeSessions(),
		creds:    newFakeCredentials(),
		profiles: newFakeProfiles(),
		habits:   newFakeHabits(),
		gTokens:  newFakeGoogleTokens(),
		gAuth:    &fakeGoogleAuth{},
		cal:      &fakeCalendar{},
	}

	e.sessions.sessions[aliceToken] = session.Session{
		Token:     aliceToken,
		UserID:    aliceID,
		Email:     "alice@example.com",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	h := NewHandler(Deps{
		Sessions:     e.sessions,
		Credentials:  e.creds,
		Profiles:     e.profiles,
		Habits:       e.habits,
		GoogleTokens: e.gTokens,
		GoogleAuth:   e.gAuth,
		SiteURL:      testSiteURL,
		NewCalendar: func(context.Context, string) CalendarAPI {
			return e.cal
		},
	})

	e.router = gin.New()
	authMW := middleware.NewAuthMiddleware(e.sessions)
	h.RegisterRoutes(e.router, middleware.GinRequireAuth(authMW))
	return e
}

type reqOpts struct {
	token   string
	cookies []*http.Cookie
}

func (e *env) do(t *testing.T, method, path string, body any, opts reqOpts) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if opts.token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.token)
	}
	for _, c := range opts.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func asAlice() reqOpts {
	return reqOpts{token: aliceToken}
}

func envelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return body
}

var errBoom = errors.New("boom")
