package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
)

const baseURL = "https://www.googleapis.com/calendar/v3"

// Service talks to the Google Calendar API on behalf of one user,
// authenticated with their stored access token.
type Service struct {
	client  *http.Client
	baseURL string
}

// NewService builds a calendar client from a bearer access token.
func NewService(ctx context.Context, accessToken string) *Service {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	return &Service{
		client:  oauth2.NewClient(ctx, src),
		baseURL: baseURL,
	}
}

// NewServiceWithBase is for tests pointing at a local server.
func NewServiceWithBase(client *http.Client, base string) *Service {
	return &Service{client: client, baseURL: base}
}

func (s *Service) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("calendar: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("calendar: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("calendar: %s %s returned %d: %s", method, path, resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// CreateReminder inserts a (possibly recurring) event into the user's
// primary calendar.
func (s *Service) CreateReminder(ctx context.Context, event Event) (*Event, error) {
	var created Event
	err := s.do(ctx, http.MethodPost, "/calendars/primary/events", event, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ListHabitEvents returns habit events in [start, end], expanded to
// single instances in start order.
func (s *Service) ListHabitEvents(ctx context.Context, start, end string) ([]Event, error) {
	q := url.Values{}
	q.Set("timeMin", start)
	q.Set("timeMax", end)
	q.Set("q", "habit")
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")

	var list struct {
		Items []Event `json:"items"`
	}
	err := s.do(ctx, http.MethodGet, "/calendars/primary/events?"+q.Encode(), nil, &list)
	if err != nil {
		return nil, err
	}
	return list.Items, nil
}

// DeleteReminder removes an event. Used as best-effort cleanup when
// the local record cannot be written.
func (s *Service) DeleteReminder(ctx context.Context, eventID string) error {
	return s.do(ctx, http.MethodDelete, "/calendars/primary/events/"+url.PathEscape(eventID), nil, nil)
}
