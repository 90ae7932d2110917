package calendar

import (
	"fmt"
	"time"

	"habit-service/internal/habit"
)

// Event is the subset of a Google Calendar event this service reads
// and writes.
type Event struct {
	ID          string     `json:"id,omitempty"`
	Summary     string     `json:"summary"`
	Description string     `json:"description,omitempty"`
	Start       EventTime  `json:"start"`
	End         EventTime  `json:"end"`
	Recurrence  []string   `json:"recurrence,omitempty"`
	Reminders   *Reminders `json:"reminders,omitempty"`
	HTMLLink    string     `json:"htmlLink,omitempty"`
}

type EventTime struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone,omitempty"`
}

type Reminders struct {
	UseDefault bool               `json:"useDefault"`
	Overrides  []ReminderOverride `json:"overrides,omitempty"`
}

type ReminderOverride struct {
	Method  string `json:"method"`
	Minutes int    `json:"minutes"`
}

// Recurrence maps a habit frequency to a calendar RRULE.
func Recurrence(f habit.Frequency) []string {
	switch f {
	case habit.FrequencyWeekly:
		return []string{"RRULE:FREQ=WEEKLY"}
	case habit.FrequencyMonthly:
		return []string{"RRULE:FREQ=MONTHLY"}
	default:
		return []string{"RRULE:FREQ=DAILY"}
	}
}

// ReminderEvent builds a recurring reminder event for a habit. The
// event blocks 30 minutes starting at reminderTime.
func ReminderEvent(title, description string, reminderTime time.Time, f habit.Frequency) Event {
	end := reminderTime.Add(30 * time.Minute)

	return Event{
		Summary:     fmt.Sprintf("Habit Reminder: %s", title),
		Description: description,
		Start: EventTime{
			DateTime: reminderTime.Format(time.RFC3339),
		},
		End: EventTime{
			DateTime: end.Format(time.RFC3339),
		},
		Recurrence: Recurrence(f),
		Reminders: &Reminders{
			UseDefault: false,
			Overrides: []ReminderOverride{
				{Method: "popup", Minutes: 10},
				{Method: "email", Minutes: 60},
			},
		},
	}
}
