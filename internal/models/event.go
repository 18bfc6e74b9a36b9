package models

import "time"

// DateLayout is the layout of Event.Date.
const DateLayout = "2006-01-02"

// Event is a single church event. Date is a calendar date without a time
// component; Time is a free-text label such as "10:00 AM - 12:00 PM".
type Event struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Date        string `json:"date" yaml:"date"`
	Time        string `json:"time" yaml:"time"`
	Location    string `json:"location" yaml:"location"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	IsFeatured  bool   `json:"isFeatured,omitempty" yaml:"featured,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty" yaml:"image_url,omitempty"`
}

// RecurringEvent is an event template repeated by an RFC 5545 RRULE
// starting at Start (a DateLayout date).
type RecurringEvent struct {
	Event `yaml:",inline"`
	Start string `json:"start" yaml:"start"`
	RRule string `json:"rrule" yaml:"rrule"`
}

// CalendarDay is one cell of the month grid
type CalendarDay struct {
	Date           time.Time `json:"-"`
	Key            string    `json:"date"`
	IsCurrentMonth bool      `json:"isCurrentMonth"`
	IsToday        bool      `json:"isToday"`
	Events         []Event   `json:"events"`
}

// EventView selects which events the listing shows
type EventView string

const (
	ViewUpcoming EventView = "upcoming"
	ViewPast     EventView = "past"
	ViewCalendar EventView = "calendar"
)

// ParseEventView maps a query value to a view, defaulting to upcoming.
func ParseEventView(s string) EventView {
	switch EventView(s) {
	case ViewPast:
		return ViewPast
	case ViewCalendar:
		return ViewCalendar
	default:
		return ViewUpcoming
	}
}
