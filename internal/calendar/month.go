package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/afc-website/internal/models"
)

var ErrInvalidDate = errors.New("invalid calendar date")

// Month is a reference month for the calendar grid
type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// NewMonth validates year and month.
func NewMonth(year, month int) (Month, error) {
	if month < 1 || month > 12 || year < 1 || year > 9999 {
		return Month{}, fmt.Errorf("%w: %04d-%02d", ErrInvalidDate, year, month)
	}
	return Month{Year: year, Month: time.Month(month)}, nil
}

// First returns midnight on the 1st of the month in loc.
func (m Month) First(loc *time.Location) time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, loc)
}

// Prev is the month before m.
func (m Month) Prev() Month {
	return MonthOf(time.Date(m.Year, m.Month-1, 1, 0, 0, 0, 0, time.UTC))
}

// Next is the month after m.
func (m Month) Next() Month {
	return MonthOf(time.Date(m.Year, m.Month+1, 1, 0, 0, 0, 0, time.UTC))
}

// Days is the number of days in m.
func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// String renders the month as "January 2026".
func (m Month) String() string {
	return m.First(time.UTC).Format("January 2006")
}

// ParseDate parses an Event date ("2006-01-02") as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(models.DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// DateKey formats t as an Event date in its own location.
func DateKey(t time.Time) string {
	return t.Format(models.DateLayout)
}

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
