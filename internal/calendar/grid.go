package calendar

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/afc-website/internal/models"
)

// GridCells is the number of day-cells in a month grid (6 weeks of 7 days).
const GridCells = 42

// SkippedEvent is an event left out of a grid because its date did not parse.
type SkippedEvent struct {
	ID    string `json:"id"`
	Date  string `json:"date"`
	Error string `json:"error"`
}

// Grid is a Sunday-first month grid
type Grid struct {
	Month   Month                `json:"month"`
	Label   string               `json:"label"`
	Days    []models.CalendarDay `json:"days"`
	Skipped []SkippedEvent       `json:"skipped,omitempty"`
}

// Weeks splits the grid into rows of seven days.
func (g Grid) Weeks() [][]models.CalendarDay {
	weeks := make([][]models.CalendarDay, 0, len(g.Days)/7)
	for i := 0; i+7 <= len(g.Days); i += 7 {
		weeks = append(weeks, g.Days[i:i+7])
	}
	return weeks
}

// Start and End bound the grid's dates; End is exclusive.
func (g Grid) Start() time.Time { return g.Days[0].Date }
func (g Grid) End() time.Time   { return g.Days[len(g.Days)-1].Date.AddDate(0, 0, 1) }

// Builder builds month grids in a fixed location.
type Builder struct {
	Location *time.Location
	Now      func() time.Time
	Log      logrus.FieldLogger
}

// NewBuilder returns a builder using the wall clock.
func NewBuilder(loc *time.Location, log logrus.FieldLogger) *Builder {
	if loc == nil {
		loc = time.Local
	}
	return &Builder{Location: loc, Now: time.Now, Log: log}
}

// Range returns the first cell date and the exclusive end date of the grid
// for ref, so callers can expand recurring events before building.
func (b *Builder) Range(ref Month) (time.Time, time.Time) {
	first := ref.First(b.Location)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	return start, start.AddDate(0, 0, GridCells)
}

// Build lays out the 42 cells around ref: the tail of the previous month
// that aligns the 1st onto its weekday, the whole month, then the head of
// the next month. Every event lands in the cell of its date.
func (b *Builder) Build(ref Month, events []models.Event) Grid {
	loc := b.Location
	byDay, skipped := b.index(events)
	today := DateKey(StartOfDay(b.Now(), loc))

	start, _ := b.Range(ref)
	days := make([]models.CalendarDay, 0, GridCells)
	for i := 0; i < GridCells; i++ {
		date := start.AddDate(0, 0, i)
		key := DateKey(date)
		dayEvents := byDay[key]
		if dayEvents == nil {
			dayEvents = []models.Event{}
		}
		days = append(days, models.CalendarDay{
			Date:           date,
			Key:            key,
			IsCurrentMonth: date.Month() == ref.Month && date.Year() == ref.Year,
			IsToday:        key == today,
			Events:         dayEvents,
		})
	}

	return Grid{
		Month:   ref,
		Label:   ref.String(),
		Days:    days,
		Skipped: skipped,
	}
}

func (b *Builder) index(events []models.Event) (map[string][]models.Event, []SkippedEvent) {
	byDay := make(map[string][]models.Event)
	var skipped []SkippedEvent
	for _, ev := range events {
		date, err := ParseDate(ev.Date, b.Location)
		if err != nil {
			if b.Log != nil {
				b.Log.WithError(err).WithField("event_id", ev.ID).Warn("skipping event with malformed date")
			}
			skipped = append(skipped, SkippedEvent{ID: ev.ID, Date: ev.Date, Error: err.Error()})
			continue
		}
		key := DateKey(date)
		byDay[key] = append(byDay[key], ev)
	}
	return byDay, skipped
}
