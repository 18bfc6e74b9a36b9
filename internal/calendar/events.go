package calendar

import (
	"sort"
	"strings"
	"time"

	"github.com/afc-website/internal/models"
)

// Query is the events page state.
type Query struct {
	Search string
	View   models.EventView
	// Date, when set, keeps only events on that day (DateLayout).
	Date string
}

type dated struct {
	event models.Event
	at    time.Time
}

// Filter applies search, view and selected date to events. Upcoming events
// (today or later) sort ascending, past events most recent first, and the
// calendar view returns everything in date order. Events with malformed
// dates are dropped.
func Filter(events []models.Event, q Query, now time.Time, loc *time.Location) ([]models.Event, error) {
	var selected time.Time
	if q.Date != "" {
		d, err := ParseDate(q.Date, loc)
		if err != nil {
			return nil, err
		}
		selected = d
	}

	today := StartOfDay(now, loc)
	search := strings.ToLower(strings.TrimSpace(q.Search))

	var kept []dated
	for _, ev := range events {
		at, err := ParseDate(ev.Date, loc)
		if err != nil {
			continue
		}
		if !selected.IsZero() && !at.Equal(selected) {
			continue
		}
		if search != "" && !matches(ev, search) {
			continue
		}
		switch q.View {
		case models.ViewPast:
			if !at.Before(today) {
				continue
			}
		case models.ViewCalendar:
		default:
			if at.Before(today) {
				continue
			}
		}
		kept = append(kept, dated{event: ev, at: at})
	}

	desc := q.View == models.ViewPast
	sort.SliceStable(kept, func(i, j int) bool {
		if desc {
			return kept[i].at.After(kept[j].at)
		}
		return kept[i].at.Before(kept[j].at)
	})

	out := make([]models.Event, 0, len(kept))
	for _, d := range kept {
		out = append(out, d.event)
	}
	return out, nil
}

func matches(ev models.Event, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(ev.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(ev.Description), lowerQuery) ||
		strings.Contains(strings.ToLower(ev.Location), lowerQuery)
}

// Featured returns featured events from today onwards, soonest first.
func Featured(events []models.Event, now time.Time, loc *time.Location) []models.Event {
	var featured []models.Event
	for _, ev := range events {
		if ev.IsFeatured {
			featured = append(featured, ev)
		}
	}
	out, _ := Filter(featured, Query{View: models.ViewUpcoming}, now, loc)
	return out
}
