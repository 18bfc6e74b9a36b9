package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/afc-website/internal/models"
)

// Expand materializes recurring events into one Event per occurrence in
// [from, to). Occurrence ids are "<id>-<date>". A rule that fails to parse
// is returned as an error together with the occurrences of the other rules.
func Expand(recurring []models.RecurringEvent, from, to time.Time, loc *time.Location) ([]models.Event, error) {
	var (
		out  []models.Event
		errs []error
	)
	for _, re := range recurring {
		occ, err := expandOne(re, from, to, loc)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, occ...)
	}
	if len(errs) > 0 {
		return out, fmt.Errorf("expand recurring events: %w", errors.Join(errs...))
	}
	return out, nil
}

func expandOne(re models.RecurringEvent, from, to time.Time, loc *time.Location) ([]models.Event, error) {
	start, err := ParseDate(re.Start, loc)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", re.ID, err)
	}

	r, err := rrule.StrToRRule(re.RRule)
	if err != nil {
		return nil, fmt.Errorf("event %s: parse rrule %q: %w", re.ID, re.RRule, err)
	}
	r.DTStart(start)

	// to is exclusive
	times := r.Between(from.In(loc), to.In(loc).Add(-time.Nanosecond), true)

	out := make([]models.Event, 0, len(times))
	for _, t := range times {
		ev := re.Event
		ev.Date = DateKey(t.In(loc))
		ev.ID = re.ID + "-" + ev.Date
		out = append(out, ev)
	}
	return out, nil
}
