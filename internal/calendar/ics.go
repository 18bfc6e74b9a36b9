package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/afc-website/internal/models"
)

const productID = "-//AFC Church//Events//EN"

// ExportICS renders events as an iCalendar feed of all-day VEVENTs.
// Events with malformed dates are left out.
func ExportICS(events []models.Event, name string, stamp time.Time, loc *time.Location) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(name)
	if loc != nil {
		cal.SetXWRTimezone(loc.String())
	}

	for _, ev := range events {
		day, err := ParseDate(ev.Date, loc)
		if err != nil {
			continue
		}
		vev := cal.AddEvent(ev.ID)
		vev.SetDtStampTime(stamp.UTC())
		vev.SetAllDayStartAt(day)
		vev.SetAllDayEndAt(day.AddDate(0, 0, 1))
		vev.SetSummary(ev.Title)
		if ev.Location != "" {
			vev.SetLocation(ev.Location)
		}
		if desc := describe(ev); desc != "" {
			vev.SetDescription(desc)
		}
	}
	return cal.Serialize()
}

func describe(ev models.Event) string {
	switch {
	case ev.Time == "":
		return ev.Description
	case ev.Description == "":
		return ev.Time
	default:
		return ev.Time + "\n" + ev.Description
	}
}

// ImportICS reads VEVENTs from r. Timed events get a "3:04 PM - 3:04 PM"
// label; all-day events are labelled "All Day". Events without a UID or
// start are skipped.
func ImportICS(r io.Reader, loc *time.Location) ([]models.Event, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar: %w", err)
	}

	var out []models.Event
	for _, vev := range cal.Events() {
		ev, ok := importEvent(vev, loc)
		if ok {
			out = append(out, ev)
		}
	}
	return out, nil
}

func importEvent(vev *ics.VEvent, loc *time.Location) (models.Event, bool) {
	uid := vev.GetProperty(ics.ComponentPropertyUniqueId)
	dtStart := vev.GetProperty(ics.ComponentPropertyDtStart)
	if uid == nil || uid.Value == "" || dtStart == nil {
		return models.Event{}, false
	}

	ev := models.Event{ID: uid.Value}
	if p := vev.GetProperty(ics.ComponentPropertySummary); p != nil {
		ev.Title = p.Value
	}
	if p := vev.GetProperty(ics.ComponentPropertyLocation); p != nil {
		ev.Location = p.Value
	}
	if p := vev.GetProperty(ics.ComponentPropertyDescription); p != nil {
		ev.Description = p.Value
	}

	if !strings.Contains(dtStart.Value, "T") {
		start, err := vev.GetAllDayStartAt()
		if err != nil {
			return models.Event{}, false
		}
		ev.Date = start.Format(models.DateLayout)
		ev.Time = "All Day"
		return ev, true
	}

	start, err := vev.GetStartAt()
	if err != nil {
		return models.Event{}, false
	}
	start = start.In(loc)
	ev.Date = DateKey(start)
	ev.Time = start.Format("3:04 PM")
	if end, err := vev.GetEndAt(); err == nil && end.After(start) {
		ev.Time += " - " + end.In(loc).Format("3:04 PM")
	}
	return ev, true
}
