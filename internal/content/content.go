// Package content loads the site's static content: events, recurring
// events, ministries and the leadership team.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/afc-website/internal/calendar"
	"github.com/afc-website/internal/models"
)

var ErrNotFound = errors.New("not found")

//go:embed content.yaml
var defaultContent []byte

// Catalog is the loaded content. It is read-only after Load.
type Catalog struct {
	Events     []models.Event          `yaml:"events"`
	Recurring  []models.RecurringEvent `yaml:"recurring"`
	Ministries []models.Ministry       `yaml:"ministries"`
	Leadership []models.LeadershipTeam `yaml:"leadership"`

	loc *time.Location
	log logrus.FieldLogger
}

// Options controls where content comes from.
type Options struct {
	// Path to a YAML content file; the embedded default is used when empty.
	Path string
	// ICSPath optionally names an iCalendar file whose events are appended.
	ICSPath  string
	Location *time.Location
	Log      logrus.FieldLogger
}

// Load reads the content catalog.
func Load(opts Options) (*Catalog, error) {
	data := defaultContent
	if opts.Path != "" {
		b, err := os.ReadFile(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read content file: %w", err)
		}
		data = b
	}

	c, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if opts.Location != nil {
		c.loc = opts.Location
	}
	if opts.Log != nil {
		c.log = opts.Log
	}

	if opts.ICSPath != "" {
		f, err := os.Open(opts.ICSPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open events calendar: %w", err)
		}
		defer f.Close()

		imported, err := calendar.ImportICS(f, c.loc)
		if err != nil {
			return nil, err
		}
		c.Events = append(c.Events, imported...)
		c.log.WithField("count", len(imported)).Info("Imported events from calendar file")
	}

	c.log.WithFields(logrus.Fields{
		"events":     len(c.Events),
		"recurring":  len(c.Recurring),
		"ministries": len(c.Ministries),
	}).Info("Content loaded")
	return c, nil
}

// Parse decodes a YAML content document.
func Parse(data []byte) (*Catalog, error) {
	c := &Catalog{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse content: %w", err)
	}
	c.loc = time.Local
	c.log = logrus.StandardLogger()
	return c, nil
}

// Location is the zone event dates are interpreted in.
func (c *Catalog) Location() *time.Location {
	return c.loc
}

// EventsBetween returns one-off events plus recurring occurrences in
// [from, to). A broken recurrence rule is logged and skipped.
func (c *Catalog) EventsBetween(from, to time.Time) []models.Event {
	occurrences, err := calendar.Expand(c.Recurring, from, to, c.loc)
	if err != nil {
		c.log.WithError(err).Warn("Some recurring events could not be expanded")
	}

	out := make([]models.Event, 0, len(c.Events)+len(occurrences))
	out = append(out, c.Events...)
	out = append(out, occurrences...)
	return out
}

// Event finds a one-off event by id, or a recurring occurrence by its
// "<id>-<date>" id.
func (c *Catalog) Event(id string) (models.Event, error) {
	for _, ev := range c.Events {
		if ev.ID == id {
			return ev, nil
		}
	}

	for _, re := range c.Recurring {
		date, ok := strings.CutPrefix(id, re.ID+"-")
		if !ok {
			continue
		}
		day, err := calendar.ParseDate(date, c.loc)
		if err != nil {
			continue
		}
		occ, err := calendar.Expand([]models.RecurringEvent{re}, day, day.AddDate(0, 0, 1), c.loc)
		if err == nil && len(occ) == 1 {
			return occ[0], nil
		}
	}

	return models.Event{}, fmt.Errorf("event %q: %w", id, ErrNotFound)
}

// Ministry finds a ministry by slug.
func (c *Catalog) Ministry(slug string) (models.Ministry, error) {
	for _, m := range c.Ministries {
		if m.Slug == slug {
			return m, nil
		}
	}
	return models.Ministry{}, fmt.Errorf("ministry %q: %w", slug, ErrNotFound)
}
