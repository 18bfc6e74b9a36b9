package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/afc-website/internal/calendar"
	"github.com/afc-website/internal/content"
	"github.com/afc-website/internal/models"
)

// Recurring events are expanded over this window around today for the
// listing, featured and feed endpoints.
const (
	listingMonthsBack  = 3
	listingMonthsAhead = 12
	featuredLimit      = 6
)

func (s *Server) today() time.Time {
	return calendar.StartOfDay(s.now(), s.catalog.Location())
}

func (s *Server) listingWindow() (time.Time, time.Time) {
	today := s.today()
	return today.AddDate(0, -listingMonthsBack, 0), today.AddDate(0, listingMonthsAhead, 0)
}

// listEvents handles GET /api/events?q=&view=&date=
func (s *Server) listEvents(c *gin.Context) {
	query := calendar.Query{
		Search: c.Query("q"),
		View:   models.ParseEventView(c.Query("view")),
		Date:   c.Query("date"),
	}

	from, to := s.listingWindow()
	if query.Date != "" {
		day, err := calendar.ParseDate(query.Date, s.catalog.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		from, to = day, day.AddDate(0, 0, 1)
	}

	events, err := calendar.Filter(s.catalog.EventsBetween(from, to), query, s.now(), s.catalog.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"view":   query.View,
		"total":  len(events),
	})
}

// featuredEvents handles GET /api/events/featured
func (s *Server) featuredEvents(c *gin.Context) {
	today := s.today()
	events := calendar.Featured(s.catalog.EventsBetween(today, today.AddDate(0, listingMonthsAhead, 0)), s.now(), s.catalog.Location())
	if len(events) > featuredLimit {
		events = events[:featuredLimit]
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// calendarMonth handles GET /api/events/calendar?year=&month=
func (s *Server) calendarMonth(c *gin.Context) {
	ref := calendar.MonthOf(s.now().In(s.catalog.Location()))

	if c.Query("year") != "" || c.Query("month") != "" {
		year, yerr := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(ref.Year)))
		month, merr := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(ref.Month))))
		if yerr != nil || merr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year and month must be numbers"})
			return
		}
		m, err := calendar.NewMonth(year, month)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ref = m
	}

	start, end := s.calendar.Range(ref)
	grid := s.calendar.Build(ref, s.catalog.EventsBetween(start, end))

	c.JSON(http.StatusOK, gin.H{
		"month":   grid.Month,
		"label":   grid.Label,
		"days":    grid.Days,
		"weeks":   grid.Weeks(),
		"skipped": grid.Skipped,
		"prev":    ref.Prev(),
		"next":    ref.Next(),
		"today":   calendar.DateKey(s.today()),
	})
}

// calendarFeed handles GET /api/events/calendar.ics
func (s *Server) calendarFeed(c *gin.Context) {
	from, to := s.listingWindow()
	feed := calendar.ExportICS(s.catalog.EventsBetween(from, to), "AFC Church Events", s.now(), s.catalog.Location())
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

// getEvent handles GET /api/events/:id
func (s *Server) getEvent(c *gin.Context) {
	ev, err := s.catalog.Event(c.Param("id"))
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ev)
}

// listMinistries handles GET /api/ministries
func (s *Server) listMinistries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ministries": s.catalog.Ministries})
}

// getMinistry handles GET /api/ministries/:slug
func (s *Server) getMinistry(c *gin.Context) {
	m, err := s.catalog.Ministry(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ministry not found"})
		return
	}
	c.JSON(http.StatusOK, m)
}

// listLeadership handles GET /api/leadership
func (s *Server) listLeadership(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"teams": s.catalog.Leadership})
}
