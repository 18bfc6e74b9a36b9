package sermons

import (
	"sync"

	"github.com/afc-website/internal/models"
)

// Listing holds the sermons page state across interactions. Changing the
// search, filter or playlist sends the listing back to page 1.
type Listing struct {
	mu      sync.Mutex
	sermons []models.Sermon
	query   Query
}

// NewListing starts on page 1 with the "all" filter.
func NewListing(sermons []models.Sermon) *Listing {
	return &Listing{
		sermons: sermons,
		query:   Query{Filter: models.FilterAll, Page: 1},
	}
}

// SetSermons replaces the source data and resets to page 1.
func (l *Listing) SetSermons(sermons []models.Sermon) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sermons = sermons
	l.query.Page = 1
}

func (l *Listing) SetSearch(q string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.query.Search = q
	l.query.Page = 1
}

func (l *Listing) SetFilter(f models.SermonFilter) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.query.Filter = f
	l.query.Page = 1
}

// SetPlaylist selects a playlist; "" clears the selection.
func (l *Listing) SetPlaylist(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.query.PlaylistID = id
	l.query.Page = 1
}

// GoTo moves to page n, clamped to the available pages.
func (l *Listing) GoTo(n int) Page {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := len(Filter(l.sermons, l.query))
	pages := (total + PageSize - 1) / PageSize
	if n > pages {
		n = pages
	}
	if n < 1 {
		n = 1
	}
	l.query.Page = n
	return Apply(l.sermons, l.query)
}

// Query returns the current state.
func (l *Listing) Query() Query {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query
}

// Current returns the current page.
func (l *Listing) Current() Page {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Apply(l.sermons, l.query)
}
