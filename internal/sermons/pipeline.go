// Package sermons turns the raw video directory into the sermons page:
// merged, deduplicated, searchable and paginated.
package sermons

import (
	"sort"
	"strings"
	"time"

	"github.com/afc-website/internal/models"
)

const (
	// PageSize is the number of sermons per page (a 3x3 grid).
	PageSize = 9

	DateFormat = "January 2, 2006"

	// DefaultDuration is shown when a video has no duration.
	DefaultDuration = "0:00"
)

// Query is the sermons page state.
type Query struct {
	Search     string
	Filter     models.SermonFilter
	PlaylistID string
	Page       int
}

// Page is one page of results.
type Page struct {
	Sermons    []models.Sermon `json:"sermons"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
	Total      int             `json:"total"`
}

// Merge concatenates uploads and every playlist's videos and keeps the
// first occurrence of each videoId, so uploads win. When the kept entry has
// no playlist back-reference, it takes the one from a later duplicate.
func Merge(uploads []models.Video, playlists []models.Playlist) []models.Video {
	all := make([]models.Video, 0, len(uploads))
	all = append(all, uploads...)
	for _, p := range playlists {
		all = append(all, p.Videos...)
	}

	index := make(map[string]int, len(all))
	out := make([]models.Video, 0, len(all))
	for _, v := range all {
		i, seen := index[v.VideoID]
		if !seen {
			index[v.VideoID] = len(out)
			out = append(out, v)
			continue
		}
		if out[i].PlaylistID == "" && v.PlaylistID != "" {
			out[i].PlaylistID = v.PlaylistID
			out[i].PlaylistTitle = v.PlaylistTitle
		}
	}
	return out
}

// Build merges the directory and enriches every video into a Sermon. Dates
// are rendered in loc.
func Build(uploads []models.Video, playlists []models.Playlist, loc *time.Location) []models.Sermon {
	if loc == nil {
		loc = time.Local
	}
	titles := make(map[string]string, len(playlists))
	for _, p := range playlists {
		titles[p.ID] = p.Title
	}

	videos := Merge(uploads, playlists)
	out := make([]models.Sermon, 0, len(videos))
	for _, v := range videos {
		if title, ok := titles[v.PlaylistID]; ok && v.PlaylistID != "" {
			v.PlaylistTitle = title
		}
		out = append(out, models.Sermon{
			Video:   v,
			Speaker: ExtractSpeaker(v.Title, v.Description),
			Date:    v.PublishedAt.In(loc).Format(DateFormat),
		})
	}
	return out
}

// Apply filters, sorts and paginates sermons. It does not modify its input.
// A page outside the result range falls back to page 1.
func Apply(sermons []models.Sermon, q Query) Page {
	result := Filter(sermons, q)

	total := len(result)
	totalPages := (total + PageSize - 1) / PageSize
	page := q.Page
	if page < 1 || page > totalPages {
		page = 1
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Sermons:    result[start:end],
		Page:       page,
		PageSize:   PageSize,
		TotalPages: totalPages,
		Total:      total,
	}
}

// Filter applies the playlist, search and sort steps without paginating.
func Filter(sermons []models.Sermon, q Query) []models.Sermon {
	query := strings.ToLower(strings.TrimSpace(q.Search))

	result := make([]models.Sermon, 0, len(sermons))
	for _, s := range sermons {
		if q.PlaylistID != "" && s.PlaylistID != q.PlaylistID {
			continue
		}
		if query != "" && !matches(s, query) {
			continue
		}
		result = append(result, s)
	}

	switch q.Filter {
	case models.FilterPopular:
		sort.SliceStable(result, func(i, j int) bool {
			if result[i].ViewCount != result[j].ViewCount {
				return result[i].ViewCount > result[j].ViewCount
			}
			return result[i].PublishedAt.After(result[j].PublishedAt)
		})
	default:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].PublishedAt.After(result[j].PublishedAt)
		})
	}
	return result
}

func matches(s models.Sermon, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(s.Speaker), lowerQuery) ||
		strings.Contains(strings.ToLower(s.Description), lowerQuery) ||
		strings.Contains(strings.ToLower(s.PlaylistTitle), lowerQuery)
}

// PlaylistSummaries lists playlists that have at least one video.
func PlaylistSummaries(playlists []models.Playlist) []models.PlaylistSummary {
	out := make([]models.PlaylistSummary, 0, len(playlists))
	for _, p := range playlists {
		if len(p.Videos) == 0 {
			continue
		}
		out = append(out, models.PlaylistSummary{ID: p.ID, Title: p.Title, Count: len(p.Videos)})
	}
	return out
}

// Entry is a compact playlist item for the "up next" list.
type Entry struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	VideoID  string `json:"videoId"`
	Duration string `json:"duration"`
}

// Find returns the sermon with the given videoId.
func Find(sermons []models.Sermon, videoID string) (models.Sermon, bool) {
	for _, s := range sermons {
		if s.VideoID == videoID {
			return s, true
		}
	}
	return models.Sermon{}, false
}

// Siblings lists every sermon in the same playlist as s, in directory
// order, including s itself. It is empty when s has no playlist.
func Siblings(sermons []models.Sermon, s models.Sermon) []Entry {
	out := []Entry{}
	if s.PlaylistID == "" {
		return out
	}
	for _, other := range sermons {
		if other.PlaylistID != s.PlaylistID {
			continue
		}
		duration := other.Duration
		if duration == "" {
			duration = DefaultDuration
		}
		out = append(out, Entry{ID: other.ID, Title: other.Title, VideoID: other.VideoID, Duration: duration})
	}
	return out
}

// Latest returns the most recently published sermon.
func Latest(sermons []models.Sermon) (models.Sermon, bool) {
	if len(sermons) == 0 {
		return models.Sermon{}, false
	}
	latest := sermons[0]
	for _, s := range sermons[1:] {
		if s.PublishedAt.After(latest.PublishedAt) {
			latest = s
		}
	}
	return latest, true
}
