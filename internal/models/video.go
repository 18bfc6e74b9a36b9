package models

import "time"

// Video is a normalized YouTube video
type Video struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	PublishedAt   time.Time `json:"publishedAt"`
	ThumbnailURL  string    `json:"thumbnailUrl"`
	VideoID       string    `json:"videoId"`
	Duration      string    `json:"duration"`
	ViewCount     int64     `json:"viewCount,omitempty"`
	PlaylistID    string    `json:"playlistId,omitempty"`
	PlaylistTitle string    `json:"playlistTitle,omitempty"`
}

// Playlist is a YouTube playlist together with its videos. A video's
// PlaylistID/PlaylistTitle point back here.
type Playlist struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	ThumbnailURL string  `json:"thumbnailUrl"`
	ItemCount    int64   `json:"itemCount"`
	Videos       []Video `json:"videos"`
}

// PlaylistSummary is the filter-bar view of a playlist
type PlaylistSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Count int    `json:"count"`
}

// Sermon is a video enriched for the sermons page
type Sermon struct {
	Video
	Speaker string `json:"speaker"`
	Date    string `json:"date"`
}

// SermonFilter represents the available sort filters
type SermonFilter string

const (
	FilterAll     SermonFilter = "all"
	FilterRecent  SermonFilter = "recent"
	FilterPopular SermonFilter = "popular"
)

// ParseSermonFilter maps a query value to a filter, defaulting to all.
func ParseSermonFilter(s string) SermonFilter {
	switch SermonFilter(s) {
	case FilterRecent:
		return FilterRecent
	case FilterPopular:
		return FilterPopular
	default:
		return FilterAll
	}
}
