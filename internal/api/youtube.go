package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/youtube/v3"

	"github.com/afc-website/internal/cache"
	"github.com/afc-website/internal/models"
)

const (
	youtubeAPIBaseURL = "https://www.googleapis.com/youtube/v3"

	// YouTube API maximum per request
	maxResults = 50
)

var (
	ErrNotConfigured   = errors.New("YouTube API key or channel ID is not configured")
	ErrChannelNotFound = errors.New("channel not found or no uploads playlist available")
)

// YouTubeClient handles direct HTTP requests to YouTube API. Every distinct
// request is memoized in its cache.
type YouTubeClient struct {
	apiKey    string
	channelID string
	baseURL   string
	client    *http.Client
	cache     *cache.Cache
	log       logrus.FieldLogger
}

// ClientOption configures a YouTubeClient.
type ClientOption func(*YouTubeClient)

func WithBaseURL(baseURL string) ClientOption {
	return func(c *YouTubeClient) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *YouTubeClient) { c.client = hc }
}

func WithCache(rc *cache.Cache) ClientOption {
	return func(c *YouTubeClient) { c.cache = rc }
}

func WithLogger(log logrus.FieldLogger) ClientOption {
	return func(c *YouTubeClient) { c.log = log }
}

// NewYouTubeClient creates a new YouTube client. Responses are cached for an
// hour unless WithCache says otherwise.
func NewYouTubeClient(apiKey, channelID string, opts ...ClientOption) *YouTubeClient {
	c := &YouTubeClient{
		apiKey:    apiKey,
		channelID: channelID,
		baseURL:   youtubeAPIBaseURL,
		client:    &http.Client{Timeout: 15 * time.Second},
		cache:     cache.New(time.Hour),
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether both the API key and channel ID are set.
func (c *YouTubeClient) Configured() bool {
	return c.apiKey != "" && c.channelID != ""
}

// Invalidate drops every cached response.
func (c *YouTubeClient) Invalidate() {
	c.cache.Purge()
}

// Playlists lists the channel's playlists with their videos. A playlist
// whose videos cannot be fetched is kept with no videos.
func (c *YouTubeClient) Playlists(ctx context.Context) ([]models.Playlist, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	var items []*youtube.Playlist
	pageToken := ""
	for {
		params := url.Values{
			"part":       {"snippet,contentDetails"},
			"channelId":  {c.channelID},
			"maxResults": {fmt.Sprint(maxResults)},
		}
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		resp, err := fetch[youtube.PlaylistListResponse](ctx, c, "playlists", params)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch playlists: %w", err)
		}
		items = append(items, resp.Items...)

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	playlists := make([]models.Playlist, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		p := models.Playlist{ID: item.Id, Videos: []models.Video{}}
		if item.Snippet != nil {
			p.Title = item.Snippet.Title
			p.Description = item.Snippet.Description
			p.ThumbnailURL = thumbnailURL(item.Snippet.Thumbnails)
		}
		if item.ContentDetails != nil {
			p.ItemCount = item.ContentDetails.ItemCount
		}

		videos, err := c.PlaylistVideos(ctx, p.ID)
		if err != nil {
			c.log.WithError(err).WithField("playlist_id", p.ID).Warn("Failed to fetch playlist videos")
		}
		for _, v := range videos {
			v.PlaylistID = p.ID
			v.PlaylistTitle = p.Title
			p.Videos = append(p.Videos, v)
		}
		playlists = append(playlists, p)
	}
	return playlists, nil
}

// Uploads lists the channel's uploaded videos. They carry no playlist
// back-reference.
func (c *YouTubeClient) Uploads(ctx context.Context) ([]models.Video, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	uploadsID, err := c.uploadsPlaylistID(ctx)
	if err != nil {
		return nil, err
	}

	videos, err := c.PlaylistVideos(ctx, uploadsID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch uploads: %w", err)
	}
	return videos, nil
}

func (c *YouTubeClient) uploadsPlaylistID(ctx context.Context) (string, error) {
	params := url.Values{
		"part": {"contentDetails"},
		"id":   {c.channelID},
	}
	resp, err := fetch[youtube.ChannelListResponse](ctx, c, "channels", params)
	if err != nil {
		return "", fmt.Errorf("failed to fetch channel details: %w", err)
	}

	for _, ch := range resp.Items {
		if ch != nil && ch.ContentDetails != nil && ch.ContentDetails.RelatedPlaylists != nil &&
			ch.ContentDetails.RelatedPlaylists.Uploads != "" {
			return ch.ContentDetails.RelatedPlaylists.Uploads, nil
		}
	}
	return "", ErrChannelNotFound
}

// PlaylistVideos lists a playlist's videos in playlist order, with
// durations and view counts. Private or deleted entries are skipped.
func (c *YouTubeClient) PlaylistVideos(ctx context.Context, playlistID string) ([]models.Video, error) {
	var videoIDs []string
	pageToken := ""
	for {
		params := url.Values{
			"part":       {"snippet,contentDetails"},
			"playlistId": {playlistID},
			"maxResults": {fmt.Sprint(maxResults)},
		}
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		resp, err := fetch[youtube.PlaylistItemListResponse](ctx, c, "playlistItems", params)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch playlist items: %w", err)
		}
		for _, item := range resp.Items {
			if id := playlistItemVideoID(item); id != "" {
				videoIDs = append(videoIDs, id)
			}
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	// Get detailed video information in batches
	byID := make(map[string]models.Video, len(videoIDs))
	for i := 0; i < len(videoIDs); i += maxResults {
		end := i + maxResults
		if end > len(videoIDs) {
			end = len(videoIDs)
		}

		params := url.Values{
			"part": {"snippet,contentDetails,statistics"},
			"id":   {strings.Join(videoIDs[i:end], ",")},
		}
		resp, err := fetch[youtube.VideoListResponse](ctx, c, "videos", params)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch video details: %w", err)
		}
		for _, item := range resp.Items {
			if item != nil {
				byID[item.Id] = toVideo(item)
			}
		}
	}

	videos := make([]models.Video, 0, len(videoIDs))
	for _, id := range videoIDs {
		if v, ok := byID[id]; ok {
			videos = append(videos, v)
		}
	}
	return videos, nil
}

func playlistItemVideoID(item *youtube.PlaylistItem) string {
	if item == nil {
		return ""
	}
	if item.ContentDetails != nil && item.ContentDetails.VideoId != "" {
		return item.ContentDetails.VideoId
	}
	if item.Snippet != nil && item.Snippet.ResourceId != nil {
		return item.Snippet.ResourceId.VideoId
	}
	return ""
}

func toVideo(item *youtube.Video) models.Video {
	v := models.Video{
		ID:       item.Id,
		VideoID:  item.Id,
		Duration: FormatDuration(""),
	}
	if s := item.Snippet; s != nil {
		v.Title = s.Title
		v.Description = s.Description
		v.ThumbnailURL = thumbnailURL(s.Thumbnails)
		if t, err := time.Parse(time.RFC3339, s.PublishedAt); err == nil {
			v.PublishedAt = t
		}
	}
	if item.ContentDetails != nil {
		v.Duration = FormatDuration(item.ContentDetails.Duration)
	}
	if item.Statistics != nil {
		v.ViewCount = int64(item.Statistics.ViewCount)
	}
	return v
}

// thumbnailURL prefers the high resolution thumbnail
func thumbnailURL(td *youtube.ThumbnailDetails) string {
	if td == nil {
		return ""
	}
	if td.High != nil && td.High.Url != "" {
		return td.High.Url
	}
	if td.Default != nil {
		return td.Default.Url
	}
	return ""
}

// fetch GETs {baseURL}/{endpoint}?params and decodes the response into T.
// Successful responses are cached by endpoint and params; failures are not.
func fetch[T any](ctx context.Context, c *YouTubeClient, endpoint string, params url.Values) (*T, error) {
	key := endpoint + "?" + params.Encode()
	v, err := c.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		var out T
		if err := c.get(ctx, endpoint, params, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*T), nil
}

func (c *YouTubeClient) get(ctx context.Context, endpoint string, params url.Values, target any) error {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("key", c.apiKey)
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	c.log.WithFields(logrus.Fields{"endpoint": endpoint, "params": params.Encode()}).Debug("YouTube API request")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("YouTube API returned status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}
