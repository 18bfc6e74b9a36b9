package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v6"
)

var (
	ErrMissingAPIKey    = errors.New("YouTube API key is required")
	ErrMissingChannelID = errors.New("YouTube channel ID is required")
)

// Config holds the application configuration
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// YouTube directory
	YouTubeAPIKey      string        `env:"YOUTUBE_API_KEY"`
	YouTubeChannelID   string        `env:"YOUTUBE_CHANNEL_ID"`
	YouTubeBaseURL     string        `env:"YOUTUBE_API_BASE_URL" envDefault:"https://www.googleapis.com/youtube/v3"`
	YouTubeCacheTTL    time.Duration `env:"YOUTUBE_CACHE_TTL" envDefault:"1h"`
	YouTubeRefreshCron string        `env:"YOUTUBE_REFRESH_CRON" envDefault:"*/30 * * * *"`
	YouTubeTimeout     time.Duration `env:"YOUTUBE_TIMEOUT" envDefault:"15s"`
	// YouTubeRefreshTimeout bounds a whole directory refresh, which makes
	// several sequential requests per playlist.
	YouTubeRefreshTimeout time.Duration `env:"YOUTUBE_REFRESH_TIMEOUT" envDefault:"5m"`

	// DBPath is a SQLite Cloud connection string. Snapshots are disabled when empty.
	DBPath string `env:"DB_PATH"`

	ContentPath   string `env:"CONTENT_PATH"`
	EventsICSPath string `env:"EVENTS_ICS_PATH"`
	Timezone      string `env:"TIMEZONE" envDefault:"Africa/Nairobi"`

	SubmitDelay   time.Duration `env:"SUBMIT_DELAY" envDefault:"1500ms"`
	CORSOrigins   string        `env:"CORS_ORIGINS" envDefault:"http://localhost:3000"`
	FormRateLimit float64       `env:"FORM_RATE_LIMIT" envDefault:"1"`
	FormRateBurst int           `env:"FORM_RATE_BURST" envDefault:"5"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogOutput string `env:"LOG_OUTPUT" envDefault:"stdout"`
	LogPath   string `env:"LOG_PATH" envDefault:"logs"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	if cfg.YouTubeCacheTTL < 0 {
		return nil, fmt.Errorf("YOUTUBE_CACHE_TTL must not be negative")
	}
	if cfg.YouTubeRefreshTimeout < cfg.YouTubeTimeout {
		return nil, fmt.Errorf("YOUTUBE_REFRESH_TIMEOUT must be at least YOUTUBE_TIMEOUT")
	}
	if cfg.SubmitDelay < 0 {
		cfg.SubmitDelay = 0
	}

	return &cfg, nil
}

// Validate reports missing YouTube credentials. The site still runs without
// them; video features are disabled.
func (c *Config) Validate() error {
	if c.YouTubeAPIKey == "" {
		return fmt.Errorf("%w: YOUTUBE_API_KEY environment variable is not set", ErrMissingAPIKey)
	}
	if c.YouTubeChannelID == "" {
		return fmt.Errorf("%w: YOUTUBE_CHANNEL_ID environment variable is not set", ErrMissingChannelID)
	}
	return nil
}

// Location returns the configured display timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// RefreshSchedule returns the cron spec for directory refreshes, or "" when
// YOUTUBE_REFRESH_CRON is "off".
func (c *Config) RefreshSchedule() string {
	if strings.EqualFold(strings.TrimSpace(c.YouTubeRefreshCron), "off") {
		return ""
	}
	return c.YouTubeRefreshCron
}
