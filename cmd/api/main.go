package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/afc-website/internal/api"
	"github.com/afc-website/internal/cache"
	"github.com/afc-website/internal/config"
	"github.com/afc-website/internal/content"
	"github.com/afc-website/internal/forms"
	"github.com/afc-website/internal/logger"
	"github.com/afc-website/internal/models"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env file not found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	if err := logger.Init(&logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cfg.LogOutput,
		Path:   cfg.LogPath,
	}); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize logging")
	}
	appLog := logger.GetLogger("app")
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := cfg.Validate(); err != nil {
		appLog.WithError(err).Warn("Sermons will be served from stored snapshots only")
	}

	catalog, err := content.Load(content.Options{
		Path:     cfg.ContentPath,
		ICSPath:  cfg.EventsICSPath,
		Location: cfg.Location(),
		Log:      appLog,
	})
	if err != nil {
		appLog.WithError(err).Fatal("Failed to load site content")
	}

	// Snapshots are optional; the site runs without a database.
	var store api.SnapshotStore
	var db *models.Database
	if cfg.DBPath != "" {
		db, err = models.NewDatabase(cfg.DBPath)
		if err != nil {
			appLog.WithError(err).Error("Failed to initialize database, snapshots disabled")
		} else {
			store = db
		}
	}

	youtubeClient := api.NewYouTubeClient(cfg.YouTubeAPIKey, cfg.YouTubeChannelID,
		api.WithBaseURL(cfg.YouTubeBaseURL),
		api.WithHTTPClient(&http.Client{Timeout: cfg.YouTubeTimeout}),
		api.WithCache(cache.New(cfg.YouTubeCacheTTL)),
		api.WithLogger(logger.GetLogger("youtube")),
	)
	directory := api.NewSermonDirectory(youtubeClient, store, appLog)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.YouTubeRefreshTimeout)
		defer cancel()
		directory.Refresh(ctx)
	}()

	if spec := cfg.RefreshSchedule(); spec != "" {
		scheduler, err := directory.StartScheduler(spec, cfg.YouTubeRefreshTimeout)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to schedule sermon refresh")
		}
		defer scheduler.Stop()
		appLog.WithField("schedule", spec).Info("Sermon refresh scheduled")
	}

	server := api.NewServer(cfg, api.Dependencies{
		Catalog:   catalog,
		Directory: directory,
		Submitter: forms.NewSubmitter(cfg.SubmitDelay, appLog),
		Log:       appLog,
		AccessLog: logger.GetLogger("access"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		appLog.WithField("port", cfg.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	appLog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.WithError(err).Error("Graceful shutdown failed")
	}
	if db != nil {
		if err := db.Close(); err != nil {
			appLog.WithError(err).Warn("Failed to close database")
		}
	}
}
