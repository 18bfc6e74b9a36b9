package api

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/afc-website/internal/models"
)

// VideoSource is the remote video directory
type VideoSource interface {
	Playlists(ctx context.Context) ([]models.Playlist, error)
	Uploads(ctx context.Context) ([]models.Video, error)
	Invalidate()
}

// SnapshotStore persists the last good directory branches
type SnapshotStore interface {
	SaveSnapshot(kind models.SnapshotKind, payload any) error
	LatestSnapshot(kind models.SnapshotKind) (*models.StoredSnapshot, error)
}

type branch[T any] struct {
	data      T
	fetchedAt time.Time
	ok        bool
}

// SermonDirectory serves the playlists and uploads behind the sermons
// page. When a live fetch fails it falls back to the last good data held
// in memory, then to the snapshot store, then to empty.
type SermonDirectory struct {
	source VideoSource
	store  SnapshotStore
	log    logrus.FieldLogger
	now    func() time.Time

	mu        sync.RWMutex
	playlists branch[[]models.Playlist]
	uploads   branch[[]models.Video]
	// digest of the last payload written per kind
	persisted map[models.SnapshotKind][sha256.Size]byte
}

// NewSermonDirectory creates a directory. store may be nil.
func NewSermonDirectory(source VideoSource, store SnapshotStore, log logrus.FieldLogger) *SermonDirectory {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SermonDirectory{
		source:    source,
		store:     store,
		log:       log,
		now:       time.Now,
		persisted: make(map[models.SnapshotKind][sha256.Size]byte),
	}
}

// Load returns both branches. It never fails; Source and Degraded describe
// what was served.
func (d *SermonDirectory) Load(ctx context.Context) models.DirectorySnapshot {
	playlists, perr := d.source.Playlists(ctx)
	uploads, uerr := d.source.Uploads(ctx)

	if errors.Is(perr, ErrNotConfigured) && errors.Is(uerr, ErrNotConfigured) {
		d.log.Warn("YouTube API key or channel ID is not configured; sermons are unavailable")
		return models.DirectorySnapshot{
			Playlists: []models.Playlist{},
			Uploads:   []models.Video{},
			FetchedAt: d.now(),
			Source:    models.SourceEmpty,
		}
	}

	now := d.now()
	snap := models.DirectorySnapshot{FetchedAt: now, Source: models.SourceLive}

	pb := resolve(d, models.SnapshotPlaylists, playlists, perr, now, &d.playlists)
	ub := resolve(d, models.SnapshotUploads, uploads, uerr, now, &d.uploads)

	snap.Playlists = pb.data
	snap.Uploads = ub.data
	if snap.Playlists == nil {
		snap.Playlists = []models.Playlist{}
	}
	if snap.Uploads == nil {
		snap.Uploads = []models.Video{}
	}

	if perr != nil || uerr != nil {
		snap.Degraded = true
		switch {
		case pb.ok || ub.ok:
			snap.Source = models.SourceStored
		case perr == nil || uerr == nil:
			snap.Source = models.SourceLive
		default:
			snap.Source = models.SourceEmpty
		}
		for _, b := range []time.Time{pb.fetchedAt, ub.fetchedAt} {
			if !b.IsZero() && b.Before(snap.FetchedAt) {
				snap.FetchedAt = b
			}
		}
	}
	return snap
}

// resolve records a live result as last good, or substitutes the last good
// data for a failed fetch. The returned branch is ok when fallback data was
// found.
func resolve[T any](d *SermonDirectory, kind models.SnapshotKind, live T, err error, now time.Time, last *branch[T]) branch[T] {
	if err == nil {
		d.mu.Lock()
		*last = branch[T]{data: live, fetchedAt: now, ok: true}
		d.mu.Unlock()
		d.persist(kind, live)
		return branch[T]{data: live}
	}

	d.log.WithError(err).WithField("kind", kind).Warn("Live fetch failed, serving last good snapshot")

	d.mu.RLock()
	cached := *last
	d.mu.RUnlock()
	if cached.ok {
		return cached
	}

	stored, serr := loadStored[T](d, kind)
	if serr != nil {
		d.log.WithError(serr).WithField("kind", kind).Warn("Failed to read stored snapshot")
	}
	return stored
}

// persist writes payload unless it matches the last payload written for
// kind.
func (d *SermonDirectory) persist(kind models.SnapshotKind, payload any) {
	if d.store == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		d.log.WithError(err).WithField("kind", kind).Warn("Failed to encode snapshot")
		return
	}
	sum := sha256.Sum256(data)

	d.mu.RLock()
	last, ok := d.persisted[kind]
	d.mu.RUnlock()
	if ok && last == sum {
		return
	}

	if err := d.store.SaveSnapshot(kind, json.RawMessage(data)); err != nil {
		d.log.WithError(err).WithField("kind", kind).Warn("Failed to store snapshot")
		return
	}
	d.mu.Lock()
	d.persisted[kind] = sum
	d.mu.Unlock()
}

func loadStored[T any](d *SermonDirectory, kind models.SnapshotKind) (branch[T], error) {
	if d.store == nil {
		return branch[T]{}, nil
	}
	stored, err := d.store.LatestSnapshot(kind)
	if err != nil || stored == nil {
		return branch[T]{}, err
	}

	var data T
	if err := json.Unmarshal(stored.JSONResponse, &data); err != nil {
		return branch[T]{}, fmt.Errorf("failed to decode %s snapshot: %w", kind, err)
	}
	return branch[T]{data: data, fetchedAt: stored.UpdateDate, ok: true}, nil
}

// Refresh drops cached responses and re-fetches both branches.
func (d *SermonDirectory) Refresh(ctx context.Context) models.DirectorySnapshot {
	d.source.Invalidate()
	snap := d.Load(ctx)
	d.log.WithFields(logrus.Fields{
		"playlists": len(snap.Playlists),
		"uploads":   len(snap.Uploads),
		"source":    snap.Source,
		"degraded":  snap.Degraded,
	}).Info("Sermon directory refreshed")
	return snap
}

// StartScheduler refreshes the directory on the given cron spec. The
// returned cron must be stopped by the caller.
func (d *SermonDirectory) StartScheduler(spec string, timeout time.Duration) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		d.Refresh(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
