package models

import (
	"encoding/json"
	"time"
)

// SnapshotKind identifies which directory branch a stored snapshot holds
type SnapshotKind string

const (
	SnapshotPlaylists SnapshotKind = "playlists"
	SnapshotUploads   SnapshotKind = "uploads"
)

// SnapshotSource says where the data served by the directory came from
type SnapshotSource string

const (
	SourceLive   SnapshotSource = "live"
	SourceStored SnapshotSource = "stored"
	SourceEmpty  SnapshotSource = "empty"
)

// StoredSnapshot is a record in the directory_snapshot table
type StoredSnapshot struct {
	Kind         SnapshotKind    `json:"kind"`
	UpdateDate   time.Time       `json:"update_date"`
	JSONResponse json.RawMessage `json:"json_response"`
}

// DirectorySnapshot is what the sermon directory serves: both source arrays
// plus where they came from. Degraded is set when any branch could not be
// fetched live.
type DirectorySnapshot struct {
	Playlists []Playlist     `json:"playlists"`
	Uploads   []Video        `json:"uploads"`
	FetchedAt time.Time      `json:"fetchedAt"`
	Source    SnapshotSource `json:"source"`
	Degraded  bool           `json:"degraded"`
}
