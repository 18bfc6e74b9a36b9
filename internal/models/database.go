package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	sqlitecloud "github.com/sqlitecloud/sqlitecloud-go"
)

// Database persists the last good directory snapshot in SQLite Cloud
type Database struct {
	db *sqlitecloud.SQCloud
}

// NewDatabase creates a new database connection
func NewDatabase(dbPath string) (*Database, error) {
	logrus.WithField("dsn", maskConnectionString(dbPath)).Info("Connecting to SQLite Cloud database")

	db, err := sqlitecloud.Connect(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite Cloud: %w", err)
	}

	database := &Database{
		db: db,
	}

	if err := database.createTables(); err != nil {
		db.Close()
		return nil, err
	}

	return database, nil
}

// maskConnectionString hides the API key in logs
func maskConnectionString(connStr string) string {
	if strings.Contains(connStr, "apikey=") {
		parts := strings.Split(connStr, "apikey=")
		if len(parts) > 1 {
			return parts[0] + "apikey=***"
		}
	}
	return connStr
}

func (d *Database) createTables() error {
	sql := `CREATE TABLE IF NOT EXISTS directory_snapshot (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL CHECK(kind IN ('playlists', 'uploads')),
		create_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		update_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		json_response TEXT NOT NULL,
		CONSTRAINT unique_directory_snapshot UNIQUE(kind)
	)`
	if err := d.db.Execute(sql); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// SaveSnapshot upserts the JSON payload for kind
func (d *Database) SaveSnapshot(kind SnapshotKind, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	sql := `INSERT INTO directory_snapshot (kind, json_response) VALUES (?, ?)
		ON CONFLICT(kind) DO UPDATE SET json_response = excluded.json_response, update_date = CURRENT_TIMESTAMP`

	if err := d.db.ExecuteArray(sql, []interface{}{string(kind), string(data)}); err != nil {
		return fmt.Errorf("failed to store %s snapshot: %w", kind, err)
	}
	return nil
}

// LatestSnapshot returns the stored snapshot for kind, or nil when none exists
func (d *Database) LatestSnapshot(kind SnapshotKind) (*StoredSnapshot, error) {
	sql := `SELECT json_response, update_date FROM directory_snapshot WHERE kind = ? LIMIT 1`

	result, err := d.db.SelectArray(sql, []interface{}{string(kind)})
	if err != nil {
		return nil, err
	}

	if result.GetNumberOfRows() == 0 {
		return nil, nil
	}

	payload, err := result.GetStringValue(0, 0)
	if err != nil {
		return nil, err
	}

	updated, err := result.GetStringValue(0, 1)
	if err != nil {
		return nil, err
	}

	updateDate, err := time.Parse("2006-01-02 15:04:05", strings.TrimSpace(updated))
	if err != nil {
		return nil, fmt.Errorf("failed to parse update_date: %w", err)
	}

	return &StoredSnapshot{
		Kind:         kind,
		UpdateDate:   updateDate,
		JSONResponse: json.RawMessage(payload),
	}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}
