package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// VideoStatus is the lifecycle state of a queued video.
type VideoStatus string

const (
	StatusQueued   VideoStatus = "queued"
	StatusAnalyzed VideoStatus = "analyzed"
	StatusFailed   VideoStatus = "failed"
)

// TrackedVideo is a single entry in the video tracker. The tracker is the
// machine-readable twin of VIDEOS_QUEUE.md: the markdown file stays the
// human view, the database answers queries.
type TrackedVideo struct {
	ID         int64       `json:"id"`
	VideoID    string      `json:"video_id"`
	URL        string      `json:"url"`
	Title      string      `json:"title,omitempty"`
	Channel    string      `json:"channel,omitempty"`
	Status     VideoStatus `json:"status"`
	Notes      string      `json:"notes,omitempty"`
	ReportPath string      `json:"report_path,omitempty"`
	CreatedAt  string      `json:"created_at"`
	UpdatedAt  string      `json:"updated_at"`
}

var (
	trackerDB   *sql.DB
	trackerOnce sync.Once
	trackerErr  error
)

// openTrackerDB opens (or creates) the SQLite tracker database.
func openTrackerDB() (*sql.DB, error) {
	trackerOnce.Do(func() {
		dir := filepath.Join(os.Getenv("HOME"), ".analyze-youtube-videos")
		if err := os.MkdirAll(dir, 0750); err != nil {
			trackerErr = fmt.Errorf("tracker: mkdir %s: %w", dir, err)
			return
		}
		dbPath := filepath.Join(dir, "tracker.db")
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			trackerErr = fmt.Errorf("tracker: open db: %w", err)
			return
		}
		db.SetMaxOpenConns(1) // SQLite: single writer
		if err := initTrackerSchema(db); err != nil {
			trackerErr = fmt.Errorf("tracker: init schema: %w", err)
			return
		}
		trackerDB = db
	})
	return trackerDB, trackerErr
}

func initTrackerSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS videos (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		video_id    TEXT NOT NULL,
		url         TEXT NOT NULL UNIQUE,
		title       TEXT,
		channel     TEXT,
		status      TEXT NOT NULL DEFAULT 'queued',
		notes       TEXT,
		report_path TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`)
	return err
}

func validVideoStatus(s string) bool {
	switch VideoStatus(s) {
	case StatusQueued, StatusAnalyzed, StatusFailed:
		return true
	}
	return false
}

// TrackVideo records a new queued video. Re-queueing a known URL refreshes
// its notes instead of inserting a duplicate.
func TrackVideo(_ context.Context, videoID, url, title, notes string) (int64, error) {
	if url == "" {
		return 0, errors.New("tracker: url is required")
	}
	db, err := openTrackerDB()
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := db.Exec(
		`INSERT INTO videos (video_id, url, title, notes, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET notes=excluded.notes, updated_at=excluded.updated_at`,
		videoID, stripShareParam(url), title, notes, string(StatusQueued), now, now,
	)
	if err != nil {
		return 0, fmt.Errorf("tracker: insert: %w", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// SetVideoStatus transitions a tracked video, filling in metadata learned
// during analysis. Unknown URLs are inserted directly in the target status so
// ad-hoc analyses (never queued) still end up tracked.
func SetVideoStatus(_ context.Context, videoID, url string, status VideoStatus, title, channel, reportPath string) error {
	if !validVideoStatus(string(status)) {
		return fmt.Errorf("tracker: invalid status %q (valid: queued, analyzed, failed)", status)
	}
	db, err := openTrackerDB()
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = db.Exec(
		`INSERT INTO videos (video_id, url, title, channel, status, report_path, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET
		   video_id=excluded.video_id, title=excluded.title, channel=excluded.channel,
		   status=excluded.status, report_path=excluded.report_path, updated_at=excluded.updated_at`,
		videoID, stripShareParam(url), title, channel, string(status), reportPath, now, now,
	)
	if err != nil {
		return fmt.Errorf("tracker: update: %w", err)
	}
	return nil
}

// ListVideos returns tracked videos, optionally filtered by status, newest
// activity first.
func ListVideos(_ context.Context, status string, limit int) ([]TrackedVideo, int, error) {
	db, err := openTrackerDB()
	if err != nil {
		return nil, 0, err
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var rows *sql.Rows
	if status != "" {
		status = strings.ToLower(status)
		if !validVideoStatus(status) {
			return nil, 0, fmt.Errorf("tracker: invalid status %q", status)
		}
		rows, err = db.Query(
			`SELECT id, video_id, url, title, channel, status, notes, report_path, created_at, updated_at
			 FROM videos WHERE status = ? ORDER BY updated_at DESC LIMIT ?`,
			status, limit,
		)
	} else {
		rows, err = db.Query(
			`SELECT id, video_id, url, title, channel, status, notes, report_path, created_at, updated_at
			 FROM videos ORDER BY updated_at DESC LIMIT ?`,
			limit,
		)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("tracker: query: %w", err)
	}
	defer rows.Close()

	var videos []TrackedVideo
	for rows.Next() {
		var v TrackedVideo
		var title, channel, notes, reportPath sql.NullString
		if err := rows.Scan(&v.ID, &v.VideoID, &v.URL, &title, &channel, &v.Status,
			&notes, &reportPath, &v.CreatedAt, &v.UpdatedAt); err != nil {
			continue
		}
		v.Title = title.String
		v.Channel = channel.String
		v.Notes = notes.String
		v.ReportPath = reportPath.String
		videos = append(videos, v)
	}

	var total int
	if status != "" {
		db.QueryRow(`SELECT COUNT(*) FROM videos WHERE status = ?`, status).Scan(&total) //nolint:errcheck
	} else {
		db.QueryRow(`SELECT COUNT(*) FROM videos`).Scan(&total) //nolint:errcheck
	}

	if videos == nil {
		videos = []TrackedVideo{}
	}
	return videos, total, nil
}
