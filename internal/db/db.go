package db

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Record is what the manifest remembers about one exported post.
type Record struct {
	PostID     int64
	Filename   string
	Hash       string
	ExportedAt time.Time
}

// Store is the export manifest.
type Store interface {
	Get(ctx context.Context, postID int64) (Record, error)
	// Put inserts or replaces the record for r.PostID.
	Put(ctx context.Context, r Record) error
	// List returns every record ordered by post id.
	List(ctx context.Context) ([]Record, error)
	Close() error
}

var ErrNotFound = errors.New("not found")

// Open returns a Store for dsn. An empty dsn or "mem:" keeps the manifest in
// memory; anything else (optionally prefixed with sqlite://) is a file path.
func Open(ctx context.Context, dsn string) (Store, error) {
	if dsn == "" || strings.HasPrefix(dsn, "mem:") {
		return newMemStore(), nil
	}
	return openSQLite(ctx, dsn)
}
