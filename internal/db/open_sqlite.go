package db

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Get(ctx context.Context, postID int64) (Record, error) {
	var r Record
	row := s.db.QueryRowContext(ctx, `SELECT post_id, filename, hash, exported_at FROM manifest WHERE post_id=?`, postID)
	if err := row.Scan(&r.PostID, &r.Filename, &r.Hash, &r.ExportedAt); err != nil {
		if err == sql.ErrNoRows {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return r, nil
}

func (s *sqliteStore) Put(ctx context.Context, r Record) error {
	if r.ExportedAt.IsZero() {
		r.ExportedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO manifest(post_id, filename, hash, exported_at) VALUES(?,?,?,?)
ON CONFLICT(post_id) DO UPDATE SET filename=excluded.filename, hash=excluded.hash, exported_at=excluded.exported_at`,
		r.PostID, r.Filename, r.Hash, r.ExportedAt.UTC())
	return err
}

func (s *sqliteStore) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT post_id, filename, hash, exported_at FROM manifest ORDER BY post_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.PostID, &r.Filename, &r.Hash, &r.ExportedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *sqliteStore) Close() error { return s.db.Close() }

// openSQLite connects with the modernc.org/sqlite driver and ensures the schema exists.
func openSQLite(ctx context.Context, dsn string) (*sqliteStore, error) {
	path := strings.TrimPrefix(dsn, "sqlite://")
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	dbh, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one writer at a time; the exporter calls Put from several goroutines
	dbh.SetMaxOpenConns(1)
	// set WAL mode
	if _, err := dbh.ExecContext(ctx, `PRAGMA journal_mode=WAL;`); err != nil {
		_ = dbh.Close()
		return nil, err
	}
	if err := migrate(ctx, dbh); err != nil {
		_ = dbh.Close()
		return nil, err
	}
	return &sqliteStore{db: dbh}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS manifest (
  post_id INTEGER PRIMARY KEY,
  filename TEXT NOT NULL,
  hash TEXT NOT NULL,
  exported_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_manifest_filename ON manifest(filename);
`)
	return err
}
