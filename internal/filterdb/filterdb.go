// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filterdb stores predefined filter queries in SQLite. A filter is
// a named, reusable platform query fragment (study types, publication
// windows, language restrictions) that researchers AND onto their topic
// queries. Filters are keyed by (name, platform).
package filterdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Filter is one stored filter query.
type Filter struct {
	Name        string
	Platform    string
	QueryString string
	Description string
	Updated     time.Time
}

// Store manages the filter database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the filter database at path, creating the schema
// when missing.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS filters (
		name TEXT NOT NULL,
		platform TEXT NOT NULL,
		query_string TEXT NOT NULL,
		description TEXT,
		updated TEXT NOT NULL,
		PRIMARY KEY (name, platform)
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Put inserts or replaces a filter.
func (s *Store) Put(ctx context.Context, f Filter) error {
	if f.Name == "" || f.Platform == "" || f.QueryString == "" {
		return fmt.Errorf("filter needs a name, a platform and a query string")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO filters (name, platform, query_string, description, updated)
		 VALUES (?, ?, ?, ?, ?)`,
		f.Name, f.Platform, f.QueryString, f.Description, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("storing filter %q: %w", f.Name, err)
	}
	return nil
}

// Get returns the filter with the given name for the platform.
func (s *Store) Get(ctx context.Context, name, platform string) (*Filter, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT name, platform, query_string, description, updated
		 FROM filters WHERE name = ? AND platform = ?`, name, platform)
	f, err := scanFilter(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no filter %q for platform %q", name, platform)
	}
	if err != nil {
		return nil, fmt.Errorf("loading filter %q: %w", name, err)
	}
	return f, nil
}

// List returns all filters for a platform, or every filter when platform
// is empty, ordered by name.
func (s *Store) List(ctx context.Context, platform string) ([]Filter, error) {
	q := `SELECT name, platform, query_string, description, updated
	      FROM filters ORDER BY platform, name`
	args := []any{}
	if platform != "" {
		q = `SELECT name, platform, query_string, description, updated
		     FROM filters WHERE platform = ? ORDER BY name`
		args = append(args, platform)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing filters: %w", err)
	}
	defer rows.Close()

	var filters []Filter
	for rows.Next() {
		f, err := scanFilter(rows)
		if err != nil {
			return nil, fmt.Errorf("reading filter row: %w", err)
		}
		filters = append(filters, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing filters: %w", err)
	}
	return filters, nil
}

// Delete removes a filter. Deleting a missing filter is not an error.
func (s *Store) Delete(ctx context.Context, name, platform string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM filters WHERE name = ? AND platform = ?`, name, platform)
	if err != nil {
		return fmt.Errorf("deleting filter %q: %w", name, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFilter(row scanner) (*Filter, error) {
	var f Filter
	var updated string
	if err := row.Scan(&f.Name, &f.Platform, &f.QueryString, &f.Description, &updated); err != nil {
		return nil, err
	}
	if t, err := time.Parse(time.RFC3339, updated); err == nil {
		f.Updated = t
	}
	return &f, nil
}
