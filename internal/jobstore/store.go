// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package jobstore reads and updates job records in the shared SQLite
// database. Rows are created by the host application; this package only
// reads them and merges fields into their job_data.
package jobstore

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// ErrJobNotFound is returned when no job row has the requested id.
var ErrJobNotFound = errors.New("job not found")

// Store wraps the job database connection.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at path and verifies the
// connection. It does not create tables.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening job database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to job database %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the minimal job table if it is missing. The host
// application owns the real schema; this exists for development
// workspaces and tests.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS job (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		job_data TEXT
	)`)
	if err != nil {
		return fmt.Errorf("creating job table: %w", err)
	}
	return nil
}

// JobData returns the decoded job_data object of job id.
func (s *Store) JobData(ctx context.Context, id string) (map[string]any, error) {
	var raw sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT job_data FROM job WHERE id = ?`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("job %s: %w", id, ErrJobNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading job %s: %w", id, err)
	}
	return decodeJobData(id, raw)
}

// MergeJobData sets fields on job id's job_data, keeping every other key.
// The read and the write share one transaction. A missing row yields
// ErrJobNotFound and nothing is written.
func (s *Store) MergeJobData(ctx context.Context, id string, fields map[string]any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var raw sql.NullString
	err = tx.QueryRowContext(ctx, `SELECT job_data FROM job WHERE id = ?`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("job %s: %w", id, ErrJobNotFound)
	}
	if err != nil {
		return fmt.Errorf("reading job %s: %w", id, err)
	}

	data, err := decodeJobData(id, raw)
	if err != nil {
		return err
	}
	for k, v := range fields {
		data[k] = v
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding job %s data: %w", id, err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE job SET job_data = ? WHERE id = ?`, string(encoded), id,
	); err != nil {
		return fmt.Errorf("updating job %s: %w", id, err)
	}

	return tx.Commit()
}

// decodeJobData parses a job_data column. NULL or blank decodes to an
// empty object. Numbers keep their original text.
func decodeJobData(id string, raw sql.NullString) (map[string]any, error) {
	data := map[string]any{}
	if !raw.Valid || strings.TrimSpace(raw.String) == "" {
		return data, nil
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(raw.String)))
	dec.UseNumber()
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("parsing job %s data: %w", id, err)
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}
