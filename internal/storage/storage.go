// Package storage persists uploaded datasets and credentials in a small
// SQLite key-value table.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const (
	KeyDatasetCareers    = "dataset.careers"
	KeyDatasetName       = "dataset.name"
	KeyDatasetUploadedAt = "dataset.uploaded_at"
	credentialsPrefix    = "credentials."
)

const upsertSQL = `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

var ErrNotFound = errors.New("key not found")

// CredentialKey returns the key an API key for provider is stored under.
func CredentialKey(provider string) string {
	return credentialsPrefix + strings.ToLower(strings.TrimSpace(provider))
}

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the database at path.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("storage path is required")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("storage: mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // single writer

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key        TEXT PRIMARY KEY,
		value      BLOB,
		updated_at TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: init schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores value under key, replacing any previous value.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("storage: key is required")
	}

	_, err := s.db.ExecContext(ctx, upsertSQL, key, value, s.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("storage: put %s: %w", key, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: get %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) GetString(ctx context.Context, key string) (string, error) {
	value, err := s.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return string(value), nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("storage: delete %s: %w", key, err)
	}
	return nil
}

// Keys lists stored keys with the given prefix in lexical order.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM kv WHERE substr(key, 1, length(?)) = ? ORDER BY key`, prefix, prefix)
	if err != nil {
		return nil, fmt.Errorf("storage: list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("storage: scan key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Dataset is an uploaded career dataset as stored.
type Dataset struct {
	Name       string
	Raw        []byte
	UploadedAt time.Time
}

// SaveDataset records an upload. A later upload replaces the earlier one.
func (s *Store) SaveDataset(ctx context.Context, name string, raw []byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: begin: %w", err)
	}
	defer tx.Rollback()

	now := s.now().UTC().Format(time.RFC3339Nano)
	entries := []struct {
		key   string
		value []byte
	}{
		{KeyDatasetCareers, raw},
		{KeyDatasetName, []byte(name)},
		{KeyDatasetUploadedAt, []byte(now)},
	}
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, upsertSQL, e.key, e.value, now); err != nil {
			return fmt.Errorf("storage: put %s: %w", e.key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: commit dataset: %w", err)
	}
	return nil
}

// LoadDataset returns the last upload or ErrNotFound.
func (s *Store) LoadDataset(ctx context.Context) (*Dataset, error) {
	raw, err := s.Get(ctx, KeyDatasetCareers)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Raw: raw}
	if ds.Name, err = s.GetString(ctx, KeyDatasetName); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	uploaded, err := s.GetString(ctx, KeyDatasetUploadedAt)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if uploaded != "" {
		if ds.UploadedAt, err = time.Parse(time.RFC3339Nano, uploaded); err != nil {
			return nil, fmt.Errorf("storage: parse upload time: %w", err)
		}
	}

	return ds, nil
}
