// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/stockroom/internal/models"
	"github.com/mmynk/stockroom/internal/seed"
	"github.com/mmynk/stockroom/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// timeFormat is how timestamps are persisted. RFC 3339 with nanoseconds
// so values round-trip exactly.
const timeFormat = time.RFC3339Nano

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories, runs migrations, migrates the legacy
// single-blob layout if present, and seeds any empty collection from the
// given provider. Seeding and the legacy check happen once here, at
// startup, never on later reads. A nil provider skips seeding.
func New(dbPath string, defaults *seed.Provider) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	s := &SQLiteStore{db: db}

	ctx := context.Background()
	if err := s.migrateLegacy(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate legacy data: %w", err)
	}
	if defaults != nil {
		if err := s.seedEmptyCollections(ctx, defaults); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to seed collections: %w", err)
		}
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// migrateLegacy detects the single-document layout that predates the
// three-collection split: a legacy_data table holding one JSON blob with
// items, bills and users. If found, the blob is split into the entity
// tables and the table is dropped, all in one transaction. Subsequent
// opens see no legacy table and skip this entirely.
func (s *SQLiteStore) migrateLegacy(ctx context.Context) error {
	var name string
	err := s.db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'legacy_data'",
	).Scan(&name)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check for legacy table: %w", err)
	}

	slog.Info("Legacy data layout found, migrating to per-collection tables")

	var blob []byte
	err = s.db.QueryRowContext(ctx, "SELECT value FROM legacy_data LIMIT 1").Scan(&blob)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to read legacy blob: %w", err)
	}

	var snap models.Snapshot
	if len(blob) > 0 {
		if err := json.Unmarshal(blob, &snap); err != nil {
			return fmt.Errorf("failed to decode legacy blob: %w", err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := replaceItemsTx(ctx, tx, snap.Items); err != nil {
		return err
	}
	if err := replaceBillsTx(ctx, tx, snap.Bills); err != nil {
		return err
	}
	if err := replaceUsersTx(ctx, tx, snap.Users); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DROP TABLE legacy_data"); err != nil {
		return fmt.Errorf("failed to drop legacy table: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("Legacy migration complete",
		"items", len(snap.Items),
		"bills", len(snap.Bills),
		"users", len(snap.Users),
	)
	return nil
}

// seedEmptyCollections populates each collection that is empty from the
// default dataset. Collections that already hold data are left untouched.
func (s *SQLiteStore) seedEmptyCollections(ctx context.Context, defaults *seed.Provider) error {
	snap := defaults.Snapshot()

	for _, c := range []struct {
		table string
		apply func() error
	}{
		{"items", func() error { return s.ReplaceItems(ctx, snap.Items) }},
		{"bills", func() error { return s.ReplaceBills(ctx, snap.Bills) }},
		{"users", func() error { return s.ReplaceUsers(ctx, snap.Users) }},
	} {
		var n int
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+c.table).Scan(&n); err != nil {
			return fmt.Errorf("failed to count %s: %w", c.table, err)
		}
		if n > 0 {
			continue
		}
		if err := c.apply(); err != nil {
			return err
		}
		slog.Info("Seeded empty collection", "collection", c.table)
	}
	return nil
}

// Load returns the full snapshot of all three collections. Failures are
// reported as storage.ErrUnavailable so the caller can degrade to the
// seed dataset.
func (s *SQLiteStore) Load(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot

	items, err := s.loadItems(ctx)
	if err != nil {
		return snap, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	bills, err := s.loadBills(ctx)
	if err != nil {
		return snap, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	users, err := s.loadUsers(ctx)
	if err != nil {
		return snap, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	snap.Items = items
	snap.Bills = bills
	snap.Users = users
	return snap, nil
}

// Nullable column helpers. Empty strings and nil times are stored as NULL
// so that optional fields stay semantically absent.

func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(timeFormat)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func parseTime(v string) (time.Time, error) {
	t, err := time.Parse(timeFormat, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", v, err)
	}
	return t, nil
}

func parseNullTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid {
		return nil, nil
	}
	t, err := parseTime(v.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
