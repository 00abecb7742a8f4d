package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/matzehuels/masonry/pkg/grid"
)

const defaultBusyTimeout = 5 * time.Second

// migrations are applied in order; PRAGMA user_version records how many ran.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS layouts (
		id         TEXT PRIMARY KEY,
		profile    TEXT NOT NULL DEFAULT '',
		tile_count INTEGER NOT NULL,
		row_count  INTEGER NOT NULL,
		width      REAL NOT NULL,
		height     REAL NOT NULL,
		data       BLOB NOT NULL,
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_layouts_created_at ON layouts(created_at DESC)`,
}

// SQLiteStore persists layouts in a SQLite database. The layout document is
// stored as JSON next to the columns List needs.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and migrates it.
// ":memory:" gives a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := applyPragmas(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", int(defaultBusyTimeout.Milliseconds())),
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("store: apply pragma %q: %w", pragma, err)
		}
	}
	return nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("store: read schema version: %w", err)
	}
	if version >= len(migrations) {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin migration: %w", err)
	}
	for i := version; i < len(migrations); i++ {
		if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("store: migration %d: %w", i+1, err)
		}
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", len(migrations))); err != nil {
		tx.Rollback()
		return fmt.Errorf("store: set schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit migration: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Save(ctx context.Context, l grid.Layout) (grid.Layout, error) {
	l, err := prepare(l)
	if err != nil {
		return grid.Layout{}, err
	}
	data, err := json.Marshal(l)
	if err != nil {
		return grid.Layout{}, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO layouts (id, profile, tile_count, row_count, width, height, data, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			profile = excluded.profile,
			tile_count = excluded.tile_count,
			row_count = excluded.row_count,
			width = excluded.width,
			height = excluded.height,
			data = excluded.data,
			created_at = excluded.created_at
	`, l.ID, l.Profile, l.Count(), len(l.Rows), l.Width, l.Height, data, l.CreatedAt.UnixMilli())
	if err != nil {
		return grid.Layout{}, fmt.Errorf("store: save layout %s: %w", l.ID, err)
	}
	return l, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (grid.Layout, error) {
	if err := checkID(id); err != nil {
		return grid.Layout{}, err
	}
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM layouts WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return grid.Layout{}, notFound(id)
	}
	if err != nil {
		return grid.Layout{}, fmt.Errorf("store: get layout %s: %w", id, err)
	}

	var l grid.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return grid.Layout{}, fmt.Errorf("store: decode layout %s: %w", id, err)
	}
	return l, nil
}

func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, profile, tile_count, row_count, width, height, created_at
		FROM layouts
		ORDER BY created_at DESC, id
		LIMIT ?
	`, listLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("store: list layouts: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var created int64
		if err := rows.Scan(&sum.ID, &sum.Profile, &sum.Tiles, &sum.Rows, &sum.Width, &sum.Height, &created); err != nil {
			return nil, fmt.Errorf("store: scan layout: %w", err)
		}
		sum.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM layouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete layout %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound(id)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
