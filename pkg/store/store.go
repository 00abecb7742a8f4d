// Package store persists computed layouts so they can be fetched again by
// ID, rendered later, or shared through the HTTP API.
//
// Three backends implement [Store]:
//
//   - [MemoryStore]: process-local map, the default for tests and `serve`
//     without a database
//   - [SQLiteStore]: single-file database through modernc.org/sqlite
//   - [MongoStore]: shared document store keyed by layout ID
//
// [Open] picks a backend from a DSN.
package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	errs "github.com/matzehuels/masonry/pkg/errors"
	"github.com/matzehuels/masonry/pkg/grid"
)

// ErrNotFound is wrapped by every backend when a layout ID does not exist.
var ErrNotFound = errors.New("layout not found")

// DefaultListLimit caps List when limit <= 0.
const DefaultListLimit = 50

// Store persists layouts.
type Store interface {
	// Save inserts or replaces l. An empty ID is assigned a UUID and a zero
	// CreatedAt is set to now. The stored layout is returned.
	Save(ctx context.Context, l grid.Layout) (grid.Layout, error)
	Get(ctx context.Context, id string) (grid.Layout, error)
	// List returns summaries, newest first.
	List(ctx context.Context, limit int) ([]Summary, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// Summary describes a stored layout without its rows.
type Summary struct {
	ID        string    `json:"id"`
	Profile   string    `json:"profile,omitempty"`
	Tiles     int       `json:"tiles"`
	Rows      int       `json:"rows"`
	Width     float64   `json:"width"`
	Height    float64   `json:"height"`
	CreatedAt time.Time `json:"created_at"`
}

// Summarize builds the Summary of l.
func Summarize(l grid.Layout) Summary {
	return Summary{
		ID:        l.ID,
		Profile:   l.Profile,
		Tiles:     l.Count(),
		Rows:      len(l.Rows),
		Width:     l.Width,
		Height:    l.Height,
		CreatedAt: l.CreatedAt,
	}
}

// prepare assigns an ID and creation time and validates the result.
// Times are truncated to milliseconds, the resolution every backend keeps.
func prepare(l grid.Layout) (grid.Layout, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	l.CreatedAt = l.CreatedAt.UTC().Truncate(time.Millisecond)
	if err := l.Validate(); err != nil {
		return grid.Layout{}, err
	}
	return l, nil
}

func notFound(id string) error {
	return errs.Wrap(errs.ErrCodeNotFound, ErrNotFound, "layout %s", id)
}

func checkID(id string) error {
	return errs.ValidateLayoutID(id)
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

// Open returns a store for dsn:
//
//	""  or "memory"          MemoryStore
//	"sqlite://path/to.db"    SQLiteStore (also any path ending in .db)
//	"mongodb://..."          MongoStore using database "masonry"
func Open(ctx context.Context, dsn string) (Store, error) {
	switch {
	case dsn == "" || dsn == "memory":
		return NewMemoryStore(), nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return OpenSQLite(ctx, strings.TrimPrefix(dsn, "sqlite://"))
	case strings.HasSuffix(dsn, ".db"):
		return OpenSQLite(ctx, dsn)
	case strings.HasPrefix(dsn, "mongodb://"), strings.HasPrefix(dsn, "mongodb+srv://"):
		return OpenMongo(ctx, dsn, DefaultMongoDatabase)
	default:
		return nil, errs.New(errs.ErrCodeInvalidConfig, "unrecognised store %q", dsn)
	}
}
