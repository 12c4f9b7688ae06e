// Package presets persists named filter presets: snapshots of a FilterState
// a user saved for later reapplication.
package presets

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ohcanadadeals/dealdeck/internal/catalog"
	"github.com/ohcanadadeals/dealdeck/internal/store"
)

// storageKey is the single document key the preset list lives under.
const storageKey = "saved_filters"

// SavedFilter is a named FilterState snapshot. The ID is the creation time
// in unix milliseconds and doubles as the unique key.
type SavedFilter struct {
	ID          int64               `json:"id"`
	Label       string              `json:"label"`
	Description string              `json:"description,omitempty"`
	Value       catalog.FilterState `json:"value"`
	CreatedAt   time.Time           `json:"createdAt"`
	IsFavorite  bool                `json:"isFavorite"`
}

// Sentinel errors returned by the preset service.
var (
	ErrNotFound   = errors.New("preset not found")
	ErrEmptyLabel = errors.New("preset label must not be empty")
)

// Repository stores the preset list as one durable document. Writes are
// immediately visible to subsequent reads.
type Repository interface {
	// Load returns the stored preset list. Malformed stored data is
	// discarded wholesale: Load then returns an empty list, not an error.
	Load(ctx context.Context) ([]SavedFilter, error)

	// Save replaces the stored preset list.
	Save(ctx context.Context, filters []SavedFilter) error
}

// Compile-time interface guard.
var _ Repository = (*SQLiteRepository)(nil)

// SQLiteRepository implements Repository on the shared SQLite store,
// holding the whole list as one JSON document under storageKey.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a Repository and runs the presets migration.
func NewSQLiteRepository(ctx context.Context, s *store.SQLiteStore) (*SQLiteRepository, error) {
	if err := s.Migrate(ctx, "presets", presetMigrations); err != nil {
		return nil, fmt.Errorf("presets migrations: %w", err)
	}
	return &SQLiteRepository{db: s.DB()}, nil
}

func (r *SQLiteRepository) Load(ctx context.Context) ([]SavedFilter, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM preset_documents WHERE key = ?`, storageKey,
	).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return []SavedFilter{}, nil
		}
		return nil, fmt.Errorf("load presets: %w", err)
	}

	var filters []SavedFilter
	if err := json.Unmarshal([]byte(raw), &filters); err != nil {
		// Malformed stored data is never partially recovered.
		return []SavedFilter{}, nil
	}
	if filters == nil {
		filters = []SavedFilter{}
	}
	return filters, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, filters []SavedFilter) error {
	if filters == nil {
		filters = []SavedFilter{}
	}
	raw, err := json.Marshal(filters)
	if err != nil {
		return fmt.Errorf("encode presets: %w", err)
	}

	now := time.Now().UTC()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO preset_documents (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		storageKey, string(raw), now,
	)
	if err != nil {
		return fmt.Errorf("save presets: %w", err)
	}
	return nil
}

// presetMigrations defines the database schema for preset storage.
var presetMigrations = []store.Migration{
	{
		Version:     1,
		Description: "create preset_documents table",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE preset_documents (
					key        TEXT PRIMARY KEY,
					value      TEXT NOT NULL,
					updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`)
			return err
		},
	},
}
