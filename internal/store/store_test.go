package store

import (
	"context"
	"database/sql"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("New(:memory:): %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewAppliesPragmas(t *testing.T) {
	s := newTestStore(t)

	var fk int
	if err := s.DB().QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}
}

func TestMigrateAppliesInOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	migrations := []Migration{
		{
			Version:     1,
			Description: "create things",
			Up: func(tx *sql.Tx) error {
				_, err := tx.Exec(`CREATE TABLE things (id INTEGER PRIMARY KEY, name TEXT)`)
				return err
			},
		},
		{
			Version:     2,
			Description: "add label column",
			Up: func(tx *sql.Tx) error {
				_, err := tx.Exec(`ALTER TABLE things ADD COLUMN label TEXT`)
				return err
			},
		},
	}

	if err := s.Migrate(ctx, "test", migrations); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	if _, err := s.DB().Exec(`INSERT INTO things (name, label) VALUES ('a', 'b')`); err != nil {
		t.Fatalf("schema incomplete after migrations: %v", err)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	applied := 0
	migrations := []Migration{{
		Version:     1,
		Description: "create once",
		Up: func(tx *sql.Tx) error {
			applied++
			_, err := tx.Exec(`CREATE TABLE once (id INTEGER PRIMARY KEY)`)
			return err
		},
	}}

	if err := s.Migrate(ctx, "test", migrations); err != nil {
		t.Fatalf("first Migrate: %v", err)
	}
	if err := s.Migrate(ctx, "test", migrations); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
	if applied != 1 {
		t.Errorf("migration applied %d times, want 1", applied)
	}
}

func TestMigrateComponentsAreIndependent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mk := func(table string) []Migration {
		return []Migration{{
			Version:     1,
			Description: "create " + table,
			Up: func(tx *sql.Tx) error {
				_, err := tx.Exec(`CREATE TABLE ` + table + ` (id INTEGER PRIMARY KEY)`)
				return err
			},
		}}
	}

	if err := s.Migrate(ctx, "alpha", mk("alpha_rows")); err != nil {
		t.Fatalf("Migrate alpha: %v", err)
	}
	if err := s.Migrate(ctx, "beta", mk("beta_rows")); err != nil {
		t.Fatalf("Migrate beta: %v", err)
	}

	var count int
	err := s.DB().QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&count)
	if err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count != 2 {
		t.Errorf("recorded %d migrations, want 2", count)
	}
}
