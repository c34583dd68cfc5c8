package store

import (
	"context"
	"fmt"
)

const createMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL
)`

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS pinned_windows (
        id TEXT PRIMARY KEY,
        position INTEGER NOT NULL,
        owner_bundle_id TEXT NOT NULL,
        owner_app_name TEXT NOT NULL DEFAULT '',
        title TEXT NOT NULL DEFAULT '',
        os_window_number INTEGER NOT NULL DEFAULT 0,
        last_known_runtime_id TEXT NOT NULL DEFAULT '',
        role TEXT NOT NULL DEFAULT '',
        subrole TEXT NOT NULL DEFAULT '',
        has_frame INTEGER NOT NULL DEFAULT 0,
        frame_x INTEGER NOT NULL DEFAULT 0,
        frame_y INTEGER NOT NULL DEFAULT 0,
        frame_width INTEGER NOT NULL DEFAULT 0,
        frame_height INTEGER NOT NULL DEFAULT 0,
        normalized_title TEXT NOT NULL DEFAULT '',
        signature TEXT NOT NULL DEFAULT '',
        custom_name TEXT NOT NULL DEFAULT '',
        created_at TEXT NOT NULL
    )`,
	`CREATE INDEX IF NOT EXISTS idx_pinned_windows_position ON pinned_windows(position)`,
}

func (s *Store) applyMigrations(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	var current int
	row := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`)
	if err := row.Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for idx, stmt := range migrations {
		version := idx + 1
		if version <= current {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration %d: %w", version, err)
		}
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO schema_migrations (version, applied_at) VALUES (?, datetime('now'))`,
			version,
		); err != nil {
			return fmt.Errorf("record migration %d: %w", version, err)
		}
	}
	return nil
}
