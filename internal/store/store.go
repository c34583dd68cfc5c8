package store

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

	"winpin/internal/pins"
	"winpin/internal/window"
)

// Store persists the ordered pinned-reference list in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Open initializes or connects to the pins database and applies migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure state directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the on-disk database location.
func (s *Store) Path() string {
	return s.path
}

// LoadReferences returns the persisted references in stored order.
func (s *Store) LoadReferences(ctx context.Context) ([]pins.Reference, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, owner_bundle_id, owner_app_name, title, os_window_number,
               last_known_runtime_id, role, subrole,
               has_frame, frame_x, frame_y, frame_width, frame_height,
               normalized_title, signature, custom_name, created_at
        FROM pinned_windows
        ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query pinned windows: %w", err)
	}
	defer rows.Close()

	var refs []pins.Reference
	for rows.Next() {
		var (
			ref       pins.Reference
			hasFrame  bool
			frame     window.Frame
			createdAt string
		)
		if err := rows.Scan(
			&ref.ID, &ref.OwnerBundleID, &ref.OwnerAppName, &ref.Title,
			&ref.OSWindowNumber, &ref.LastKnownRuntimeID, &ref.Role, &ref.Subrole,
			&hasFrame, &frame.X, &frame.Y, &frame.Width, &frame.Height,
			&ref.NormalizedTitle, &ref.Signature, &ref.CustomName, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan pinned window: %w", err)
		}
		if hasFrame {
			ref.Frame = &frame
		}
		if parsed, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			ref.CreatedAt = parsed
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pinned windows: %w", err)
	}
	return refs, nil
}

// SaveReferences replaces the persisted list with refs, preserving order, in
// one transaction.
func (s *Store) SaveReferences(ctx context.Context, refs []pins.Reference) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin save: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, `DELETE FROM pinned_windows`); err != nil {
			return fmt.Errorf("clear pinned windows: %w", err)
		}
		for position, ref := range refs {
			var frame window.Frame
			hasFrame := ref.Frame != nil
			if hasFrame {
				frame = *ref.Frame
			}
			if _, err := tx.ExecContext(ctx, `
                INSERT INTO pinned_windows (
                    id, position, owner_bundle_id, owner_app_name, title,
                    os_window_number, last_known_runtime_id, role, subrole,
                    has_frame, frame_x, frame_y, frame_width, frame_height,
                    normalized_title, signature, custom_name, created_at
                ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				ref.ID, position, ref.OwnerBundleID, ref.OwnerAppName, ref.Title,
				ref.OSWindowNumber, ref.LastKnownRuntimeID, ref.Role, ref.Subrole,
				hasFrame, frame.X, frame.Y, frame.Width, frame.Height,
				ref.NormalizedTitle, ref.Signature, ref.CustomName,
				ref.CreatedAt.UTC().Format(time.RFC3339Nano),
			); err != nil {
				return fmt.Errorf("insert pinned window %s: %w", ref.ID, err)
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit save: %w", err)
		}
		return nil
	})
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
