// Package store persists the ordered pinned-reference list in SQLite with
// WAL journaling and busy retries. Saves replace the whole list in one
// transaction so stored order always round-trips exactly.
package store
