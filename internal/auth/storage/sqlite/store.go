// Package sqlite implements identity persistence over SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ledgerlane/identity/internal/auth/storage"
	"github.com/ledgerlane/identity/internal/auth/storage/sqlite/migrations"
	sqlitemigrate "github.com/ledgerlane/identity/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// toMillis normalizes timestamps into millisecond precision for storage.
func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// fromMillis restores millisecond precision and keeps UTC normalization.
func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Store implements identity persistence over SQLite.
//
// A single SQLite file backs identity state so every auth subflow can share
// the same transaction and visibility boundaries.
type Store struct {
	sqlDB *sql.DB
}

// DB returns the raw database handle.
func (s *Store) DB() *sql.DB {
	if s == nil {
		return nil
	}
	return s.sqlDB
}

// Open opens an identity SQLite store and applies bundled migrations.
//
// This keeps startup and schema evolution in one place, instead of requiring
// callers to coordinate migrations independently.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}

	if err := store.runMigrations(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return store, nil
}

// Close releases the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// runMigrations applies embedded DDL snapshots for known schema versions.
func (s *Store) runMigrations() error {
	return sqlitemigrate.ApplyMigrations(s.sqlDB, migrations.FS, "")
}

// inTx runs fn inside a transaction, committing on success.
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// isUniqueViolation detects SQLite unique-constraint failures.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

const authStatisticsQuery = `
SELECT
    (SELECT COUNT(*) FROM users WHERE (?1 IS NULL OR created_at >= ?1)),
    (SELECT COUNT(*) FROM passkey_credentials WHERE is_active = 1 AND (?1 IS NULL OR created_at >= ?1)),
    (SELECT COUNT(*) FROM auth_audit_entries WHERE (?1 IS NULL OR attempted_at >= ?1)),
    (SELECT COUNT(*) FROM single_use_tokens WHERE expires_at > ?2 AND (?1 IS NULL OR created_at >= ?1));
`

// GetAuthStatistics returns aggregate counts across identity data. The
// single-use token count covers only tokens that are still redeemable.
func (s *Store) GetAuthStatistics(ctx context.Context, since *time.Time) (storage.AuthStatistics, error) {
	if err := ctx.Err(); err != nil {
		return storage.AuthStatistics{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.AuthStatistics{}, fmt.Errorf("storage is not configured")
	}

	var sinceMillis any
	if since != nil {
		sinceMillis = toMillis(*since)
	}

	var stats storage.AuthStatistics
	row := s.sqlDB.QueryRowContext(ctx, authStatisticsQuery, sinceMillis, toMillis(time.Now()))
	if err := row.Scan(
		&stats.UserCount,
		&stats.ActiveCredentialCount,
		&stats.AuditEntryCount,
		&stats.PendingSingleUseTokens,
	); err != nil {
		return storage.AuthStatistics{}, fmt.Errorf("query auth statistics: %w", err)
	}
	return stats, nil
}

var _ storage.UserStore = (*Store)(nil)
var _ storage.PasskeyStore = (*Store)(nil)
var _ storage.TokenStore = (*Store)(nil)
var _ storage.EmailOutboxStore = (*Store)(nil)
var _ storage.AuditStore = (*Store)(nil)
var _ storage.StatisticsStore = (*Store)(nil)
