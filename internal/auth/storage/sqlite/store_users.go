package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ledgerlane/identity/internal/auth/storage"
	"github.com/ledgerlane/identity/internal/auth/user"
	apperrors "github.com/ledgerlane/identity/internal/platform/errors"
)

const userColumns = `id, username, email, password_hash, role, is_verified, is_active, has_passkey, created_at, updated_at, last_login_at`

// CreateUser inserts a new user record.
func (s *Store) CreateUser(ctx context.Context, u user.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(u.ID) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return fmt.Errorf("email is required")
	}

	return insertUser(ctx, s.sqlDB, u)
}

// CreateUserWithPassword inserts the user and the first password history row
// in one transaction. A failed insert leaves no history behind.
func (s *Store) CreateUserWithPassword(ctx context.Context, u user.User, entry storage.PasswordHistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(u.ID) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if strings.TrimSpace(entry.ID) == "" {
		return fmt.Errorf("history entry id is required")
	}
	if strings.TrimSpace(entry.PasswordHash) == "" {
		return fmt.Errorf("password hash is required")
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := insertUser(ctx, tx, u); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO password_history (id, user_id, password_hash, created_at) VALUES (?, ?, ?, ?)
`, entry.ID, u.ID, entry.PasswordHash, toMillis(entry.CreatedAt)); err != nil {
			return fmt.Errorf("seed password history: %w", err)
		}
		return nil
	})
}

func insertUser(ctx context.Context, db execContexter, u user.User) error {
	_, err := db.ExecContext(ctx, `
INSERT INTO users (
	id, username, email, password_hash, role, is_verified, is_active, has_passkey, created_at, updated_at, last_login_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		u.ID,
		u.Username,
		u.Email,
		nullString(u.PasswordHash),
		string(u.Role),
		boolToInt(u.IsVerified),
		boolToInt(u.IsActive),
		boolToInt(u.HasPasskey),
		toMillis(u.CreatedAt),
		toMillis(u.UpdatedAt),
		nullTime(u.LastLoginAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.New(apperrors.CodeDuplicateIdentity, "username or email is already taken")
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUser fetches a user by id.
func (s *Store) GetUser(ctx context.Context, userID string) (user.User, error) {
	return s.getUserWhere(ctx, "id = ?", userID)
}

// GetUserByUsername fetches a user by username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (user.User, error) {
	return s.getUserWhere(ctx, "username = ?", username)
}

// GetUserByEmail fetches a user by email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return s.getUserWhere(ctx, "email = ?", email)
}

func (s *Store) getUserWhere(ctx context.Context, where string, arg string) (user.User, error) {
	if err := ctx.Err(); err != nil {
		return user.User{}, err
	}
	if s == nil || s.sqlDB == nil {
		return user.User{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(arg) == "" {
		return user.User{}, fmt.Errorf("lookup value is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg)
	u, err := scanUser(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, storage.ErrNotFound
		}
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// UpdateUser persists mutable user fields.
func (s *Store) UpdateUser(ctx context.Context, u user.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(u.ID) == "" {
		return fmt.Errorf("user id is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE users SET
	email = ?,
	role = ?,
	is_verified = ?,
	is_active = ?,
	updated_at = ?,
	last_login_at = ?
WHERE id = ?
`,
		u.Email,
		string(u.Role),
		boolToInt(u.IsVerified),
		boolToInt(u.IsActive),
		toMillis(u.UpdatedAt),
		nullTime(u.LastLoginAt),
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListUsers returns a page of users ordered by creation time.
func (s *Store) ListUsers(ctx context.Context, pageSize int, pageToken string) (storage.UserPage, error) {
	if err := ctx.Err(); err != nil {
		return storage.UserPage{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.UserPage{}, fmt.Errorf("storage is not configured")
	}
	if pageSize <= 0 {
		pageSize = 50
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT `+userColumns+`
FROM users
WHERE id > ?
ORDER BY id
LIMIT ?
`, pageToken, pageSize+1)
	if err != nil {
		return storage.UserPage{}, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return storage.UserPage{}, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return storage.UserPage{}, fmt.Errorf("list users rows: %w", err)
	}

	page := storage.UserPage{Users: users}
	if len(users) > pageSize {
		page.Users = users[:pageSize]
		page.NextPageToken = users[pageSize-1].ID
	}
	return page, nil
}

// UpdatePassword sets the password hash and appends the history entry in one
// transaction.
func (s *Store) UpdatePassword(ctx context.Context, userID string, entry storage.PasswordHistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(entry.ID) == "" {
		return fmt.Errorf("history entry id is required")
	}
	if strings.TrimSpace(entry.PasswordHash) == "" {
		return fmt.Errorf("password hash is required")
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		return applyPasswordUpdate(ctx, tx, userID, entry)
	})
}

// applyPasswordUpdate performs the hash update and history append against an
// open transaction, so token redemption can reuse it.
func applyPasswordUpdate(ctx context.Context, tx *sql.Tx, userID string, entry storage.PasswordHistoryEntry) error {
	at := toMillis(entry.CreatedAt)
	result, err := tx.ExecContext(ctx, `
UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?
`, entry.PasswordHash, at, userID)
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO password_history (id, user_id, password_hash, created_at) VALUES (?, ?, ?, ?)
`, entry.ID, userID, entry.PasswordHash, at); err != nil {
		return fmt.Errorf("append password history: %w", err)
	}
	return nil
}

// ListPasswordHistory returns the newest limit history entries for the user.
func (s *Store) ListPasswordHistory(ctx context.Context, userID string, limit int) ([]storage.PasswordHistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, user_id, password_hash, created_at
FROM password_history
WHERE user_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ?
`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list password history: %w", err)
	}
	defer rows.Close()

	var entries []storage.PasswordHistoryEntry
	for rows.Next() {
		var entry storage.PasswordHistoryEntry
		var createdAt int64
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.PasswordHash, &createdAt); err != nil {
			return nil, fmt.Errorf("scan password history: %w", err)
		}
		entry.CreatedAt = fromMillis(createdAt)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list password history rows: %w", err)
	}
	return entries, nil
}

func scanUser(scan func(dest ...any) error) (user.User, error) {
	var u user.User
	var passwordHash sql.NullString
	var role string
	var isVerified, isActive, hasPasskey int
	var createdAt, updatedAt int64
	var lastLoginAt sql.NullInt64
	if err := scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&passwordHash,
		&role,
		&isVerified,
		&isActive,
		&hasPasskey,
		&createdAt,
		&updatedAt,
		&lastLoginAt,
	); err != nil {
		return user.User{}, err
	}
	u.PasswordHash = passwordHash.String
	u.Role = user.Role(role)
	u.IsVerified = isVerified != 0
	u.IsActive = isActive != 0
	u.HasPasskey = hasPasskey != 0
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)
	if lastLoginAt.Valid {
		value := fromMillis(lastLoginAt.Int64)
		u.LastLoginAt = &value
	}
	return u, nil
}

func nullString(value string) sql.NullString {
	if strings.TrimSpace(value) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func nullTime(value *time.Time) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toMillis(*value), Valid: true}
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
