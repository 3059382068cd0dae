package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ledgerlane/identity/internal/auth/storage"
	apperrors "github.com/ledgerlane/identity/internal/platform/errors"
)

// PutSingleUseTokenWithEmail stores the token and enqueues its delivery email
// in one transaction, so a token never exists without a pending notification.
func (s *Store) PutSingleUseTokenWithEmail(ctx context.Context, token storage.SingleUseToken, email storage.EmailOutboxMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(token.ID) == "" {
		return fmt.Errorf("token id is required")
	}
	if strings.TrimSpace(token.Token) == "" {
		return fmt.Errorf("token value is required")
	}
	if strings.TrimSpace(token.UserID) == "" {
		return fmt.Errorf("user id is required")
	}
	if token.TokenType != storage.TokenTypeActivation && token.TokenType != storage.TokenTypePasswordReset {
		return fmt.Errorf("unknown token type %q", token.TokenType)
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO single_use_tokens (id, user_id, token, token_type, expires_at, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`,
			token.ID,
			token.UserID,
			token.Token,
			string(token.TokenType),
			toMillis(token.ExpiresAt),
			toMillis(token.CreatedAt),
		); err != nil {
			return fmt.Errorf("insert single use token: %w", err)
		}
		return enqueueEmail(ctx, tx, email)
	})
}

// GetSingleUseToken fetches a token without consuming it.
func (s *Store) GetSingleUseToken(ctx context.Context, rawToken string, tokenType storage.TokenType) (storage.SingleUseToken, error) {
	if err := ctx.Err(); err != nil {
		return storage.SingleUseToken{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.SingleUseToken{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(rawToken) == "" {
		return storage.SingleUseToken{}, fmt.Errorf("token value is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, user_id, token, token_type, expires_at, created_at
FROM single_use_tokens
WHERE token = ? AND token_type = ?
`, rawToken, string(tokenType))
	token, err := scanSingleUseToken(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.SingleUseToken{}, storage.ErrNotFound
		}
		return storage.SingleUseToken{}, fmt.Errorf("get single use token: %w", err)
	}
	return token, nil
}

// ConsumeActivationToken deletes the token and marks its user verified and
// active in one transaction. Expired tokens are deleted without activating.
func (s *Store) ConsumeActivationToken(ctx context.Context, rawToken string, now time.Time) (storage.SingleUseToken, error) {
	var consumed storage.SingleUseToken
	err := s.consumeToken(ctx, rawToken, storage.TokenTypeActivation, now, func(tx *sql.Tx, token storage.SingleUseToken) error {
		consumed = token
		result, err := tx.ExecContext(ctx, `
UPDATE users SET is_verified = 1, is_active = 1, updated_at = ? WHERE id = ?
`, toMillis(now), token.UserID)
		if err != nil {
			return fmt.Errorf("activate user: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("activate user rows affected: %w", err)
		}
		if affected == 0 {
			return storage.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return storage.SingleUseToken{}, err
	}
	return consumed, nil
}

// ConsumeResetTokenWithPassword deletes the token and applies the password
// update in one transaction.
func (s *Store) ConsumeResetTokenWithPassword(ctx context.Context, rawToken string, now time.Time, entry storage.PasswordHistoryEntry) (storage.SingleUseToken, error) {
	if strings.TrimSpace(entry.ID) == "" {
		return storage.SingleUseToken{}, fmt.Errorf("history entry id is required")
	}
	if strings.TrimSpace(entry.PasswordHash) == "" {
		return storage.SingleUseToken{}, fmt.Errorf("password hash is required")
	}

	var consumed storage.SingleUseToken
	err := s.consumeToken(ctx, rawToken, storage.TokenTypePasswordReset, now, func(tx *sql.Tx, token storage.SingleUseToken) error {
		consumed = token
		return applyPasswordUpdate(ctx, tx, token.UserID, entry)
	})
	if err != nil {
		return storage.SingleUseToken{}, err
	}
	return consumed, nil
}

// consumeToken deletes the token row and, when it has not expired, applies
// the effect inside the same transaction. The delete-returning form makes
// the token consumable at most once even under concurrent redemption.
func (s *Store) consumeToken(ctx context.Context, rawToken string, tokenType storage.TokenType, now time.Time, effect func(tx *sql.Tx, token storage.SingleUseToken) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(rawToken) == "" {
		return fmt.Errorf("token value is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	row := tx.QueryRowContext(ctx, `
DELETE FROM single_use_tokens WHERE token = ? AND token_type = ?
RETURNING id, user_id, token, token_type, expires_at, created_at
`, rawToken, string(tokenType))
	token, err := scanSingleUseToken(row.Scan)
	if err != nil {
		_ = tx.Rollback()
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("consume single use token: %w", err)
	}

	if !token.ExpiresAt.After(now) {
		// Commit the delete so the stale token cannot be retried.
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit expired token delete: %w", err)
		}
		return apperrors.New(apperrors.CodeSingleUseTokenExpired, "token has expired")
	}

	if err := effect(tx, token); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// DeleteExpiredSingleUseTokens removes tokens past their expiry.
func (s *Store) DeleteExpiredSingleUseTokens(ctx context.Context, now time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM single_use_tokens WHERE expires_at <= ?`, toMillis(now)); err != nil {
		return fmt.Errorf("delete expired single use tokens: %w", err)
	}
	return nil
}

func scanSingleUseToken(scan func(dest ...any) error) (storage.SingleUseToken, error) {
	var token storage.SingleUseToken
	var tokenType string
	var expiresAt, createdAt int64
	if err := scan(
		&token.ID,
		&token.UserID,
		&token.Token,
		&tokenType,
		&expiresAt,
		&createdAt,
	); err != nil {
		return storage.SingleUseToken{}, err
	}
	token.TokenType = storage.TokenType(tokenType)
	token.ExpiresAt = fromMillis(expiresAt)
	token.CreatedAt = fromMillis(createdAt)
	return token, nil
}
