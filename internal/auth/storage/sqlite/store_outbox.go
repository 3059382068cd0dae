package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ledgerlane/identity/internal/auth/storage"
)

type execContexter interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// EnqueueEmail queues a transactional email for delivery.
func (s *Store) EnqueueEmail(ctx context.Context, msg storage.EmailOutboxMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return enqueueEmail(ctx, s.sqlDB, msg)
}

func enqueueEmail(ctx context.Context, target execContexter, msg storage.EmailOutboxMessage) error {
	if strings.TrimSpace(msg.ID) == "" {
		return fmt.Errorf("email id is required")
	}
	if strings.TrimSpace(msg.Recipient) == "" {
		return fmt.Errorf("email recipient is required")
	}
	if msg.Status == "" {
		msg.Status = storage.EmailOutboxStatusPending
	}
	now := time.Now().UTC()
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = now
	}
	if msg.UpdatedAt.IsZero() {
		msg.UpdatedAt = msg.CreatedAt
	}
	if msg.NextAttemptAt.IsZero() {
		msg.NextAttemptAt = msg.CreatedAt
	}

	if _, err := target.ExecContext(ctx, `
INSERT INTO email_outbox (id, recipient, subject, body, status, attempt_count, next_attempt_at, last_error, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		msg.ID,
		msg.Recipient,
		msg.Subject,
		msg.Body,
		msg.Status,
		msg.AttemptCount,
		toMillis(msg.NextAttemptAt),
		msg.LastError,
		toMillis(msg.CreatedAt),
		toMillis(msg.UpdatedAt),
	); err != nil {
		return fmt.Errorf("enqueue email: %w", err)
	}
	return nil
}

// LeasePendingEmails returns pending messages due at or before now, oldest
// first.
func (s *Store) LeasePendingEmails(ctx context.Context, limit int, now time.Time) ([]storage.EmailOutboxMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = 25
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, recipient, subject, body, status, attempt_count, next_attempt_at, last_error, created_at, updated_at
FROM email_outbox
WHERE status = ? AND next_attempt_at <= ?
ORDER BY next_attempt_at, id
LIMIT ?
`, storage.EmailOutboxStatusPending, toMillis(now), limit)
	if err != nil {
		return nil, fmt.Errorf("lease pending emails: %w", err)
	}
	defer rows.Close()

	var messages []storage.EmailOutboxMessage
	for rows.Next() {
		var msg storage.EmailOutboxMessage
		var nextAttemptAt, createdAt, updatedAt int64
		if err := rows.Scan(
			&msg.ID,
			&msg.Recipient,
			&msg.Subject,
			&msg.Body,
			&msg.Status,
			&msg.AttemptCount,
			&nextAttemptAt,
			&msg.LastError,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan email outbox row: %w", err)
		}
		msg.NextAttemptAt = fromMillis(nextAttemptAt)
		msg.CreatedAt = fromMillis(createdAt)
		msg.UpdatedAt = fromMillis(updatedAt)
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("lease pending emails rows: %w", err)
	}
	return messages, nil
}

// MarkEmailSent finalizes a delivered message.
func (s *Store) MarkEmailSent(ctx context.Context, id string, sentAt time.Time) error {
	return s.updateEmailStatus(ctx, id, `
UPDATE email_outbox SET status = ?, updated_at = ? WHERE id = ?
`, storage.EmailOutboxStatusSent, toMillis(sentAt), id)
}

// MarkEmailRetry reschedules a failed delivery.
func (s *Store) MarkEmailRetry(ctx context.Context, id string, nextAttemptAt time.Time, lastError string) error {
	return s.updateEmailStatus(ctx, id, `
UPDATE email_outbox SET attempt_count = attempt_count + 1, next_attempt_at = ?, last_error = ?, updated_at = ? WHERE id = ?
`, toMillis(nextAttemptAt), lastError, toMillis(time.Now()), id)
}

// MarkEmailDead abandons a message that exhausted its attempts.
func (s *Store) MarkEmailDead(ctx context.Context, id string, lastError string, at time.Time) error {
	return s.updateEmailStatus(ctx, id, `
UPDATE email_outbox SET status = ?, last_error = ?, updated_at = ? WHERE id = ?
`, storage.EmailOutboxStatusDead, lastError, toMillis(at), id)
}

func (s *Store) updateEmailStatus(ctx context.Context, id string, query string, args ...any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("email id is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update email outbox: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update email outbox rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
