package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ledgerlane/identity/internal/auth/audit"
)

// AppendAuditEntry records one authentication attempt.
func (s *Store) AppendAuditEntry(ctx context.Context, entry audit.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(entry.ID) == "" {
		return fmt.Errorf("entry id is required")
	}
	if strings.TrimSpace(entry.UserID) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(string(entry.Method)) == "" {
		return fmt.Errorf("auth method is required")
	}

	metadata := "{}"
	if len(entry.Metadata) > 0 {
		encoded, err := json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("marshal audit metadata: %w", err)
		}
		metadata = string(encoded)
	}

	if _, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO auth_audit_entries (id, user_id, auth_method, success, ip_address, user_agent, attempted_at, metadata)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`,
		entry.ID,
		entry.UserID,
		string(entry.Method),
		boolToInt(entry.Success),
		entry.IPAddress,
		entry.UserAgent,
		toMillis(entry.AttemptedAt),
		metadata,
	); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListAuditEntries returns the user's entries newest-first, at most limit.
func (s *Store) ListAuditEntries(ctx context.Context, userID string, limit int) ([]audit.Entry, error) {
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
		limit = 50
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, user_id, auth_method, success, ip_address, user_agent, attempted_at, metadata
FROM auth_audit_entries
WHERE user_id = ?
ORDER BY attempted_at DESC, id DESC
LIMIT ?
`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var entry audit.Entry
		var method string
		var success int
		var attemptedAt int64
		var metadata string
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&method,
			&success,
			&entry.IPAddress,
			&entry.UserAgent,
			&attemptedAt,
			&metadata,
		); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entry.Method = audit.Method(method)
		entry.Success = success != 0
		entry.AttemptedAt = fromMillis(attemptedAt)
		if metadata != "" && metadata != "{}" {
			if err := json.Unmarshal([]byte(metadata), &entry.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal audit metadata: %w", err)
			}
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list audit entries rows: %w", err)
	}
	return entries, nil
}
