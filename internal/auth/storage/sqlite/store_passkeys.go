package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ledgerlane/identity/internal/auth/storage"
	apperrors "github.com/ledgerlane/identity/internal/platform/errors"
)

const passkeyColumns = `id, user_id, credential_id, public_key, attestation_type, transports, sign_count, backup_eligible, backup_state, device_name, created_at, last_used_at, is_active`

// PutPasskeyCredential inserts the credential and recomputes the owner's
// has_passkey flag in one transaction.
func (s *Store) PutPasskeyCredential(ctx context.Context, credential storage.PasskeyCredential) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(credential.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if len(credential.CredentialID) == 0 {
		return fmt.Errorf("credential id is required")
	}
	if strings.TrimSpace(credential.UserID) == "" {
		return fmt.Errorf("user id is required")
	}
	if len(credential.PublicKey) == 0 {
		return fmt.Errorf("public key is required")
	}

	transports, err := json.Marshal(credential.Transports)
	if err != nil {
		return fmt.Errorf("marshal transports: %w", err)
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
INSERT INTO passkey_credentials (
	id, user_id, credential_id, public_key, attestation_type, transports, sign_count,
	backup_eligible, backup_state, device_name, created_at, last_used_at, is_active
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
			credential.ID,
			credential.UserID,
			credential.CredentialID,
			credential.PublicKey,
			credential.AttestationType,
			string(transports),
			int64(credential.SignCount),
			boolToInt(credential.BackupEligible),
			boolToInt(credential.BackupState),
			credential.DeviceName,
			toMillis(credential.CreatedAt),
			nullTime(credential.LastUsedAt),
			boolToInt(credential.IsActive),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.New(apperrors.CodeDuplicateIdentity, "passkey credential is already registered")
			}
			return fmt.Errorf("insert passkey credential: %w", err)
		}
		return recomputeHasPasskey(ctx, tx, credential.UserID, toMillis(credential.CreatedAt))
	})
}

// GetPasskeyCredential fetches a stored WebAuthn credential.
func (s *Store) GetPasskeyCredential(ctx context.Context, credentialID []byte) (storage.PasskeyCredential, error) {
	if err := ctx.Err(); err != nil {
		return storage.PasskeyCredential{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.PasskeyCredential{}, fmt.Errorf("storage is not configured")
	}
	if len(credentialID) == 0 {
		return storage.PasskeyCredential{}, fmt.Errorf("credential id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+passkeyColumns+` FROM passkey_credentials WHERE credential_id = ?`, credentialID)
	credential, err := scanPasskey(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.PasskeyCredential{}, storage.ErrNotFound
		}
		return storage.PasskeyCredential{}, fmt.Errorf("get passkey: %w", err)
	}
	return credential, nil
}

// ListPasskeyCredentials returns passkeys for a user, newest first.
func (s *Store) ListPasskeyCredentials(ctx context.Context, userID string, activeOnly bool) ([]storage.PasskeyCredential, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("user id is required")
	}

	query := `SELECT ` + passkeyColumns + ` FROM passkey_credentials WHERE user_id = ?`
	if activeOnly {
		query += ` AND is_active = 1`
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.sqlDB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list passkeys: %w", err)
	}
	defer rows.Close()

	var credentials []storage.PasskeyCredential
	for rows.Next() {
		credential, err := scanPasskey(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan passkey: %w", err)
		}
		credentials = append(credentials, credential)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list passkeys rows: %w", err)
	}
	return credentials, nil
}

// UpdatePasskeyCounter advances the signature counter conditional on the
// stored value still being oldCount, so a raced assertion cannot roll the
// counter back.
func (s *Store) UpdatePasskeyCounter(ctx context.Context, credentialID []byte, oldCount, newCount uint32, usedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if len(credentialID) == 0 {
		return fmt.Errorf("credential id is required")
	}

	result, err := s.sqlDB.ExecContext(ctx, `
UPDATE passkey_credentials
SET sign_count = ?, last_used_at = ?
WHERE credential_id = ? AND sign_count = ? AND is_active = 1
`, int64(newCount), toMillis(usedAt), credentialID, int64(oldCount))
	if err != nil {
		return fmt.Errorf("update passkey counter: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update passkey counter rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeactivatePasskeyCredential marks the credential inactive and recomputes
// has_passkey in one transaction. The user's last authentication method
// cannot be removed.
func (s *Store) DeactivatePasskeyCredential(ctx context.Context, userID string, credentialID []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user id is required")
	}
	if len(credentialID) == 0 {
		return fmt.Errorf("credential id is required")
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		var passwordHash sql.NullString
		if err := tx.QueryRowContext(ctx, `SELECT password_hash FROM users WHERE id = ?`, userID).Scan(&passwordHash); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return storage.ErrNotFound
			}
			return fmt.Errorf("load user for deactivation: %w", err)
		}

		var activeOthers int64
		if err := tx.QueryRowContext(ctx, `
SELECT COUNT(*) FROM passkey_credentials
WHERE user_id = ? AND is_active = 1 AND credential_id <> ?
`, userID, credentialID).Scan(&activeOthers); err != nil {
			return fmt.Errorf("count active passkeys: %w", err)
		}

		if !passwordHash.Valid && activeOthers == 0 {
			return apperrors.New(apperrors.CodeLastAuthenticationMethod, "cannot remove the only remaining authentication method")
		}

		result, err := tx.ExecContext(ctx, `
UPDATE passkey_credentials SET is_active = 0
WHERE user_id = ? AND credential_id = ? AND is_active = 1
`, userID, credentialID)
		if err != nil {
			return fmt.Errorf("deactivate passkey: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("deactivate passkey rows affected: %w", err)
		}
		if affected == 0 {
			return storage.ErrNotFound
		}

		return recomputeHasPasskey(ctx, tx, userID, toMillis(time.Now()))
	})
}

// recomputeHasPasskey rederives the has_passkey cache from active credentials.
func recomputeHasPasskey(ctx context.Context, tx *sql.Tx, userID string, updatedAt int64) error {
	if _, err := tx.ExecContext(ctx, `
UPDATE users SET
	has_passkey = EXISTS (SELECT 1 FROM passkey_credentials WHERE user_id = ? AND is_active = 1),
	updated_at = ?
WHERE id = ?
`, userID, updatedAt, userID); err != nil {
		return fmt.Errorf("recompute has_passkey: %w", err)
	}
	return nil
}

// PutCeremony stores an in-flight WebAuthn ceremony.
func (s *Store) PutCeremony(ctx context.Context, ceremony storage.Ceremony) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(ceremony.ID) == "" {
		return fmt.Errorf("ceremony id is required")
	}
	if strings.TrimSpace(ceremony.Kind) == "" {
		return fmt.Errorf("ceremony kind is required")
	}
	if strings.TrimSpace(ceremony.SessionJSON) == "" {
		return fmt.Errorf("session json is required")
	}

	if _, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO ceremonies (id, kind, subject, session_json, created_at, expires_at)
VALUES (?, ?, ?, ?, ?, ?)
`,
		ceremony.ID,
		ceremony.Kind,
		ceremony.Subject,
		ceremony.SessionJSON,
		toMillis(ceremony.CreatedAt),
		toMillis(ceremony.ExpiresAt),
	); err != nil {
		return fmt.Errorf("insert ceremony: %w", err)
	}
	return nil
}

// ConsumeCeremony deletes the ceremony and returns it in a single statement,
// so concurrent finishes observe at most one winner.
func (s *Store) ConsumeCeremony(ctx context.Context, ceremonyID string) (storage.Ceremony, error) {
	if err := ctx.Err(); err != nil {
		return storage.Ceremony{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Ceremony{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(ceremonyID) == "" {
		return storage.Ceremony{}, fmt.Errorf("ceremony id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
DELETE FROM ceremonies WHERE id = ?
RETURNING id, kind, subject, session_json, created_at, expires_at
`, ceremonyID)

	var ceremony storage.Ceremony
	var createdAt, expiresAt int64
	if err := row.Scan(
		&ceremony.ID,
		&ceremony.Kind,
		&ceremony.Subject,
		&ceremony.SessionJSON,
		&createdAt,
		&expiresAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Ceremony{}, storage.ErrNotFound
		}
		return storage.Ceremony{}, fmt.Errorf("consume ceremony: %w", err)
	}
	ceremony.CreatedAt = fromMillis(createdAt)
	ceremony.ExpiresAt = fromMillis(expiresAt)
	return ceremony, nil
}

// DeleteExpiredCeremonies removes abandoned ceremonies.
func (s *Store) DeleteExpiredCeremonies(ctx context.Context, now time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM ceremonies WHERE expires_at <= ?`, toMillis(now)); err != nil {
		return fmt.Errorf("delete expired ceremonies: %w", err)
	}
	return nil
}

func scanPasskey(scan func(dest ...any) error) (storage.PasskeyCredential, error) {
	var credential storage.PasskeyCredential
	var transports string
	var signCount int64
	var backupEligible, backupState, isActive int
	var createdAt int64
	var lastUsedAt sql.NullInt64
	if err := scan(
		&credential.ID,
		&credential.UserID,
		&credential.CredentialID,
		&credential.PublicKey,
		&credential.AttestationType,
		&transports,
		&signCount,
		&backupEligible,
		&backupState,
		&credential.DeviceName,
		&createdAt,
		&lastUsedAt,
		&isActive,
	); err != nil {
		return storage.PasskeyCredential{}, err
	}
	if err := json.Unmarshal([]byte(transports), &credential.Transports); err != nil {
		return storage.PasskeyCredential{}, fmt.Errorf("unmarshal transports: %w", err)
	}
	credential.SignCount = uint32(signCount)
	credential.BackupEligible = backupEligible != 0
	credential.BackupState = backupState != 0
	credential.IsActive = isActive != 0
	credential.CreatedAt = fromMillis(createdAt)
	if lastUsedAt.Valid {
		value := fromMillis(lastUsedAt.Int64)
		credential.LastUsedAt = &value
	}
	return credential, nil
}
