// Package storage defines persistence contracts for the identity service.
package storage

import (
	"context"
	"time"

	"github.com/ledgerlane/identity/internal/auth/audit"
	"github.com/ledgerlane/identity/internal/auth/user"
	"github.com/ledgerlane/identity/internal/platform/errors"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New(errors.CodeNotFound, "record not found")

// UserStore persists identity user records.
type UserStore interface {
	// CreateUser inserts a new user. A username or email collision fails
	// with CodeDuplicateIdentity.
	CreateUser(ctx context.Context, u user.User) error
	// CreateUserWithPassword inserts the user and seeds the first password
	// history entry in one transaction, so the initial hash participates
	// in reuse checks from the moment the account exists.
	CreateUserWithPassword(ctx context.Context, u user.User, entry PasswordHistoryEntry) error
	GetUser(ctx context.Context, userID string) (user.User, error)
	GetUserByUsername(ctx context.Context, username string) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	UpdateUser(ctx context.Context, u user.User) error
	ListUsers(ctx context.Context, pageSize int, pageToken string) (UserPage, error)

	// UpdatePassword sets the user's password hash and appends the matching
	// history entry in one transaction. Neither write is observable without
	// the other.
	UpdatePassword(ctx context.Context, userID string, entry PasswordHistoryEntry) error
	// ListPasswordHistory returns the newest limit entries for the user,
	// newest first.
	ListPasswordHistory(ctx context.Context, userID string, limit int) ([]PasswordHistoryEntry, error)
}

// UserPage describes a page of user records.
type UserPage struct {
	Users         []user.User
	NextPageToken string
}

// PasswordHistoryEntry is an append-only record of a hash a user has held.
type PasswordHistoryEntry struct {
	ID           string
	UserID       string
	PasswordHash string
	CreatedAt    time.Time
}

// PasskeyCredential stores a WebAuthn credential for a user.
//
// SignCount tracks the authenticator's signature counter. A credential whose
// stored counter has only ever been zero is treated as a zero-counter
// authenticator; it opts into strict monotonic checking the first time it
// reports a nonzero value.
type PasskeyCredential struct {
	ID              string
	UserID          string
	CredentialID    []byte
	PublicKey       []byte
	AttestationType string
	Transports      []string
	SignCount       uint32
	BackupEligible  bool
	BackupState     bool
	DeviceName      string
	CreatedAt       time.Time
	LastUsedAt      *time.Time
	IsActive        bool
}

// Ceremony stores an in-flight WebAuthn registration or login session.
type Ceremony struct {
	ID          string
	Kind        string
	Subject     string
	SessionJSON string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// PasskeyStore persists WebAuthn credential and ceremony data.
type PasskeyStore interface {
	// PutPasskeyCredential inserts the credential and recomputes the
	// owner's has_passkey flag in one transaction. A credential id
	// collision fails with CodeDuplicateIdentity.
	PutPasskeyCredential(ctx context.Context, credential PasskeyCredential) error
	GetPasskeyCredential(ctx context.Context, credentialID []byte) (PasskeyCredential, error)
	ListPasskeyCredentials(ctx context.Context, userID string, activeOnly bool) ([]PasskeyCredential, error)
	// UpdatePasskeyCounter advances the signature counter from oldCount to
	// newCount and stamps last_used_at. The update is conditional on the
	// stored counter still being oldCount; a lost race fails with
	// ErrNotFound.
	UpdatePasskeyCounter(ctx context.Context, credentialID []byte, oldCount, newCount uint32, usedAt time.Time) error
	// DeactivatePasskeyCredential marks the credential inactive and
	// recomputes has_passkey in one transaction. Removing the user's last
	// authentication method fails with CodeLastAuthenticationMethod.
	DeactivatePasskeyCredential(ctx context.Context, userID string, credentialID []byte) error

	PutCeremony(ctx context.Context, ceremony Ceremony) error
	// ConsumeCeremony deletes the ceremony and returns it in one statement,
	// so concurrent finishes observe at most one winner. A missing ceremony
	// fails with ErrNotFound. Expired ceremonies are still returned (and
	// deleted); callers check ExpiresAt.
	ConsumeCeremony(ctx context.Context, ceremonyID string) (Ceremony, error)
	DeleteExpiredCeremonies(ctx context.Context, now time.Time) error
}

// TokenType distinguishes single-use token purposes.
type TokenType string

const (
	TokenTypeActivation    TokenType = "activation"
	TokenTypePasswordReset TokenType = "password_reset"
)

// SingleUseToken is an activation or password-reset token. Consumable at
// most once, ever.
type SingleUseToken struct {
	ID        string
	UserID    string
	Token     string
	TokenType TokenType
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TokenStore persists single-use tokens.
type TokenStore interface {
	// PutSingleUseTokenWithEmail stores the token and enqueues its delivery
	// email in one transaction.
	PutSingleUseTokenWithEmail(ctx context.Context, token SingleUseToken, email EmailOutboxMessage) error
	GetSingleUseToken(ctx context.Context, rawToken string, tokenType TokenType) (SingleUseToken, error)
	// ConsumeActivationToken deletes the token and marks its user verified
	// and active in one transaction. A missing token fails with
	// ErrNotFound; expired tokens are deleted without activating and fail
	// with CodeSingleUseTokenExpired.
	ConsumeActivationToken(ctx context.Context, rawToken string, now time.Time) (SingleUseToken, error)
	// ConsumeResetTokenWithPassword deletes the token and applies the
	// password update (hash plus history entry) in one transaction. Same
	// missing/expired semantics as ConsumeActivationToken.
	ConsumeResetTokenWithPassword(ctx context.Context, rawToken string, now time.Time, entry PasswordHistoryEntry) (SingleUseToken, error)
	DeleteExpiredSingleUseTokens(ctx context.Context, now time.Time) error
}

// EmailOutboxMessage is a queued delivery request for a transactional email.
type EmailOutboxMessage struct {
	ID            string
	Recipient     string
	Subject       string
	Body          string
	Status        string
	AttemptCount  int
	NextAttemptAt time.Time
	LastError     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Email outbox statuses.
const (
	EmailOutboxStatusPending = "pending"
	EmailOutboxStatusSent    = "sent"
	EmailOutboxStatusDead    = "dead"
)

// EmailOutboxStore persists queued transactional emails.
type EmailOutboxStore interface {
	EnqueueEmail(ctx context.Context, msg EmailOutboxMessage) error
	// LeasePendingEmails returns pending messages due at or before now,
	// oldest first.
	LeasePendingEmails(ctx context.Context, limit int, now time.Time) ([]EmailOutboxMessage, error)
	MarkEmailSent(ctx context.Context, id string, sentAt time.Time) error
	MarkEmailRetry(ctx context.Context, id string, nextAttemptAt time.Time, lastError string) error
	MarkEmailDead(ctx context.Context, id string, lastError string, at time.Time) error
}

// AuditStore persists authentication audit entries.
type AuditStore = audit.Store

// AuthStatistics contains aggregate counts across identity data.
type AuthStatistics struct {
	UserCount              int64
	ActiveCredentialCount  int64
	AuditEntryCount        int64
	PendingSingleUseTokens int64
}

// StatisticsStore provides aggregate identity statistics.
type StatisticsStore interface {
	// GetAuthStatistics returns aggregate counts.
	// When since is nil, counts are for all time.
	GetAuthStatistics(ctx context.Context, since *time.Time) (AuthStatistics, error)
}
