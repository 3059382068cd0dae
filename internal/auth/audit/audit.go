// Package audit records authentication attempts in an append-only trail.
package audit

import (
	"context"
	"time"

	"github.com/ledgerlane/identity/internal/platform/id"
	"github.com/ledgerlane/identity/internal/platform/logging"
)

// Method identifies how an authentication attempt was made.
type Method string

const (
	MethodPassword Method = "password"
	MethodPasskey  Method = "passkey"
	MethodOTP      Method = "otp"
)

// Entry is one immutable authentication event.
type Entry struct {
	ID          string
	UserID      string
	Method      Method
	Success     bool
	IPAddress   string
	UserAgent   string
	AttemptedAt time.Time
	Metadata    map[string]string
}

// Store persists audit entries.
type Store interface {
	AppendAuditEntry(ctx context.Context, entry Entry) error
	ListAuditEntries(ctx context.Context, userID string, limit int) ([]Entry, error)
}

// Recorder is the sole writer of the audit trail.
type Recorder struct {
	store       Store
	logger      logging.Logger
	clock       func() time.Time
	idGenerator func() (string, error)
}

// NewRecorder builds a Recorder over the given store.
func NewRecorder(store Store, logger logging.Logger) *Recorder {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Recorder{
		store:       store,
		logger:      logger,
		clock:       time.Now,
		idGenerator: id.NewID,
	}
}

// WithClock overrides the time source; for tests.
func (r *Recorder) WithClock(clock func() time.Time) *Recorder {
	r.clock = clock
	return r
}

// Record appends one attempt. Recording is best-effort: failures are logged
// and never propagate to the authentication flow being described.
func (r *Recorder) Record(ctx context.Context, userID string, method Method, success bool, ip, userAgent string, metadata map[string]string) {
	if r == nil || r.store == nil {
		return
	}
	entryID, err := r.idGenerator()
	if err != nil {
		r.logger.Warn(ctx, "audit id generation failed", "error", err)
		return
	}
	entry := Entry{
		ID:          entryID,
		UserID:      userID,
		Method:      method,
		Success:     success,
		IPAddress:   ip,
		UserAgent:   userAgent,
		AttemptedAt: r.clock().UTC(),
		Metadata:    metadata,
	}
	if err := r.store.AppendAuditEntry(ctx, entry); err != nil {
		r.logger.Warn(ctx, "audit append failed", "user_id", userID, "method", string(method), "error", err)
	}
}

// List returns the user's entries newest-first, at most limit.
func (r *Recorder) List(ctx context.Context, userID string, limit int) ([]Entry, error) {
	return r.store.ListAuditEntries(ctx, userID, limit)
}
