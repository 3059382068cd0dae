package password

import (
	"context"
	"fmt"

	"github.com/ledgerlane/identity/internal/auth/storage"
	apperrors "github.com/ledgerlane/identity/internal/platform/errors"
)

// ErrPasswordReused indicates the new password matches a recent historical one.
var ErrPasswordReused = apperrors.New(apperrors.CodePasswordReused, "password was used recently and cannot be reused")

// HistoryStore is the slice of storage the reuse check needs.
type HistoryStore interface {
	ListPasswordHistory(ctx context.Context, userID string, limit int) ([]storage.PasswordHistoryEntry, error)
}

// Policy enforces password rules: strength at hash time and reuse prevention
// against the rotation history.
type Policy struct {
	hasher        *Hasher
	historyWindow int
}

// NewPolicy builds a Policy. historyWindow is the number of most recent
// hashes a new password is checked against; zero disables the reuse check.
func NewPolicy(hasher *Hasher, historyWindow int) *Policy {
	if historyWindow < 0 {
		historyWindow = 0
	}
	return &Policy{hasher: hasher, historyWindow: historyWindow}
}

// Hash derives a PHC-encoded hash for the password.
func (p *Policy) Hash(plaintext string) (string, error) {
	return p.hasher.Hash(plaintext)
}

// Verify reports whether plaintext matches the stored hash.
func (p *Policy) Verify(plaintext, encoded string) (bool, error) {
	return p.hasher.Verify(plaintext, encoded)
}

// CheckReuse fails with ErrPasswordReused when the candidate password matches
// any of the user's last historyWindow hashes. Hashes are salted, so each
// historical entry is verified individually.
func (p *Policy) CheckReuse(ctx context.Context, store HistoryStore, userID string, candidate string) error {
	if p.historyWindow == 0 {
		return nil
	}
	entries, err := store.ListPasswordHistory(ctx, userID, p.historyWindow)
	if err != nil {
		return fmt.Errorf("list password history: %w", err)
	}
	for _, entry := range entries {
		match, err := p.hasher.Verify(candidate, entry.PasswordHash)
		if err != nil {
			return fmt.Errorf("verify against history: %w", err)
		}
		if match {
			return ErrPasswordReused
		}
	}
	return nil
}
