package password

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ledgerlane/identity/internal/auth/storage"
)

type fakeHistoryStore struct {
	entries []storage.PasswordHistoryEntry
}

func (f *fakeHistoryStore) ListPasswordHistory(_ context.Context, _ string, limit int) ([]storage.PasswordHistoryEntry, error) {
	if len(f.entries) > limit {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

func testPolicy(t *testing.T, window int) *Policy {
	t.Helper()
	hasher, err := NewHasher(testParams())
	if err != nil {
		t.Fatalf("new hasher: %v", err)
	}
	return NewPolicy(hasher, window)
}

func historyEntry(t *testing.T, policy *Policy, plaintext string) storage.PasswordHistoryEntry {
	t.Helper()
	hash, err := policy.Hash(plaintext)
	if err != nil {
		t.Fatalf("hash %q: %v", plaintext, err)
	}
	return storage.PasswordHistoryEntry{
		ID:           "hist-" + plaintext,
		UserID:       "user-1",
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestCheckReuseRejectsRecentPassword(t *testing.T) {
	policy := testPolicy(t, 3)
	store := &fakeHistoryStore{entries: []storage.PasswordHistoryEntry{
		historyEntry(t, policy, "current-pass"),
		historyEntry(t, policy, "previous-pass"),
	}}

	err := policy.CheckReuse(context.Background(), store, "user-1", "previous-pass")
	if !errors.Is(err, ErrPasswordReused) {
		t.Fatalf("expected ErrPasswordReused, got %v", err)
	}
}

func TestCheckReuseAcceptsFreshPassword(t *testing.T) {
	policy := testPolicy(t, 3)
	store := &fakeHistoryStore{entries: []storage.PasswordHistoryEntry{
		historyEntry(t, policy, "current-pass"),
	}}

	if err := policy.CheckReuse(context.Background(), store, "user-1", "brand-new-pass"); err != nil {
		t.Fatalf("CheckReuse: %v", err)
	}
}

func TestCheckReuseHonorsWindow(t *testing.T) {
	policy := testPolicy(t, 1)
	// Only the newest entry is inside the window.
	store := &fakeHistoryStore{entries: []storage.PasswordHistoryEntry{
		historyEntry(t, policy, "current-pass"),
		historyEntry(t, policy, "ancient-pass"),
	}}

	if err := policy.CheckReuse(context.Background(), store, "user-1", "ancient-pass"); err != nil {
		t.Fatalf("password outside window should be accepted, got %v", err)
	}
	if err := policy.CheckReuse(context.Background(), store, "user-1", "current-pass"); !errors.Is(err, ErrPasswordReused) {
		t.Fatalf("expected ErrPasswordReused, got %v", err)
	}
}

func TestCheckReuseDisabled(t *testing.T) {
	policy := testPolicy(t, 0)
	if err := policy.CheckReuse(context.Background(), nil, "user-1", "anything"); err != nil {
		t.Fatalf("CheckReuse with window 0: %v", err)
	}
}
