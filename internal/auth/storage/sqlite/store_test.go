package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ledgerlane/identity/internal/auth/audit"
	"github.com/ledgerlane/identity/internal/auth/storage"
	"github.com/ledgerlane/identity/internal/auth/user"
	apperrors "github.com/ledgerlane/identity/internal/platform/errors"
)

func newTestAuditEntry(userID string, at time.Time, success bool) audit.Entry {
	return audit.Entry{
		ID:          "audit-" + at.Format("150405"),
		UserID:      userID,
		Method:      audit.MethodPassword,
		Success:     success,
		IPAddress:   "203.0.113.9",
		UserAgent:   "cli/1.0",
		AttemptedAt: at,
		Metadata:    map[string]string{"seq": at.Format(time.RFC3339)},
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "identity.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func seedUser(t *testing.T, store *Store, u user.User) user.User {
	t.Helper()
	if u.ID == "" {
		u.ID = "user-1"
	}
	if u.Username == "" {
		u.Username = "alice"
	}
	if u.Email == "" {
		u.Email = "alice@example.com"
	}
	if u.Role == "" {
		u.Role = user.RoleUser
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}
	if err := store.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestStoreDBNilSafe(t *testing.T) {
	var store *Store
	if store.DB() != nil {
		t.Fatal("expected nil DB for nil store")
	}
}

func TestCreateGetUserRoundTrip(t *testing.T) {
	store := openTempStore(t)
	created := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	input := user.User{
		ID:           "user-1",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$argon2id$...",
		Role:         user.RoleUser,
		IsActive:     true,
		CreatedAt:    created,
		UpdatedAt:    created,
	}

	if err := store.CreateUser(context.Background(), input); err != nil {
		t.Fatalf("create user: %v", err)
	}

	got, err := store.GetUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Username != "alice" || got.Email != "alice@example.com" || got.PasswordHash != input.PasswordHash {
		t.Fatalf("unexpected user: %+v", got)
	}
	if !got.IsActive || got.IsVerified || got.HasPasskey {
		t.Fatalf("unexpected flags: %+v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}

	byUsername, err := store.GetUserByUsername(context.Background(), "alice")
	if err != nil || byUsername.ID != "user-1" {
		t.Fatalf("get by username = (%+v, %v)", byUsername, err)
	}
	byEmail, err := store.GetUserByEmail(context.Background(), "alice@example.com")
	if err != nil || byEmail.ID != "user-1" {
		t.Fatalf("get by email = (%+v, %v)", byEmail, err)
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	store := openTempStore(t)
	seedUser(t, store, user.User{})

	err := store.CreateUser(context.Background(), user.User{
		ID:        "user-2",
		Username:  "alice",
		Email:     "other@example.com",
		Role:      user.RoleUser,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	if apperrors.GetCode(err) != apperrors.CodeDuplicateIdentity {
		t.Fatalf("expected duplicate identity, got %v", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	store := openTempStore(t)
	if _, err := store.GetUser(context.Background(), "absent"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdatePasswordAppendsHistory(t *testing.T) {
	store := openTempStore(t)
	seeded := seedUser(t, store, user.User{PasswordHash: "hash-0"})

	for i := 1; i <= 3; i++ {
		entry := storage.PasswordHistoryEntry{
			ID:           "hist-" + string(rune('0'+i)),
			UserID:       seeded.ID,
			PasswordHash: "hash-" + string(rune('0'+i)),
			CreatedAt:    seeded.CreatedAt.Add(time.Duration(i) * time.Hour),
		}
		if err := store.UpdatePassword(context.Background(), seeded.ID, entry); err != nil {
			t.Fatalf("update password %d: %v", i, err)
		}
	}

	got, err := store.GetUser(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.PasswordHash != "hash-3" {
		t.Fatalf("PasswordHash = %q, want hash-3", got.PasswordHash)
	}

	history, err := store.ListPasswordHistory(context.Background(), seeded.ID, 2)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history len = %d, want 2", len(history))
	}
	if history[0].PasswordHash != "hash-3" || history[1].PasswordHash != "hash-2" {
		t.Fatalf("history order: %q then %q", history[0].PasswordHash, history[1].PasswordHash)
	}
}

func TestUpdatePasswordUnknownUser(t *testing.T) {
	store := openTempStore(t)
	err := store.UpdatePassword(context.Background(), "absent", storage.PasswordHistoryEntry{
		ID:           "hist-1",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPutPasskeyCredentialSetsHasPasskey(t *testing.T) {
	store := openTempStore(t)
	seeded := seedUser(t, store, user.User{PasswordHash: "hash-0"})

	credential := storage.PasskeyCredential{
		ID:           "pk-1",
		UserID:       seeded.ID,
		CredentialID: []byte{0x01, 0x02},
		PublicKey:    []byte{0x03, 0x04},
		Transports:   []string{"internal"},
		DeviceName:   "Laptop",
		CreatedAt:    time.Now().UTC(),
		IsActive:     true,
	}
	if err := store.PutPasskeyCredential(context.Background(), credential); err != nil {
		t.Fatalf("put passkey: %v", err)
	}

	got, err := store.GetUser(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if !got.HasPasskey {
		t.Fatal("expected has_passkey to be set")
	}

	stored, err := store.GetPasskeyCredential(context.Background(), []byte{0x01, 0x02})
	if err != nil {
		t.Fatalf("get passkey: %v", err)
	}
	if stored.DeviceName != "Laptop" || len(stored.Transports) != 1 || stored.Transports[0] != "internal" {
		t.Fatalf("unexpected credential: %+v", stored)
	}
}

func TestPutPasskeyCredentialDuplicate(t *testing.T) {
	store := openTempStore(t)
	seeded := seedUser(t, store, user.User{PasswordHash: "hash-0"})

	credential := storage.PasskeyCredential{
		ID:           "pk-1",
		UserID:       seeded.ID,
		CredentialID: []byte{0x01},
		PublicKey:    []byte{0x02},
		CreatedAt:    time.Now().UTC(),
		IsActive:     true,
	}
	if err := store.PutPasskeyCredential(context.Background(), credential); err != nil {
		t.Fatalf("put passkey: %v", err)
	}
	credential.ID = "pk-2"
	err := store.PutPasskeyCredential(context.Background(), credential)
	if apperrors.GetCode(err) != apperrors.CodeDuplicateIdentity {
		t.Fatalf("expected duplicate identity, got %v", err)
	}
}

func TestUpdatePasskeyCounterCompareAndSwap(t *testing.T) {
	store := openTempStore(t)
	seeded := seedUser(t, store, user.User{PasswordHash: "hash-0"})

	credential := storage.PasskeyCredential{
		ID:           "pk-1",
		UserID:       seeded.ID,
		CredentialID: []byte{0x01},
		PublicKey:    []byte{0x02},
		SignCount:    5,
		CreatedAt:    time.Now().UTC(),
		IsActive:     true,
	}
	if err := store.PutPasskeyCredential(context.Background(), credential); err != nil {
		t.Fatalf("put passkey: %v", err)
	}

	usedAt := time.Now().UTC()
	if err := store.UpdatePasskeyCounter(context.Background(), []byte{0x01}, 5, 6, usedAt); err != nil {
		t.Fatalf("update counter: %v", err)
	}

	// A second swap from the stale counter must lose.
	if err := store.UpdatePasskeyCounter(context.Background(), []byte{0x01}, 5, 7, usedAt); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for stale counter, got %v", err)
	}

	stored, err := store.GetPasskeyCredential(context.Background(), []byte{0x01})
	if err != nil {
		t.Fatalf("get passkey: %v", err)
	}
	if stored.SignCount != 6 {
		t.Fatalf("SignCount = %d, want 6", stored.SignCount)
	}
	if stored.LastUsedAt == nil {
		t.Fatal("expected last_used_at to be stamped")
	}
}

func TestDeactivatePasskeyRecomputesHasPasskey(t *testing.T) {
	store := openTempStore(t)
	seeded := seedUser(t, store, user.User{PasswordHash: "hash-0"})

	credential := storage.PasskeyCredential{
		ID:           "pk-1",
		UserID:       seeded.ID,
		CredentialID: []byte{0x01},
		PublicKey:    []byte{0x02},
		CreatedAt:    time.Now().UTC(),
		IsActive:     true,
	}
	if err := store.PutPasskeyCredential(context.Background(), credential); err != nil {
		t.Fatalf("put passkey: %v", err)
	}

	if err := store.DeactivatePasskeyCredential(context.Background(), seeded.ID, []byte{0x01}); err != nil {
		t.Fatalf("deactivate passkey: %v", err)
	}

	got, err := store.GetUser(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.HasPasskey {
		t.Fatal("expected has_passkey to be cleared")
	}
}

func TestDeactivateLastMethodFails(t *testing.T) {
	store := openTempStore(t)
	// Passkey-only account.
	seeded := seedUser(t, store, user.User{})

	credential := storage.PasskeyCredential{
		ID:           "pk-1",
		UserID:       seeded.ID,
		CredentialID: []byte{0x01},
		PublicKey:    []byte{0x02},
		CreatedAt:    time.Now().UTC(),
		IsActive:     true,
	}
	if err := store.PutPasskeyCredential(context.Background(), credential); err != nil {
		t.Fatalf("put passkey: %v", err)
	}

	err := store.DeactivatePasskeyCredential(context.Background(), seeded.ID, []byte{0x01})
	if apperrors.GetCode(err) != apperrors.CodeLastAuthenticationMethod {
		t.Fatalf("expected last authentication method error, got %v", err)
	}

	stored, err := store.GetPasskeyCredential(context.Background(), []byte{0x01})
	if err != nil {
		t.Fatalf("get passkey: %v", err)
	}
	if !stored.IsActive {
		t.Fatal("credential should remain active")
	}
}

func TestConsumeCeremonyDeletesRow(t *testing.T) {
	store := openTempStore(t)
	now := time.Now().UTC()
	ceremony := storage.Ceremony{
		ID:          "cer-1",
		Kind:        "registration",
		Subject:     "user-1",
		SessionJSON: `{"challenge":"abc"}`,
		CreatedAt:   now,
		ExpiresAt:   now.Add(5 * time.Minute),
	}
	if err := store.PutCeremony(context.Background(), ceremony); err != nil {
		t.Fatalf("put ceremony: %v", err)
	}

	got, err := store.ConsumeCeremony(context.Background(), "cer-1")
	if err != nil {
		t.Fatalf("consume ceremony: %v", err)
	}
	if got.SessionJSON != ceremony.SessionJSON || got.Kind != "registration" {
		t.Fatalf("unexpected ceremony: %+v", got)
	}

	if _, err := store.ConsumeCeremony(context.Background(), "cer-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on replay, got %v", err)
	}
}

func TestDeleteExpiredCeremonies(t *testing.T) {
	store := openTempStore(t)
	now := time.Now().UTC()
	stale := storage.Ceremony{
		ID:          "cer-old",
		Kind:        "login",
		Subject:     "user-1",
		SessionJSON: `{}`,
		CreatedAt:   now.Add(-time.Hour),
		ExpiresAt:   now.Add(-55 * time.Minute),
	}
	fresh := stale
	fresh.ID = "cer-new"
	fresh.ExpiresAt = now.Add(5 * time.Minute)
	if err := store.PutCeremony(context.Background(), stale); err != nil {
		t.Fatalf("put stale ceremony: %v", err)
	}
	if err := store.PutCeremony(context.Background(), fresh); err != nil {
		t.Fatalf("put fresh ceremony: %v", err)
	}

	if err := store.DeleteExpiredCeremonies(context.Background(), now); err != nil {
		t.Fatalf("delete expired: %v", err)
	}

	if _, err := store.ConsumeCeremony(context.Background(), "cer-old"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected stale ceremony gone, got %v", err)
	}
	if _, err := store.ConsumeCeremony(context.Background(), "cer-new"); err != nil {
		t.Fatalf("fresh ceremony should survive: %v", err)
	}
}

func TestConsumeActivationToken(t *testing.T) {
	store := openTempStore(t)
	seeded := seedUser(t, store, user.User{PasswordHash: "hash-0"})
	now := time.Now().UTC()

	token := storage.SingleUseToken{
		ID:        "tok-1",
		UserID:    seeded.ID,
		Token:     "raw-activation",
		TokenType: storage.TokenTypeActivation,
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
	}
	email := storage.EmailOutboxMessage{
		ID:        "mail-1",
		Recipient: seeded.Email,
		Subject:   "Activate your account",
		Body:      "link",
	}
	if err := store.PutSingleUseTokenWithEmail(context.Background(), token, email); err != nil {
		t.Fatalf("put token: %v", err)
	}

	pending, err := store.LeasePendingEmails(context.Background(), 10, now.Add(time.Second))
	if err != nil || len(pending) != 1 {
		t.Fatalf("pending emails = (%v, %v), want one message", pending, err)
	}

	consumed, err := store.ConsumeActivationToken(context.Background(), "raw-activation", now)
	if err != nil {
		t.Fatalf("consume activation: %v", err)
	}
	if consumed.UserID != seeded.ID {
		t.Fatalf("consumed token user = %q", consumed.UserID)
	}

	got, err := store.GetUser(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if !got.IsVerified || !got.IsActive {
		t.Fatalf("expected verified active user, got %+v", got)
	}

	if _, err := store.ConsumeActivationToken(context.Background(), "raw-activation", now); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on replay, got %v", err)
	}
}

func TestConsumeExpiredTokenDeletesWithoutEffect(t *testing.T) {
	store := openTempStore(t)
	seeded := seedUser(t, store, user.User{PasswordHash: "hash-0"})
	now := time.Now().UTC()

	token := storage.SingleUseToken{
		ID:        "tok-1",
		UserID:    seeded.ID,
		Token:     "raw-stale",
		TokenType: storage.TokenTypeActivation,
		ExpiresAt: now.Add(-time.Minute),
		CreatedAt: now.Add(-time.Hour),
	}
	email := storage.EmailOutboxMessage{ID: "mail-1", Recipient: seeded.Email}
	if err := store.PutSingleUseTokenWithEmail(context.Background(), token, email); err != nil {
		t.Fatalf("put token: %v", err)
	}

	_, err := store.ConsumeActivationToken(context.Background(), "raw-stale", now)
	if apperrors.GetCode(err) != apperrors.CodeSingleUseTokenExpired {
		t.Fatalf("expected expired token error, got %v", err)
	}

	got, err := store.GetUser(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.IsVerified {
		t.Fatal("expired token must not activate the user")
	}

	// The stale row is gone; a retry reports not found.
	if _, err := store.ConsumeActivationToken(context.Background(), "raw-stale", now); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after expiry delete, got %v", err)
	}
}

func TestConsumeResetTokenWithPassword(t *testing.T) {
	store := openTempStore(t)
	seeded := seedUser(t, store, user.User{PasswordHash: "hash-0"})
	now := time.Now().UTC()

	token := storage.SingleUseToken{
		ID:        "tok-1",
		UserID:    seeded.ID,
		Token:     "raw-reset",
		TokenType: storage.TokenTypePasswordReset,
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
	}
	email := storage.EmailOutboxMessage{ID: "mail-1", Recipient: seeded.Email}
	if err := store.PutSingleUseTokenWithEmail(context.Background(), token, email); err != nil {
		t.Fatalf("put token: %v", err)
	}

	entry := storage.PasswordHistoryEntry{
		ID:           "hist-1",
		UserID:       seeded.ID,
		PasswordHash: "hash-1",
		CreatedAt:    now,
	}
	consumed, err := store.ConsumeResetTokenWithPassword(context.Background(), "raw-reset", now, entry)
	if err != nil {
		t.Fatalf("consume reset: %v", err)
	}
	if consumed.UserID != seeded.ID {
		t.Fatalf("consumed token user = %q", consumed.UserID)
	}

	got, err := store.GetUser(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.PasswordHash != "hash-1" {
		t.Fatalf("PasswordHash = %q, want hash-1", got.PasswordHash)
	}
	history, err := store.ListPasswordHistory(context.Background(), seeded.ID, 5)
	if err != nil || len(history) != 1 {
		t.Fatalf("history = (%v, %v), want one entry", history, err)
	}
}

func TestAuditRoundTrip(t *testing.T) {
	store := openTempStore(t)
	seeded := seedUser(t, store, user.User{PasswordHash: "hash-0"})
	recorder := newTestAuditEntry

	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		entry := recorder(seeded.ID, base.Add(time.Duration(i)*time.Minute), i%2 == 0)
		if err := store.AppendAuditEntry(context.Background(), entry); err != nil {
			t.Fatalf("append audit %d: %v", i, err)
		}
	}

	entries, err := store.ListAuditEntries(context.Background(), seeded.ID, 2)
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if !entries[0].AttemptedAt.After(entries[1].AttemptedAt) {
		t.Fatal("entries not newest-first")
	}
	if entries[0].Metadata["seq"] == "" {
		t.Fatalf("metadata lost: %+v", entries[0])
	}
}

func TestGetAuthStatistics(t *testing.T) {
	store := openTempStore(t)
	seeded := seedUser(t, store, user.User{PasswordHash: "hash-0"})
	if err := store.PutPasskeyCredential(context.Background(), storage.PasskeyCredential{
		ID:           "pk-1",
		UserID:       seeded.ID,
		CredentialID: []byte{0x01},
		PublicKey:    []byte{0x02},
		CreatedAt:    time.Now().UTC(),
		IsActive:     true,
	}); err != nil {
		t.Fatalf("put passkey: %v", err)
	}

	stats, err := store.GetAuthStatistics(context.Background(), nil)
	if err != nil {
		t.Fatalf("get statistics: %v", err)
	}
	if stats.UserCount != 1 || stats.ActiveCredentialCount != 1 {
		t.Fatalf("unexpected statistics: %+v", stats)
	}

	future := time.Now().Add(time.Hour).UTC()
	stats, err = store.GetAuthStatistics(context.Background(), &future)
	if err != nil {
		t.Fatalf("get statistics since: %v", err)
	}
	if stats.UserCount != 0 {
		t.Fatalf("UserCount since future = %d, want 0", stats.UserCount)
	}
}

func TestCreateUserWithPasswordSeedsHistory(t *testing.T) {
	store := openTempStore(t)
	createdAt := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	err := store.CreateUserWithPassword(context.Background(), user.User{
		ID:           "user-1",
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash-0",
		Role:         user.RoleUser,
		IsActive:     true,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}, storage.PasswordHistoryEntry{
		ID:           "hist-1",
		UserID:       "user-1",
		PasswordHash: "hash-0",
		CreatedAt:    createdAt,
	})
	if err != nil {
		t.Fatalf("create user with password: %v", err)
	}

	got, err := store.GetUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.PasswordHash != "hash-0" {
		t.Fatalf("PasswordHash = %q, want hash-0", got.PasswordHash)
	}

	history, err := store.ListPasswordHistory(context.Background(), "user-1", 10)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(history) != 1 || history[0].PasswordHash != "hash-0" {
		t.Fatalf("history = %+v, want one seeded entry", history)
	}
}

func TestCreateUserWithPasswordDuplicateLeavesNoHistory(t *testing.T) {
	store := openTempStore(t)
	seedUser(t, store, user.User{PasswordHash: "hash-0"})
	createdAt := time.Now().UTC()

	err := store.CreateUserWithPassword(context.Background(), user.User{
		ID:           "user-2",
		Username:     "alice",
		Email:        "other@example.com",
		PasswordHash: "hash-1",
		Role:         user.RoleUser,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}, storage.PasswordHistoryEntry{
		ID:           "hist-2",
		UserID:       "user-2",
		PasswordHash: "hash-1",
		CreatedAt:    createdAt,
	})
	if apperrors.GetCode(err) != apperrors.CodeDuplicateIdentity {
		t.Fatalf("expected duplicate identity, got %v", err)
	}

	history, err := store.ListPasswordHistory(context.Background(), "user-2", 10)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected no history for rolled-back user, got %+v", history)
	}
}

func TestConsumeActivationTokenConcurrentRedeemers(t *testing.T) {
	store := openTempStore(t)
	seeded := seedUser(t, store, user.User{PasswordHash: "hash-0"})
	now := time.Now().UTC()

	token := storage.SingleUseToken{
		ID:        "tok-1",
		UserID:    seeded.ID,
		Token:     "raw-activation",
		TokenType: storage.TokenTypeActivation,
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
	}
	email := storage.EmailOutboxMessage{ID: "mail-1", Recipient: seeded.Email, Subject: "s", Body: "b"}
	if err := store.PutSingleUseTokenWithEmail(context.Background(), token, email); err != nil {
		t.Fatalf("put token: %v", err)
	}

	const redeemers = 8
	results := make(chan error, redeemers)
	var start sync.WaitGroup
	start.Add(1)
	var done sync.WaitGroup
	for i := 0; i < redeemers; i++ {
		done.Add(1)
		go func() {
			defer done.Done()
			start.Wait()
			_, err := store.ConsumeActivationToken(context.Background(), "raw-activation", now)
			results <- err
		}()
	}
	start.Done()
	done.Wait()
	close(results)

	var wins, misses int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, storage.ErrNotFound):
			misses++
		default:
			t.Fatalf("unexpected redemption error: %v", err)
		}
	}
	if wins != 1 || misses != redeemers-1 {
		t.Fatalf("wins = %d, misses = %d, want exactly one winner", wins, misses)
	}

	got, err := store.GetUser(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if !got.IsVerified {
		t.Fatal("expected the winning redemption to verify the account")
	}
}

func TestUpdatePasskeyCounterConcurrentSwaps(t *testing.T) {
	store := openTempStore(t)
	seeded := seedUser(t, store, user.User{PasswordHash: "hash-0"})

	credential := storage.PasskeyCredential{
		ID:           "pk-1",
		UserID:       seeded.ID,
		CredentialID: []byte{0x01},
		PublicKey:    []byte{0x02},
		SignCount:    5,
		CreatedAt:    time.Now().UTC(),
		IsActive:     true,
	}
	if err := store.PutPasskeyCredential(context.Background(), credential); err != nil {
		t.Fatalf("put passkey: %v", err)
	}

	const swappers = 8
	results := make(chan error, swappers)
	var start sync.WaitGroup
	start.Add(1)
	var done sync.WaitGroup
	usedAt := time.Now().UTC()
	for i := 0; i < swappers; i++ {
		done.Add(1)
		go func() {
			defer done.Done()
			start.Wait()
			results <- store.UpdatePasskeyCounter(context.Background(), []byte{0x01}, 5, 6, usedAt)
		}()
	}
	start.Done()
	done.Wait()
	close(results)

	var wins, misses int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, storage.ErrNotFound):
			misses++
		default:
			t.Fatalf("unexpected swap error: %v", err)
		}
	}
	if wins != 1 || misses != swappers-1 {
		t.Fatalf("wins = %d, misses = %d, want exactly one winner", wins, misses)
	}

	stored, err := store.GetPasskeyCredential(context.Background(), []byte{0x01})
	if err != nil {
		t.Fatalf("get passkey: %v", err)
	}
	if stored.SignCount != 6 {
		t.Fatalf("SignCount = %d, want 6", stored.SignCount)
	}
}

func TestGetAuthStatisticsSkipsExpiredTokens(t *testing.T) {
	store := openTempStore(t)
	seeded := seedUser(t, store, user.User{PasswordHash: "hash-0"})
	now := time.Now().UTC()

	fresh := storage.SingleUseToken{
		ID:        "tok-fresh",
		UserID:    seeded.ID,
		Token:     "raw-fresh",
		TokenType: storage.TokenTypeActivation,
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
	}
	stale := storage.SingleUseToken{
		ID:        "tok-stale",
		UserID:    seeded.ID,
		Token:     "raw-stale",
		TokenType: storage.TokenTypePasswordReset,
		ExpiresAt: now.Add(-time.Hour),
		CreatedAt: now.Add(-2 * time.Hour),
	}
	for i, tok := range []storage.SingleUseToken{fresh, stale} {
		email := storage.EmailOutboxMessage{ID: "mail-" + string(rune('1'+i)), Recipient: seeded.Email, Subject: "s", Body: "b"}
		if err := store.PutSingleUseTokenWithEmail(context.Background(), tok, email); err != nil {
			t.Fatalf("put token %q: %v", tok.ID, err)
		}
	}

	stats, err := store.GetAuthStatistics(context.Background(), nil)
	if err != nil {
		t.Fatalf("get statistics: %v", err)
	}
	if stats.PendingSingleUseTokens != 1 {
		t.Fatalf("PendingSingleUseTokens = %d, want 1", stats.PendingSingleUseTokens)
	}
}
