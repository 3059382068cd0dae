package mailer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ledgerlane/identity/internal/auth/storage"
)

type fakeOutbox struct {
	pending []storage.EmailOutboxMessage
	sent    []string
	retried []string
	dead    []string
}

func (f *fakeOutbox) EnqueueEmail(_ context.Context, msg storage.EmailOutboxMessage) error {
	f.pending = append(f.pending, msg)
	return nil
}

func (f *fakeOutbox) LeasePendingEmails(_ context.Context, limit int, _ time.Time) ([]storage.EmailOutboxMessage, error) {
	if len(f.pending) > limit {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}

func (f *fakeOutbox) MarkEmailSent(_ context.Context, id string, _ time.Time) error {
	f.sent = append(f.sent, id)
	return nil
}

func (f *fakeOutbox) MarkEmailRetry(_ context.Context, id string, _ time.Time, _ string) error {
	f.retried = append(f.retried, id)
	return nil
}

func (f *fakeOutbox) MarkEmailDead(_ context.Context, id string, _ string, _ time.Time) error {
	f.dead = append(f.dead, id)
	return nil
}

type fakeMailer struct {
	sent    []Message
	sendErr error
}

func (f *fakeMailer) Send(_ context.Context, msg Message) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, msg)
	return nil
}

func TestDispatchPendingSendsAndMarks(t *testing.T) {
	outbox := &fakeOutbox{pending: []storage.EmailOutboxMessage{
		{ID: "m1", Recipient: "a@example.com", Subject: "Activate your account"},
		{ID: "m2", Recipient: "b@example.com", Subject: "Reset your password"},
	}}
	sender := &fakeMailer{}
	dispatcher := NewDispatcher(outbox, sender, nil)

	if err := dispatcher.DispatchPending(context.Background()); err != nil {
		t.Fatalf("DispatchPending: %v", err)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("sent = %d, want 2", len(sender.sent))
	}
	if len(outbox.sent) != 2 || outbox.sent[0] != "m1" || outbox.sent[1] != "m2" {
		t.Fatalf("marked sent = %v", outbox.sent)
	}
}

func TestDispatchPendingRetriesOnFailure(t *testing.T) {
	outbox := &fakeOutbox{pending: []storage.EmailOutboxMessage{
		{ID: "m1", Recipient: "a@example.com", AttemptCount: 0},
	}}
	sender := &fakeMailer{sendErr: errors.New("smtp down")}
	dispatcher := NewDispatcher(outbox, sender, nil)

	if err := dispatcher.DispatchPending(context.Background()); err != nil {
		t.Fatalf("DispatchPending: %v", err)
	}
	if len(outbox.retried) != 1 || outbox.retried[0] != "m1" {
		t.Fatalf("retried = %v", outbox.retried)
	}
	if len(outbox.dead) != 0 {
		t.Fatalf("dead = %v, want none", outbox.dead)
	}
}

func TestDispatchPendingAbandonsAfterMaxAttempts(t *testing.T) {
	outbox := &fakeOutbox{pending: []storage.EmailOutboxMessage{
		{ID: "m1", Recipient: "a@example.com", AttemptCount: defaultMaxAttempts - 1},
	}}
	sender := &fakeMailer{sendErr: errors.New("smtp down")}
	dispatcher := NewDispatcher(outbox, sender, nil)

	if err := dispatcher.DispatchPending(context.Background()); err != nil {
		t.Fatalf("DispatchPending: %v", err)
	}
	if len(outbox.dead) != 1 || outbox.dead[0] != "m1" {
		t.Fatalf("dead = %v", outbox.dead)
	}
	if len(outbox.retried) != 0 {
		t.Fatalf("retried = %v, want none", outbox.retried)
	}
}
