package mailer

import (
	"context"
	"time"

	"github.com/ledgerlane/identity/internal/auth/storage"
	"github.com/ledgerlane/identity/internal/platform/logging"
)

const (
	defaultPollInterval = 15 * time.Second
	defaultBatchSize    = 25
	defaultMaxAttempts  = 5
	retryBackoffBase    = time.Minute
)

// Dispatcher drains the email outbox: it leases pending messages, hands them
// to the Mailer, and records the outcome. Retries back off linearly per
// attempt; messages that exhaust their attempts are marked dead.
type Dispatcher struct {
	store        storage.EmailOutboxStore
	mailer       Mailer
	logger       logging.Logger
	clock        func() time.Time
	pollInterval time.Duration
	batchSize    int
	maxAttempts  int
}

// NewDispatcher builds a Dispatcher with default timing.
func NewDispatcher(store storage.EmailOutboxStore, mailer Mailer, logger logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Dispatcher{
		store:        store,
		mailer:       mailer,
		logger:       logger,
		clock:        time.Now,
		pollInterval: defaultPollInterval,
		batchSize:    defaultBatchSize,
		maxAttempts:  defaultMaxAttempts,
	}
}

// WithClock overrides the time source; for tests.
func (d *Dispatcher) WithClock(clock func() time.Time) *Dispatcher {
	d.clock = clock
	return d
}

// Run polls until the context is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := d.DispatchPending(ctx); err != nil {
				d.logger.Warn(ctx, "email dispatch pass failed", "error", err)
			}
		}
	}
}

// DispatchPending processes one batch of due messages.
func (d *Dispatcher) DispatchPending(ctx context.Context) error {
	now := d.clock().UTC()
	pending, err := d.store.LeasePendingEmails(ctx, d.batchSize, now)
	if err != nil {
		return err
	}

	for _, msg := range pending {
		sendErr := d.mailer.Send(ctx, Message{
			Recipient: msg.Recipient,
			Subject:   msg.Subject,
			Body:      msg.Body,
		})
		if sendErr == nil {
			if err := d.store.MarkEmailSent(ctx, msg.ID, d.clock().UTC()); err != nil {
				d.logger.Warn(ctx, "mark email sent failed", "email_id", msg.ID, "error", err)
			}
			continue
		}

		attempts := msg.AttemptCount + 1
		if attempts >= d.maxAttempts {
			if err := d.store.MarkEmailDead(ctx, msg.ID, sendErr.Error(), d.clock().UTC()); err != nil {
				d.logger.Warn(ctx, "mark email dead failed", "email_id", msg.ID, "error", err)
			}
			d.logger.Error(ctx, "email delivery abandoned", "email_id", msg.ID, "recipient", msg.Recipient, "error", sendErr)
			continue
		}

		nextAttempt := d.clock().UTC().Add(time.Duration(attempts) * retryBackoffBase)
		if err := d.store.MarkEmailRetry(ctx, msg.ID, nextAttempt, sendErr.Error()); err != nil {
			d.logger.Warn(ctx, "mark email retry failed", "email_id", msg.ID, "error", err)
		}
	}
	return nil
}
