// Package mailer delivers queued transactional email.
package mailer

import (
	"context"

	"github.com/ledgerlane/identity/internal/platform/logging"
)

// Message is one email to deliver.
type Message struct {
	Recipient string
	Subject   string
	Body      string
}

// Mailer sends a single message. Implementations are fire-and-forget from
// the caller's point of view; retry policy lives in the Dispatcher.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer writes messages to the log instead of delivering them. Default
// when no delivery backend is configured.
type LogMailer struct {
	logger logging.Logger
}

// NewLogMailer returns a LogMailer.
func NewLogMailer(logger logging.Logger) *LogMailer {
	if logger == nil {
		logger = logging.Nop()
	}
	return &LogMailer{logger: logger}
}

// Send logs the message.
func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.logger.Info(ctx, "outbound email",
		"recipient", msg.Recipient,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}
