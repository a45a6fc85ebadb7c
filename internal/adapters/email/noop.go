package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// NoopSender logs confirmations without delivering them.
type NoopSender struct {
	now func() time.Time
}

// NewNoopSender creates a new NoopSender.
func NewNoopSender() *NoopSender {
	return &NoopSender{now: time.Now}
}

// Send logs the message but does not deliver it.
// PRE: req has at least one recipient
// POST: Returns a noop result without actual delivery
func (s *NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	id := "noop-" + uuid.NewString()
	slog.Info("noop_confirmation_send",
		"message_id", id,
		"to", req.To,
		"subject", req.Subject,
		"html_bytes", len(req.HTML),
	)
	return SendResult{MessageID: id, SentAt: s.now()}, nil
}
