package email

import (
	"context"
	"time"
)

// SendRequest contains the data needed to hand a message to a delivery provider.
type SendRequest struct {
	To      []string // Recipient addresses
	From    string   // Sender address (e.g. "出張買取予約 <noreply@example.jp>")
	Subject string
	HTML    string // HTML body
	Text    string // Plain-text alternative
}

// SendResult contains the response from the provider.
type SendResult struct {
	MessageID string    // Provider's message ID for tracking
	SentAt    time.Time // When the send was accepted
}

// Sender is the interface for handing messages to a delivery provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
