package orchestrators

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	emailAdapter "kaitori/internal/adapters/email"
	"kaitori/internal/domain/confirmation"
	"kaitori/internal/domain/reservation"
)

// mdRenderer escapes raw HTML in markdown input (WithUnsafe is not set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// SendConfirmationDeps holds dependencies for SendConfirmation.
type SendConfirmationDeps struct {
	EmailSender  emailAdapter.Sender
	FromAddress  string
	NewReference func() string
}

// ExecuteSendConfirmation renders and hands off the booking confirmation.
// PRE: r has been persisted
// POST: The sender has accepted one message addressed to the customer
func ExecuteSendConfirmation(ctx context.Context, r reservation.Reservation, deps SendConfirmationDeps) (emailAdapter.SendResult, error) {
	newRef := deps.NewReference
	if newRef == nil {
		newRef = confirmation.NewReference
	}
	c := confirmation.New(r, newRef())

	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(c.Markdown), &buf); err != nil {
		return emailAdapter.SendResult{}, fmt.Errorf("render confirmation: %w", err)
	}

	res, err := deps.EmailSender.Send(ctx, emailAdapter.SendRequest{
		To:      []string{c.To},
		From:    deps.FromAddress,
		Subject: c.Subject,
		HTML:    buf.String(),
		Text:    c.Markdown,
	})
	if err != nil {
		return emailAdapter.SendResult{}, fmt.Errorf("send confirmation: %w", err)
	}
	slog.Info("confirmation_sent", "id", r.ID, "reference", c.Reference, "message_id", res.MessageID)
	return res, nil
}

// ConfirmationNotifier adapts SendConfirmation to the create orchestrator's Notify hook.
func ConfirmationNotifier(deps SendConfirmationDeps) func(ctx context.Context, r reservation.Reservation) error {
	return func(ctx context.Context, r reservation.Reservation) error {
		_, err := ExecuteSendConfirmation(ctx, r, deps)
		return err
	}
}
