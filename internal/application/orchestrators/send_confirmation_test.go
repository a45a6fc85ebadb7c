package orchestrators

import (
	"context"
	"errors"
	"strings"
	"testing"

	emailAdapter "kaitori/internal/adapters/email"
	"kaitori/internal/domain/confirmation"
	"kaitori/internal/domain/reservation"
)

// mockSender records requests for testing.
type mockSender struct {
	sent []emailAdapter.SendRequest
	err  error
}

// Send implements emailAdapter.Sender.
// PRE: none
// POST: req is recorded unless err is set
func (m *mockSender) Send(_ context.Context, req emailAdapter.SendRequest) (emailAdapter.SendResult, error) {
	if m.err != nil {
		return emailAdapter.SendResult{}, m.err
	}
	m.sent = append(m.sent, req)
	return emailAdapter.SendResult{MessageID: "msg-1", SentAt: fixedTime}, nil
}

// TestExecuteSendConfirmation renders markdown to HTML and addresses the customer.
func TestExecuteSendConfirmation(t *testing.T) {
	sender := &mockSender{}
	r := reservation.NewReservation(validCandidate(), fixedTime)
	r.ID = 42
	r.CustomerNotes = "<script>alert(1)</script>"

	res, err := ExecuteSendConfirmation(context.Background(), r, SendConfirmationDeps{
		EmailSender:  sender,
		FromAddress:  "予約 <noreply@example.jp>",
		NewReference: func() string { return "KT-TEST" },
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.MessageID != "msg-1" {
		t.Errorf("MessageID = %q", res.MessageID)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.sent))
	}
	req := sender.sent[0]
	if len(req.To) != 1 || req.To[0] != "taro@example.jp" {
		t.Errorf("To = %v", req.To)
	}
	if req.Subject != confirmation.Subject {
		t.Errorf("Subject = %q", req.Subject)
	}
	for _, want := range []string{"<h2>", "KT-TEST", "<strong>予約番号</strong>: 42", "10:00〜12:00"} {
		if !strings.Contains(req.HTML, want) {
			t.Errorf("HTML missing %q:\n%s", want, req.HTML)
		}
	}
	if strings.Contains(req.HTML, "<script>") {
		t.Errorf("customer text was not escaped:\n%s", req.HTML)
	}
}

// TestConfirmationNotifier propagates sender failures.
func TestConfirmationNotifier(t *testing.T) {
	boom := errors.New("provider down")
	notify := ConfirmationNotifier(SendConfirmationDeps{EmailSender: &mockSender{err: boom}})
	r := reservation.NewReservation(validCandidate(), fixedTime)
	if err := notify(context.Background(), r); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}
