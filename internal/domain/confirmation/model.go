package confirmation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"kaitori/internal/domain/reservation"
)

// Subject is the confirmation notice subject line.
const Subject = "【出張買取】ご予約を受け付けました"

// slotLabels maps slot start times to the customer-facing window.
var slotLabels = map[string]string{
	"10:00": "10:00〜12:00",
	"12:00": "12:00〜14:00",
	"14:00": "14:00〜16:00",
	"16:00": "16:00〜18:00",
}

// Confirmation is the notice synthesized when a reservation is admitted.
type Confirmation struct {
	Reference string
	To        string
	Subject   string
	Markdown  string
}

// NewReference returns a short customer-quotable booking reference.
func NewReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "KT-" + strings.ToUpper(id[:10])
}

// SlotLabel returns the display window for a slot start time.
func SlotLabel(t string) string {
	if l, ok := slotLabels[t]; ok {
		return l
	}
	return t
}

// New builds the confirmation for an admitted reservation.
// PRE: r has been persisted and carries its ID
// POST: Markdown lists the booking details with user text escaped
func New(r reservation.Reservation, reference string) Confirmation {
	var b strings.Builder
	fmt.Fprintf(&b, "%s 様\n\n", escape(r.CustomerName))
	b.WriteString("出張買取のご予約を受け付けました。担当者より改めてご連絡いたします。\n\n")
	fmt.Fprintf(&b, "## ご予約内容 (受付番号 %s)\n\n", reference)
	fmt.Fprintf(&b, "- **予約番号**: %d\n", r.ID)
	fmt.Fprintf(&b, "- **訪問日**: %s\n", r.ReservationDate)
	fmt.Fprintf(&b, "- **時間帯**: %s\n", SlotLabel(r.ReservationTime))
	fmt.Fprintf(&b, "- **ご住所**: %s %s\n", escape(r.CustomerPostalCode), escape(r.CustomerAddress))
	fmt.Fprintf(&b, "- **品目**: %s\n", escape(r.ItemCategory))
	fmt.Fprintf(&b, "- **数量の目安**: %s\n", escape(r.EstimatedQuantity))
	fmt.Fprintf(&b, "- **駐車場**: %s / **エレベーター**: %s\n", r.HasParking, r.HasElevator)
	if r.ItemDescription != "" {
		fmt.Fprintf(&b, "\n### お品物の詳細\n\n%s\n", escape(r.ItemDescription))
	}
	if r.CustomerNotes != "" {
		fmt.Fprintf(&b, "\n### ご要望\n\n%s\n", escape(r.CustomerNotes))
	}
	return Confirmation{
		Reference: reference,
		To:        r.CustomerEmail,
		Subject:   Subject,
		Markdown:  b.String(),
	}
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`, "#", `\#`, "<", "&lt;", ">", "&gt;",
)

// escape neutralises markdown and HTML syntax in customer-supplied text.
func escape(s string) string {
	return markdownEscaper.Replace(s)
}
