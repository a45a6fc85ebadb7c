package blackout

import (
	"errors"
	"strings"

	"kaitori/internal/domain/calendar"
)

// Domain errors
var (
	ErrEmptyDate   = errors.New("日付が指定されていません")
	ErrInvalidDate = errors.New("日付の形式が正しくありません")
)

// Blackout is a date on which no visits are accepted.
// The reason is informational; presence of the date alone blocks bookings.
type Blackout struct {
	Date   string `db:"date" json:"date"`
	Reason string `db:"reason" json:"reason"`
}

// Validate checks if the Blackout has valid data.
// PRE: Blackout struct is populated
// POST: Returns nil if valid, error otherwise
func (b *Blackout) Validate() error {
	if strings.TrimSpace(b.Date) == "" {
		return ErrEmptyDate
	}
	if !calendar.IsDate(b.Date) {
		return ErrInvalidDate
	}
	return nil
}
