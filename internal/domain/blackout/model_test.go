package blackout_test

import (
	"errors"
	"testing"

	"kaitori/internal/domain/blackout"
)

// TestBlackout_Validate tests validation of Blackout.
func TestBlackout_Validate(t *testing.T) {
	tests := []struct {
		name    string
		b       blackout.Blackout
		wantErr error
	}{
		{name: "with reason", b: blackout.Blackout{Date: "2025-04-01", Reason: "closed"}},
		{name: "empty reason still valid", b: blackout.Blackout{Date: "2025-04-01"}},
		{name: "empty date", b: blackout.Blackout{Reason: "closed"}, wantErr: blackout.ErrEmptyDate},
		{name: "invalid date", b: blackout.Blackout{Date: "2025-04-31"}, wantErr: blackout.ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.b.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
