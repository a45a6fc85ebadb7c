package reservation

import (
	"errors"
	"strings"
	"time"

	"kaitori/internal/domain/area"
	"kaitori/internal/domain/calendar"
)

// Status constants
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ValidStatuses contains all valid status values.
var ValidStatuses = []string{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

// Slots are the start times of the daily visit windows, in display order.
var Slots = []string{"10:00", "12:00", "14:00", "16:00"}

// MaxPerDay is the number of non-cancelled reservations a single date can hold.
const MaxPerDay = 4

// Logistics answers for parking and elevator availability.
const (
	Available   = "あり"
	Unavailable = "なし"
)

// TimestampFormat matches SQL CURRENT_TIMESTAMP text.
const TimestampFormat = "2006-01-02 15:04:05"

// Domain errors. The text is shown to customers as-is.
var (
	ErrMissingFields    = errors.New("必須項目が入力されていません")
	ErrInvalidDate      = errors.New("日付の形式が正しくありません")
	ErrInvalidSlot      = errors.New("時間帯の指定が正しくありません")
	ErrInvalidLogistics = errors.New("駐車場・エレベーターの有無は「あり」または「なし」で指定してください")
	ErrPastDate         = errors.New("過去の日付は予約できません")
	ErrDateUnavailable  = errors.New("その日は出張対応できません。別の日付をお選びください。")
	ErrSlotFull         = errors.New("その時間帯は既に予約が埋まっています。別の時間帯をお選びください。")
	ErrDayFull          = errors.New("その日は既に予約が満員です。別の日付をお選びください。")
	ErrInvalidStatus    = errors.New("ステータスの値が正しくありません")
	ErrNotFound         = errors.New("予約が見つかりません")
)

// Reservation is a stored visit appointment.
type Reservation struct {
	ID                 int64  `db:"id" json:"id"`
	CustomerName       string `db:"customer_name" json:"customer_name"`
	CustomerEmail      string `db:"customer_email" json:"customer_email"`
	CustomerPhone      string `db:"customer_phone" json:"customer_phone"`
	CustomerPostalCode string `db:"customer_postal_code" json:"customer_postal_code"`
	CustomerAddress    string `db:"customer_address" json:"customer_address"`
	ReservationDate    string `db:"reservation_date" json:"reservation_date"`
	ReservationTime    string `db:"reservation_time" json:"reservation_time"`
	ItemCategory       string `db:"item_category" json:"item_category"`
	ItemDescription    string `db:"item_description" json:"item_description"`
	EstimatedQuantity  string `db:"estimated_quantity" json:"estimated_quantity"`
	HasParking         string `db:"has_parking" json:"has_parking"`
	HasElevator        string `db:"has_elevator" json:"has_elevator"`
	Status             string `db:"status" json:"status"`
	Notes              string `db:"notes" json:"notes"`
	CustomerNotes      string `db:"customer_notes" json:"customer_notes"`
	CreatedAt          string `db:"created_at" json:"created_at"`
	UpdatedAt          string `db:"updated_at" json:"updated_at"`
}

// IsActive reports whether the reservation counts toward slot and day capacity.
// INVARIANT: Reservation fields are not mutated
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelled
}

// Candidate is a customer's booking request before admission.
type Candidate struct {
	CustomerName       string
	CustomerEmail      string
	CustomerPhone      string
	CustomerPostalCode string
	CustomerAddress    string
	ReservationDate    string
	ReservationTime    string
	ItemCategory       string
	ItemDescription    string
	EstimatedQuantity  string
	HasParking         string
	HasElevator        string
	CustomerNotes      string
}

// Validate checks field completeness and format.
// Dates before today are rejected; an empty today disables the cutoff.
// PRE: today is empty or in calendar.DateFormat
// POST: Returns nil if the candidate may proceed to area and capacity checks
func (c *Candidate) Validate(today string) error {
	required := []string{
		c.CustomerName, c.CustomerEmail, c.CustomerPhone, c.CustomerAddress,
		c.ReservationDate, c.ReservationTime, c.ItemCategory, c.ItemDescription,
		c.EstimatedQuantity, c.HasParking, c.HasElevator,
	}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return ErrMissingFields
		}
	}
	if !calendar.IsDate(c.ReservationDate) {
		return ErrInvalidDate
	}
	if !IsSlot(c.ReservationTime) {
		return ErrInvalidSlot
	}
	if !isLogistics(c.HasParking) || !isLogistics(c.HasElevator) {
		return ErrInvalidLogistics
	}
	if today != "" && c.ReservationDate < today {
		return ErrPastDate
	}
	return nil
}

// CheckArea applies the service area rule to the candidate's location.
func (c *Candidate) CheckArea() error {
	return area.Check(c.CustomerPostalCode, c.CustomerAddress)
}

// CheckCapacity applies the slot rule, then the day rule, to current counts.
// PRE: counts exclude cancelled reservations
// POST: ErrSlotFull takes precedence over ErrDayFull
func CheckCapacity(slotCount, dayCount int) error {
	if slotCount >= 1 {
		return ErrSlotFull
	}
	if dayCount >= MaxPerDay {
		return ErrDayFull
	}
	return nil
}

// NewReservation builds the pending record stored on admission.
// PRE: c has passed Validate
// POST: Status is pending; CreatedAt equals UpdatedAt
func NewReservation(c Candidate, now time.Time) Reservation {
	ts := now.UTC().Format(TimestampFormat)
	return Reservation{
		CustomerName:       strings.TrimSpace(c.CustomerName),
		CustomerEmail:      strings.TrimSpace(c.CustomerEmail),
		CustomerPhone:      strings.TrimSpace(c.CustomerPhone),
		CustomerPostalCode: strings.TrimSpace(c.CustomerPostalCode),
		CustomerAddress:    strings.TrimSpace(c.CustomerAddress),
		ReservationDate:    c.ReservationDate,
		ReservationTime:    c.ReservationTime,
		ItemCategory:       c.ItemCategory,
		ItemDescription:    c.ItemDescription,
		EstimatedQuantity:  c.EstimatedQuantity,
		HasParking:         c.HasParking,
		HasElevator:        c.HasElevator,
		Status:             StatusPending,
		CustomerNotes:      c.CustomerNotes,
		CreatedAt:          ts,
		UpdatedAt:          ts,
	}
}

// Patch is a partial admin update. Nil fields are left unchanged.
type Patch struct {
	Status          *string
	Notes           *string
	ReservationDate *string
	ReservationTime *string
}

// Normalize drops empty status, date and time values, which mean "not supplied".
// Notes may be cleared, so an empty Notes is kept.
func (p Patch) Normalize() Patch {
	blank := func(s *string) *string {
		if s == nil || *s == "" {
			return nil
		}
		return s
	}
	return Patch{
		Status:          blank(p.Status),
		Notes:           p.Notes,
		ReservationDate: blank(p.ReservationDate),
		ReservationTime: blank(p.ReservationTime),
	}
}

// Validate checks supplied fields.
// PRE: p has been normalized
// POST: Returns nil if every supplied field is well-formed
func (p Patch) Validate() error {
	if p.Status != nil && !IsStatus(*p.Status) {
		return ErrInvalidStatus
	}
	if p.ReservationDate != nil && !calendar.IsDate(*p.ReservationDate) {
		return ErrInvalidDate
	}
	if p.ReservationTime != nil && !IsSlot(*p.ReservationTime) {
		return ErrInvalidSlot
	}
	return nil
}

// IsSlot reports whether t is one of the daily slot start times.
func IsSlot(t string) bool {
	for _, s := range Slots {
		if s == t {
			return true
		}
	}
	return false
}

// IsStatus reports whether s is a valid status.
func IsStatus(s string) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func isLogistics(v string) bool {
	return v == Available || v == Unavailable
}
