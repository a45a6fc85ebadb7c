package calendar

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DateFormat is the literal layout of every stored calendar date.
const DateFormat = "2006-01-02"

// Domain errors
var (
	ErrMissingMonth = errors.New("year と month パラメータが必要です")
	ErrInvalidMonth = errors.New("year または month の値が正しくありません")
	ErrInvalidRange = errors.New("from と to の指定が正しくありません")
)

// Range is a half-open date interval [From, To) in DateFormat.
type Range struct {
	From string
	To   string
}

// DayCount is the public per-date aggregate.
type DayCount struct {
	ReservationDate string `json:"reservation_date"`
	Count           int    `json:"count"`
	Times           string `json:"times"`
}

// SlotCount is the admin per-(date, time) aggregate.
type SlotCount struct {
	ReservationDate string `db:"reservation_date" json:"reservation_date"`
	ReservationTime string `db:"reservation_time" json:"reservation_time"`
	Count           int    `db:"count" json:"count"`
}

// IsDate reports whether s is a real calendar date in DateFormat.
func IsDate(s string) bool {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return false
	}
	// time.Parse accepts single-digit fields in some layouts; require the canonical form.
	return t.Format(DateFormat) == s
}

// MonthRange returns [first of month, first of next month).
// PRE: 1 <= month <= 12, 1 <= year <= 9999
// POST: To is in the following year when month is 12
func MonthRange(year, month int) (Range, error) {
	if month < 1 || month > 12 || year < 1 || year > 9999 {
		return Range{}, ErrInvalidMonth
	}
	nextYear, nextMonth := year, month+1
	if month == 12 {
		nextYear, nextMonth = year+1, 1
	}
	return Range{
		From: fmt.Sprintf("%04d-%02d-01", year, month),
		To:   fmt.Sprintf("%04d-%02d-01", nextYear, nextMonth),
	}, nil
}

// ParseMonth parses year and month query values into a Range.
// PRE: none
// POST: ErrMissingMonth if either value is blank, ErrInvalidMonth if not numeric or out of range
func ParseMonth(rawYear, rawMonth string) (Range, error) {
	rawYear, rawMonth = strings.TrimSpace(rawYear), strings.TrimSpace(rawMonth)
	if rawYear == "" || rawMonth == "" {
		return Range{}, ErrMissingMonth
	}
	year, err := strconv.Atoi(rawYear)
	if err != nil {
		return Range{}, ErrInvalidMonth
	}
	month, err := strconv.Atoi(rawMonth)
	if err != nil {
		return Range{}, ErrInvalidMonth
	}
	return MonthRange(year, month)
}

// NewRange builds an explicit date range.
// PRE: from and to are dates in DateFormat
// POST: returns ErrInvalidRange unless from < to
func NewRange(from, to string) (Range, error) {
	if !IsDate(from) || !IsDate(to) || from >= to {
		return Range{}, ErrInvalidRange
	}
	return Range{From: from, To: to}, nil
}

// Today returns the current date in loc formatted as DateFormat.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format(DateFormat)
}

// FoldDays collapses per-slot counts into per-date totals.
// Times lists each occupied slot once, ascending, comma-joined.
// PRE: counts exclude cancelled reservations
// POST: Ordered by date; for each date Count equals the sum of its slot counts
func FoldDays(counts []SlotCount) []DayCount {
	days := []DayCount{}
	byDate := make(map[string]int)
	slots := make(map[string][]string)
	for _, c := range counts {
		i, ok := byDate[c.ReservationDate]
		if !ok {
			i = len(days)
			byDate[c.ReservationDate] = i
			days = append(days, DayCount{ReservationDate: c.ReservationDate})
		}
		days[i].Count += c.Count
		slots[c.ReservationDate] = append(slots[c.ReservationDate], c.ReservationTime)
	}
	for i := range days {
		times := slots[days[i].ReservationDate]
		sort.Strings(times)
		days[i].Times = strings.Join(dedupe(times), ",")
	}
	sort.Slice(days, func(a, b int) bool { return days[a].ReservationDate < days[b].ReservationDate })
	return days
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
