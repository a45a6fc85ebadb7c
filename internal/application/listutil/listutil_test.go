package listutil

import (
	"net/url"
	"testing"
)

// TestParseOffsetParams_Defaults verifies defaults when no query values provided.
func TestParseOffsetParams_Defaults(t *testing.T) {
	p := ParseOffsetParams(url.Values{})
	if p.Limit != DefaultLimit {
		t.Errorf("expected limit %d, got %d", DefaultLimit, p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected offset 0, got %d", p.Offset)
	}
}

// TestParseOffsetParams covers valid, invalid and capped inputs.
func TestParseOffsetParams(t *testing.T) {
	tests := []struct {
		name       string
		limit      string
		offset     string
		wantLimit  int
		wantOffset int
	}{
		{name: "valid", limit: "10", offset: "20", wantLimit: 10, wantOffset: 20},
		{name: "non-numeric", limit: "ten", offset: "x", wantLimit: DefaultLimit, wantOffset: 0},
		{name: "negative", limit: "-5", offset: "-1", wantLimit: DefaultLimit, wantOffset: 0},
		{name: "zero limit", limit: "0", offset: "0", wantLimit: DefaultLimit, wantOffset: 0},
		{name: "capped", limit: "10000", offset: "3", wantLimit: MaxLimit, wantOffset: 3},
		{name: "at cap", limit: "500", wantLimit: 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParseOffsetParams(url.Values{"limit": {tt.limit}, "offset": {tt.offset}})
			if p.Limit != tt.wantLimit || p.Offset != tt.wantOffset {
				t.Errorf("got limit=%d offset=%d, want %d/%d", p.Limit, p.Offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

// TestParseFilterParams verifies only recognised non-empty filters are kept.
func TestParseFilterParams(t *testing.T) {
	q := url.Values{"status": {"pending"}, "date": {""}, "secret": {"x"}}
	fp := ParseFilterParams(q, []string{"status", "date"})
	if fp.Filters["status"] != "pending" {
		t.Errorf("expected status=pending, got %q", fp.Filters["status"])
	}
	if _, ok := fp.Filters["date"]; ok {
		t.Error("empty filter should be dropped")
	}
	if _, ok := fp.Filters["secret"]; ok {
		t.Error("unrecognised filter should be dropped")
	}
}

// TestParseListParams combines both parsers.
func TestParseListParams(t *testing.T) {
	p := ParseListParams(url.Values{"limit": {"5"}, "date": {"2025-03-10"}}, []string{"status", "date"})
	if p.Limit != 5 || p.Offset != 0 {
		t.Errorf("got limit=%d offset=%d", p.Limit, p.Offset)
	}
	if p.Filters["date"] != "2025-03-10" {
		t.Errorf("got filters %v", p.Filters)
	}
}
