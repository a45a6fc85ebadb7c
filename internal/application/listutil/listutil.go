package listutil

import (
	"net/url"
	"strconv"
	"strings"
)

// OffsetParams carries limit/offset pagination parsed from a request.
type OffsetParams struct {
	Limit  int
	Offset int
}

// FilterParams carries exact-match filters.
type FilterParams struct {
	Filters map[string]string // e.g. status=pending
}

// ListParams combines all list parameters.
type ListParams struct {
	OffsetParams
	FilterParams
}

// DefaultLimit is the number of rows returned when limit is absent or invalid.
const DefaultLimit = 50

// MaxLimit caps the limit a client may request.
const MaxLimit = 500

// ParseOffsetParams extracts limit and offset from URL query values.
// Non-numeric or negative values fall back to defaults.
// PRE: none
// POST: 1 <= Limit <= MaxLimit, Offset >= 0
func ParseOffsetParams(q url.Values) OffsetParams {
	limit, err := strconv.Atoi(strings.TrimSpace(q.Get("limit")))
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	offset, err := strconv.Atoi(strings.TrimSpace(q.Get("offset")))
	if err != nil || offset < 0 {
		offset = 0
	}
	return OffsetParams{Limit: limit, Offset: offset}
}

// ParseFilterParams extracts named filters from URL query values.
// PRE: filterKeys lists the allowed filter parameter names
// POST: returns FilterParams with only recognised, non-empty keys
func ParseFilterParams(q url.Values, filterKeys []string) FilterParams {
	fp := FilterParams{Filters: make(map[string]string)}
	for _, key := range filterKeys {
		if v := strings.TrimSpace(q.Get(key)); v != "" {
			fp.Filters[key] = v
		}
	}
	return fp
}

// ParseListParams parses all list parameters from URL query values.
func ParseListParams(q url.Values, filterKeys []string) ListParams {
	return ListParams{
		OffsetParams: ParseOffsetParams(q),
		FilterParams: ParseFilterParams(q, filterKeys),
	}
}
