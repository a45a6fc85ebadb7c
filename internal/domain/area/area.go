// Package area decides whether an address lies inside the visit service area.
package area

import (
	"errors"
	"regexp"
	"strings"
)

// MessageServiceable is returned by the area check endpoint on success.
const MessageServiceable = "出張可能エリアです"

// ErrOutsideArea is the deny reason for addresses outside every region.
var ErrOutsideArea = errors.New("申し訳ございません。ご指定のエリアは出張対応エリア外です。（対応エリア：東京都内、横浜市）")

// Region is a serviced region: a postal prefix band plus an address token.
type Region struct {
	Name   string
	Token  string
	postal *regexp.Regexp
}

// Regions are checked in order; postal bands do not overlap.
var Regions = []Region{
	// 100-0000 to 209-9999
	{Name: "東京都内", Token: "東京都", postal: regexp.MustCompile(`^(1[0-9]{2}|20[0-9])-\d{4}$`)},
	// 220-0000 to 247-9999
	{Name: "横浜市", Token: "横浜市", postal: regexp.MustCompile(`^(22[0-9]|23[0-9]|24[0-7])-\d{4}$`)},
}

// Match returns the region whose postal band and address token both match.
// PRE: none
// POST: ok is false when no region matches both
func Match(postalCode, address string) (Region, bool) {
	postalCode = strings.TrimSpace(postalCode)
	for _, r := range Regions {
		if r.postal.MatchString(postalCode) && strings.Contains(address, r.Token) {
			return r, true
		}
	}
	return Region{}, false
}

// IsServiceable reports whether the postal code and address fall in a serviced region.
func IsServiceable(postalCode, address string) bool {
	_, ok := Match(postalCode, address)
	return ok
}

// Check returns ErrOutsideArea when the location is not serviceable.
func Check(postalCode, address string) error {
	if !IsServiceable(postalCode, address) {
		return ErrOutsideArea
	}
	return nil
}
