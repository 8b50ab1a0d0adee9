// Package rank holds the rating value type and its validation rules.
//
// Ratings live in the inclusive range [1, 10] with at most two decimal
// places. Internally they are fixed-point hundredths (int64) so that
// aggregation never accumulates floating-point drift; conversion to
// float64 happens only at display and wire boundaries.
package rank

import (
	"math"
	"strconv"
	"strings"
)

// Rating range bounds, in hundredths.
const (
	minHundredths = 100  // 1.00
	maxHundredths = 1000 // 10.00
)

// Rating is a fixed-point rating stored as hundredths, e.g. 7.25 is 725.
type Rating int64

// FromHundredths builds a Rating directly from hundredths.
func FromHundredths(h int64) Rating {
	return Rating(h)
}

// FromFloat converts a float value to the nearest hundredth. It does not
// validate; see Validate, which callers run at write time.
func FromFloat(v float64) Rating {
	return Rating(math.Round(v * 100))
}

// FromString parses a decimal string such as "7.25" into a Rating.
func FromString(s string) (Rating, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, ErrInvalidRank
	}
	if err := Validate(v); err != nil {
		return 0, err
	}
	return FromFloat(v), nil
}

// Float64 returns the rating as a float for display and JSON encoding.
func (r Rating) Float64() float64 {
	return float64(r) / 100
}

// Hundredths returns the raw fixed-point value.
func (r Rating) Hundredths() int64 {
	return int64(r)
}

// String formats the rating without trailing zeros, e.g. "7.25", "8".
func (r Rating) String() string {
	return strconv.FormatFloat(r.Float64(), 'f', -1, 64)
}

// MarshalJSON encodes the rating as a JSON number.
func (r Rating) MarshalJSON() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalJSON decodes a JSON number into a Rating. Validation is a
// write-time concern and stays with the caller.
func (r *Rating) UnmarshalJSON(b []byte) error {
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return ErrInvalidRank
	}
	*r = FromFloat(v)
	return nil
}

// Validate checks the canonical rating rule: the value must lie in
// [1, 10] and its decimal representation must not exceed two fractional
// digits.
func Validate(v float64) error {
	if v < 1 || v > 10 {
		return ErrInvalidRank
	}
	if decimalPlaces(v) > 2 {
		return ErrInvalidRank
	}
	return nil
}

// ValidateWhole checks the legacy whole-number rule: an integer in
// [1, 10].
//
// Deprecated: older call sites required whole-number ratings before the
// two-decimal rule superseded them. New code should use Validate.
func ValidateWhole(v float64) error {
	if v < 1 || v > 10 {
		return ErrInvalidRank
	}
	if v != math.Trunc(v) {
		return ErrInvalidRank
	}
	return nil
}

// decimalPlaces counts fractional digits in the shortest decimal
// representation of v, mirroring the original string-based check.
func decimalPlaces(v float64) int {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}
