// Package season parses season display names and orders season
// collections by recency.
//
// A season name has the form "<SubSeason> <Year>", e.g. "Summer 2024".
// The sub-season token is free text; parsing never fails, it degrades to
// year 0 when the trailing token is not an integer.
package season

import (
	"sort"
	"strconv"
	"strings"
)

// Sub-season positions within a calendar year.
const (
	orderWinter = 0
	orderSpring = 1
	orderSummer = 2
	orderFall   = 3
	orderOther  = 4
)

// Parsed is the result of splitting a season name into its parts.
type Parsed struct {
	Year      int
	SubSeason string
}

// Parse splits a season name on whitespace and treats the last token as
// the year. When the last token does not parse as an integer the year is
// 0 and the sub-season is the entire trimmed name, year token included.
func Parse(name string) Parsed {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return Parsed{}
	}
	year, err := strconv.Atoi(tokens[len(tokens)-1])
	if err != nil {
		return Parsed{SubSeason: strings.Join(tokens, " ")}
	}
	return Parsed{
		Year:      year,
		SubSeason: strings.Join(tokens[:len(tokens)-1], " "),
	}
}

// Order maps a sub-season to its chronological position within a year:
// winter 0, spring 1, summer 2, fall/autumn 3, anything else 4. Matching
// is a case-insensitive substring check and the first match wins.
func Order(subSeason string) int {
	s := strings.ToLower(subSeason)
	switch {
	case strings.Contains(s, "winter"):
		return orderWinter
	case strings.Contains(s, "spring"):
		return orderSpring
	case strings.Contains(s, "summer"):
		return orderSummer
	case strings.Contains(s, "fall"), strings.Contains(s, "autumn"):
		return orderFall
	}
	return orderOther
}

// SortChronologically orders items most recent first: descending by year,
// then descending by sub-season order within a year. The sort is stable,
// so equal keys keep their input order.
//
// The input slice is sorted in place and returned; callers rely on
// receiving the same slice back.
func SortChronologically[T any](items []T, nameOf func(T) string) []T {
	sort.SliceStable(items, func(i, j int) bool {
		a := Parse(nameOf(items[i]))
		b := Parse(nameOf(items[j]))
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		return Order(a.SubSeason) > Order(b.SubSeason)
	})
	return items
}
