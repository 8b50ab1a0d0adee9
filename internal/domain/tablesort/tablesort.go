// Package tablesort provides the field-parameterized sorting used by
// presentation tables.
package tablesort

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/seasonal/ladder/internal/domain/rank"
)

// Direction is a sort direction.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// State names the field a table is sorted by and in which direction.
type State struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// Toggle computes the next sort state after a header click: clicking the
// current field flips the direction, clicking a new field resets it to
// ascending.
func Toggle(currentField string, currentDirection Direction, requestedField string) State {
	if requestedField == currentField {
		next := Asc
		if currentDirection == Asc {
			next = Desc
		}
		return State{Field: requestedField, Direction: next}
	}
	return State{Field: requestedField, Direction: Asc}
}

// Sort returns a new slice ordered by the extracted field values. Two
// strings compare lexicographically, two numbers numerically; any other
// combination is stringified and compared. Descending negates the
// comparison. The sort is stable and the input slice is not mutated.
func Sort[T any](items []T, state State, fieldOf func(item T, field string) any) []T {
	out := append([]T(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		c := compareValues(fieldOf(out[i], state.Field), fieldOf(out[j], state.Field))
		if state.Direction == Desc {
			c = -c
		}
		return c < 0
	})
	return out
}

func compareValues(a, b any) int {
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return strings.Compare(as, bs)
		}
	}
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			}
			return 0
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Player sort fields.
const (
	FieldName = "name"
	FieldRank = "rank"
)

// PlayerRow is one row of a season standings table.
type PlayerRow struct {
	PlayerID string       `json:"player_id"`
	Name     string       `json:"name"`
	Rank     *rank.Rating `json:"rank"`
}

// SortPlayers orders standings rows by name or rank. Rows without a rank
// sort last in both directions: their value is +infinity when ascending
// and -infinity when descending.
func SortPlayers(rows []PlayerRow, state State) []PlayerRow {
	return Sort(rows, state, func(row PlayerRow, field string) any {
		switch field {
		case FieldName:
			return row.Name
		case FieldRank:
			if row.Rank == nil {
				if state.Direction == Asc {
					return math.Inf(1)
				}
				return math.Inf(-1)
			}
			return row.Rank.Float64()
		}
		return ""
	})
}
