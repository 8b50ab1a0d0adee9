// Package stats aggregates player and season records into summary views.
package stats

import (
	"math"
	"sort"
	"strings"

	"github.com/seasonal/ladder/internal/domain/model"
	"github.com/seasonal/ladder/internal/domain/rank"
)

// SeasonRating is one season's rating for a player; nil means the player
// is in the season but not yet rated.
type SeasonRating struct {
	Rank *rank.Rating
}

// PlayerWithRatings is the aggregation input: a player and all of their
// per-season ratings.
type PlayerWithRatings struct {
	ID      string
	Name    string
	Gender  *model.Gender
	Seasons []SeasonRating
}

// GenderStats summarizes one gender bucket.
type GenderStats struct {
	// AverageRating is the mean of the per-player averages of bucket
	// members with at least one ranked season, nil when no member has one.
	AverageRating *float64 `json:"average_rating"`
	PlayerCount   int      `json:"player_count"`
	Percentage    float64  `json:"percentage"`
}

// PlayerStatistics holds per-bucket gender statistics over all players.
type PlayerStatistics struct {
	Male         GenderStats `json:"male"`
	Female       GenderStats `json:"female"`
	NonBinary    GenderStats `json:"non_binary"`
	Unspecified  GenderStats `json:"unspecified"`
	TotalPlayers int         `json:"total_players"`
}

// GenderFilter selects a subset of players by gender bucket.
type GenderFilter string

// Filter values.
const (
	FilterAll         GenderFilter = "all"
	FilterMale        GenderFilter = "male"
	FilterFemale      GenderFilter = "female"
	FilterNonBinary   GenderFilter = "non-binary"
	FilterUnspecified GenderFilter = "unspecified"
)

// CalculatePlayerStatistics buckets every player by gender and computes
// count, share of total, and average rating per bucket.
//
// The bucket average is a mean of per-player means: each player's ranked
// seasons are averaged first, then those averages are averaged across
// the bucket. This weights every player equally no matter how many
// seasons they were ranked in, which is intentional; do not replace it
// with a pooled average over all ranking entries.
func CalculatePlayerStatistics(players []PlayerWithRatings) PlayerStatistics {
	total := len(players)

	type bucket struct {
		ratings []float64
		count   int
	}
	var male, female, nonBinary, unspecified bucket

	for _, p := range players {
		var sum int64
		var ranked int
		for _, s := range p.Seasons {
			if s.Rank != nil {
				sum += s.Rank.Hundredths()
				ranked++
			}
		}

		b := &unspecified
		if p.Gender != nil {
			switch *p.Gender {
			case model.GenderMale:
				b = &male
			case model.GenderFemale:
				b = &female
			case model.GenderNonBinary:
				b = &nonBinary
			}
		}
		b.count++
		if ranked > 0 {
			b.ratings = append(b.ratings, float64(sum)/100/float64(ranked))
		}
	}

	calc := func(b bucket) GenderStats {
		s := GenderStats{PlayerCount: b.count}
		if len(b.ratings) > 0 {
			var sum float64
			for _, r := range b.ratings {
				sum += r
			}
			avg := round2(sum / float64(len(b.ratings)))
			s.AverageRating = &avg
		}
		if total > 0 {
			s.Percentage = round2(float64(b.count) / float64(total) * 100)
		}
		return s
	}

	return PlayerStatistics{
		Male:         calc(male),
		Female:       calc(female),
		NonBinary:    calc(nonBinary),
		Unspecified:  calc(unspecified),
		TotalPlayers: total,
	}
}

// GenderCounts reports how many players fall into each filter bucket.
func GenderCounts(players []PlayerWithRatings) map[GenderFilter]int {
	counts := map[GenderFilter]int{
		FilterAll:         len(players),
		FilterMale:        0,
		FilterFemale:      0,
		FilterNonBinary:   0,
		FilterUnspecified: 0,
	}
	for _, p := range players {
		counts[filterOf(p.Gender)]++
	}
	return counts
}

// FilterPlayersByGender returns the players matching the given filter.
func FilterPlayersByGender(players []PlayerWithRatings, filter GenderFilter) []PlayerWithRatings {
	if filter == FilterAll {
		return players
	}
	out := make([]PlayerWithRatings, 0, len(players))
	for _, p := range players {
		if filterOf(p.Gender) == filter {
			out = append(out, p)
		}
	}
	return out
}

// SortPlayersByName returns a new slice sorted alphabetically by name,
// case-insensitively. The sort is stable.
func SortPlayersByName(players []PlayerWithRatings) []PlayerWithRatings {
	out := append([]PlayerWithRatings(nil), players...)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// GenderLabel returns the human-readable label for a gender value.
func GenderLabel(g *model.Gender) string {
	if g == nil {
		return "Gender not set"
	}
	switch *g {
	case model.GenderMale:
		return "Male"
	case model.GenderFemale:
		return "Female"
	case model.GenderNonBinary:
		return "Non-Binary"
	}
	return "Gender not set"
}

func filterOf(g *model.Gender) GenderFilter {
	if g == nil {
		return FilterUnspecified
	}
	switch *g {
	case model.GenderMale:
		return FilterMale
	case model.GenderFemale:
		return FilterFemale
	case model.GenderNonBinary:
		return FilterNonBinary
	}
	return FilterUnspecified
}

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
