package stats

import (
	"strconv"

	"github.com/seasonal/ladder/internal/domain/rank"
	"github.com/seasonal/ladder/internal/domain/season"
)

// SeasonRanking is one entry of a player's season history: the season
// label plus the optional rating earned in it.
type SeasonRanking struct {
	SeasonID   string
	SeasonName string
	Rank       *rank.Rating
}

// PlayerStats summarizes a player's history across seasons.
type PlayerStats struct {
	TotalSeasons     int      `json:"total_seasons"`
	FirstSeason      *string  `json:"first_season"`
	MostRecentSeason *string  `json:"most_recent_season"`
	AverageRating    *float64 `json:"average_rating"`
	RatingChange     *float64 `json:"rating_change"`
	// AverageChangePerSeason divides the first-to-last change by the
	// count of ranked seasons minus one, not by calendar gaps. With
	// non-contiguous ranked seasons this understates the per-calendar
	// rate; the behavior is kept as-is.
	AverageChangePerSeason *float64 `json:"average_change_per_season"`
	HasRankedSeasons       bool     `json:"has_ranked_seasons"`
}

// CalculatePlayerStats computes season-history statistics for one
// player. Total and first/most-recent season cover every season the
// player belongs to; the rating figures cover only ranked seasons.
//
// The input slice is reordered chronologically as a side effect.
func CalculatePlayerStats(rankings []SeasonRanking) PlayerStats {
	if len(rankings) == 0 {
		return PlayerStats{}
	}

	sorted := season.SortChronologically(rankings, func(r SeasonRanking) string {
		return r.SeasonName
	})

	out := PlayerStats{
		TotalSeasons:     len(sorted),
		MostRecentSeason: &sorted[0].SeasonName,
		FirstSeason:      &sorted[len(sorted)-1].SeasonName,
	}

	ranked := make([]SeasonRanking, 0, len(sorted))
	for _, r := range sorted {
		if r.Rank != nil {
			ranked = append(ranked, r)
		}
	}
	if len(ranked) == 0 {
		return out
	}
	out.HasRankedSeasons = true

	var sum int64
	for _, r := range ranked {
		sum += r.Rank.Hundredths()
	}
	avg := round2(float64(sum) / 100 / float64(len(ranked)))
	out.AverageRating = &avg

	if len(ranked) >= 2 {
		newest := ranked[0].Rank
		oldest := ranked[len(ranked)-1].Rank
		change := round2(float64(newest.Hundredths()-oldest.Hundredths()) / 100)
		perSeason := round2(change / float64(len(ranked)-1))
		out.RatingChange = &change
		out.AverageChangePerSeason = &perSeason
	}
	return out
}

// Tone classifies a formatted delta for presentation.
type Tone string

// Tones for rating deltas.
const (
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
	ToneNeutral  Tone = "neutral"
	ToneMuted    Tone = "muted"
)

// ChangeDisplay is a formatted rating delta ready for presentation.
type ChangeDisplay struct {
	Text string `json:"text"`
	Tone Tone   `json:"tone"`
}

// FormatRatingChange renders a first-to-last rating change.
func FormatRatingChange(change *float64) ChangeDisplay {
	switch {
	case change == nil:
		return ChangeDisplay{Text: "No change data", Tone: ToneMuted}
	case *change > 0:
		return ChangeDisplay{Text: "+" + formatDelta(*change), Tone: TonePositive}
	case *change < 0:
		return ChangeDisplay{Text: formatDelta(*change), Tone: ToneNegative}
	}
	return ChangeDisplay{Text: "No change", Tone: ToneNeutral}
}

// FormatAverageChangePerSeason renders a per-season rating change.
func FormatAverageChangePerSeason(change *float64) ChangeDisplay {
	switch {
	case change == nil:
		return ChangeDisplay{Text: "No data", Tone: ToneMuted}
	case *change > 0:
		return ChangeDisplay{Text: "+" + formatDelta(*change) + "/season", Tone: TonePositive}
	case *change < 0:
		return ChangeDisplay{Text: formatDelta(*change) + "/season", Tone: ToneNegative}
	}
	return ChangeDisplay{Text: "0/season", Tone: ToneNeutral}
}

func formatDelta(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
