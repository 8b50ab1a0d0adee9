package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/seasonal/ladder/internal/adapters/repository"
	"github.com/seasonal/ladder/internal/domain/model"
	"github.com/seasonal/ladder/internal/domain/rank"
	"github.com/seasonal/ladder/pkg/logger"
	"github.com/seasonal/ladder/pkg/metrics"
)

// RosterAction classifies the outcome of one roster import entry.
type RosterAction string

// Roster import outcomes.
const (
	ActionAddedToSeason    RosterAction = "added_to_season"
	ActionUpdatedRanking   RosterAction = "updated_ranking"
	ActionRankingUnchanged RosterAction = "ranking_unchanged"
	ActionRankingConflict  RosterAction = "ranking_conflict"
	ActionPlayerNotFound   RosterAction = "player_not_found"
	ActionInvalidRank      RosterAction = "invalid_rank"
)

// RosterEntry is one row of an uploaded roster: a player name and the
// rating to assign.
type RosterEntry struct {
	Name string  `json:"name"`
	Rank float64 `json:"rank"`
}

// RosterResult reports what happened to one entry.
type RosterResult struct {
	Name        string       `json:"name"`
	Rank        float64      `json:"rank"`
	Success     bool         `json:"success"`
	Action      RosterAction `json:"action"`
	Error       string       `json:"error,omitempty"`
	CurrentRank *float64     `json:"current_rank,omitempty"`
}

// RosterSummary is the aggregate outcome of an import.
type RosterSummary struct {
	Message      string         `json:"message"`
	SuccessCount int            `json:"success_count"`
	TotalCount   int            `json:"total_count"`
	Results      []RosterResult `json:"results"`
}

// ImportRoster applies an uploaded roster to a season, entry by entry.
// Existing memberships are updated unless the stored rating already
// matches; a mismatch with an existing rating is reported as a conflict
// for manual review rather than overwritten.
func (s *Service) ImportRoster(ctx context.Context, seasonID string, entries []RosterEntry) (RosterSummary, error) {
	if len(entries) == 0 {
		return RosterSummary{}, ErrEmptyRoster
	}
	if _, err := s.store.Season(ctx, seasonID); err != nil {
		return RosterSummary{}, err
	}

	summary := RosterSummary{TotalCount: len(entries)}
	changed := false

	for _, entry := range entries {
		result := s.importEntry(ctx, seasonID, entry)
		if result.Success && result.Action != ActionRankingUnchanged {
			summary.SuccessCount++
			changed = true
		}
		metrics.RecordRosterImportResult(string(result.Action))
		summary.Results = append(summary.Results, result)
	}

	if changed {
		s.invalidateStandings(ctx, seasonID)
	}
	summary.Message = fmt.Sprintf("Successfully processed %d out of %d players",
		summary.SuccessCount, summary.TotalCount)
	s.logger.Info(ctx, "roster imported",
		logger.String("season_id", seasonID),
		logger.Int("success", summary.SuccessCount),
		logger.Int("total", summary.TotalCount),
	)
	return summary, nil
}

func (s *Service) importEntry(ctx context.Context, seasonID string, entry RosterEntry) RosterResult {
	name := strings.TrimSpace(entry.Name)
	result := RosterResult{Name: name, Rank: entry.Rank}

	if err := rank.Validate(entry.Rank); err != nil {
		result.Action = ActionInvalidRank
		result.Error = err.Error()
		return result
	}

	p, err := s.store.PlayerByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		result.Action = ActionPlayerNotFound
		result.Error = "Player not found in database"
		return result
	}
	if err != nil {
		result.Action = ActionPlayerNotFound
		result.Error = err.Error()
		return result
	}
	result.Name = p.Name

	newRank := rank.FromFloat(entry.Rank)
	existing, err := s.store.Ranking(ctx, seasonID, p.ID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		// Not in the season yet: add with the rating.
		r := model.SeasonRanking{SeasonID: seasonID, PlayerID: p.ID, Rank: &newRank}
		if err := s.store.CreateRanking(ctx, r); err != nil {
			result.Action = ActionPlayerNotFound
			result.Error = err.Error()
			return result
		}
		result.Success = true
		result.Action = ActionAddedToSeason
	case err != nil:
		result.Action = ActionPlayerNotFound
		result.Error = err.Error()
	case existing.Rank == nil:
		// In the season but unrated: treat as a fresh rating.
		if err := s.store.UpdateRank(ctx, seasonID, p.ID, &newRank); err != nil {
			result.Action = ActionPlayerNotFound
			result.Error = err.Error()
			return result
		}
		result.Success = true
		result.Action = ActionUpdatedRanking
	case existing.Rank.Hundredths() == newRank.Hundredths():
		result.Success = true
		result.Action = ActionRankingUnchanged
	default:
		current := existing.Rank.Float64()
		result.Action = ActionRankingConflict
		result.CurrentRank = &current
		result.Error = fmt.Sprintf(
			"Player already exists in season with rank %s. New rank: %s",
			existing.Rank.String(), newRank.String())
	}
	return result
}
