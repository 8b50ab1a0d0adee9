// Package app provides the business service behind the HTTP API: player
// and season management, rankings, and the derived statistics views.
package app

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/seasonal/ladder/internal/adapters/cache"
	"github.com/seasonal/ladder/internal/adapters/repository"
	"github.com/seasonal/ladder/internal/auth"
	"github.com/seasonal/ladder/internal/domain/model"
	"github.com/seasonal/ladder/internal/domain/rank"
	"github.com/seasonal/ladder/internal/domain/season"
	"github.com/seasonal/ladder/internal/domain/stats"
	"github.com/seasonal/ladder/internal/domain/tablesort"
	"github.com/seasonal/ladder/pkg/logger"
	"github.com/seasonal/ladder/pkg/metrics"
)

// Service implements the API dependencies for the ladder system. All
// operations are synchronous reads and read-modify-writes against the
// record store.
type Service struct {
	store     repository.Store
	standings cache.Standings
	logger    logger.Logger
	newID     func() string
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the record store backing the service.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithStandingsCache sets the standings cache.
func WithStandingsCache(c cache.Standings) Option {
	return func(s *Service) {
		if c != nil {
			s.standings = c
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIDGenerator overrides id generation, used by tests for
// deterministic ids.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// New constructs a Service. Without options it runs on an in-memory
// store with no cache.
func New(opts ...Option) *Service {
	s := &Service{
		store:     repository.NewMemStore(),
		standings: cache.NewNoop(),
		logger:    logger.Get(),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// validateUniqueName fails when a record of the kind already uses the
// trimmed name, compared case-insensitively.
func (s *Service) validateUniqueName(ctx context.Context, kind repository.Kind, name string) error {
	exists, err := s.store.NameExists(ctx, kind, name)
	if err != nil {
		return err
	}
	if exists {
		return &DuplicateNameError{Kind: kind, Name: strings.TrimSpace(name)}
	}
	return nil
}

// CreatePlayer creates a player and, when seasonID is non-empty, adds
// them to that season without a rating.
func (s *Service) CreatePlayer(ctx context.Context, name, seasonID string) (model.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Player{}, ErrNameRequired
	}
	if err := s.validateUniqueName(ctx, repository.KindPlayer, name); err != nil {
		return model.Player{}, err
	}

	p := model.Player{ID: s.newID(), Name: name}
	if err := s.store.CreatePlayer(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return model.Player{}, &DuplicateNameError{Kind: repository.KindPlayer, Name: name}
		}
		return model.Player{}, err
	}

	if seasonID != "" {
		r := model.SeasonRanking{SeasonID: seasonID, PlayerID: p.ID}
		if err := s.store.CreateRanking(ctx, r); err != nil {
			return model.Player{}, err
		}
		s.invalidateStandings(ctx, seasonID)
	}

	metrics.RecordPlayerCreated()
	s.logger.Info(ctx, "player created", logger.String("player_id", p.ID), logger.String("name", p.Name))
	return p, nil
}

// CreateSeason creates a season with a unique display name.
func (s *Service) CreateSeason(ctx context.Context, name string) (model.Season, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Season{}, ErrNameRequired
	}
	if err := s.validateUniqueName(ctx, repository.KindSeason, name); err != nil {
		return model.Season{}, err
	}

	sn := model.Season{ID: s.newID(), Name: name}
	if err := s.store.CreateSeason(ctx, sn); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return model.Season{}, &DuplicateNameError{Kind: repository.KindSeason, Name: name}
		}
		return model.Season{}, err
	}

	metrics.RecordSeasonCreated()
	s.logger.Info(ctx, "season created", logger.String("season_id", sn.ID), logger.String("name", sn.Name))
	return sn, nil
}

// Seasons returns every season, most recent first.
func (s *Service) Seasons(ctx context.Context) ([]model.Season, error) {
	seasons, err := s.store.Seasons(ctx)
	if err != nil {
		return nil, err
	}
	return season.SortChronologically(seasons, func(sn model.Season) string { return sn.Name }), nil
}

// AddPlayerToSeason adds an existing player to a season, unranked.
func (s *Service) AddPlayerToSeason(ctx context.Context, seasonID, playerID string) error {
	r := model.SeasonRanking{SeasonID: seasonID, PlayerID: playerID}
	if err := s.store.CreateRanking(ctx, r); err != nil {
		return err
	}
	s.invalidateStandings(ctx, seasonID)
	return nil
}

// RemovePlayerFromSeason removes a player's membership from a season.
func (s *Service) RemovePlayerFromSeason(ctx context.Context, seasonID, playerID string) error {
	if err := s.store.DeleteRanking(ctx, seasonID, playerID); err != nil {
		return err
	}
	s.invalidateStandings(ctx, seasonID)
	return nil
}

// UpdateRanking sets a player's rating in a season, addressed by player
// name as the roster UI submits it.
func (s *Service) UpdateRanking(ctx context.Context, seasonID, playerName string, value float64) error {
	if err := rank.Validate(value); err != nil {
		return err
	}
	p, err := s.store.PlayerByName(ctx, playerName)
	if err != nil {
		return err
	}

	rating := rank.FromFloat(value)
	if err := s.store.UpdateRank(ctx, seasonID, p.ID, &rating); err != nil {
		return err
	}

	s.invalidateStandings(ctx, seasonID)
	metrics.RecordRankingUpdated()
	s.logger.Info(ctx, "ranking updated",
		logger.String("season_id", seasonID),
		logger.String("player", p.Name),
		logger.Float64("rank", value),
	)
	return nil
}

// UpdatePlayerGender sets or clears a player's gender.
func (s *Service) UpdatePlayerGender(ctx context.Context, playerID string, g *model.Gender) error {
	if g != nil && !g.Valid() {
		return ErrInvalidGender
	}
	return s.store.UpdatePlayerGender(ctx, playerID, g)
}

// BulkUpdateGender sets the gender for every listed player and returns
// how many records were updated.
func (s *Service) BulkUpdateGender(ctx context.Context, playerIDs []string, g *model.Gender) (int, error) {
	if len(playerIDs) == 0 {
		return 0, ErrEmptyRoster
	}
	if g != nil && !g.Valid() {
		return 0, ErrInvalidGender
	}
	n, err := s.store.BulkUpdateGender(ctx, playerIDs, g)
	if err != nil {
		return 0, err
	}
	s.logger.Info(ctx, "bulk gender update", logger.Int("updated", n))
	return n, nil
}

// SeasonStandings returns the season's roster rows ordered by the given
// sort state. The unsorted rows are served from the standings cache when
// one is configured.
func (s *Service) SeasonStandings(ctx context.Context, seasonID string, state tablesort.State) ([]tablesort.PlayerRow, error) {
	if _, err := s.store.Season(ctx, seasonID); err != nil {
		return nil, err
	}
	if state.Field == "" {
		state = tablesort.State{Field: tablesort.FieldRank, Direction: tablesort.Asc}
	}

	rows, hit, err := s.standings.Get(ctx, seasonID)
	if err != nil {
		s.logger.Warn(ctx, "standings cache read failed", logger.Error(err))
	}
	if hit {
		metrics.RecordStandingsCacheHit()
	} else {
		metrics.RecordStandingsCacheMiss()
		rankings, err := s.store.SeasonRankings(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		rows = make([]tablesort.PlayerRow, 0, len(rankings))
		for _, r := range rankings {
			p, err := s.store.Player(ctx, r.PlayerID)
			if err != nil {
				return nil, err
			}
			rows = append(rows, tablesort.PlayerRow{PlayerID: p.ID, Name: p.Name, Rank: r.Rank})
		}
		if err := s.standings.Set(ctx, seasonID, rows); err != nil {
			s.logger.Warn(ctx, "standings cache write failed", logger.Error(err))
		}
	}

	return tablesort.SortPlayers(rows, state), nil
}

// PlayerStats computes the season-history statistics for one player.
func (s *Service) PlayerStats(ctx context.Context, playerID string) (stats.PlayerStats, error) {
	if _, err := s.store.Player(ctx, playerID); err != nil {
		return stats.PlayerStats{}, err
	}
	rankings, err := s.store.PlayerRankings(ctx, playerID)
	if err != nil {
		return stats.PlayerStats{}, err
	}

	history := make([]stats.SeasonRanking, 0, len(rankings))
	for _, r := range rankings {
		sn, err := s.store.Season(ctx, r.SeasonID)
		if err != nil {
			return stats.PlayerStats{}, err
		}
		history = append(history, stats.SeasonRanking{
			SeasonID:   sn.ID,
			SeasonName: sn.Name,
			Rank:       r.Rank,
		})
	}
	return stats.CalculatePlayerStats(history), nil
}

// Players returns every player with their per-season ratings, filtered
// by gender bucket and sorted by name.
func (s *Service) Players(ctx context.Context, filter stats.GenderFilter) ([]stats.PlayerWithRatings, error) {
	players, err := s.playersWithRatings(ctx)
	if err != nil {
		return nil, err
	}
	if filter == "" {
		filter = stats.FilterAll
	}
	return stats.SortPlayersByName(stats.FilterPlayersByGender(players, filter)), nil
}

// GenderStatistics aggregates all players into gender buckets.
func (s *Service) GenderStatistics(ctx context.Context) (stats.PlayerStatistics, error) {
	players, err := s.playersWithRatings(ctx)
	if err != nil {
		return stats.PlayerStatistics{}, err
	}
	return stats.CalculatePlayerStatistics(players), nil
}

func (s *Service) playersWithRatings(ctx context.Context) ([]stats.PlayerWithRatings, error) {
	players, err := s.store.Players(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]stats.PlayerWithRatings, 0, len(players))
	for _, p := range players {
		rankings, err := s.store.PlayerRankings(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		seasons := make([]stats.SeasonRating, 0, len(rankings))
		for _, r := range rankings {
			seasons = append(seasons, stats.SeasonRating{Rank: r.Rank})
		}
		out = append(out, stats.PlayerWithRatings{
			ID:      p.ID,
			Name:    p.Name,
			Gender:  p.Gender,
			Seasons: seasons,
		})
	}
	return out, nil
}

// Users returns all user accounts, newest first.
func (s *Service) Users(ctx context.Context) ([]model.User, error) {
	return s.store.Users(ctx)
}

// UpdateUserRole changes a user's role. An admin cannot move their own
// role below ADMIN; that guards against locking every admin out.
func (s *Service) UpdateUserRole(ctx context.Context, callerID, userID string, role model.Role) (model.User, error) {
	if !role.Valid() {
		return model.User{}, ErrInvalidRole
	}
	if callerID == userID && role != model.RoleAdmin {
		caller, err := s.store.User(ctx, callerID)
		if err != nil {
			return model.User{}, err
		}
		if auth.HasRole(caller.Role, model.RoleAdmin) {
			return model.User{}, ErrSelfDemotion
		}
	}
	if err := s.store.UpdateUserRole(ctx, userID, role); err != nil {
		return model.User{}, err
	}
	u, err := s.store.User(ctx, userID)
	if err != nil {
		return model.User{}, err
	}
	s.logger.Info(ctx, "user role updated", logger.String("user_id", userID), logger.String("role", string(role)))
	return u, nil
}

func (s *Service) invalidateStandings(ctx context.Context, seasonID string) {
	if err := s.standings.Invalidate(ctx, seasonID); err != nil {
		s.logger.Warn(ctx, "standings cache invalidation failed",
			logger.String("season_id", seasonID), logger.Error(err))
	}
}
