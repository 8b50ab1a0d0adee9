package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/seasonal/ladder/internal/domain/model"
	"github.com/seasonal/ladder/internal/domain/rank"
)

// MemStore implements Store with mutex-guarded in-memory maps. It is the
// default store and the one the test suites run against.
type MemStore struct {
	mu sync.RWMutex

	players map[string]model.Player        // id -> player
	seasons map[string]model.Season        // id -> season
	users   map[string]model.User          // id -> user
	ranks   map[string]model.SeasonRanking // seasonID+"/"+playerID -> ranking

	now func() time.Time
}

// MemOption applies a configuration option to the MemStore.
type MemOption func(*MemStore)

// WithClock overrides the time source, used by tests for deterministic
// timestamps.
func WithClock(now func() time.Time) MemOption {
	return func(s *MemStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemStore creates an empty in-memory store.
func NewMemStore(opts ...MemOption) *MemStore {
	s := &MemStore{
		players: make(map[string]model.Player),
		seasons: make(map[string]model.Season),
		users:   make(map[string]model.User),
		ranks:   make(map[string]model.SeasonRanking),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func rankKey(seasonID, playerID string) string {
	return seasonID + "/" + playerID
}

// CreatePlayer stores a new player.
func (s *MemStore) CreatePlayer(_ context.Context, p model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(KindPlayer, p.Name) {
		return ErrDuplicateName
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
		p.UpdatedAt = p.CreatedAt
	}
	s.players[p.ID] = p
	return nil
}

// Player returns a player by id.
func (s *MemStore) Player(_ context.Context, id string) (model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[id]
	if !ok {
		return model.Player{}, ErrNotFound
	}
	return p, nil
}

// PlayerByName returns a player by exact trimmed name.
func (s *MemStore) PlayerByName(_ context.Context, name string) (model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = strings.TrimSpace(name)
	for _, p := range s.players {
		if p.Name == name {
			return p, nil
		}
	}
	return model.Player{}, ErrNotFound
}

// Players returns all players sorted by creation time.
func (s *MemStore) Players(_ context.Context) ([]model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// UpdatePlayerGender sets or clears a player's gender.
func (s *MemStore) UpdatePlayerGender(_ context.Context, id string, g *model.Gender) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.players[id]
	if !ok {
		return ErrNotFound
	}
	p.Gender = g
	p.UpdatedAt = s.now()
	s.players[id] = p
	return nil
}

// BulkUpdateGender sets the gender for every listed player.
func (s *MemStore) BulkUpdateGender(_ context.Context, ids []string, g *model.Gender) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := 0
	for _, id := range ids {
		p, ok := s.players[id]
		if !ok {
			continue
		}
		p.Gender = g
		p.UpdatedAt = s.now()
		s.players[id] = p
		updated++
	}
	return updated, nil
}

// CreateSeason stores a new season.
func (s *MemStore) CreateSeason(_ context.Context, sn model.Season) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nameTaken(KindSeason, sn.Name) {
		return ErrDuplicateName
	}
	if sn.CreatedAt.IsZero() {
		sn.CreatedAt = s.now()
	}
	s.seasons[sn.ID] = sn
	return nil
}

// Season returns a season by id.
func (s *MemStore) Season(_ context.Context, id string) (model.Season, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sn, ok := s.seasons[id]
	if !ok {
		return model.Season{}, ErrNotFound
	}
	return sn, nil
}

// Seasons returns all seasons sorted by creation time.
func (s *MemStore) Seasons(_ context.Context) ([]model.Season, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Season, 0, len(s.seasons))
	for _, sn := range s.seasons {
		out = append(out, sn)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// NameExists reports whether the trimmed name is taken within the kind.
func (s *MemStore) NameExists(_ context.Context, kind Kind, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.nameTaken(kind, name), nil
}

// nameTaken is the lock-free core of NameExists; callers hold s.mu.
func (s *MemStore) nameTaken(kind Kind, name string) bool {
	needle := strings.ToLower(strings.TrimSpace(name))
	switch kind {
	case KindPlayer:
		for _, p := range s.players {
			if strings.ToLower(p.Name) == needle {
				return true
			}
		}
	case KindSeason:
		for _, sn := range s.seasons {
			if strings.ToLower(sn.Name) == needle {
				return true
			}
		}
	}
	return false
}

// CreateRanking adds a player to a season.
func (s *MemStore) CreateRanking(_ context.Context, r model.SeasonRanking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seasons[r.SeasonID]; !ok {
		return ErrNotFound
	}
	if _, ok := s.players[r.PlayerID]; !ok {
		return ErrNotFound
	}
	key := rankKey(r.SeasonID, r.PlayerID)
	if _, ok := s.ranks[key]; ok {
		return ErrDuplicateRanking
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
		r.UpdatedAt = r.CreatedAt
	}
	s.ranks[key] = r
	return nil
}

// Ranking returns the membership row for (season, player).
func (s *MemStore) Ranking(_ context.Context, seasonID, playerID string) (model.SeasonRanking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.ranks[rankKey(seasonID, playerID)]
	if !ok {
		return model.SeasonRanking{}, ErrNotFound
	}
	return r, nil
}

// UpdateRank sets or clears the rating of an existing membership.
func (s *MemStore) UpdateRank(_ context.Context, seasonID, playerID string, rating *rank.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := rankKey(seasonID, playerID)
	r, ok := s.ranks[key]
	if !ok {
		return ErrNotFound
	}
	r.Rank = rating
	r.UpdatedAt = s.now()
	s.ranks[key] = r
	return nil
}

// DeleteRanking removes a player from a season.
func (s *MemStore) DeleteRanking(_ context.Context, seasonID, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := rankKey(seasonID, playerID)
	if _, ok := s.ranks[key]; !ok {
		return ErrNotFound
	}
	delete(s.ranks, key)
	return nil
}

// SeasonRankings returns all membership rows of one season, oldest
// membership first.
func (s *MemStore) SeasonRankings(_ context.Context, seasonID string) ([]model.SeasonRanking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.SeasonRanking, 0)
	for _, r := range s.ranks {
		if r.SeasonID == seasonID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// PlayerRankings returns all membership rows of one player, oldest
// membership first.
func (s *MemStore) PlayerRankings(_ context.Context, playerID string) ([]model.SeasonRanking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.SeasonRanking, 0)
	for _, r := range s.ranks {
		if r.PlayerID == playerID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Users returns all users, newest first.
func (s *MemStore) Users(_ context.Context) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// User returns a user by id.
func (s *MemStore) User(_ context.Context, id string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

// CreateUser stores a new user account.
func (s *MemStore) CreateUser(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}
	s.users[u.ID] = u
	return nil
}

// UpdateUserRole changes a user's role.
func (s *MemStore) UpdateUserRole(_ context.Context, id string, role model.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Role = role
	s.users[id] = u
	return nil
}
