// Package repository defines the record store interface and errors.
package repository

import (
	"context"

	"github.com/seasonal/ladder/internal/domain/model"
	"github.com/seasonal/ladder/internal/domain/rank"
)

// Kind names an entity namespace for uniqueness checks.
type Kind string

// Entity kinds with case-insensitively unique names.
const (
	KindPlayer Kind = "player"
	KindSeason Kind = "season"
)

// Store provides read/write access to players, seasons, rankings, and
// users. Implementations must enforce case-insensitive name uniqueness
// for players and seasons and at most one ranking per (season, player).
type Store interface {
	// CreatePlayer stores a new player.
	// Returns ErrDuplicateName when the name is already taken.
	CreatePlayer(ctx context.Context, p model.Player) error

	// Player returns a player by id. Returns ErrNotFound if unknown.
	Player(ctx context.Context, id string) (model.Player, error)

	// PlayerByName returns a player by exact (trimmed) name.
	// Returns ErrNotFound if unknown.
	PlayerByName(ctx context.Context, name string) (model.Player, error)

	// Players returns all players.
	Players(ctx context.Context) ([]model.Player, error)

	// UpdatePlayerGender sets or clears a player's gender.
	// Returns ErrNotFound if the player is unknown.
	UpdatePlayerGender(ctx context.Context, id string, g *model.Gender) error

	// BulkUpdateGender sets the gender for every listed player and
	// returns how many records matched. Unknown ids are skipped.
	BulkUpdateGender(ctx context.Context, ids []string, g *model.Gender) (int, error)

	// CreateSeason stores a new season.
	// Returns ErrDuplicateName when the name is already taken.
	CreateSeason(ctx context.Context, s model.Season) error

	// Season returns a season by id. Returns ErrNotFound if unknown.
	Season(ctx context.Context, id string) (model.Season, error)

	// Seasons returns all seasons.
	Seasons(ctx context.Context) ([]model.Season, error)

	// NameExists reports whether a record of the given kind already uses
	// the name, compared case-insensitively after trimming. One read, no
	// writes.
	NameExists(ctx context.Context, kind Kind, name string) (bool, error)

	// CreateRanking adds a player to a season, optionally with a rating.
	// Returns ErrDuplicateRanking when the pair already exists and
	// ErrNotFound when the player or season is unknown.
	CreateRanking(ctx context.Context, r model.SeasonRanking) error

	// Ranking returns the membership row for (season, player).
	// Returns ErrNotFound if the pair is unknown.
	Ranking(ctx context.Context, seasonID, playerID string) (model.SeasonRanking, error)

	// UpdateRank sets or clears the rating of an existing membership.
	// Returns ErrNotFound if the pair is unknown.
	UpdateRank(ctx context.Context, seasonID, playerID string, r *rank.Rating) error

	// DeleteRanking removes a player from a season.
	// Returns ErrNotFound if the pair is unknown.
	DeleteRanking(ctx context.Context, seasonID, playerID string) error

	// SeasonRankings returns all membership rows of one season.
	SeasonRankings(ctx context.Context, seasonID string) ([]model.SeasonRanking, error)

	// PlayerRankings returns all membership rows of one player.
	PlayerRankings(ctx context.Context, playerID string) ([]model.SeasonRanking, error)

	// Users returns all users, newest first.
	Users(ctx context.Context) ([]model.User, error)

	// User returns a user by id. Returns ErrNotFound if unknown.
	User(ctx context.Context, id string) (model.User, error)

	// CreateUser stores a new user account.
	CreateUser(ctx context.Context, u model.User) error

	// UpdateUserRole changes a user's role.
	// Returns ErrNotFound if the user is unknown.
	UpdateUserRole(ctx context.Context, id string, role model.Role) error
}
