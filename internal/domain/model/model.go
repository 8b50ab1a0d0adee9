// Package model contains domain records passed between layers.
package model

import (
	"time"

	"github.com/seasonal/ladder/internal/domain/rank"
)

// Gender is the self-reported gender of a player. A nil *Gender means
// the player has not set one.
type Gender string

// Recognized gender values. Anything else is treated as unspecified by
// the statistics layer and rejected at the write boundary.
const (
	GenderMale      Gender = "MALE"
	GenderFemale    Gender = "FEMALE"
	GenderNonBinary Gender = "NON_BINARY"
)

// Valid reports whether g is one of the recognized gender values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderNonBinary:
		return true
	}
	return false
}

// Role is an access level for administrative operations.
type Role string

// Roles, in ascending order of privilege.
const (
	RoleUser      Role = "USER"
	RoleOrganizer Role = "ORGANIZER"
	RoleAdmin     Role = "ADMIN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}

// Player is a ladder participant. Names are unique case-insensitively.
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Gender    *Gender   `json:"gender"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Season is a named competition period. The display name has the form
// "<SubSeason> <Year>", e.g. "Summer 2024", and is unique
// case-insensitively.
type Season struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// SeasonRanking links one player to one season with an optional rating.
// A nil Rank means the player was added to the season but not yet rated.
// At most one SeasonRanking exists per (player, season) pair.
type SeasonRanking struct {
	SeasonID  string       `json:"season_id"`
	PlayerID  string       `json:"player_id"`
	Rank      *rank.Rating `json:"rank"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// User is an account that can operate the administration surface.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
