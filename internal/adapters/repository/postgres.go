package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seasonal/ladder/internal/domain/model"
	"github.com/seasonal/ladder/internal/domain/rank"
)

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to the database, verifies the connection,
// and applies the schema migrations.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS players (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			gender TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_players_name_ci ON players (LOWER(name))`,
		`CREATE TABLE IF NOT EXISTS seasons (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_seasons_name_ci ON seasons (LOWER(name))`,
		`CREATE TABLE IF NOT EXISTS season_rankings (
			season_id UUID NOT NULL REFERENCES seasons(id) ON DELETE CASCADE,
			player_id UUID NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			rank NUMERIC(4,2),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (season_id, player_id)
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'USER',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, m := range migrations {
		if _, err := s.pool.Exec(ctx, m); err != nil {
			return fmt.Errorf("executing migration: %w", err)
		}
	}
	return nil
}

// isUniqueViolation reports whether err is a unique-constraint failure.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func genderOf(g *model.Gender) *string {
	if g == nil {
		return nil
	}
	s := string(*g)
	return &s
}

func scanGender(s *string) *model.Gender {
	if s == nil {
		return nil
	}
	g := model.Gender(*s)
	return &g
}

func rankOf(r *rank.Rating) *float64 {
	if r == nil {
		return nil
	}
	v := r.Float64()
	return &v
}

func scanRank(v *float64) *rank.Rating {
	if v == nil {
		return nil
	}
	r := rank.FromFloat(*v)
	return &r
}

// CreatePlayer stores a new player.
func (s *PostgresStore) CreatePlayer(ctx context.Context, p model.Player) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO players (id, name, gender) VALUES ($1, $2, $3)`,
		p.ID, p.Name, genderOf(p.Gender))
	if isUniqueViolation(err) {
		return ErrDuplicateName
	}
	if err != nil {
		return fmt.Errorf("inserting player: %w", err)
	}
	return nil
}

func (s *PostgresStore) scanPlayer(row pgx.Row) (model.Player, error) {
	var p model.Player
	var gender *string
	if err := row.Scan(&p.ID, &p.Name, &gender, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Player{}, ErrNotFound
		}
		return model.Player{}, fmt.Errorf("scanning player: %w", err)
	}
	p.Gender = scanGender(gender)
	return p, nil
}

// Player returns a player by id.
func (s *PostgresStore) Player(ctx context.Context, id string) (model.Player, error) {
	return s.scanPlayer(s.pool.QueryRow(ctx,
		`SELECT id, name, gender, created_at, updated_at FROM players WHERE id = $1`, id))
}

// PlayerByName returns a player by exact trimmed name.
func (s *PostgresStore) PlayerByName(ctx context.Context, name string) (model.Player, error) {
	return s.scanPlayer(s.pool.QueryRow(ctx,
		`SELECT id, name, gender, created_at, updated_at FROM players WHERE name = $1`,
		strings.TrimSpace(name)))
}

// Players returns all players, oldest first.
func (s *PostgresStore) Players(ctx context.Context) ([]model.Player, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, gender, created_at, updated_at FROM players ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("querying players: %w", err)
	}
	defer rows.Close()

	var out []model.Player
	for rows.Next() {
		p, err := s.scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdatePlayerGender sets or clears a player's gender.
func (s *PostgresStore) UpdatePlayerGender(ctx context.Context, id string, g *model.Gender) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE players SET gender = $2, updated_at = now() WHERE id = $1`, id, genderOf(g))
	if err != nil {
		return fmt.Errorf("updating player gender: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// BulkUpdateGender sets the gender for every listed player.
func (s *PostgresStore) BulkUpdateGender(ctx context.Context, ids []string, g *model.Gender) (int, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE players SET gender = $2, updated_at = now() WHERE id = ANY($1)`, ids, genderOf(g))
	if err != nil {
		return 0, fmt.Errorf("updating player genders: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// CreateSeason stores a new season.
func (s *PostgresStore) CreateSeason(ctx context.Context, sn model.Season) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO seasons (id, name) VALUES ($1, $2)`, sn.ID, sn.Name)
	if isUniqueViolation(err) {
		return ErrDuplicateName
	}
	if err != nil {
		return fmt.Errorf("inserting season: %w", err)
	}
	return nil
}

// Season returns a season by id.
func (s *PostgresStore) Season(ctx context.Context, id string) (model.Season, error) {
	var sn model.Season
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, created_at FROM seasons WHERE id = $1`, id).
		Scan(&sn.ID, &sn.Name, &sn.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Season{}, ErrNotFound
	}
	if err != nil {
		return model.Season{}, fmt.Errorf("scanning season: %w", err)
	}
	return sn, nil
}

// Seasons returns all seasons, oldest first.
func (s *PostgresStore) Seasons(ctx context.Context) ([]model.Season, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, created_at FROM seasons ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("querying seasons: %w", err)
	}
	defer rows.Close()

	var out []model.Season
	for rows.Next() {
		var sn model.Season
		if err := rows.Scan(&sn.ID, &sn.Name, &sn.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning season: %w", err)
		}
		out = append(out, sn)
	}
	return out, rows.Err()
}

// NameExists reports whether the trimmed name is taken within the kind.
func (s *PostgresStore) NameExists(ctx context.Context, kind Kind, name string) (bool, error) {
	table := "players"
	if kind == KindSeason {
		table = "seasons"
	}
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM `+table+` WHERE LOWER(name) = LOWER($1))`,
		strings.TrimSpace(name)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking name: %w", err)
	}
	return exists, nil
}

// CreateRanking adds a player to a season.
func (s *PostgresStore) CreateRanking(ctx context.Context, r model.SeasonRanking) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO season_rankings (season_id, player_id, rank) VALUES ($1, $2, $3)`,
		r.SeasonID, r.PlayerID, rankOf(r.Rank))
	if isUniqueViolation(err) {
		return ErrDuplicateRanking
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign key
			return ErrNotFound
		}
		return fmt.Errorf("inserting ranking: %w", err)
	}
	return nil
}

// Ranking returns the membership row for (season, player).
func (s *PostgresStore) Ranking(ctx context.Context, seasonID, playerID string) (model.SeasonRanking, error) {
	var r model.SeasonRanking
	var v *float64
	err := s.pool.QueryRow(ctx,
		`SELECT season_id, player_id, rank, created_at, updated_at
		 FROM season_rankings WHERE season_id = $1 AND player_id = $2`,
		seasonID, playerID).
		Scan(&r.SeasonID, &r.PlayerID, &v, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.SeasonRanking{}, ErrNotFound
	}
	if err != nil {
		return model.SeasonRanking{}, fmt.Errorf("scanning ranking: %w", err)
	}
	r.Rank = scanRank(v)
	return r, nil
}

// UpdateRank sets or clears the rating of an existing membership.
func (s *PostgresStore) UpdateRank(ctx context.Context, seasonID, playerID string, rating *rank.Rating) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE season_rankings SET rank = $3, updated_at = now()
		 WHERE season_id = $1 AND player_id = $2`,
		seasonID, playerID, rankOf(rating))
	if err != nil {
		return fmt.Errorf("updating rank: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRanking removes a player from a season.
func (s *PostgresStore) DeleteRanking(ctx context.Context, seasonID, playerID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM season_rankings WHERE season_id = $1 AND player_id = $2`,
		seasonID, playerID)
	if err != nil {
		return fmt.Errorf("deleting ranking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) queryRankings(ctx context.Context, query string, arg any) ([]model.SeasonRanking, error) {
	rows, err := s.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("querying rankings: %w", err)
	}
	defer rows.Close()

	var out []model.SeasonRanking
	for rows.Next() {
		var r model.SeasonRanking
		var v *float64
		if err := rows.Scan(&r.SeasonID, &r.PlayerID, &v, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning ranking: %w", err)
		}
		r.Rank = scanRank(v)
		out = append(out, r)
	}
	return out, rows.Err()
}

// SeasonRankings returns all membership rows of one season, oldest first.
func (s *PostgresStore) SeasonRankings(ctx context.Context, seasonID string) ([]model.SeasonRanking, error) {
	return s.queryRankings(ctx,
		`SELECT season_id, player_id, rank, created_at, updated_at
		 FROM season_rankings WHERE season_id = $1 ORDER BY created_at`, seasonID)
}

// PlayerRankings returns all membership rows of one player, oldest first.
func (s *PostgresStore) PlayerRankings(ctx context.Context, playerID string) ([]model.SeasonRanking, error) {
	return s.queryRankings(ctx,
		`SELECT season_id, player_id, rank, created_at, updated_at
		 FROM season_rankings WHERE player_id = $1 ORDER BY created_at`, playerID)
}

// Users returns all users, newest first.
func (s *PostgresStore) Users(ctx context.Context) ([]model.User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, email, role, created_at FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// User returns a user by id.
func (s *PostgresStore) User(ctx context.Context, id string) (model.User, error) {
	var u model.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email, role, created_at FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("scanning user: %w", err)
	}
	return u, nil
}

// CreateUser stores a new user account.
func (s *PostgresStore) CreateUser(ctx context.Context, u model.User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, name, email, role) VALUES ($1, $2, $3, $4)`,
		u.ID, u.Name, u.Email, u.Role)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// UpdateUserRole changes a user's role.
func (s *PostgresStore) UpdateUserRole(ctx context.Context, id string, role model.Role) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET role = $2 WHERE id = $1`, id, role)
	if err != nil {
		return fmt.Errorf("updating user role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
