package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"homerun-fantasy/internal/domain"
	"homerun-fantasy/internal/logging"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const (
	dbMaxOpenConns = 1
	dbMaxIdleConns = 1
)

// SQLiteStore persists teams as JSON documents in a sqlite table. Roster and
// per-player home runs are stored as JSON columns; the rest are plain fields
// so the leaderboard can read them without decoding documents.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and runs migrations.
func OpenSQLite(path string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(dbMaxOpenConns)
	db.SetMaxIdleConns(dbMaxIdleConns)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set %s: %w", pragma, err)
		}
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	logging.Info(logger, "team store ready", slog.String("path", path))
	return &SQLiteStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateTeam stores a new team record.
func (s *SQLiteStore) CreateTeam(ctx context.Context, team domain.Team) error {
	roster, err := json.Marshal(team.Roster)
	if err != nil {
		return fmt.Errorf("failed to encode roster: %w", err)
	}
	perPlayer, err := json.Marshal(team.PerPlayerHomeRuns)
	if err != nil {
		return fmt.Errorf("failed to encode per-player home runs: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO teams (id, name, owner_id, paid, roster, per_player_hrs, aggregate_hrs, created_at, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		team.ID, team.Name, team.OwnerID, team.Paid, string(roster), string(perPlayer),
		team.AggregateHomeRuns, team.CreatedAt, team.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

// ListTeams returns all teams ordered by creation time.
func (s *SQLiteStore) ListTeams(ctx context.Context) ([]domain.Team, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, owner_id, paid, roster, per_player_hrs, aggregate_hrs, created_at, last_updated
		FROM teams ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []domain.Team
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

// GetTeam retrieves a team by id.
func (s *SQLiteStore) GetTeam(ctx context.Context, id string) (domain.Team, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, owner_id, paid, roster, per_player_hrs, aggregate_hrs, created_at, last_updated
		FROM teams WHERE id = ?`, id)

	team, err := scanTeam(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Team{}, ErrTeamNotFound
	}
	if err != nil {
		return domain.Team{}, err
	}
	return team, nil
}

// CountTeamsByOwner returns how many teams an owner has created.
func (s *SQLiteStore) CountTeamsByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teams WHERE owner_id = ?`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count teams: %w", err)
	}
	return count, nil
}

// UpdateTeamStats writes the reconciliation result for one team in a single
// UPDATE statement.
func (s *SQLiteStore) UpdateTeamStats(ctx context.Context, id string, update domain.StatsUpdate) error {
	perPlayer, err := json.Marshal(update.PerPlayerHomeRuns)
	if err != nil {
		return fmt.Errorf("failed to encode per-player home runs: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE teams SET per_player_hrs = ?, aggregate_hrs = ?, last_updated = ?
		WHERE id = ?`,
		string(perPlayer), update.AggregateHomeRuns, update.LastUpdated, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update team stats: %w", err)
	}
	return requireRow(res)
}

// SetPaid toggles the manual payment flag.
func (s *SQLiteStore) SetPaid(ctx context.Context, id string, paid bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE teams SET paid = ? WHERE id = ?`, paid, id)
	if err != nil {
		return fmt.Errorf("failed to set paid flag: %w", err)
	}
	return requireRow(res)
}

// DeleteTeam removes a team by id.
func (s *SQLiteStore) DeleteTeam(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTeam(row rowScanner) (domain.Team, error) {
	var (
		team      domain.Team
		roster    string
		perPlayer string
	)
	err := row.Scan(
		&team.ID, &team.Name, &team.OwnerID, &team.Paid, &roster, &perPlayer,
		&team.AggregateHomeRuns, &team.CreatedAt, &team.LastUpdated,
	)
	if err != nil {
		return domain.Team{}, err
	}
	if err := json.Unmarshal([]byte(roster), &team.Roster); err != nil {
		return domain.Team{}, fmt.Errorf("failed to decode roster for team %s: %w", team.ID, err)
	}
	if err := json.Unmarshal([]byte(perPlayer), &team.PerPlayerHomeRuns); err != nil {
		return domain.Team{}, fmt.Errorf("failed to decode per-player home runs for team %s: %w", team.ID, err)
	}
	return team, nil
}
