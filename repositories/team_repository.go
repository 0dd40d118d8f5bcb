package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Dosada05/euchre-tournament/models"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name already taken in this tournament")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Team, error)
	UpdateSeeding(ctx context.Context, exec SQLExecutor, teams []models.Team) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) Create(ctx context.Context, t *models.Team) error {
	query := `
		INSERT INTO teams (tournament_id, name, players)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.getExecutor(nil).QueryRowContext(ctx, query, t.TournamentID, t.Name, pq.Array(idsToArray(t.Players))).Scan(&t.ID)
	if err != nil {
		return constraintError(err, ErrTeamNameConflict, ErrInvalidReference)
	}
	return nil
}

// ListByTournament returns teams by division and division seed when those
// are set, otherwise by team seed and id.
func (r *postgresTeamRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Team, error) {
	query := `
		SELECT id, tournament_id, name, players, team_seed, division, div_seed
		FROM teams
		WHERE tournament_id = $1
		ORDER BY division ASC NULLS LAST, div_seed ASC NULLS LAST, team_seed ASC NULLS LAST, id ASC`
	rows, err := r.getExecutor(exec).QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var (
			t       models.Team
			players []int64
		)
		if err := rows.Scan(&t.ID, &t.TournamentID, &t.Name, pq.Array(&players), &t.TeamSeed, &t.Division, &t.DivSeed); err != nil {
			return nil, err
		}
		t.Players = idsFromArray(players)
		teams = append(teams, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

// UpdateSeeding stores team seed, division and division seed for each team.
func (r *postgresTeamRepository) UpdateSeeding(ctx context.Context, exec SQLExecutor, teams []models.Team) error {
	executor := r.getExecutor(exec)
	for _, t := range teams {
		result, err := executor.ExecContext(ctx,
			`UPDATE teams SET team_seed = $1, division = $2, div_seed = $3 WHERE id = $4`,
			t.TeamSeed, t.Division, t.DivSeed, t.ID)
		if err != nil {
			return fmt.Errorf("failed to seed team %d: %w", t.ID, err)
		}
		if err := checkAffectedRows(result, ErrTeamNotFound); err != nil {
			return fmt.Errorf("team %d: %w", t.ID, err)
		}
	}
	return nil
}
