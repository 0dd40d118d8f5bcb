package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/euchre-tournament/models"
)

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerConflict = errors.New("player name or number already taken in this tournament")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Player, error)
	UpdateSeeds(ctx context.Context, exec SQLExecutor, tournamentID int, seeds map[models.EntityID]int) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPlayerRepository) Create(ctx context.Context, p *models.Player) error {
	query := `
		INSERT INTO players (tournament_id, name, num, reigning_champ)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.getExecutor(nil).QueryRowContext(ctx, query, p.TournamentID, p.Name, p.Num, p.ReigningChamp).Scan(&p.ID)
	if err != nil {
		return constraintError(err, ErrPlayerConflict, ErrInvalidReference)
	}
	return nil
}

// ListByTournament returns players by seed once seeded, by draw number before.
func (r *postgresPlayerRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Player, error) {
	query := `
		SELECT id, tournament_id, name, num, player_seed, reigning_champ
		FROM players
		WHERE tournament_id = $1
		ORDER BY player_seed ASC NULLS LAST, num ASC, id ASC`
	rows, err := r.getExecutor(exec).QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.TournamentID, &p.Name, &p.Num, &p.PlayerSeed, &p.ReigningChamp); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *postgresPlayerRepository) UpdateSeeds(ctx context.Context, exec SQLExecutor, tournamentID int, seeds map[models.EntityID]int) error {
	executor := r.getExecutor(exec)
	for id, seed := range seeds {
		result, err := executor.ExecContext(ctx,
			`UPDATE players SET player_seed = $1 WHERE id = $2 AND tournament_id = $3`, seed, id, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to seed player %d: %w", id, err)
		}
		if err := checkAffectedRows(result, ErrPlayerNotFound); err != nil {
			return fmt.Errorf("player %d: %w", id, err)
		}
	}
	return nil
}
