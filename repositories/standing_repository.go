package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/Dosada05/euchre-tournament/models"
)

var ErrStandingNotFound = errors.New("standing not found")

type StandingRepository interface {
	ReplaceStage(ctx context.Context, exec SQLExecutor, tournamentID int, stage models.Stage, standings []*models.Standing) error
	ListByStage(ctx context.Context, exec SQLExecutor, tournamentID int, stage models.Stage) ([]models.Standing, error)
	SetRankAdj(ctx context.Context, id int, rankAdj *int) error
}

type postgresStandingRepository struct {
	db *sql.DB
}

func NewPostgresStandingRepository(db *sql.DB) StandingRepository {
	return &postgresStandingRepository{db: db}
}

func (r *postgresStandingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

// ReplaceStage upserts the given rows and drops rows of entities no longer
// tabulated in the stage. Manual rank adjustments survive the upsert.
func (r *postgresStandingRepository) ReplaceStage(ctx context.Context, exec SQLExecutor, tournamentID int, stage models.Stage, standings []*models.Standing) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO standings
		    (tournament_id, stage, division, entity_id, wins, losses, byes, points_for, points_against,
		     win_pct, points_pct, rank, position, tied, cyclic, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT ON CONSTRAINT standings_tournament_id_stage_entity_id_key DO UPDATE SET
		    division = EXCLUDED.division, wins = EXCLUDED.wins, losses = EXCLUDED.losses,
		    byes = EXCLUDED.byes, points_for = EXCLUDED.points_for, points_against = EXCLUDED.points_against,
		    win_pct = EXCLUDED.win_pct, points_pct = EXCLUDED.points_pct, rank = EXCLUDED.rank,
		    position = EXCLUDED.position, tied = EXCLUDED.tied, cyclic = EXCLUDED.cyclic,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, rank_adj`

	now := time.Now()
	keep := make([]int64, 0, len(standings))
	for _, s := range standings {
		s.TournamentID, s.Stage, s.UpdatedAt = tournamentID, stage, now
		err := executor.QueryRowContext(ctx, query,
			s.TournamentID, s.Stage, s.Division, s.EntityID, s.Wins, s.Losses, s.Byes,
			s.PointsFor, s.PointsAgainst, s.WinPct, s.PointsPct, s.Rank, s.Position, s.Tied, s.Cyclic, s.UpdatedAt,
		).Scan(&s.ID, &s.RankAdj)
		if err != nil {
			return fmt.Errorf("failed to store standing for entity %d: %w", s.EntityID, err)
		}
		keep = append(keep, int64(s.EntityID))
	}

	_, err := executor.ExecContext(ctx,
		`DELETE FROM standings WHERE tournament_id = $1 AND stage = $2 AND NOT (entity_id = ANY($3))`,
		tournamentID, stage, pq.Array(keep))
	if err != nil {
		return fmt.Errorf("failed to prune standings: %w", err)
	}
	return nil
}

// ListByStage returns standings by division, then final rank.
func (r *postgresStandingRepository) ListByStage(ctx context.Context, exec SQLExecutor, tournamentID int, stage models.Stage) ([]models.Standing, error) {
	query := `
		SELECT id, tournament_id, stage, division, entity_id, wins, losses, byes, points_for, points_against,
		       win_pct, points_pct, rank, position, tied, cyclic, rank_adj, updated_at
		FROM standings
		WHERE tournament_id = $1 AND stage = $2
		ORDER BY division ASC, COALESCE(rank_adj, rank) ASC, rank ASC`
	rows, err := r.getExecutor(exec).QueryContext(ctx, query, tournamentID, stage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]models.Standing, 0)
	for rows.Next() {
		var s models.Standing
		if err := rows.Scan(&s.ID, &s.TournamentID, &s.Stage, &s.Division, &s.EntityID, &s.Wins, &s.Losses, &s.Byes,
			&s.PointsFor, &s.PointsAgainst, &s.WinPct, &s.PointsPct, &s.Rank, &s.Position, &s.Tied, &s.Cyclic,
			&s.RankAdj, &s.UpdatedAt); err != nil {
			return nil, err
		}
		standings = append(standings, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return standings, nil
}

func (r *postgresStandingRepository) SetRankAdj(ctx context.Context, id int, rankAdj *int) error {
	result, err := r.getExecutor(nil).ExecContext(ctx, `UPDATE standings SET rank_adj = $1 WHERE id = $2`, rankAdj, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrStandingNotFound)
}
