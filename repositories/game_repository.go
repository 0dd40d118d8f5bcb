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
	ErrGameNotFound = errors.New("game not found")
	ErrGameConflict = errors.New("game label already exists in this tournament")
)

type GameRepository interface {
	BatchCreate(ctx context.Context, exec SQLExecutor, games []*models.Game) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Game, error)
	ListByStage(ctx context.Context, exec SQLExecutor, tournamentID int, stage models.Stage) ([]models.Game, error)
	LockStage(ctx context.Context, exec SQLExecutor, tournamentID int, stage models.Stage) ([]models.Game, error)
	UpdateScore(ctx context.Context, exec SQLExecutor, id int, side1Points, side2Points *int) error
	DeleteByStage(ctx context.Context, exec SQLExecutor, tournamentID int, stage models.Stage) error
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

func (r *postgresGameRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const insertGameQuery = `
	INSERT INTO games
	    (tournament_id, stage, label, division, round, table_num, side1, side2, side1_points, side2_points)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING id`

// BatchCreate inserts games in order and fills in their ids. Inside a
// transaction the insert is prepared once.
func (r *postgresGameRepository) BatchCreate(ctx context.Context, exec SQLExecutor, games []*models.Game) error {
	if len(games) == 0 {
		return nil
	}
	executor := r.getExecutor(exec)

	var stmt *sql.Stmt
	if tx, ok := executor.(*sql.Tx); ok {
		var err error
		stmt, err = tx.PrepareContext(ctx, insertGameQuery)
		if err != nil {
			return fmt.Errorf("BatchCreate failed to prepare statement: %w", err)
		}
		defer stmt.Close()
	}

	for _, g := range games {
		args := []interface{}{
			g.TournamentID, g.Stage, g.Label, g.Division, g.Round, g.Table,
			pq.Array(idsToArray(g.Side1.Entities)), pq.Array(idsToArray(g.Side2.Entities)),
			g.Side1.Points, g.Side2.Points,
		}
		var row *sql.Row
		if stmt != nil {
			row = stmt.QueryRowContext(ctx, args...)
		} else {
			row = executor.QueryRowContext(ctx, insertGameQuery, args...)
		}
		if err := row.Scan(&g.ID); err != nil {
			return fmt.Errorf("BatchCreate failed for game %q: %w", g.Label, constraintError(err, ErrGameConflict, ErrInvalidReference))
		}
	}
	return nil
}

const gameColumns = `id, tournament_id, stage, label, division, round, table_num, side1, side2, side1_points, side2_points`

func (r *postgresGameRepository) scanGame(row rowScanner) (*models.Game, error) {
	var (
		g            models.Game
		side1, side2 []int64
	)
	err := row.Scan(&g.ID, &g.TournamentID, &g.Stage, &g.Label, &g.Division, &g.Round, &g.Table,
		pq.Array(&side1), pq.Array(&side2), &g.Side1.Points, &g.Side2.Points)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	g.Side1.Entities = idsFromArray(side1)
	g.Side2.Entities = idsFromArray(side2)
	return &g, nil
}

func (r *postgresGameRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`
	return r.scanGame(r.getExecutor(exec).QueryRowContext(ctx, query, id))
}

// ListByStage returns a stage's games in schedule order: division, round,
// table, with each round's bye last.
func (r *postgresGameRepository) ListByStage(ctx context.Context, exec SQLExecutor, tournamentID int, stage models.Stage) ([]models.Game, error) {
	query := `SELECT ` + gameColumns + `
		FROM games
		WHERE tournament_id = $1 AND stage = $2
		ORDER BY division ASC, round ASC, table_num ASC NULLS LAST, id ASC`
	return r.queryGames(ctx, exec, query, tournamentID, stage)
}

// LockStage reads a stage's games with FOR UPDATE. Run inside a transaction,
// score updates on those rows wait until it ends.
func (r *postgresGameRepository) LockStage(ctx context.Context, exec SQLExecutor, tournamentID int, stage models.Stage) ([]models.Game, error) {
	query := `SELECT ` + gameColumns + `
		FROM games
		WHERE tournament_id = $1 AND stage = $2
		ORDER BY id ASC
		FOR UPDATE`
	return r.queryGames(ctx, exec, query, tournamentID, stage)
}

func (r *postgresGameRepository) queryGames(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) ([]models.Game, error) {
	rows, err := r.getExecutor(exec).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]models.Game, 0)
	for rows.Next() {
		g, scanErr := r.scanGame(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		games = append(games, *g)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}

func (r *postgresGameRepository) UpdateScore(ctx context.Context, exec SQLExecutor, id int, side1Points, side2Points *int) error {
	result, err := r.getExecutor(exec).ExecContext(ctx,
		`UPDATE games SET side1_points = $1, side2_points = $2, updated_at = NOW() WHERE id = $3`,
		side1Points, side2Points, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) DeleteByStage(ctx context.Context, exec SQLExecutor, tournamentID int, stage models.Stage) error {
	_, err := r.getExecutor(exec).ExecContext(ctx,
		`DELETE FROM games WHERE tournament_id = $1 AND stage = $2`, tournamentID, stage)
	return err
}
