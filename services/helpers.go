package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/euchre-tournament/realtime"
	"github.com/Dosada05/euchre-tournament/repositories"
	"github.com/Dosada05/euchre-tournament/storage"
)

// TxRunner runs fn inside one database transaction, committing when fn
// returns nil and rolling back otherwise.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error
}

type sqlTxRunner struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewSQLTxRunner(db *sql.DB, logger *slog.Logger) TxRunner {
	return &sqlTxRunner{db: db, logger: logger}
}

func (r *sqlTxRunner) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.logger.Error("rollback failed", slog.Any("error", rbErr), slog.Any("cause", err))
				err = fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)
			}
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("failed to commit transaction: %w", cErr)
		}
	}()
	return fn(tx)
}

// Notifier pushes live updates to the viewers of a tournament.
type Notifier interface {
	Publish(tournamentID int, typ realtime.MessageType, payload any)
}

// ReportPublisher stores a rendered standings report.
type ReportPublisher interface {
	Publish(ctx context.Context, report storage.StandingsReport) (*storage.UploadResult, error)
}

type nopNotifier struct{}

func (nopNotifier) Publish(int, realtime.MessageType, any) {}

// handleRepositoryError translates repository sentinels into service ones.
func handleRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrGameNotFound):
		return ErrGameNotFound
	case errors.Is(err, repositories.ErrStandingNotFound):
		return ErrStandingNotFound
	case errors.Is(err, repositories.ErrPlayerNotFound),
		errors.Is(err, repositories.ErrTeamNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, repositories.ErrTournamentNameConflict):
		return ErrTournamentNameConflict
	case errors.Is(err, repositories.ErrPlayerConflict),
		errors.Is(err, repositories.ErrTeamNameConflict),
		errors.Is(err, repositories.ErrGameConflict):
		return fmt.Errorf("%w: %v", ErrNameConflict, err)
	case errors.Is(err, repositories.ErrInvalidReference):
		return fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	return err
}
