package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/euchre-tournament/models"
	"github.com/Dosada05/euchre-tournament/realtime"
	"github.com/Dosada05/euchre-tournament/repositories"
	"github.com/Dosada05/euchre-tournament/standings"
)

type ScoreInput struct {
	Side1Points *int `json:"side1_points"`
	Side2Points *int `json:"side2_points"`
}

type GameService interface {
	GetByID(ctx context.Context, id int) (*models.Game, error)
	SubmitScore(ctx context.Context, gameID int, input ScoreInput) (*models.Game, error)
}

type gameService struct {
	gameRepo   repositories.GameRepository
	notifier   Notifier
	gamePoints int
	logger     *slog.Logger
}

func NewGameService(gameRepo repositories.GameRepository, notifier Notifier, gamePoints int, logger *slog.Logger) GameService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &gameService{
		gameRepo:   gameRepo,
		notifier:   notifier,
		gamePoints: gamePoints,
		logger:     logger,
	}
}

func (s *gameService) GetByID(ctx context.Context, id int) (*models.Game, error) {
	g, err := s.gameRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return g, nil
}

// SubmitScore records a game's final points. Both sides nil clears a score
// entered by mistake; any other combination must name exactly one winner.
func (s *gameService) SubmitScore(ctx context.Context, gameID int, input ScoreInput) (*models.Game, error) {
	g, err := s.GetByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g.IsBye() {
		return nil, fmt.Errorf("%w: game %q is a bye", standings.ErrInconsistentGameRecord, g.Label)
	}

	g.Side1.Points, g.Side2.Points = input.Side1Points, input.Side2Points
	if err := standings.ValidateGame(*g, s.gamePoints); err != nil {
		return nil, err
	}
	if err := s.gameRepo.UpdateScore(ctx, nil, g.ID, g.Side1.Points, g.Side2.Points); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to store score for game %d: %w", g.ID, err)
	}

	s.logger.Info("score submitted", slog.Int("game_id", g.ID), slog.String("label", g.Label))
	s.notifier.Publish(g.TournamentID, realtime.MessageGameUpdated, g)
	return g, nil
}
