package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/euchre-tournament/models"
	"github.com/Dosada05/euchre-tournament/repositories"
)

type CreateTournamentInput struct {
	Name        string  `json:"name"`
	Venue       *string `json:"venue,omitempty"`
	SeedRounds  int     `json:"seed_rounds,omitempty"`
	TournRounds int     `json:"tourn_rounds,omitempty"`
	Divisions   int     `json:"divisions,omitempty"`
}

type AddPlayerInput struct {
	Name          string `json:"name"`
	Num           int    `json:"num"`
	ReigningChamp bool   `json:"reigning_champ,omitempty"`
}

type AddTeamInput struct {
	Name    string            `json:"name,omitempty"`
	Players []models.EntityID `json:"players"`
}

type TournamentService interface {
	Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context) ([]models.Tournament, error)
	AddPlayer(ctx context.Context, tournamentID int, input AddPlayerInput) (*models.Player, error)
	ListPlayers(ctx context.Context, tournamentID int) ([]models.Player, error)
	AddTeam(ctx context.Context, tournamentID int, input AddTeamInput) (*models.Team, error)
	ListTeams(ctx context.Context, tournamentID int) ([]models.Team, error)
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	teamRepo       repositories.TeamRepository
	logger         *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		teamRepo:       teamRepo,
		logger:         logger,
	}
}

func (s *tournamentService) Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: tournament name is required", ErrValidationFailed)
	}
	t := &models.Tournament{
		Name:        name,
		Venue:       input.Venue,
		SeedRounds:  orDefault(input.SeedRounds, models.DefaultSeedRounds),
		TournRounds: orDefault(input.TournRounds, models.DefaultTournRounds),
		Divisions:   orDefault(input.Divisions, models.DefaultDivisions),
		Stage:       models.StageSeed,
	}
	if t.SeedRounds < 1 || t.TournRounds < 1 || t.Divisions < 1 {
		return nil, fmt.Errorf("%w: rounds and divisions must be positive", ErrValidationFailed)
	}
	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		return nil, handleRepositoryError(err)
	}
	s.logger.Info("tournament created", slog.Int("tournament_id", t.ID), slog.String("name", t.Name))
	return t, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return t, nil
}

func (s *tournamentService) List(ctx context.Context) ([]models.Tournament, error) {
	list, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return list, nil
}

func (s *tournamentService) AddPlayer(ctx context.Context, tournamentID int, input AddPlayerInput) (*models.Player, error) {
	if _, err := s.GetByID(ctx, tournamentID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Num < 1 {
		return nil, fmt.Errorf("%w: player name and a positive number are required", ErrValidationFailed)
	}
	p := &models.Player{
		TournamentID:  tournamentID,
		Name:          name,
		Num:           input.Num,
		ReigningChamp: input.ReigningChamp,
	}
	if err := s.playerRepo.Create(ctx, p); err != nil {
		return nil, handleRepositoryError(err)
	}
	return p, nil
}

func (s *tournamentService) ListPlayers(ctx context.Context, tournamentID int) ([]models.Player, error) {
	if _, err := s.GetByID(ctx, tournamentID); err != nil {
		return nil, err
	}
	players, err := s.playerRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return players, nil
}

// AddTeam forms a partnership of two players, or three when a player would
// otherwise be left over. A player can belong to one team only.
func (s *tournamentService) AddTeam(ctx context.Context, tournamentID int, input AddTeamInput) (*models.Team, error) {
	if len(input.Players) < 2 || len(input.Players) > 3 {
		return nil, fmt.Errorf("%w: a team has two or three players, got %d", ErrValidationFailed, len(input.Players))
	}
	players, err := s.ListPlayers(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	teams, err := s.teamRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	names := make(map[models.EntityID]string, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
	}
	taken := make(map[models.EntityID]bool)
	for _, t := range teams {
		for _, id := range t.Players {
			taken[id] = true
		}
	}

	seen := make(map[models.EntityID]bool, len(input.Players))
	parts := make([]string, 0, len(input.Players))
	for _, id := range input.Players {
		name, ok := names[id]
		switch {
		case !ok:
			return nil, fmt.Errorf("%w: player %d is not in tournament %d", ErrValidationFailed, id, tournamentID)
		case seen[id]:
			return nil, fmt.Errorf("%w: player %d listed twice", ErrValidationFailed, id)
		case taken[id]:
			return nil, fmt.Errorf("%w: player %d already has a team", ErrNameConflict, id)
		}
		seen[id] = true
		parts = append(parts, name)
	}

	team := &models.Team{
		TournamentID: tournamentID,
		Name:         strings.TrimSpace(input.Name),
		Players:      input.Players,
	}
	if team.Name == "" {
		team.Name = strings.Join(parts, "/")
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, handleRepositoryError(err)
	}
	return team, nil
}

func (s *tournamentService) ListTeams(ctx context.Context, tournamentID int) ([]models.Team, error) {
	if _, err := s.GetByID(ctx, tournamentID); err != nil {
		return nil, err
	}
	teams, err := s.teamRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return teams, nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
