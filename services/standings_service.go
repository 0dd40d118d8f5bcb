package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/euchre-tournament/models"
	"github.com/Dosada05/euchre-tournament/realtime"
	"github.com/Dosada05/euchre-tournament/repositories"
	"github.com/Dosada05/euchre-tournament/standings"
	"github.com/Dosada05/euchre-tournament/storage"
)

type StandingsPayload struct {
	Stage     models.Stage      `json:"stage"`
	Standings []models.Standing `json:"standings"`
}

type StandingsService interface {
	Tabulate(ctx context.Context, tournamentID int, stage models.Stage) ([]models.Standing, error)
	List(ctx context.Context, tournamentID int, stage models.Stage) ([]models.Standing, error)
	SetRankAdjustment(ctx context.Context, standingID int, rankAdj *int) error
}

type standingsService struct {
	tx             TxRunner
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	teamRepo       repositories.TeamRepository
	gameRepo       repositories.GameRepository
	standingRepo   repositories.StandingRepository
	ranker         *standings.Ranker
	reports        ReportPublisher
	notifier       Notifier
	logger         *slog.Logger
}

func NewStandingsService(
	tx TxRunner,
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
	gameRepo repositories.GameRepository,
	standingRepo repositories.StandingRepository,
	ranker *standings.Ranker,
	reports ReportPublisher,
	notifier Notifier,
	logger *slog.Logger,
) StandingsService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &standingsService{
		tx:             tx,
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		teamRepo:       teamRepo,
		gameRepo:       gameRepo,
		standingRepo:   standingRepo,
		ranker:         ranker,
		reports:        reports,
		notifier:       notifier,
		logger:         logger,
	}
}

// group is one independently ranked set: the whole field, or one division.
type group struct {
	division int
	entities []models.Entity
	games    []models.Game
	ranked   []models.RankedEntity
}

// Tabulate recomputes a stage's standings from its game log. Seed round
// ranks also become the players' seeds.
func (s *standingsService) Tabulate(ctx context.Context, tournamentID int, stage models.Stage) ([]models.Standing, error) {
	if !stage.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStage, stage)
	}
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, handleRepositoryError(err)
	}

	var (
		games   []models.Game
		players []models.Player
		teams   []models.Team
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		games, err = s.gameRepo.ListByStage(gctx, nil, tournamentID, stage)
		return err
	})
	g.Go(func() error {
		var err error
		players, err = s.playerRepo.ListByTournament(gctx, nil, tournamentID)
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListByTournament(gctx, nil, tournamentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, handleRepositoryError(err)
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("%w: no %s games scheduled", ErrPrerequisiteMissing, stage)
	}

	// player and team ids come from separate sequences and overlap
	names := make(map[models.EntityID]string)
	if stage == models.StageSeed {
		for _, p := range players {
			names[p.ID] = p.Name
		}
	} else {
		for _, t := range teams {
			names[t.ID] = t.Name
		}
	}

	groups, err := stageGroups(stage, players, teams, games)
	if err != nil {
		return nil, err
	}

	rg := new(errgroup.Group)
	for _, grp := range groups {
		rg.Go(func() error {
			records, err := s.ranker.ComputeRecords(grp.entities, grp.games)
			if err != nil {
				return err
			}
			grp.ranked, err = s.ranker.AssignRanks(records, grp.games)
			if err != nil {
				return fmt.Errorf("division %d: %w", grp.division, err)
			}
			return nil
		})
	}
	if err := rg.Wait(); err != nil {
		return nil, err
	}

	var rows []*models.Standing
	for _, grp := range groups {
		for _, r := range grp.ranked {
			rows = append(rows, models.NewStanding(tournamentID, stage, grp.division, r))
		}
	}

	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.standingRepo.ReplaceStage(ctx, exec, tournamentID, stage, rows); err != nil {
			return err
		}
		if stage == models.StageSeed {
			return s.playerRepo.UpdateSeeds(ctx, exec, tournamentID, standings.PlayerSeeds(groups[0].ranked))
		}
		return nil
	})
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	out := make([]models.Standing, len(rows))
	for i, r := range rows {
		out[i] = *r
	}
	s.logger.Info("standings tabulated",
		slog.Int("tournament_id", tournamentID), slog.String("stage", string(stage)), slog.Int("entities", len(out)))

	s.publishReports(ctx, tournamentID, stage, groups, names)
	s.notifier.Publish(tournamentID, realtime.MessageStandingsUpdated, StandingsPayload{Stage: stage, Standings: out})
	return out, nil
}

// publishReports uploads one CSV per group. Failures are logged; the
// standings are already stored.
func (s *standingsService) publishReports(ctx context.Context, tournamentID int, stage models.Stage, groups []*group, names map[models.EntityID]string) {
	if s.reports == nil {
		return
	}
	for _, grp := range groups {
		res, err := s.reports.Publish(ctx, storage.StandingsReport{
			TournamentID: tournamentID,
			Stage:        stage,
			Division:     grp.division,
			Rows:         grp.ranked,
			Names:        names,
		})
		if err != nil {
			s.logger.Warn("standings report not published",
				slog.Int("tournament_id", tournamentID), slog.Int("division", grp.division), slog.Any("error", err))
			continue
		}
		s.logger.Info("standings report published", slog.String("location", res.Location))
	}
}

// stageGroups splits a stage into the sets ranked independently. Round
// robin ranks within divisions; every other stage ranks the whole field.
func stageGroups(stage models.Stage, players []models.Player, teams []models.Team, games []models.Game) ([]*group, error) {
	switch {
	case stage == models.StageSeed:
		entities := make([]models.Entity, len(players))
		for i, p := range players {
			entities[i] = models.Entity{ID: p.ID, Seed: i + 1, Name: p.Name}
		}
		return []*group{{entities: entities, games: games}}, nil

	case stage == models.StageRoundRobin:
		byDiv := make(map[int]*group)
		for _, t := range teams {
			if t.Division == nil {
				return nil, fmt.Errorf("%w: team %d has no division", ErrPrerequisiteMissing, t.ID)
			}
			grp, ok := byDiv[*t.Division]
			if !ok {
				grp = &group{division: *t.Division}
				byDiv[*t.Division] = grp
			}
			grp.entities = append(grp.entities, models.Entity{ID: t.ID, Seed: len(grp.entities) + 1, Name: t.Name})
		}
		for _, g := range games {
			if grp, ok := byDiv[g.Division]; ok {
				grp.games = append(grp.games, g)
			}
		}
		groups := make([]*group, 0, len(byDiv))
		for _, grp := range byDiv {
			groups = append(groups, grp)
		}
		slices.SortFunc(groups, func(a, b *group) int { return a.division - b.division })
		return groups, nil

	default:
		seen := make(map[models.EntityID]bool)
		var entities []models.Entity
		for _, g := range games {
			for _, id := range g.Entities() {
				if !seen[id] {
					seen[id] = true
					entities = append(entities, models.Entity{ID: id, Seed: len(entities) + 1})
				}
			}
		}
		return []*group{{entities: entities, games: games}}, nil
	}
}

func (s *standingsService) List(ctx context.Context, tournamentID int, stage models.Stage) ([]models.Standing, error) {
	if !stage.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStage, stage)
	}
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, handleRepositoryError(err)
	}
	rows, err := s.standingRepo.ListByStage(ctx, nil, tournamentID, stage)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return rows, nil
}

// SetRankAdjustment stores a manual rank override, or clears it when nil.
func (s *standingsService) SetRankAdjustment(ctx context.Context, standingID int, rankAdj *int) error {
	if rankAdj != nil && *rankAdj < 1 {
		return fmt.Errorf("%w: rank adjustment must be positive", ErrValidationFailed)
	}
	return handleRepositoryError(s.standingRepo.SetRankAdj(ctx, standingID, rankAdj))
}
