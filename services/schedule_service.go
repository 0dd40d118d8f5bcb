package services

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/euchre-tournament/brackets"
	"github.com/Dosada05/euchre-tournament/models"
	"github.com/Dosada05/euchre-tournament/realtime"
	"github.com/Dosada05/euchre-tournament/repositories"
	"github.com/Dosada05/euchre-tournament/standings"
)

// PlayoffFieldSize is the number of round robin teams that reach the semis.
const PlayoffFieldSize = 4

type SchedulePayload struct {
	Stage models.Stage `json:"stage"`
	Games int          `json:"games"`
}

type ScheduleService interface {
	GenerateSeedRound(ctx context.Context, tournamentID int) ([]models.Game, error)
	GenerateRoundRobin(ctx context.Context, tournamentID int) ([]models.Game, error)
	GeneratePlayoffRound(ctx context.Context, tournamentID int, stage models.Stage) ([]models.Game, error)
	ListGames(ctx context.Context, tournamentID int, stage models.Stage) ([]models.Game, error)
}

type scheduleService struct {
	tx             TxRunner
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	teamRepo       repositories.TeamRepository
	gameRepo       repositories.GameRepository
	standingRepo   repositories.StandingRepository
	notifier       Notifier
	bestOf         int
	gamePoints     int
	logger         *slog.Logger
}

func NewScheduleService(
	tx TxRunner,
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
	gameRepo repositories.GameRepository,
	standingRepo repositories.StandingRepository,
	notifier Notifier,
	bestOf, gamePoints int,
	logger *slog.Logger,
) ScheduleService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &scheduleService{
		tx:             tx,
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		teamRepo:       teamRepo,
		gameRepo:       gameRepo,
		standingRepo:   standingRepo,
		notifier:       notifier,
		bestOf:         bestOf,
		gamePoints:     gamePoints,
		logger:         logger,
	}
}

// GenerateSeedRound seats every player for the seed rounds by draw number.
func (s *scheduleService) GenerateSeedRound(ctx context.Context, tournamentID int) ([]models.Game, error) {
	t, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	players, err := s.playerRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	slices.SortFunc(players, func(a, b models.Player) int {
		if c := cmp.Compare(a.Num, b.Num); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	entities := make([]models.Entity, len(players))
	for i, p := range players {
		entities[i] = models.Entity{ID: p.ID, Seed: i + 1, Name: p.Name}
	}

	gen, err := brackets.NewGenerator(models.StageSeed)
	if err != nil {
		return nil, err
	}
	games, err := gen.Generate(brackets.GenerateParams{Entities: entities, Rounds: t.SeedRounds})
	if err != nil {
		return nil, fmt.Errorf("seed round for tournament %d: %w", tournamentID, err)
	}
	if err := s.replaceStage(ctx, t, models.StageSeed, games, nil); err != nil {
		return nil, err
	}
	return games, nil
}

// GenerateRoundRobin seeds teams from their players' seeds, deals them into
// divisions and schedules each division.
func (s *scheduleService) GenerateRoundRobin(ctx context.Context, tournamentID int) ([]models.Game, error) {
	t, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	var (
		players []models.Player
		teams   []models.Team
	)
	g, gctx := errgroup.WithContext(ctx)
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
	if len(teams) == 0 {
		return nil, fmt.Errorf("%w: no teams formed", ErrPrerequisiteMissing)
	}

	playerSeeds := make(map[models.EntityID]int, len(players))
	for _, p := range players {
		if p.PlayerSeed != nil {
			playerSeeds[p.ID] = *p.PlayerSeed
		}
	}
	seeded, err := standings.SeedTeams(teams, playerSeeds)
	if err != nil {
		return nil, err
	}
	divisions, err := brackets.SplitDivisions(seeded, t.Divisions)
	if err != nil {
		return nil, err
	}

	gen, err := brackets.NewGenerator(models.StageRoundRobin)
	if err != nil {
		return nil, err
	}
	perDivision := make([][]models.Game, len(divisions))
	dg := new(errgroup.Group)
	for i, div := range divisions {
		dg.Go(func() error {
			games, err := gen.Generate(brackets.GenerateParams{
				Entities: div.Entities,
				Rounds:   t.TournRounds,
				Division: div.Number,
			})
			if err != nil {
				return fmt.Errorf("division %d: %w", div.Number, err)
			}
			perDivision[i] = games
			return nil
		})
	}
	if err := dg.Wait(); err != nil {
		return nil, err
	}
	var games []models.Game
	for _, dgames := range perDivision {
		games = append(games, dgames...)
	}

	teamSeed := make(map[models.EntityID]int, len(seeded))
	for _, e := range seeded {
		teamSeed[e.ID] = e.Seed
	}
	for _, div := range divisions {
		for _, e := range div.Entities {
			i := slices.IndexFunc(teams, func(tm models.Team) bool { return tm.ID == e.ID })
			teams[i].TeamSeed = models.IntPtr(teamSeed[e.ID])
			teams[i].Division = models.IntPtr(div.Number)
			teams[i].DivSeed = models.IntPtr(e.Seed)
		}
	}

	seedTeams := func(exec repositories.SQLExecutor) error {
		return s.teamRepo.UpdateSeeding(ctx, exec, teams)
	}
	if err := s.replaceStage(ctx, t, models.StageRoundRobin, games, seedTeams); err != nil {
		return nil, err
	}
	return games, nil
}

// GeneratePlayoffRound builds the semifinals from the round robin standings
// or the finals from the semifinal series winners.
func (s *scheduleService) GeneratePlayoffRound(ctx context.Context, tournamentID int, stage models.Stage) ([]models.Game, error) {
	if !stage.IsPlayoff() {
		return nil, fmt.Errorf("%w: %q is not a playoff stage", ErrInvalidStage, stage)
	}
	t, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	var field []models.Entity
	if stage == models.StageFinals {
		field, err = s.finalsField(ctx, tournamentID)
	} else {
		field, err = s.semisField(ctx, tournamentID)
	}
	if err != nil {
		return nil, err
	}

	gen, err := brackets.NewGenerator(stage)
	if err != nil {
		return nil, err
	}
	games, err := gen.Generate(brackets.GenerateParams{Entities: field, BestOf: s.bestOf})
	if err != nil {
		return nil, err
	}
	if err := s.replaceStage(ctx, t, stage, games, nil); err != nil {
		return nil, err
	}
	return games, nil
}

// semisField is the top of the round robin standings by final rank, so
// division leaders come first when there are several divisions.
func (s *scheduleService) semisField(ctx context.Context, tournamentID int) ([]models.Entity, error) {
	rows, err := s.standingRepo.ListByStage(ctx, nil, tournamentID, models.StageRoundRobin)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	if len(rows) < PlayoffFieldSize {
		return nil, fmt.Errorf("%w: need %d round robin standings, have %d", ErrPrerequisiteMissing, PlayoffFieldSize, len(rows))
	}
	slices.SortFunc(rows, func(a, b models.Standing) int {
		if c := cmp.Compare(a.FinalRank(), b.FinalRank()); c != 0 {
			return c
		}
		if c := cmp.Compare(b.WinPct, a.WinPct); c != 0 {
			return c
		}
		if c := cmp.Compare(b.PointsPct, a.PointsPct); c != 0 {
			return c
		}
		return cmp.Compare(a.EntityID, b.EntityID)
	})
	field := make([]models.Entity, PlayoffFieldSize)
	for i := range field {
		field[i] = models.Entity{ID: rows[i].EntityID, Seed: i + 1}
	}
	return field, nil
}

// finalsField is the semifinal series winners. Their seeds come from the
// stored semifinal games, so standings edited after the semifinals were
// drawn do not change who advances.
func (s *scheduleService) finalsField(ctx context.Context, tournamentID int) ([]models.Entity, error) {
	semis, err := s.gameRepo.ListByStage(ctx, nil, tournamentID, models.StageSemis)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	if len(semis) == 0 {
		return nil, fmt.Errorf("%w: semifinals have not been scheduled", ErrPrerequisiteMissing)
	}
	series, err := brackets.TallySeries(semis, s.bestOf, s.gamePoints)
	if err != nil {
		return nil, err
	}
	field, err := brackets.SeriesField(series)
	if err != nil {
		return nil, err
	}
	field, err = brackets.AdvanceWinners(field, semis, s.bestOf, s.gamePoints)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPrerequisiteMissing, err)
	}
	return field, nil
}

// replaceStage swaps a stage's schedule for games in one transaction, as
// long as none of the existing games has been scored. The existing games
// stay locked from that check until the swap commits.
func (s *scheduleService) replaceStage(ctx context.Context, t *models.Tournament, stage models.Stage, games []models.Game, extra func(exec repositories.SQLExecutor) error) error {
	ptrs := make([]*models.Game, len(games))
	for i := range games {
		games[i].TournamentID = t.ID
		ptrs[i] = &games[i]
	}
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		existing, err := s.gameRepo.LockStage(ctx, exec, t.ID, stage)
		if err != nil {
			return err
		}
		for _, g := range existing {
			if !g.Pending() {
				return fmt.Errorf("%w: game %q", ErrScheduleLocked, g.Label)
			}
		}
		if err := s.gameRepo.DeleteByStage(ctx, exec, t.ID, stage); err != nil {
			return err
		}
		if err := s.gameRepo.BatchCreate(ctx, exec, ptrs); err != nil {
			return err
		}
		if extra != nil {
			if err := extra(exec); err != nil {
				return err
			}
		}
		return s.tournamentRepo.UpdateStage(ctx, exec, t.ID, stage)
	})
	if err != nil {
		return handleRepositoryError(err)
	}

	s.logger.Info("schedule generated",
		slog.Int("tournament_id", t.ID), slog.String("stage", string(stage)), slog.Int("games", len(games)))
	s.notifier.Publish(t.ID, realtime.MessageScheduleUpdated, SchedulePayload{Stage: stage, Games: len(games)})
	return nil
}

func (s *scheduleService) ListGames(ctx context.Context, tournamentID int, stage models.Stage) ([]models.Game, error) {
	if !stage.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStage, stage)
	}
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, handleRepositoryError(err)
	}
	games, err := s.gameRepo.ListByStage(ctx, nil, tournamentID, stage)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return games, nil
}
