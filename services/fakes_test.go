package services

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/Dosada05/euchre-tournament/models"
	"github.com/Dosada05/euchre-tournament/realtime"
	"github.com/Dosada05/euchre-tournament/repositories"
	"github.com/Dosada05/euchre-tournament/standings"
	"github.com/Dosada05/euchre-tournament/storage"
)

// memDB backs every fake repository. A single mutex keeps the parallel
// loaders in the services race free. Each table numbers its rows on its own,
// like a SERIAL column, so player and team ids overlap.
type memDB struct {
	mu          sync.Mutex
	nextID      map[string]int
	tournaments map[int]*models.Tournament
	players     []*models.Player
	teams       []*models.Team
	games       []*models.Game
	standings   []*models.Standing
}

func newMemDB() *memDB {
	return &memDB{tournaments: map[int]*models.Tournament{}, nextID: map[string]int{}}
}

func (m *memDB) id(table string) int {
	if m.nextID[table] == 0 {
		m.nextID[table] = 100
	}
	m.nextID[table]++
	return m.nextID[table]
}

type memTournaments struct{ *memDB }

func (r memTournaments) Create(_ context.Context, t *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.tournaments {
		if existing.Name == t.Name {
			return repositories.ErrTournamentNameConflict
		}
	}
	t.ID = r.id("tournaments")
	cp := *t
	r.tournaments[t.ID] = &cp
	return nil
}

func (r memTournaments) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	cp := *t
	return &cp, nil
}

func (r memTournaments) List(context.Context) ([]models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Tournament, 0, len(r.tournaments))
	for _, t := range r.tournaments {
		out = append(out, *t)
	}
	return out, nil
}

func (r memTournaments) UpdateStage(_ context.Context, _ repositories.SQLExecutor, id int, stage models.Stage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.Stage = stage
	return nil
}

func (r memTournaments) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tournaments, id)
	return nil
}

type memPlayers struct{ *memDB }

func (r memPlayers) Create(_ context.Context, p *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.players {
		if existing.TournamentID == p.TournamentID && (existing.Name == p.Name || existing.Num == p.Num) {
			return repositories.ErrPlayerConflict
		}
	}
	p.ID = models.EntityID(r.id("players"))
	cp := *p
	r.players = append(r.players, &cp)
	return nil
}

func (r memPlayers) ListByTournament(_ context.Context, _ repositories.SQLExecutor, tournamentID int) ([]models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Player
	for _, p := range r.players {
		if p.TournamentID == tournamentID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r memPlayers) UpdateSeeds(_ context.Context, _ repositories.SQLExecutor, _ int, seeds map[models.EntityID]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		if s, ok := seeds[p.ID]; ok {
			p.PlayerSeed = models.IntPtr(s)
		}
	}
	return nil
}

type memTeams struct{ *memDB }

func (r memTeams) Create(_ context.Context, t *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = models.EntityID(r.id("teams"))
	cp := *t
	r.teams = append(r.teams, &cp)
	return nil
}

func (r memTeams) ListByTournament(_ context.Context, _ repositories.SQLExecutor, tournamentID int) ([]models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Team
	for _, t := range r.teams {
		if t.TournamentID == tournamentID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r memTeams) UpdateSeeding(_ context.Context, _ repositories.SQLExecutor, teams []models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range teams {
		for _, stored := range r.teams {
			if stored.ID == t.ID {
				stored.TeamSeed, stored.Division, stored.DivSeed = t.TeamSeed, t.Division, t.DivSeed
			}
		}
	}
	return nil
}

type memGames struct{ *memDB }

func (r memGames) BatchCreate(_ context.Context, _ repositories.SQLExecutor, games []*models.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range games {
		g.ID = r.id("games")
		cp := *g
		r.games = append(r.games, &cp)
	}
	return nil
}

func (r memGames) GetByID(_ context.Context, _ repositories.SQLExecutor, id int) (*models.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.games {
		if g.ID == id {
			cp := *g
			return &cp, nil
		}
	}
	return nil, repositories.ErrGameNotFound
}

func (r memGames) ListByStage(_ context.Context, _ repositories.SQLExecutor, tournamentID int, stage models.Stage) ([]models.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Game
	for _, g := range r.games {
		if g.TournamentID == tournamentID && g.Stage == stage {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r memGames) LockStage(ctx context.Context, exec repositories.SQLExecutor, tournamentID int, stage models.Stage) ([]models.Game, error) {
	return r.ListByStage(ctx, exec, tournamentID, stage)
}

func (r memGames) UpdateScore(_ context.Context, _ repositories.SQLExecutor, id int, p1, p2 *int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.games {
		if g.ID == id {
			g.Side1.Points, g.Side2.Points = p1, p2
			return nil
		}
	}
	return repositories.ErrGameNotFound
}

func (r memGames) DeleteByStage(_ context.Context, _ repositories.SQLExecutor, tournamentID int, stage models.Stage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games = slices.DeleteFunc(r.games, func(g *models.Game) bool {
		return g.TournamentID == tournamentID && g.Stage == stage
	})
	return nil
}

type memStandings struct{ *memDB }

func (r memStandings) ReplaceStage(_ context.Context, _ repositories.SQLExecutor, tournamentID int, stage models.Stage, rows []*models.Standing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	adj := map[models.EntityID]*int{}
	ids := map[models.EntityID]int{}
	for _, s := range r.standings {
		if s.TournamentID == tournamentID && s.Stage == stage {
			adj[s.EntityID], ids[s.EntityID] = s.RankAdj, s.ID
		}
	}
	r.standings = slices.DeleteFunc(r.standings, func(s *models.Standing) bool {
		return s.TournamentID == tournamentID && s.Stage == stage
	})
	for _, s := range rows {
		s.TournamentID, s.Stage = tournamentID, stage
		s.RankAdj = adj[s.EntityID]
		if id, ok := ids[s.EntityID]; ok {
			s.ID = id
		} else {
			s.ID = r.id("standings")
		}
		cp := *s
		r.standings = append(r.standings, &cp)
	}
	return nil
}

func (r memStandings) ListByStage(_ context.Context, _ repositories.SQLExecutor, tournamentID int, stage models.Stage) ([]models.Standing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Standing
	for _, s := range r.standings {
		if s.TournamentID == tournamentID && s.Stage == stage {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r memStandings) SetRankAdj(_ context.Context, id int, rankAdj *int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.standings {
		if s.ID == id {
			s.RankAdj = rankAdj
			return nil
		}
	}
	return repositories.ErrStandingNotFound
}

type noTx struct{}

func (noTx) WithinTx(_ context.Context, fn func(exec repositories.SQLExecutor) error) error {
	return fn(nil)
}

// hookTx runs before ahead of fn, standing in for writes that commit
// between a service's reads and its transaction.
type hookTx struct {
	before func()
}

func (h hookTx) WithinTx(_ context.Context, fn func(exec repositories.SQLExecutor) error) error {
	h.before()
	return fn(nil)
}

type sentMessage struct {
	TournamentID int
	Type         realtime.MessageType
	Payload      any
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
}

func (n *recordingNotifier) Publish(tournamentID int, typ realtime.MessageType, payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMessage{tournamentID, typ, payload})
}

func (n *recordingNotifier) types() []realtime.MessageType {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]realtime.MessageType, len(n.sent))
	for i, m := range n.sent {
		out[i] = m.Type
	}
	return out
}

type recordingReports struct {
	mu      sync.Mutex
	reports []storage.StandingsReport
}

func (r *recordingReports) Publish(_ context.Context, report storage.StandingsReport) (*storage.UploadResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report)
	return &storage.UploadResult{Key: report.Key(), Location: "mem://" + report.Key()}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixture wires every service to one memDB.
type fixture struct {
	db       *memDB
	notifier *recordingNotifier
	reports  *recordingReports

	tournaments TournamentService
	schedule    ScheduleService
	games       GameService
	standings   StandingsService
}

func newFixture() *fixture {
	db := newMemDB()
	f := &fixture{db: db, notifier: &recordingNotifier{}, reports: &recordingReports{}}
	logger := discardLogger()
	tr, pr, tm, gr, sr := memTournaments{db}, memPlayers{db}, memTeams{db}, memGames{db}, memStandings{db}

	f.tournaments = NewTournamentService(tr, pr, tm, logger)
	f.schedule = NewScheduleService(noTx{}, tr, pr, tm, gr, sr, f.notifier, 3, models.GamePoints, logger)
	f.games = NewGameService(gr, f.notifier, models.GamePoints, logger)
	f.standings = NewStandingsService(noTx{}, tr, pr, tm, gr, sr, standings.NewRanker(standings.DefaultOptions()), f.reports, f.notifier, logger)
	return f
}
