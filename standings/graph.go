package standings

import (
	"slices"

	"github.com/Dosada05/euchre-tournament/models"
)

// duel is the head-to-head ledger of one pair, kept from the point of view
// of the lower entity id.
type duel struct {
	lowWins, highWins int
	lowPts, highPts   int
}

// beatGraph is the directed winner->loser graph of a cohort, restricted to
// games where cohort members faced each other.
type beatGraph struct {
	members []models.EntityID
	index   map[models.EntityID]int
	adj     [][]bool
	duels   map[[2]models.EntityID]*duel
	h2h     map[models.EntityID]models.Record
}

func pairKey(a, b models.EntityID) [2]models.EntityID {
	if a > b {
		a, b = b, a
	}
	return [2]models.EntityID{a, b}
}

func newBeatGraph(cohort []models.EntityID, games []models.Game, threshold int) (*beatGraph, error) {
	members := slices.Clone(cohort)
	slices.Sort(members)
	members = slices.Compact(members)

	g := &beatGraph{
		members: members,
		index:   make(map[models.EntityID]int, len(members)),
		adj:     make([][]bool, len(members)),
		duels:   make(map[[2]models.EntityID]*duel),
		h2h:     make(map[models.EntityID]models.Record, len(members)),
	}
	for i, id := range members {
		g.index[id] = i
		g.adj[i] = make([]bool, len(members))
		g.h2h[id] = models.Record{EntityID: id}
	}

	for _, game := range games {
		if err := ValidateGame(game, threshold); err != nil {
			return nil, err
		}
		if !game.Concluded() {
			continue
		}
		win, lose := game.Side1, game.Side2
		if *game.Side2.Points > *game.Side1.Points {
			win, lose = lose, win
		}
		winners := g.inCohort(win.Entities)
		losers := g.inCohort(lose.Entities)
		if len(winners) == 0 || len(losers) == 0 {
			continue
		}

		for _, w := range winners {
			g.tally(w, true, *win.Points, *lose.Points)
			for _, l := range losers {
				g.adj[g.index[w]][g.index[l]] = true
				g.meet(w, l, *win.Points, *lose.Points)
			}
		}
		for _, l := range losers {
			g.tally(l, false, *lose.Points, *win.Points)
		}
	}
	return g, nil
}

func (g *beatGraph) inCohort(ids []models.EntityID) []models.EntityID {
	var out []models.EntityID
	for _, id := range ids {
		if _, ok := g.index[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// tally adds one game to an entity's head-to-head record.
func (g *beatGraph) tally(id models.EntityID, won bool, ptsFor, ptsAgainst int) {
	rec := g.h2h[id]
	if won {
		rec.Wins++
	} else {
		rec.Losses++
	}
	rec.PointsFor += ptsFor
	rec.PointsAgainst += ptsAgainst
	g.h2h[id] = rec
}

func (g *beatGraph) meet(winner, loser models.EntityID, winPts, losePts int) {
	key := pairKey(winner, loser)
	d, ok := g.duels[key]
	if !ok {
		d = &duel{}
		g.duels[key] = d
	}
	if winner == key[0] {
		d.lowWins++
		d.lowPts += winPts
		d.highPts += losePts
	} else {
		d.highWins++
		d.highPts += winPts
		d.lowPts += losePts
	}
}

// beats reports whether a strictly won the pair's meetings: more wins, or
// the same wins with more points.
func (g *beatGraph) beats(a, b models.EntityID) bool {
	d, ok := g.duels[pairKey(a, b)]
	if !ok {
		return false
	}
	aWins, bWins, aPts, bPts := d.lowWins, d.highWins, d.lowPts, d.highPts
	if a > b {
		aWins, bWins, aPts, bPts = bWins, aWins, bPts, aPts
	}
	return aWins > bWins || (aWins == bWins && aPts > bPts)
}
