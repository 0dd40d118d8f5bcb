package brackets

import (
	"fmt"
	"slices"

	"github.com/Dosada05/euchre-tournament/models"
)

// DefaultBestOf is the series length for semifinal and final matchups.
const DefaultBestOf = 3

// BuildPlayoffRound pairs a power-of-two field for one single-elimination
// round: best seed against worst, second against second worst, and so on.
// Feed it the survivors of the previous round to get the next one; seeds
// keep their original values so the same rule applies.
func BuildPlayoffRound(ranked []models.Entity) ([]models.Matchup, error) {
	k := len(ranked)
	if k < 2 || k&(k-1) != 0 {
		return nil, fmt.Errorf("%w: got %d entities", ErrInvalidBracketSize, k)
	}

	bySeed := slices.Clone(ranked)
	slices.SortFunc(bySeed, func(a, b models.Entity) int { return a.Seed - b.Seed })
	for i := 1; i < k; i++ {
		if bySeed[i].Seed == bySeed[i-1].Seed {
			return nil, fmt.Errorf("%w: seed %d appears twice", ErrInvalidSeeds, bySeed[i].Seed)
		}
	}

	matchups := make([]models.Matchup, 0, k/2)
	for i := 0; i < k/2; i++ {
		matchups = append(matchups, models.Matchup{
			Round: 1,
			Table: models.IntPtr(i + 1),
			Home:  []int{bySeed[i].Seed},
			Away:  []int{bySeed[k-1-i].Seed},
		})
	}
	return matchups, nil
}

// Series is the running tally of one playoff matchup.
type Series struct {
	Matchup  int              `json:"matchup"`
	Home     models.EntityID  `json:"home"`
	Away     models.EntityID  `json:"away"`
	HomeWins int              `json:"home_wins"`
	AwayWins int              `json:"away_wins"`
	Winner   *models.EntityID `json:"winner,omitempty"`
}

// TallySeries counts match wins per playoff matchup. Games are grouped by
// table number, which holds the matchup number for playoff stages. Games
// played after a series is decided are ignored.
func TallySeries(games []models.Game, bestOf, threshold int) ([]Series, error) {
	if bestOf <= 0 || bestOf%2 == 0 {
		return nil, fmt.Errorf("%w: best-of must be a positive odd number, got %d", ErrInvalidRoundCount, bestOf)
	}
	need := bestOf/2 + 1

	ordered := slices.Clone(games)
	slices.SortStableFunc(ordered, func(a, b models.Game) int { return a.Round - b.Round })

	byMatchup := make(map[int]*Series)
	var keys []int
	for _, g := range ordered {
		if g.IsBye() {
			continue
		}
		if len(g.Side1.Entities) != 1 || len(g.Side2.Entities) != 1 {
			return nil, fmt.Errorf("%w: playoff game %q must have one entity per side", models.ErrInconsistentGameRecord, g.Label)
		}
		s, ok := byMatchup[*g.Table]
		if !ok {
			s = &Series{Matchup: *g.Table, Home: g.Side1.Entities[0], Away: g.Side2.Entities[0]}
			byMatchup[*g.Table] = s
			keys = append(keys, *g.Table)
		}
		if !g.Opposes(s.Home, s.Away) {
			return nil, fmt.Errorf("%w: game %q does not belong to matchup %d", models.ErrInconsistentGameRecord, g.Label, s.Matchup)
		}

		side, err := g.Outcome(threshold)
		if err != nil {
			return nil, err
		}
		if side == 0 || s.Winner != nil {
			continue
		}
		winner := g.Side1.Entities[0]
		if side == 2 {
			winner = g.Side2.Entities[0]
		}
		if winner == s.Home {
			s.HomeWins++
		} else {
			s.AwayWins++
		}
		switch {
		case s.HomeWins == need:
			s.Winner = &s.Home
		case s.AwayWins == need:
			s.Winner = &s.Away
		}
	}

	slices.Sort(keys)
	out := make([]Series, 0, len(keys))
	for _, k := range keys {
		out = append(out, *byMatchup[k])
	}
	return out, nil
}

// SeriesField rebuilds the seeded field a playoff round was generated from.
// Matchup i pairs seed i at home with seed 2n+1-i away, n being the number
// of matchups.
func SeriesField(series []Series) ([]models.Entity, error) {
	n := len(series)
	if n == 0 {
		return nil, fmt.Errorf("%w: no series", ErrInvalidBracketSize)
	}
	field := make([]models.Entity, 0, 2*n)
	for i, s := range series {
		if s.Matchup != i+1 {
			return nil, fmt.Errorf("%w: matchup %d found where %d was expected", ErrInvalidSeeds, s.Matchup, i+1)
		}
		field = append(field,
			models.Entity{ID: s.Home, Seed: s.Matchup},
			models.Entity{ID: s.Away, Seed: 2*n + 1 - s.Matchup})
	}
	slices.SortFunc(field, func(a, b models.Entity) int { return a.Seed - b.Seed })
	return field, nil
}

// AdvanceWinners returns the entities that won their series, in seed order,
// ready for the next BuildPlayoffRound call.
func AdvanceWinners(field []models.Entity, games []models.Game, bestOf, threshold int) ([]models.Entity, error) {
	series, err := TallySeries(games, bestOf, threshold)
	if err != nil {
		return nil, err
	}
	if len(series) != len(field)/2 {
		return nil, fmt.Errorf("%w: %d series found for a field of %d", ErrSeriesUndecided, len(series), len(field))
	}

	winners := make(map[models.EntityID]bool, len(series))
	for _, s := range series {
		if s.Winner == nil {
			return nil, fmt.Errorf("%w: matchup %d stands %d-%d", ErrSeriesUndecided, s.Matchup, s.HomeWins, s.AwayWins)
		}
		winners[*s.Winner] = true
	}

	out := make([]models.Entity, 0, len(winners))
	for _, e := range field {
		if winners[e.ID] {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b models.Entity) int { return a.Seed - b.Seed })
	return out, nil
}
