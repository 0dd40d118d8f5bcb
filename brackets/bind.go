package brackets

import (
	"fmt"
	"slices"

	"github.com/Dosada05/euchre-tournament/models"
)

// ValidateSeeds checks that the seeds of entities are exactly 1..N.
func ValidateSeeds(entities []models.Entity) error {
	seen := make([]bool, len(entities)+1)
	for _, e := range entities {
		if e.Seed < 1 || e.Seed > len(entities) {
			return fmt.Errorf("%w: entity %d has seed %d outside 1..%d", ErrInvalidSeeds, e.ID, e.Seed, len(entities))
		}
		if seen[e.Seed] {
			return fmt.Errorf("%w: seed %d appears twice", ErrInvalidSeeds, e.Seed)
		}
		seen[e.Seed] = true
	}
	return nil
}

// BindSchedule turns a seed-space schedule into games for the given stage.
func BindSchedule(stage models.Stage, sched models.Schedule, entities []models.Entity) ([]models.Game, error) {
	if err := ValidateSeeds(entities); err != nil {
		return nil, err
	}
	bySeed := seedIndex(entities)

	var games []models.Game
	for _, round := range sched.Rounds {
		for _, m := range round.Matchups {
			g := models.Game{
				Stage:    stage,
				Division: sched.Division,
				Round:    round.Number,
				Table:    m.Table,
				Label:    gameLabel(stage, sched.Division, round.Number, m.Table),
			}
			var err error
			if g.Side1.Entities, err = lookupSeeds(bySeed, m.Home); err != nil {
				return nil, err
			}
			if g.Side2.Entities, err = lookupSeeds(bySeed, m.Away); err != nil {
				return nil, err
			}
			games = append(games, g)
		}
	}
	return games, nil
}

// BindPlayoffRound lays out bestOf game slots per matchup. Slots left unplayed
// once a series is decided simply never conclude.
func BindPlayoffRound(stage models.Stage, matchups []models.Matchup, field []models.Entity, bestOf int) ([]models.Game, error) {
	bySeed := seedIndex(field)
	games := make([]models.Game, 0, len(matchups)*bestOf)
	for _, m := range matchups {
		home, err := lookupSeeds(bySeed, m.Home)
		if err != nil {
			return nil, err
		}
		away, err := lookupSeeds(bySeed, m.Away)
		if err != nil {
			return nil, err
		}
		for g := 1; g <= bestOf; g++ {
			games = append(games, models.Game{
				Stage: stage,
				Round: g,
				Table: m.Table,
				Label: fmt.Sprintf("%s-m%d-g%d", stage, *m.Table, g),
				Side1: models.Side{Entities: slices.Clone(home)},
				Side2: models.Side{Entities: slices.Clone(away)},
			})
		}
	}
	return games, nil
}

func gameLabel(stage models.Stage, division, round int, table *int) string {
	switch stage {
	case models.StageSeed:
		if table == nil {
			return fmt.Sprintf("seed-r%d-byes", round)
		}
		return fmt.Sprintf("seed-r%d-t%d", round, *table)
	case models.StageRoundRobin:
		if table == nil {
			return fmt.Sprintf("rr-d%d-r%d-bye", division, round)
		}
		return fmt.Sprintf("rr-d%d-r%d-t%d", division, round, *table)
	default:
		if table == nil {
			return fmt.Sprintf("%s-r%d-bye", stage, round)
		}
		return fmt.Sprintf("%s-r%d-t%d", stage, round, *table)
	}
}

func seedIndex(entities []models.Entity) map[int]models.EntityID {
	idx := make(map[int]models.EntityID, len(entities))
	for _, e := range entities {
		idx[e.Seed] = e.ID
	}
	return idx
}

func lookupSeeds(bySeed map[int]models.EntityID, seeds []int) ([]models.EntityID, error) {
	if len(seeds) == 0 {
		return nil, nil
	}
	ids := make([]models.EntityID, 0, len(seeds))
	for _, s := range seeds {
		id, ok := bySeed[s]
		if !ok {
			return nil, fmt.Errorf("%w: no entity holds seed %d", ErrInvalidSeeds, s)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
