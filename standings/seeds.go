package standings

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/Dosada05/euchre-tournament/models"
)

// PlayerSeeds maps each ranked player to its seed, which is its display rank.
func PlayerSeeds(ranked []models.RankedEntity) map[models.EntityID]int {
	seeds := make(map[models.EntityID]int, len(ranked))
	for _, r := range ranked {
		seeds[r.EntityID] = r.Rank
	}
	return seeds
}

// SeedTeams seeds teams by the mean seed of their players, then by the seed
// of their best player, then by team id.
func SeedTeams(teams []models.Team, playerSeeds map[models.EntityID]int) ([]models.Entity, error) {
	type scored struct {
		team models.Team
		avg  float64
		top  int
	}
	rows := make([]scored, 0, len(teams))
	for _, t := range teams {
		if len(t.Players) == 0 {
			return nil, fmt.Errorf("%w: team %d has no players", ErrUnseededPlayer, t.ID)
		}
		sum, top := 0, 0
		for _, p := range t.Players {
			s, ok := playerSeeds[p]
			if !ok {
				return nil, fmt.Errorf("%w: player %d on team %d", ErrUnseededPlayer, p, t.ID)
			}
			sum += s
			if top == 0 || s < top {
				top = s
			}
		}
		rows = append(rows, scored{team: t, avg: float64(sum) / float64(len(t.Players)), top: top})
	}

	slices.SortFunc(rows, func(a, b scored) int {
		if c := cmp.Compare(a.avg, b.avg); c != 0 {
			return c
		}
		if c := cmp.Compare(a.top, b.top); c != 0 {
			return c
		}
		return cmp.Compare(a.team.ID, b.team.ID)
	})

	out := make([]models.Entity, len(rows))
	for i, r := range rows {
		out[i] = models.Entity{ID: r.team.ID, Seed: i + 1, Name: r.team.Name}
	}
	return out, nil
}
