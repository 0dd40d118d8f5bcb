package standings

import (
	"github.com/Dosada05/euchre-tournament/models"
)

// DetectCycles lists every elementary cycle of three or more entities in the
// cohort's beat graph. Each cycle is reported once, starting from its
// smallest id; a cycle and a shorter one sharing its vertices are both
// reported.
func DetectCycles(cohort []models.EntityID, games []models.Game) ([]models.Cycle, error) {
	return defaultRanker.DetectCycles(cohort, games)
}

func (r *Ranker) DetectCycles(cohort []models.EntityID, games []models.Game) ([]models.Cycle, error) {
	g, err := newBeatGraph(cohort, games, r.opts.GamePoints)
	if err != nil {
		return nil, err
	}
	return g.cycles(), nil
}

// cycles enumerates simple circuits by a depth-first search from each start
// vertex that only walks vertices above the start. A circuit is therefore
// found exactly once, from its lowest vertex.
func (g *beatGraph) cycles() []models.Cycle {
	n := len(g.members)
	var out []models.Cycle
	path := make([]int, 0, n)
	onPath := make([]bool, n)

	var walk func(start, v int)
	walk = func(start, v int) {
		for w := start; w < n; w++ {
			if !g.adj[v][w] {
				continue
			}
			if w == start {
				if len(path) >= 3 {
					c := make(models.Cycle, len(path))
					for i, idx := range path {
						c[i] = g.members[idx]
					}
					out = append(out, c)
				}
				continue
			}
			if onPath[w] {
				continue
			}
			path = append(path, w)
			onPath[w] = true
			walk(start, w)
			path = path[:len(path)-1]
			onPath[w] = false
		}
	}

	for s := 0; s < n; s++ {
		path = append(path[:0], s)
		onPath[s] = true
		walk(s, s)
		onPath[s] = false
	}
	return out
}

// cyclicMembers returns the set of entities on at least one cycle.
func cyclicMembers(cycles []models.Cycle) map[models.EntityID]bool {
	out := make(map[models.EntityID]bool)
	for _, c := range cycles {
		for _, id := range c {
			out[id] = true
		}
	}
	return out
}
