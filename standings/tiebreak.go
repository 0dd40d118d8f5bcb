package standings

import (
	"slices"

	"github.com/Dosada05/euchre-tournament/models"
)

// Resolution is the outcome of breaking one cohort's tie.
type Resolution struct {
	// Order is the cohort after elevations, best first.
	Order []models.EntityID
	// Groups partitions Order into runs that share a position.
	Groups [][]models.EntityID
	// Elevations lists, per elevated entity, the best-placed entity it
	// overtook by beating it head to head.
	Elevations []models.Elevation
}

// ResolveTies breaks a tie inside a cohort using head-to-head results. The
// cohort must be given in its provisional display order. Pairs that sit
// together on any of the given cycles never decide anything.
func ResolveTies(cohort []models.EntityID, games []models.Game, cycles []models.Cycle) (Resolution, error) {
	return defaultRanker.ResolveTies(cohort, games, cycles)
}

func (r *Ranker) ResolveTies(cohort []models.EntityID, games []models.Game, cycles []models.Cycle) (Resolution, error) {
	g, err := newBeatGraph(cohort, games, r.opts.GamePoints)
	if err != nil {
		return Resolution{}, err
	}
	return g.resolve(cohort, cycles), nil
}

type dominance struct {
	g      *beatGraph
	cycles []models.Cycle
}

func (d dominance) over(a, b models.EntityID) bool {
	if !d.g.beats(a, b) {
		return false
	}
	for _, c := range d.cycles {
		if c.Contains(a) && c.Contains(b) {
			return false
		}
	}
	return true
}

func (g *beatGraph) resolve(provisional []models.EntityID, cycles []models.Cycle) Resolution {
	dom := dominance{g: g, cycles: cycles}
	order := elevate(provisional, dom)

	pos := make(map[models.EntityID]int, len(provisional))
	for i, id := range provisional {
		pos[id] = i
	}
	final := make(map[models.EntityID]int, len(order))
	for i, id := range order {
		final[id] = i
	}

	var elevations []models.Elevation
	for _, x := range order {
		for _, y := range provisional[:pos[x]] {
			if final[y] > final[x] && dom.over(x, y) {
				elevations = append(elevations, models.Elevation{Winner: x, Loser: y})
				break
			}
		}
	}

	return Resolution{
		Order:      order,
		Groups:     splitGroups(order, dom),
		Elevations: elevations,
	}
}

// elevate orders the cohort so that every dominance is respected while
// moving as little as possible: it repeatedly sends to the bottom the
// provisionally lowest entity that dominates nobody still unplaced.
func elevate(provisional []models.EntityID, dom dominance) []models.EntityID {
	remaining := slices.Clone(provisional)
	bottom := make([]models.EntityID, 0, len(provisional))

	for len(remaining) > 0 {
		pick := -1
		for i := len(remaining) - 1; i >= 0 && pick < 0; i-- {
			free := true
			for j, other := range remaining {
				if j != i && dom.over(remaining[i], other) {
					free = false
					break
				}
			}
			if free {
				pick = i
			}
		}
		if pick < 0 {
			// unreachable while dominance stays acyclic
			pick = len(remaining) - 1
		}
		bottom = append(bottom, remaining[pick])
		remaining = slices.Delete(remaining, pick, pick+1)
	}

	slices.Reverse(bottom)
	return bottom
}

// splitGroups cuts the order wherever everything above the cut dominates,
// directly or transitively, everything below it.
func splitGroups(order []models.EntityID, dom dominance) [][]models.EntityID {
	n := len(order)
	reach := make([][]bool, n)
	for i := range reach {
		reach[i] = make([]bool, n)
		for j := range reach[i] {
			reach[i][j] = i != j && dom.over(order[i], order[j])
		}
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if !reach[i][k] {
				continue
			}
			for j := 0; j < n; j++ {
				if reach[k][j] {
					reach[i][j] = true
				}
			}
		}
	}

	var groups [][]models.EntityID
	start := 0
	for cut := 1; cut <= n; cut++ {
		if cut < n && !separated(reach, cut) {
			continue
		}
		groups = append(groups, slices.Clone(order[start:cut]))
		start = cut
	}
	return groups
}

func separated(reach [][]bool, cut int) bool {
	for i := 0; i < cut; i++ {
		for j := cut; j < len(reach); j++ {
			if !reach[i][j] {
				return false
			}
		}
	}
	return true
}
