package standings

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/Dosada05/euchre-tournament/models"
)

// AssignRanks orders a group of records by win percentage, then points
// percentage, and breaks ties inside each cohort of identical percentages
// with head-to-head results from games.
func AssignRanks(records map[models.EntityID]models.Record, games []models.Game) ([]models.RankedEntity, error) {
	return defaultRanker.AssignRanks(records, games)
}

// AssignRanks returns one row per record. Rank runs 1..M without gaps in
// display order. Position is the rank of the first entity in the row's tie
// group, so unresolved ties share a position and are flagged Tied.
func (r *Ranker) AssignRanks(records map[models.EntityID]models.Record, games []models.Game) ([]models.RankedEntity, error) {
	rows := make([]models.Record, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec)
	}
	slices.SortFunc(rows, func(a, b models.Record) int {
		if c := cmp.Compare(b.WinPct(), a.WinPct()); c != 0 {
			return c
		}
		if c := cmp.Compare(b.PointsPct(), a.PointsPct()); c != 0 {
			return c
		}
		return cmp.Compare(a.EntityID, b.EntityID)
	})

	out := make([]models.RankedEntity, 0, len(rows))
	for start := 0; start < len(rows); {
		end := start + 1
		for end < len(rows) && sameCohort(rows[start], rows[end]) {
			end++
		}
		ranked, err := r.rankCohort(rows[start:end], games, start+1)
		if err != nil {
			return nil, err
		}
		out = append(out, ranked...)
		start = end
	}
	return out, nil
}

func sameCohort(a, b models.Record) bool {
	return math.Float64bits(a.WinPct()) == math.Float64bits(b.WinPct()) &&
		math.Float64bits(a.PointsPct()) == math.Float64bits(b.PointsPct())
}

func (r *Ranker) rankCohort(cohort []models.Record, games []models.Game, first int) ([]models.RankedEntity, error) {
	if len(cohort) == 1 {
		return []models.RankedEntity{{
			EntityID:   cohort[0].EntityID,
			Record:     cohort[0],
			Rank:       first,
			Position:   first,
			CohortSize: 1,
		}}, nil
	}
	if len(cohort) > r.opts.MaxCohortSize {
		return nil, fmt.Errorf("%w: %d entities tied at position %d (limit %d)",
			ErrCohortTooLarge, len(cohort), first, r.opts.MaxCohortSize)
	}

	ids := make([]models.EntityID, len(cohort))
	byID := make(map[models.EntityID]models.Record, len(cohort))
	for i, rec := range cohort {
		ids[i] = rec.EntityID
		byID[rec.EntityID] = rec
	}

	g, err := newBeatGraph(ids, games, r.opts.GamePoints)
	if err != nil {
		return nil, err
	}

	criteria := make(map[models.EntityID][]float64, len(ids))
	for _, id := range ids {
		criteria[id] = tieBreakCriteria(g.h2h[id], byID[id])
	}
	slices.SortStableFunc(ids, func(a, b models.EntityID) int {
		if c := slices.Compare(criteria[b], criteria[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	cycles := g.cycles()
	cyclic := cyclicMembers(cycles)
	res := g.resolve(ids, cycles)

	out := make([]models.RankedEntity, 0, len(cohort))
	for _, group := range res.Groups {
		position := first + len(out)
		for _, id := range group {
			out = append(out, models.RankedEntity{
				EntityID:   id,
				Record:     byID[id],
				Rank:       first + len(out),
				Position:   position,
				Tied:       len(group) > 1,
				Cyclic:     cyclic[id],
				CohortSize: len(cohort),
				HeadToHead: g.h2h[id],
				Criteria:   criteria[id],
			})
		}
	}
	return out, nil
}

// tieBreakCriteria is the display-order tuple for an entity inside a tied
// cohort: head-to-head win pct, head-to-head points pct, head-to-head points
// differential, overall points differential. Larger is better.
func tieBreakCriteria(h2h, overall models.Record) []float64 {
	return []float64{
		h2h.WinPct(),
		h2h.PointsPct(),
		float64(h2h.PointsDiff()),
		float64(overall.PointsDiff()),
	}
}
