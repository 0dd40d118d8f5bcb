package standings

import (
	"fmt"

	"github.com/Dosada05/euchre-tournament/models"
)

// Options tunes the ranking engine.
type Options struct {
	// GamePoints is the winning threshold of a game.
	GamePoints int
	// MaxCohortSize caps the size of a tied cohort handed to cycle
	// enumeration.
	MaxCohortSize int
}

func DefaultOptions() Options {
	return Options{
		GamePoints:    models.GamePoints,
		MaxCohortSize: 12,
	}
}

// Ranker computes records and rank assignments. It holds no state beyond
// its options and is safe for concurrent use.
type Ranker struct {
	opts Options
}

func NewRanker(opts Options) *Ranker {
	def := DefaultOptions()
	if opts.GamePoints <= 0 {
		opts.GamePoints = def.GamePoints
	}
	if opts.MaxCohortSize <= 0 {
		opts.MaxCohortSize = def.MaxCohortSize
	}
	return &Ranker{opts: opts}
}

var defaultRanker = NewRanker(DefaultOptions())

// ComputeRecords folds games into one Record per entity using the default
// winning threshold.
func ComputeRecords(entities []models.Entity, games []models.Game) (map[models.EntityID]models.Record, error) {
	return defaultRanker.ComputeRecords(entities, games)
}

// ValidateGame checks a game against the concluded-game invariant.
func ValidateGame(g models.Game, threshold int) error {
	if _, err := g.Outcome(threshold); err != nil {
		return err
	}
	seen := make(map[models.EntityID]bool)
	for _, id := range g.Entities() {
		if seen[id] {
			return fmt.Errorf("%w: entity %d appears twice in game %q", ErrInconsistentGameRecord, id, g.Label)
		}
		seen[id] = true
	}
	return nil
}

// ComputeRecords builds a fresh Record for every entity from the concluded
// games. Pending games are skipped; byes count toward Byes only. Entities in
// games but not in entities are ignored. The result does not depend on the
// order of games.
func (r *Ranker) ComputeRecords(entities []models.Entity, games []models.Game) (map[models.EntityID]models.Record, error) {
	records := make(map[models.EntityID]models.Record, len(entities))
	for _, e := range entities {
		records[e.ID] = models.Record{EntityID: e.ID}
	}

	for _, g := range games {
		if err := ValidateGame(g, r.opts.GamePoints); err != nil {
			return nil, err
		}
		if g.IsBye() {
			for _, id := range g.Side1.Entities {
				if rec, ok := records[id]; ok {
					rec.Byes++
					records[id] = rec
				}
			}
			continue
		}
		if !g.Concluded() {
			continue
		}
		p1, p2 := *g.Side1.Points, *g.Side2.Points
		credit(records, g.Side1.Entities, p1 > p2, p1, p2)
		credit(records, g.Side2.Entities, p2 > p1, p2, p1)
	}
	return records, nil
}

func credit(records map[models.EntityID]models.Record, ids []models.EntityID, won bool, ptsFor, ptsAgainst int) {
	for _, id := range ids {
		rec, ok := records[id]
		if !ok {
			continue
		}
		if won {
			rec.Wins++
		} else {
			rec.Losses++
		}
		rec.PointsFor += ptsFor
		rec.PointsAgainst += ptsAgainst
		records[id] = rec
	}
}
