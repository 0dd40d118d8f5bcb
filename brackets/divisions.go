package brackets

import (
	"fmt"
	"slices"

	"github.com/Dosada05/euchre-tournament/models"
)

// SplitDivisions deals teams, in seed order, round-robin into the given
// number of divisions. Returned entities carry their division seed, so the
// lower-numbered divisions hold the extra team when the count does not
// divide evenly.
func SplitDivisions(teams []models.Entity, divisions int) ([]models.Division, error) {
	if divisions <= 0 || divisions > len(teams) {
		return nil, fmt.Errorf("%w: %d divisions for %d teams", ErrInvalidDivisionCount, divisions, len(teams))
	}
	if err := ValidateSeeds(teams); err != nil {
		return nil, err
	}

	bySeed := slices.Clone(teams)
	slices.SortFunc(bySeed, func(a, b models.Entity) int { return a.Seed - b.Seed })

	out := make([]models.Division, divisions)
	for d := range out {
		out[d].Number = d + 1
	}
	for i, t := range bySeed {
		t.Seed = i/divisions + 1
		out[i%divisions].Entities = append(out[i%divisions].Entities, t)
	}
	return out, nil
}
