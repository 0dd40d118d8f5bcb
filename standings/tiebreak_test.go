package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/euchre-tournament/models"
)

func resolve(t *testing.T, cohort []models.EntityID, games []models.Game) Resolution {
	t.Helper()
	cycles, err := DetectCycles(cohort, games)
	require.NoError(t, err)
	res, err := ResolveTies(cohort, games, cycles)
	require.NoError(t, err)
	return res
}

func TestResolveTies_Elevation(t *testing.T) {
	games := []models.Game{
		duelGame(1, 2, 10, 0),
		duelGame(1, 3, 10, 0),
		duelGame(4, 1, 10, 5),
		duelGame(4, 2, 10, 5),
	}
	res := resolve(t, []models.EntityID{1, 2, 3, 4}, games)

	assert.Equal(t, []models.Elevation{{Winner: 4, Loser: 1}}, res.Elevations)
	assert.Equal(t, []models.EntityID{4, 1, 2, 3}, res.Order)
	// 2 and 3 never met
	assert.Equal(t, [][]models.EntityID{{4}, {1}, {2, 3}}, res.Groups)
}

func TestResolveTies_Cycle(t *testing.T) {
	res := resolve(t, []models.EntityID{1, 2, 3}, []models.Game{beat(1, 2), beat(2, 3), beat(3, 1)})

	assert.Empty(t, res.Elevations)
	assert.Equal(t, []models.EntityID{1, 2, 3}, res.Order)
	assert.Equal(t, [][]models.EntityID{{1, 2, 3}}, res.Groups)
}

func TestResolveTies_CycleBlocksInnerPairsOnly(t *testing.T) {
	// 2, 3, 4 form a cycle; 1 beat 2 and 3 but never met 4.
	games := []models.Game{beat(1, 2), beat(1, 3), beat(2, 3), beat(4, 2), beat(3, 4)}
	res := resolve(t, []models.EntityID{4, 3, 2, 1}, games)

	assert.Equal(t, []models.Elevation{{Winner: 1, Loser: 3}}, res.Elevations)
	assert.Equal(t, []models.EntityID{4, 1, 3, 2}, res.Order)
	assert.Len(t, res.Groups, 1)
}

func TestResolveTies_SplitDecidedOnPoints(t *testing.T) {
	games := []models.Game{duelGame(1, 2, 10, 8), duelGame(2, 1, 10, 3)}
	res := resolve(t, []models.EntityID{1, 2}, games)

	assert.Equal(t, []models.Elevation{{Winner: 2, Loser: 1}}, res.Elevations)
	assert.Equal(t, [][]models.EntityID{{2}, {1}}, res.Groups)
}

func TestResolveTies_EvenSplitStaysTied(t *testing.T) {
	games := []models.Game{duelGame(1, 2, 10, 5), duelGame(2, 1, 10, 5)}
	res := resolve(t, []models.EntityID{2, 1}, games)

	assert.Empty(t, res.Elevations)
	assert.Equal(t, []models.EntityID{2, 1}, res.Order)
	assert.Equal(t, [][]models.EntityID{{2, 1}}, res.Groups)
}

func TestResolveTies_RespectsEveryDominance(t *testing.T) {
	// 3 beat 1 and 2 beat 3; 1 and 2 never met.
	res := resolve(t, []models.EntityID{1, 2, 3}, []models.Game{beat(3, 1), beat(2, 3)})

	assert.Equal(t, []models.EntityID{2, 3, 1}, res.Order)
	// 2 rises above 1 only because it must stay above 3
	assert.Equal(t, []models.Elevation{{Winner: 3, Loser: 1}}, res.Elevations)
	assert.Equal(t, [][]models.EntityID{{2}, {3}, {1}}, res.Groups)
}
