package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/euchre-tournament/models"
)

func TestBindSchedule_SeedRound(t *testing.T) {
	sched, err := BuildSeedSchedule(5, 2)
	require.NoError(t, err)

	players := field(5, 4, 3, 2, 1)
	games, err := BindSchedule(models.StageSeed, sched, players)
	require.NoError(t, err)
	require.Len(t, games, 4)

	assert.Equal(t, "seed-r1-t1", games[0].Label)
	assert.Equal(t, []models.EntityID{102, 105}, games[0].Side1.Entities)
	assert.Equal(t, []models.EntityID{103, 104}, games[0].Side2.Entities)
	assert.False(t, games[0].IsBye())

	assert.Equal(t, "seed-r1-byes", games[1].Label)
	assert.True(t, games[1].IsBye())
	assert.Equal(t, []models.EntityID{101}, games[1].Side1.Entities)
	assert.Empty(t, games[1].Side2.Entities)

	assert.Equal(t, "seed-r2-byes", games[3].Label)
	assert.Equal(t, 2, games[3].Round)
}

func TestBindSchedule_RoundRobinLabels(t *testing.T) {
	sched, err := BuildDivisionSchedule(3, 1)
	require.NoError(t, err)
	sched.Division = 2

	games, err := BindSchedule(models.StageRoundRobin, sched, field(1, 2, 3))
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "rr-d2-r1-t1", games[0].Label)
	assert.Equal(t, 2, games[0].Division)
	assert.Equal(t, "rr-d2-r1-bye", games[1].Label)
}

func TestValidateSeeds(t *testing.T) {
	require.NoError(t, ValidateSeeds(field(3, 1, 2)))
	require.ErrorIs(t, ValidateSeeds(field(1, 2, 2)), ErrInvalidSeeds)
	require.ErrorIs(t, ValidateSeeds(field(1, 2, 4)), ErrInvalidSeeds)
	require.ErrorIs(t, ValidateSeeds(field(0, 1)), ErrInvalidSeeds)
}

func TestBindSchedule_BadSeeds(t *testing.T) {
	sched, err := BuildSeedSchedule(4, 1)
	require.NoError(t, err)
	_, err = BindSchedule(models.StageSeed, sched, field(1, 2, 3))
	require.ErrorIs(t, err, ErrInvalidSeeds)
}

func TestSplitDivisions(t *testing.T) {
	divs, err := SplitDivisions(field(5, 3, 1, 4, 2), 2)
	require.NoError(t, err)
	require.Len(t, divs, 2)

	ids := func(d models.Division) (ids []models.EntityID, seeds []int) {
		for _, e := range d.Entities {
			ids = append(ids, e.ID)
			seeds = append(seeds, e.Seed)
		}
		return ids, seeds
	}

	gotIDs, gotSeeds := ids(divs[0])
	assert.Equal(t, 1, divs[0].Number)
	assert.Equal(t, []models.EntityID{101, 103, 105}, gotIDs)
	assert.Equal(t, []int{1, 2, 3}, gotSeeds)

	gotIDs, gotSeeds = ids(divs[1])
	assert.Equal(t, 2, divs[1].Number)
	assert.Equal(t, []models.EntityID{102, 104}, gotIDs)
	assert.Equal(t, []int{1, 2}, gotSeeds)

	_, err = SplitDivisions(field(1, 2), 0)
	require.ErrorIs(t, err, ErrInvalidDivisionCount)
	_, err = SplitDivisions(field(1, 2), 3)
	require.ErrorIs(t, err, ErrInvalidDivisionCount)
}

func TestGenerators(t *testing.T) {
	t.Run("seed", func(t *testing.T) {
		g, err := NewGenerator(models.StageSeed)
		require.NoError(t, err)
		games, err := g.Generate(GenerateParams{Entities: field(1, 2, 3, 4, 5, 6, 7, 8), Rounds: 2})
		require.NoError(t, err)
		assert.Len(t, games, 4)
		assert.Equal(t, models.StageSeed, games[0].Stage)
	})

	t.Run("round robin", func(t *testing.T) {
		g, err := NewGenerator(models.StageRoundRobin)
		require.NoError(t, err)
		games, err := g.Generate(GenerateParams{Entities: field(1, 2, 3, 4), Rounds: 3, Division: 1})
		require.NoError(t, err)
		assert.Len(t, games, 6)
		assert.Equal(t, 1, games[5].Division)
	})

	t.Run("finals", func(t *testing.T) {
		g, err := NewGenerator(models.StageFinals)
		require.NoError(t, err)
		games, err := g.Generate(GenerateParams{Entities: field(1, 3)})
		require.NoError(t, err)
		assert.Len(t, games, DefaultBestOf)
		assert.Equal(t, "finals-m1-g1", games[0].Label)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := NewGenerator(models.Stage("exhibition"))
		require.Error(t, err)
	})
}
