package standings

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/euchre-tournament/models"
)

func TestComputeRecords(t *testing.T) {
	pending := duelGame(1, 3, 0, 0)
	pending.Side1.Points, pending.Side2.Points = nil, nil
	bye := models.Game{Label: "rr-d1-r3-bye", Round: 3, Side1: models.Side{Entities: []models.EntityID{3}}}

	games := []models.Game{
		duelGame(1, 2, 10, 4),
		duelGame(3, 2, 7, 10),
		pending,
		bye,
	}
	got, err := ComputeRecords(entities(1, 2, 3), games)
	require.NoError(t, err)

	want := map[models.EntityID]models.Record{
		1: {EntityID: 1, Wins: 1, PointsFor: 10, PointsAgainst: 4},
		2: {EntityID: 2, Wins: 1, Losses: 1, PointsFor: 14, PointsAgainst: 17},
		3: {EntityID: 3, Losses: 1, PointsFor: 7, PointsAgainst: 10, Byes: 1},
	}
	assert.Equal(t, want, got)

	assert.Equal(t, 1.0, got[1].WinPct())
	assert.Equal(t, 0.5, got[2].WinPct())
	assert.InDelta(t, 14.0/31.0, got[2].PointsPct(), 1e-12)
	assert.Equal(t, -3, got[2].PointsDiff())
}

func TestComputeRecords_Partners(t *testing.T) {
	g := models.Game{
		Stage: models.StageSeed,
		Label: "seed-r1-t1",
		Round: 1,
		Table: models.IntPtr(1),
		Side1: models.Side{Entities: []models.EntityID{1, 4}, Points: models.IntPtr(6)},
		Side2: models.Side{Entities: []models.EntityID{2, 3}, Points: models.IntPtr(11)},
	}
	got, err := ComputeRecords(entities(1, 2, 3, 4), []models.Game{g})
	require.NoError(t, err)

	for _, id := range []models.EntityID{1, 4} {
		assert.Equal(t, models.Record{EntityID: id, Losses: 1, PointsFor: 6, PointsAgainst: 11}, got[id])
	}
	for _, id := range []models.EntityID{2, 3} {
		assert.Equal(t, models.Record{EntityID: id, Wins: 1, PointsFor: 11, PointsAgainst: 6}, got[id])
	}
}

func TestComputeRecords_OrderIndependent(t *testing.T) {
	games := []models.Game{
		beat(1, 2), beat(2, 3), beat(3, 1),
		duelGame(1, 4, 10, 9), duelGame(4, 2, 12, 3), duelGame(3, 4, 2, 10),
	}
	want, err := ComputeRecords(entities(1, 2, 3, 4), games)
	require.NoError(t, err)

	reversed := slices.Clone(games)
	slices.Reverse(reversed)
	rotated := append(slices.Clone(games[3:]), games[:3]...)

	for _, perm := range [][]models.Game{reversed, rotated, games} {
		got, err := ComputeRecords(entities(1, 2, 3, 4), perm)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestComputeRecords_IgnoresOutsiders(t *testing.T) {
	got, err := ComputeRecords(entities(1), []models.Game{beat(1, 9)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[1].Wins)
}

func TestComputeRecords_Empty(t *testing.T) {
	got, err := ComputeRecords(entities(1), nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got[1].WinPct())
	assert.Equal(t, 0.0, got[1].PointsPct())
	assert.False(t, got[1].HasPoints())
}

func TestComputeRecords_Inconsistent(t *testing.T) {
	oneSided := beat(1, 2)
	oneSided.Side2.Points = nil

	twice := beat(1, 2)
	twice.Side2.Entities = []models.EntityID{1}

	scoredBye := models.Game{Label: "bye", Side1: models.Side{Entities: []models.EntityID{1}, Points: models.IntPtr(10)}}

	tests := []struct {
		name string
		game models.Game
	}{
		{"both at threshold", duelGame(1, 2, 10, 10)},
		{"both under threshold", duelGame(1, 2, 9, 7)},
		{"negative points", duelGame(1, 2, 10, -1)},
		{"one side only", oneSided},
		{"entity on both sides", twice},
		{"bye with points", scoredBye},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeRecords(entities(1, 2), []models.Game{tt.game})
			require.ErrorIs(t, err, ErrInconsistentGameRecord)
		})
	}
}

func TestComputeRecords_Threshold(t *testing.T) {
	r := NewRanker(Options{GamePoints: 11})
	_, err := r.ComputeRecords(entities(1, 2), []models.Game{duelGame(1, 2, 10, 4)})
	require.ErrorIs(t, err, ErrInconsistentGameRecord)

	got, err := r.ComputeRecords(entities(1, 2), []models.Game{duelGame(1, 2, 11, 4)})
	require.NoError(t, err)
	assert.Equal(t, 1, got[1].Wins)
}

func TestFormatPct(t *testing.T) {
	assert.Equal(t, ".667", models.FormatPct(2.0/3.0, true))
	assert.Equal(t, "1.000", models.FormatPct(1, true))
	assert.Equal(t, ".000", models.FormatPct(0, true))
	assert.Equal(t, "-", models.FormatPct(0, false))
}
