package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/euchre-tournament/models"
	"github.com/Dosada05/euchre-tournament/realtime"
	"github.com/Dosada05/euchre-tournament/standings"
)

func TestGameService_SubmitScore(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	tourn, _ := newTournament(t, f, CreateTournamentInput{SeedRounds: 1}, 5)
	games, err := f.schedule.GenerateSeedRound(ctx, tourn.ID)
	require.NoError(t, err)

	var table, bye models.Game
	for _, g := range games {
		if g.IsBye() {
			bye = g
		} else if table.ID == 0 {
			table = g
		}
	}
	require.NotZero(t, table.ID)
	require.NotZero(t, bye.ID)

	tests := []struct {
		name    string
		gameID  int
		input   ScoreInput
		wantErr error
	}{
		{"valid", table.ID, ScoreInput{models.IntPtr(10), models.IntPtr(7)}, nil},
		{"both over threshold", table.ID, ScoreInput{models.IntPtr(10), models.IntPtr(11)}, standings.ErrInconsistentGameRecord},
		{"neither at threshold", table.ID, ScoreInput{models.IntPtr(9), models.IntPtr(7)}, standings.ErrInconsistentGameRecord},
		{"one side missing", table.ID, ScoreInput{models.IntPtr(10), nil}, standings.ErrInconsistentGameRecord},
		{"negative", table.ID, ScoreInput{models.IntPtr(10), models.IntPtr(-1)}, standings.ErrInconsistentGameRecord},
		{"bye", bye.ID, ScoreInput{models.IntPtr(10), models.IntPtr(0)}, standings.ErrInconsistentGameRecord},
		{"unknown game", 424242, ScoreInput{models.IntPtr(10), models.IntPtr(0)}, ErrGameNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := f.games.SubmitScore(ctx, tt.gameID, tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, g.Concluded())
		})
	}

	stored, err := f.games.GetByID(ctx, table.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Side1.Points)
	assert.Equal(t, 10, *stored.Side1.Points)
	assert.Equal(t, 7, *stored.Side2.Points)

	types := f.notifier.types()
	assert.Equal(t, realtime.MessageGameUpdated, types[len(types)-1])
}

func TestGameService_ClearScore(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	tourn, _ := newTournament(t, f, CreateTournamentInput{SeedRounds: 1}, 4)
	games, err := f.schedule.GenerateSeedRound(ctx, tourn.ID)
	require.NoError(t, err)

	score(t, f, games[0].ID, 4, 10)
	g, err := f.games.SubmitScore(ctx, games[0].ID, ScoreInput{})
	require.NoError(t, err)
	assert.True(t, g.Pending())

	_, err = f.schedule.GenerateSeedRound(ctx, tourn.ID)
	require.NoError(t, err, "a cleared score no longer locks the schedule")
}
