package brackets

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/euchre-tournament/models"
)

func TestBuildSeedSchedule_Errors(t *testing.T) {
	tests := []struct {
		name    string
		players int
		rounds  int
		wantErr error
	}{
		{"no players", 0, 8, ErrInsufficientEntities},
		{"three players", 3, 8, ErrInsufficientEntities},
		{"zero rounds", 8, 0, ErrInvalidRoundCount},
		{"negative rounds", 8, -2, ErrInvalidRoundCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildSeedSchedule(tt.players, tt.rounds)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuildSeedSchedule_FourPlayers(t *testing.T) {
	sched, err := BuildSeedSchedule(4, 3)
	require.NoError(t, err)

	want := []models.Round{
		{Number: 1, Matchups: []models.Matchup{{Round: 1, Table: models.IntPtr(1), Home: []int{1, 4}, Away: []int{2, 3}}}},
		{Number: 2, Matchups: []models.Matchup{{Round: 2, Table: models.IntPtr(1), Home: []int{2, 4}, Away: []int{1, 3}}}},
		{Number: 3, Matchups: []models.Matchup{{Round: 3, Table: models.IntPtr(1), Home: []int{3, 4}, Away: []int{1, 2}}}},
	}
	if diff := cmp.Diff(want, sched.Rounds); diff != "" {
		t.Errorf("schedule mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSeedSchedule_FivePlayersFirstRound(t *testing.T) {
	sched, err := BuildSeedSchedule(5, 1)
	require.NoError(t, err)
	require.Len(t, sched.Rounds, 1)

	want := []models.Matchup{
		{Round: 1, Table: models.IntPtr(1), Home: []int{2, 5}, Away: []int{3, 4}},
		{Round: 1, Home: []int{1}},
	}
	if diff := cmp.Diff(want, sched.Rounds[0].Matchups); diff != "" {
		t.Errorf("round mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSeedSchedule_CoverageAndByes(t *testing.T) {
	for n := 4; n <= 24; n++ {
		rounds := 2 * n
		t.Run(fmt.Sprintf("players=%d", n), func(t *testing.T) {
			sched, err := BuildSeedSchedule(n, rounds)
			require.NoError(t, err)
			require.Len(t, sched.Rounds, rounds)

			byes := make(map[int]int)
			for i, round := range sched.Rounds {
				assert.Equal(t, i+1, round.Number)

				seen := make(map[int]bool)
				for _, m := range round.Matchups {
					if m.IsBye() {
						assert.Len(t, m.Home, n%4, "bye group size")
						assert.Empty(t, m.Away)
						for _, s := range m.Home {
							byes[s]++
						}
					} else {
						assert.Len(t, m.Home, 2)
						assert.Len(t, m.Away, 2)
					}
					for _, s := range m.Seeds() {
						require.False(t, seen[s], "seed %d seated twice in round %d", s, round.Number)
						require.True(t, s >= 1 && s <= n)
						seen[s] = true
					}
				}
				require.Len(t, seen, n, "round %d must cover every player", round.Number)

				limit := MaxSeedByes(n, i+1)
				for s, c := range byes {
					require.LessOrEqual(t, c, limit, "seed %d after %d rounds", s, i+1)
				}
			}
		})
	}
}

func TestBuildSeedSchedule_PartnershipsDoNotRepeat(t *testing.T) {
	for n := 4; n <= 25; n++ {
		rounds := n - 1
		if n%2 == 1 {
			rounds = n
		}
		t.Run(fmt.Sprintf("players=%d", n), func(t *testing.T) {
			sched, err := BuildSeedSchedule(n, rounds)
			require.NoError(t, err)

			partners := make(map[[2]int]int)
			for _, round := range sched.Rounds {
				for _, m := range round.Matchups {
					if m.IsBye() {
						continue
					}
					for _, side := range [][]int{m.Home, m.Away} {
						key := [2]int{side[0], side[1]}
						partners[key]++
						require.Equal(t, 1, partners[key], "partnership %v repeated by round %d", key, round.Number)
					}
				}
			}
		})
	}
}

func TestBuildSeedSchedule_SixPlayers(t *testing.T) {
	sched, err := BuildSeedSchedule(6, 6)
	require.NoError(t, err)

	tests := []struct {
		round int
		want  []models.Matchup
	}{
		{1, []models.Matchup{
			{Round: 1, Table: models.IntPtr(1), Home: []int{2, 3}, Away: []int{5, 6}},
			{Round: 1, Home: []int{1, 4}},
		}},
		{4, []models.Matchup{
			{Round: 4, Table: models.IntPtr(1), Home: []int{1, 5}, Away: []int{3, 4}},
			{Round: 4, Home: []int{2, 6}},
		}},
		{6, []models.Matchup{
			{Round: 6, Table: models.IntPtr(1), Home: []int{2, 5}, Away: []int{3, 6}},
			{Round: 6, Home: []int{1, 4}},
		}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("round=%d", tt.round), func(t *testing.T) {
			if diff := cmp.Diff(tt.want, sched.Rounds[tt.round-1].Matchups); diff != "" {
				t.Errorf("round mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildSeedSchedule_TwoByeFieldsSpreadPartnerships(t *testing.T) {
	for n := 6; n <= 42; n += 4 {
		rounds := 3 * n
		t.Run(fmt.Sprintf("players=%d", n), func(t *testing.T) {
			sched, err := BuildSeedSchedule(n, rounds)
			require.NoError(t, err)

			last := make(map[[2]int]int)
			for i, round := range sched.Rounds {
				for _, m := range round.Matchups {
					if m.IsBye() {
						continue
					}
					for _, side := range [][]int{m.Home, m.Away} {
						key := [2]int{side[0], side[1]}
						if prev, ok := last[key]; ok {
							require.GreaterOrEqual(t, i-prev, n, "partnership %v back in round %d", key, round.Number)
						}
						last[key] = i
					}
				}
			}
			assert.Len(t, last, n*(n-2)/2, "distinct partnerships seated")
		})
	}
}

func TestBuildSeedSchedule_Deterministic(t *testing.T) {
	a, err := BuildSeedSchedule(14, 8)
	require.NoError(t, err)
	b, err := BuildSeedSchedule(14, 8)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(a, b))

	short, err := BuildSeedSchedule(14, 3)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(a.Rounds[:3], short.Rounds), "a round depends only on its index")
}

func TestMaxSeedByes(t *testing.T) {
	assert.Equal(t, 0, MaxSeedByes(16, 8))
	assert.Equal(t, 1, MaxSeedByes(17, 8))
	assert.Equal(t, 2, MaxSeedByes(18, 10))
	assert.Equal(t, 3, MaxSeedByes(15, 14))
}
