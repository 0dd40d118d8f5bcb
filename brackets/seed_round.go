package brackets

import (
	"fmt"
	"slices"

	"github.com/Dosada05/euchre-tournament/models"
)

// BuildSeedSchedule seats players for the seed round: every round splits the
// field into two-versus-two tables plus, when players is not a multiple of
// four, one bye group of players%4.
//
// Partnerships come from the circle rotation over all players, so for the
// first players-1 rounds (players rounds when the count is odd) no partnership
// repeats. Byes walk through the roster in seat order, which caps every
// player at ceil(rounds*(players%4)/players) byes. Two-bye fields use a
// rotation over two halves instead, where the bye pairs of each block of
// players/2 rounds cover the roster once. Each round depends only on
// (players, round index).
func BuildSeedSchedule(players, rounds int) (models.Schedule, error) {
	if players < 4 {
		return models.Schedule{}, fmt.Errorf("%w: seed round needs at least 4 players, got %d", ErrInsufficientEntities, players)
	}
	if rounds <= 0 {
		return models.Schedule{}, fmt.Errorf("%w: got %d", ErrInvalidRoundCount, rounds)
	}

	sched := models.Schedule{Rounds: make([]models.Round, 0, rounds)}
	for r := 0; r < rounds; r++ {
		sched.Rounds = append(sched.Rounds, seedRound(players, r))
	}
	return sched, nil
}

// MaxSeedByes is the most byes any single player receives over the given
// number of seed rounds.
func MaxSeedByes(players, rounds int) int {
	b := players % 4
	return (rounds*b + players - 1) / players
}

// seedByes returns the 0-based seats sitting out round r for odd counts.
// Windows of players%4 consecutive seats tile the roster; once a full cycle
// of windows has been used the tiling shifts by one seat so the same groups
// do not recur.
func seedByes(n, r int) []int {
	b := n % 4
	cycle := n / gcd(b, n)
	start := (b*r + r/cycle) % n
	byes := make([]int, b)
	for j := range byes {
		byes[j] = (start + j) % n
	}
	return byes
}

// circleRound handles counts with zero, one or three byes. For odd counts the
// rotation step is chosen so the bye group is exactly the phantom's partner
// plus, for three byes, the pair on either side of it; nobody loses a partner
// to the bye.
func circleRound(n, r int) (pairs [][2]int, byes []int) {
	f := r
	if n%2 == 1 {
		byes = seedByes(n, r)
		f = byes[(len(byes)-1)/2]
	}

	out := make(map[int]bool, len(byes)+1)
	for _, p := range byes {
		out[p] = true
	}
	// phantom seat, present only for odd counts
	out[n] = true

	for _, pr := range newCircle(n).factor(f) {
		if !out[pr[0]] && !out[pr[1]] {
			pairs = append(pairs, pr)
		}
	}
	return pairs, byes
}

// halvesRound handles counts with two byes. Seats split into halves of odd
// size h; seat i of the first half and seat i of the second are a couple.
// Rounds come in blocks of h. In the first block each half turns around
// center c and couple c sits out. In the second block the second half is
// offset by d against the first and the pair (d, 2d) sits out; its last round
// seats the couples with couple 0 out. Every player sits out once per block,
// and no partnership recurs within n consecutive rounds.
func halvesRound(n, r int) (pairs [][2]int, byes []int) {
	h := n / 2
	seat := func(i, half int) int { return (i%h+h)%h + half*h }

	p := r % n
	switch {
	case p < h:
		for half := 0; half < 2; half++ {
			for k := 1; k <= (h-1)/2; k++ {
				pairs = append(pairs, [2]int{seat(p-k, half), seat(p+k, half)})
			}
		}
		return pairs, []int{seat(p, 0), seat(p, 1)}
	case p < n-1:
		d := p - h + 1
		for i := 0; i < h; i++ {
			pr := [2]int{seat(i, 0), seat(i+d, 1)}
			if i == d {
				byes = pr[:]
				continue
			}
			pairs = append(pairs, pr)
		}
		return pairs, byes
	default:
		for i := 1; i < h; i++ {
			pairs = append(pairs, [2]int{seat(i, 0), seat(i, 1)})
		}
		return pairs, []int{seat(0, 0), seat(0, 1)}
	}
}

func seedRound(n, r int) models.Round {
	var pairs [][2]int
	var byes []int
	if n%4 == 2 {
		pairs, byes = halvesRound(n, r)
	} else {
		pairs, byes = circleRound(n, r)
	}

	round := models.Round{Number: r + 1}
	for t := 0; t+1 < len(pairs); t += 2 {
		round.Matchups = append(round.Matchups, models.Matchup{
			Round: r + 1,
			Table: models.IntPtr(t/2 + 1),
			Home:  toSeeds(pairs[t][:]),
			Away:  toSeeds(pairs[t+1][:]),
		})
	}
	if len(byes) > 0 {
		round.Matchups = append(round.Matchups, models.Matchup{
			Round: r + 1,
			Home:  toSeeds(byes),
		})
	}
	return round
}

// toSeeds converts 0-based seats to sorted 1-based seeds.
func toSeeds(seats []int) []int {
	seeds := make([]int, len(seats))
	for i, s := range seats {
		seeds[i] = s + 1
	}
	slices.Sort(seeds)
	return seeds
}
