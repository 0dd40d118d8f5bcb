package brackets

import (
	"fmt"

	"github.com/Dosada05/euchre-tournament/models"
)

// BuildDivisionSchedule builds a circle-method round robin for one division
// of the given size. An even division plays teams-1 distinct rounds; an odd
// one plays teams rounds with one bye each. When more rounds are requested
// than a single pass holds, the pass starts over from its first round.
func BuildDivisionSchedule(teams, rounds int) (models.Schedule, error) {
	if teams <= 0 {
		return models.Schedule{}, fmt.Errorf("%w: division has no teams", ErrInsufficientEntities)
	}
	if rounds <= 0 {
		return models.Schedule{}, fmt.Errorf("%w: got %d", ErrInvalidRoundCount, rounds)
	}

	c := newCircle(teams)
	sched := models.Schedule{Rounds: make([]models.Round, 0, rounds)}
	for r := 0; r < rounds; r++ {
		sched.Rounds = append(sched.Rounds, divisionRound(c, teams, r))
	}
	return sched, nil
}

// PassLength is the number of rounds in one full round robin pass.
func PassLength(teams int) int {
	if teams <= 0 {
		return 0
	}
	return newCircle(teams).length()
}

func divisionRound(c circle, teams, r int) models.Round {
	round := models.Round{Number: r + 1}
	var bye *models.Matchup
	table := 0
	for i, pr := range c.factor(r) {
		home, away := pr[0], pr[1]
		// the fixed seat alternates sides so it is not always listed first
		if i == 0 && r%2 == 1 {
			home, away = away, home
		}
		switch {
		case home >= teams:
			bye = &models.Matchup{Round: r + 1, Home: []int{away + 1}}
		case away >= teams:
			bye = &models.Matchup{Round: r + 1, Home: []int{home + 1}}
		default:
			table++
			round.Matchups = append(round.Matchups, models.Matchup{
				Round: r + 1,
				Table: models.IntPtr(table),
				Home:  []int{home + 1},
				Away:  []int{away + 1},
			})
		}
	}
	if bye != nil {
		round.Matchups = append(round.Matchups, *bye)
	}
	return round
}
