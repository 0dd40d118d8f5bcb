package models

import "time"

// Stage identifies which part of the tournament a game or standing belongs to.
type Stage string

const (
	StageSeed       Stage = "seed"
	StageRoundRobin Stage = "round_robin"
	StageSemis      Stage = "semis"
	StageFinals     Stage = "finals"
)

func (s Stage) Valid() bool {
	switch s {
	case StageSeed, StageRoundRobin, StageSemis, StageFinals:
		return true
	}
	return false
}

// IsPlayoff reports whether games in the stage are played as best-of series.
func (s Stage) IsPlayoff() bool {
	return s == StageSemis || s == StageFinals
}

// Default tournament shape.
const (
	DefaultSeedRounds  = 8
	DefaultTournRounds = 8
	DefaultDivisions   = 2
)

// Tournament holds the parameters the schedulers need. Workflow state
// (which stage is active) is tracked by Stage and owned by the caller.
type Tournament struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Venue       *string   `json:"venue,omitempty" db:"venue"`
	SeedRounds  int       `json:"seed_rounds" db:"seed_rounds"`
	TournRounds int       `json:"tourn_rounds" db:"tourn_rounds"`
	Divisions   int       `json:"divisions" db:"divisions"`
	Stage       Stage     `json:"stage" db:"stage"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
