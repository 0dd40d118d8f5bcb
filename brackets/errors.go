package brackets

import "errors"

var (
	ErrInsufficientEntities = errors.New("not enough entities to form a matchup")
	ErrInvalidRoundCount    = errors.New("round count must be positive")
	ErrInvalidBracketSize   = errors.New("playoff bracket size must be a power of two and at least 2")
	ErrInvalidDivisionCount = errors.New("division count must be positive and not exceed the team count")
	ErrInvalidSeeds         = errors.New("entity seeds must be a permutation of 1..N")
	ErrSeriesUndecided      = errors.New("playoff series has no winner yet")
)
