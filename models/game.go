package models

import "fmt"

// GamePoints is the default winning threshold for a euchre game.
const GamePoints = 10

// Side is one side of a game: the entities seated on it and the points it
// finished with. Points stay nil until the game concludes.
type Side struct {
	Entities []EntityID `json:"entities"`
	Points   *int       `json:"points,omitempty"`
}

// Has reports whether id plays on this side.
func (s Side) Has(id EntityID) bool {
	for _, e := range s.Entities {
		if e == id {
			return true
		}
	}
	return false
}

// Game is one scheduled matchup. A nil Table marks a bye, in which case
// Side1 lists the entities sitting out and Side2 is empty.
type Game struct {
	ID           int    `json:"id" db:"id"`
	TournamentID int    `json:"tournament_id" db:"tournament_id"`
	Stage        Stage  `json:"stage" db:"stage"`
	Label        string `json:"label" db:"label"`
	Division     int    `json:"division,omitempty" db:"division"`
	Round        int    `json:"round" db:"round"`
	Table        *int   `json:"table,omitempty" db:"table_num"`
	Side1        Side   `json:"side1"`
	Side2        Side   `json:"side2"`
}

func (g Game) IsBye() bool {
	return g.Table == nil
}

// Concluded reports whether both sides have recorded points.
func (g Game) Concluded() bool {
	return !g.IsBye() && g.Side1.Points != nil && g.Side2.Points != nil
}

// Pending reports whether neither side has recorded points.
func (g Game) Pending() bool {
	return g.Side1.Points == nil && g.Side2.Points == nil
}

// Entities returns every entity referenced by the game, side 1 first.
func (g Game) Entities() []EntityID {
	out := make([]EntityID, 0, len(g.Side1.Entities)+len(g.Side2.Entities))
	out = append(out, g.Side1.Entities...)
	return append(out, g.Side2.Entities...)
}

// Opposes reports whether a and b sit on opposite sides of the game.
func (g Game) Opposes(a, b EntityID) bool {
	return (g.Side1.Has(a) && g.Side2.Has(b)) || (g.Side2.Has(a) && g.Side1.Has(b))
}

// IntPtr is a small helper for optional table numbers and points.
func IntPtr(v int) *int {
	return &v
}

// Outcome returns 1 or 2 for the winning side of a concluded game and 0 for
// a bye or a game with no points yet. threshold is the winning score.
func (g Game) Outcome(threshold int) (int, error) {
	p1, p2 := g.Side1.Points, g.Side2.Points
	if g.IsBye() {
		if p1 != nil || p2 != nil {
			return 0, fmt.Errorf("%w: bye %q carries points", ErrInconsistentGameRecord, g.Label)
		}
		return 0, nil
	}
	if len(g.Side1.Entities) == 0 || len(g.Side2.Entities) == 0 {
		return 0, fmt.Errorf("%w: game %q has an empty side", ErrInconsistentGameRecord, g.Label)
	}
	switch {
	case p1 == nil && p2 == nil:
		return 0, nil
	case p1 == nil || p2 == nil:
		return 0, fmt.Errorf("%w: game %q has points for one side only", ErrInconsistentGameRecord, g.Label)
	case *p1 < 0 || *p2 < 0:
		return 0, fmt.Errorf("%w: game %q has negative points (%d-%d)", ErrInconsistentGameRecord, g.Label, *p1, *p2)
	case *p1 >= threshold && *p2 < threshold:
		return 1, nil
	case *p2 >= threshold && *p1 < threshold:
		return 2, nil
	default:
		return 0, fmt.Errorf("%w: game %q score %d-%d needs exactly one side at %d or more",
			ErrInconsistentGameRecord, g.Label, *p1, *p2, threshold)
	}
}
