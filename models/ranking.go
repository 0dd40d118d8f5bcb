package models

import (
	"slices"
	"strconv"
)

// Cycle is an elementary cycle in a cohort's beat graph, listed from its
// smallest entity id: each entity beat the next, and the last beat the first.
type Cycle []EntityID

func (c Cycle) Contains(id EntityID) bool {
	return slices.Contains(c, id)
}

// Elevation records that Winner was moved ahead of Loser on the strength of
// their head-to-head meetings.
type Elevation struct {
	Winner EntityID `json:"winner"`
	Loser  EntityID `json:"loser"`
}

// RankedEntity is one row of a rank assignment. Rank is the unique display
// order and runs 1..n without gaps. Position is the reported place in
// competition style: entities whose tie could not be broken share it and the
// next group skips ahead, so positions read 1, 1, 3 where ranks read 1, 2, 3.
type RankedEntity struct {
	EntityID   EntityID  `json:"entity_id"`
	Record     Record    `json:"record"`
	Rank       int       `json:"rank"`
	Position   int       `json:"position"`
	Tied       bool      `json:"tied"`
	Cyclic     bool      `json:"cyclic"`
	CohortSize int       `json:"cohort_size"`
	HeadToHead Record    `json:"head_to_head"`
	Criteria   []float64 `json:"criteria,omitempty"`
}

// PositionLabel renders the position, starred when the tie is unresolved.
func (r RankedEntity) PositionLabel() string {
	s := strconv.Itoa(r.Position)
	if r.Tied {
		s += "*"
	}
	return s
}
