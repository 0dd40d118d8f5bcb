package models

// Matchup is a scheduled pairing expressed in seed space. Home and Away hold
// the 1-based seeds of the entities on each side. A nil Table marks a bye
// group, listed in Home.
type Matchup struct {
	Round int   `json:"round" yaml:"round"`
	Table *int  `json:"table,omitempty" yaml:"table,omitempty"`
	Home  []int `json:"home" yaml:"home,flow"`
	Away  []int `json:"away,omitempty" yaml:"away,flow,omitempty"`
}

func (m Matchup) IsBye() bool {
	return m.Table == nil
}

// Seeds returns every seed in the matchup, home side first.
func (m Matchup) Seeds() []int {
	out := make([]int, 0, len(m.Home)+len(m.Away))
	out = append(out, m.Home...)
	return append(out, m.Away...)
}

type Round struct {
	Number   int       `json:"number" yaml:"number"`
	Matchups []Matchup `json:"matchups" yaml:"matchups"`
}

// Schedule is an ordered list of rounds. Division is zero for schedules that
// are not split by division.
type Schedule struct {
	Division int     `json:"division,omitempty" yaml:"division,omitempty"`
	Rounds   []Round `json:"rounds" yaml:"rounds"`
}

// Division is a group of teams playing their own round robin. Entity seeds
// inside a division are division seeds.
type Division struct {
	Number   int      `json:"number"`
	Entities []Entity `json:"entities"`
}
