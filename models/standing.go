package models

import "time"

// Standing is a persisted row of a tabulation. RankAdj is a manual override
// entered by the tournament director and wins over the computed rank.
type Standing struct {
	ID            int       `json:"id" db:"id"`
	TournamentID  int       `json:"tournament_id" db:"tournament_id"`
	Stage         Stage     `json:"stage" db:"stage"`
	Division      int       `json:"division,omitempty" db:"division"`
	EntityID      EntityID  `json:"entity_id" db:"entity_id"`
	Wins          int       `json:"wins" db:"wins"`
	Losses        int       `json:"losses" db:"losses"`
	Byes          int       `json:"byes" db:"byes"`
	PointsFor     int       `json:"points_for" db:"points_for"`
	PointsAgainst int       `json:"points_against" db:"points_against"`
	WinPct        float64   `json:"win_pct" db:"win_pct"`
	PointsPct     float64   `json:"points_pct" db:"points_pct"`
	Rank          int       `json:"rank" db:"rank"`
	Position      int       `json:"position" db:"position"`
	Tied          bool      `json:"tied" db:"tied"`
	Cyclic        bool      `json:"cyclic" db:"cyclic"`
	RankAdj       *int      `json:"rank_adj,omitempty" db:"rank_adj"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// FinalRank is the manual adjustment when present, else the computed rank.
func (s Standing) FinalRank() int {
	if s.RankAdj != nil {
		return *s.RankAdj
	}
	return s.Rank
}

// NewStanding flattens a ranked row into its persisted form.
func NewStanding(tournamentID int, stage Stage, division int, r RankedEntity) *Standing {
	return &Standing{
		TournamentID:  tournamentID,
		Stage:         stage,
		Division:      division,
		EntityID:      r.EntityID,
		Wins:          r.Record.Wins,
		Losses:        r.Record.Losses,
		Byes:          r.Record.Byes,
		PointsFor:     r.Record.PointsFor,
		PointsAgainst: r.Record.PointsAgainst,
		WinPct:        r.Record.WinPct(),
		PointsPct:     r.Record.PointsPct(),
		Rank:          r.Rank,
		Position:      r.Position,
		Tied:          r.Tied,
		Cyclic:        r.Cyclic,
	}
}
