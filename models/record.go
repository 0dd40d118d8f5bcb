package models

import (
	"fmt"
	"strings"
)

// Record is a per-entity aggregate derived from concluded games. Percentages
// are computed on demand and never stored rounded.
type Record struct {
	EntityID      EntityID `json:"entity_id"`
	Wins          int      `json:"wins"`
	Losses        int      `json:"losses"`
	PointsFor     int      `json:"points_for"`
	PointsAgainst int      `json:"points_against"`
	Byes          int      `json:"byes"`
}

// Played is the number of concluded, non-bye games.
func (r Record) Played() int {
	return r.Wins + r.Losses
}

func (r Record) WinPct() float64 {
	if r.Played() == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Played())
}

// HasPoints reports whether any points were scored for or against.
func (r Record) HasPoints() bool {
	return r.PointsFor+r.PointsAgainst > 0
}

func (r Record) PointsPct() float64 {
	if !r.HasPoints() {
		return 0
	}
	return float64(r.PointsFor) / float64(r.PointsFor+r.PointsAgainst)
}

func (r Record) PointsDiff() int {
	return r.PointsFor - r.PointsAgainst
}

// FormatPct renders a fraction in the usual standings style: ".667",
// "1.000", or a dash when there is nothing to show.
func FormatPct(pct float64, ok bool) string {
	if !ok {
		return "-"
	}
	s := fmt.Sprintf("%.3f", pct)
	if strings.HasPrefix(s, "0.") {
		return s[1:]
	}
	return s
}
