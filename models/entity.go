package models

// EntityID is the stable identity of a player or a team.
type EntityID int

// Entity is a player or a team as seen by the schedulers and rankers.
// Seed is the 1-based scheduling rank within the set being scheduled.
type Entity struct {
	ID   EntityID `json:"id" db:"id"`
	Seed int      `json:"seed" db:"seed"`
	Name string   `json:"name,omitempty" db:"name"`
}

// EntityKind distinguishes players from teams in storage.
type EntityKind string

const (
	KindPlayer EntityKind = "player"
	KindTeam   EntityKind = "team"
)

// Player is a rostered player. Num is the random draw number used to seat
// the seed round; PlayerSeed is the rank earned in the seed round.
type Player struct {
	ID            EntityID `json:"id" db:"id"`
	TournamentID  int      `json:"tournament_id" db:"tournament_id"`
	Name          string   `json:"name" db:"name"`
	Num           int      `json:"num" db:"num"`
	PlayerSeed    *int     `json:"player_seed,omitempty" db:"player_seed"`
	ReigningChamp bool     `json:"reigning_champ" db:"reigning_champ"`
}

// Team is a partnership formed after the seed round. Three-player teams are
// allowed when the player count is odd.
type Team struct {
	ID           EntityID   `json:"id" db:"id"`
	TournamentID int        `json:"tournament_id" db:"tournament_id"`
	Name         string     `json:"name" db:"name"`
	Players      []EntityID `json:"players" db:"players"`
	TeamSeed     *int       `json:"team_seed,omitempty" db:"team_seed"`
	Division     *int       `json:"division,omitempty" db:"division"`
	DivSeed      *int       `json:"div_seed,omitempty" db:"div_seed"`
}

// IsThreeHeaded reports whether the team carries a third player.
func (t Team) IsThreeHeaded() bool {
	return len(t.Players) == 3
}
