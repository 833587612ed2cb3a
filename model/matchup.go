package model

// Winner of a head-to-head matchup.
const (
	WinnerHome      = "HOME"
	WinnerAway      = "AWAY"
	WinnerTie       = "TIE"
	WinnerUndecided = "UNDECIDED"
)

// TeamScore is one side of a matchup. Projected is nil when no projection
// could be computed, which is different from a projected zero.
type TeamScore struct {
	TeamID    string   `json:"team_id"`
	Score     float64  `json:"score"`
	Projected *float64 `json:"projected,omitempty"`
}

// Matchup is a single week's head-to-head pairing. Away is nil for a bye or
// for a Sleeper matchup group that did not contain exactly two rosters.
type Matchup struct {
	Week      int        `json:"week"`
	Home      *TeamScore `json:"home"`
	Away      *TeamScore `json:"away,omitempty"`
	IsPlayoff bool       `json:"is_playoff"`
	Winner    string     `json:"winner"`
}

// Paired reports whether the matchup is a real head-to-head with both sides.
func (m *Matchup) Paired() bool {
	return m.Home != nil && m.Away != nil
}
