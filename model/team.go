package model

import "fmt"

// Team is one franchise inside a league. The platform-specific identifier is
// ESPNTeamID for ESPN leagues and SleeperRosterID for Sleeper leagues.
type Team struct {
	ID       int32 `json:"id"`
	LeagueID int32 `json:"league_id"`

	ESPNTeamID      int32  `json:"espn_team_id,omitempty"`
	SleeperRosterID int32  `json:"sleeper_roster_id,omitempty"`
	SleeperOwnerID  string `json:"sleeper_owner_id,omitempty"`

	Name    string `json:"name"`
	Abbrev  string `json:"abbrev,omitempty"`
	LogoURL string `json:"logo_url,omitempty"`

	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`

	PointsFor     float64 `json:"points_for"`
	PointsAgainst float64 `json:"points_against"`
}

// PlatformTeamID is the natural key of the team inside its league.
func (t *Team) PlatformTeamID() string {
	if t.SleeperRosterID != 0 || t.SleeperOwnerID != "" {
		return fmt.Sprintf("%d", t.SleeperRosterID)
	}
	return fmt.Sprintf("%d", t.ESPNTeamID)
}
