package internal

type User struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
}

type League struct {
	LeagueID        string             `json:"league_id"`
	Name            string             `json:"name"`
	Season          string             `json:"season"`
	TotalRosters    int                `json:"total_rosters"`
	Status          string             `json:"status"`
	Settings        *LeagueSettings    `json:"settings"`
	ScoringSettings map[string]float64 `json:"scoring_settings"`
	RosterPositions []string           `json:"roster_positions"`
}

// LeagueSettings is the subset of Sleeper's settings blob we read. Leg is
// the current week of the season.
type LeagueSettings struct {
	Leg          int      `json:"leg"`
	WaiverBudget *float64 `json:"waiver_budget"`
}

type Roster struct {
	RosterID int             `json:"roster_id"`
	OwnerID  string          `json:"owner_id"`
	Players  []string        `json:"players"`
	Starters []string        `json:"starters"`
	Reserve  []string        `json:"reserve"`
	Settings *RosterSettings `json:"settings"`
}

type RosterSettings struct {
	Wins             int     `json:"wins"`
	Losses           int     `json:"losses"`
	Ties             int     `json:"ties"`
	FPts             float64 `json:"fpts"`
	FPtsAgainst      float64 `json:"fpts_against"`
	WaiverBudgetUsed float64 `json:"waiver_budget_used"`
}

type LeagueUser struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

// MatchupRow is one roster's entry for a week. Rows sharing a matchup_id
// face each other; a nil MatchupID means a bye.
type MatchupRow struct {
	RosterID  int      `json:"roster_id"`
	MatchupID *int     `json:"matchup_id"`
	Points    float64  `json:"points"`
	Starters  []string `json:"starters"`
	Players   []string `json:"players"`
}

type TrendingPlayer struct {
	PlayerID string `json:"player_id"`
	Count    int    `json:"count"`
}
