package internal

// LeagueResponse is the single response envelope ESPN returns for every
// league endpoint. Which sections are populated depends on the view query
// parameter the request carried.
type LeagueResponse struct {
	ID              int64          `json:"id"`
	ScoringPeriodID int            `json:"scoringPeriodId"`
	Status          *Status        `json:"status"`
	Settings        *Settings      `json:"settings"`
	Teams           []Team         `json:"teams"`
	Schedule        []ScheduleItem `json:"schedule"`
	Players         []PlayerEntry  `json:"players"`
}

type Status struct {
	CurrentMatchupPeriod int  `json:"currentMatchupPeriod"`
	IsActive             bool `json:"isActive"`
}

type Settings struct {
	Name                string               `json:"name"`
	RosterSettings      *RosterSettings      `json:"rosterSettings"`
	ScoringSettings     *ScoringSettings     `json:"scoringSettings"`
	AcquisitionSettings *AcquisitionSettings `json:"acquisitionSettings"`
}

type RosterSettings struct {
	RosterSize       int            `json:"rosterSize"`
	PositionLimits   map[string]int `json:"positionLimits"`
	LineupSlotCounts map[string]int `json:"lineupSlotCounts"`
}

type ScoringSettings struct {
	ScoringItems   []ScoringItem `json:"scoringItems"`
	PlayerRankType string        `json:"playerRankType"`
	ScoringType    string        `json:"scoringType"`
}

type ScoringItem struct {
	StatID int     `json:"statId"`
	Points float64 `json:"points"`
}

type AcquisitionSettings struct {
	Budget *float64 `json:"budget"`
}

type Team struct {
	ID                 int32               `json:"id"`
	Name               string              `json:"name"`
	Location           string              `json:"location"`
	Nickname           string              `json:"nickname"`
	Abbrev             string              `json:"abbrev"`
	Logo               string              `json:"logo"`
	Record             *Record             `json:"record"`
	Roster             *Roster             `json:"roster"`
	TransactionCounter *TransactionCounter `json:"transactionCounter"`
}

type Record struct {
	Overall *RecordLine `json:"overall"`
}

type RecordLine struct {
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	PointsFor     float64 `json:"pointsFor"`
	PointsAgainst float64 `json:"pointsAgainst"`
}

type TransactionCounter struct {
	AcquisitionBudgetSpent float64 `json:"acquisitionBudgetSpent"`
}

type Roster struct {
	Entries []RosterEntry `json:"entries"`
}

type RosterEntry struct {
	LineupSlotID    int              `json:"lineupSlotId"`
	PlayerPoolEntry *PlayerPoolEntry `json:"playerPoolEntry"`
}

type PlayerPoolEntry struct {
	Player *Player `json:"player"`
}

// PlayerEntry wraps a Player in the free-agent listing. OnTeamID is nil for
// players not on any roster.
type PlayerEntry struct {
	OnTeamID *int32  `json:"onTeamId"`
	Player   *Player `json:"player"`
}

type Player struct {
	ID                int64       `json:"id"`
	FullName          string      `json:"fullName"`
	DefaultPositionID int         `json:"defaultPositionId"`
	ProTeamID         int         `json:"proTeamId"`
	InjuryStatus      string      `json:"injuryStatus"`
	Stats             []StatEntry `json:"stats"`
}

// StatEntry is one stat line for a player. StatSourceID 0 carries actual
// stats, 1 carries projections.
type StatEntry struct {
	ScoringPeriodID int                `json:"scoringPeriodId"`
	StatSourceID    int                `json:"statSourceId"`
	AppliedTotal    *float64           `json:"appliedTotal"`
	Stats           map[string]float64 `json:"stats"`
}

type ScheduleItem struct {
	ID              int64     `json:"id"`
	MatchupPeriodID int       `json:"matchupPeriodId"`
	PlayoffTierType string    `json:"playoffTierType"`
	Winner          string    `json:"winner"`
	Home            *SideTeam `json:"home"`
	Away            *SideTeam `json:"away"`
}

// SideTeam is one side of a scheduled matchup. TotalPointsLive is only
// present while games are in progress.
type SideTeam struct {
	TeamID                int32              `json:"teamId"`
	TotalPoints           float64            `json:"totalPoints"`
	TotalPointsLive       *float64           `json:"totalPointsLive"`
	PointsByScoringPeriod map[string]float64 `json:"pointsByScoringPeriod"`
}
