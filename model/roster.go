package model

// Lineup slot classification shared by both platforms. ESPN reserves numeric
// slot ids for bench and injured reserve; Sleeper reports membership lists.
const (
	SlotStarter = "starter"
	SlotBench   = "bench"
	SlotIR      = "ir"
)

// RosterEntry is one player on a team's roster for a given week. Entries are
// derived fresh from the platform on every request and never persisted.
type RosterEntry struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	ProTeam  string `json:"pro_team,omitempty"`

	LineupSlotID int    `json:"lineup_slot_id,omitempty"`
	SlotName     string `json:"slot_name,omitempty"`
	Slot         string `json:"slot"` // SlotStarter, SlotBench or SlotIR

	InjuryStatus string `json:"injury_status,omitempty"`

	// Week stats, bucketed by stat source. HasProjection distinguishes
	// "no projection published" from a projected zero.
	ProjectedPoints float64 `json:"projected_points"`
	HasProjection   bool    `json:"has_projection"`
	ActualPoints    float64 `json:"actual_points"`

	ProjectedStats map[string]float64 `json:"projected_stats,omitempty"`
	ActualStats    map[string]float64 `json:"actual_stats,omitempty"`
}

// IsStarter reports whether this entry counts toward a team's projected score.
func (e *RosterEntry) IsStarter() bool {
	return e.Slot == SlotStarter
}

// AvailablePlayer is a free agent in a league, not on any roster.
type AvailablePlayer struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	ProTeam  string `json:"pro_team,omitempty"`

	InjuryStatus string `json:"injury_status,omitempty"`
	Active       bool   `json:"active"`

	SeasonPoints    float64 `json:"season_points"`
	AveragePoints   float64 `json:"average_points"`
	ProjectedPoints float64 `json:"projected_points"`
}
