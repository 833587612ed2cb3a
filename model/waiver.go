package model

import "math"

// DefaultWaiverBudget is the league-wide acquisition budget both platforms
// fall back to when the league settings omit one.
const DefaultWaiverBudget = 100.0

// WaiverBudget tracks a team's free-agent acquisition budget for one season.
type WaiverBudget struct {
	ID         int32 `json:"id,omitempty"`
	LeagueID   int32 `json:"league_id,omitempty"`
	TeamID     int32 `json:"team_id,omitempty"`
	SeasonYear int   `json:"season_year"`

	PlatformTeamID string `json:"platform_team_id"` // resolved to TeamID at save time

	TotalBudget   float64 `json:"total_budget"`
	SpentBudget   float64 `json:"spent_budget"`
	CurrentBudget float64 `json:"current_budget"`
}

// Reconciled reports whether current = total - spent holds. Drift means a
// stale or out-of-order sync and is surfaced to the caller, not corrected.
func (b *WaiverBudget) Reconciled() bool {
	return math.Abs(b.CurrentBudget-(b.TotalBudget-b.SpentBudget)) < 1e-9
}
