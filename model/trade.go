package model

import (
	"fmt"
	"time"
)

// Trade status lifecycle. A pending trade expires TradeTTL after creation.
const (
	TradePending   = "PENDING"
	TradeAccepted  = "ACCEPTED"
	TradeRejected  = "REJECTED"
	TradeExpired   = "EXPIRED"
	TradeCancelled = "CANCELLED"
)

const (
	TradeTTL        = 7 * 24 * time.Hour
	maxTradePlayers = 10
)

func IsTradeStatus(s string) bool {
	switch s {
	case TradePending, TradeAccepted, TradeRejected, TradeExpired, TradeCancelled:
		return true
	}
	return false
}

// Trade is a proposed player swap between two teams in the same league.
type Trade struct {
	ID       int32 `json:"id"`
	LeagueID int32 `json:"league_id"`
	UserID   int32 `json:"user_id"`

	ProposingTeamID int32 `json:"proposing_team_id"`
	ReceivingTeamID int32 `json:"receiving_team_id"`

	GivePlayers    []string `json:"give_players"`
	ReceivePlayers []string `json:"receive_players"`

	Status string `json:"status"`

	FairnessScore   float64 `json:"fairness_score"`
	ValueDifference float64 `json:"value_difference"`
	AnalysisSummary string  `json:"analysis_summary,omitempty"`

	Created   time.Time `json:"created"`
	Updated   time.Time `json:"updated,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Validate checks the structural invariants of a trade proposal. Roster
// membership of the named players is checked separately against live data.
func (t *Trade) Validate() error {
	if t.ProposingTeamID == t.ReceivingTeamID {
		return &ValidationError{Field: "receiving_team_id", Reason: "a team cannot trade with itself"}
	}
	if err := validatePlayerSet("give_players", t.GivePlayers); err != nil {
		return err
	}
	if err := validatePlayerSet("receive_players", t.ReceivePlayers); err != nil {
		return err
	}
	given := make(map[string]bool, len(t.GivePlayers))
	for _, id := range t.GivePlayers {
		given[id] = true
	}
	for _, id := range t.ReceivePlayers {
		if given[id] {
			return &ValidationError{Field: "receive_players", Reason: fmt.Sprintf("player %s appears on both sides of the trade", id)}
		}
	}
	return nil
}

func validatePlayerSet(field string, ids []string) error {
	if len(ids) == 0 {
		return &ValidationError{Field: field, Reason: "at least one player is required"}
	}
	if len(ids) > maxTradePlayers {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("at most %d players can be traded, got %d", maxTradePlayers, len(ids))}
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" {
			return &ValidationError{Field: field, Reason: "player ids must not be empty"}
		}
		if seen[id] {
			return &ValidationError{Field: field, Reason: fmt.Sprintf("player %s is listed twice", id)}
		}
		seen[id] = true
	}
	return nil
}

// TradeAnalysis is the outcome of analyzing a proposed trade. The numeric
// fairness score and value difference are always the deterministic
// computation; Summary and Recommendations may come from the richer
// text-generation collaborator when it is available.
type TradeAnalysis struct {
	IsValid         bool     `json:"is_valid"`
	FairnessScore   float64  `json:"fairness_score"`
	ValueDifference float64  `json:"value_difference"`
	Verdict         string   `json:"verdict"`
	Summary         string   `json:"summary"`
	Recommendations []string `json:"recommendations"`

	GiveDetails    []TradePlayerDetail `json:"give_details"`
	ReceiveDetails []TradePlayerDetail `json:"receive_details"`
}

// TradePlayerDetail describes one player involved in a trade analysis.
type TradePlayerDetail struct {
	PlayerID        string  `json:"player_id"`
	Name            string  `json:"name"`
	Position        string  `json:"position"`
	ProjectedPoints float64 `json:"projected_points"`
}
