package controller

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/djmorgan26/fantasy-football-assistant/model"
)

func (c *controller) AnalyzeTrade(ctx context.Context, t *model.Trade) (*model.TradeAnalysis, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	l, err := c.db.GetLeague(ctx, t.LeagueID)
	if err != nil {
		return nil, err
	}
	proposing, err := c.storedTeam(ctx, t.LeagueID, t.ProposingTeamID)
	if err != nil {
		return nil, err
	}
	receiving, err := c.storedTeam(ctx, t.LeagueID, t.ReceivingTeamID)
	if err != nil {
		return nil, err
	}

	adapter := getPlatformAdapter(l.Platform, c)
	giveRoster, err := adapter.getTeamRoster(ctx, l, proposing, l.CurrentWeek)
	if err != nil {
		return nil, fmt.Errorf("error loading proposing team roster: %w", err)
	}
	receiveRoster, err := adapter.getTeamRoster(ctx, l, receiving, l.CurrentWeek)
	if err != nil {
		return nil, fmt.Errorf("error loading receiving team roster: %w", err)
	}

	// Rosters change continuously, so membership is re-checked against the
	// live rosters on every analysis.
	giveDetails, err := tradeSide("give_players", "proposing", t.GivePlayers, giveRoster)
	if err != nil {
		return nil, err
	}
	receiveDetails, err := tradeSide("receive_players", "receiving", t.ReceivePlayers, receiveRoster)
	if err != nil {
		return nil, err
	}

	var giveTotal, receiveTotal float64
	for _, d := range giveDetails {
		giveTotal += d.ProjectedPoints
	}
	for _, d := range receiveDetails {
		receiveTotal += d.ProjectedPoints
	}

	valueDifference := receiveTotal - giveTotal
	fairness := fairnessScore(giveTotal, receiveTotal)

	analysis := &model.TradeAnalysis{
		IsValid:         true,
		FairnessScore:   fairness,
		ValueDifference: valueDifference,
		Verdict:         tradeVerdict(valueDifference),
		Summary: fmt.Sprintf(
			"Trade analysis: You give %d player(s) for %d player(s). Projected point difference: %+.1f. Fairness score: %.0f/100.",
			len(t.GivePlayers), len(t.ReceivePlayers), valueDifference, fairness),
		Recommendations: tradeRecommendations(valueDifference, fairness),
		GiveDetails:     giveDetails,
		ReceiveDetails:  receiveDetails,
	}

	// The richer narrative analysis replaces the verdict text when it is
	// available. The numeric score stays no matter what.
	if c.llm.Available() {
		verdict, err := c.llm.AnalyzeTrade(ctx, giveDetails, receiveDetails, giveRoster, receiveRoster, l.ScoringType)
		if err != nil {
			log.Printf("trade analysis text generation failed, using numeric result: %v", err)
		} else {
			analysis.Verdict = verdict.OverallVerdict
			analysis.Summary = verdict.AnalysisSummary
			if len(verdict.Recommendations) > 0 {
				analysis.Recommendations = verdict.Recommendations
			}
		}
	}

	return analysis, nil
}

func (c *controller) CreateTrade(ctx context.Context, t *model.Trade) (*model.Trade, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if _, err := c.db.GetLeague(ctx, t.LeagueID); err != nil {
		return nil, err
	}

	t.Status = model.TradePending
	t.ExpiresAt = c.clock.Now().UTC().Add(model.TradeTTL)
	if err := c.db.SaveTrade(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (c *controller) GetTrade(ctx context.Context, id int32) (*model.Trade, error) {
	return c.db.GetTrade(ctx, id)
}

func (c *controller) ListTrades(ctx context.Context, leagueID int32) ([]model.Trade, error) {
	return c.db.ListTrades(ctx, leagueID)
}

func (c *controller) UpdateTradeStatus(ctx context.Context, id int32, status string) error {
	if !model.IsTradeStatus(status) {
		return &model.ValidationError{Field: "status", Reason: fmt.Sprintf("%s is not a trade status", status)}
	}
	return c.db.UpdateTradeStatus(ctx, id, status)
}

func (c *controller) ExpireTrades(ctx context.Context) error {
	n, err := c.db.ExpireTrades(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Printf("marked %d pending trades as expired", n)
	}
	return nil
}

func (c *controller) RunPeriodicTradeExpiry(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	ticker := time.NewTicker(frequency)
	defer wg.Done()

	for {
		select {
		case <-shutdown:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := c.ExpireTrades(ctx); err != nil {
				log.Printf("%v", err)
			}
		}
	}
}

// storedTeam finds one of a league's persisted teams by its team id.
func (c *controller) storedTeam(ctx context.Context, leagueID, teamID int32) (*model.Team, error) {
	_, t, err := c.leagueTeam(ctx, leagueID, teamID)
	return t, err
}

// tradeSide resolves one side of a trade against the live roster, failing
// on the first player that is no longer rostered.
func tradeSide(field, side string, ids []string, roster []model.RosterEntry) ([]model.TradePlayerDetail, error) {
	byID := make(map[string]*model.RosterEntry, len(roster))
	for i := range roster {
		byID[roster[i].PlayerID] = &roster[i]
	}

	details := make([]model.TradePlayerDetail, 0, len(ids))
	for _, id := range ids {
		entry, ok := byID[id]
		if !ok {
			return nil, &model.ValidationError{
				Field:  field,
				Reason: fmt.Sprintf("player %s is not on the %s team roster", id, side),
			}
		}
		details = append(details, model.TradePlayerDetail{
			PlayerID:        entry.PlayerID,
			Name:            entry.Name,
			Position:        entry.Position,
			ProjectedPoints: entry.ProjectedPoints,
		})
	}
	return details, nil
}

// fairnessScore is 100 for equal value, decaying linearly with proportional
// imbalance in either direction and floored at 0. Two zero totals are
// neutral, one zero total is fully lopsided.
func fairnessScore(giveTotal, receiveTotal float64) float64 {
	if giveTotal == 0 && receiveTotal == 0 {
		return 50.0
	}
	if giveTotal == 0 {
		return 0.0
	}
	ratio := receiveTotal / giveTotal
	return math.Max(0, 100-math.Abs(ratio-1.0)*100)
}

func tradeVerdict(valueDifference float64) string {
	switch {
	case valueDifference > 2:
		return "favorable"
	case valueDifference < -2:
		return "unfavorable"
	default:
		return "balanced"
	}
}

func tradeRecommendations(valueDifference, fairness float64) []string {
	recommendations := make([]string, 0, 2)
	switch {
	case valueDifference > 5:
		recommendations = append(recommendations, "This trade favors you significantly - great deal!")
	case valueDifference > 2:
		recommendations = append(recommendations, "This trade slightly favors you")
	case valueDifference > -2:
		recommendations = append(recommendations, "This is a fairly balanced trade")
	case valueDifference > -5:
		recommendations = append(recommendations, "This trade slightly favors your opponent")
	default:
		recommendations = append(recommendations, "This trade heavily favors your opponent - consider carefully")
	}
	if fairness < 60 {
		recommendations = append(recommendations, "Consider looking for more balanced alternatives")
	}
	return recommendations
}
