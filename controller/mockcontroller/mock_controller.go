package mockcontroller

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/djmorgan26/fantasy-football-assistant/llm"
	"github.com/djmorgan26/fantasy-football-assistant/model"
)

// C is a testify mock of controller.C for web layer tests.
type C struct {
	mock.Mock
}

func (c *C) ConnectESPNLeague(ctx context.Context, espnLeagueID, s2, swid string, ownerUserID int32) (*model.League, error) {
	args := c.Called(ctx, espnLeagueID, s2, swid, ownerUserID)

	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}
	return l, args.Error(1)
}

func (c *C) ConnectSleeperLeague(ctx context.Context, sleeperLeagueID, sleeperUserID string, ownerUserID int32) (*model.League, error) {
	args := c.Called(ctx, sleeperLeagueID, sleeperUserID, ownerUserID)

	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}
	return l, args.Error(1)
}

func (c *C) GetLeague(ctx context.Context, id int32) (*model.League, error) {
	args := c.Called(ctx, id)

	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}
	return l, args.Error(1)
}

func (c *C) ListLeagues(ctx context.Context) ([]model.League, error) {
	args := c.Called(ctx)

	var leagues []model.League
	if args.Get(0) != nil {
		leagues = args.Get(0).([]model.League)
	}
	return leagues, args.Error(1)
}

func (c *C) SyncLeague(ctx context.Context, id int32) (*model.League, error) {
	args := c.Called(ctx, id)

	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}
	return l, args.Error(1)
}

func (c *C) DisconnectLeague(ctx context.Context, id int32) error {
	args := c.Called(ctx, id)
	return args.Error(0)
}

func (c *C) GetTeams(ctx context.Context, leagueID int32) ([]model.Team, error) {
	args := c.Called(ctx, leagueID)

	var teams []model.Team
	if args.Get(0) != nil {
		teams = args.Get(0).([]model.Team)
	}
	return teams, args.Error(1)
}

func (c *C) GetTeamRoster(ctx context.Context, leagueID, teamID int32, week int) ([]model.RosterEntry, error) {
	args := c.Called(ctx, leagueID, teamID, week)

	var roster []model.RosterEntry
	if args.Get(0) != nil {
		roster = args.Get(0).([]model.RosterEntry)
	}
	return roster, args.Error(1)
}

func (c *C) GetMatchups(ctx context.Context, leagueID int32, week int) ([]model.Matchup, error) {
	args := c.Called(ctx, leagueID, week)

	var matchups []model.Matchup
	if args.Get(0) != nil {
		matchups = args.Get(0).([]model.Matchup)
	}
	return matchups, args.Error(1)
}

func (c *C) GetAvailablePlayers(ctx context.Context, leagueID int32, week int, position string) ([]model.AvailablePlayer, error) {
	args := c.Called(ctx, leagueID, week, position)

	var players []model.AvailablePlayer
	if args.Get(0) != nil {
		players = args.Get(0).([]model.AvailablePlayer)
	}
	return players, args.Error(1)
}

func (c *C) GetWaiverBudgets(ctx context.Context, leagueID int32) ([]model.WaiverBudget, error) {
	args := c.Called(ctx, leagueID)

	var budgets []model.WaiverBudget
	if args.Get(0) != nil {
		budgets = args.Get(0).([]model.WaiverBudget)
	}
	return budgets, args.Error(1)
}

func (c *C) GetSleeperLeagues(ctx context.Context, identifier string, season int) ([]model.League, error) {
	args := c.Called(ctx, identifier, season)

	var leagues []model.League
	if args.Get(0) != nil {
		leagues = args.Get(0).([]model.League)
	}
	return leagues, args.Error(1)
}

func (c *C) GetTrendingPlayers(ctx context.Context, trendType string, lookbackHours, limit int) ([]model.TrendingPlayer, error) {
	args := c.Called(ctx, trendType, lookbackHours, limit)

	var players []model.TrendingPlayer
	if args.Get(0) != nil {
		players = args.Get(0).([]model.TrendingPlayer)
	}
	return players, args.Error(1)
}

func (c *C) AnalyzeTrade(ctx context.Context, t *model.Trade) (*model.TradeAnalysis, error) {
	args := c.Called(ctx, t)

	var analysis *model.TradeAnalysis
	if args.Get(0) != nil {
		analysis = args.Get(0).(*model.TradeAnalysis)
	}
	return analysis, args.Error(1)
}

func (c *C) CreateTrade(ctx context.Context, t *model.Trade) (*model.Trade, error) {
	args := c.Called(ctx, t)

	var trade *model.Trade
	if args.Get(0) != nil {
		trade = args.Get(0).(*model.Trade)
	}
	return trade, args.Error(1)
}

func (c *C) GetTrade(ctx context.Context, id int32) (*model.Trade, error) {
	args := c.Called(ctx, id)

	var trade *model.Trade
	if args.Get(0) != nil {
		trade = args.Get(0).(*model.Trade)
	}
	return trade, args.Error(1)
}

func (c *C) ListTrades(ctx context.Context, leagueID int32) ([]model.Trade, error) {
	args := c.Called(ctx, leagueID)

	var trades []model.Trade
	if args.Get(0) != nil {
		trades = args.Get(0).([]model.Trade)
	}
	return trades, args.Error(1)
}

func (c *C) UpdateTradeStatus(ctx context.Context, id int32, status string) error {
	args := c.Called(ctx, id, status)
	return args.Error(0)
}

func (c *C) ExpireTrades(ctx context.Context) error {
	args := c.Called(ctx)
	return args.Error(0)
}

func (c *C) RunPeriodicTradeExpiry(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	c.Called(frequency, shutdown, wg)
}

func (c *C) GetSuggestions(ctx context.Context, leagueID, teamID int32) ([]llm.Suggestion, error) {
	args := c.Called(ctx, leagueID, teamID)

	var suggestions []llm.Suggestion
	if args.Get(0) != nil {
		suggestions = args.Get(0).([]llm.Suggestion)
	}
	return suggestions, args.Error(1)
}

func (c *C) GetWeeklyRecap(ctx context.Context, leagueID int32, week int) (string, error) {
	args := c.Called(ctx, leagueID, week)
	return args.String(0), args.Error(1)
}
