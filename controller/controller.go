package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/itbasis/go-clock"

	"github.com/djmorgan26/fantasy-football-assistant/db"
	"github.com/djmorgan26/fantasy-football-assistant/llm"
	"github.com/djmorgan26/fantasy-football-assistant/model"
	"github.com/djmorgan26/fantasy-football-assistant/platforms/espn"
	"github.com/djmorgan26/fantasy-football-assistant/platforms/sleeper"
	"github.com/djmorgan26/fantasy-football-assistant/vault"
)

// ErrNotLeagueMember is returned when a user tries to connect a league
// whose member list does not include them.
var ErrNotLeagueMember = errors.New("user is not a member of the league")

// C encapsulates business logic without worrying about any web layers
type C interface {
	// ConnectESPNLeague connects an ESPN league and runs the first sync.
	// Credentials may be empty for public leagues and are encrypted before
	// they are stored.
	ConnectESPNLeague(ctx context.Context, espnLeagueID, s2, swid string, ownerUserID int32) (*model.League, error)
	// ConnectSleeperLeague connects a Sleeper league after verifying that
	// sleeperUserID is a member of the league.
	ConnectSleeperLeague(ctx context.Context, sleeperLeagueID, sleeperUserID string, ownerUserID int32) (*model.League, error)
	GetLeague(ctx context.Context, id int32) (*model.League, error)
	ListLeagues(ctx context.Context) ([]model.League, error)
	// SyncLeague refetches the league, its teams and its waiver budgets
	// from the platform and persists them.
	SyncLeague(ctx context.Context, id int32) (*model.League, error)
	// DisconnectLeague deactivates a league. The row and its history stay.
	DisconnectLeague(ctx context.Context, id int32) error

	GetTeams(ctx context.Context, leagueID int32) ([]model.Team, error)
	// GetTeamRoster loads the roster fresh from the platform for the given
	// week, or the league's current week when week is zero.
	GetTeamRoster(ctx context.Context, leagueID, teamID int32, week int) ([]model.RosterEntry, error)
	GetMatchups(ctx context.Context, leagueID int32, week int) ([]model.Matchup, error)
	GetAvailablePlayers(ctx context.Context, leagueID int32, week int, position string) ([]model.AvailablePlayer, error)
	GetWaiverBudgets(ctx context.Context, leagueID int32) ([]model.WaiverBudget, error)
	// GetTrendingPlayers lists Sleeper's most added or dropped players.
	// trendType is "add" or "drop".
	GetTrendingPlayers(ctx context.Context, trendType string, lookbackHours, limit int) ([]model.TrendingPlayer, error)
	// GetSleeperLeagues lists a Sleeper user's leagues so one can be picked
	// for connecting. identifier may be a username or a user id.
	GetSleeperLeagues(ctx context.Context, identifier string, season int) ([]model.League, error)

	// AnalyzeTrade validates the trade against both live rosters and scores
	// it. The numeric score is always computed even when the richer
	// text analysis is available.
	AnalyzeTrade(ctx context.Context, t *model.Trade) (*model.TradeAnalysis, error)
	CreateTrade(ctx context.Context, t *model.Trade) (*model.Trade, error)
	GetTrade(ctx context.Context, id int32) (*model.Trade, error)
	ListTrades(ctx context.Context, leagueID int32) ([]model.Trade, error)
	UpdateTradeStatus(ctx context.Context, id int32, status string) error
	ExpireTrades(ctx context.Context) error
	RunPeriodicTradeExpiry(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup)

	GetSuggestions(ctx context.Context, leagueID, teamID int32) ([]llm.Suggestion, error)
	GetWeeklyRecap(ctx context.Context, leagueID int32, week int) (string, error)
}

type controller struct {
	clock   clock.Clock
	db      db.DB
	espn    *espn.Client
	sleeper *sleeper.Client
	llm     *llm.Client
	vault   *vault.Vault
}

func New(clock clock.Clock, db db.DB, espn *espn.Client, sleeper *sleeper.Client, llm *llm.Client, vault *vault.Vault) (C, error) {
	c := &controller{
		clock:   clock,
		db:      db,
		espn:    espn,
		sleeper: sleeper,
		llm:     llm,
		vault:   vault,
	}
	return c, nil
}

// When we need to make calls that are specific to a platform, grab a platform
// adapter and it will do it. This is internal to the controller package.
type platformAdapter interface {
	getLeague(ctx context.Context, l *model.League) (*model.League, error)
	getTeams(ctx context.Context, l *model.League) ([]model.Team, error)
	getTeamRoster(ctx context.Context, l *model.League, t *model.Team, week int) ([]model.RosterEntry, error)
	getMatchups(ctx context.Context, l *model.League, week int) ([]model.Matchup, error)
	getAvailablePlayers(ctx context.Context, l *model.League, week int, position string) ([]model.AvailablePlayer, error)
	getWaiverBudgets(ctx context.Context, l *model.League) ([]model.WaiverBudget, error)
}

func getPlatformAdapter(platform string, c *controller) platformAdapter {
	switch platform {
	case model.PlatformESPN:
		return &espnAdapter{c}
	case model.PlatformSleeper:
		return &sleeperAdapter{c}
	default:
		return &nilPlatformAdapter{err: fmt.Errorf("%s is not a supported platform", platform)}
	}
}

// nilPlatformAdapter exists so that we can always return an adapter and simplify the usage.
// It eliminates the need for an extra error check.
type nilPlatformAdapter struct {
	err error
}

func (a *nilPlatformAdapter) getLeague(ctx context.Context, l *model.League) (*model.League, error) {
	return nil, a.err
}

func (a *nilPlatformAdapter) getTeams(ctx context.Context, l *model.League) ([]model.Team, error) {
	return nil, a.err
}

func (a *nilPlatformAdapter) getTeamRoster(ctx context.Context, l *model.League, t *model.Team, week int) ([]model.RosterEntry, error) {
	return nil, a.err
}

func (a *nilPlatformAdapter) getMatchups(ctx context.Context, l *model.League, week int) ([]model.Matchup, error) {
	return nil, a.err
}

func (a *nilPlatformAdapter) getAvailablePlayers(ctx context.Context, l *model.League, week int, position string) ([]model.AvailablePlayer, error) {
	return nil, a.err
}

func (a *nilPlatformAdapter) getWaiverBudgets(ctx context.Context, l *model.League) ([]model.WaiverBudget, error) {
	return nil, a.err
}
