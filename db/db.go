package db

import (
	"context"

	"github.com/djmorgan26/fantasy-football-assistant/model"
)

type DB interface {
	// SaveLeague inserts a new league or updates the existing row with the
	// same platform and external league id. On insert the generated id is
	// written back to l.ID.
	SaveLeague(ctx context.Context, l *model.League) error
	GetLeague(ctx context.Context, id int32) (*model.League, error)
	GetLeagueByExternalID(ctx context.Context, platform, externalID string) (*model.League, error)
	// Lists active leagues only. Archived leagues never come back.
	ListLeagues(ctx context.Context) ([]model.League, error)
	ArchiveLeague(ctx context.Context, id int32) error
	MarkLeagueSynced(ctx context.Context, id int32) error

	// SaveTeams upserts all of the teams for a league in a single
	// transaction, keyed by (league, platform team id).
	SaveTeams(ctx context.Context, leagueID int32, teams []model.Team) error
	GetTeams(ctx context.Context, leagueID int32) ([]model.Team, error)

	// SaveWaiverBudgets resolves each budget's PlatformTeamID to a stored
	// team and upserts the (league, team, season) row in one transaction.
	SaveWaiverBudgets(ctx context.Context, leagueID int32, seasonYear int, budgets []model.WaiverBudget) error
	GetWaiverBudgets(ctx context.Context, leagueID int32, seasonYear int) ([]model.WaiverBudget, error)

	// SaveTrade inserts when t.ID is zero, filling in the generated id and
	// created time, and otherwise updates the analysis fields and status.
	SaveTrade(ctx context.Context, t *model.Trade) error
	GetTrade(ctx context.Context, id int32) (*model.Trade, error)
	// Lists a league's trades, most recently created first.
	ListTrades(ctx context.Context, leagueID int32) ([]model.Trade, error)
	UpdateTradeStatus(ctx context.Context, id int32, status string) error
	// ExpireTrades marks every pending trade past its expiry as EXPIRED and
	// returns the number of trades changed.
	ExpireTrades(ctx context.Context) (int64, error)
}
