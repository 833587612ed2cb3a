package mockdb

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/djmorgan26/fantasy-football-assistant/model"
)

type DB struct {
	mock.Mock
}

func (db *DB) SaveLeague(ctx context.Context, l *model.League) error {
	args := db.Called(ctx, l)
	return args.Error(0)
}

func (db *DB) GetLeague(ctx context.Context, id int32) (*model.League, error) {
	args := db.Called(ctx, id)

	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}
	return l, args.Error(1)
}

func (db *DB) GetLeagueByExternalID(ctx context.Context, platform, externalID string) (*model.League, error) {
	args := db.Called(ctx, platform, externalID)

	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}
	return l, args.Error(1)
}

func (db *DB) ListLeagues(ctx context.Context) ([]model.League, error) {
	args := db.Called(ctx)

	var r []model.League
	if args.Get(0) != nil {
		r = args.Get(0).([]model.League)
	}
	return r, args.Error(1)
}

func (db *DB) ArchiveLeague(ctx context.Context, id int32) error {
	args := db.Called(ctx, id)
	return args.Error(0)
}

func (db *DB) MarkLeagueSynced(ctx context.Context, id int32) error {
	args := db.Called(ctx, id)
	return args.Error(0)
}

func (db *DB) SaveTeams(ctx context.Context, leagueID int32, teams []model.Team) error {
	args := db.Called(ctx, leagueID, teams)
	return args.Error(0)
}

func (db *DB) GetTeams(ctx context.Context, leagueID int32) ([]model.Team, error) {
	args := db.Called(ctx, leagueID)

	var r []model.Team
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Team)
	}
	return r, args.Error(1)
}

func (db *DB) SaveWaiverBudgets(ctx context.Context, leagueID int32, seasonYear int, budgets []model.WaiverBudget) error {
	args := db.Called(ctx, leagueID, seasonYear, budgets)
	return args.Error(0)
}

func (db *DB) GetWaiverBudgets(ctx context.Context, leagueID int32, seasonYear int) ([]model.WaiverBudget, error) {
	args := db.Called(ctx, leagueID, seasonYear)

	var r []model.WaiverBudget
	if args.Get(0) != nil {
		r = args.Get(0).([]model.WaiverBudget)
	}
	return r, args.Error(1)
}

func (db *DB) SaveTrade(ctx context.Context, t *model.Trade) error {
	args := db.Called(ctx, t)
	return args.Error(0)
}

func (db *DB) GetTrade(ctx context.Context, id int32) (*model.Trade, error) {
	args := db.Called(ctx, id)

	var t *model.Trade
	if args.Get(0) != nil {
		t = args.Get(0).(*model.Trade)
	}
	return t, args.Error(1)
}

func (db *DB) ListTrades(ctx context.Context, leagueID int32) ([]model.Trade, error) {
	args := db.Called(ctx, leagueID)

	var r []model.Trade
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Trade)
	}
	return r, args.Error(1)
}

func (db *DB) UpdateTradeStatus(ctx context.Context, id int32, status string) error {
	args := db.Called(ctx, id, status)
	return args.Error(0)
}

func (db *DB) ExpireTrades(ctx context.Context) (int64, error) {
	args := db.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
