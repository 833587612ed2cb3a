package controller

import (
	"context"

	"github.com/djmorgan26/fantasy-football-assistant/model"
)

type sleeperAdapter struct {
	c *controller
}

func (a *sleeperAdapter) getLeague(ctx context.Context, l *model.League) (*model.League, error) {
	return a.c.sleeper.GetLeague(ctx, l.SleeperLeagueID)
}

func (a *sleeperAdapter) getTeams(ctx context.Context, l *model.League) ([]model.Team, error) {
	return a.c.sleeper.GetTeams(ctx, l.SleeperLeagueID)
}

func (a *sleeperAdapter) getTeamRoster(ctx context.Context, l *model.League, t *model.Team, week int) ([]model.RosterEntry, error) {
	return a.c.sleeper.GetTeamRoster(ctx, l.SleeperLeagueID, t.SleeperRosterID)
}

func (a *sleeperAdapter) getMatchups(ctx context.Context, l *model.League, week int) ([]model.Matchup, error) {
	return a.c.sleeper.GetMatchups(ctx, l.SleeperLeagueID, week)
}

// Sleeper has no free-agent pool endpoint with projections, so available
// players are an ESPN-only feature.
func (a *sleeperAdapter) getAvailablePlayers(ctx context.Context, l *model.League, week int, position string) ([]model.AvailablePlayer, error) {
	return nil, &model.ValidationError{Field: "platform", Reason: "available players are not supported for sleeper leagues"}
}

func (a *sleeperAdapter) getWaiverBudgets(ctx context.Context, l *model.League) ([]model.WaiverBudget, error) {
	return a.c.sleeper.GetWaiverBudgets(ctx, l.SleeperLeagueID)
}
