package controller

import (
	"context"

	"github.com/djmorgan26/fantasy-football-assistant/model"
	"github.com/djmorgan26/fantasy-football-assistant/platforms/espn"
)

type espnAdapter struct {
	c *controller
}

// credentials decrypts the stored cookie blobs for the upstream call.
// Public leagues have no stored credentials and get nil.
func (a *espnAdapter) credentials(l *model.League) *espn.Credentials {
	s2 := a.c.vault.Decrypt(l.ESPNS2Encrypted)
	swid := a.c.vault.Decrypt(l.ESPNSWIDEncrypted)
	if s2 == "" && swid == "" {
		return nil
	}
	return &espn.Credentials{S2: s2, SWID: swid}
}

func (a *espnAdapter) getLeague(ctx context.Context, l *model.League) (*model.League, error) {
	return a.c.espn.GetLeague(ctx, l.ESPNLeagueID, a.credentials(l))
}

func (a *espnAdapter) getTeams(ctx context.Context, l *model.League) ([]model.Team, error) {
	return a.c.espn.GetTeams(ctx, l.ESPNLeagueID, a.credentials(l))
}

func (a *espnAdapter) getTeamRoster(ctx context.Context, l *model.League, t *model.Team, week int) ([]model.RosterEntry, error) {
	return a.c.espn.GetTeamRoster(ctx, l.ESPNLeagueID, t.ESPNTeamID, week, a.credentials(l))
}

func (a *espnAdapter) getMatchups(ctx context.Context, l *model.League, week int) ([]model.Matchup, error) {
	return a.c.espn.GetMatchups(ctx, l.ESPNLeagueID, week, a.credentials(l))
}

func (a *espnAdapter) getAvailablePlayers(ctx context.Context, l *model.League, week int, position string) ([]model.AvailablePlayer, error) {
	return a.c.espn.GetAvailablePlayers(ctx, l.ESPNLeagueID, week, position, a.credentials(l))
}

func (a *espnAdapter) getWaiverBudgets(ctx context.Context, l *model.League) ([]model.WaiverBudget, error) {
	return a.c.espn.GetWaiverBudgets(ctx, l.ESPNLeagueID, a.credentials(l))
}
