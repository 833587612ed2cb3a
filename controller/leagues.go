package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/djmorgan26/fantasy-football-assistant/db"
	"github.com/djmorgan26/fantasy-football-assistant/model"
	"github.com/djmorgan26/fantasy-football-assistant/platforms/fetch"
)

func (c *controller) ConnectESPNLeague(ctx context.Context, espnLeagueID, s2, swid string, ownerUserID int32) (*model.League, error) {
	espnLeagueID = strings.TrimSpace(espnLeagueID)
	if espnLeagueID == "" {
		return nil, &model.ValidationError{Field: "espn_league_id", Reason: "league id must be provided"}
	}

	s2Enc, err := c.vault.Encrypt(s2)
	if err != nil {
		return nil, fmt.Errorf("error encrypting espn_s2: %w", err)
	}
	swidEnc, err := c.vault.Encrypt(swid)
	if err != nil {
		return nil, fmt.Errorf("error encrypting SWID: %w", err)
	}

	l := &model.League{
		Platform:          model.PlatformESPN,
		ESPNLeagueID:      espnLeagueID,
		ESPNS2Encrypted:   s2Enc,
		ESPNSWIDEncrypted: swidEnc,
		OwnerUserID:       ownerUserID,
	}

	// A previous connect for the same league keeps its id so the sync
	// updates in place.
	if existing, err := c.db.GetLeagueByExternalID(ctx, model.PlatformESPN, espnLeagueID); err == nil {
		l.ID = existing.ID
	}

	return c.syncLeague(ctx, l)
}

func (c *controller) ConnectSleeperLeague(ctx context.Context, sleeperLeagueID, sleeperUserID string, ownerUserID int32) (*model.League, error) {
	sleeperLeagueID = strings.TrimSpace(sleeperLeagueID)
	if sleeperLeagueID == "" {
		return nil, &model.ValidationError{Field: "sleeper_league_id", Reason: "league id must be provided"}
	}
	sleeperUserID = strings.TrimSpace(sleeperUserID)
	if sleeperUserID == "" {
		return nil, &model.ValidationError{Field: "sleeper_user_id", Reason: "user id must be provided"}
	}

	// The identifier may be a username. Resolution is best effort: an
	// identifier Sleeper does not know simply fails the membership check
	// below.
	var nfErr *fetch.NotFoundError
	if u, err := c.sleeper.GetUser(ctx, sleeperUserID); err == nil {
		sleeperUserID = u.ID
	} else if !errors.As(err, &nfErr) {
		return nil, fmt.Errorf("error resolving sleeper user: %w", err)
	}

	member, err := c.sleeper.ValidateLeagueAccess(ctx, sleeperLeagueID, sleeperUserID)
	if err != nil {
		return nil, fmt.Errorf("error validating league access: %w", err)
	}
	if !member {
		return nil, ErrNotLeagueMember
	}

	l := &model.League{
		Platform:        model.PlatformSleeper,
		SleeperLeagueID: sleeperLeagueID,
		SleeperUserID:   sleeperUserID,
		OwnerUserID:     ownerUserID,
	}

	if existing, err := c.db.GetLeagueByExternalID(ctx, model.PlatformSleeper, sleeperLeagueID); err == nil {
		l.ID = existing.ID
	}

	return c.syncLeague(ctx, l)
}

func (c *controller) GetLeague(ctx context.Context, id int32) (*model.League, error) {
	return c.db.GetLeague(ctx, id)
}

func (c *controller) ListLeagues(ctx context.Context) ([]model.League, error) {
	return c.db.ListLeagues(ctx)
}

func (c *controller) SyncLeague(ctx context.Context, id int32) (*model.League, error) {
	l, err := c.db.GetLeague(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.syncLeague(ctx, l)
}

func (c *controller) DisconnectLeague(ctx context.Context, id int32) error {
	return c.db.ArchiveLeague(ctx, id)
}

// syncLeague refetches everything from the platform, then persists each
// collection in its own transaction once all of the upstream data is in
// hand. Fields that describe the connection rather than the league survive
// the fresh snapshot.
func (c *controller) syncLeague(ctx context.Context, l *model.League) (*model.League, error) {
	adapter := getPlatformAdapter(l.Platform, c)

	fresh, err := adapter.getLeague(ctx, l)
	if err != nil {
		return nil, fmt.Errorf("error fetching league from %s: %w", l.Platform, err)
	}
	fresh.ID = l.ID
	fresh.OwnerUserID = l.OwnerUserID
	fresh.SleeperUserID = l.SleeperUserID
	fresh.ESPNS2Encrypted = l.ESPNS2Encrypted
	fresh.ESPNSWIDEncrypted = l.ESPNSWIDEncrypted
	fresh.IsActive = true
	if fresh.SeasonYear == 0 {
		fresh.SeasonYear = l.SeasonYear
	}

	teams, err := adapter.getTeams(ctx, fresh)
	if err != nil {
		return nil, fmt.Errorf("error fetching teams from %s: %w", l.Platform, err)
	}

	// Budgets are a best-effort part of the sync. Leagues without an
	// acquisition budget still sync their teams.
	budgets, budgetErr := adapter.getWaiverBudgets(ctx, fresh)
	if budgetErr != nil {
		log.Printf("error fetching waiver budgets for league %s: %v", fresh.ExternalID(), budgetErr)
	}

	if err := c.db.SaveLeague(ctx, fresh); err != nil {
		return nil, fmt.Errorf("error saving league: %w", err)
	}
	if err := c.db.SaveTeams(ctx, fresh.ID, teams); err != nil {
		return nil, fmt.Errorf("error saving teams: %w", err)
	}
	if budgetErr == nil {
		for _, b := range budgets {
			if !b.Reconciled() {
				log.Printf("waiver budget drift for team %s in league %s: total=%.1f spent=%.1f current=%.1f",
					b.PlatformTeamID, fresh.ExternalID(), b.TotalBudget, b.SpentBudget, b.CurrentBudget)
			}
		}
		if err := c.db.SaveWaiverBudgets(ctx, fresh.ID, fresh.SeasonYear, budgets); err != nil {
			return nil, fmt.Errorf("error saving waiver budgets: %w", err)
		}
	}
	if err := c.db.MarkLeagueSynced(ctx, fresh.ID); err != nil {
		return nil, err
	}

	return c.db.GetLeague(ctx, fresh.ID)
}

func (c *controller) GetTeams(ctx context.Context, leagueID int32) ([]model.Team, error) {
	l, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	return getPlatformAdapter(l.Platform, c).getTeams(ctx, l)
}

func (c *controller) GetTeamRoster(ctx context.Context, leagueID, teamID int32, week int) ([]model.RosterEntry, error) {
	l, t, err := c.leagueTeam(ctx, leagueID, teamID)
	if err != nil {
		return nil, err
	}
	if week <= 0 {
		week = l.CurrentWeek
	}
	return getPlatformAdapter(l.Platform, c).getTeamRoster(ctx, l, t, week)
}

func (c *controller) GetMatchups(ctx context.Context, leagueID int32, week int) ([]model.Matchup, error) {
	l, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if week <= 0 {
		week = l.CurrentWeek
	}
	return getPlatformAdapter(l.Platform, c).getMatchups(ctx, l, week)
}

func (c *controller) GetAvailablePlayers(ctx context.Context, leagueID int32, week int, position string) ([]model.AvailablePlayer, error) {
	l, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if week <= 0 {
		week = l.CurrentWeek
	}
	return getPlatformAdapter(l.Platform, c).getAvailablePlayers(ctx, l, week, position)
}

func (c *controller) GetWaiverBudgets(ctx context.Context, leagueID int32) ([]model.WaiverBudget, error) {
	l, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	return getPlatformAdapter(l.Platform, c).getWaiverBudgets(ctx, l)
}

// leagueTeam loads a league and one of its stored teams by team id.
func (c *controller) leagueTeam(ctx context.Context, leagueID, teamID int32) (*model.League, *model.Team, error) {
	l, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, nil, err
	}
	teams, err := c.db.GetTeams(ctx, leagueID)
	if err != nil {
		return nil, nil, err
	}
	for i := range teams {
		if teams[i].ID == teamID {
			return l, &teams[i], nil
		}
	}
	return nil, nil, fmt.Errorf("team %d in league %d: %w", teamID, leagueID, db.ErrTeamNotFound)
}
