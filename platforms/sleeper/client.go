// Package sleeper talks to the Sleeper fantasy API. All endpoints are
// public read-only; Sleeper asks clients to stay under 1000 requests per
// minute, so the client paces itself with a token bucket.
package sleeper

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/djmorgan26/fantasy-football-assistant/model"
	"github.com/djmorgan26/fantasy-football-assistant/platforms/fetch"
	"github.com/djmorgan26/fantasy-football-assistant/platforms/sleeper/internal"
)

const (
	sleeperURL = "https://api.sleeper.app/v1"
	sport      = "nfl"
)

type Client struct {
	url   string
	fetch *fetch.Client
}

func New() *Client {
	return &Client{
		url:   sleeperURL,
		fetch: fetch.NewWithLimit(rate.Every(time.Minute/1000), 10),
	}
}

func NewForTest(url string) *Client {
	return &Client{
		url:   url,
		fetch: fetch.New(),
	}
}

// GetUser looks up a Sleeper account by username or user id. Sleeper
// answers unknown users with a 200 and a literal "null" body, which is
// mapped to a NotFoundError here.
func (c *Client) GetUser(ctx context.Context, identifier string) (*model.SleeperUser, error) {
	var u *internal.User
	url := fmt.Sprintf("%s/user/%s", c.url, identifier)
	if err := c.fetch.GetJSON(ctx, url, nil, nil, &u); err != nil {
		return nil, err
	}
	if u == nil || u.UserID == "" {
		return nil, &fetch.NotFoundError{URL: url}
	}
	return &model.SleeperUser{
		ID:          u.UserID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarID:    u.Avatar,
	}, nil
}

// GetLeague fetches and normalizes one league.
func (c *Client) GetLeague(ctx context.Context, leagueID string) (*model.League, error) {
	var l *internal.League
	url := fmt.Sprintf("%s/league/%s", c.url, leagueID)
	if err := c.fetch.GetJSON(ctx, url, nil, nil, &l); err != nil {
		return nil, err
	}
	if l == nil || l.LeagueID == "" {
		return nil, &fetch.NotFoundError{URL: url}
	}
	return toLeague(l), nil
}

// GetLeaguesForUser lists a user's leagues for a season.
func (c *Client) GetLeaguesForUser(ctx context.Context, userID string, season int) ([]model.League, error) {
	var raw []internal.League
	url := fmt.Sprintf("%s/user/%s/leagues/%s/%d", c.url, userID, sport, season)
	if err := c.fetch.GetJSON(ctx, url, nil, nil, &raw); err != nil {
		return nil, err
	}

	leagues := make([]model.League, 0, len(raw))
	for i := range raw {
		leagues = append(leagues, *toLeague(&raw[i]))
	}
	return leagues, nil
}

// GetTeams fetches all rosters in a league and joins them to their owners'
// display names.
func (c *Client) GetTeams(ctx context.Context, leagueID string) ([]model.Team, error) {
	rosters, err := c.rosters(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	users, err := c.leagueUsers(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	teams := make([]model.Team, 0, len(rosters))
	for _, roster := range rosters {
		teams = append(teams, toTeam(roster, users))
	}
	return teams, nil
}

// GetTeamRoster fetches one roster's player ids split into starters, bench
// and reserve.
func (c *Client) GetTeamRoster(ctx context.Context, leagueID string, rosterID int32) ([]model.RosterEntry, error) {
	rosters, err := c.rosters(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	for i := range rosters {
		if rosters[i].RosterID == int(rosterID) {
			return toRosterEntries(&rosters[i]), nil
		}
	}
	return nil, &fetch.NotFoundError{URL: fmt.Sprintf("roster %d in league %s", rosterID, leagueID)}
}

// GetMatchups fetches a week's matchup rows and pairs them by matchup id.
func (c *Client) GetMatchups(ctx context.Context, leagueID string, week int) ([]model.Matchup, error) {
	var rows []internal.MatchupRow
	url := fmt.Sprintf("%s/league/%s/matchups/%d", c.url, leagueID, week)
	if err := c.fetch.GetJSON(ctx, url, nil, nil, &rows); err != nil {
		return nil, err
	}
	return pairMatchups(rows, week), nil
}

// ValidateLeagueAccess reports whether the user is a member of the league.
func (c *Client) ValidateLeagueAccess(ctx context.Context, leagueID, userID string) (bool, error) {
	users, err := c.leagueUsers(ctx, leagueID)
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// GetWaiverBudgets reads each roster's waiver spend against the league's
// waiver budget, defaulting to 100.
func (c *Client) GetWaiverBudgets(ctx context.Context, leagueID string) ([]model.WaiverBudget, error) {
	var l *internal.League
	url := fmt.Sprintf("%s/league/%s", c.url, leagueID)
	if err := c.fetch.GetJSON(ctx, url, nil, nil, &l); err != nil {
		return nil, err
	}
	if l == nil || l.LeagueID == "" {
		return nil, &fetch.NotFoundError{URL: url}
	}

	total := model.DefaultWaiverBudget
	if l.Settings != nil && l.Settings.WaiverBudget != nil {
		total = *l.Settings.WaiverBudget
	}

	seasonYear, err := strconv.Atoi(l.Season)
	if err != nil {
		seasonYear = 0
	}

	rosters, err := c.rosters(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	budgets := make([]model.WaiverBudget, 0, len(rosters))
	for _, roster := range rosters {
		var spent float64
		if roster.Settings != nil {
			spent = roster.Settings.WaiverBudgetUsed
		}
		budgets = append(budgets, model.WaiverBudget{
			PlatformTeamID: strconv.Itoa(roster.RosterID),
			SeasonYear:     seasonYear,
			TotalBudget:    total,
			SpentBudget:    spent,
			CurrentBudget:  total - spent,
		})
	}
	return budgets, nil
}

// GetTrendingPlayers lists the most added or dropped players. trendType is
// "add" or "drop".
func (c *Client) GetTrendingPlayers(ctx context.Context, trendType string, lookbackHours, limit int) ([]model.TrendingPlayer, error) {
	var raw []internal.TrendingPlayer
	url := fmt.Sprintf("%s/players/%s/trending/%s?lookback_hours=%d&limit=%d",
		c.url, sport, trendType, lookbackHours, limit)
	if err := c.fetch.GetJSON(ctx, url, nil, nil, &raw); err != nil {
		return nil, err
	}

	players := make([]model.TrendingPlayer, 0, len(raw))
	for _, p := range raw {
		players = append(players, model.TrendingPlayer{
			PlayerID: p.PlayerID,
			Count:    p.Count,
		})
	}
	return players, nil
}

func (c *Client) rosters(ctx context.Context, leagueID string) ([]internal.Roster, error) {
	var rosters []internal.Roster
	url := fmt.Sprintf("%s/league/%s/rosters", c.url, leagueID)
	if err := c.fetch.GetJSON(ctx, url, nil, nil, &rosters); err != nil {
		return nil, err
	}
	return rosters, nil
}

func (c *Client) leagueUsers(ctx context.Context, leagueID string) ([]internal.LeagueUser, error) {
	var users []internal.LeagueUser
	url := fmt.Sprintf("%s/league/%s/users", c.url, leagueID)
	if err := c.fetch.GetJSON(ctx, url, nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
