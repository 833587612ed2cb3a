// Package espn talks to the ESPN fantasy football read API and maps its
// responses to the shared model types. Private leagues require the espn_s2
// and SWID cookies; public leagues work without credentials.
package espn

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/djmorgan26/fantasy-football-assistant/model"
	"github.com/djmorgan26/fantasy-football-assistant/platforms/espn/internal"
	"github.com/djmorgan26/fantasy-football-assistant/platforms/fetch"
)

const (
	espnURL = "https://lm-api-reads.fantasy.espn.com/apis/v3/games/ffl"

	// Concurrent roster fetches when computing per-matchup projections.
	projectionConcurrency = 4
)

// Credentials are the two cookies ESPN uses to authenticate private league
// reads. A nil Credentials means a public league.
type Credentials struct {
	S2   string
	SWID string
}

func (c *Credentials) cookies() []*http.Cookie {
	if c == nil {
		return nil
	}
	var cookies []*http.Cookie
	if c.S2 != "" {
		cookies = append(cookies, &http.Cookie{Name: "espn_s2", Value: c.S2})
	}
	if c.SWID != "" {
		cookies = append(cookies, &http.Cookie{Name: "SWID", Value: c.SWID})
	}
	return cookies
}

type Client struct {
	url        string
	seasonYear int
	fetch      *fetch.Client
}

func New(seasonYear int) *Client {
	return &Client{
		url:        espnURL,
		seasonYear: seasonYear,
		fetch:      fetch.New(),
	}
}

func NewForTest(url string, seasonYear int) *Client {
	c := New(seasonYear)
	c.url = url
	return c
}

func (c *Client) leagueURL(leagueID string) string {
	return fmt.Sprintf("%s/seasons/%d/segments/0/leagues/%s", c.url, c.seasonYear, leagueID)
}

// GetLeague fetches basic league info: name, size, current week, scoring
// type and the raw roster/scoring settings.
func (c *Client) GetLeague(ctx context.Context, leagueID string, creds *Credentials) (*model.League, error) {
	var res internal.LeagueResponse
	if err := c.fetch.GetJSON(ctx, c.leagueURL(leagueID), nil, creds.cookies(), &res); err != nil {
		return nil, err
	}

	l := &model.League{
		Platform:        model.PlatformESPN,
		ESPNLeagueID:    leagueID,
		SeasonYear:      c.seasonYear,
		Name:            "Unknown League",
		Size:            len(res.Teams),
		CurrentWeek:     res.ScoringPeriodID,
		ScoringType:     detectScoringType(res.Settings),
		RosterSettings:  rosterSettings(res.Settings),
		ScoringSettings: scoringSettings(res.Settings),
	}
	if res.Settings != nil && res.Settings.Name != "" {
		l.Name = res.Settings.Name
	}
	if res.Status != nil {
		l.IsActive = res.Status.IsActive
	}
	if l.CurrentWeek == 0 {
		l.CurrentWeek = 1
	}
	return l, nil
}

func rosterSettings(settings *internal.Settings) map[string]any {
	if settings == nil || settings.RosterSettings == nil {
		return nil
	}
	rs := settings.RosterSettings
	return map[string]any{
		"roster_size":     rs.RosterSize,
		"position_limits": rs.PositionLimits,
		"lineup_slots":    rs.LineupSlotCounts,
	}
}

func scoringSettings(settings *internal.Settings) map[string]any {
	if settings == nil || settings.ScoringSettings == nil {
		return nil
	}
	ss := settings.ScoringSettings
	items := make([]map[string]any, 0, len(ss.ScoringItems))
	for _, item := range ss.ScoringItems {
		items = append(items, map[string]any{
			"statId": item.StatID,
			"points": item.Points,
		})
	}
	return map[string]any{
		"scoring_items":    items,
		"player_rank_type": ss.PlayerRankType,
		"scoring_type":     ss.ScoringType,
	}
}

// GetTeams fetches all teams in a league with records and display names.
func (c *Client) GetTeams(ctx context.Context, leagueID string, creds *Credentials) ([]model.Team, error) {
	params := url.Values{"view": []string{"mTeam"}}
	var res internal.LeagueResponse
	if err := c.fetch.GetJSON(ctx, c.leagueURL(leagueID), params, creds.cookies(), &res); err != nil {
		return nil, err
	}

	teams := make([]model.Team, 0, len(res.Teams))
	for _, t := range res.Teams {
		team := model.Team{
			ESPNTeamID: t.ID,
			Name:       resolveTeamName(t),
			Abbrev:     t.Abbrev,
			LogoURL:    t.Logo,
		}
		if t.Record != nil && t.Record.Overall != nil {
			team.Wins = t.Record.Overall.Wins
			team.Losses = t.Record.Overall.Losses
			team.Ties = t.Record.Overall.Ties
			team.PointsFor = t.Record.Overall.PointsFor
			team.PointsAgainst = t.Record.Overall.PointsAgainst
		}
		teams = append(teams, team)
	}
	return teams, nil
}

// GetTeamRoster fetches one team's roster for a week. Week 0 means the
// current scoring period.
func (c *Client) GetTeamRoster(ctx context.Context, leagueID string, teamID int32, week int, creds *Credentials) ([]model.RosterEntry, error) {
	raw, err := c.teamRosterEntries(ctx, leagueID, teamID, week, creds)
	if err != nil {
		return nil, err
	}

	roster := make([]model.RosterEntry, 0, len(raw))
	for _, entry := range raw {
		e := model.RosterEntry{
			LineupSlotID: entry.LineupSlotID,
			SlotName:     lineupSlotName(entry.LineupSlotID),
			Slot:         classifySlot(entry.LineupSlotID),
		}
		if entry.PlayerPoolEntry != nil && entry.PlayerPoolEntry.Player != nil {
			p := entry.PlayerPoolEntry.Player
			e.PlayerID = strconv.FormatInt(p.ID, 10)
			e.Name = p.FullName
			e.Position = positionName(p.DefaultPositionID)
			e.ProTeam = proTeamAbbr(p.ProTeamID)
			e.InjuryStatus = p.InjuryStatus
			e.ProjectedPoints, e.HasProjection = projectedPoints(p, week)
			e.ActualPoints = actualPoints(p, week)
			e.ActualStats, e.ProjectedStats = statBuckets(p, week)
		}
		roster = append(roster, e)
	}
	return roster, nil
}

func (c *Client) teamRosterEntries(ctx context.Context, leagueID string, teamID int32, week int, creds *Credentials) ([]internal.RosterEntry, error) {
	params := url.Values{"view": []string{"mRoster"}}
	if week > 0 {
		params.Set("scoringPeriodId", strconv.Itoa(week))
	}
	var res internal.LeagueResponse
	if err := c.fetch.GetJSON(ctx, c.leagueURL(leagueID), params, creds.cookies(), &res); err != nil {
		return nil, err
	}

	for _, t := range res.Teams {
		if t.ID != teamID {
			continue
		}
		if t.Roster == nil {
			return nil, nil
		}
		return t.Roster.Entries, nil
	}
	return nil, &fetch.NotFoundError{URL: fmt.Sprintf("team %d in league %s", teamID, leagueID)}
}

// GetMatchups fetches the schedule for a week with live scores and computes
// each side's projected score from its starting lineup. Week 0 returns the
// full schedule without a period filter.
func (c *Client) GetMatchups(ctx context.Context, leagueID string, week int, creds *Credentials) ([]model.Matchup, error) {
	params := url.Values{"view": []string{"mMatchup", "mScoreboard", "mLiveScoring"}}
	if week > 0 {
		params.Set("scoringPeriodId", strconv.Itoa(week))
	}
	var res internal.LeagueResponse
	if err := c.fetch.GetJSON(ctx, c.leagueURL(leagueID), params, creds.cookies(), &res); err != nil {
		return nil, err
	}

	schedule := make([]internal.ScheduleItem, 0, len(res.Schedule))
	for _, item := range res.Schedule {
		if week > 0 && item.MatchupPeriodID != week {
			continue
		}
		schedule = append(schedule, item)
	}

	projections := c.projectedScores(ctx, leagueID, schedule, week, creds)

	matchups := make([]model.Matchup, 0, len(schedule))
	for _, item := range schedule {
		m := model.Matchup{
			Week:      item.MatchupPeriodID,
			IsPlayoff: item.PlayoffTierType != "" && item.PlayoffTierType != "NONE",
			Winner:    item.Winner,
		}
		if m.Winner == "" {
			m.Winner = model.WinnerUndecided
		}
		m.Home = sideScore(item.Home, item.MatchupPeriodID, projections)
		m.Away = sideScore(item.Away, item.MatchupPeriodID, projections)
		matchups = append(matchups, m)
	}
	return matchups, nil
}

func sideScore(side *internal.SideTeam, week int, projections map[int32]*float64) *model.TeamScore {
	if side == nil {
		return nil
	}
	return &model.TeamScore{
		TeamID:    strconv.Itoa(int(side.TeamID)),
		Score:     liveScore(side, week),
		Projected: projections[side.TeamID],
	}
}

// projectedScores fetches each distinct team's roster concurrently and sums
// the starters' projections. A failed fetch degrades that team's projection
// to nil and never fails the batch.
func (c *Client) projectedScores(ctx context.Context, leagueID string, schedule []internal.ScheduleItem, week int, creds *Credentials) map[int32]*float64 {
	seen := make(map[int32]bool)
	teamIDs := make([]int32, 0, len(schedule)*2)
	for _, item := range schedule {
		for _, side := range []*internal.SideTeam{item.Home, item.Away} {
			if side == nil || seen[side.TeamID] {
				continue
			}
			seen[side.TeamID] = true
			teamIDs = append(teamIDs, side.TeamID)
		}
	}
	if week <= 0 {
		week = 1
	}

	var mu sync.Mutex
	projections := make(map[int32]*float64, len(teamIDs))

	var g errgroup.Group
	g.SetLimit(projectionConcurrency)
	for _, teamID := range teamIDs {
		teamID := teamID
		g.Go(func() error {
			entries, err := c.teamRosterEntries(ctx, leagueID, teamID, week, creds)
			if err != nil {
				return nil
			}
			score := teamProjectedScore(entries, week)
			mu.Lock()
			projections[teamID] = score
			mu.Unlock()
			return nil
		})
	}
	g.Wait()
	return projections
}

// GetAvailablePlayers lists free agents in a league, optionally filtered by
// position, sorted by projected points descending.
func (c *Client) GetAvailablePlayers(ctx context.Context, leagueID string, week int, position string, creds *Credentials) ([]model.AvailablePlayer, error) {
	if week <= 0 {
		week = 1
	}
	params := url.Values{
		"view":            []string{"players_wl"},
		"scoringPeriodId": []string{strconv.Itoa(week)},
	}
	var res internal.LeagueResponse
	if err := c.fetch.GetJSON(ctx, c.leagueURL(leagueID), params, creds.cookies(), &res); err != nil {
		return nil, err
	}

	players := make([]model.AvailablePlayer, 0, len(res.Players))
	for _, entry := range res.Players {
		if entry.OnTeamID != nil {
			continue
		}
		p := entry.Player
		if p == nil {
			continue
		}
		if position != "" && positionName(p.DefaultPositionID) != position {
			continue
		}

		var seasonPoints float64
		for _, stat := range p.Stats {
			if stat.StatSourceID == 0 && stat.AppliedTotal != nil {
				seasonPoints += *stat.AppliedTotal
			}
		}
		// TODO: divide by weeks actually played instead of a full season.
		var avgPoints float64
		if seasonPoints > 0 {
			avgPoints = seasonPoints / 17.0
		}

		projected, _ := projectedPoints(p, week)
		injury := p.InjuryStatus
		if injury == "" {
			injury = "ACTIVE"
		}

		players = append(players, model.AvailablePlayer{
			PlayerID:        strconv.FormatInt(p.ID, 10),
			Name:            p.FullName,
			Position:        positionName(p.DefaultPositionID),
			ProTeam:         proTeamAbbr(p.ProTeamID),
			InjuryStatus:    injury,
			Active:          injury == "ACTIVE",
			SeasonPoints:    seasonPoints,
			AveragePoints:   avgPoints,
			ProjectedPoints: projected,
		})
	}

	sort.SliceStable(players, func(i, j int) bool {
		return players[i].ProjectedPoints > players[j].ProjectedPoints
	})
	return players, nil
}

// GetWaiverBudgets reads each team's acquisition budget spend against the
// league budget from the settings, defaulting to 100.
func (c *Client) GetWaiverBudgets(ctx context.Context, leagueID string, creds *Credentials) ([]model.WaiverBudget, error) {
	params := url.Values{"view": []string{"mTeam"}}
	var res internal.LeagueResponse
	if err := c.fetch.GetJSON(ctx, c.leagueURL(leagueID), params, creds.cookies(), &res); err != nil {
		return nil, err
	}

	total := model.DefaultWaiverBudget
	if res.Settings != nil && res.Settings.AcquisitionSettings != nil && res.Settings.AcquisitionSettings.Budget != nil {
		total = *res.Settings.AcquisitionSettings.Budget
	}

	budgets := make([]model.WaiverBudget, 0, len(res.Teams))
	for _, t := range res.Teams {
		var spent float64
		if t.TransactionCounter != nil {
			spent = t.TransactionCounter.AcquisitionBudgetSpent
		}
		budgets = append(budgets, model.WaiverBudget{
			PlatformTeamID: strconv.Itoa(int(t.ID)),
			SeasonYear:     c.seasonYear,
			TotalBudget:    total,
			SpentBudget:    spent,
			CurrentBudget:  total - spent,
		})
	}
	return budgets, nil
}
