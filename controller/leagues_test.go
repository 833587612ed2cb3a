package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/djmorgan26/fantasy-football-assistant/db"
	"github.com/djmorgan26/fantasy-football-assistant/model"
	"github.com/djmorgan26/fantasy-football-assistant/platforms/fetch"
	"github.com/djmorgan26/fantasy-football-assistant/testutils"
)

// connectESPNLeague connects the public fixture league and fails the test on
// any error. Connecting is an upsert, so every caller shares one league row.
func connectESPNLeague(t *testing.T, env *testEnv) *model.League {
	t.Helper()

	l, err := env.ctrl.ConnectESPNLeague(context.Background(), testutils.ESPNLeagueID, "", "", 7)
	if err != nil {
		t.Fatalf("unexpected error connecting espn league: %v", err)
	}
	return l
}

func connectSleeperLeague(t *testing.T, env *testEnv) *model.League {
	t.Helper()

	l, err := env.ctrl.ConnectSleeperLeague(context.Background(), testutils.SleeperLeagueID, testutils.SleeperUserID, 7)
	if err != nil {
		t.Fatalf("unexpected error connecting sleeper league: %v", err)
	}
	return l
}

// storedTeamByPlatformID finds one of the league's persisted teams by its
// platform-side identifier.
func storedTeamByPlatformID(t *testing.T, leagueID int32, platformTeamID string) *model.Team {
	t.Helper()

	teams, err := testDB.DB.GetTeams(context.Background(), leagueID)
	if err != nil {
		t.Fatalf("unexpected error loading stored teams: %v", err)
	}
	for i := range teams {
		if teams[i].PlatformTeamID() == platformTeamID {
			return &teams[i]
		}
	}
	t.Fatalf("no stored team with platform id %s in league %d", platformTeamID, leagueID)
	return nil
}

func TestConnectESPNLeague(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	l := connectESPNLeague(t, env)

	if l.ID == 0 {
		t.Error("expected the connected league to have an id")
	}
	if l.Name != "The Gridiron Gang" {
		t.Errorf("league name was not expected value, got: %s", l.Name)
	}
	if l.Platform != model.PlatformESPN {
		t.Errorf("expected espn platform, got %s", l.Platform)
	}
	if l.ESPNLeagueID != testutils.ESPNLeagueID {
		t.Errorf("expected league id %s, got %s", testutils.ESPNLeagueID, l.ESPNLeagueID)
	}
	if l.SeasonYear != testutils.ESPNSeasonYear {
		t.Errorf("expected season %d, got %d", testutils.ESPNSeasonYear, l.SeasonYear)
	}
	if l.Size != 4 {
		t.Errorf("expected 4 teams, got %d", l.Size)
	}
	if l.CurrentWeek != 3 {
		t.Errorf("expected current week 3, got %d", l.CurrentWeek)
	}
	if l.ScoringType != model.ScoringPPR {
		t.Errorf("expected ppr scoring, got %s", l.ScoringType)
	}
	if l.OwnerUserID != 7 {
		t.Errorf("expected owner user id 7, got %d", l.OwnerUserID)
	}
	if !l.IsActive {
		t.Error("expected the connected league to be active")
	}
	if l.LastSynced.IsZero() {
		t.Error("expected last synced to be set by the connect")
	}

	teams, err := testDB.DB.GetTeams(ctx, l.ID)
	if err != nil {
		t.Fatalf("unexpected error loading stored teams: %v", err)
	}
	if len(teams) != 4 {
		t.Errorf("expected 4 stored teams, got %d", len(teams))
	}

	budgets, err := testDB.DB.GetWaiverBudgets(ctx, l.ID, l.SeasonYear)
	if err != nil {
		t.Fatalf("unexpected error loading stored budgets: %v", err)
	}
	if len(budgets) != 4 {
		t.Errorf("expected 4 stored waiver budgets, got %d", len(budgets))
	}

	// Connecting the same league again updates in place.
	l2 := connectESPNLeague(t, env)
	if l2.ID != l.ID {
		t.Errorf("expected reconnect to keep league id %d, got %d", l.ID, l2.ID)
	}
	teams, err = testDB.DB.GetTeams(ctx, l.ID)
	if err != nil {
		t.Fatalf("unexpected error loading stored teams after reconnect: %v", err)
	}
	if len(teams) != 4 {
		t.Errorf("expected 4 stored teams after reconnect, got %d", len(teams))
	}
}

func TestConnectESPNLeague_private(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	l, err := env.ctrl.ConnectESPNLeague(ctx, testutils.ESPNPrivateLeagueID, testutils.ESPNS2, testutils.ESPNSWID, 7)
	if err != nil {
		t.Fatalf("unexpected error connecting private espn league: %v", err)
	}

	stored, err := testDB.DB.GetLeague(ctx, l.ID)
	if err != nil {
		t.Fatalf("unexpected error loading stored league: %v", err)
	}
	if stored.ESPNS2Encrypted == "" || stored.ESPNS2Encrypted == testutils.ESPNS2 {
		t.Error("expected espn_s2 to be stored encrypted")
	}
	if stored.ESPNSWIDEncrypted == "" || stored.ESPNSWIDEncrypted == testutils.ESPNSWID {
		t.Error("expected SWID to be stored encrypted")
	}

	// Later platform reads round-trip through the stored credentials.
	teams, err := env.ctrl.GetTeams(ctx, l.ID)
	if err != nil {
		t.Fatalf("unexpected error getting teams for private league: %v", err)
	}
	if len(teams) != 4 {
		t.Errorf("expected 4 teams, got %d", len(teams))
	}
}

func TestConnectESPNLeague_badCredentials(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.ctrl.ConnectESPNLeague(ctx, testutils.ESPNPrivateLeagueID, "wrong", "wrong", 7)
	var authErr *fetch.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *fetch.AuthError, got %v", err)
	}

	_, err = env.ctrl.ConnectESPNLeague(ctx, testutils.ESPNPrivateLeagueID, "", "", 7)
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *fetch.AuthError without credentials, got %v", err)
	}
}

func TestConnectESPNLeague_validation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.ctrl.ConnectESPNLeague(context.Background(), "   ", "", "", 7)
	var valErr *model.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected *model.ValidationError, got %v", err)
	}
	if valErr.Field != "espn_league_id" {
		t.Errorf("expected the espn_league_id field to be flagged, got %s", valErr.Field)
	}
}

func TestConnectSleeperLeague(t *testing.T) {
	env := newTestEnv(t)

	l := connectSleeperLeague(t, env)

	if l.Name != "Dynasty Degenerates" {
		t.Errorf("league name was not expected value, got: %s", l.Name)
	}
	if l.Platform != model.PlatformSleeper {
		t.Errorf("expected sleeper platform, got %s", l.Platform)
	}
	if l.SleeperLeagueID != testutils.SleeperLeagueID {
		t.Errorf("expected league id %s, got %s", testutils.SleeperLeagueID, l.SleeperLeagueID)
	}
	if l.SleeperUserID != testutils.SleeperUserID {
		t.Errorf("expected the connecting user id to be kept, got %s", l.SleeperUserID)
	}
	if l.SeasonYear != testutils.SleeperSeason {
		t.Errorf("expected season %d, got %d", testutils.SleeperSeason, l.SeasonYear)
	}
	if l.ScoringType != model.ScoringHalfPPR {
		t.Errorf("expected half_ppr scoring, got %s", l.ScoringType)
	}
	if l.CurrentWeek != 3 {
		t.Errorf("expected current week 3, got %d", l.CurrentWeek)
	}

	teams, err := testDB.DB.GetTeams(context.Background(), l.ID)
	if err != nil {
		t.Fatalf("unexpected error loading stored teams: %v", err)
	}
	if len(teams) != 4 {
		t.Errorf("expected 4 stored teams, got %d", len(teams))
	}
}

func TestConnectSleeperLeague_byUsername(t *testing.T) {
	env := newTestEnv(t)

	l, err := env.ctrl.ConnectSleeperLeague(context.Background(), testutils.SleeperLeagueID, testutils.SleeperUsername, 7)
	if err != nil {
		t.Fatalf("unexpected error connecting by username: %v", err)
	}
	if l.SleeperUserID != testutils.SleeperUserID {
		t.Errorf("expected the username to resolve to %s, got %s", testutils.SleeperUserID, l.SleeperUserID)
	}
}

func TestGetTrendingPlayers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	players, err := env.ctrl.GetTrendingPlayers(ctx, "add", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error getting trending players: %v", err)
	}
	if len(players) != 3 {
		t.Fatalf("expected 3 trending players, got %d", len(players))
	}
	if players[0].PlayerID != "7564" || players[0].Count != 120531 {
		t.Errorf("unexpected top trending player: %+v", players[0])
	}

	_, err = env.ctrl.GetTrendingPlayers(ctx, "hold", 0, 0)
	var valErr *model.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected *model.ValidationError for an unknown trend type, got %v", err)
	}
}

func TestGetSleeperLeagues(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	leagues, err := env.ctrl.GetSleeperLeagues(ctx, testutils.SleeperUsername, testutils.SleeperSeason)
	if err != nil {
		t.Fatalf("unexpected error listing sleeper leagues: %v", err)
	}
	if len(leagues) != 2 {
		t.Fatalf("expected 2 leagues, got %d", len(leagues))
	}
	found := false
	for _, l := range leagues {
		if l.SleeperLeagueID == testutils.SleeperLeagueID {
			found = true
		}
	}
	if !found {
		t.Errorf("expected league %s in the listing, got %v", testutils.SleeperLeagueID, leagues)
	}

	_, err = env.ctrl.GetSleeperLeagues(ctx, "55555555", testutils.SleeperSeason)
	var nfErr *fetch.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected *fetch.NotFoundError for an unknown user, got %v", err)
	}

	_, err = env.ctrl.GetSleeperLeagues(ctx, "  ", testutils.SleeperSeason)
	var valErr *model.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected *model.ValidationError for a blank identifier, got %v", err)
	}
}

func TestConnectSleeperLeague_notAMember(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.ctrl.ConnectSleeperLeague(context.Background(), testutils.SleeperLeagueID, "55555555", 7)
	if !errors.Is(err, ErrNotLeagueMember) {
		t.Fatalf("expected ErrNotLeagueMember, got %v", err)
	}
}

func TestSyncLeague(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	l := connectESPNLeague(t, env)

	synced, err := env.ctrl.SyncLeague(ctx, l.ID)
	if err != nil {
		t.Fatalf("unexpected error syncing league: %v", err)
	}
	if synced.ID != l.ID {
		t.Errorf("expected sync to keep league id %d, got %d", l.ID, synced.ID)
	}
	if synced.LastSynced.Before(l.LastSynced) {
		t.Errorf("expected last synced to move forward, got %v after %v", synced.LastSynced, l.LastSynced)
	}

	_, err = env.ctrl.SyncLeague(ctx, 999999)
	if !errors.Is(err, db.ErrLeagueNotFound) {
		t.Fatalf("expected ErrLeagueNotFound, got %v", err)
	}
}

func TestDisconnectLeague(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	l := connectSleeperLeague(t, env)

	if err := env.ctrl.DisconnectLeague(ctx, l.ID); err != nil {
		t.Fatalf("unexpected error disconnecting league: %v", err)
	}

	// A disconnect archives the league rather than deleting its history.
	stored, err := env.ctrl.GetLeague(ctx, l.ID)
	if err != nil {
		t.Fatalf("unexpected error loading disconnected league: %v", err)
	}
	if stored.IsActive {
		t.Error("expected the disconnected league to be inactive")
	}

	leagues, err := env.ctrl.ListLeagues(ctx)
	if err != nil {
		t.Fatalf("unexpected error listing leagues: %v", err)
	}
	for _, listed := range leagues {
		if listed.ID == l.ID {
			t.Error("expected the disconnected league to be excluded from the listing")
		}
	}

	// Reconnecting reactivates the same row.
	l2 := connectSleeperLeague(t, env)
	if l2.ID != l.ID {
		t.Errorf("expected reconnect to keep league id %d, got %d", l.ID, l2.ID)
	}
	if !l2.IsActive {
		t.Error("expected the reconnected league to be active")
	}
}

func TestGetTeamRoster(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	l := connectESPNLeague(t, env)
	team := storedTeamByPlatformID(t, l.ID, "1")

	// Week 0 falls back to the league's current week.
	roster, err := env.ctrl.GetTeamRoster(ctx, l.ID, team.ID, 0)
	if err != nil {
		t.Fatalf("unexpected error getting team roster: %v", err)
	}
	if len(roster) != 4 {
		t.Fatalf("expected 4 roster entries, got %d", len(roster))
	}

	var mahomes *model.RosterEntry
	for i := range roster {
		if roster[i].PlayerID == "4046" {
			mahomes = &roster[i]
		}
	}
	if mahomes == nil {
		t.Fatal("expected player 4046 on the roster")
	}
	if mahomes.Name != "Patrick Mahomes" {
		t.Errorf("expected Patrick Mahomes, got %s", mahomes.Name)
	}
	if !mahomes.IsStarter() {
		t.Error("expected player 4046 to be a starter")
	}
	if mahomes.ProjectedPoints != 10.25 {
		t.Errorf("expected projection 10.25, got %v", mahomes.ProjectedPoints)
	}

	_, err = env.ctrl.GetTeamRoster(ctx, l.ID, 999999, 0)
	if !errors.Is(err, db.ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}
}

func TestGetMatchups(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	l := connectESPNLeague(t, env)

	matchups, err := env.ctrl.GetMatchups(ctx, l.ID, 0)
	if err != nil {
		t.Fatalf("unexpected error getting matchups: %v", err)
	}
	if len(matchups) != 2 {
		t.Fatalf("expected 2 matchups for the current week, got %d", len(matchups))
	}
	for _, m := range matchups {
		if m.Week != 3 {
			t.Errorf("expected week 3 matchups, got week %d", m.Week)
		}
	}

	matchups, err = env.ctrl.GetMatchups(ctx, l.ID, 2)
	if err != nil {
		t.Fatalf("unexpected error getting week 2 matchups: %v", err)
	}
	if len(matchups) != 1 {
		t.Fatalf("expected 1 matchup for week 2, got %d", len(matchups))
	}
	if matchups[0].Winner != model.WinnerHome {
		t.Errorf("expected a home winner for week 2, got %s", matchups[0].Winner)
	}
}

func TestGetAvailablePlayers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	l := connectESPNLeague(t, env)

	players, err := env.ctrl.GetAvailablePlayers(ctx, l.ID, 0, "")
	if err != nil {
		t.Fatalf("unexpected error getting available players: %v", err)
	}
	if len(players) != 3 {
		t.Errorf("expected 3 available players, got %d", len(players))
	}

	players, err = env.ctrl.GetAvailablePlayers(ctx, l.ID, 0, "WR")
	if err != nil {
		t.Fatalf("unexpected error getting available receivers: %v", err)
	}
	if len(players) != 1 || players[0].Name != "Romeo Doubs" {
		t.Errorf("expected only Romeo Doubs, got %v", players)
	}
}

func TestGetAvailablePlayers_sleeper(t *testing.T) {
	env := newTestEnv(t)

	l := connectSleeperLeague(t, env)

	_, err := env.ctrl.GetAvailablePlayers(context.Background(), l.ID, 0, "")
	var valErr *model.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected *model.ValidationError, got %v", err)
	}
}

func TestGetWaiverBudgets(t *testing.T) {
	env := newTestEnv(t)

	l := connectESPNLeague(t, env)

	budgets, err := env.ctrl.GetWaiverBudgets(context.Background(), l.ID)
	if err != nil {
		t.Fatalf("unexpected error getting waiver budgets: %v", err)
	}
	if len(budgets) != 4 {
		t.Fatalf("expected 4 waiver budgets, got %d", len(budgets))
	}
	for _, b := range budgets {
		if b.TotalBudget != model.DefaultWaiverBudget {
			t.Errorf("expected total budget %v for team %s, got %v", model.DefaultWaiverBudget, b.PlatformTeamID, b.TotalBudget)
		}
		if !b.Reconciled() {
			t.Errorf("budget for team %s does not reconcile", b.PlatformTeamID)
		}
	}
}

func TestGetSuggestions_fallback(t *testing.T) {
	env := newTestEnv(t)

	l := connectESPNLeague(t, env)
	team := storedTeamByPlatformID(t, l.ID, "1")

	suggestions, err := env.ctrl.GetSuggestions(context.Background(), l.ID, team.ID)
	if err != nil {
		t.Fatalf("unexpected error getting suggestions: %v", err)
	}
	if len(suggestions) != 1 {
		t.Fatalf("expected the single fallback suggestion, got %d", len(suggestions))
	}
	if suggestions[0].Title != "Review Your Lineup" {
		t.Errorf("expected the lineup review fallback, got %s", suggestions[0].Title)
	}
	if suggestions[0].ConfidenceScore != 0.5 {
		t.Errorf("expected confidence 0.5, got %v", suggestions[0].ConfidenceScore)
	}
}

func TestGetWeeklyRecap_unconfigured(t *testing.T) {
	env := newTestEnv(t)

	l := connectESPNLeague(t, env)

	recap, err := env.ctrl.GetWeeklyRecap(context.Background(), l.ID, 0)
	if err != nil {
		t.Fatalf("unexpected error getting weekly recap: %v", err)
	}
	if recap != recapUnavailable {
		t.Errorf("expected the unavailable recap message, got %s", recap)
	}
}

func TestGetWeeklyRecap_noMatchups(t *testing.T) {
	env := newTestEnv(t)

	l := connectSleeperLeague(t, env)

	_, err := env.ctrl.GetWeeklyRecap(context.Background(), l.ID, 5)
	var valErr *model.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected *model.ValidationError, got %v", err)
	}
	if valErr.Reason != "no matchups found for week 5" {
		t.Errorf("unexpected validation reason: %s", valErr.Reason)
	}
}
