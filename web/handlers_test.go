package web

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/unrolled/render"

	"github.com/djmorgan26/fantasy-football-assistant/controller/mockcontroller"
	"github.com/djmorgan26/fantasy-football-assistant/db"
	"github.com/djmorgan26/fantasy-football-assistant/model"
)

const testUserID = int32(7)

type testServer struct {
	ctrl   *mockcontroller.C
	auth   *tokenAuth
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ctrl := &mockcontroller.C{}
	auth, err := newTokenAuth("web-test-secret")
	if err != nil {
		t.Fatalf("error creating token auth: %v", err)
	}

	return &testServer{
		ctrl:   ctrl,
		auth:   auth,
		router: getRouter(ctrl, render.New(), auth),
	}
}

// request performs one request against the router with a valid token for
// testUserID unless an explicit token override is given.
func (s *testServer) request(t *testing.T, method, target string, body string, token ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, target, reader)

	switch {
	case len(token) > 0:
		if token[0] != "" {
			req.Header.Set("Authorization", token[0])
		}
	default:
		tok, err := s.auth.generate(testUserID, time.Hour)
		if err != nil {
			t.Fatalf("error generating token: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	// The health check requires no token.
	w := s.request(t, http.MethodGet, "/healthz", "", "")
	if w.Code != http.StatusOK {
		t.Errorf("unexpected status code: %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t)

	w := s.request(t, http.MethodGet, "/metrics", "", "")
	if w.Code != http.StatusOK {
		t.Errorf("unexpected status code: %d", w.Code)
	}
}

func TestAuthentication(t *testing.T) {
	s := newTestServer(t)
	s.ctrl.On("ListLeagues", mock.Anything).Return([]model.League{}, nil)

	expired, err := s.auth.generate(testUserID, -time.Hour)
	if err != nil {
		t.Fatalf("error generating expired token: %v", err)
	}

	otherAuth, err := newTokenAuth("a-different-secret")
	if err != nil {
		t.Fatalf("error creating token auth: %v", err)
	}
	wrongSecret, err := otherAuth.generate(testUserID, time.Hour)
	if err != nil {
		t.Fatalf("error generating token: %v", err)
	}

	tests := map[string]struct {
		header   string
		expected int
	}{
		"missing header": {header: "", expected: http.StatusUnauthorized},
		"not bearer":     {header: "Token abc", expected: http.StatusUnauthorized},
		"garbage token":  {header: "Bearer not-a-jwt", expected: http.StatusUnauthorized},
		"expired token":  {header: "Bearer " + expired, expected: http.StatusUnauthorized},
		"wrong secret":   {header: "Bearer " + wrongSecret, expected: http.StatusUnauthorized},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			w := s.request(t, http.MethodGet, "/api/leagues", "", test.header)
			if w.Code != test.expected {
				t.Errorf("expected status %d, got %d", test.expected, w.Code)
			}
		})
	}

	// And a valid token gets through to the controller.
	w := s.request(t, http.MethodGet, "/api/leagues", "")
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 with a valid token, got %d", w.Code)
	}
}

func TestConnectESPNLeagueHandler(t *testing.T) {
	s := newTestServer(t)

	l := &model.League{ID: 12, Platform: model.PlatformESPN, Name: "The Gridiron Gang", ESPNLeagueID: "111222"}
	s.ctrl.On("ConnectESPNLeague", mock.Anything, "111222", "s2-cookie", "{SWID}", testUserID).Return(l, nil)

	body := `{"espn_league_id":"111222","espn_s2":"s2-cookie","swid":"{SWID}"}`
	w := s.request(t, http.MethodPost, "/api/leagues/espn", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("unexpected status code: %d - %s", w.Code, w.Body.String())
	}

	var got model.League
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if got.ID != 12 || got.Name != "The Gridiron Gang" {
		t.Errorf("unexpected league in response: %+v", got)
	}

	s.ctrl.AssertExpectations(t)
}

func TestConnectESPNLeagueHandler_badBody(t *testing.T) {
	s := newTestServer(t)

	w := s.request(t, http.MethodPost, "/api/leagues/espn", "{not json")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}

	s.ctrl.AssertNotCalled(t, "ConnectESPNLeague", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConnectSleeperLeagueHandler(t *testing.T) {
	s := newTestServer(t)

	l := &model.League{ID: 9, Platform: model.PlatformSleeper, Name: "Dynasty Degenerates"}
	s.ctrl.On("ConnectSleeperLeague", mock.Anything, "987654321", "sleeperuser", testUserID).Return(l, nil)

	body := `{"sleeper_league_id":"987654321","sleeper_user_id":"sleeperuser"}`
	w := s.request(t, http.MethodPost, "/api/leagues/sleeper", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("unexpected status code: %d - %s", w.Code, w.Body.String())
	}

	s.ctrl.AssertExpectations(t)
}

func TestGetLeagueHandler_notFound(t *testing.T) {
	s := newTestServer(t)
	s.ctrl.On("GetLeague", mock.Anything, int32(44)).Return(nil, db.ErrLeagueNotFound)

	w := s.request(t, http.MethodGet, "/api/leagues/44", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestGetTeamRosterHandler(t *testing.T) {
	s := newTestServer(t)

	roster := []model.RosterEntry{{PlayerID: "4046", Name: "Patrick Mahomes", Slot: model.SlotStarter, ProjectedPoints: 10.25, HasProjection: true}}
	s.ctrl.On("GetTeamRoster", mock.Anything, int32(5), int32(3), 2).Return(roster, nil)

	w := s.request(t, http.MethodGet, "/api/leagues/5/teams/3/roster?week=2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status code: %d - %s", w.Code, w.Body.String())
	}

	var got []model.RosterEntry
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Patrick Mahomes" {
		t.Errorf("unexpected roster in response: %+v", got)
	}
}

func TestGetTeamRosterHandler_badWeek(t *testing.T) {
	s := newTestServer(t)

	w := s.request(t, http.MethodGet, "/api/leagues/5/teams/3/roster?week=soon", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestAnalyzeTradeHandler(t *testing.T) {
	s := newTestServer(t)

	analysis := &model.TradeAnalysis{IsValid: true, FairnessScore: 75, Verdict: "balanced"}
	s.ctrl.On("AnalyzeTrade", mock.Anything, mock.MatchedBy(func(tr *model.Trade) bool {
		return tr.LeagueID == 5 && tr.UserID == testUserID &&
			tr.ProposingTeamID == 1 && tr.ReceivingTeamID == 2 &&
			len(tr.GivePlayers) == 1 && tr.GivePlayers[0] == "4046"
	})).Return(analysis, nil)

	body := `{"proposing_team_id":1,"receiving_team_id":2,"give_players":["4046"],"receive_players":["2977189"]}`
	w := s.request(t, http.MethodPost, "/api/leagues/5/trades/analyze", body)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status code: %d - %s", w.Code, w.Body.String())
	}

	var got model.TradeAnalysis
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if !got.IsValid || got.FairnessScore != 75 || got.Verdict != "balanced" {
		t.Errorf("unexpected analysis in response: %+v", got)
	}
}

func TestAnalyzeTradeHandler_invalid(t *testing.T) {
	s := newTestServer(t)

	valErr := &model.ValidationError{Field: "give_players", Reason: "at least one player is required"}
	s.ctrl.On("AnalyzeTrade", mock.Anything, mock.Anything).Return(nil, valErr)

	body := `{"proposing_team_id":1,"receiving_team_id":2,"give_players":[],"receive_players":["2977189"]}`
	w := s.request(t, http.MethodPost, "/api/leagues/5/trades/analyze", body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "at least one player is required") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestCreateTradeHandler(t *testing.T) {
	s := newTestServer(t)

	created := &model.Trade{ID: 31, LeagueID: 5, Status: model.TradePending}
	s.ctrl.On("CreateTrade", mock.Anything, mock.MatchedBy(func(tr *model.Trade) bool {
		return tr.LeagueID == 5 && tr.UserID == testUserID
	})).Return(created, nil)

	body := `{"proposing_team_id":1,"receiving_team_id":2,"give_players":["4046"],"receive_players":["2977189"]}`
	w := s.request(t, http.MethodPost, "/api/leagues/5/trades", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("unexpected status code: %d - %s", w.Code, w.Body.String())
	}

	var got model.Trade
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if got.ID != 31 || got.Status != model.TradePending {
		t.Errorf("unexpected trade in response: %+v", got)
	}
}

func TestUpdateTradeStatusHandler(t *testing.T) {
	s := newTestServer(t)
	s.ctrl.On("UpdateTradeStatus", mock.Anything, int32(31), "ACCEPTED").Return(nil)

	w := s.request(t, http.MethodPut, "/api/trades/31/status", `{"status":"ACCEPTED"}`)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected status 204, got %d", w.Code)
	}

	s.ctrl.AssertExpectations(t)
}

func TestGetTradeHandler_notFound(t *testing.T) {
	s := newTestServer(t)
	s.ctrl.On("GetTrade", mock.Anything, int32(404)).Return(nil, db.ErrTradeNotFound)

	w := s.request(t, http.MethodGet, "/api/trades/404", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestGetTrendingPlayersHandler(t *testing.T) {
	s := newTestServer(t)

	players := []model.TrendingPlayer{{PlayerID: "7564", Count: 120531}}
	s.ctrl.On("GetTrendingPlayers", mock.Anything, "drop", 48, 10).Return(players, nil)

	w := s.request(t, http.MethodGet, "/api/players/trending?type=drop&hours=48&limit=10", "")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status code: %d - %s", w.Code, w.Body.String())
	}

	s.ctrl.AssertExpectations(t)
}

func TestGetSleeperLeaguesHandler(t *testing.T) {
	s := newTestServer(t)

	leagues := []model.League{{Platform: model.PlatformSleeper, SleeperLeagueID: "987654321", Name: "Dynasty Degenerates"}}
	s.ctrl.On("GetSleeperLeagues", mock.Anything, "sleeperuser", 2025).Return(leagues, nil)

	w := s.request(t, http.MethodGet, "/api/sleeper/users/sleeperuser/leagues?season=2025", "")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status code: %d - %s", w.Code, w.Body.String())
	}

	var got []model.League
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(got) != 1 || got[0].SleeperLeagueID != "987654321" {
		t.Errorf("unexpected leagues in response: %+v", got)
	}

	s.ctrl.AssertExpectations(t)
}

func TestGetWeeklyRecapHandler(t *testing.T) {
	s := newTestServer(t)
	s.ctrl.On("GetWeeklyRecap", mock.Anything, int32(5), 3).Return("What a week in The Gridiron Gang!", nil)

	w := s.request(t, http.MethodGet, "/api/leagues/5/recap?week=3", "")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status code: %d - %s", w.Code, w.Body.String())
	}

	var got recapResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if got.LeagueID != 5 || got.Recap != "What a week in The Gridiron Gang!" {
		t.Errorf("unexpected recap in response: %+v", got)
	}
}
