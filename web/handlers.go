package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/unrolled/render"

	"github.com/djmorgan26/fantasy-football-assistant/controller"
	"github.com/djmorgan26/fantasy-football-assistant/model"
)

func healthHandler(rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rnd.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

type connectESPNRequest struct {
	ESPNLeagueID string `json:"espn_league_id"`
	ESPNS2       string `json:"espn_s2"`
	SWID         string `json:"swid"`
}

func connectESPNLeagueHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req connectESPNRequest
		if err := decodeBody(r, &req); err != nil {
			renderError(rnd, w, err)
			return
		}

		l, err := ctrl.ConnectESPNLeague(r.Context(), req.ESPNLeagueID, req.ESPNS2, req.SWID, userIDFromContext(r.Context()))
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		rnd.JSON(w, http.StatusCreated, l)
	}
}

type connectSleeperRequest struct {
	SleeperLeagueID string `json:"sleeper_league_id"`
	SleeperUserID   string `json:"sleeper_user_id"`
}

func connectSleeperLeagueHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req connectSleeperRequest
		if err := decodeBody(r, &req); err != nil {
			renderError(rnd, w, err)
			return
		}

		l, err := ctrl.ConnectSleeperLeague(r.Context(), req.SleeperLeagueID, req.SleeperUserID, userIDFromContext(r.Context()))
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		rnd.JSON(w, http.StatusCreated, l)
	}
}

func listLeaguesHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagues, err := ctrl.ListLeagues(r.Context())
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		rnd.JSON(w, http.StatusOK, leagues)
	}
}

func getLeagueHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := int32Param(r, "leagueID")
		if err != nil {
			renderError(rnd, w, err)
			return
		}

		l, err := ctrl.GetLeague(r.Context(), id)
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		rnd.JSON(w, http.StatusOK, l)
	}
}

func syncLeagueHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := int32Param(r, "leagueID")
		if err != nil {
			renderError(rnd, w, err)
			return
		}

		l, err := ctrl.SyncLeague(r.Context(), id)
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		rnd.JSON(w, http.StatusOK, l)
	}
}

func disconnectLeagueHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := int32Param(r, "leagueID")
		if err != nil {
			renderError(rnd, w, err)
			return
		}

		if err := ctrl.DisconnectLeague(r.Context(), id); err != nil {
			renderError(rnd, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func getTeamsHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := int32Param(r, "leagueID")
		if err != nil {
			renderError(rnd, w, err)
			return
		}

		teams, err := ctrl.GetTeams(r.Context(), id)
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		rnd.JSON(w, http.StatusOK, teams)
	}
}

func getTeamRosterHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID, err := int32Param(r, "leagueID")
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		teamID, err := int32Param(r, "teamID")
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		week, err := intQuery(r, "week")
		if err != nil {
			renderError(rnd, w, err)
			return
		}

		roster, err := ctrl.GetTeamRoster(r.Context(), leagueID, teamID, week)
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		rnd.JSON(w, http.StatusOK, roster)
	}
}

func getMatchupsHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID, err := int32Param(r, "leagueID")
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		week, err := intQuery(r, "week")
		if err != nil {
			renderError(rnd, w, err)
			return
		}

		matchups, err := ctrl.GetMatchups(r.Context(), leagueID, week)
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		rnd.JSON(w, http.StatusOK, matchups)
	}
}

func getAvailablePlayersHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID, err := int32Param(r, "leagueID")
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		week, err := intQuery(r, "week")
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		position := r.URL.Query().Get("position")

		players, err := ctrl.GetAvailablePlayers(r.Context(), leagueID, week, position)
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		rnd.JSON(w, http.StatusOK, players)
	}
}

func getWaiverBudgetsHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID, err := int32Param(r, "leagueID")
		if err != nil {
			renderError(rnd, w, err)
			return
		}

		budgets, err := ctrl.GetWaiverBudgets(r.Context(), leagueID)
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		rnd.JSON(w, http.StatusOK, budgets)
	}
}

func getTrendingPlayersHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trendType := r.URL.Query().Get("type")
		if trendType == "" {
			trendType = "add"
		}
		hours, err := intQuery(r, "hours")
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		limit, err := intQuery(r, "limit")
		if err != nil {
			renderError(rnd, w, err)
			return
		}

		players, err := ctrl.GetTrendingPlayers(r.Context(), trendType, hours, limit)
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		rnd.JSON(w, http.StatusOK, players)
	}
}

func getSleeperLeaguesHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		season, err := intQuery(r, "season")
		if err != nil {
			renderError(rnd, w, err)
			return
		}

		leagues, err := ctrl.GetSleeperLeagues(r.Context(), chi.URLParam(r, "identifier"), season)
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		rnd.JSON(w, http.StatusOK, leagues)
	}
}

type tradeRequest struct {
	ProposingTeamID int32    `json:"proposing_team_id"`
	ReceivingTeamID int32    `json:"receiving_team_id"`
	GivePlayers     []string `json:"give_players"`
	ReceivePlayers  []string `json:"receive_players"`
}

func (req *tradeRequest) toTrade(leagueID, userID int32) *model.Trade {
	return &model.Trade{
		LeagueID:        leagueID,
		UserID:          userID,
		ProposingTeamID: req.ProposingTeamID,
		ReceivingTeamID: req.ReceivingTeamID,
		GivePlayers:     req.GivePlayers,
		ReceivePlayers:  req.ReceivePlayers,
	}
}

func analyzeTradeHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID, err := int32Param(r, "leagueID")
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		var req tradeRequest
		if err := decodeBody(r, &req); err != nil {
			renderError(rnd, w, err)
			return
		}

		analysis, err := ctrl.AnalyzeTrade(r.Context(), req.toTrade(leagueID, userIDFromContext(r.Context())))
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		rnd.JSON(w, http.StatusOK, analysis)
	}
}

func createTradeHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID, err := int32Param(r, "leagueID")
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		var req tradeRequest
		if err := decodeBody(r, &req); err != nil {
			renderError(rnd, w, err)
			return
		}

		trade, err := ctrl.CreateTrade(r.Context(), req.toTrade(leagueID, userIDFromContext(r.Context())))
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		rnd.JSON(w, http.StatusCreated, trade)
	}
}

func listTradesHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID, err := int32Param(r, "leagueID")
		if err != nil {
			renderError(rnd, w, err)
			return
		}

		trades, err := ctrl.ListTrades(r.Context(), leagueID)
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		rnd.JSON(w, http.StatusOK, trades)
	}
}

func getTradeHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := int32Param(r, "tradeID")
		if err != nil {
			renderError(rnd, w, err)
			return
		}

		trade, err := ctrl.GetTrade(r.Context(), id)
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		rnd.JSON(w, http.StatusOK, trade)
	}
}

type tradeStatusRequest struct {
	Status string `json:"status"`
}

func updateTradeStatusHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := int32Param(r, "tradeID")
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		var req tradeStatusRequest
		if err := decodeBody(r, &req); err != nil {
			renderError(rnd, w, err)
			return
		}

		if err := ctrl.UpdateTradeStatus(r.Context(), id, req.Status); err != nil {
			renderError(rnd, w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func getSuggestionsHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID, err := int32Param(r, "leagueID")
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		teamID, err := int32Param(r, "teamID")
		if err != nil {
			renderError(rnd, w, err)
			return
		}

		suggestions, err := ctrl.GetSuggestions(r.Context(), leagueID, teamID)
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		rnd.JSON(w, http.StatusOK, suggestions)
	}
}

type recapResponse struct {
	LeagueID int32  `json:"league_id"`
	Recap    string `json:"recap"`
}

func getWeeklyRecapHandler(ctrl controller.C, rnd *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueID, err := int32Param(r, "leagueID")
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		week, err := intQuery(r, "week")
		if err != nil {
			renderError(rnd, w, err)
			return
		}

		recap, err := ctrl.GetWeeklyRecap(r.Context(), leagueID, week)
		if err != nil {
			renderError(rnd, w, err)
			return
		}
		rnd.JSON(w, http.StatusOK, recapResponse{LeagueID: leagueID, Recap: recap})
	}
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &model.ValidationError{Field: "body", Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}
	return nil
}

func int32Param(r *http.Request, name string) (int32, error) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, &model.ValidationError{Field: name, Reason: "must be an integer"}
	}
	return int32(v), nil
}

// intQuery parses an optional integer query parameter, zero when absent.
func intQuery(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &model.ValidationError{Field: name, Reason: "must be an integer"}
	}
	return v, nil
}
