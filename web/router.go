package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/unrolled/render"

	"github.com/djmorgan26/fantasy-football-assistant/controller"
)

func getRouter(ctrl controller.C, rnd *render.Render, auth *tokenAuth) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/healthz", healthHandler(rnd))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.authenticate(rnd))

		r.Route("/leagues", func(r chi.Router) {
			r.Get("/", listLeaguesHandler(ctrl, rnd))
			// Connecting runs the first sync, so give it the longer timeout too.
			r.With(middleware.Timeout(30 * time.Second)).Post("/espn", connectESPNLeagueHandler(ctrl, rnd))
			r.With(middleware.Timeout(30 * time.Second)).Post("/sleeper", connectSleeperLeagueHandler(ctrl, rnd))

			r.Route("/{leagueID:\\d+}", func(r chi.Router) {
				r.Get("/", getLeagueHandler(ctrl, rnd))
				r.Delete("/", disconnectLeagueHandler(ctrl, rnd))
				r.With(middleware.Timeout(30 * time.Second)).Post("/sync", syncLeagueHandler(ctrl, rnd))

				r.Get("/teams", getTeamsHandler(ctrl, rnd))
				r.Get("/teams/{teamID:\\d+}/roster", getTeamRosterHandler(ctrl, rnd))
				r.Get("/teams/{teamID:\\d+}/suggestions", getSuggestionsHandler(ctrl, rnd))
				r.Get("/matchups", getMatchupsHandler(ctrl, rnd))
				r.Get("/players/available", getAvailablePlayersHandler(ctrl, rnd))
				r.Get("/waiver-budgets", getWaiverBudgetsHandler(ctrl, rnd))
				r.Get("/recap", getWeeklyRecapHandler(ctrl, rnd))

				r.Get("/trades", listTradesHandler(ctrl, rnd))
				r.Post("/trades", createTradeHandler(ctrl, rnd))
				r.Post("/trades/analyze", analyzeTradeHandler(ctrl, rnd))
			})
		})

		r.Route("/trades/{tradeID:\\d+}", func(r chi.Router) {
			r.Get("/", getTradeHandler(ctrl, rnd))
			r.Put("/status", updateTradeStatusHandler(ctrl, rnd))
		})

		r.Get("/players/trending", getTrendingPlayersHandler(ctrl, rnd))
		r.Get("/sleeper/users/{identifier}/leagues", getSleeperLeaguesHandler(ctrl, rnd))
	})

	return r
}
