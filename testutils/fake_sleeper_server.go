package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

//go:embed sleeperdata
var sleeperdata embed.FS

// Fixed identifiers the sleeperdata fixtures are written against.
const (
	SleeperLeagueID  = "987654321"
	SleeperUserID    = "12345678"
	SleeperUsername  = "sleeperuser"
	SleeperSeason    = 2025
	SleeperOtherUser = "87654321"
)

type FakeSleeperServer struct {
	s *httptest.Server
}

func NewFakeSleeperServer() *FakeSleeperServer {
	r := chi.NewRouter()
	r.Route("/user", func(r chi.Router) {
		r.Get("/{userID}/leagues/nfl/{year}", sleeperUserLeaguesHandler)
		r.Get("/{username}", sleeperUserHandler)
	})
	r.Route("/league/{leagueID}", func(r chi.Router) {
		r.Use(sleeperLeagueCheck)
		r.Get("/", sleeperLeagueHandler)
		r.Get("/rosters", sleeperRostersHandler)
		r.Get("/users", sleeperLeagueUsersHandler)
		r.Get("/matchups/{week}", sleeperMatchupsHandler)
	})
	r.Get("/players/nfl/trending/{trendType}", sleeperTrendingHandler)

	return &FakeSleeperServer{
		s: httptest.NewServer(r),
	}
}

func (f *FakeSleeperServer) Close() {
	f.s.Close()
}

func (f *FakeSleeperServer) URL() string {
	return f.s.URL
}

func sleeperLeagueCheck(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "leagueID") != SleeperLeagueID {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func sleeperUserHandler(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == SleeperUsername || username == SleeperUserID {
		serveSleeperFile(w, "user.json")
		return
	}
	// unknown users come back as a 200 with "null" as the body
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("null"))
}

func sleeperUserLeaguesHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	year := chi.URLParam(r, "year")

	if userID == SleeperUserID && year == fmt.Sprintf("%d", SleeperSeason) {
		serveSleeperFile(w, "user_leagues.json")
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("[]"))
}

func sleeperLeagueHandler(w http.ResponseWriter, r *http.Request) {
	serveSleeperFile(w, "league.json")
}

func sleeperRostersHandler(w http.ResponseWriter, r *http.Request) {
	serveSleeperFile(w, "rosters.json")
}

func sleeperLeagueUsersHandler(w http.ResponseWriter, r *http.Request) {
	serveSleeperFile(w, "users.json")
}

func sleeperMatchupsHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "week") == "3" {
		serveSleeperFile(w, "matchups_3.json")
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("[]"))
}

func sleeperTrendingHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "trendType") == "add" {
		serveSleeperFile(w, "trending_add.json")
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("[]"))
}

func serveSleeperFile(w http.ResponseWriter, name string) {
	b, err := sleeperdata.ReadFile(fmt.Sprintf("sleeperdata/%s", name))
	if err != nil {
		log.Printf("error reading sleeperdata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
