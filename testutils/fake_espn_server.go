package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"slices"

	"github.com/go-chi/chi/v5"
)

//go:embed espndata
var espndata embed.FS

// Fixed identifiers the espndata fixtures are written against.
const (
	ESPNLeagueID        = "111222"
	ESPNPrivateLeagueID = "333444"
	ESPNSeasonYear      = 2025
	ESPNS2              = "espn-s2-cookie-value"
	ESPNSWID            = "{ABCD-1234}"
)

// FakeESPNServer serves canned ESPN league responses keyed on the view
// query parameter. The private league requires the espn_s2 and SWID cookies
// and answers 401 otherwise.
type FakeESPNServer struct {
	s *httptest.Server
}

func NewFakeESPNServer() *FakeESPNServer {
	r := chi.NewRouter()
	r.Get("/seasons/{year}/segments/0/leagues/{leagueID}", espnLeagueHandler)

	return &FakeESPNServer{
		s: httptest.NewServer(r),
	}
}

func (f *FakeESPNServer) Close() {
	f.s.Close()
}

func (f *FakeESPNServer) URL() string {
	return f.s.URL
}

func espnLeagueHandler(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "leagueID")
	year := chi.URLParam(r, "year")

	if year != fmt.Sprintf("%d", ESPNSeasonYear) {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch leagueID {
	case ESPNLeagueID:
	case ESPNPrivateLeagueID:
		s2, err := r.Cookie("espn_s2")
		if err != nil || s2.Value != ESPNS2 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		swid, err := r.Cookie("SWID")
		if err != nil || swid.Value != ESPNSWID {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
	default:
		w.WriteHeader(http.StatusNotFound)
		return
	}

	views := r.URL.Query()["view"]
	switch {
	case slices.Contains(views, "mTeam"):
		serveESPNFile(w, "league_mteam.json")
	case slices.Contains(views, "mRoster"):
		serveESPNFile(w, "league_mroster.json")
	case slices.Contains(views, "mMatchup"):
		serveESPNFile(w, "league_matchups.json")
	case slices.Contains(views, "players_wl"):
		serveESPNFile(w, "league_players.json")
	default:
		serveESPNFile(w, "league.json")
	}
}

func serveESPNFile(w http.ResponseWriter, name string) {
	b, err := espndata.ReadFile(fmt.Sprintf("espndata/%s", name))
	if err != nil {
		log.Printf("error reading espndata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
