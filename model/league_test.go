package model

import "testing"

func TestLeagueValidate(t *testing.T) {
	tests := map[string]struct {
		league   League
		exErrMsg string
	}{
		"valid espn": {league: League{Platform: PlatformESPN, ESPNLeagueID: "12345", SeasonYear: 2025}},
		"valid sleeper": {league: League{Platform: PlatformSleeper, SleeperLeagueID: "924039165950484480", SeasonYear: 2025}},
		"unsupported platform": {league: League{Platform: "yahoo", SeasonYear: 2025},
			exErrMsg: "platform: yahoo is not a supported platform"},
		"espn missing id": {league: League{Platform: PlatformESPN, SeasonYear: 2025},
			exErrMsg: "espn_league_id: espn league must have an ESPN league id"},
		"espn with sleeper id": {league: League{Platform: PlatformESPN, ESPNLeagueID: "12345", SleeperLeagueID: "9", SeasonYear: 2025},
			exErrMsg: "sleeper_league_id: espn league must not have a sleeper league id"},
		"sleeper missing id": {league: League{Platform: PlatformSleeper, SeasonYear: 2025},
			exErrMsg: "sleeper_league_id: sleeper league must have a sleeper league id"},
		"sleeper with espn id": {league: League{Platform: PlatformSleeper, SleeperLeagueID: "9", ESPNLeagueID: "12345", SeasonYear: 2025},
			exErrMsg: "espn_league_id: sleeper league must not have an ESPN league id"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			err := tc.league.Validate()
			if tc.exErrMsg == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			} else {
				if err == nil || err.Error() != tc.exErrMsg {
					t.Errorf("expected error %q, got %v", tc.exErrMsg, err)
				}
			}
		})
	}
}

func TestLeagueExternalID(t *testing.T) {
	espn := League{Platform: PlatformESPN, ESPNLeagueID: "12345"}
	if espn.ExternalID() != "12345" {
		t.Errorf("wrong external id for espn league: %s", espn.ExternalID())
	}

	sleeper := League{Platform: PlatformSleeper, SleeperLeagueID: "924039165950484480"}
	if sleeper.ExternalID() != "924039165950484480" {
		t.Errorf("wrong external id for sleeper league: %s", sleeper.ExternalID())
	}
}
