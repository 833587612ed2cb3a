package model

import (
	"fmt"
	"time"
)

var (
	PlatformESPN    = "espn"
	PlatformSleeper = "sleeper"
)

func IsPlatformSupported(platform string) bool {
	return platform == PlatformESPN || platform == PlatformSleeper
}

const (
	ScoringStandard = "standard"
	ScoringPPR      = "ppr"
	ScoringHalfPPR  = "half_ppr"
)

// League is the platform-agnostic view of a connected fantasy league.
// Exactly one of ESPNLeagueID or SleeperLeagueID is set, matching Platform.
type League struct {
	ID         int32  `json:"id"`
	Platform   string `json:"platform"`
	Name       string `json:"name"`
	SeasonYear int    `json:"season_year"`
	Size       int    `json:"size"`

	ScoringType     string         `json:"scoring_type"`
	CurrentWeek     int            `json:"current_week"`
	RosterSettings  map[string]any `json:"roster_settings,omitempty"`
	ScoringSettings map[string]any `json:"scoring_settings,omitempty"`

	ESPNLeagueID    string `json:"espn_league_id,omitempty"`
	SleeperLeagueID string `json:"sleeper_league_id,omitempty"`
	SleeperUserID   string `json:"sleeper_user_id,omitempty"`

	// Encrypted at rest, decrypted per upstream call. Never stored in
	// plaintext and never serialized.
	ESPNS2Encrypted   string `json:"-"`
	ESPNSWIDEncrypted string `json:"-"`

	OwnerUserID int32     `json:"owner_user_id"`
	IsActive    bool      `json:"is_active"`
	LastSynced  time.Time `json:"last_synced"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

// ExternalID returns the platform-specific league identifier.
func (l *League) ExternalID() string {
	switch l.Platform {
	case PlatformESPN:
		return l.ESPNLeagueID
	case PlatformSleeper:
		return l.SleeperLeagueID
	}
	return ""
}

// Validate checks the platform/identifier pairing before the league is saved.
func (l *League) Validate() error {
	if !IsPlatformSupported(l.Platform) {
		return &ValidationError{Field: "platform", Reason: fmt.Sprintf("%s is not a supported platform", l.Platform)}
	}
	switch l.Platform {
	case PlatformESPN:
		if l.ESPNLeagueID == "" {
			return &ValidationError{Field: "espn_league_id", Reason: "espn league must have an ESPN league id"}
		}
		if l.SleeperLeagueID != "" {
			return &ValidationError{Field: "sleeper_league_id", Reason: "espn league must not have a sleeper league id"}
		}
	case PlatformSleeper:
		if l.SleeperLeagueID == "" {
			return &ValidationError{Field: "sleeper_league_id", Reason: "sleeper league must have a sleeper league id"}
		}
		if l.ESPNLeagueID != "" {
			return &ValidationError{Field: "espn_league_id", Reason: "sleeper league must not have an ESPN league id"}
		}
	}
	return nil
}
