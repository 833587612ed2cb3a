package controller

import (
	"context"
	"fmt"
	"log"

	"github.com/djmorgan26/fantasy-football-assistant/llm"
	"github.com/djmorgan26/fantasy-football-assistant/model"
)

// recapUnavailable is returned as the recap body when no text-generation
// collaborator is configured.
const recapUnavailable = "AI recap unavailable. Please configure GROQ_API_KEY to enable hilarious weekly recaps!"

func (c *controller) GetSuggestions(ctx context.Context, leagueID, teamID int32) ([]llm.Suggestion, error) {
	l, t, err := c.leagueTeam(ctx, leagueID, teamID)
	if err != nil {
		return nil, err
	}

	adapter := getPlatformAdapter(l.Platform, c)
	roster, err := adapter.getTeamRoster(ctx, l, t, l.CurrentWeek)
	if err != nil {
		return nil, fmt.Errorf("error loading roster for suggestions: %w", err)
	}

	// Matchups and free agents add context but a failure to load either
	// never blocks a suggestion response.
	matchups, err := adapter.getMatchups(ctx, l, l.CurrentWeek)
	if err != nil {
		log.Printf("error loading matchups for suggestions: %v", err)
		matchups = nil
	}
	var available []model.AvailablePlayer
	if l.Platform == model.PlatformESPN {
		available, err = adapter.getAvailablePlayers(ctx, l, l.CurrentWeek, "")
		if err != nil {
			log.Printf("error loading available players for suggestions: %v", err)
			available = nil
		}
	}

	if !c.llm.Available() {
		return fallbackSuggestions(), nil
	}

	suggestions, err := c.llm.GenerateSuggestions(ctx, roster, l, matchups, available)
	if err != nil {
		log.Printf("suggestion generation failed, using fallback: %v", err)
		return fallbackSuggestions(), nil
	}
	return suggestions, nil
}

func (c *controller) GetWeeklyRecap(ctx context.Context, leagueID int32, week int) (string, error) {
	l, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return "", err
	}
	if week <= 0 {
		week = l.CurrentWeek
	}

	adapter := getPlatformAdapter(l.Platform, c)
	matchups, err := adapter.getMatchups(ctx, l, week)
	if err != nil {
		return "", fmt.Errorf("error loading matchups for recap: %w", err)
	}
	if len(matchups) == 0 {
		return "", &model.ValidationError{Field: "week", Reason: fmt.Sprintf("no matchups found for week %d", week)}
	}
	teams, err := adapter.getTeams(ctx, l)
	if err != nil {
		return "", fmt.Errorf("error loading teams for recap: %w", err)
	}

	if !c.llm.Available() {
		return recapUnavailable, nil
	}

	return c.llm.WeeklyRecap(ctx, l.Name, week, matchupLines(matchups, teams))
}

// matchupLines renders each matchup as one human-readable line for the
// recap prompt. Unpaired rows show only their single side.
func matchupLines(matchups []model.Matchup, teams []model.Team) []string {
	names := make(map[string]string, len(teams))
	for i := range teams {
		names[teams[i].PlatformTeamID()] = teams[i].Name
	}
	name := func(s *model.TeamScore) string {
		if n, ok := names[s.TeamID]; ok && n != "" {
			return n
		}
		return "Team " + s.TeamID
	}

	lines := make([]string, 0, len(matchups))
	for _, m := range matchups {
		if m.Home == nil {
			continue
		}
		if !m.Paired() {
			lines = append(lines, fmt.Sprintf("%s scored %.1f with no opponent this week",
				name(m.Home), m.Home.Score))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %.1f - %.1f %s (winner: %s)",
			name(m.Home), m.Home.Score, m.Away.Score, name(m.Away), winnerName(m, name)))
	}
	return lines
}

func winnerName(m model.Matchup, name func(*model.TeamScore) string) string {
	switch m.Winner {
	case model.WinnerHome:
		return name(m.Home)
	case model.WinnerAway:
		return name(m.Away)
	case model.WinnerTie:
		return "tie"
	default:
		return "undecided"
	}
}

func fallbackSuggestions() []llm.Suggestion {
	return []llm.Suggestion{
		{
			ID:              "1",
			Type:            "lineup",
			Priority:        "medium",
			Title:           "Review Your Lineup",
			Description:     "Manually check your lineup for optimal player placement",
			Reasoning:       "LLM service not available for automated analysis",
			PotentialImpact: "Ensure best players are starting",
			ConfidenceScore: 0.5,
			ActionDetails:   map[string]any{},
		},
	}
}
