package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/djmorgan26/fantasy-football-assistant/model"
)

const (
	defaultTrendingLookbackHours = 24
	defaultTrendingLimit         = 25
)

// GetTrendingPlayers lists the most added or dropped players across all of
// Sleeper. The list is platform-global, so no league is involved.
func (c *controller) GetTrendingPlayers(ctx context.Context, trendType string, lookbackHours, limit int) ([]model.TrendingPlayer, error) {
	if trendType != "add" && trendType != "drop" {
		return nil, &model.ValidationError{Field: "type", Reason: fmt.Sprintf("%s is not a trend type, expected add or drop", trendType)}
	}
	if lookbackHours <= 0 {
		lookbackHours = defaultTrendingLookbackHours
	}
	if limit <= 0 {
		limit = defaultTrendingLimit
	}
	return c.sleeper.GetTrendingPlayers(ctx, trendType, lookbackHours, limit)
}

// GetSleeperLeagues resolves the identifier to a Sleeper account and lists
// its leagues for the season, defaulting to the current calendar year.
func (c *controller) GetSleeperLeagues(ctx context.Context, identifier string, season int) ([]model.League, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, &model.ValidationError{Field: "identifier", Reason: "a username or user id must be provided"}
	}
	if season <= 0 {
		season = c.clock.Now().Year()
	}

	u, err := c.sleeper.GetUser(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return c.sleeper.GetLeaguesForUser(ctx, u.ID, season)
}
