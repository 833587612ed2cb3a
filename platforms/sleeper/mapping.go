package sleeper

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/djmorgan26/fantasy-football-assistant/model"
	"github.com/djmorgan26/fantasy-football-assistant/platforms/sleeper/internal"
)

var positionNames = map[string]string{
	"QB":         "QB",
	"RB":         "RB",
	"WR":         "WR",
	"TE":         "TE",
	"K":          "K",
	"DEF":        "D/ST",
	"FLEX":       "FLEX",
	"SUPER_FLEX": "SFLEX",
	"BN":         "BENCH",
	"IR":         "IR",
}

func positionName(sleeperPosition string) string {
	if name, ok := positionNames[sleeperPosition]; ok {
		return name
	}
	return sleeperPosition
}

// detectScoringType reads the points-per-reception value from the league's
// scoring settings. 1.0 is PPR, 0.5 half PPR, anything else standard.
func detectScoringType(scoring map[string]float64) string {
	switch scoring["rec"] {
	case 1.0:
		return model.ScoringPPR
	case 0.5:
		return model.ScoringHalfPPR
	}
	return model.ScoringStandard
}

func toLeague(l *internal.League) *model.League {
	seasonYear, err := strconv.Atoi(l.Season)
	if err != nil {
		seasonYear = 0
	}

	currentWeek := 1
	if l.Settings != nil && l.Settings.Leg > 0 {
		currentWeek = l.Settings.Leg
	}

	scoring := make(map[string]any, len(l.ScoringSettings))
	for k, v := range l.ScoringSettings {
		scoring[k] = v
	}

	return &model.League{
		Platform:        model.PlatformSleeper,
		SleeperLeagueID: l.LeagueID,
		Name:            l.Name,
		SeasonYear:      seasonYear,
		Size:            l.TotalRosters,
		CurrentWeek:     currentWeek,
		ScoringType:     detectScoringType(l.ScoringSettings),
		RosterSettings:  map[string]any{"roster_positions": l.RosterPositions},
		ScoringSettings: scoring,
		IsActive:        true,
	}
}

// teamName joins a roster to its owner's display name, falling back to
// "Team <roster_id>" for orphaned rosters.
func teamName(roster internal.Roster, users []internal.LeagueUser) string {
	for _, u := range users {
		if u.UserID != "" && u.UserID == roster.OwnerID {
			if u.DisplayName != "" {
				return u.DisplayName
			}
			break
		}
	}
	return fmt.Sprintf("Team %d", roster.RosterID)
}

func toTeam(roster internal.Roster, users []internal.LeagueUser) model.Team {
	t := model.Team{
		SleeperRosterID: int32(roster.RosterID),
		SleeperOwnerID:  roster.OwnerID,
		Name:            teamName(roster, users),
	}
	if roster.Settings != nil {
		t.Wins = roster.Settings.Wins
		t.Losses = roster.Settings.Losses
		t.Ties = roster.Settings.Ties
		t.PointsFor = roster.Settings.FPts
		t.PointsAgainst = roster.Settings.FPtsAgainst
	}
	return t
}

// pairMatchups groups a week's rows by matchup id. A group of exactly two
// rows becomes a head-to-head matchup; any other group size, and rows with
// no matchup id at all, stay single-sided and are never force-paired.
func pairMatchups(rows []internal.MatchupRow, week int) []model.Matchup {
	groups := make(map[int][]internal.MatchupRow)
	var order []int
	var singles []internal.MatchupRow

	for _, row := range rows {
		if row.MatchupID == nil {
			singles = append(singles, row)
			continue
		}
		id := *row.MatchupID
		if _, ok := groups[id]; !ok {
			order = append(order, id)
		}
		groups[id] = append(groups[id], row)
	}
	sort.Ints(order)

	matchups := make([]model.Matchup, 0, len(order)+len(singles))
	for _, id := range order {
		group := groups[id]
		sort.Slice(group, func(i, j int) bool {
			return group[i].RosterID < group[j].RosterID
		})
		if len(group) == 2 {
			matchups = append(matchups, model.Matchup{
				Week:   week,
				Winner: model.WinnerUndecided,
				Home:   rowScore(group[0]),
				Away:   rowScore(group[1]),
			})
			continue
		}
		singles = append(singles, group...)
	}

	for _, row := range singles {
		matchups = append(matchups, model.Matchup{
			Week:   week,
			Winner: model.WinnerUndecided,
			Home:   rowScore(row),
		})
	}
	return matchups
}

func rowScore(row internal.MatchupRow) *model.TeamScore {
	return &model.TeamScore{
		TeamID: strconv.Itoa(row.RosterID),
		Score:  row.Points,
	}
}

// toRosterEntries classifies a roster's player ids: the starters list wins,
// then the reserve list, everyone else is on the bench. Sleeper rosters
// only carry ids; names and positions come from the separate player
// catalog, which we do not join here.
func toRosterEntries(roster *internal.Roster) []model.RosterEntry {
	starters := make(map[string]bool, len(roster.Starters))
	for _, id := range roster.Starters {
		if id != "" && id != "0" {
			starters[id] = true
		}
	}
	reserve := make(map[string]bool, len(roster.Reserve))
	for _, id := range roster.Reserve {
		reserve[id] = true
	}

	entries := make([]model.RosterEntry, 0, len(roster.Players))
	for _, id := range roster.Players {
		slot := model.SlotBench
		switch {
		case starters[id]:
			slot = model.SlotStarter
		case reserve[id]:
			slot = model.SlotIR
		}
		entries = append(entries, model.RosterEntry{
			PlayerID: id,
			Slot:     slot,
		})
	}
	return entries
}
