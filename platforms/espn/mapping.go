package espn

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/djmorgan26/fantasy-football-assistant/model"
	"github.com/djmorgan26/fantasy-football-assistant/platforms/espn/internal"
)

// ESPN numeric slot ids for bench and injured reserve. Everything else
// counts as a starting slot.
const (
	slotBench = 20
	slotIR    = 21
)

var positionNames = map[int]string{
	0: "QB", 1: "TQB", 2: "RB", 3: "RB/WR", 4: "WR",
	5: "WR/TE", 6: "TE", 16: "D/ST", 17: "K", 20: "BENCH",
	21: "IR", 23: "FLEX",
}

var lineupSlotNames = map[int]string{
	0: "QB", 2: "RB", 4: "WR", 6: "TE", 16: "D/ST",
	17: "K", 20: "BENCH", 21: "IR", 23: "FLEX",
}

var proTeamAbbrs = map[int]string{
	1: "ATL", 2: "BUF", 3: "CHI", 4: "CIN", 5: "CLE", 6: "DAL", 7: "DEN",
	8: "DET", 9: "GB", 10: "TEN", 11: "IND", 12: "KC", 13: "LV", 14: "LAR",
	15: "MIA", 16: "MIN", 17: "NE", 18: "NO", 19: "NYG", 20: "NYJ",
	21: "PHI", 22: "ARI", 23: "PIT", 24: "LAC", 25: "SF", 26: "SEA",
	27: "TB", 28: "WAS", 29: "CAR", 30: "JAX", 33: "BAL", 34: "HOU",
}

func positionName(id int) string {
	if name, ok := positionNames[id]; ok {
		return name
	}
	return "UNKNOWN"
}

func lineupSlotName(id int) string {
	if name, ok := lineupSlotNames[id]; ok {
		return name
	}
	return "UNKNOWN"
}

func proTeamAbbr(id int) string {
	if abbr, ok := proTeamAbbrs[id]; ok {
		return abbr
	}
	return "FA"
}

func classifySlot(lineupSlotID int) string {
	switch lineupSlotID {
	case slotBench:
		return model.SlotBench
	case slotIR:
		return model.SlotIR
	}
	return model.SlotStarter
}

// resolveTeamName picks a display name for a team. Custom names win, then
// location+nickname combinations, with "Team <abbrev>" and "Team <id>" as
// the final fallbacks.
func resolveTeamName(t internal.Team) string {
	name := strings.TrimSpace(t.Name)
	location := strings.TrimSpace(t.Location)
	nickname := strings.TrimSpace(t.Nickname)
	abbrev := strings.TrimSpace(t.Abbrev)

	switch {
	case name != "":
		return name
	case location != "" && nickname != "":
		return fmt.Sprintf("%s %s", location, nickname)
	case location != "":
		return location
	case nickname != "":
		return nickname
	case abbrev != "":
		return fmt.Sprintf("Team %s", abbrev)
	}
	return fmt.Sprintf("Team %d", t.ID)
}

// detectScoringType inspects the reception scoring item (statId 53).
// 1.0 points per reception is PPR, 0.5 is half PPR, anything else standard.
func detectScoringType(settings *internal.Settings) string {
	if settings == nil || settings.ScoringSettings == nil {
		return model.ScoringStandard
	}
	for _, item := range settings.ScoringSettings.ScoringItems {
		if item.StatID != 53 {
			continue
		}
		switch item.Points {
		case 1.0:
			return model.ScoringPPR
		case 0.5:
			return model.ScoringHalfPPR
		}
	}
	return model.ScoringStandard
}

// projectedPoints returns the projected applied total for a player. When
// week > 0 only that scoring period is considered. The second return value
// distinguishes a published projection of zero from no projection at all.
func projectedPoints(p *internal.Player, week int) (float64, bool) {
	if p == nil {
		return 0, false
	}
	for _, entry := range p.Stats {
		if week > 0 && entry.ScoringPeriodID != week {
			continue
		}
		if entry.StatSourceID != 1 {
			continue
		}
		if entry.AppliedTotal != nil {
			return *entry.AppliedTotal, true
		}
		return 0, true
	}
	return 0, false
}

func actualPoints(p *internal.Player, week int) float64 {
	if p == nil {
		return 0
	}
	for _, entry := range p.Stats {
		if week > 0 && entry.ScoringPeriodID != week {
			continue
		}
		if entry.StatSourceID == 0 && entry.AppliedTotal != nil {
			return *entry.AppliedTotal
		}
	}
	return 0
}

// statBuckets splits a player's stat lines into actual and projected maps,
// optionally filtered to one week.
func statBuckets(p *internal.Player, week int) (actual, projected map[string]float64) {
	if p == nil {
		return nil, nil
	}
	for _, entry := range p.Stats {
		if week > 0 && entry.ScoringPeriodID != week {
			continue
		}
		switch entry.StatSourceID {
		case 0:
			actual = entry.Stats
		case 1:
			projected = entry.Stats
		}
	}
	return actual, projected
}

// liveScore resolves a side's score with the in-game fallback chain:
// totalPointsLive while games run, then the per-week breakdown, then the
// final total.
func liveScore(side *internal.SideTeam, week int) float64 {
	if side == nil {
		return 0
	}
	if side.TotalPointsLive != nil {
		return *side.TotalPointsLive
	}
	if score, ok := side.PointsByScoringPeriod[strconv.Itoa(week)]; ok {
		return score
	}
	return side.TotalPoints
}

// teamProjectedScore sums projected points over the starting lineup. Bench
// and IR slots never count. A total of zero means no projection could be
// computed and maps to nil rather than a projected zero.
func teamProjectedScore(entries []internal.RosterEntry, week int) *float64 {
	var total float64
	for _, entry := range entries {
		if entry.LineupSlotID == slotBench || entry.LineupSlotID == slotIR {
			continue
		}
		if entry.PlayerPoolEntry == nil {
			continue
		}
		points, _ := projectedPoints(entry.PlayerPoolEntry.Player, week)
		total += points
	}
	if total == 0 {
		return nil
	}
	return &total
}
