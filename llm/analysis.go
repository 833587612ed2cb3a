package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/djmorgan26/fantasy-football-assistant/model"
)

// TradeVerdict is the structured output of an AI trade analysis.
type TradeVerdict struct {
	OverallVerdict  string   `json:"overall_verdict"`
	FairnessScore   float64  `json:"fairness_score"`
	ValueDifference float64  `json:"value_difference"`
	AnalysisSummary string   `json:"analysis_summary"`
	Pros            []string `json:"pros"`
	Cons            []string `json:"cons"`
	Recommendations []string `json:"recommendations"`
	RiskAssessment  string   `json:"risk_assessment"`
	TeamFitAnalysis string   `json:"team_fit_analysis"`
}

// Suggestion is one strategic recommendation for a team.
type Suggestion struct {
	ID              string         `json:"id"`
	Type            string         `json:"type"`
	Priority        string         `json:"priority"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Reasoning       string         `json:"reasoning"`
	PotentialImpact string         `json:"potential_impact"`
	ConfidenceScore float64        `json:"confidence_score"`
	ActionDetails   map[string]any `json:"action_details"`
}

const tradeAnalysisSystem = "You are an expert fantasy football analyst. Provide detailed, " +
	"actionable trade analysis in JSON format. Consider player performance, matchups, " +
	"injury risk, playoff schedules, and team needs."

// AnalyzeTrade asks the model for a structured verdict on a proposed trade.
func (c *Client) AnalyzeTrade(ctx context.Context, give, receive []model.TradePlayerDetail, giveRoster, receiveRoster []model.RosterEntry, scoringType string) (*TradeVerdict, error) {
	prompt := buildTradePrompt(give, receive, giveRoster, receiveRoster, scoringType)

	content, err := c.chat(ctx, tradeAnalysisSystem, prompt, 0.3, 1500, true)
	if err != nil {
		return nil, err
	}

	var verdict TradeVerdict
	if err := json.Unmarshal([]byte(content), &verdict); err != nil {
		return nil, fmt.Errorf("error parsing trade verdict: %w", err)
	}
	return &verdict, nil
}

func buildTradePrompt(give, receive []model.TradePlayerDetail, giveRoster, receiveRoster []model.RosterEntry, scoringType string) string {
	var b strings.Builder
	b.WriteString("Analyze this fantasy football trade:\n\n")
	b.WriteString("GIVING AWAY:\n")
	b.WriteString(toJSON(give))
	b.WriteString("\n\nRECEIVING:\n")
	b.WriteString(toJSON(receive))
	b.WriteString("\n\nMY ROSTER:\n")
	b.WriteString(toJSON(truncate(giveRoster, 15)))
	b.WriteString("\n\nOPPONENT'S ROSTER:\n")
	b.WriteString(toJSON(truncate(receiveRoster, 15)))
	b.WriteString("\n\nLEAGUE SETTINGS:\n")
	b.WriteString(toJSON(map[string]any{"scoring_type": scoringType}))
	b.WriteString(`

Provide a comprehensive trade analysis in JSON format with these fields:
- overall_verdict: "accept", "decline", or "negotiate"
- fairness_score: 0-100
- value_difference: estimated point difference per week
- analysis_summary: 2-3 sentence overview
- pros: array of benefits
- cons: array of drawbacks
- recommendations: array of specific advice
- risk_assessment: injury/performance risk analysis
- team_fit_analysis: how players fit your roster needs
`)
	return b.String()
}

const suggestionsSystem = "You are an expert fantasy football strategist. Generate 3-5 " +
	"actionable suggestions to improve the user's team. Return suggestions as a JSON array " +
	"with fields: type (pickup/drop/trade/lineup), priority (high/medium/low), title, " +
	"description, reasoning, potential_impact, confidence_score (0-1), and action_details."

// GenerateSuggestions asks the model for strategic moves for a team.
func (c *Client) GenerateSuggestions(ctx context.Context, roster []model.RosterEntry, league *model.League, matchups []model.Matchup, available []model.AvailablePlayer) ([]Suggestion, error) {
	prompt := buildSuggestionsPrompt(roster, league, matchups, available)

	content, err := c.chat(ctx, suggestionsSystem, prompt, 0.5, 2000, true)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Suggestions []Suggestion `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("error parsing suggestions: %w", err)
	}
	for i := range parsed.Suggestions {
		parsed.Suggestions[i].ID = fmt.Sprintf("%d", i+1)
	}
	return parsed.Suggestions, nil
}

func buildSuggestionsPrompt(roster []model.RosterEntry, league *model.League, matchups []model.Matchup, available []model.AvailablePlayer) string {
	var b strings.Builder
	b.WriteString("Analyze this fantasy football team and generate strategic suggestions:\n\n")
	b.WriteString("MY ROSTER:\n")
	b.WriteString(toJSON(truncate(roster, 15)))
	b.WriteString("\n\nLEAGUE INFO:\n")
	b.WriteString(toJSON(map[string]any{
		"name":         league.Name,
		"size":         league.Size,
		"scoring_type": league.ScoringType,
		"current_week": league.CurrentWeek,
	}))
	b.WriteString("\n\nRECENT PERFORMANCE:\n")
	b.WriteString(toJSON(truncate(matchups, 5)))
	if len(available) > 0 {
		b.WriteString("\n\nTOP AVAILABLE FREE AGENTS:\n")
		b.WriteString(toJSON(truncate(available, 20)))
	}
	b.WriteString(`

Generate 3-5 actionable suggestions to improve this team. Return as JSON with this structure:
{
  "suggestions": [
    {
      "type": "pickup" | "drop" | "trade" | "lineup",
      "priority": "high" | "medium" | "low",
      "title": "short title",
      "description": "brief description",
      "reasoning": "why this helps",
      "potential_impact": "expected benefit",
      "confidence_score": 0.0-1.0,
      "action_details": {}
    }
  ]
}

Focus on high-impact moves that address weaknesses or capitalize on opportunities.
`)
	return b.String()
}

const recapSystem = "You are a witty, brutally honest fantasy football analyst who writes " +
	"hilarious weekly recaps. You're not afraid to roast bad performances and celebrate " +
	"dominance. Keep it fun and entertaining."

// WeeklyRecap generates a free-text recap of a week's results. matchupLines
// are pre-formatted result lines with team names and scores.
func (c *Client) WeeklyRecap(ctx context.Context, leagueName string, week int, matchupLines []string) (string, error) {
	prompt := buildRecapPrompt(leagueName, week, matchupLines)
	return c.chat(ctx, recapSystem, prompt, 0.8, 800, false)
}

func buildRecapPrompt(leagueName string, week int, matchupLines []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a brutally honest, hilarious fantasy football analyst writing the weekly recap for %q Week %d.\n\n", leagueName, week)
	b.WriteString("MATCHUP RESULTS:\n")
	for _, line := range matchupLines {
		b.WriteString("- ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(`
Write an entertaining 3-4 paragraph weekly recap that:

1. **ROASTS THE LOSERS** - Be creative and funny when describing bad performances. Call out low scores, terrible decisions, and embarrassing losses.
2. **CELEBRATES THE WINNERS** - Give credit where it's due, but with playful jabs
3. **HIGHLIGHTS THE DRAMA** - Focus on the biggest blowouts, closest games, and shocking upsets
4. **BE BRUTAL BUT FUNNY** - Channel your inner roast comedian. Make it hurt, but make it entertaining
5. **USE CREATIVE LANGUAGE** - Sports metaphors, pop culture references, over-the-top descriptions

Guidelines:
- Keep it around 200-300 words
- Be mean to underperformers (they deserve it)
- Celebrate dominance
- Make specific references to actual scores and matchups
- End with a spicy prediction or call-out for next week
- NO generic corporate speak - this is for the league, make it personal and funny

Write the recap in a fun, engaging style. This should be the kind of recap that makes people laugh at themselves.`)
	return b.String()
}

func toJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(b)
}

func truncate[T any](items []T, max int) []T {
	if len(items) > max {
		return items[:max]
	}
	return items
}
