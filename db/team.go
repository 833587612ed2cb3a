package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/djmorgan26/fantasy-football-assistant/model"
)

func (db *postgresDB) SaveTeams(ctx context.Context, leagueID int32, teams []model.Team) error {
	const insert = `INSERT INTO teams (
		league_id,
		platform_team_id,
		espn_team_id,
		sleeper_roster_id,
		sleeper_owner_id,
		name,
		abbrev,
		logo_url,
		wins,
		losses,
		ties,
		points_for,
		points_against
	) VALUES (
		@leagueID,
		@platformTeamID,
		@espnTeamID,
		@sleeperRosterID,
		@sleeperOwnerID,
		@name,
		@abbrev,
		@logoURL,
		@wins,
		@losses,
		@ties,
		@pointsFor,
		@pointsAgainst
	) RETURNING id`

	const update = `UPDATE teams
		SET sleeper_owner_id=@sleeperOwnerID,
			name=@name,
			abbrev=@abbrev,
			logo_url=@logoURL,
			wins=@wins,
			losses=@losses,
			ties=@ties,
			points_for=@pointsFor,
			points_against=@pointsAgainst,
			updated=@updated
		WHERE id=@id`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting teams transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i := range teams {
		t := &teams[i]
		t.LeagueID = leagueID

		id, err := teamID(ctx, tx, leagueID, t.PlatformTeamID())
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("error reading team %s in league %d: %w", t.PlatformTeamID(), leagueID, err)
			}

			args := namedArgsForTeam(t)
			if err := tx.QueryRow(ctx, insert, args).Scan(&t.ID); err != nil {
				return fmt.Errorf("error inserting team %s in league %d: %w", t.PlatformTeamID(), leagueID, err)
			}
			continue
		}

		t.ID = id
		args := namedArgsForTeam(t)
		args["id"] = id
		args["updated"] = db.timestamp()
		if _, err := tx.Exec(ctx, update, args); err != nil {
			return fmt.Errorf("error updating team %s in league %d: %w", t.PlatformTeamID(), leagueID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing teams transaction: %w", err)
	}
	return nil
}

func (db *postgresDB) GetTeams(ctx context.Context, leagueID int32) ([]model.Team, error) {
	const query = `SELECT id, league_id, espn_team_id, sleeper_roster_id, sleeper_owner_id,
				name, abbrev, logo_url, wins, losses, ties, points_for, points_against
			FROM teams WHERE league_id=@leagueID ORDER BY id`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"leagueID": leagueID})
	if err != nil {
		return nil, fmt.Errorf("error listing teams for league %d: %w", leagueID, err)
	}

	results := make([]model.Team, 0, 12)
	for rows.Next() {
		var t model.Team
		err := rows.Scan(
			&t.ID,
			&t.LeagueID,
			&t.ESPNTeamID,
			&t.SleeperRosterID,
			&t.SleeperOwnerID,
			&t.Name,
			&t.Abbrev,
			&t.LogoURL,
			&t.Wins,
			&t.Losses,
			&t.Ties,
			&t.PointsFor,
			&t.PointsAgainst)
		if err != nil {
			return nil, fmt.Errorf("error scanning team: %w", err)
		}
		results = append(results, t)
	}
	return results, nil
}

func (db *postgresDB) SaveWaiverBudgets(ctx context.Context, leagueID int32, seasonYear int, budgets []model.WaiverBudget) error {
	const insert = `INSERT INTO waiver_budgets (
		league_id,
		team_id,
		season_year,
		total_budget,
		spent_budget,
		current_budget
	) VALUES (
		@leagueID,
		@teamID,
		@seasonYear,
		@total,
		@spent,
		@current
	) RETURNING id`

	const update = `UPDATE waiver_budgets
		SET total_budget=@total,
			spent_budget=@spent,
			current_budget=@current,
			updated=@updated
		WHERE id=@id`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting waiver budgets transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i := range budgets {
		b := &budgets[i]
		b.LeagueID = leagueID
		b.SeasonYear = seasonYear

		if b.TeamID == 0 {
			id, err := teamID(ctx, tx, leagueID, b.PlatformTeamID)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return fmt.Errorf("budget for unknown team %s in league %d: %w", b.PlatformTeamID, leagueID, ErrTeamNotFound)
				}
				return fmt.Errorf("error resolving team %s in league %d: %w", b.PlatformTeamID, leagueID, err)
			}
			b.TeamID = id
		}

		args := pgx.NamedArgs{
			"leagueID":   leagueID,
			"teamID":     b.TeamID,
			"seasonYear": seasonYear,
			"total":      b.TotalBudget,
			"spent":      b.SpentBudget,
			"current":    b.CurrentBudget,
		}

		var id int32
		row := tx.QueryRow(ctx,
			`SELECT id FROM waiver_budgets WHERE league_id=@leagueID AND team_id=@teamID AND season_year=@seasonYear`,
			args)
		if err := row.Scan(&id); err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("error reading budget for team %d: %w", b.TeamID, err)
			}

			if err := tx.QueryRow(ctx, insert, args).Scan(&b.ID); err != nil {
				return fmt.Errorf("error inserting budget for team %d: %w", b.TeamID, err)
			}
			continue
		}

		b.ID = id
		args["id"] = id
		args["updated"] = db.timestamp()
		if _, err := tx.Exec(ctx, update, args); err != nil {
			return fmt.Errorf("error updating budget for team %d: %w", b.TeamID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing waiver budgets transaction: %w", err)
	}
	return nil
}

func (db *postgresDB) GetWaiverBudgets(ctx context.Context, leagueID int32, seasonYear int) ([]model.WaiverBudget, error) {
	const query = `SELECT b.id, b.league_id, b.team_id, b.season_year,
				b.total_budget, b.spent_budget, b.current_budget, t.platform_team_id
			FROM waiver_budgets AS b
			INNER JOIN teams AS t ON b.team_id=t.id
			WHERE b.league_id=@leagueID AND b.season_year=@seasonYear
			ORDER BY b.team_id`

	args := pgx.NamedArgs{
		"leagueID":   leagueID,
		"seasonYear": seasonYear,
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error listing waiver budgets for league %d: %w", leagueID, err)
	}

	results := make([]model.WaiverBudget, 0, 12)
	for rows.Next() {
		var b model.WaiverBudget
		err := rows.Scan(
			&b.ID,
			&b.LeagueID,
			&b.TeamID,
			&b.SeasonYear,
			&b.TotalBudget,
			&b.SpentBudget,
			&b.CurrentBudget,
			&b.PlatformTeamID)
		if err != nil {
			return nil, fmt.Errorf("error scanning waiver budget: %w", err)
		}
		results = append(results, b)
	}
	return results, nil
}

func teamID(ctx context.Context, tx pgx.Tx, leagueID int32, platformTeamID string) (int32, error) {
	const query = `SELECT id FROM teams WHERE league_id=@leagueID AND platform_team_id=@platformTeamID`

	args := pgx.NamedArgs{
		"leagueID":       leagueID,
		"platformTeamID": platformTeamID,
	}
	var id int32
	err := tx.QueryRow(ctx, query, args).Scan(&id)
	return id, err
}

func namedArgsForTeam(t *model.Team) pgx.NamedArgs {
	return pgx.NamedArgs{
		"leagueID":        t.LeagueID,
		"platformTeamID":  t.PlatformTeamID(),
		"espnTeamID":      t.ESPNTeamID,
		"sleeperRosterID": t.SleeperRosterID,
		"sleeperOwnerID":  t.SleeperOwnerID,
		"name":            t.Name,
		"abbrev":          t.Abbrev,
		"logoURL":         t.LogoURL,
		"wins":            t.Wins,
		"losses":          t.Losses,
		"ties":            t.Ties,
		"pointsFor":       t.PointsFor,
		"pointsAgainst":   t.PointsAgainst,
	}
}
