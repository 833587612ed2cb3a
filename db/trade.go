package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/djmorgan26/fantasy-football-assistant/model"
)

const tradeColumns = `id, league_id, user_id, proposing_team_id, receiving_team_id,
		give_players, receive_players, status,
		fairness_score, value_difference, analysis_summary,
		created, updated, expires_at`

func (db *postgresDB) SaveTrade(ctx context.Context, t *model.Trade) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.ID == 0 {
		return db.insertTrade(ctx, t)
	}
	return db.updateTrade(ctx, t)
}

func (db *postgresDB) GetTrade(ctx context.Context, id int32) (*model.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE id=@id`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	t, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTradeNotFound
		}
		return nil, fmt.Errorf("error scanning trade %d: %w", id, err)
	}
	return t, nil
}

func (db *postgresDB) ListTrades(ctx context.Context, leagueID int32) ([]model.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trades WHERE league_id=@leagueID ORDER BY created DESC, id DESC`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"leagueID": leagueID})
	if err != nil {
		return nil, fmt.Errorf("error listing trades for league %d: %w", leagueID, err)
	}

	results := make([]model.Trade, 0, 8)
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning trade: %w", err)
		}
		results = append(results, *t)
	}
	return results, nil
}

func (db *postgresDB) UpdateTradeStatus(ctx context.Context, id int32, status string) error {
	if !model.IsTradeStatus(status) {
		return &model.ValidationError{Field: "status", Reason: fmt.Sprintf("%s is not a trade status", status)}
	}

	const update = `UPDATE trades SET status=@status, updated=@updated WHERE id=@id`

	args := pgx.NamedArgs{
		"id":      id,
		"status":  status,
		"updated": db.timestamp(),
	}
	tag, err := db.pool.Exec(ctx, update, args)
	if err != nil {
		return fmt.Errorf("error updating trade %d status: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTradeNotFound
	}
	return nil
}

func (db *postgresDB) ExpireTrades(ctx context.Context) (int64, error) {
	const update = `UPDATE trades SET status=@expired, updated=@now
			WHERE status=@pending AND expires_at < @now`

	args := pgx.NamedArgs{
		"expired": model.TradeExpired,
		"pending": model.TradePending,
		"now":     db.timestamp(),
	}
	tag, err := db.pool.Exec(ctx, update, args)
	if err != nil {
		return 0, fmt.Errorf("error expiring trades: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (db *postgresDB) insertTrade(ctx context.Context, t *model.Trade) error {
	const insert = `INSERT INTO trades (
		league_id,
		user_id,
		proposing_team_id,
		receiving_team_id,
		give_players,
		receive_players,
		status,
		fairness_score,
		value_difference,
		analysis_summary,
		created,
		expires_at
	) VALUES (
		@leagueID,
		@userID,
		@proposingTeamID,
		@receivingTeamID,
		@givePlayers,
		@receivePlayers,
		@status,
		@fairnessScore,
		@valueDifference,
		@analysisSummary,
		@created,
		@expiresAt
	) RETURNING id`

	if t.Status == "" {
		t.Status = model.TradePending
	}
	t.Created = db.clock.Now().UTC()
	if t.ExpiresAt.IsZero() {
		t.ExpiresAt = t.Created.Add(model.TradeTTL)
	}

	args := namedArgsForTrade(t)
	args["created"] = pgtype.Timestamptz{Time: t.Created, InfinityModifier: pgtype.Finite, Valid: true}
	if err := db.pool.QueryRow(ctx, insert, args).Scan(&t.ID); err != nil {
		return fmt.Errorf("error inserting trade in league %d: %w", t.LeagueID, err)
	}
	return nil
}

func (db *postgresDB) updateTrade(ctx context.Context, t *model.Trade) error {
	const update = `UPDATE trades
		SET status=@status,
			fairness_score=@fairnessScore,
			value_difference=@valueDifference,
			analysis_summary=@analysisSummary,
			updated=@updated
		WHERE id=@id`

	args := namedArgsForTrade(t)
	args["id"] = t.ID
	args["updated"] = db.timestamp()
	tag, err := db.pool.Exec(ctx, update, args)
	if err != nil {
		return fmt.Errorf("error updating trade %d: %w", t.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTradeNotFound
	}
	return nil
}

func scanTrade(row pgx.Row) (*model.Trade, error) {
	var result model.Trade
	var created, updated, expiresAt pgtype.Timestamptz
	err := row.Scan(
		&result.ID,
		&result.LeagueID,
		&result.UserID,
		&result.ProposingTeamID,
		&result.ReceivingTeamID,
		&result.GivePlayers,
		&result.ReceivePlayers,
		&result.Status,
		&result.FairnessScore,
		&result.ValueDifference,
		&result.AnalysisSummary,
		&created,
		&updated,
		&expiresAt)

	if err != nil {
		return nil, err
	}

	result.Created = created.Time
	result.Updated = updated.Time
	result.ExpiresAt = expiresAt.Time

	return &result, nil
}

func namedArgsForTrade(t *model.Trade) pgx.NamedArgs {
	return pgx.NamedArgs{
		"leagueID":        t.LeagueID,
		"userID":          t.UserID,
		"proposingTeamID": t.ProposingTeamID,
		"receivingTeamID": t.ReceivingTeamID,
		"givePlayers":     t.GivePlayers,
		"receivePlayers":  t.ReceivePlayers,
		"status":          t.Status,
		"fairnessScore":   t.FairnessScore,
		"valueDifference": t.ValueDifference,
		"analysisSummary": t.AnalysisSummary,
		"expiresAt": pgtype.Timestamptz{
			Time:             t.ExpiresAt,
			InfinityModifier: pgtype.Finite,
			Valid:            true,
		},
	}
}
