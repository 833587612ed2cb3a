package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/djmorgan26/fantasy-football-assistant/model"
)

var (
	ErrLeagueNotFound error = errors.New("league not found")
	ErrTeamNotFound   error = errors.New("team not found")
	ErrTradeNotFound  error = errors.New("trade not found")
)

func New(ctx context.Context, connString string, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock}, nil
}

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

const leagueColumns = `id, platform, espn_league_id, sleeper_league_id, sleeper_user_id,
		name, season_year, size, scoring_type, current_week,
		roster_settings, scoring_settings,
		espn_s2_enc, espn_swid_enc,
		owner_user_id, active, last_synced, created, updated`

func (db *postgresDB) SaveLeague(ctx context.Context, l *model.League) error {
	if err := l.Validate(); err != nil {
		return err
	}

	old, err := db.getLeagueByExternalID(ctx, l.Platform, l.ExternalID())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if err := db.insertLeague(ctx, l); err != nil {
				return fmt.Errorf("error inserting league: %w", err)
			}
			return nil
		}
		return fmt.Errorf("error reading league at start of SaveLeague(): %w", err)
	}

	l.ID = old.ID
	return db.updateLeague(ctx, l)
}

func (db *postgresDB) GetLeague(ctx context.Context, id int32) (*model.League, error) {
	query := `SELECT ` + leagueColumns + ` FROM leagues WHERE id=@id`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	l, err := scanLeague(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("error scanning league %d: %w", id, err)
	}
	return l, nil
}

func (db *postgresDB) GetLeagueByExternalID(ctx context.Context, platform, externalID string) (*model.League, error) {
	l, err := db.getLeagueByExternalID(ctx, platform, externalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, err
	}
	return l, nil
}

func (db *postgresDB) ListLeagues(ctx context.Context) ([]model.League, error) {
	query := `SELECT ` + leagueColumns + ` FROM leagues WHERE active ORDER BY id`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing leagues: %w", err)
	}

	results := make([]model.League, 0, 4)
	for rows.Next() {
		l, err := scanLeague(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning league: %w", err)
		}
		results = append(results, *l)
	}
	return results, nil
}

// ArchiveLeague clears active and leaves the row in place so a later
// reconnect picks up the same league id and history.
func (db *postgresDB) ArchiveLeague(ctx context.Context, id int32) error {
	const update = `UPDATE leagues SET active=FALSE, updated=@updated WHERE id=@id`

	args := pgx.NamedArgs{
		"id":      id,
		"updated": db.timestamp(),
	}
	tag, err := db.pool.Exec(ctx, update, args)
	if err != nil {
		return fmt.Errorf("error archiving league %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLeagueNotFound
	}
	return nil
}

func (db *postgresDB) MarkLeagueSynced(ctx context.Context, id int32) error {
	const update = `UPDATE leagues SET last_synced=@now, updated=@now WHERE id=@id`

	args := pgx.NamedArgs{
		"id":  id,
		"now": db.timestamp(),
	}
	tag, err := db.pool.Exec(ctx, update, args)
	if err != nil {
		return fmt.Errorf("error marking league %d synced: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLeagueNotFound
	}
	return nil
}

func (db *postgresDB) getLeagueByExternalID(ctx context.Context, platform, externalID string) (*model.League, error) {
	query := `SELECT ` + leagueColumns + ` FROM leagues
			WHERE platform=@platform AND COALESCE(espn_league_id, sleeper_league_id)=@externalID`

	args := pgx.NamedArgs{
		"platform":   platform,
		"externalID": externalID,
	}
	row := db.pool.QueryRow(ctx, query, args)
	return scanLeague(row)
}

func (db *postgresDB) insertLeague(ctx context.Context, l *model.League) error {
	if l == nil {
		return errors.New("insertLeague - league is nil")
	}
	const query = `INSERT INTO leagues (
		platform,
		espn_league_id,
		sleeper_league_id,
		sleeper_user_id,
		name,
		season_year,
		size,
		scoring_type,
		current_week,
		roster_settings,
		scoring_settings,
		espn_s2_enc,
		espn_swid_enc,
		owner_user_id,
		active
	) VALUES (
		@platform,
		@espnLeagueID,
		@sleeperLeagueID,
		@sleeperUserID,
		@name,
		@seasonYear,
		@size,
		@scoringType,
		@currentWeek,
		@rosterSettings,
		@scoringSettings,
		@espnS2,
		@espnSWID,
		@ownerUserID,
		@active
	) RETURNING id`

	args := namedArgsForLeague(l)
	row := db.pool.QueryRow(ctx, query, args)
	if err := row.Scan(&l.ID); err != nil {
		return fmt.Errorf("error inserting league (%s %s): %w", l.Platform, l.ExternalID(), err)
	}
	return nil
}

func (db *postgresDB) updateLeague(ctx context.Context, l *model.League) error {
	const update = `UPDATE leagues
		SET sleeper_user_id=@sleeperUserID,
			name=@name,
			season_year=@seasonYear,
			size=@size,
			scoring_type=@scoringType,
			current_week=@currentWeek,
			roster_settings=@rosterSettings,
			scoring_settings=@scoringSettings,
			espn_s2_enc=@espnS2,
			espn_swid_enc=@espnSWID,
			owner_user_id=@ownerUserID,
			active=@active,
			updated=@updated
		WHERE id=@id`

	args := namedArgsForLeague(l)
	args["id"] = l.ID
	args["updated"] = db.timestamp()
	if _, err := db.pool.Exec(ctx, update, args); err != nil {
		return fmt.Errorf("error updating league %d: %w", l.ID, err)
	}
	return nil
}

func scanLeague(row pgx.Row) (*model.League, error) {
	var result model.League
	var espnLeagueID, sleeperLeagueID, sleeperUserID, espnS2, espnSWID sql.NullString
	var lastSynced, updated pgtype.Timestamptz
	var created pgtype.Timestamptz
	err := row.Scan(
		&result.ID,
		&result.Platform,
		&espnLeagueID,
		&sleeperLeagueID,
		&sleeperUserID,
		&result.Name,
		&result.SeasonYear,
		&result.Size,
		&result.ScoringType,
		&result.CurrentWeek,
		&result.RosterSettings,
		&result.ScoringSettings,
		&espnS2,
		&espnSWID,
		&result.OwnerUserID,
		&result.IsActive,
		&lastSynced,
		&created,
		&updated)

	if err != nil {
		return nil, err
	}

	result.ESPNLeagueID = valueOrEmpty(espnLeagueID)
	result.SleeperLeagueID = valueOrEmpty(sleeperLeagueID)
	result.SleeperUserID = valueOrEmpty(sleeperUserID)
	result.ESPNS2Encrypted = valueOrEmpty(espnS2)
	result.ESPNSWIDEncrypted = valueOrEmpty(espnSWID)
	result.LastSynced = lastSynced.Time
	result.Created = created.Time
	result.Updated = updated.Time

	return &result, nil
}

func namedArgsForLeague(l *model.League) pgx.NamedArgs {
	return pgx.NamedArgs{
		"platform": l.Platform,
		"espnLeagueID": sql.NullString{
			String: l.ESPNLeagueID,
			Valid:  l.ESPNLeagueID != "",
		},
		"sleeperLeagueID": sql.NullString{
			String: l.SleeperLeagueID,
			Valid:  l.SleeperLeagueID != "",
		},
		"sleeperUserID": sql.NullString{
			String: l.SleeperUserID,
			Valid:  l.SleeperUserID != "",
		},
		"name":            l.Name,
		"seasonYear":      l.SeasonYear,
		"size":            l.Size,
		"scoringType":     l.ScoringType,
		"currentWeek":     l.CurrentWeek,
		"rosterSettings":  l.RosterSettings,
		"scoringSettings": l.ScoringSettings,
		"espnS2": sql.NullString{
			String: l.ESPNS2Encrypted,
			Valid:  l.ESPNS2Encrypted != "",
		},
		"espnSWID": sql.NullString{
			String: l.ESPNSWIDEncrypted,
			Valid:  l.ESPNSWIDEncrypted != "",
		},
		"ownerUserID": l.OwnerUserID,
		"active":      l.IsActive,
	}
}

func (db *postgresDB) timestamp() pgtype.Timestamptz {
	return pgtype.Timestamptz{
		Time:             db.clock.Now().UTC(),
		InfinityModifier: pgtype.Finite,
		Valid:            true,
	}
}

func valueOrEmpty(v sql.NullString) string {
	if v.Valid {
		return v.String
	}
	return ""
}
