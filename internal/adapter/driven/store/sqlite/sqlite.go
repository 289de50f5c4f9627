// Package sqlite persists fetched tariff lines so repeated analyses do not
// refetch months that are already on disk.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/dysin/market-insights-go/internal/domain/entity"
	"github.com/dysin/market-insights-go/internal/domain/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS trade_records (
	provider      TEXT NOT NULL,
	reporter      TEXT NOT NULL,
	reporter_code TEXT NOT NULL DEFAULT '',
	partner       TEXT NOT NULL,
	partner_code  TEXT NOT NULL DEFAULT '',
	period        INTEGER NOT NULL,
	cmd_code      TEXT NOT NULL DEFAULT '',
	product       TEXT NOT NULL DEFAULT '',
	mode          TEXT NOT NULL DEFAULT '',
	province      TEXT NOT NULL DEFAULT '',
	value         REAL NOT NULL,
	currency      TEXT NOT NULL,
	ingested_at   TEXT NOT NULL DEFAULT (datetime('now')),
	PRIMARY KEY (provider, reporter, partner, period, cmd_code, mode, province)
);
CREATE INDEX IF NOT EXISTS idx_trade_records_cmd ON trade_records (provider, cmd_code);
`

// Store implements repository.TradeStore on a local SQLite file.
type Store struct {
	db *sql.DB
}

var _ repository.TradeStore = (*Store)(nil)

// Open opens (creating if needed) the database at path and migrates it.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening store %s: %w", path, err)
	}
	// modernc sqlite serializes writes; one connection avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("error migrating store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// SaveRecords upserts the batch in one transaction. Re-ingesting a month
// replaces its values rather than duplicating rows.
func (s *Store) SaveRecords(ctx context.Context, records []entity.TradeRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trade_records
			(provider, reporter, reporter_code, partner, partner_code,
			 period, cmd_code, product, mode, province, value, currency)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (provider, reporter, partner, period, cmd_code, mode, province)
		DO UPDATE SET
			value = excluded.value,
			product = excluded.product,
			currency = excluded.currency,
			ingested_at = datetime('now')`)
	if err != nil {
		return fmt.Errorf("error preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.Provider, r.Reporter, r.ReporterCode, r.Partner, r.PartnerCode,
			r.Period, r.CmdCode, r.Product, r.Mode, r.Province, r.Value, r.Currency,
		); err != nil {
			return fmt.Errorf("error upserting record: %w", err)
		}
	}
	return tx.Commit()
}

// LoadRecords returns every stored line for a provider and commodity code,
// ordered by period then partner. An empty cmdCode matches all commodities.
func (s *Store) LoadRecords(ctx context.Context, provider, cmdCode string) ([]entity.TradeRecord, error) {
	query := `
		SELECT provider, reporter, reporter_code, partner, partner_code,
		       period, cmd_code, product, mode, province, value, currency
		FROM trade_records
		WHERE provider = ?`
	args := []interface{}{provider}
	if cmdCode != "" {
		query += " AND cmd_code = ?"
		args = append(args, cmdCode)
	}
	query += " ORDER BY period, partner"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying store: %w", err)
	}
	defer rows.Close()

	var out []entity.TradeRecord
	for rows.Next() {
		var r entity.TradeRecord
		if err := rows.Scan(
			&r.Provider, &r.Reporter, &r.ReporterCode, &r.Partner, &r.PartnerCode,
			&r.Period, &r.CmdCode, &r.Product, &r.Mode, &r.Province, &r.Value, &r.Currency,
		); err != nil {
			return nil, fmt.Errorf("error scanning record: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
