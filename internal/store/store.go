//-------------------------------------------------------------------------
//
// salespipe - Sales Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, the salespipe authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package store owns the sales_summary table: schema creation and
// duplicate-suppressing batch loads.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/salespipe/salespipe/internal/logging"
	"github.com/salespipe/salespipe/internal/pipeline"
)

// TableName is the table the pipeline loads into and reports read from.
const TableName = "sales_summary"

// DB is an interface that both *pgxpool.Pool and *pgx.Conn satisfy, so
// the store and the report queries work with either.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS sales_summary (
    order_id       TEXT PRIMARY KEY,
    product_name   TEXT NOT NULL,
    quantity_sold  INTEGER NOT NULL,
    price_per_unit DOUBLE PRECISION NOT NULL,
    order_date     TEXT NOT NULL,
    total_price    DOUBLE PRECISION NOT NULL
)`

const insertSQL = `
INSERT INTO sales_summary
    (order_id, product_name, quantity_sold, price_per_unit, order_date, total_price)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (order_id) DO NOTHING`

// Store is the gateway to the sales_summary table. Rows are only ever
// inserted; nothing here updates or deletes them.
type Store struct {
	db DB
}

// New creates a store backed by the given database handle.
func New(db DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the sales_summary table if it does not exist.
// Safe to call on every run; existing data is never dropped or altered.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create table %s: %w", TableName, err)
	}
	return nil
}

// LoadBatch inserts the records whose order_id is not already present
// and returns the number of rows actually inserted. Duplicates, whether
// already persisted or repeated within the batch, are skipped silently:
// re-running the pipeline on the same input inserts nothing.
//
// The existence scan and the inserts run in one transaction. The insert
// also carries ON CONFLICT DO NOTHING so that a key collision slipping
// past the scan is skipped rather than failing the batch.
func (s *Store) LoadBatch(ctx context.Context, recs []pipeline.CleanRecord) (int, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // no-op after commit

	existing, err := existingOrderIDs(ctx, tx)
	if err != nil {
		return 0, err
	}

	fresh := filterNew(recs, existing)
	if len(fresh) == 0 {
		logging.Info().Msg("No new records to insert")
		return 0, tx.Commit(ctx)
	}

	batch := &pgx.Batch{}
	for _, r := range fresh {
		batch.Queue(insertSQL,
			r.OrderID, r.ProductName, r.QuantitySold,
			r.PricePerUnit, r.OrderDate, r.TotalPrice)
	}

	br := tx.SendBatch(ctx, batch)
	inserted := 0
	for range fresh {
		tag, err := br.Exec()
		if err != nil {
			br.Close()
			return 0, fmt.Errorf("failed to insert records: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}
	if err := br.Close(); err != nil {
		return 0, fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return inserted, nil
}

// Count returns the number of persisted rows.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM sales_summary`).Scan(&n)
	return n, err
}

// existingOrderIDs is a full-key scan. Fine at this system's scale; a
// much larger table would want a per-key existence check or a bulk
// anti-join instead.
func existingOrderIDs(ctx context.Context, tx pgx.Tx) (map[string]struct{}, error) {
	rows, err := tx.Query(ctx, `SELECT order_id FROM sales_summary`)
	if err != nil {
		return nil, fmt.Errorf("failed to scan existing order ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

// filterNew returns the records whose order_id is not in existing,
// keeping only the first occurrence of any id repeated within the
// batch. Input order is preserved.
func filterNew(recs []pipeline.CleanRecord, existing map[string]struct{}) []pipeline.CleanRecord {
	seen := make(map[string]struct{}, len(recs))
	out := make([]pipeline.CleanRecord, 0, len(recs))
	for _, r := range recs {
		if _, ok := existing[r.OrderID]; ok {
			continue
		}
		if _, ok := seen[r.OrderID]; ok {
			continue
		}
		seen[r.OrderID] = struct{}{}
		out = append(out, r)
	}
	return out
}
