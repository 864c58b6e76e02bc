//-------------------------------------------------------------------------
//
// salespipe - Sales Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, the salespipe authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

//go:build integration
// +build integration

// Integration tests for the store gateway.
// Run with: go test -tags=integration ./internal/store/...
// Requires PostgreSQL; set SALESPIPE_TEST_CONN to override the
// connection string.

package store_test

import (
	"context"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/salespipe/salespipe/internal/db"
	"github.com/salespipe/salespipe/internal/pipeline"
	"github.com/salespipe/salespipe/internal/store"
	"github.com/salespipe/salespipe/internal/testutil"
)

func testRecords() []pipeline.CleanRecord {
	return []pipeline.CleanRecord{
		{OrderID: "o1", ProductName: "Laptop", QuantitySold: 1, PricePerUnit: 999.99, OrderDate: "2025-01-15", TotalPrice: 999.99},
		{OrderID: "o2", ProductName: "Tablet", QuantitySold: 3, PricePerUnit: 19.999, OrderDate: "2025-04-29", TotalPrice: 60.00},
		{OrderID: "o3", ProductName: "Mouse", QuantitySold: 5, PricePerUnit: 19.99, OrderDate: "2025-02-20", TotalPrice: 99.95},
	}
}

func TestStoreIntegration(t *testing.T) {
	baseConnStr := testutil.SkipIfNoPostgres(t)

	testConnStr := testutil.CreateTestDB(t, baseConnStr, "store")
	dbName := testutil.GetDBNameFromConnStr(testConnStr)

	cleanup := testutil.NewTestCleanup(t, baseConnStr, dbName)
	t.Cleanup(cleanup.Cleanup)

	pool := testutil.ConnectTestDB(t, testConnStr)
	cleanup.SetPool(pool)

	ctx := context.Background()
	st := store.New(pool)

	// Schema creation is idempotent.
	if err := st.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	if err := st.EnsureSchema(ctx); err != nil {
		t.Fatalf("Repeated EnsureSchema failed: %v", err)
	}

	recs := testRecords()

	// First load inserts everything.
	inserted, err := st.LoadBatch(ctx, recs)
	if err != nil {
		t.Fatalf("LoadBatch failed: %v", err)
	}
	if inserted != len(recs) {
		t.Errorf("Expected %d inserted, got %d", len(recs), inserted)
	}

	// Re-running the same batch inserts nothing and changes nothing.
	inserted, err = st.LoadBatch(ctx, recs)
	if err != nil {
		t.Fatalf("Repeat LoadBatch failed: %v", err)
	}
	if inserted != 0 {
		t.Errorf("Expected 0 inserted on repeat, got %d", inserted)
	}
	count, err := st.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != int64(len(recs)) {
		t.Errorf("Expected %d rows after repeat load, got %d", len(recs), count)
	}

	// EnsureSchema after data never drops anything.
	if err := st.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema after load failed: %v", err)
	}
	if count, _ = st.Count(ctx); count != int64(len(recs)) {
		t.Errorf("EnsureSchema changed row count to %d", count)
	}

	// A batch mixing persisted and new rows inserts only the new ones,
	// and an intra-batch duplicate persists once.
	next := []pipeline.CleanRecord{
		recs[2],
		{OrderID: "o4", ProductName: "Printer", QuantitySold: 2, PricePerUnit: 120.50, OrderDate: "2025-03-01", TotalPrice: 241.00},
		{OrderID: "o4", ProductName: "Printer", QuantitySold: 2, PricePerUnit: 120.50, OrderDate: "2025-03-01", TotalPrice: 241.00},
	}
	inserted, err = st.LoadBatch(ctx, next)
	if err != nil {
		t.Fatalf("Mixed LoadBatch failed: %v", err)
	}
	if inserted != 1 {
		t.Errorf("Expected 1 inserted from mixed batch, got %d", inserted)
	}

	// No two persisted rows share an order_id.
	var dups int
	err = pool.QueryRow(ctx, `
        SELECT COUNT(*) FROM (
            SELECT order_id FROM sales_summary GROUP BY order_id HAVING COUNT(*) > 1
        ) d
    `).Scan(&dups)
	if err != nil {
		t.Fatalf("Duplicate check failed: %v", err)
	}
	if dups != 0 {
		t.Errorf("Found %d duplicated order ids", dups)
	}

	// Every stored total_price must equal the rounded recomputation.
	rows, err := pool.Query(ctx, `
        SELECT order_id, quantity_sold, price_per_unit, total_price FROM sales_summary
    `)
	if err != nil {
		t.Fatalf("Recompute query failed: %v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var qty int64
		var price, total float64
		if err := rows.Scan(&id, &qty, &price, &total); err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		want := decimal.NewFromInt(qty).
			Mul(decimal.NewFromFloat(price)).
			Round(2).
			InexactFloat64()
		if math.Abs(total-want) > 1e-9 {
			t.Errorf("Order %s: stored total_price %v, recomputed %v", id, total, want)
		}
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Recompute rows failed: %v", err)
	}
}

func TestRunMetadataIntegration(t *testing.T) {
	baseConnStr := testutil.SkipIfNoPostgres(t)

	testConnStr := testutil.CreateTestDB(t, baseConnStr, "metadata")
	dbName := testutil.GetDBNameFromConnStr(testConnStr)

	cleanup := testutil.NewTestCleanup(t, baseConnStr, dbName)
	t.Cleanup(cleanup.Cleanup)

	pool := testutil.ConnectTestDB(t, testConnStr)
	cleanup.SetPool(pool)

	ctx := context.Background()

	if _, err := db.GetMetadataValue(ctx, pool, "last_run_at"); err == nil {
		t.Error("Expected error before any run metadata is saved")
	}

	if err := db.SaveRunMetadata(ctx, pool, "sales_data.csv", 42); err != nil {
		t.Fatalf("SaveRunMetadata failed: %v", err)
	}

	source, err := db.GetMetadataValue(ctx, pool, "source")
	if err != nil {
		t.Fatalf("GetMetadataValue failed: %v", err)
	}
	if source != "sales_data.csv" {
		t.Errorf("Expected source sales_data.csv, got %s", source)
	}

	rowsInserted, err := db.GetMetadataValue(ctx, pool, "rows_inserted")
	if err != nil {
		t.Fatalf("GetMetadataValue failed: %v", err)
	}
	if rowsInserted != "42" {
		t.Errorf("Expected rows_inserted 42, got %s", rowsInserted)
	}

	// Saving again overwrites rather than conflicting.
	if err := db.SaveRunMetadata(ctx, pool, "sales_data.csv", 0); err != nil {
		t.Fatalf("Repeated SaveRunMetadata failed: %v", err)
	}
	if v, _ := db.GetMetadataValue(ctx, pool, "rows_inserted"); v != "0" {
		t.Errorf("Expected rows_inserted 0 after rerun, got %s", v)
	}
}
