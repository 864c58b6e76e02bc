//-------------------------------------------------------------------------
//
// salespipe - Sales Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, the salespipe authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package report runs read-only aggregations against the sales_summary
// table and writes CSV summaries and HTML charts.
package report

import (
	"context"
	"fmt"

	"github.com/salespipe/salespipe/internal/store"
)

// ProductSales summarizes sales for one product.
type ProductSales struct {
	ProductName   string
	TotalQuantity int64
	TotalRevenue  float64
	AveragePrice  float64
}

// MonthlyRevenue is one month of the revenue trend.
type MonthlyRevenue struct {
	Month      string // YYYY-MM
	OrderCount int64
	Revenue    float64
}

// ProductQuantity ranks a product by quantity sold.
type ProductQuantity struct {
	ProductName   string
	TotalQuantity int64
}

// TableStats are whole-table statistics.
type TableStats struct {
	TotalOrders       int64
	UniqueProducts    int64
	TotalRevenue      float64
	AverageOrderValue float64
	EarliestDate      string
	LatestDate        string
}

// ProductSalesSummary returns per-product totals, revenue-descending.
func ProductSalesSummary(ctx context.Context, db store.DB) ([]ProductSales, error) {
	rows, err := db.Query(ctx, `
        SELECT product_name,
               SUM(quantity_sold)::bigint AS total_quantity,
               SUM(total_price)::float8 AS total_revenue,
               ROUND(AVG(price_per_unit)::numeric, 2)::float8 AS average_price
        FROM sales_summary
        GROUP BY product_name
        ORDER BY total_revenue DESC
    `)
	if err != nil {
		return nil, fmt.Errorf("product sales query failed: %w", err)
	}
	defer rows.Close()

	var out []ProductSales
	for rows.Next() {
		var p ProductSales
		if err := rows.Scan(&p.ProductName, &p.TotalQuantity, &p.TotalRevenue, &p.AveragePrice); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// MonthlyTrend returns order count and revenue per month, ascending.
// order_date is stored as YYYY-MM-DD text, so the month is its first
// seven characters.
func MonthlyTrend(ctx context.Context, db store.DB) ([]MonthlyRevenue, error) {
	rows, err := db.Query(ctx, `
        SELECT substr(order_date, 1, 7) AS month,
               COUNT(*)::bigint AS order_count,
               SUM(total_price)::float8 AS monthly_revenue
        FROM sales_summary
        GROUP BY month
        ORDER BY month
    `)
	if err != nil {
		return nil, fmt.Errorf("monthly trend query failed: %w", err)
	}
	defer rows.Close()

	var out []MonthlyRevenue
	for rows.Next() {
		var m MonthlyRevenue
		if err := rows.Scan(&m.Month, &m.OrderCount, &m.Revenue); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// TopProducts returns the best-selling products by quantity.
func TopProducts(ctx context.Context, db store.DB, limit int) ([]ProductQuantity, error) {
	rows, err := db.Query(ctx, `
        SELECT product_name,
               SUM(quantity_sold)::bigint AS total_quantity
        FROM sales_summary
        GROUP BY product_name
        ORDER BY total_quantity DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("top products query failed: %w", err)
	}
	defer rows.Close()

	var out []ProductQuantity
	for rows.Next() {
		var p ProductQuantity
		if err := rows.Scan(&p.ProductName, &p.TotalQuantity); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Stats returns whole-table statistics. All aggregates are coalesced so
// an empty table yields zeros, not an error.
func Stats(ctx context.Context, db store.DB) (TableStats, error) {
	var s TableStats
	err := db.QueryRow(ctx, `
        SELECT COUNT(*)::bigint,
               COUNT(DISTINCT product_name)::bigint,
               COALESCE(SUM(total_price), 0)::float8,
               COALESCE(AVG(total_price), 0)::float8,
               COALESCE(MIN(order_date), ''),
               COALESCE(MAX(order_date), '')
        FROM sales_summary
    `).Scan(
		&s.TotalOrders, &s.UniqueProducts, &s.TotalRevenue,
		&s.AverageOrderValue, &s.EarliestDate, &s.LatestDate,
	)
	if err != nil {
		return TableStats{}, fmt.Errorf("stats query failed: %w", err)
	}
	return s, nil
}
