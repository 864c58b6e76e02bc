//-------------------------------------------------------------------------
//
// salespipe - Sales Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, the salespipe authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/salespipe/salespipe/internal/logging"
	"github.com/salespipe/salespipe/internal/store"
)

// Options controls report generation.
type Options struct {
	// OutputDir is created if absent; report files are written into it.
	OutputDir string

	// Charts enables HTML chart rendering.
	Charts bool
}

// Run executes all report queries and writes the output files.
func Run(ctx context.Context, db store.DB, opts Options) error {
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	products, err := ProductSalesSummary(ctx, db)
	if err != nil {
		return err
	}
	if err := WriteProductSalesCSV(products,
		filepath.Join(opts.OutputDir, "product_sales_summary.csv")); err != nil {
		return err
	}

	trend, err := MonthlyTrend(ctx, db)
	if err != nil {
		return err
	}
	if err := WriteMonthlyTrendCSV(trend,
		filepath.Join(opts.OutputDir, "monthly_sales_trend.csv")); err != nil {
		return err
	}

	top, err := TopProducts(ctx, db, 5)
	if err != nil {
		return err
	}
	for i, p := range top {
		logging.Info().
			Int("rank", i+1).
			Str("product", p.ProductName).
			Int64("quantity", p.TotalQuantity).
			Msg("Top selling product")
	}

	stats, err := Stats(ctx, db)
	if err != nil {
		return err
	}
	logging.Info().
		Int64("total_orders", stats.TotalOrders).
		Int64("unique_products", stats.UniqueProducts).
		Float64("total_revenue", stats.TotalRevenue).
		Float64("average_order_value", stats.AverageOrderValue).
		Str("earliest_date", stats.EarliestDate).
		Str("latest_date", stats.LatestDate).
		Msg("Table statistics")

	if opts.Charts {
		if err := RenderCharts(products, trend, opts.OutputDir); err != nil {
			return err
		}
	}

	return nil
}

// WriteProductSalesCSV writes the per-product summary as CSV.
func WriteProductSalesCSV(products []ProductSales, path string) error {
	return writeCSV(path, [][]string{
		{"product_name", "total_quantity", "total_revenue", "average_price"},
	}, func(rows [][]string) [][]string {
		for _, p := range products {
			rows = append(rows, []string{
				p.ProductName,
				strconv.FormatInt(p.TotalQuantity, 10),
				strconv.FormatFloat(p.TotalRevenue, 'f', 2, 64),
				strconv.FormatFloat(p.AveragePrice, 'f', 2, 64),
			})
		}
		return rows
	})
}

// WriteMonthlyTrendCSV writes the monthly revenue trend as CSV.
func WriteMonthlyTrendCSV(trend []MonthlyRevenue, path string) error {
	return writeCSV(path, [][]string{
		{"month", "order_count", "monthly_revenue"},
	}, func(rows [][]string) [][]string {
		for _, m := range trend {
			rows = append(rows, []string{
				m.Month,
				strconv.FormatInt(m.OrderCount, 10),
				strconv.FormatFloat(m.Revenue, 'f', 2, 64),
			})
		}
		return rows
	})
}

func writeCSV(path string, rows [][]string, fill func([][]string) [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(fill(rows)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
