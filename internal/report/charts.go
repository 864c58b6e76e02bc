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
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderCharts writes the revenue-by-product bar chart and the monthly
// trend line chart as standalone HTML files.
func RenderCharts(products []ProductSales, trend []MonthlyRevenue, dir string) error {
	if err := renderToFile(filepath.Join(dir, "revenue_by_product.html"),
		func(w io.Writer) error { return RenderRevenueBar(products, w) }); err != nil {
		return err
	}
	return renderToFile(filepath.Join(dir, "monthly_sales_trend.html"),
		func(w io.Writer) error { return RenderMonthlyLine(trend, w) })
}

// RenderRevenueBar renders total revenue per product as a bar chart.
func RenderRevenueBar(products []ProductSales, w io.Writer) error {
	names := make([]string, 0, len(products))
	data := make([]opts.BarData, 0, len(products))
	for _, p := range products {
		names = append(names, p.ProductName)
		data = append(data, opts.BarData{Value: p.TotalRevenue})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Total Revenue by Product"}),
	)
	bar.SetXAxis(names).AddSeries("Revenue ($)", data)
	return bar.Render(w)
}

// RenderMonthlyLine renders monthly revenue as a line chart.
func RenderMonthlyLine(trend []MonthlyRevenue, w io.Writer) error {
	months := make([]string, 0, len(trend))
	data := make([]opts.LineData, 0, len(trend))
	for _, m := range trend {
		months = append(months, m.Month)
		data = append(data, opts.LineData{Value: m.Revenue})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Monthly Sales Trend"}),
	)
	line.SetXAxis(months).AddSeries("Monthly Revenue ($)", data)
	return line.Render(w)
}

func renderToFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := render(f); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	return nil
}
