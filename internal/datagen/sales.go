//-------------------------------------------------------------------------
//
// salespipe - Sales Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, the salespipe authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package datagen

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/salespipe/salespipe/internal/pipeline"
)

// product is a catalogue entry with its plausible price range. The
// mixed casing is deliberate: lowercase names exercise the title-case
// normalization in the transform stage.
type product struct {
	name     string
	minPrice float64
	maxPrice float64
}

var catalogue = []product{
	{"Laptop", 799.99, 1999.99},
	{"Smartphone", 299.99, 1299.99},
	{"Headphones", 49.99, 349.99},
	{"Monitor", 149.99, 699.99},
	{"Keyboard", 29.99, 199.99},
	{"Mouse", 14.99, 99.99},
	{"tablet", 199.99, 899.99},
	{"printer", 89.99, 399.99},
	{"usb cable", 9.99, 29.99},
	{"external hard drive", 59.99, 299.99},
}

// SalesConfig configures sample sales data generation.
type SalesConfig struct {
	// Records is the number of rows to generate.
	Records int

	// NullRate is the per-cell probability of writing an empty cell.
	NullRate float64

	// Seed makes the output reproducible when non-zero.
	Seed uint64
}

// SalesGenerator writes synthetic sales CSV data conforming to the
// pipeline's five-column input contract.
type SalesGenerator struct {
	faker *Faker
	cfg   SalesConfig
}

// NewSalesGenerator creates a generator for the given configuration.
func NewSalesGenerator(cfg SalesConfig) *SalesGenerator {
	f := NewFaker()
	if cfg.Seed != 0 {
		f = NewFakerWithSeed(cfg.Seed)
	}
	return &SalesGenerator{faker: f, cfg: cfg}
}

// WriteFile generates the CSV into the given file, replacing it if it
// exists. It returns the number of data rows and nulled cells written.
func (g *SalesGenerator) WriteFile(path string) (rows, nulls int, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	rows, nulls, err = g.Write(f)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nulls, nil
}

// Write generates the CSV to w: a header row followed by Records data
// rows. Order dates are spread over the trailing year and written as
// MM/DD/YYYY; quantities are 1-10; prices are drawn per product.
func (g *SalesGenerator) Write(w io.Writer) (rows, nulls int, err error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(pipeline.Columns); err != nil {
		return 0, 0, err
	}

	end := time.Now()
	start := end.AddDate(-1, 0, 0)
	progress := NewProgressReporter("sales_data", int64(g.cfg.Records), 100000)

	for i := 0; i < g.cfg.Records; i++ {
		p := Choose(g.faker, catalogue)
		fields := []string{
			g.faker.UUID(),
			p.name,
			strconv.Itoa(g.faker.Int(1, 10)),
			strconv.FormatFloat(g.faker.Price(p.minPrice, p.maxPrice), 'f', 2, 64),
			g.faker.DateRange(start, end).Format("01/02/2006"),
		}
		if g.cfg.NullRate > 0 {
			for j := range fields {
				if g.faker.Float64(0, 1) < g.cfg.NullRate {
					fields[j] = ""
					nulls++
				}
			}
		}
		if err := cw.Write(fields); err != nil {
			return 0, 0, err
		}
		progress.Update(1)
	}
	progress.Done()

	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, 0, err
	}
	return g.cfg.Records, nulls, nil
}
