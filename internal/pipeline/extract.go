//-------------------------------------------------------------------------
//
// salespipe - Sales Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, the salespipe authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package pipeline

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ExtractFile reads a sales CSV file into raw records. A missing or
// unreadable file is a fatal input error.
func ExtractFile(path string) ([]RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	recs, err := Extract(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// Extract parses CSV input into raw records. The header must match
// Columns exactly, in order. Empty cells become nil fields; a non-empty
// cell that fails numeric parsing aborts extraction, since a malformed
// source should never be partially processed.
func Extract(r io.Reader) ([]RawRecord, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("input is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) != len(Columns) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(Columns), len(header))
	}
	for i, name := range header {
		if strings.TrimSpace(name) != Columns[i] {
			return nil, fmt.Errorf("unexpected column %d: got %q, want %q",
				i+1, name, Columns[i])
		}
	}

	var recs []RawRecord
	line := 1
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		line++

		rec := RawRecord{
			OrderID:     optString(fields[0]),
			ProductName: optString(fields[1]),
			OrderDate:   optString(fields[4]),
		}
		if s := strings.TrimSpace(fields[2]); s != "" {
			q, err := parseQuantity(s)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid quantity_sold %q: %w", line, s, err)
			}
			rec.QuantitySold = &q
		}
		if s := strings.TrimSpace(fields[3]); s != "" {
			p, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid price_per_unit %q: %w", line, s, err)
			}
			rec.PricePerUnit = &p
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// optString returns nil for an empty or whitespace-only cell.
func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// parseQuantity accepts plain integers as well as integral floats like
// "3.0". Writers with nullable integer columns commonly emit the latter.
func parseQuantity(s string) (int64, error) {
	if q, err := strconv.ParseInt(s, 10, 64); err == nil {
		return q, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer")
	}
	return int64(f), nil
}
