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
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validHeader = "order_id,product_name,quantity_sold,price_per_unit,order_date"

func TestExtract(t *testing.T) {
	input := validHeader + "\n" +
		"a1,tablet,3,19.999,04/29/2025\n" +
		"a2,,4,10.00,05/01/2025\n" +
		"a3,Mouse,,,05/02/2025\n"

	recs, err := Extract(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(recs))
	}

	r := recs[0]
	if r.HasNull() {
		t.Error("First record should have no nulls")
	}
	if *r.OrderID != "a1" || *r.ProductName != "tablet" ||
		*r.QuantitySold != 3 || *r.PricePerUnit != 19.999 ||
		*r.OrderDate != "04/29/2025" {
		t.Errorf("First record mismatch: %+v", r)
	}

	if recs[1].ProductName != nil {
		t.Error("Empty product_name cell should be nil")
	}
	if recs[1].OrderID == nil || recs[1].QuantitySold == nil {
		t.Error("Populated cells should not be nil")
	}

	if recs[2].QuantitySold != nil || recs[2].PricePerUnit != nil {
		t.Error("Empty numeric cells should be nil")
	}
}

func TestExtractFloatQuantity(t *testing.T) {
	// Writers with nullable integer columns emit "3.0" style quantities.
	input := validHeader + "\n" +
		"a1,Laptop,3.0,999.99,01/15/2025\n"

	recs, err := Extract(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if *recs[0].QuantitySold != 3 {
		t.Errorf("Expected quantity 3, got %d", *recs[0].QuantitySold)
	}
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"wrong column count", "order_id,product_name,quantity_sold,price_per_unit\na1,x,1,2\n"},
		{"wrong column name", "id,product_name,quantity_sold,price_per_unit,order_date\na1,x,1,2,3\n"},
		{"misordered columns", "product_name,order_id,quantity_sold,price_per_unit,order_date\nx,a1,1,2,3\n"},
		{"non-numeric quantity", validHeader + "\na1,Laptop,abc,999.99,01/15/2025\n"},
		{"fractional quantity", validHeader + "\na1,Laptop,3.5,999.99,01/15/2025\n"},
		{"non-numeric price", validHeader + "\na1,Laptop,3,cheap,01/15/2025\n"},
		{"ragged row", validHeader + "\na1,Laptop,3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Extract(strings.NewReader(tt.input)); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestExtractHeaderOnly(t *testing.T) {
	recs, err := Extract(strings.NewReader(validHeader + "\n"))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("Expected 0 records, got %d", len(recs))
	}
}

func TestExtractFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	content := validHeader + "\na1,Laptop,1,999.99,01/15/2025\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	recs, err := ExtractFile(path)
	if err != nil {
		t.Fatalf("ExtractFile failed: %v", err)
	}
	if len(recs) != 1 {
		t.Errorf("Expected 1 record, got %d", len(recs))
	}
}

func TestExtractFileMissing(t *testing.T) {
	_, err := ExtractFile(filepath.Join(t.TempDir(), "does_not_exist.csv"))
	if err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}
