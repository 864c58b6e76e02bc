//-------------------------------------------------------------------------
//
// salespipe - Sales Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, the salespipe authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package pipeline implements the extract and transform stages of the
// sales ETL pipeline.
package pipeline

// Columns is the exact header contract for raw sales input. Both the
// order and the names are fixed; the extractor rejects anything else.
var Columns = []string{
	"order_id",
	"product_name",
	"quantity_sold",
	"price_per_unit",
	"order_date",
}

// RawRecord is a single row as read from the input source. Fields are
// pointers so that a missing value (an empty cell) is distinguishable
// from a present one.
type RawRecord struct {
	OrderID      *string
	ProductName  *string
	QuantitySold *int64
	PricePerUnit *float64
	OrderDate    *string
}

// HasNull reports whether any of the five raw fields is missing.
func (r RawRecord) HasNull() bool {
	return r.OrderID == nil || r.ProductName == nil || r.QuantitySold == nil ||
		r.PricePerUnit == nil || r.OrderDate == nil
}

// CleanRecord is a fully populated row ready for persistence. Every
// field is set: null rows are dropped during transformation, never
// imputed.
type CleanRecord struct {
	OrderID      string
	ProductName  string
	QuantitySold int64
	PricePerUnit float64
	OrderDate    string // normalized to YYYY-MM-DD
	TotalPrice   float64
}
