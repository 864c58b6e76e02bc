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
	"fmt"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MalformedDateError reports a row whose order date survived null
// elimination but cannot be parsed. It fails the whole batch: a
// mis-parsed date would silently skew every downstream time-series
// aggregate, which is worse than a loud failure.
type MalformedDateError struct {
	OrderID string
	Value   string
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("order %s: unparseable order_date %q", e.OrderID, e.Value)
}

// TransformResult is the output of a successful transformation.
type TransformResult struct {
	// Records are the clean rows, in input order.
	Records []CleanRecord

	// Dropped is the number of rows removed by null elimination.
	Dropped int
}

// Transform applies the cleaning and derivation rules to a raw row set:
//
//  1. rows with any missing field are dropped (counted, not fatal),
//  2. order dates are parsed permissively and reformatted to YYYY-MM-DD,
//  3. total_price = quantity_sold * price_per_unit, rounded to 2 places,
//  4. product names are normalized to title case.
//
// Rounding is half away from zero ("half-up"): 3 x 19.999 = 59.997
// rounds to 60.00. Output order matches input order, so the result is
// deterministic for a given input.
//
// Transform is a pure function: it reads no external state and never
// mutates its input.
func Transform(raw []RawRecord) (TransformResult, error) {
	title := cases.Title(language.English)

	res := TransformResult{Records: make([]CleanRecord, 0, len(raw))}
	for _, r := range raw {
		if r.HasNull() {
			res.Dropped++
			continue
		}

		day, err := dateparse.ParseAny(*r.OrderDate)
		if err != nil {
			return TransformResult{}, &MalformedDateError{
				OrderID: *r.OrderID,
				Value:   *r.OrderDate,
			}
		}

		total := decimal.NewFromInt(*r.QuantitySold).
			Mul(decimal.NewFromFloat(*r.PricePerUnit)).
			Round(2)

		res.Records = append(res.Records, CleanRecord{
			OrderID:      *r.OrderID,
			ProductName:  title.String(*r.ProductName),
			QuantitySold: *r.QuantitySold,
			PricePerUnit: *r.PricePerUnit,
			OrderDate:    day.Format("2006-01-02"),
			TotalPrice:   total.InexactFloat64(),
		})
	}
	return res, nil
}
