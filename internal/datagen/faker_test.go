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
	"testing"
	"time"
)

func TestNewFakerWithSeed(t *testing.T) {
	seed := uint64(12345)
	f1 := NewFakerWithSeed(seed)
	f2 := NewFakerWithSeed(seed)

	// Same seed should produce same sequence
	for i := 0; i < 10; i++ {
		v1 := f1.Int(0, 1000)
		v2 := f2.Int(0, 1000)
		if v1 != v2 {
			t.Errorf("Same seed produced different values: %d != %d", v1, v2)
		}
	}
}

func TestFakerInt(t *testing.T) {
	f := NewFaker()
	for i := 0; i < 100; i++ {
		v := f.Int(1, 10)
		if v < 1 || v > 10 {
			t.Fatalf("Int(1, 10) returned %d", v)
		}
	}
}

func TestFakerPrice(t *testing.T) {
	f := NewFaker()
	for i := 0; i < 100; i++ {
		p := f.Price(9.99, 29.99)
		if p < 9.99 || p > 29.99 {
			t.Fatalf("Price(9.99, 29.99) returned %v", p)
		}
	}
}

func TestFakerDateRange(t *testing.T) {
	f := NewFaker()
	end := time.Now()
	start := end.AddDate(-1, 0, 0)
	for i := 0; i < 100; i++ {
		d := f.DateRange(start, end)
		if d.Before(start) || d.After(end) {
			t.Fatalf("DateRange returned %v outside [%v, %v]", d, start, end)
		}
	}
}

func TestFakerUUID(t *testing.T) {
	f := NewFaker()
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := f.UUID()
		if id == "" {
			t.Fatal("UUID returned empty string")
		}
		if _, ok := seen[id]; ok {
			t.Fatalf("UUID repeated: %s", id)
		}
		seen[id] = struct{}{}
	}
}

func TestChoose(t *testing.T) {
	f := NewFaker()
	items := []string{"a", "b", "c"}
	for i := 0; i < 50; i++ {
		v := Choose(f, items)
		if v != "a" && v != "b" && v != "c" {
			t.Fatalf("Choose returned unexpected value %q", v)
		}
	}
}

func TestChooseEmpty(t *testing.T) {
	f := NewFaker()
	if v := Choose(f, []int{}); v != 0 {
		t.Errorf("Choose on empty slice should return zero value, got %d", v)
	}
}
