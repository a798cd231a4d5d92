package colorscale

import (
	"math"
	"testing"
)

func TestLegendShape(t *testing.T) {
	s := New(0, 1)
	entries := s.Legend()

	if len(entries) != Steps {
		t.Fatalf("got %d entries, want %d", len(entries), Steps)
	}
	for i, e := range entries {
		if r := e.Value * 1000; r != math.Trunc(r) {
			t.Errorf("entry %d value %v is not rounded to 3 decimals", i, e.Value)
		}
		if i > 0 && e.Value < entries[i-1].Value {
			t.Errorf("entry %d value %v decreases from %v", i, e.Value, entries[i-1].Value)
		}
	}
	if entries[0].Value != 0 || entries[Steps-1].Value != 1 {
		t.Errorf("endpoints = (%v, %v), want (0, 1)", entries[0].Value, entries[Steps-1].Value)
	}
	if entries[1].Value != 0.111 {
		t.Errorf("second entry = %v, want 0.111", entries[1].Value)
	}
}

func TestLegendDegenerateRange(t *testing.T) {
	s := New(7, 7)
	entries := s.Legend()

	if len(entries) != Steps {
		t.Fatalf("got %d entries, want %d", len(entries), Steps)
	}
	for i, e := range entries {
		if e.Value != 7 {
			t.Errorf("entry %d value = %v, want 7", i, e.Value)
		}
		if e.Color != entries[0].Color {
			t.Errorf("entry %d color differs in a degenerate scale", i)
		}
	}
	if s.At(7) == Transparent {
		t.Error("in-domain value maps to transparent on a degenerate scale")
	}
}

func TestAtEndpoints(t *testing.T) {
	s := New(-2, 2)

	if got := s.At(-2); got != Viridis[0] {
		t.Errorf("At(min) = %v, want first palette color %v", got, Viridis[0])
	}
	if got := s.At(2); got != Viridis[Steps-1] {
		t.Errorf("At(max) = %v, want last palette color %v", got, Viridis[Steps-1])
	}
}

func TestAtOutsideDomainIsTransparent(t *testing.T) {
	s := New(0, 1)

	for _, v := range []float64{math.NaN(), -0.001, 1.001, math.Inf(1), math.Inf(-1)} {
		if got := s.At(v); got != Transparent {
			t.Errorf("At(%v) = %v, want transparent", v, got)
		}
	}
}

func TestAtInterpolatesContinuously(t *testing.T) {
	s := New(0, 1)

	mid := s.At(0.5)
	if mid == Transparent {
		t.Fatal("mid-domain value is transparent")
	}
	if mid.A != 255 {
		t.Errorf("in-domain color alpha = %d, want 255", mid.A)
	}

	// Halfway between two stops is neither stop.
	between := s.At(1.0 / 18.0)
	if between == Viridis[0] || between == Viridis[1] {
		t.Errorf("At between stops = %v, expected an interpolated color", between)
	}
}
