// Package colorscale maps numeric cell values to colors and derives the
// matching map legend.
package colorscale

import (
	"image/color"
	"math"
)

// Steps is the number of palette stops and legend entries.
const Steps = 10

// Viridis is a 10-step perceptually uniform palette.
var Viridis = [Steps]color.NRGBA{
	{68, 1, 84, 255},
	{72, 40, 120, 255},
	{62, 74, 137, 255},
	{49, 104, 142, 255},
	{38, 130, 142, 255},
	{31, 158, 137, 255},
	{53, 183, 121, 255},
	{109, 205, 89, 255},
	{180, 222, 44, 255},
	{253, 231, 37, 255},
}

// Transparent is the color of no-data cells and out-of-domain values.
// Such cells are fully absent from the overlay, never an arbitrary
// visible color.
var Transparent = color.NRGBA{}

// Scale is a continuous mapping from [Min, Max] onto the palette.
type Scale struct {
	Min, Max float64
	palette  [Steps]color.NRGBA
}

// LegendEntry is one displayed (value, color) pair. Values are rounded
// to 3 decimal places; the legend is for display only, never for
// classification.
type LegendEntry struct {
	Value float64
	Color color.NRGBA
}

// New builds a scale over the viridis palette for the given value range.
// A degenerate range (min == max) is valid: every in-domain value maps
// to the first palette color.
func New(min, max float64) *Scale {
	return &Scale{Min: min, Max: max, palette: Viridis}
}

// At returns the color for v, interpolating linearly between palette
// stops. NaN and values outside [Min, Max] map to Transparent.
func (s *Scale) At(v float64) color.NRGBA {
	if math.IsNaN(v) || v < s.Min || v > s.Max {
		return Transparent
	}
	if s.Max == s.Min {
		return s.palette[0]
	}

	t := (v - s.Min) / (s.Max - s.Min) * float64(Steps-1)
	lo := int(t)
	if lo >= Steps-1 {
		return s.palette[Steps-1]
	}
	return lerp(s.palette[lo], s.palette[lo+1], t-float64(lo))
}

// Legend returns Steps evenly spaced entries spanning [Min, Max],
// endpoints included.
func (s *Scale) Legend() []LegendEntry {
	entries := make([]LegendEntry, Steps)
	for i := range entries {
		v := s.Min
		if s.Max != s.Min {
			v = s.Min + float64(i)*(s.Max-s.Min)/float64(Steps-1)
		}
		entries[i] = LegendEntry{Value: round3(v), Color: s.At(v)}
	}
	return entries
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func lerp(a, b color.NRGBA, t float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(float64(a.R) + t*(float64(b.R)-float64(a.R))),
		G: uint8(float64(a.G) + t*(float64(b.G)-float64(a.G))),
		B: uint8(float64(a.B) + t*(float64(b.B)-float64(a.B))),
		A: 255,
	}
}
