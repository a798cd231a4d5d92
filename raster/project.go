package raster

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// Web Mercator is undefined at the poles; sources reaching beyond this
// latitude are clamped silently. Distortion near the clamp is expected
// and intentionally not surfaced.
const maxMercatorLat = 85.05112877980659

// ProjectionError reports a reprojection that cannot be computed.
type ProjectionError struct {
	Reason string
}

func (e *ProjectionError) Error() string {
	return fmt.Sprintf("cannot reproject to web mercator: %s", e.Reason)
}

// ToWebMercator resamples b onto a destination grid whose extent is the
// source footprint projected into EPSG:3857. The destination keeps the
// source's pixel dimensions; cells are sampled bilinearly, which is
// appropriate for the continuous data this pipeline carries.
func ToWebMercator(b *Band) (*Band, error) {
	switch {
	case b.CRS == "":
		return nil, &ProjectionError{Reason: fmt.Sprintf("band %q has no CRS", b.Name)}
	case b.W <= 0 || b.H <= 0 || len(b.Values) != b.W*b.H:
		return nil, &ProjectionError{Reason: fmt.Sprintf("band %q has a malformed %dx%d grid", b.Name, b.W, b.H)}
	case b.Extent.Min[0] >= b.Extent.Max[0] || b.Extent.Min[1] >= b.Extent.Max[1]:
		return nil, &ProjectionError{Reason: fmt.Sprintf("band %q has a degenerate extent", b.Name)}
	}

	if b.CRS == EPSG3857 {
		out := *b
		out.Values = append([]float64(nil), b.Values...)
		return &out, nil
	}
	if b.CRS != EPSG4326 {
		return nil, &ProjectionError{Reason: fmt.Sprintf("unsupported source CRS %q", b.CRS)}
	}

	// Destination bounding box from the projected source corners.
	min := project.Point(clampLat(b.Extent.Min), project.WGS84.ToMercator)
	max := project.Point(clampLat(b.Extent.Max), project.WGS84.ToMercator)
	dst := &Band{
		Name:   b.Name,
		W:      b.W,
		H:      b.H,
		Values: make([]float64, b.W*b.H),
		Extent: orb.Bound{Min: min, Max: max},
		CRS:    EPSG3857,
	}

	dx := (max[0] - min[0]) / float64(dst.W)
	dy := (max[1] - min[1]) / float64(dst.H)
	for row := 0; row < dst.H; row++ {
		// Row 0 is the northern edge of the destination extent.
		my := max[1] - (float64(row)+0.5)*dy
		for col := 0; col < dst.W; col++ {
			mx := min[0] + (float64(col)+0.5)*dx
			ll := project.Point(orb.Point{mx, my}, project.Mercator.ToWGS84)
			dst.Values[row*dst.W+col] = b.sampleBilinear(ll[0], ll[1])
		}
	}
	return dst, nil
}

func clampLat(p orb.Point) orb.Point {
	if p[1] > maxMercatorLat {
		p[1] = maxMercatorLat
	}
	if p[1] < -maxMercatorLat {
		p[1] = -maxMercatorLat
	}
	return p
}

// sampleBilinear interpolates the band at the given source-CRS
// coordinate. No-data neighbors drop out with their weight; a
// neighborhood of only no-data yields NaN.
func (b *Band) sampleBilinear(x, y float64) float64 {
	fx := (x-b.Extent.Min[0])/(b.Extent.Max[0]-b.Extent.Min[0])*float64(b.W) - 0.5
	fy := (b.Extent.Max[1]-y)/(b.Extent.Max[1]-b.Extent.Min[1])*float64(b.H) - 0.5
	fx = math.Max(0, math.Min(fx, float64(b.W-1)))
	fy = math.Max(0, math.Min(fy, float64(b.H-1)))

	x0, y0 := int(fx), int(fy)
	x1, y1 := x0+1, y0+1
	if x1 > b.W-1 {
		x1 = b.W - 1
	}
	if y1 > b.H-1 {
		y1 = b.H - 1
	}
	tx, ty := fx-float64(x0), fy-float64(y0)

	var sum, weight float64
	for _, s := range [4]struct {
		x, y int
		w    float64
	}{
		{x0, y0, (1 - tx) * (1 - ty)},
		{x1, y0, tx * (1 - ty)},
		{x0, y1, (1 - tx) * ty},
		{x1, y1, tx * ty},
	} {
		v := b.At(s.x, s.y)
		if math.IsNaN(v) || s.w == 0 {
			continue
		}
		sum += v * s.w
		weight += s.w
	}
	if weight == 0 {
		return math.NaN()
	}
	return sum / weight
}
