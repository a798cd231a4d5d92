package mapdoc

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"

	"github.com/ecomapper/sdmap/colorscale"
	"github.com/ecomapper/sdmap/raster"
)

// ImageOverlay is the colorized raster band as a single PNG image,
// positioned by its geographic corner coordinates.
type ImageOverlay struct {
	Name string
	// Bounds is the overlay footprint in lon/lat, the frame tile map
	// clients anchor image corners in.
	Bounds orb.Bound
	W, H   int
	PNG    []byte
}

// SizeBudgetError reports an overlay that could not be reduced to fit
// the byte budget.
type SizeBudgetError struct {
	MaxBytes int
	Got      int
}

func (e *SizeBudgetError) Error() string {
	return fmt.Sprintf("overlay image is %d bytes even at minimum resolution, budget is %d", e.Got, e.MaxBytes)
}

// NewImageOverlay colorizes the band and encodes it as a PNG no larger
// than maxBytes. When the natural resolution encodes over budget the
// grid is downsampled and re-encoded until it fits; the budget is
// enforced before the overlay exists, never detected after.
func NewImageOverlay(band *raster.Band, scale *colorscale.Scale, maxBytes int) (*ImageOverlay, error) {
	w, h := band.W, band.H
	for {
		data, err := encodePNG(band, scale, w, h)
		if err != nil {
			return nil, fmt.Errorf("encoding overlay for band %q: %w", band.Name, err)
		}
		if len(data) <= maxBytes {
			return &ImageOverlay{
				Name:   band.Name,
				Bounds: geographicBounds(band.Extent),
				W:      w,
				H:      h,
				PNG:    data,
			}, nil
		}
		if w == 1 && h == 1 {
			return nil, &SizeBudgetError{MaxBytes: maxBytes, Got: len(data)}
		}

		// Shrink towards the byte target; sqrt because bytes scale
		// roughly with pixel count.
		f := math.Sqrt(float64(maxBytes)/float64(len(data))) * 0.95
		w, h = shrink(w, f), shrink(h, f)
	}
}

func shrink(n int, f float64) int {
	m := int(float64(n) * f)
	if m >= n {
		m = n - 1
	}
	if m < 1 {
		m = 1
	}
	return m
}

// encodePNG renders the band through the scale at w x h, sampling the
// grid nearest-neighbor when downsampled.
func encodePNG(band *raster.Band, scale *colorscale.Scale, w, h int) ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		sy := y * band.H / h
		for x := 0; x < w; x++ {
			sx := x * band.W / w
			img.SetNRGBA(x, y, scale.At(band.At(sx, sy)))
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func geographicBounds(merc orb.Bound) orb.Bound {
	return orb.Bound{
		Min: project.Point(merc.Min, project.Mercator.ToWGS84),
		Max: project.Point(merc.Max, project.Mercator.ToWGS84),
	}
}
