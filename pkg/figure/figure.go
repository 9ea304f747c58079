// Package figure turns a parsed figure description into pixels. It owns the
// three production stages around the layout engine: building a positioned
// layout tree from the description (resolving panel images), rasterizing a
// finished tree into one output buffer, and sketching a tree as an outline
// preview for dry runs.
package figure

import (
	"errors"
	"image"

	"github.com/disintegration/imaging"

	"github.com/jmellor/panelize/pkg/layout"
	"github.com/jmellor/panelize/pkg/picture"
)

// ErrNotAtOrigin is returned when rasterization is requested for a tree whose
// bounding box does not start at (0, 0). Callers must normalize first.
var ErrNotAtOrigin = errors.New("figure: tree is not normalized to the origin")

// ErrMissingPanel is returned when a panel image cannot be loaded and
// placeholder substitution is disabled.
var ErrMissingPanel = errors.New("figure: panel image not found")

// panelSource adapts a decoded panel image to the layout engine's source
// interface. Resizing happens lazily at rasterization time, against the
// original pixels, so repeated layout rescales never compound resampling
// error.
type panelSource struct {
	img    image.Image
	filter imaging.ResampleFilter
}

func (s *panelSource) Pixels(w, h int) (image.Image, error) {
	return picture.Resize(s.img, w, h, s.filter), nil
}

// ImageSource wraps an already-decoded image as a region source, for callers
// that assemble layout trees outside the builder (e.g. contact sheets).
func ImageSource(img image.Image, filter imaging.ResampleFilter) layout.Source {
	if filter.Support == 0 {
		filter = picture.DefaultFilter
	}
	return &panelSource{img: img, filter: filter}
}
