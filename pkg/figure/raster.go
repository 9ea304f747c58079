package figure

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/jmellor/panelize/pkg/annotate"
	"github.com/jmellor/panelize/pkg/layout"
	"github.com/jmellor/panelize/pkg/picture"
)

// originTol is the slack allowed on the tree's minimum when checking that it
// sits at the origin; float drift from repeated stacking stays far below it.
const originTol = 1e-6

// Rasterize renders the tree into a single image buffer of the given pixel
// width. The tree must already sit at the origin. It is rescaled in place so
// its horizontal extent equals targetWidth, every region is snapped to whole
// pixels, and panels are written in depth-first layout order with labels
// burned in just before the write.
func Rasterize(tree *layout.Tree, targetWidth int) (*image.NRGBA, error) {
	if targetWidth <= 0 {
		return nil, fmt.Errorf("figure: target width must be positive, got %d", targetWidth)
	}
	if math.Abs(tree.XMin()) > originTol || math.Abs(tree.YMin()) > originTol {
		return nil, fmt.Errorf("%w: bounding box starts at (%g, %g)", ErrNotAtOrigin, tree.XMin(), tree.YMin())
	}

	tree.Rescale(float64(targetWidth) / layout.WidthRange(tree))

	// Snap every region to integer pixel coordinates before allocating the
	// buffer, so the buffer extent agrees with the rounded regions.
	_ = tree.Walk(func(r *layout.Region) error {
		r.X = float64(roundHalfUp(r.X))
		r.Y = float64(roundHalfUp(r.Y))
		r.W = float64(roundHalfUp(r.W))
		r.H = float64(roundHalfUp(r.H))
		return nil
	})

	outW := int(layout.WidthRange(tree))
	outH := int(layout.HeightRange(tree))
	dst := image.NewNRGBA(image.Rect(0, 0, outW, outH))

	err := tree.Walk(func(r *layout.Region) error {
		x, y := int(r.X), int(r.Y)
		w, h := int(r.W), int(r.H)
		if w <= 0 || h <= 0 {
			return fmt.Errorf("figure: panel %q collapsed to %dx%d pixels", r.Name, w, h)
		}

		var (
			img image.Image
			err error
		)
		if r.Source == nil {
			img = picture.Blank(w, h)
		} else if img, err = r.Source.Pixels(w, h); err != nil {
			return fmt.Errorf("figure: panel %q: %w", r.Name, err)
		}
		if r.Label != nil {
			if img, err = annotate.Apply(img, r.Label); err != nil {
				return fmt.Errorf("figure: panel %q: %w", r.Name, err)
			}
		}

		// draw.Draw clips against the buffer, so a region nudged past the
		// edge by rounding loses at most its outermost pixel row.
		draw.Draw(dst, image.Rect(x, y, x+w, y+h), img, img.Bounds().Min, draw.Src)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// roundHalfUp rounds to the nearest integer with ties going up, matching the
// rounding the layout coordinates were designed against.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
