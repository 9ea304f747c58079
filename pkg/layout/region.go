package layout

import (
	"fmt"
	"image"

	"github.com/jmellor/panelize/pkg/annotate"
)

// Source supplies pixel data for a region at rasterization time. The layout
// engine never touches pixels itself; implementations live with the image
// loading code. A nil Source marks a blank placeholder.
type Source interface {
	// Pixels returns the panel resized to exactly w×h pixels.
	Pixels(w, h int) (image.Image, error)
}

// Region is a leaf of the layout tree: one positioned rectangle referencing a
// single panel image. X and Y give the top-left corner in output coordinates;
// both position and size are mutated by the layout operations.
type Region struct {
	X, Y float64
	W, H float64

	// Name identifies the panel in sketches and logs, typically the image
	// file stem. Empty for anonymous panels.
	Name string

	// Source provides the panel's pixels, nil for a blank placeholder.
	Source Source

	// Label is an annotation burned into the panel just before it is
	// written to the output buffer, nil when the panel is unlabelled.
	Label *annotate.Label
}

// NewRegion creates a region of the given size positioned at the origin.
func NewRegion(w, h float64) (*Region, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %gx%g", ErrInvalidShape, w, h)
	}
	return &Region{W: w, H: h}, nil
}

func (r *Region) XMin() float64 { return r.X }
func (r *Region) XMax() float64 { return r.X + r.W }
func (r *Region) YMin() float64 { return r.Y }
func (r *Region) YMax() float64 { return r.Y + r.H }

// ShiftX moves the region right by dx.
func (r *Region) ShiftX(dx float64) { r.X += dx }

// ShiftY moves the region down by dy.
func (r *Region) ShiftY(dy float64) { r.Y += dy }

// Rescale multiplies the region's size by f. The top-left corner does not
// move; repositioning within a tree is the parent's responsibility.
func (r *Region) Rescale(f float64) {
	r.W *= f
	r.H *= f
}

// Walk visits the region itself.
func (r *Region) Walk(fn func(*Region) error) error { return fn(r) }

func (r *Region) String() string {
	return fmt.Sprintf("Region %q at (%g, %g) size %gx%g", r.Name, r.X, r.Y, r.W, r.H)
}
