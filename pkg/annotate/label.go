// Package annotate burns text labels into panel images. Label positions are
// relative to the panel rectangle, so annotations survive the rescaling that
// happens during layout: the pixel position is only resolved once the panel's
// final size is known.
package annotate

import (
	"fmt"
	"image/color"
)

// DefaultSize is the font size in points used when a label does not specify
// one.
const DefaultSize = 50.0

// Label is a queued annotation request for one panel.
type Label struct {
	// Text is the string to draw, e.g. "a)".
	Text string

	// PosX and PosY locate the label's top-left corner in relative panel
	// coordinates, each in [0, 1].
	PosX, PosY float64

	// Color is the text colour, black when nil.
	Color color.Color

	// Size is the font size in points, DefaultSize when zero.
	Size float64
}

// New creates a label at the given relative position.
func New(text string, x, y float64) (*Label, error) {
	if x < 0 || x > 1 || y < 0 || y > 1 {
		return nil, fmt.Errorf("annotate: label position (%g, %g) outside [0, 1]", x, y)
	}
	return &Label{Text: text, PosX: x, PosY: y}, nil
}

func (l *Label) color() color.Color {
	if l.Color == nil {
		return color.Black
	}
	return l.Color
}

func (l *Label) size() float64 {
	if l.Size <= 0 {
		return DefaultSize
	}
	return l.Size
}
