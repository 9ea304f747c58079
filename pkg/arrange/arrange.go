// Package arrange packs boxes onto fixed-width sheets for contact-sheet
// output. Packing is greedy first-fit and order preserving: boxes flow left
// to right and wrap to a new row when the sheet width runs out. It is
// deliberately not a recursive layout; the result converts into a layout tree
// so the shared rasterizer can render it.
package arrange

import (
	"errors"
	"fmt"

	"github.com/jmellor/panelize/pkg/layout"
)

// ErrBoxTooWide is returned when a single box is wider than the sheet.
var ErrBoxTooWide = errors.New("arrange: box wider than the sheet")

// Box is one item to place, typically a panel image at native size.
type Box struct {
	W, H   float64
	Name   string
	Source layout.Source
}

// Placed is a box with its assigned sheet position.
type Placed struct {
	Box
	Row, Col int
	X, Y     float64
}

// Sheet is the result of packing: rows of placed boxes. Row height is the
// tallest box in the row; the next row starts directly below it.
type Sheet struct {
	Width float64
	Rows  [][]Placed
}

// Fill packs the boxes onto a sheet of the given width, in input order.
func Fill(boxes []Box, sheetWidth float64) (*Sheet, error) {
	if sheetWidth <= 0 {
		return nil, fmt.Errorf("arrange: sheet width must be positive, got %g", sheetWidth)
	}
	if len(boxes) == 0 {
		return nil, errors.New("arrange: nothing to pack")
	}

	s := &Sheet{Width: sheetWidth}
	var (
		row  []Placed
		x, y float64
		rowH float64
	)
	flush := func() {
		s.Rows = append(s.Rows, row)
		row = nil
		x = 0
		y += rowH
		rowH = 0
	}

	for _, b := range boxes {
		if b.W <= 0 || b.H <= 0 {
			return nil, fmt.Errorf("arrange: box %q has size %gx%g", b.Name, b.W, b.H)
		}
		if b.W > sheetWidth {
			return nil, fmt.Errorf("%w: %q is %g wide on a %g sheet", ErrBoxTooWide, b.Name, b.W, sheetWidth)
		}
		if x+b.W > sheetWidth && x > 0 {
			flush()
		}
		row = append(row, Placed{
			Box: b,
			Row: len(s.Rows),
			Col: len(row),
			X:   x,
			Y:   y,
		})
		x += b.W
		if b.H > rowH {
			rowH = b.H
		}
	}
	flush()
	return s, nil
}

// Tree converts the packed sheet into a layout tree of absolutely positioned
// regions, one per box, in packing order. The tree starts at the origin and
// feeds straight into the rasterizer.
func (s *Sheet) Tree() (*layout.Tree, error) {
	var nodes []layout.Node
	for _, row := range s.Rows {
		for _, p := range row {
			r, err := layout.NewRegion(p.W, p.H)
			if err != nil {
				return nil, fmt.Errorf("arrange: box %q: %w", p.Name, err)
			}
			r.X, r.Y = p.X, p.Y
			r.Name = p.Name
			r.Source = p.Source
			nodes = append(nodes, r)
		}
	}
	return layout.NewTree(nodes...)
}
