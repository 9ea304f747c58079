package figure

import (
	"fmt"
	"image"
	"strconv"

	"github.com/fogleman/gg"

	"github.com/jmellor/panelize/pkg/annotate"
	"github.com/jmellor/panelize/pkg/layout"
)

// sketchPad is the margin around the sketched layout, as a fraction of the
// tree's width per side.
const sketchPad = 0.1

// SketchLabel selects what is written inside each sketched rectangle.
type SketchLabel int

const (
	// SketchNone leaves rectangles empty.
	SketchNone SketchLabel = iota
	// SketchIndex numbers rectangles in layout order, starting at zero.
	SketchIndex
	// SketchName writes each panel's name, falling back to its index for
	// anonymous panels.
	SketchName
)

// SketchOptions control the dry-run preview.
type SketchOptions struct {
	// Width is the preview's pixel width including padding, 1200 when zero.
	Width int

	// Labels selects the rectangle captions.
	Labels SketchLabel
}

// Sketch renders the tree as an outline preview: one grey rectangle per
// region on a white canvas, without touching any panel pixels. Unlike
// Rasterize it accepts a tree anywhere in the plane and leaves it unmodified.
func Sketch(tree *layout.Tree, opts SketchOptions) (image.Image, error) {
	if opts.Width == 0 {
		opts.Width = 1200
	}
	if opts.Width < 0 {
		return nil, fmt.Errorf("figure: sketch width must be positive, got %d", opts.Width)
	}

	xMin, yMin := tree.XMin(), tree.YMin()
	wRange, hRange := layout.WidthRange(tree), layout.HeightRange(tree)
	scale := float64(opts.Width) / (wRange * (1 + 2*sketchPad))
	height := roundHalfUp(hRange*scale + 2*sketchPad*wRange*scale)

	dc := gg.NewContext(opts.Width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	// Sketches are best-effort on machines without fonts; gg's built-in
	// face draws the captions small but legible.
	if face, err := annotate.Face(18); err == nil {
		dc.SetFontFace(face)
	}

	index := 0
	err := tree.Walk(func(r *layout.Region) error {
		x := (r.X - xMin + sketchPad*wRange) * scale
		y := (r.Y - yMin + sketchPad*wRange) * scale
		w, h := r.W*scale, r.H*scale

		dc.DrawRectangle(x, y, w, h)
		dc.SetRGBA(0.83, 0.83, 0.83, 0.6)
		dc.FillPreserve()
		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(2)
		dc.Stroke()

		var caption string
		switch opts.Labels {
		case SketchIndex:
			caption = strconv.Itoa(index)
		case SketchName:
			caption = r.Name
			if caption == "" {
				caption = strconv.Itoa(index)
			}
		}
		if caption != "" {
			dc.DrawStringAnchored(caption, x+w/2, y+h/2, 0.5, 0.5)
		}
		index++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}
