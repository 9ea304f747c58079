// Package picture handles loading, resizing, and saving of panel images, and
// reading of PNG metadata. It is the only package that touches pixel decoding;
// the layout engine sees images through opaque sources.
package picture

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// Picture is one decoded panel image with its origin path.
type Picture struct {
	Path string
	Img  *image.NRGBA
}

// Load decodes the image at path. Orientation metadata is not applied; panels
// are composed exactly as stored.
func Load(path string) (*Picture, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return &Picture{Path: path, Img: imaging.Clone(img)}, nil
}

// Width returns the native pixel width.
func (p *Picture) Width() int { return p.Img.Bounds().Dx() }

// Height returns the native pixel height.
func (p *Picture) Height() int { return p.Img.Bounds().Dy() }

// Stem returns the file name without directory or extension, used for sketch
// labels.
func (p *Picture) Stem() string {
	base := filepath.Base(p.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Resize scales an image to exactly w×h using the given filter.
func Resize(img image.Image, w, h int, filter imaging.ResampleFilter) *image.NRGBA {
	return imaging.Resize(img, w, h, filter)
}

// Blank returns a white, fully opaque placeholder of the given size.
func Blank(w, h int) *image.NRGBA {
	return imaging.New(w, h, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
}

// Save encodes the image to path, choosing the format from the extension.
func Save(path string, img image.Image) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
