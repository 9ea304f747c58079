package annotate

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
)

// Apply burns the labels into a copy of the panel image. The input image is
// not modified. Positions are resolved against the image's current pixel
// size, so Apply must run after the panel has been resized to its final
// rectangle.
func Apply(img image.Image, labels ...*Label) (image.Image, error) {
	if len(labels) == 0 {
		return img, nil
	}

	dc := gg.NewContextForImage(img)
	w := float64(img.Bounds().Dx())
	h := float64(img.Bounds().Dy())

	for _, l := range labels {
		face, err := Face(l.size())
		if err != nil {
			return nil, fmt.Errorf("annotate %q: %w", l.Text, err)
		}
		dc.SetFontFace(face)
		dc.SetColor(l.color())
		// Anchor the text's top-left corner at the relative position,
		// matching how the label was previewed in the sketch.
		dc.DrawStringAnchored(l.Text, l.PosX*w, l.PosY*h, 0, 1)
	}
	return dc.Image(), nil
}
