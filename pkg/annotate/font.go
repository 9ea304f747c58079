package annotate

import (
	"fmt"
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// fontNames are tried in order when locating a system font for labels.
var fontNames = []string{
	"DejaVuSans.ttf",
	"LiberationSans-Regular.ttf",
	"Arial.ttf",
	"Helvetica.ttc",
}

var (
	fontOnce   sync.Once
	parsedFont *truetype.Font
	fontErr    error

	faceMu    sync.Mutex
	faceCache = map[float64]font.Face{}
)

// Face returns a truetype face at the given point size, locating a usable
// system font on first call. Faces are cached per size.
func Face(points float64) (font.Face, error) {
	fontOnce.Do(loadFont)
	if fontErr != nil {
		return nil, fontErr
	}

	faceMu.Lock()
	defer faceMu.Unlock()
	if f, ok := faceCache[points]; ok {
		return f, nil
	}
	f := truetype.NewFace(parsedFont, &truetype.Options{Size: points})
	faceCache[points] = f
	return f, nil
}

func loadFont() {
	for _, name := range fontNames {
		path, err := findfont.Find(name)
		if err != nil {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		f, err := truetype.Parse(data)
		if err != nil {
			continue
		}
		parsedFont = f
		return
	}
	fontErr = fmt.Errorf("annotate: no usable system font found (tried %v)", fontNames)
}
