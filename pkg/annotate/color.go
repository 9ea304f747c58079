package annotate

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// namedColors are the colour names accepted in configuration files.
var namedColors = map[string]color.Color{
	"black": color.Black,
	"white": color.White,
	"red":   color.NRGBA{R: 0xff, A: 0xff},
	"green": color.NRGBA{G: 0x80, A: 0xff},
	"blue":  color.NRGBA{B: 0xff, A: 0xff},
	"grey":  color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	"gray":  color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
}

// ParseColor reads a label colour: a name from namedColors or a "#rgb" /
// "#rrggbb" hex triplet. An empty string means black.
func ParseColor(s string) (color.Color, error) {
	if s == "" {
		return color.Black, nil
	}
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3:
		return hexColor(s, hex[0:1]+hex[0:1], hex[1:2]+hex[1:2], hex[2:3]+hex[2:3])
	case 6:
		return hexColor(s, hex[0:2], hex[2:4], hex[4:6])
	default:
		return nil, fmt.Errorf("annotate: invalid colour %q", s)
	}
}

func hexColor(orig, r, g, b string) (color.Color, error) {
	rv, err1 := strconv.ParseUint(r, 16, 8)
	gv, err2 := strconv.ParseUint(g, 16, 8)
	bv, err3 := strconv.ParseUint(b, 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, fmt.Errorf("annotate: invalid colour %q", orig)
	}
	return color.NRGBA{R: uint8(rv), G: uint8(gv), B: uint8(bv), A: 0xff}, nil
}
