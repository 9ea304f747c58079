package spec

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// tomlNode is the recursive TOML form of a description node. A node either
// names a panel (path) or opens a nested level (dir + items).
type tomlNode struct {
	Dir         string     `toml:"dir"`
	Path        string     `toml:"path"`
	Label       *tomlLabel `toml:"label"`
	YSize       int        `toml:"y_size"`
	XSize       int        `toml:"x_size"`
	LabelFormat string     `toml:"label_format"`
	Items       []tomlNode `toml:"items"`
}

type tomlLabel struct {
	Text   string    `toml:"text"`
	Pos    []float64 `toml:"pos"`
	Colour string    `toml:"colour"`
	Size   float64   `toml:"size"`
}

// ParseTOML parses the TOML figure description:
//
//	[figure]
//	dir = "row"
//	label_format = "{a})"
//
//	[[figure.items]]
//	path = "one.png"
//
//	[[figure.items]]
//	dir = "col"
//
//	  [[figure.items.items]]
//	  path = "two.png"
//	  label = { text = "b)", pos = [0.05, 0.05] }
func ParseTOML(data []byte) (*Branch, error) {
	var file struct {
		Figure tomlNode `toml:"figure"`
	}
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("malformed configuration: %w", err)
	}
	return tomlBranch(file.Figure)
}

func tomlBranch(n tomlNode) (*Branch, error) {
	b := &Branch{
		Opts: Options{YSize: n.YSize, XSize: n.XSize, LabelFormat: n.LabelFormat},
	}
	switch n.Dir {
	case "row", "Row":
		b.Dir = Row
	case "col", "Col":
		b.Dir = Col
	default:
		return nil, fmt.Errorf("unknown dir %q (must be \"row\" or \"col\")", n.Dir)
	}
	if len(n.Items) == 0 {
		return nil, fmt.Errorf("%s level has no items", n.Dir)
	}

	for _, item := range n.Items {
		entry, err := tomlEntry(item)
		if err != nil {
			return nil, err
		}
		b.Entries = append(b.Entries, entry)
	}
	return b, nil
}

func tomlEntry(n tomlNode) (Entry, error) {
	switch {
	case n.Path != "" && n.Dir != "":
		return Entry{}, fmt.Errorf("item %q sets both path and dir", n.Path)
	case n.Path != "":
		p := &Panel{Path: n.Path}
		if n.Label != nil {
			l := &Label{Text: n.Label.Text, Colour: n.Label.Colour, Size: n.Label.Size}
			if len(n.Label.Pos) == 2 {
				l.PosX, l.PosY, l.HasPos = n.Label.Pos[0], n.Label.Pos[1], true
			} else if len(n.Label.Pos) != 0 {
				return Entry{}, fmt.Errorf("item %q: label pos must have two elements", n.Path)
			}
			p.Label = l
		}
		return Entry{Panel: p}, nil
	case n.Dir != "":
		sub, err := tomlBranch(n)
		if err != nil {
			return Entry{}, err
		}
		return Entry{Branch: sub}, nil
	default:
		return Entry{}, fmt.Errorf("item must set either path or dir")
	}
}
