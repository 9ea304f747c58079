// Package spec defines the figure description consumed by the tree builder
// and parses it from YAML or TOML configuration files.
//
// A description is a nested Row/Col structure whose leaves name panel images.
// The YAML form follows the classic figure-composer shape:
//
//	- Row:
//	    - /path/one.png
//	    - Col:
//	        - /path/two.png
//	        - /path/three.png
//	    - /path/four.png:
//	        text: "d)"
//	        pos: "(0.05, 0.05)"
//	    - options:
//	        labels: "{a})"
//
// The TOML form spells the same structure with explicit tables (see
// ParseTOML).
package spec

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Direction is the stacking direction of a branch.
type Direction int

const (
	// Row stacks entries left to right.
	Row Direction = iota
	// Col stacks entries top to bottom.
	Col
)

func (d Direction) String() string {
	if d == Col {
		return "Col"
	}
	return "Row"
}

// Branch is one Row or Col level of the description.
type Branch struct {
	Dir     Direction
	Entries []Entry
	Opts    Options
}

// Entry is a sum type: exactly one of Panel or Branch is set.
type Entry struct {
	Panel  *Panel
	Branch *Branch
}

// Panel is a leaf naming one image, with an optional label override.
type Panel struct {
	Path  string
	Label *Label
}

// Label carries per-panel annotation overrides from the configuration.
// Unset fields inherit the figure defaults.
type Label struct {
	Text   string
	PosX   float64
	PosY   float64
	HasPos bool
	Colour string // hex or named colour
	Size   float64
}

// Options are per-level settings.
type Options struct {
	YSize       int    // stacking target height for rows
	XSize       int    // stacking target width for columns
	LabelFormat string // default label template, e.g. "{a})"
}

// Panels counts the leaves under the branch.
func (b *Branch) Panels() int {
	n := 0
	for _, e := range b.Entries {
		if e.Panel != nil {
			n++
		} else if e.Branch != nil {
			n += e.Branch.Panels()
		}
	}
	return n
}

// ParseFile reads and parses a configuration file, choosing the format from
// the extension: .toml is parsed as TOML, everything else as YAML.
func ParseFile(path string) (*Branch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ParseTOML(data)
	}
	return ParseYAML(data)
}

// parsePos reads a "(x, y)" pair of relative coordinates.
func parsePos(s string) (x, y float64, err error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(trimmed, "(")
	trimmed = strings.TrimSuffix(trimmed, ")")
	parts := strings.Split(trimmed, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid label position %q: expected \"(x, y)\"", s)
	}
	x, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid label position %q: %w", s, err)
	}
	y, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid label position %q: %w", s, err)
	}
	return x, y, nil
}
