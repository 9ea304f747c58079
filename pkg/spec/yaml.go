package spec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses the YAML figure description.
func ParseYAML(data []byte) (*Branch, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("malformed configuration: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("empty configuration")
	}

	n := root.Content[0]
	// The classic format wraps the top-level Row/Col in a one-element list.
	if n.Kind == yaml.SequenceNode && len(n.Content) == 1 {
		n = n.Content[0]
	}
	return parseYAMLBranch(n)
}

func parseYAMLBranch(n *yaml.Node) (*Branch, error) {
	if n.Kind != yaml.MappingNode || len(n.Content) < 2 {
		return nil, fmt.Errorf("line %d: expected a Row or Col mapping", n.Line)
	}

	key, val := n.Content[0], n.Content[1]
	b := &Branch{}
	switch key.Value {
	case "Row":
		b.Dir = Row
	case "Col":
		b.Dir = Col
	default:
		return nil, fmt.Errorf("line %d: unknown header %q (must be Row or Col)", key.Line, key.Value)
	}
	if val.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: %s must contain a list of entries", key.Line, key.Value)
	}

	for _, item := range val.Content {
		entry, opts, err := parseYAMLEntry(item)
		if err != nil {
			return nil, err
		}
		if opts != nil {
			b.Opts = *opts
			continue
		}
		b.Entries = append(b.Entries, entry)
	}
	if len(b.Entries) == 0 {
		return nil, fmt.Errorf("line %d: %s has no entries", key.Line, key.Value)
	}
	return b, nil
}

// parseYAMLEntry resolves one list item: a plain path, a nested Row/Col, a
// path-with-label-override mapping, or the level's options mapping.
func parseYAMLEntry(n *yaml.Node) (Entry, *Options, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return Entry{Panel: &Panel{Path: n.Value}}, nil, nil

	case yaml.MappingNode:
		if len(n.Content) < 2 {
			return Entry{}, nil, fmt.Errorf("line %d: empty mapping entry", n.Line)
		}
		key := n.Content[0]
		switch key.Value {
		case "Row", "Col":
			sub, err := parseYAMLBranch(n)
			if err != nil {
				return Entry{}, nil, err
			}
			return Entry{Branch: sub}, nil, nil
		case "options":
			opts, err := parseYAMLOptions(n.Content[1])
			return Entry{}, opts, err
		default:
			p, err := parseYAMLPanel(key.Value, n.Content[1])
			if err != nil {
				return Entry{}, nil, err
			}
			return Entry{Panel: p}, nil, nil
		}

	default:
		return Entry{}, nil, fmt.Errorf("line %d: unable to parse entry", n.Line)
	}
}

func parseYAMLOptions(n *yaml.Node) (*Options, error) {
	var raw struct {
		YSize  int    `yaml:"y_size"`
		XSize  int    `yaml:"x_size"`
		Labels string `yaml:"labels"`
	}
	if err := n.Decode(&raw); err != nil {
		return nil, fmt.Errorf("line %d: invalid options: %w", n.Line, err)
	}
	return &Options{YSize: raw.YSize, XSize: raw.XSize, LabelFormat: raw.Labels}, nil
}

func parseYAMLPanel(path string, n *yaml.Node) (*Panel, error) {
	var raw struct {
		Text   string  `yaml:"text"`
		Pos    string  `yaml:"pos"`
		Colour string  `yaml:"colour"`
		Color  string  `yaml:"color"`
		Size   float64 `yaml:"size"`
	}
	if err := n.Decode(&raw); err != nil {
		return nil, fmt.Errorf("line %d: invalid label override for %s: %w", n.Line, path, err)
	}

	l := &Label{Text: raw.Text, Colour: raw.Colour, Size: raw.Size}
	if l.Colour == "" {
		l.Colour = raw.Color
	}
	if raw.Pos != "" {
		x, y, err := parsePos(raw.Pos)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		l.PosX, l.PosY, l.HasPos = x, y, true
	}
	return &Panel{Path: path, Label: l}, nil
}
