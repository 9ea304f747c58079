package spec

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
- Row:
    - /data/one.png
    - Col:
        - /data/two.png
        - /data/three.png
    - /data/four.png:
        text: "d)"
        pos: "(0.05, 0.9)"
        colour: "#333333"
        size: 40
    - options:
        y_size: 500
        labels: "{a})"
`

func TestParseYAML_NestedStructure(t *testing.T) {
	b, err := ParseYAML([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("ParseYAML error: %v", err)
	}

	if got, want := b.Dir, Row; got != want {
		t.Errorf("Dir = %v, want %v", got, want)
	}
	if got, want := len(b.Entries), 3; got != want {
		t.Fatalf("entry count = %d, want %d", got, want)
	}
	if got, want := b.Panels(), 4; got != want {
		t.Errorf("Panels() = %d, want %d", got, want)
	}
	if got, want := b.Opts.YSize, 500; got != want {
		t.Errorf("Opts.YSize = %d, want %d", got, want)
	}
	if got, want := b.Opts.LabelFormat, "{a})"; got != want {
		t.Errorf("Opts.LabelFormat = %q, want %q", got, want)
	}

	if b.Entries[0].Panel == nil || b.Entries[0].Panel.Path != "/data/one.png" {
		t.Errorf("first entry = %+v, want plain panel /data/one.png", b.Entries[0])
	}

	nested := b.Entries[1].Branch
	if nested == nil {
		t.Fatal("second entry should be a nested branch")
	}
	if got, want := nested.Dir, Col; got != want {
		t.Errorf("nested Dir = %v, want %v", got, want)
	}
	if got, want := len(nested.Entries), 2; got != want {
		t.Errorf("nested entry count = %d, want %d", got, want)
	}

	labelled := b.Entries[2].Panel
	if labelled == nil || labelled.Label == nil {
		t.Fatal("third entry should be a panel with a label override")
	}
	if got, want := labelled.Label.Text, "d)"; got != want {
		t.Errorf("label text = %q, want %q", got, want)
	}
	if !labelled.Label.HasPos || labelled.Label.PosX != 0.05 || labelled.Label.PosY != 0.9 {
		t.Errorf("label pos = (%g, %g), want (0.05, 0.9)", labelled.Label.PosX, labelled.Label.PosY)
	}
	if got, want := labelled.Label.Colour, "#333333"; got != want {
		t.Errorf("label colour = %q, want %q", got, want)
	}
	if got, want := labelled.Label.Size, 40.0; got != want {
		t.Errorf("label size = %g, want %g", got, want)
	}
}

func TestParseYAML_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty document", ""},
		{"unknown header", "- Grid:\n    - a.png\n"},
		{"header without entries", "- Row:\n    - options:\n        y_size: 10\n"},
		{"not yaml", ":\n\t- bad"},
		{"bad label pos", "- Row:\n    - a.png:\n        pos: \"(1, 2, 3)\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseYAML([]byte(tt.in)); err == nil {
				t.Errorf("ParseYAML(%q) should fail", tt.in)
			}
		})
	}
}

const sampleTOML = `
[figure]
dir = "row"
label_format = "{n}."

[[figure.items]]
path = "one.png"

[[figure.items]]
dir = "col"

  [[figure.items.items]]
  path = "two.png"
  label = { text = "b)", pos = [0.1, 0.9] }

  [[figure.items.items]]
  path = "three.png"
`

func TestParseTOML_NestedStructure(t *testing.T) {
	b, err := ParseTOML([]byte(sampleTOML))
	if err != nil {
		t.Fatalf("ParseTOML error: %v", err)
	}

	if got, want := b.Dir, Row; got != want {
		t.Errorf("Dir = %v, want %v", got, want)
	}
	if got, want := b.Opts.LabelFormat, "{n}."; got != want {
		t.Errorf("LabelFormat = %q, want %q", got, want)
	}
	if got, want := b.Panels(), 3; got != want {
		t.Errorf("Panels() = %d, want %d", got, want)
	}

	nested := b.Entries[1].Branch
	if nested == nil {
		t.Fatal("second entry should be a nested branch")
	}
	lbl := nested.Entries[0].Panel.Label
	if lbl == nil || lbl.Text != "b)" || !lbl.HasPos {
		t.Errorf("nested label = %+v, want text b) with pos", lbl)
	}
}

func TestParseTOML_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"missing dir", "[figure]\n[[figure.items]]\npath = \"a.png\"\n"},
		{"no items", "[figure]\ndir = \"row\"\n"},
		{"path and dir", "[figure]\ndir = \"row\"\n[[figure.items]]\npath = \"a.png\"\ndir = \"col\"\n"},
		{"bad pos length", "[figure]\ndir = \"row\"\n[[figure.items]]\npath = \"a.png\"\nlabel = { pos = [0.1] }\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseTOML([]byte(tt.in)); err == nil {
				t.Errorf("ParseTOML should fail")
			}
		})
	}
}

func TestParseFile_DispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "fig.yaml")
	if err := os.WriteFile(yamlPath, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	tomlPath := filepath.Join(dir, "fig.toml")
	if err := os.WriteFile(tomlPath, []byte(sampleTOML), 0o644); err != nil {
		t.Fatal(err)
	}

	yb, err := ParseFile(yamlPath)
	if err != nil {
		t.Fatalf("ParseFile(yaml) error: %v", err)
	}
	if got, want := yb.Panels(), 4; got != want {
		t.Errorf("yaml panels = %d, want %d", got, want)
	}

	tb, err := ParseFile(tomlPath)
	if err != nil {
		t.Fatalf("ParseFile(toml) error: %v", err)
	}
	if got, want := tb.Panels(), 3; got != want {
		t.Errorf("toml panels = %d, want %d", got, want)
	}
	if _, err := ParseFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("ParseFile of missing file should fail")
	}
}
