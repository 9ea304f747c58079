package figure

import (
	"errors"
	"image"
	"image/color"
	"math"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/jmellor/panelize/pkg/layout"
	"github.com/jmellor/panelize/pkg/picture"
	"github.com/jmellor/panelize/pkg/spec"
)

// solidSource fills its region with one colour, standing in for a panel
// image.
type solidSource struct{ c color.NRGBA }

func (s solidSource) Pixels(w, h int) (image.Image, error) {
	return imaging.New(w, h, s.c), nil
}

func solidRegion(t *testing.T, w, h float64, c color.NRGBA) *layout.Region {
	t.Helper()
	r, err := layout.NewRegion(w, h)
	if err != nil {
		t.Fatalf("NewRegion(%g, %g): %v", w, h, err)
	}
	r.Source = solidSource{c: c}
	return r
}

// writePanel saves a solid PNG fixture and returns its path.
func writePanel(t *testing.T, dir, name string, w, h int, c color.NRGBA) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := picture.Save(path, imaging.New(w, h, c)); err != nil {
		t.Fatalf("save fixture %s: %v", name, err)
	}
	return path
}

var (
	red  = color.NRGBA{R: 0xff, A: 0xff}
	blue = color.NRGBA{B: 0xff, A: 0xff}
)

func TestBuild_RowFromImages(t *testing.T) {
	dir := t.TempDir()
	a := writePanel(t, dir, "wide.png", 100, 50, red)
	b := writePanel(t, dir, "square.png", 50, 50, blue)

	tree, err := Build(&spec.Branch{
		Dir: spec.Row,
		Entries: []spec.Entry{
			{Panel: &spec.Panel{Path: a}},
			{Panel: &spec.Panel{Path: b}},
		},
	}, BuildOptions{})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	if got, want := layout.WidthRange(tree), 150.0; got != want {
		t.Errorf("width range = %g, want %g", got, want)
	}
	if got, want := layout.HeightRange(tree), 50.0; got != want {
		t.Errorf("height range = %g, want %g", got, want)
	}

	var names []string
	_ = tree.Walk(func(r *layout.Region) error {
		names = append(names, r.Name)
		if r.Source == nil {
			t.Errorf("panel %q has no source", r.Name)
		}
		return nil
	})
	if got, want := len(names), 2; got != want {
		t.Fatalf("region count = %d, want %d", got, want)
	}
	if names[0] != "wide" || names[1] != "square" {
		t.Errorf("names = %v, want [wide square]", names)
	}
}

func TestBuild_RelativePathsAndNesting(t *testing.T) {
	dir := t.TempDir()
	writePanel(t, dir, "a.png", 50, 50, red)
	writePanel(t, dir, "b.png", 50, 50, blue)
	writePanel(t, dir, "c.png", 50, 50, blue)

	tree, err := Build(&spec.Branch{
		Dir: spec.Row,
		Entries: []spec.Entry{
			{Panel: &spec.Panel{Path: "a.png"}},
			{Branch: &spec.Branch{
				Dir: spec.Col,
				Entries: []spec.Entry{
					{Panel: &spec.Panel{Path: "b.png"}},
					{Panel: &spec.Panel{Path: "c.png"}},
				},
			}},
		},
	}, BuildOptions{BaseDir: dir})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	// The column is 50x100 before stacking and is halved to match the
	// 50-high receiver, landing at 25x50.
	if got, want := layout.WidthRange(tree), 75.0; got != want {
		t.Errorf("width range = %g, want %g", got, want)
	}
	if got, want := layout.HeightRange(tree), 50.0; got != want {
		t.Errorf("height range = %g, want %g", got, want)
	}
}

func TestBuild_PlaceholderForMissingPanel(t *testing.T) {
	tree, err := Build(&spec.Branch{
		Dir:     spec.Row,
		Entries: []spec.Entry{{Panel: &spec.Panel{Path: "/nowhere/gone.png"}}},
	}, BuildOptions{PlaceholderWidth: 300, PlaceholderHeight: 200})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	var regions []*layout.Region
	_ = tree.Walk(func(r *layout.Region) error {
		regions = append(regions, r)
		return nil
	})
	if got, want := len(regions), 1; got != want {
		t.Fatalf("region count = %d, want %d", got, want)
	}
	r := regions[0]
	if r.W != 300 || r.H != 200 {
		t.Errorf("placeholder size = %gx%g, want 300x200", r.W, r.H)
	}
	if r.Source != nil {
		t.Error("placeholder should have a nil source")
	}
	if got, want := r.Name, "gone"; got != want {
		t.Errorf("placeholder name = %q, want %q", got, want)
	}
}

func TestBuild_StrictMissingPanel(t *testing.T) {
	_, err := Build(&spec.Branch{
		Dir:     spec.Row,
		Entries: []spec.Entry{{Panel: &spec.Panel{Path: "/nowhere/gone.png"}}},
	}, BuildOptions{Strict: true})
	if !errors.Is(err, ErrMissingPanel) {
		t.Fatalf("err = %v, want ErrMissingPanel", err)
	}
}

func TestBuild_LabelSequence(t *testing.T) {
	dir := t.TempDir()
	writePanel(t, dir, "a.png", 50, 50, red)
	writePanel(t, dir, "b.png", 50, 50, red)
	writePanel(t, dir, "c.png", 50, 50, red)

	tree, err := Build(&spec.Branch{
		Dir:  spec.Row,
		Opts: spec.Options{LabelFormat: "{a})"},
		Entries: []spec.Entry{
			{Panel: &spec.Panel{Path: "a.png"}},
			{Panel: &spec.Panel{Path: "b.png", Label: &spec.Label{
				Text: "override", PosX: 0.5, PosY: 0.5, HasPos: true, Colour: "red", Size: 30,
			}}},
			{Panel: &spec.Panel{Path: "c.png"}},
		},
	}, BuildOptions{BaseDir: dir})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	var texts []string
	_ = tree.Walk(func(r *layout.Region) error {
		if r.Label == nil {
			t.Fatalf("panel %q should carry a label", r.Name)
		}
		texts = append(texts, r.Label.Text)
		return nil
	})
	// The override replaces the generated text but still consumes one
	// sequence entry, so the third panel stays "c)".
	want := []string{"a)", "override", "c)"}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("label %d = %q, want %q", i, texts[i], want[i])
		}
	}

	var mid *layout.Region
	_ = tree.Walk(func(r *layout.Region) error {
		if r.Name == "b" {
			mid = r
		}
		return nil
	})
	if mid.Label.PosX != 0.5 || mid.Label.PosY != 0.5 {
		t.Errorf("override pos = (%g, %g), want (0.5, 0.5)", mid.Label.PosX, mid.Label.PosY)
	}
	if got, want := mid.Label.Size, 30.0; got != want {
		t.Errorf("override size = %g, want %g", got, want)
	}
}

func TestBuild_NoLabelsByDefault(t *testing.T) {
	dir := t.TempDir()
	writePanel(t, dir, "a.png", 50, 50, red)

	tree, err := Build(&spec.Branch{
		Dir:     spec.Row,
		Entries: []spec.Entry{{Panel: &spec.Panel{Path: "a.png"}}},
	}, BuildOptions{BaseDir: dir})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	_ = tree.Walk(func(r *layout.Region) error {
		if r.Label != nil {
			t.Errorf("panel %q unexpectedly labelled %q", r.Name, r.Label.Text)
		}
		return nil
	})
}

func TestBuild_RowYSizeTarget(t *testing.T) {
	dir := t.TempDir()
	writePanel(t, dir, "a.png", 100, 50, red)

	tree, err := Build(&spec.Branch{
		Dir:     spec.Row,
		Opts:    spec.Options{YSize: 500},
		Entries: []spec.Entry{{Panel: &spec.Panel{Path: "a.png"}}},
	}, BuildOptions{BaseDir: dir})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if got, want := layout.HeightRange(tree), 500.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("height range = %g, want %g", got, want)
	}
	if got, want := layout.WidthRange(tree), 1000.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("width range = %g, want %g", got, want)
	}
}

func TestRasterize_TwoPanelRow(t *testing.T) {
	a := solidRegion(t, 50, 50, red)
	b := solidRegion(t, 50, 50, blue)
	tree, err := layout.MergeRow([]layout.Node{a, b})
	if err != nil {
		t.Fatal(err)
	}

	img, err := Rasterize(tree, 200)
	if err != nil {
		t.Fatalf("Rasterize error: %v", err)
	}
	if got, want := img.Bounds().Dx(), 200; got != want {
		t.Errorf("width = %d, want %d", got, want)
	}
	if got, want := img.Bounds().Dy(), 100; got != want {
		t.Errorf("height = %d, want %d", got, want)
	}
	if got := img.NRGBAAt(50, 50); got != red {
		t.Errorf("left half pixel = %v, want %v", got, red)
	}
	if got := img.NRGBAAt(150, 50); got != blue {
		t.Errorf("right half pixel = %v, want %v", got, blue)
	}
}

func TestRasterize_BlankPlaceholder(t *testing.T) {
	r, err := layout.NewRegion(50, 50)
	if err != nil {
		t.Fatal(err)
	}
	tree, err := layout.NewTree(r)
	if err != nil {
		t.Fatal(err)
	}

	img, err := Rasterize(tree, 100)
	if err != nil {
		t.Fatalf("Rasterize error: %v", err)
	}
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	if got := img.NRGBAAt(50, 50); got != white {
		t.Errorf("placeholder pixel = %v, want white", got)
	}
}

func TestRasterize_RejectsOffOriginTree(t *testing.T) {
	r := solidRegion(t, 50, 50, red)
	tree, err := layout.NewTree(r)
	if err != nil {
		t.Fatal(err)
	}
	tree.ShiftX(10)

	if _, err := Rasterize(tree, 100); !errors.Is(err, ErrNotAtOrigin) {
		t.Fatalf("err = %v, want ErrNotAtOrigin", err)
	}
}

func TestRasterize_RejectsBadWidth(t *testing.T) {
	tree, err := layout.NewTree(solidRegion(t, 50, 50, red))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Rasterize(tree, 0); err == nil {
		t.Fatal("Rasterize(_, 0) should fail")
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{0.4, 0},
		{0.5, 1},
		{1.5, 2},
		{-0.5, 0},
		{-0.6, -1},
	}
	for _, tt := range tests {
		if got := roundHalfUp(tt.in); got != tt.want {
			t.Errorf("roundHalfUp(%g) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSketch_DrawsOutlines(t *testing.T) {
	a := solidRegion(t, 50, 50, red)
	b := solidRegion(t, 50, 50, blue)
	tree, err := layout.MergeRow([]layout.Node{a, b})
	if err != nil {
		t.Fatal(err)
	}

	img, err := Sketch(tree, SketchOptions{Width: 480, Labels: SketchIndex})
	if err != nil {
		t.Fatalf("Sketch error: %v", err)
	}
	if got, want := img.Bounds().Dx(), 480; got != want {
		t.Errorf("width = %d, want %d", got, want)
	}
	// Width covers 100 layout units plus 10 units padding per side, so
	// the 50-unit height plus the same padding lands at 280 pixels.
	if got, want := img.Bounds().Dy(), 280; got != want {
		t.Errorf("height = %d, want %d", got, want)
	}

	// The panel interiors are grey, not white.
	cx, cy := img.Bounds().Dx()/2, img.Bounds().Dy()/2
	r, g, bl, _ := img.At(cx, cy).RGBA()
	if r == 0xffff && g == 0xffff && bl == 0xffff {
		t.Error("sketch centre is still white, nothing was drawn")
	}
}

func TestSketch_LeavesTreeUntouched(t *testing.T) {
	tree, err := layout.MergeRow([]layout.Node{
		solidRegion(t, 50, 50, red),
		solidRegion(t, 50, 50, blue),
	})
	if err != nil {
		t.Fatal(err)
	}
	before := layout.WidthRange(tree)

	if _, err := Sketch(tree, SketchOptions{}); err != nil {
		t.Fatalf("Sketch error: %v", err)
	}
	if got := layout.WidthRange(tree); got != before {
		t.Errorf("width range changed from %g to %g", before, got)
	}
}

func TestRasterize_SourceFailurePropagates(t *testing.T) {
	r, err := layout.NewRegion(50, 50)
	if err != nil {
		t.Fatal(err)
	}
	r.Name = "broken"
	r.Source = failingSource{}
	tree, err := layout.NewTree(r)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Rasterize(tree, 100); err == nil {
		t.Fatal("Rasterize should surface source errors")
	}
}

type failingSource struct{}

func (failingSource) Pixels(w, h int) (image.Image, error) {
	return nil, errors.New("decode failed")
}
