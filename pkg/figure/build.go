package figure

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/jmellor/panelize/pkg/annotate"
	"github.com/jmellor/panelize/pkg/layout"
	"github.com/jmellor/panelize/pkg/picture"
	"github.com/jmellor/panelize/pkg/spec"
)

// Relative position of generated labels inside a panel.
const (
	defaultLabelX = 0.05
	defaultLabelY = 0.05
)

// BuildOptions control how a description becomes a layout tree.
type BuildOptions struct {
	// BaseDir resolves relative panel paths, typically the directory of
	// the configuration file. Empty means the working directory.
	BaseDir string

	// PlaceholderWidth and PlaceholderHeight size the blank region used
	// when a panel image is missing.
	PlaceholderWidth  int
	PlaceholderHeight int

	// Strict turns missing panel images into errors instead of
	// placeholders.
	Strict bool

	// Filter is the resampling filter for panel resizing. The zero value
	// selects the package default.
	Filter imaging.ResampleFilter

	// LabelFormat enables generated labels ("{n}.", "{a})", …) when the
	// description itself does not configure one. Empty together with no
	// configured format means panels stay unlabelled unless individually
	// overridden.
	LabelFormat string

	// Logger receives per-panel progress. Nil discards.
	Logger *log.Logger
}

func (o *BuildOptions) defaults() {
	if o.PlaceholderWidth <= 0 {
		o.PlaceholderWidth = 500
	}
	if o.PlaceholderHeight <= 0 {
		o.PlaceholderHeight = 500
	}
	if o.Filter.Support == 0 {
		o.Filter = picture.DefaultFilter
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// builder carries build state across the recursive descent. The label
// sequence is shared by the whole figure so generated labels number panels in
// depth-first leaf order regardless of nesting.
type builder struct {
	opts BuildOptions
	seq  *annotate.Sequence
}

// Build resolves a figure description into a positioned layout tree: every
// panel image is loaded (or replaced by a placeholder), labels are attached,
// and the Row/Col structure is folded into stacked regions. The returned tree
// starts at the origin and is ready for rasterization.
func Build(root *spec.Branch, opts BuildOptions) (*layout.Tree, error) {
	opts.defaults()

	b := &builder{opts: opts}
	format := root.Opts.LabelFormat
	if format == "" {
		format = opts.LabelFormat
	}
	if format != "" {
		b.seq = annotate.NewSequence(format)
	}

	tree, err := b.branch(root)
	if err != nil {
		return nil, err
	}
	layout.Normalize(tree)
	return tree, nil
}

func (b *builder) branch(br *spec.Branch) (*layout.Tree, error) {
	nodes := make([]layout.Node, 0, len(br.Entries))
	for _, e := range br.Entries {
		var (
			n   layout.Node
			err error
		)
		switch {
		case e.Panel != nil:
			n, err = b.panel(e.Panel)
		case e.Branch != nil:
			n, err = b.branch(e.Branch)
		default:
			err = fmt.Errorf("figure: empty entry in %s", br.Dir)
		}
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}

	var (
		tree *layout.Tree
		err  error
	)
	if br.Dir == spec.Col {
		tree, err = layout.MergeCol(nodes)
	} else {
		tree, err = layout.MergeRow(nodes)
	}
	if err != nil {
		return nil, err
	}

	// Per-level size targets only set the pre-raster working scale; the
	// final rescale to the output width happens at rasterization.
	if br.Dir == spec.Row && br.Opts.YSize > 0 {
		tree.Rescale(float64(br.Opts.YSize) / layout.HeightRange(tree))
	}
	if br.Dir == spec.Col && br.Opts.XSize > 0 {
		tree.Rescale(float64(br.Opts.XSize) / layout.WidthRange(tree))
	}
	return tree, nil
}

func (b *builder) panel(p *spec.Panel) (*layout.Region, error) {
	path := p.Path
	if b.opts.BaseDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(b.opts.BaseDir, path)
	}

	var region *layout.Region
	pic, err := picture.Load(path)
	switch {
	case err == nil:
		region, err = layout.NewRegion(float64(pic.Width()), float64(pic.Height()))
		if err != nil {
			return nil, fmt.Errorf("panel %s: %w", path, err)
		}
		region.Name = pic.Stem()
		region.Source = &panelSource{img: pic.Img, filter: b.opts.Filter}
		b.opts.Logger.Debug("loaded panel", "path", path, "size", fmt.Sprintf("%dx%d", pic.Width(), pic.Height()))

	case b.opts.Strict:
		return nil, fmt.Errorf("%w: %s: %v", ErrMissingPanel, path, err)

	default:
		b.opts.Logger.Warn("panel image missing, inserting placeholder", "path", path)
		region, err = layout.NewRegion(float64(b.opts.PlaceholderWidth), float64(b.opts.PlaceholderHeight))
		if err != nil {
			return nil, err
		}
		region.Name = stem(path)
	}

	label, err := b.label(p)
	if err != nil {
		return nil, fmt.Errorf("panel %s: %w", path, err)
	}
	region.Label = label
	return region, nil
}

// label resolves the effective annotation for one panel. When a sequence is
// active every panel consumes one entry from it, so an override replaces the
// generated text without shifting the numbering of later panels.
func (b *builder) label(p *spec.Panel) (*annotate.Label, error) {
	var generated string
	if b.seq != nil {
		generated = b.seq.Next()
	}
	if p.Label == nil && b.seq == nil {
		return nil, nil
	}

	text := generated
	x, y := defaultLabelX, defaultLabelY
	var (
		size float64
		col  string
	)
	if o := p.Label; o != nil {
		if o.Text != "" {
			text = o.Text
		}
		if o.HasPos {
			x, y = o.PosX, o.PosY
		}
		size = o.Size
		col = o.Colour
	}

	if text == "" {
		return nil, nil
	}

	l, err := annotate.New(text, x, y)
	if err != nil {
		return nil, err
	}
	l.Size = size
	l.Color, err = annotate.ParseColor(col)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
