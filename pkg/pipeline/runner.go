// Package pipeline runs the complete parse → build → render flow behind both
// the CLI and the HTTP service: the figure description is parsed, panel
// images are loaded and stacked into a layout tree, and the tree is
// rasterized (or sketched) into encoded image bytes. Finished artifacts are
// cached by content, keyed on the configuration bytes plus every serialized
// option.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/jmellor/panelize/pkg/cache"
	"github.com/jmellor/panelize/pkg/figure"
	"github.com/jmellor/panelize/pkg/layout"
	"github.com/jmellor/panelize/pkg/picture"
	"github.com/jmellor/panelize/pkg/spec"
)

// TTLArtifact is how long rendered artifacts stay cached.
const TTLArtifact = 24 * time.Hour

// Runner executes composition runs with artifact caching. It is stateless
// apart from the cache and logger, so one Runner serves concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil logger
// falls back to the default logger.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Result is the outcome of one run.
type Result struct {
	// Artifact is the encoded output image.
	Artifact []byte

	// Format is the artifact's encoding, for content-type selection.
	Format string

	// CacheHit reports whether the artifact came straight from the cache.
	CacheHit bool

	// Stats carries sizes and stage timings; empty on cache hits.
	Stats Stats
}

// Stats contains run statistics.
type Stats struct {
	PanelCount   int
	OutputWidth  int
	OutputHeight int
	ParseTime    time.Duration
	BuildTime    time.Duration
	RenderTime   time.Duration
}

// Execute runs the full pipeline over the raw configuration bytes.
func (r *Runner) Execute(ctx context.Context, config []byte, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	key := cache.ArtifactKey(config, opts)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			logger.Debug("artifact cache hit", "key", key)
			return &Result{Artifact: data, Format: opts.Format, CacheHit: true}, nil
		}
	}

	result := &Result{Format: opts.Format}

	parseStart := time.Now()
	branch, err := r.parse(config, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.PanelCount = branch.Panels()
	logger.Info("parsed description",
		"panels", result.Stats.PanelCount,
		"duration", result.Stats.ParseTime)

	buildStart := time.Now()
	tree, err := r.build(branch, opts, logger)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Stats.BuildTime = time.Since(buildStart)
	logger.Info("built layout", "duration", result.Stats.BuildTime)

	renderStart := time.Now()
	img, err := r.render(tree, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Stats.OutputWidth = img.Bounds().Dx()
	result.Stats.OutputHeight = img.Bounds().Dy()

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, encodings[opts.Format]); err != nil {
		return nil, fmt.Errorf("encode %s: %w", opts.Format, err)
	}
	result.Artifact = buf.Bytes()
	result.Stats.RenderTime = time.Since(renderStart)
	logger.Info("rendered figure",
		"size", fmt.Sprintf("%dx%d", result.Stats.OutputWidth, result.Stats.OutputHeight),
		"format", opts.Format,
		"bytes", len(result.Artifact),
		"duration", result.Stats.RenderTime)

	_ = r.Cache.Set(ctx, key, result.Artifact, TTLArtifact)
	return result, nil
}

func (r *Runner) parse(config []byte, opts Options) (*spec.Branch, error) {
	if opts.ConfigFormat == "toml" {
		return spec.ParseTOML(config)
	}
	return spec.ParseYAML(config)
}

func (r *Runner) build(branch *spec.Branch, opts Options, logger *log.Logger) (*layout.Tree, error) {
	filter, err := picture.ParseFilter(opts.Filter)
	if err != nil {
		return nil, err
	}
	return figure.Build(branch, figure.BuildOptions{
		BaseDir:           opts.BaseDir,
		PlaceholderWidth:  opts.PlaceholderWidth,
		PlaceholderHeight: opts.PlaceholderHeight,
		Strict:            opts.Strict,
		Filter:            filter,
		LabelFormat:       opts.LabelFormat,
		Logger:            logger,
	})
}

func (r *Runner) render(tree *layout.Tree, opts Options) (image.Image, error) {
	if opts.Dry {
		return figure.Sketch(tree, figure.SketchOptions{
			Width:  opts.Width,
			Labels: figure.SketchName,
		})
	}
	return figure.Rasterize(tree, opts.Width)
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
