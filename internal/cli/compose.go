package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmellor/panelize/pkg/cache"
	"github.com/jmellor/panelize/pkg/pipeline"
)

func newComposeCmd() *cobra.Command {
	var (
		output          string
		width           int
		format          string
		filter          string
		dry             bool
		labels          string
		placeholderSize int
		noPlaceholder   bool
		cacheDir        string
		refresh         bool
	)

	cmd := &cobra.Command{
		Use:   "compose <config>",
		Short: "Render a figure from a YAML or TOML description",
		Long: `Compose reads a figure description, loads the referenced panel images,
stacks them into the described rows and columns, and writes the rendered
figure. With --dry the panels are not loaded; an outline sketch of the layout
is written instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			configPath := args[0]

			config, err := os.ReadFile(configPath)
			if err != nil {
				return err
			}

			if format == "" {
				format = formatFromPath(output)
			}
			if output == "" {
				output = outputName(configPath, format, dry)
			}

			store := cache.NewNullCache()
			if cacheDir != "" {
				if store, err = cache.NewFileCache(cacheDir); err != nil {
					return fmt.Errorf("open cache: %w", err)
				}
			}
			runner := pipeline.NewRunner(store, logger)
			defer runner.Close()

			opts := pipeline.Options{
				ConfigFormat:      configFormat(configPath),
				BaseDir:           filepath.Dir(configPath),
				Width:             width,
				Format:            format,
				Dry:               dry,
				Filter:            filter,
				PlaceholderWidth:  placeholderSize,
				PlaceholderHeight: placeholderSize,
				Strict:            noPlaceholder,
				LabelFormat:       labels,
				Refresh:           refresh,
				Logger:            logger,
			}

			track := newProgress(logger)
			sp := newSpinnerWithContext(ctx, "composing "+filepath.Base(configPath))
			sp.Start()
			res, err := runner.Execute(ctx, config, opts)
			if err != nil {
				sp.StopWithError(err.Error())
				return err
			}
			sp.Stop()

			if err := os.WriteFile(output, res.Artifact, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			track.done(fmt.Sprintf("wrote %s", output))

			if res.CacheHit {
				printSuccess("%s %s", output, StyleDim.Render("(cached)"))
			} else {
				printSuccess("%s %s", output, StyleDim.Render(fmt.Sprintf(
					"(%d panels, %dx%d)",
					res.Stats.PanelCount, res.Stats.OutputWidth, res.Stats.OutputHeight)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: config name with the format extension)")
	cmd.Flags().IntVarP(&width, "width", "w", pipeline.DefaultWidth, "output width in pixels")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: png, jpeg, tiff, bmp (default: from output name, else png)")
	cmd.Flags().StringVar(&filter, "filter", "", "resize filter: nearest, box, linear, cubic, lanczos")
	cmd.Flags().BoolVar(&dry, "dry", false, "render an outline sketch instead of loading panels")
	cmd.Flags().StringVar(&labels, "labels", "", `label template for all panels, e.g. "{a})" or "{n}."`)
	cmd.Flags().IntVar(&placeholderSize, "placeholder-size", pipeline.DefaultPlaceholderSize, "edge length of placeholders for missing panels")
	cmd.Flags().BoolVar(&noPlaceholder, "no-placeholder", false, "fail on missing panel images instead of substituting placeholders")
	cmd.Flags().StringVar(&cacheDir, "cache", "", "directory for the artifact cache (disabled when empty)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even if a cached artifact exists")

	return cmd
}

// configFormat maps a config file extension to the pipeline's format name.
func configFormat(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return "toml"
	}
	return "yaml"
}

// formatFromPath derives the output format from a file name, defaulting to
// png.
func formatFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext != "" && pipeline.ValidateFormat(ext) == nil {
		return ext
	}
	return pipeline.FormatPNG
}

// outputName derives the default output file name from the config name.
func outputName(configPath, format string, dry bool) string {
	base := filepath.Base(configPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if dry {
		stem += "-sketch"
	}
	return stem + "." + format
}
