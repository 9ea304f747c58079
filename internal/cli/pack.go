package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmellor/panelize/pkg/arrange"
	"github.com/jmellor/panelize/pkg/figure"
	"github.com/jmellor/panelize/pkg/picture"
)

func newPackCmd() *cobra.Command {
	var (
		output     string
		width      int
		sheetWidth float64
		filter     string
	)

	cmd := &cobra.Command{
		Use:   "pack <image>...",
		Short: "Arrange loose images onto a fixed-width contact sheet",
		Long: `Pack places the images onto a sheet in the given order, flowing left to
right at native size and wrapping to a new row when the sheet width is
reached, then renders the sheet as one image.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			resample, err := picture.ParseFilter(filter)
			if err != nil {
				return err
			}

			track := newProgress(logger)
			sp := newSpinnerWithContext(ctx, fmt.Sprintf("loading %d images", len(args)))
			sp.Start()

			boxes := make([]arrange.Box, 0, len(args))
			for _, path := range args {
				pic, err := picture.Load(path)
				if err != nil {
					sp.StopWithError(err.Error())
					return err
				}
				logger.Debug("loaded image", "path", path,
					"size", fmt.Sprintf("%dx%d", pic.Width(), pic.Height()))
				boxes = append(boxes, arrange.Box{
					W:      float64(pic.Width()),
					H:      float64(pic.Height()),
					Name:   pic.Stem(),
					Source: figure.ImageSource(pic.Img, resample),
				})
			}
			sp.Stop()

			sheet, err := arrange.Fill(boxes, sheetWidth)
			if err != nil {
				return err
			}
			tree, err := sheet.Tree()
			if err != nil {
				return err
			}
			img, err := figure.Rasterize(tree, width)
			if err != nil {
				return err
			}
			if err := picture.Save(output, img); err != nil {
				return err
			}

			track.done(fmt.Sprintf("packed %d images", len(args)))
			printSuccess("%s %s", output, StyleDim.Render(fmt.Sprintf(
				"(%d rows, %dx%d)", len(sheet.Rows), img.Bounds().Dx(), img.Bounds().Dy())))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "sheet.png", "output file")
	cmd.Flags().IntVarP(&width, "width", "w", 2000, "output width in pixels")
	cmd.Flags().Float64Var(&sheetWidth, "sheet-width", 3000, "sheet width in native pixels before scaling")
	cmd.Flags().StringVar(&filter, "filter", "", "resize filter: nearest, box, linear, cubic, lanczos")

	return cmd
}
