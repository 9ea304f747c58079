package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmellor/panelize/pkg/picture"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <image>...",
		Short: "Show PNG dimensions, DPI, and embedded comments",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			failed := 0
			for _, path := range args {
				meta, err := picture.ReadMetadata(path)
				if err != nil {
					logger.Error("inspect failed", "path", path, "err", err)
					failed++
					continue
				}

				fmt.Println(StyleTitle.Render(meta.Path))
				printDetail("size: %s", StyleNumber.Render(fmt.Sprintf("%dx%d", meta.Width, meta.Height)))
				if meta.DPI > 0 {
					printDetail("dpi:  %s", StyleNumber.Render(fmt.Sprintf("%d", meta.DPI)))
				} else {
					printDetail("dpi:  not recorded")
				}
				for _, c := range meta.Comments {
					printDetail("text: %s", c)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files could not be inspected", failed, len(args))
			}
			return nil
		},
	}
	return cmd
}
