package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cosmic36/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	var (
		pattern bool
		width   int
	)

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show store location or the pattern help",
		Example: `
cosmic36 info
cosmic36 info --pattern
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			i := info.Info{Pattern: pattern, Width: width}
			err := i.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&pattern, "pattern", false, "Explain the 36-day pattern.")
	cmd.Flags().IntVar(&width, "width", 0, "Wrap width for the pattern help.")

	topLevel.AddCommand(cmd)
}
