package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cosmic36/pkg/runner/today"
)

func addToday(topLevel *cobra.Command) {
	var (
		strip   bool
		metrics bool
		starts  bool
	)

	cmd := &cobra.Command{
		Use:     "today",
		Aliases: []string{"now"},
		Short:   "Show today's day card",
		Example: `
cosmic36 today
cosmic36 today --metrics --starts
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			t := today.Today{
				Service:     svc,
				ShowStrip:   strip,
				ShowMetrics: metrics,
				ShowStarts:  starts,
			}
			err = t.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&strip, "strip", true, "Show the 36-day cycle strip.")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Show perspective metrics.")
	cmd.Flags().BoolVar(&starts, "starts", false, "Show the next pattern start windows.")

	topLevel.AddCommand(cmd)
}
