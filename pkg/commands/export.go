package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/cosmic36/pkg/review"
	"tableflip.dev/cosmic36/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	var (
		format string
		all    bool
		output string
	)

	cmd := &cobra.Command{
		Use:       "export [notes|close|full]",
		Short:     "Export entries as plain text",
		ValidArgs: []string{"notes", "close", "full"},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		Example: `
cosmic36 export
cosmic36 export full --all --out cycles.txt
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				format = args[0]
			}
			svc, err := loadService()
			if err != nil {
				return err
			}
			e := export.Export{
				Service: svc,
				Format:  export.Format(format),
			}
			if all {
				e.Scope = review.ScopeAll
			}
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				e.Out = f
			}
			err = e.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&format, "format", "notes", "Document to export: notes, close, or full.")
	cmd.Flags().BoolVar(&all, "all", false, "Include every cycle.")
	cmd.Flags().StringVarP(&output, "out", "o", "", "Write to a file instead of stdout.")

	topLevel.AddCommand(cmd)
}
