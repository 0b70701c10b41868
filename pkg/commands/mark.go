package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cosmic36/pkg/runner/mark"
)

func addMark(topLevel *cobra.Command) {
	var (
		undo bool
		day  int
	)

	cmd := &cobra.Command{
		Use:     "mark",
		Aliases: []string{"done"},
		Short:   "Mark today's pattern as done",
		Example: `
cosmic36 mark
cosmic36 mark --undo
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			m := mark.Mark{Service: svc, Undo: undo, Day: day}
			err = m.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Unmark instead.")
	cmd.Flags().IntVar(&day, "day", 0, "Mark a different day of the current cycle (1-36).")

	topLevel.AddCommand(cmd)
}
