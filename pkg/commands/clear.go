package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cosmic36/pkg/runner/clear"
)

func addClear(topLevel *cobra.Command) {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear-cycle",
		Short: "Discard every entry in the current cycle",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			c := clear.Clear{Service: svc, Force: force}
			err = c.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt.")

	topLevel.AddCommand(cmd)
}
