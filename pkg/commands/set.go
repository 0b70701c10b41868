package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cosmic36/pkg/commands/options"
	"tableflip.dev/cosmic36/pkg/runner/set"
)

func addSet(topLevel *cobra.Command) {
	so := &options.SetOptions{}

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings",
		Example: `
cosmic36 set --dob 1990-04-16
cosmic36 set --mode local --reminders --remind-at 08:30
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			s := set.Set{
				Service: svc,
				Patch:   so.Patch(cmd),
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddSetArgs(cmd, so)
	topLevel.AddCommand(cmd)
}
