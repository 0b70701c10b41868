package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/cosmic36/pkg/runner/remind"
)

func addRemind(topLevel *cobra.Command) {
	var run bool

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Show or run daily reminders",
		Example: `
cosmic36 remind
cosmic36 remind --run
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			r := remind.Remind{Service: svc, Run: run}
			err = r.Do(cmd.Context())
			return oo.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&run, "run", false, "Stay in the foreground and fire reminders.")

	topLevel.AddCommand(cmd)
}
