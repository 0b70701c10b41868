package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/cosmic36/pkg/app"
	"tableflip.dev/cosmic36/pkg/store"
)

var (
	oo = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "cosmic36",
		Short: base.Wrap80("Track a 36-day personal pattern cycle from the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addToday(topLevel)
	addWrite(topLevel)
	addMark(topLevel)
	addClear(topLevel)
	addReview(topLevel)
	addExport(topLevel)
	addSet(topLevel)
	addRemind(topLevel)
	addInfo(topLevel)
	addUI(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// loadService opens the store and binds the shared application service.
func loadService() (*app.Service, error) {
	kv, err := store.Load(nil)
	if err != nil {
		return nil, err
	}
	return app.New(kv)
}
