package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/cosmic36/pkg/commands/options"
	"tableflip.dev/cosmic36/pkg/review"
	"tableflip.dev/cosmic36/pkg/runner/write"
)

func addWrite(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write one of today's entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addWriteKind(cmd, review.KindNote, "note", "Write today's note")
	addWriteKind(cmd, review.KindIntention, "intention", "Write today's intention")
	addWriteKind(cmd, review.KindReflection, "reflection", "Write today's reflection")
	addWriteClose(cmd)

	topLevel.AddCommand(cmd)
}

func addWriteKind(parent *cobra.Command, kind review.Kind, use, short string) {
	wo := &options.WriteOptions{}
	var day int

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Example: `
cosmic36 write ` + use + ` steady morning repetition
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 && !(kind == review.KindNote && wo.Template) {
				return errors.New("requires the entry text")
			}
			wo.Message = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			w := write.Write{
				Service:  svc,
				Kind:     kind,
				Text:     wo.Message,
				Day:      day,
				Template: wo.Template,
			}
			err = w.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	cmd.Flags().IntVar(&day, "day", 0, "Write a different day of the current cycle (1-36).")
	if kind == review.KindNote {
		options.AddTemplateArg(cmd, wo)
	}
	parent.AddCommand(cmd)
}

func addWriteClose(parent *cobra.Command) {
	co := &options.CloseOptions{}

	cmd := &cobra.Command{
		Use:   "close",
		Short: "Write the cycle close-out",
		Example: `
cosmic36 write close --lesson "patience" --carry "the morning walk" --release "rushing"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			w := write.Write{
				Service: svc,
				Kind:    review.KindClose,
				Lesson:  co.Lesson,
				Carry:   co.Carry,
				Release: co.Release,
			}
			err = w.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddCloseArgs(cmd, co)
	parent.AddCommand(cmd)
}
