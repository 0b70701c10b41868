package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/cosmic36/pkg/commands/options"
	"tableflip.dev/cosmic36/pkg/review"
	reviewrun "tableflip.dev/cosmic36/pkg/runner/review"
)

func addReview(topLevel *cobra.Command) {
	ro := &options.ReviewOptions{}

	cmd := &cobra.Command{
		Use:   "review",
		Short: "List entries across cycles",
		Example: `
cosmic36 review
cosmic36 review --all --kind note -q breath
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := ro.KindSet()
			if err != nil {
				return err
			}
			svc, err := loadService()
			if err != nil {
				return err
			}
			r := reviewrun.Review{
				Service: svc,
				Scope:   ro.Scope(),
				Kinds:   kinds,
				Query:   ro.Query,
			}
			err = r.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddReviewArgs(cmd, ro)
	addReviewEdit(cmd)
	topLevel.AddCommand(cmd)
}

func addReviewEdit(parent *cobra.Command) {
	eo := &options.EditOptions{}

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Rewrite one entry in place",
		Example: `
cosmic36 review edit --key "1990-04-16|utc|12" --day 3 --kind note new text
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires the replacement text")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := review.Kind(eo.Kind)
			switch kind {
			case review.KindNote, review.KindIntention, review.KindReflection:
			default:
				return errors.New("kind must be note, intention, or reflection")
			}
			svc, err := loadService()
			if err != nil {
				return err
			}
			r := reviewrun.Review{
				Service:  svc,
				Edit:     true,
				StoreKey: eo.Key,
				Day:      eo.Day,
				Kind:     kind,
				Text:     strings.Join(args, " "),
			}
			err = r.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddEditArgs(cmd, eo)
	parent.AddCommand(cmd)
}
