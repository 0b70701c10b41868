package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/cosmic36/pkg/review"
)

// ReviewOptions
type ReviewOptions struct {
	All   bool
	Kinds []string
	Query string
}

func AddReviewArgs(cmd *cobra.Command, ro *ReviewOptions) {
	cmd.Flags().BoolVar(&ro.All, "all", false,
		"Include every cycle, not just the current one.")
	cmd.Flags().StringSliceVar(&ro.Kinds, "kind", nil,
		"Entry kinds to include: note, intention, reflection, close. Repeatable; default all.")
	cmd.Flags().StringVarP(&ro.Query, "query", "q", "",
		"Case-insensitive text filter.")
}

// Scope maps the --all flag to a review scope.
func (ro *ReviewOptions) Scope() review.Scope {
	if ro.All {
		return review.ScopeAll
	}
	return review.ScopeCycle
}

// KindSet parses the --kind values; empty means every kind.
func (ro *ReviewOptions) KindSet() (map[review.Kind]bool, error) {
	if len(ro.Kinds) == 0 {
		return review.AllKinds(), nil
	}
	set := make(map[review.Kind]bool, len(ro.Kinds))
	for _, k := range ro.Kinds {
		switch kind := review.Kind(k); kind {
		case review.KindNote, review.KindIntention, review.KindReflection, review.KindClose:
			set[kind] = true
		default:
			return nil, fmt.Errorf("unknown kind %q (expected note, intention, reflection, or close)", k)
		}
	}
	return set, nil
}

// EditOptions address one entry in the review list.
type EditOptions struct {
	Key  string
	Day  int
	Kind string
}

func AddEditArgs(cmd *cobra.Command, eo *EditOptions) {
	cmd.Flags().StringVar(&eo.Key, "key", "",
		"Store key of the cycle holding the entry.")
	cmd.Flags().IntVar(&eo.Day, "day", 0,
		"Day within the cycle (1-36).")
	cmd.Flags().StringVar(&eo.Kind, "kind", string(review.KindNote),
		"Entry kind: note, intention, or reflection.")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("day")
}
