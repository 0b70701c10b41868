// Package review lists journal entries across cycles with filters and
// search, and supports in-place edits by position.
package review

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/cosmic36/pkg/app"
	"tableflip.dev/cosmic36/pkg/printers"
	"tableflip.dev/cosmic36/pkg/review"
)

type Review struct {
	Service *app.Service

	Scope review.Scope
	Kinds map[review.Kind]bool
	Query string

	// Edit rewrites one entry instead of listing: the item is addressed by
	// store key, day, and kind.
	Edit     bool
	StoreKey string
	Day      int
	Kind     review.Kind
	Text     string
}

func (r *Review) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("review requires the application service")
	}

	if r.Edit {
		return r.Service.SaveEdit(r.StoreKey, r.Day, r.Kind, r.Text)
	}

	pp := printers.PrettyPrint{}
	if _, ok := r.Service.Meta(); !ok {
		pp.NoDate()
		return nil
	}

	kinds := r.Kinds
	if len(kinds) == 0 {
		kinds = review.AllKinds()
	}
	scope := r.Scope
	if scope == "" {
		scope = review.ScopeCycle
	}

	items := r.Service.Review(scope, kinds, r.Query)

	title := "Review — this cycle"
	if scope == review.ScopeAll {
		title = "Review — all cycles"
	}
	if r.Query != "" {
		title = fmt.Sprintf("%s, matching %q", title, r.Query)
	}
	pp.Title(title)
	pp.Review(items)
	return nil
}
