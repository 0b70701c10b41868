// Package today renders the day card for the current cycle position.
package today

import (
	"context"
	"errors"

	"tableflip.dev/cosmic36/pkg/app"
	"tableflip.dev/cosmic36/pkg/printers"
)

type Today struct {
	Service *app.Service

	// ShowStrip adds the 36-position cycle strip under the card.
	ShowStrip bool
	// ShowMetrics adds the perspective panel.
	ShowMetrics bool
	// ShowStarts adds the next pattern start windows.
	ShowStarts bool
}

func (t *Today) Do(ctx context.Context) error {
	if t.Service == nil {
		return errors.New("today requires the application service")
	}

	pp := printers.PrettyPrint{}
	view, ok := t.Service.Today()
	if !ok {
		pp.NoDate()
		return nil
	}

	pp.DayCard(view)

	if t.ShowStrip {
		pp.NewLine()
		if rec, ok := t.Service.Current(); ok {
			pp.CycleStrip(rec, view.Meta.DayInCycle)
		}
	}
	if t.ShowStarts {
		pp.NewLine()
		day1, day18, ok := t.Service.PatternStarts()
		if ok {
			pp.PatternStarts(day1, day18)
		}
	}
	if t.ShowMetrics {
		pp.NewLine()
		pp.Metrics(view)
	}
	return nil
}
