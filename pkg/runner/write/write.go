// Package write persists a content entry for today: note, intention,
// reflection, or the cycle close-out.
package write

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/cosmic36/pkg/app"
	"tableflip.dev/cosmic36/pkg/content"
	"tableflip.dev/cosmic36/pkg/printers"
	"tableflip.dev/cosmic36/pkg/record"
	"tableflip.dev/cosmic36/pkg/review"
)

type Write struct {
	Service *app.Service

	Kind review.Kind
	Text string

	// Day targets a position in the current cycle other than today; zero
	// means today. Close-out entries are not day-scoped.
	Day int

	// Close-out fields, used when Kind is close.
	Lesson  string
	Carry   string
	Release string

	// Template replaces empty note text with the day's mindful skeleton.
	Template bool
}

func (w *Write) Do(ctx context.Context) error {
	if w.Service == nil {
		return errors.New("write requires the application service")
	}

	if w.Day != 0 && w.Kind != review.KindClose {
		return w.writeDay(ctx)
	}

	var err error
	switch w.Kind {
	case review.KindNote:
		text := w.Text
		if w.Template && text == "" {
			if view, ok := w.Service.Today(); ok {
				text = content.MindfulTemplate(view.Meta.DayInCycle)
			}
		}
		err = w.Service.SetNote(text)
	case review.KindIntention:
		err = w.Service.SetIntention(w.Text)
	case review.KindReflection:
		err = w.Service.SetReflection(w.Text)
	case review.KindClose:
		err = w.Service.SetClose(record.Close{Lesson: w.Lesson, Carry: w.Carry, Release: w.Release})
	default:
		return fmt.Errorf("unknown entry kind %q", w.Kind)
	}
	if errors.Is(err, app.ErrNoDate) {
		pp := printers.PrettyPrint{}
		pp.NoDate()
		return nil
	}
	if err != nil {
		return err
	}

	// One-shot command: the debounce window would outlive the process.
	if err := w.Service.Flush(); err != nil {
		return err
	}

	_, _ = color.New(color.FgGreen).Println("Saved ✓")
	return nil
}

// writeDay edits a past or future position of the current cycle directly,
// the same path the review editor uses.
func (w *Write) writeDay(ctx context.Context) error {
	key, ok := w.Service.CurrentKey()
	if !ok {
		pp := printers.PrettyPrint{}
		pp.NoDate()
		return nil
	}
	if err := w.Service.SaveEdit(key, w.Day, w.Kind, w.Text); err != nil {
		return err
	}
	_, _ = color.New(color.FgGreen).Println("Saved ✓")
	return nil
}
