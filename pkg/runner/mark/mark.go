// Package mark sets or clears today's done flag.
package mark

import (
	"context"
	"errors"

	"github.com/fatih/color"

	"tableflip.dev/cosmic36/pkg/app"
	"tableflip.dev/cosmic36/pkg/printers"
)

type Mark struct {
	Service *app.Service

	// Undo clears the flag instead of setting it.
	Undo bool
	// Day targets a position other than today; zero means today.
	Day int
}

func (m *Mark) Do(ctx context.Context) error {
	if m.Service == nil {
		return errors.New("mark requires the application service")
	}

	err := m.Service.SetDoneOn(m.Day, !m.Undo)
	if errors.Is(err, app.ErrNoDate) {
		pp := printers.PrettyPrint{}
		pp.NoDate()
		return nil
	}
	if err != nil {
		return err
	}

	if m.Undo {
		_, _ = color.New(color.Faint).Println("Unmarked")
		return nil
	}
	_, _ = color.New(color.FgGreen, color.Bold).Println("Marked ✓")
	return nil
}
