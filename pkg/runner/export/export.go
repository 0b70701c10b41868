// Package export renders plain-text export documents.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"tableflip.dev/cosmic36/pkg/app"
	"tableflip.dev/cosmic36/pkg/review"
)

// Format selects the export document.
type Format string

const (
	FormatNotes Format = "notes"
	FormatClose Format = "close"
	FormatFull  Format = "full"
)

type Export struct {
	Service *app.Service

	Format Format
	Scope  review.Scope

	// Out defaults to stdout; a file path flag redirects it upstream.
	Out io.Writer
}

func (e *Export) Do(ctx context.Context) error {
	if e.Service == nil {
		return errors.New("export requires the application service")
	}

	out := e.Out
	if out == nil {
		out = os.Stdout
	}
	scope := e.Scope
	if scope == "" {
		scope = review.ScopeCycle
	}

	st := e.Service.Settings
	now := e.Service.Now()

	var doc string
	switch e.Format {
	case "", FormatNotes:
		items := e.Service.Review(scope, map[review.Kind]bool{review.KindNote: true}, "")
		doc = review.ExportNotes(items, st.DOB, st.Mode, scope, now)
	case FormatClose:
		items := e.Service.Review(scope, map[review.Kind]bool{review.KindClose: true}, "")
		doc = review.ExportClose(items, st.DOB, st.Mode, scope, now)
	case FormatFull:
		items := e.Service.Review(scope, review.AllKinds(), "")
		doc = review.ExportFull(items, st.DOB, st.Mode, scope, now)
	default:
		return fmt.Errorf("unknown export format %q", e.Format)
	}

	_, err := io.WriteString(out, doc)
	return err
}
