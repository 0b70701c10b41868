package review

import (
	"fmt"
	"strings"
	"time"

	"github.com/muesli/reflow/wordwrap"
)

const exportWidth = 72

var separator = strings.Repeat("-", 60)

// ExportNotes renders the plain-text notes export.
func ExportNotes(items []Item, refDate, mode string, scope Scope, now time.Time) string {
	return render("COSMIC 36 — NOTES EXPORT", items, refDate, mode, scope, now)
}

// ExportClose renders the close-out export.
func ExportClose(items []Item, refDate, mode string, scope Scope, now time.Time) string {
	return render("COSMIC 36 — CLOSE-OUT EXPORT", items, refDate, mode, scope, now)
}

// ExportFull renders every entry family in one document.
func ExportFull(items []Item, refDate, mode string, scope Scope, now time.Time) string {
	return render("COSMIC 36 — FULL EXPORT", items, refDate, mode, scope, now)
}

func render(title string, items []Item, refDate, mode string, scope Scope, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", title)
	fmt.Fprintf(&b, "Exported: %s\n", now.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "DOB: %s\n", orUnset(refDate))
	fmt.Fprintf(&b, "Mode: %s\n", mode)
	fmt.Fprintf(&b, "Scope: %s\n", scope)
	b.WriteString(separator + "\n")

	if len(items) == 0 {
		b.WriteString("\n(no entries)\n")
		return b.String()
	}

	for _, it := range items {
		b.WriteString("\n")
		if it.Kind == KindClose {
			fmt.Fprintf(&b, "Cycle %d — Close-out\n", it.CycleIndex)
		} else {
			fmt.Fprintf(&b, "Cycle %d — Day %d (%s) [%s]\n",
				it.CycleIndex, it.Day, strings.ToUpper(it.Badge), it.Kind)
		}
		b.WriteString(wordwrap.String(it.Full, exportWidth))
		b.WriteString("\n")
		b.WriteString(separator + "\n")
	}
	return b.String()
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
