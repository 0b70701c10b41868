package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/cosmic36/pkg/cycle"
	"tableflip.dev/cosmic36/pkg/record"
	"tableflip.dev/cosmic36/pkg/review"
)

// CycleStrip renders the 36 positions in rows of six: marked positions
// bold, today underlined, special days in their role color.
func (pp *PrettyPrint) CycleStrip(c *record.Cycle, today int) {
	for pos := 1; pos <= cycle.Days; pos++ {
		printer := roleColor(cycle.DayType(pos))
		if c != nil && c.IsDone(pos) {
			printer = printer.Add(color.Bold)
		} else {
			printer = printer.Add(color.Faint)
		}
		if pos == today {
			printer = printer.Add(color.Underline)
		}
		_, _ = printer.Printf("%2d", pos)
		if pos%6 == 0 {
			fmt.Print("\n")
		} else {
			fmt.Print("  ")
		}
	}
	fmt.Print("\n")
}

// Review renders the entry list as a table, newest first.
func (pp *PrettyPrint) Review(items []review.Item) {
	if len(items) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Println(" no entries")
		return
	}

	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 90
	tbl.AddRow(bold.Sprint("CYCLE"), bold.Sprint("DAY"), bold.Sprint("KIND"), bold.Sprint("BADGE"), bold.Sprint("ENTRY"))
	for _, it := range items {
		day := fmt.Sprintf("%d", it.Day)
		if it.Kind == review.KindClose {
			day = "—"
		}
		tbl.AddRow(
			fmt.Sprintf("%d", it.CycleIndex),
			day,
			string(it.Kind),
			roleColor(cycle.Role(it.Badge)).Sprint(it.Badge),
			it.Preview,
		)
	}
	tbl.RightAlign(0)
	tbl.RightAlign(1)

	_, _ = fmt.Fprintln(color.Output, tbl)
}
