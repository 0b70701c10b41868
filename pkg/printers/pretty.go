package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/cosmic36/pkg/app"
	"tableflip.dev/cosmic36/pkg/content"
	"tableflip.dev/cosmic36/pkg/cycle"
)

type PrettyPrint struct{}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

// NoDate renders the unset state every surface shows identically.
func (pp *PrettyPrint) NoDate() {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Println("No date set. Run `cosmic36 set --dob YYYY-MM-DD` to begin.")
}

func roleColor(role cycle.Role) *color.Color {
	switch role {
	case cycle.RoleAnchor:
		return color.New(color.FgHiYellow, color.Bold)
	case cycle.RoleEcho:
		return color.New(color.FgHiCyan, color.Bold)
	default:
		return color.New(color.Faint)
	}
}

// DayCard renders the full today view: position, phase, guidance, and the
// day's entries.
func (pp *PrettyPrint) DayCard(t app.Today) {
	day := t.Meta.DayInCycle

	pp.Title(fmt.Sprintf("Day %d of %d — Cycle %d", day, cycle.Days, t.Meta.CycleIndex))
	_, _ = roleColor(t.Role).Printf("%s day", t.Role)
	if t.Done {
		_, _ = color.New(color.FgGreen, color.Bold).Print("  ✓ marked")
	}
	fmt.Println("")

	p := color.New(color.Italic)
	_, _ = p.Printf("%s — %s\n", t.Phase.Name, t.Phase.Desc)

	g := color.New(color.FgHiWhite)
	_, _ = g.Println(content.Guidance(day))
	if t.Gentle {
		_, _ = color.New(color.Faint).Println(content.Hint(t.Role))
	}
	_, _ = color.New(color.Faint, color.Italic).Println(content.Insight(day, t.Meta.DaysLived))
	fmt.Println("")

	pp.field("Intention", t.Intention, "")
	_, _ = color.New(color.Faint).Println(content.MindfulPrompt(day))
	pp.field("Note", t.Note, content.Placeholder(day))
	pp.field("Reflection", t.Reflection, "")

	if day == cycle.Days || t.Close.HasContent() {
		b := color.New(color.Bold)
		_, _ = b.Println("Close-out")
		pp.field("Lesson", t.Close.Lesson, "")
		pp.field("Carry", t.Close.Carry, "")
		pp.field("Release", t.Close.Release, "")
	}
}

func (pp *PrettyPrint) field(label, value, placeholder string) {
	b := color.New(color.Bold)
	_, _ = b.Printf("%s: ", label)
	if strings.TrimSpace(value) == "" {
		f := color.New(color.Faint, color.Italic)
		if placeholder != "" {
			_, _ = f.Printf("(empty)\n%s\n", placeholder)
		} else {
			_, _ = f.Println("(empty)")
		}
		return
	}
	fmt.Println(value)
}

// Metrics renders the perspective panel. Not pressure.
func (pp *PrettyPrint) Metrics(t app.Today) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Total days on Earth"), fmt.Sprintf("%d", t.Meta.DaysLived))
	tbl.AddRow(bold.Sprint("Total hours"), fmt.Sprintf("%d", t.Meta.HoursLived))
	tbl.AddRow(bold.Sprint("Marked this cycle"), fmt.Sprintf("%d / %d", t.DoneCount, cycle.Days))
	tbl.AddRow(bold.Sprint("Cycle started"), t.Meta.CycleStart)
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(color.Output, tbl)
}

// PatternStarts renders the next valid entry windows.
func (pp *PrettyPrint) PatternStarts(day1, day18 cycle.PatternStart) {
	sooner := cycle.SoonerPatternStart(day1, day18)

	b := color.New(color.Bold)
	_, _ = b.Println("Next pattern starts")
	for _, ps := range []cycle.PatternStart{day1, day18} {
		line := fmt.Sprintf("Day %-2d  %s  ", ps.Day, ps.Date.Format("2006-01-02"))
		switch ps.InDays {
		case 0:
			line += "today"
		case 1:
			line += "tomorrow"
		default:
			line += fmt.Sprintf("in %d days", ps.InDays)
		}
		if ps.Day == sooner.Day {
			_, _ = color.New(color.FgHiGreen).Println(line)
		} else {
			fmt.Println(line)
		}
	}
}
