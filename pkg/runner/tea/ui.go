package teaui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/textarea"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/cosmic36/pkg/app"
	"tableflip.dev/cosmic36/pkg/autosave"
	"tableflip.dev/cosmic36/pkg/content"
	"tableflip.dev/cosmic36/pkg/cycle"
	"tableflip.dev/cosmic36/pkg/review"
)

// Model states
type mode int

const (
	modeNormal mode = iota
	modeInsert
	modeCommand
	modeHelp
	modeReview
	modeReviewEdit
)

// Editable day-card fields, in display order. The three close-out fields
// share one record group but edit independently.
type field int

const (
	fieldIntention field = iota
	fieldNote
	fieldReflection
	fieldLesson
	fieldCarry
	fieldRelease
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Intention",
	"Note",
	"Reflection",
	"Close: lesson",
	"Close: carry forward",
	"Close: release",
}

// review item for the review list
type reviewItem struct{ it review.Item }

func (r reviewItem) Title() string {
	if r.it.Day == 0 {
		return fmt.Sprintf("Cycle %d — close-out  %s", r.it.CycleIndex, r.it.Preview)
	}
	return fmt.Sprintf("Cycle %d day %2d [%s]  %s", r.it.CycleIndex, r.it.Day, r.it.Kind, r.it.Preview)
}
func (r reviewItem) Description() string { return "" }
func (r reviewItem) FilterValue() string { return r.it.Full }

// Model contains UI state
type Model struct {
	svc  *app.Service
	mode mode

	today   app.Today
	hasDate bool

	fieldIdx field

	editor  textarea.Model
	command textinput.Model

	revList list.Model
	editing *review.Item

	status     string
	saveStatus autosave.Status

	termWidth  int
	termHeight int
}

// New creates a UI model backed by the shared service.
func New(svc *app.Service) Model {
	ta := textarea.New()
	ta.Placeholder = "Type here"
	ta.CharLimit = 0
	ta.ShowLineNumbers = false

	ti := textinput.New()
	ti.Placeholder = "command"
	ti.Prompt = ""
	ti.CharLimit = 128

	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)
	rl := list.New([]list.Item{}, d, 80, 20)
	rl.Title = "Review"
	rl.SetShowHelp(false)
	rl.SetShowStatusBar(false)

	m := Model{
		svc:     svc,
		mode:    modeNormal,
		editor:  ta,
		command: ti,
		revList: rl,
		status:  "NORMAL: j/k move, i edit, x mark, v review, ? help, : commands",
	}
	m.reload()
	return m
}

// Init loads initial data
func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) reload() {
	m.today, m.hasDate = m.svc.Today()
}

// messages
type errMsg struct{ err error }
type saveStatusMsg struct {
	target string
	status autosave.Status
}
type reviewLoadedMsg struct{ items []list.Item }
type storeChangedMsg struct{}

func (m *Model) loadReview() tea.Cmd {
	return func() tea.Msg {
		items := m.svc.Review(review.ScopeAll, review.AllKinds(), "")
		out := make([]list.Item, 0, len(items))
		for _, it := range items {
			out = append(out, reviewItem{it: it})
		}
		return reviewLoadedMsg{out}
	}
}

func (m *Model) fieldValue(f field) string {
	switch f {
	case fieldIntention:
		return m.today.Intention
	case fieldNote:
		return m.today.Note
	case fieldReflection:
		return m.today.Reflection
	case fieldLesson:
		return m.today.Close.Lesson
	case fieldCarry:
		return m.today.Close.Carry
	case fieldRelease:
		return m.today.Close.Release
	}
	return ""
}

// applyField schedules a debounced save of the edited field. Every
// keystroke lands here; the coordinator collapses the burst into one
// commit.
func (m *Model) applyField(f field, text string) error {
	switch f {
	case fieldIntention:
		return m.svc.SetIntention(text)
	case fieldNote:
		return m.svc.SetNote(text)
	case fieldReflection:
		return m.svc.SetReflection(text)
	default:
		c := m.today.Close
		switch f {
		case fieldLesson:
			c.Lesson = text
		case fieldCarry:
			c.Carry = text
		case fieldRelease:
			c.Release = text
		}
		m.today.Close = c
		return m.svc.SetClose(c)
	}
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case errMsg:
		m.status = "ERR: " + msg.err.Error()
	case saveStatusMsg:
		m.saveStatus = msg.status
		if msg.status == autosave.StatusSaved || msg.status == autosave.StatusIdle {
			m.reload()
		}
	case reviewLoadedMsg:
		m.revList.SetItems(msg.items)
	case storeChangedMsg:
		// Our own debounced saves also land here; don't yank state out from
		// under an active edit.
		if m.mode == modeInsert || m.mode == modeReviewEdit {
			break
		}
		if err := m.svc.Reload(); err != nil {
			m.status = "ERR: " + err.Error()
			break
		}
		m.reload()
		if m.mode == modeReview {
			cmds = append(cmds, m.loadReview())
		}
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch m.mode {
	case modeHelp:
		if key := msg.String(); key == "q" || key == "esc" || key == "?" {
			m.mode = modeNormal
		}

	case modeInsert:
		switch msg.String() {
		case "esc":
			// The last keystroke already scheduled a save; flush so leaving
			// the field is durable immediately.
			if err := m.svc.Flush(); err != nil {
				cmds = append(cmds, func() tea.Msg { return errMsg{err} })
			}
			m.mode = modeNormal
			m.editor.Blur()
			m.reload()
			m.status = "Saved"
		default:
			var cmd tea.Cmd
			m.editor, cmd = m.editor.Update(msg)
			cmds = append(cmds, cmd)
			if err := m.applyField(m.fieldIdx, m.editor.Value()); err != nil {
				cmds = append(cmds, func() tea.Msg { return errMsg{err} })
			}
		}

	case modeReviewEdit:
		switch msg.String() {
		case "esc":
			if m.editing != nil {
				err := m.svc.SaveEdit(m.editing.StoreKey, m.editing.Day, m.editing.Kind, m.editor.Value())
				if err != nil {
					cmds = append(cmds, func() tea.Msg { return errMsg{err} })
				} else {
					m.status = "Edited"
				}
			}
			m.mode = modeReview
			m.editing = nil
			m.editor.Blur()
			cmds = append(cmds, m.loadReview())
		default:
			var cmd tea.Cmd
			m.editor, cmd = m.editor.Update(msg)
			cmds = append(cmds, cmd)
		}

	case modeCommand:
		switch msg.String() {
		case "enter":
			input := strings.TrimSpace(m.command.Value())
			m.mode = modeNormal
			m.command.Reset()
			m.command.Blur()
			switch input {
			case "q", "quit", "exit":
				cmds = append(cmds, tea.Quit)
			case "mark":
				m.applyMark(&cmds, true)
			case "unmark":
				m.applyMark(&cmds, false)
			case "clear":
				if err := m.svc.ClearCycle(); err != nil {
					cmds = append(cmds, func() tea.Msg { return errMsg{err} })
				} else {
					m.reload()
					m.status = "Cycle cleared"
				}
			case "":
				// nothing
			default:
				m.status = fmt.Sprintf("Unknown command: %s", input)
			}
		case "esc":
			m.mode = modeNormal
			m.command.Reset()
			m.command.Blur()
			m.status = "Command cancelled"
		default:
			var cmd tea.Cmd
			m.command, cmd = m.command.Update(msg)
			cmds = append(cmds, cmd)
		}

	case modeReview:
		switch msg.String() {
		case "q", "esc":
			if m.revList.FilterState() == list.Filtering {
				var cmd tea.Cmd
				m.revList, cmd = m.revList.Update(msg)
				cmds = append(cmds, cmd)
				break
			}
			m.mode = modeNormal
			m.reload()
		case "enter":
			if m.revList.FilterState() == list.Filtering {
				var cmd tea.Cmd
				m.revList, cmd = m.revList.Update(msg)
				cmds = append(cmds, cmd)
				break
			}
			if sel, ok := m.revList.SelectedItem().(reviewItem); ok {
				if !sel.it.Editable {
					m.status = "Close-out entries are read-only here"
					break
				}
				it := sel.it
				m.editing = &it
				m.mode = modeReviewEdit
				m.editor.SetValue(it.Full)
				m.editor.CursorEnd()
				if cmd := m.editor.Focus(); cmd != nil {
					cmds = append(cmds, cmd)
				}
			}
		default:
			var cmd tea.Cmd
			m.revList, cmd = m.revList.Update(msg)
			cmds = append(cmds, cmd)
		}

	case modeNormal:
		switch msg.String() {
		case ":":
			m.mode = modeCommand
			m.command.Reset()
			if cmd := m.command.Focus(); cmd != nil {
				cmds = append(cmds, cmd)
			}
			cmds = append(cmds, textinput.Blink)
			m.status = "COMMAND: q quit, mark, unmark, clear"
		case "j", "down":
			if m.fieldIdx < fieldCount-1 {
				m.fieldIdx++
			}
		case "k", "up":
			if m.fieldIdx > 0 {
				m.fieldIdx--
			}
		case "i", "enter":
			if !m.hasDate {
				m.status = "Set a date of birth first: cosmic36 set --dob YYYY-MM-DD"
				break
			}
			m.mode = modeInsert
			m.editor.SetValue(m.fieldValue(m.fieldIdx))
			m.editor.CursorEnd()
			if m.fieldIdx == fieldNote && m.editor.Value() == "" {
				m.editor.Placeholder = content.Placeholder(m.today.Meta.DayInCycle)
			} else {
				m.editor.Placeholder = "Type here"
			}
			if cmd := m.editor.Focus(); cmd != nil {
				cmds = append(cmds, cmd)
			}
			m.status = "INSERT: esc saves and exits"
		case "t":
			// drop the day's mindful template into an empty note
			if m.hasDate && m.today.Note == "" {
				text := content.MindfulTemplate(m.today.Meta.DayInCycle)
				if err := m.svc.SetNote(text); err != nil {
					cmds = append(cmds, func() tea.Msg { return errMsg{err} })
				} else {
					m.status = "Template inserted"
				}
			}
		case "x", " ":
			m.applyMark(&cmds, !m.today.Done)
		case "v":
			m.mode = modeReview
			cmds = append(cmds, m.loadReview())
			m.status = "REVIEW: / filter, enter edit, esc back"
		case "r":
			m.reload()
			m.status = "Refreshed"
		case "?":
			m.mode = modeHelp
		case "q":
			m.status = "Use :q to quit"
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) applyMark(cmds *[]tea.Cmd, done bool) {
	if err := m.svc.SetDoneToday(done); err != nil {
		*cmds = append(*cmds, func() tea.Msg { return errMsg{err} })
		return
	}
	m.reload()
	if done {
		m.status = "Marked ✓"
	} else {
		m.status = "Unmarked"
	}
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	phaseStyle    = lipgloss.NewStyle().Italic(true)
	faintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	anchorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	echoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("218"))
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("40")).Bold(true)
)

func roleLabel(r cycle.Role) string {
	switch r {
	case cycle.RoleAnchor:
		return anchorStyle.Render("anchor")
	case cycle.RoleEcho:
		return echoStyle.Render("echo")
	default:
		return faintStyle.Render("light")
	}
}

// View renders the day card, or the review list, plus the status line.
func (m Model) View() string {
	var body string
	switch m.mode {
	case modeReview, modeReviewEdit:
		body = m.revList.View()
		if m.mode == modeReviewEdit {
			body += "\n\nEdit (esc saves):\n" + m.editor.View()
		}
	default:
		body = m.viewDayCard()
	}

	if m.mode == modeHelp {
		help := "Keys: j/k select field, i/enter edit, esc save+exit, x mark today, t insert template, v review (/ filter, enter edit), :mark :unmark :clear :q"
		body += "\n\n" + phaseStyle.Render(help)
	}

	modeStr := map[mode]string{
		modeNormal: "NORMAL", modeInsert: "INSERT", modeCommand: "CMD",
		modeHelp: "HELP", modeReview: "REVIEW", modeReviewEdit: "EDIT",
	}[m.mode]
	status := faintStyle.Render(fmt.Sprintf("[%s] %s · %s", modeStr, m.status, m.saveStatus))

	if m.mode == modeCommand {
		body += "\n\n:" + m.command.View()
	}
	return body + "\n\n" + status
}

func (m Model) viewDayCard() string {
	if !m.hasDate {
		return titleStyle.Render("Cosmic 36") + "\n\n" +
			"No date set. Run `cosmic36 set --dob YYYY-MM-DD` to begin."
	}

	t := m.today
	var b strings.Builder

	header := fmt.Sprintf("Day %d of %d — Cycle %d", t.Meta.DayInCycle, cycle.Days, t.Meta.CycleIndex)
	b.WriteString(titleStyle.Render(header))
	b.WriteString("  " + roleLabel(t.Role))
	if t.Done {
		b.WriteString("  " + doneStyle.Render("✓ marked"))
	}
	b.WriteString("\n")
	b.WriteString(phaseStyle.Render(t.Phase.Name) + "\n\n")
	b.WriteString(content.Guidance(t.Meta.DayInCycle) + "\n")
	if t.Gentle {
		b.WriteString(faintStyle.Render(content.Hint(t.Role)) + "\n")
	}
	b.WriteString("\n")

	for f := field(0); f < fieldCount; f++ {
		if f == fieldNote {
			b.WriteString("  " + faintStyle.Render(content.MindfulPrompt(t.Meta.DayInCycle)) + "\n")
		}
		indicator := "  "
		label := fieldLabels[f]
		if f == m.fieldIdx {
			indicator = selectedStyle.Render("→ ")
			label = selectedStyle.Render(label)
		}
		value := m.fieldValue(f)
		if f == m.fieldIdx && m.mode == modeInsert {
			b.WriteString(indicator + label + ":\n")
			b.WriteString(m.editor.View() + "\n")
			continue
		}
		if value == "" {
			value = faintStyle.Render("(empty)")
		} else if strings.Contains(value, "\n") {
			value = "\n    " + strings.ReplaceAll(value, "\n", "\n    ")
		}
		b.WriteString(fmt.Sprintf("%s%s: %s\n", indicator, label, value))
	}

	b.WriteString("\n" + faintStyle.Render(fmt.Sprintf("Marked this cycle: %d/%d", t.DoneCount, cycle.Days)))
	return b.String()
}

// applySizes recalculates editor and list sizes from the terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	width := m.termWidth - 4
	if width < 20 {
		width = 20
	}
	m.editor.SetWidth(width)
	m.editor.SetHeight(6)

	height := m.termHeight - 6
	if height < 5 {
		height = 5
	}
	m.revList.SetSize(m.termWidth-2, height)
}

// Run launches the Bubble Tea UI. Save-status transitions from the
// coordinator are forwarded into the program so the indicator line tracks
// the debounce lifecycle, and store change events from other processes
// trigger a reload.
func Run(svc *app.Service) error {
	p := tea.NewProgram(New(svc), tea.WithAltScreen())
	svc.Saves.OnStatus = func(target string, s autosave.Status) {
		p.Send(saveStatusMsg{target: target, status: s})
	}
	defer func() { svc.Saves.OnStatus = nil }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if events, err := svc.KV.Watch(ctx); err == nil {
		go func() {
			for range events {
				p.Send(storeChangedMsg{})
			}
		}()
	}

	_, err := p.Run()
	if ferr := svc.Flush(); err == nil {
		err = ferr
	}
	return err
}
