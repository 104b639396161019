// Package tui provides the Bubble Tea review screens.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Item is a single checklist row.
type Item struct {
	Label   string
	Checked bool
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	checkedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Checklist is a Bubble Tea model for toggling a list of items.
type Checklist struct {
	title string
	items []Item

	cursor int
	offset int

	keys keyMap
	help help.Model

	input     textinput.Model
	inputMode bool
	inputErr  string

	width  int
	height int

	done      bool
	cancelled bool
}

// NewChecklist builds a checklist with every label initially set to checked.
func NewChecklist(title string, labels []string, checked bool) *Checklist {
	items := make([]Item, len(labels))
	for i, label := range labels {
		items[i] = Item{Label: label, Checked: checked}
	}
	return NewChecklistItems(title, items)
}

// NewChecklistItems builds a checklist from explicit items.
func NewChecklistItems(title string, items []Item) *Checklist {
	input := textinput.New()
	input.Prompt = "Toggle/Command: "
	input.Placeholder = "1 5 10-15, all, none, done"
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)

	return &Checklist{
		title: title,
		items: append([]Item(nil), items...),
		keys:  defaultKeyMap(),
		help:  help.New(),
		input: input,
	}
}

// Items returns a copy of the current rows.
func (m *Checklist) Items() []Item {
	return append([]Item(nil), m.items...)
}

// Selected returns the labels of checked rows in list order.
func (m *Checklist) Selected() []string {
	var out []string
	for _, it := range m.items {
		if it.Checked {
			out = append(out, it.Label)
		}
	}
	return out
}

// Done reports whether the user confirmed the selection.
func (m *Checklist) Done() bool {
	return m.done
}

// Cancelled reports whether the user left without confirming.
func (m *Checklist) Cancelled() bool {
	return m.cancelled
}

// Init implements tea.Model.
func (m *Checklist) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Checklist) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampOffset()
		return m, nil
	case tea.KeyMsg:
		if m.inputMode {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *Checklist) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.cancelled = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Done):
		m.done = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if len(m.items) > 0 {
			m.items[m.cursor].Checked = !m.items[m.cursor].Checked
		}
	case key.Matches(msg, m.keys.All):
		m.setAll(true)
	case key.Matches(msg, m.keys.None):
		m.setAll(false)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Input):
		m.inputMode = true
		m.inputErr = ""
		m.input.SetValue("")
		return m, m.input.Focus()
	}
	m.clampOffset()
	return m, nil
}

func (m *Checklist) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.cancelled = true
		return m, tea.Quit
	case tea.KeyEsc:
		m.inputMode = false
		m.inputErr = ""
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		quit, err := m.Apply(m.input.Value())
		if err != nil {
			m.inputErr = err.Error()
			return m, nil
		}
		m.inputMode = false
		m.inputErr = ""
		m.input.Blur()
		if quit {
			return m, tea.Quit
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Apply runs a typed command: "all", "none", "done", or numbers and ranges
// to toggle. It reports whether the checklist is finished.
func (m *Checklist) Apply(command string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(command)) {
	case "":
		return false, nil
	case "done":
		m.done = true
		return true, nil
	case "all":
		m.setAll(true)
		return false, nil
	case "none":
		m.setAll(false)
		return false, nil
	}
	indices, err := ParseToggles(command, len(m.items))
	if err != nil {
		return false, err
	}
	for _, idx := range indices {
		m.items[idx].Checked = !m.items[idx].Checked
	}
	return false, nil
}

func (m *Checklist) setAll(checked bool) {
	for i := range m.items {
		m.items[i].Checked = checked
	}
}

// listHeight is the number of rows available for items.
func (m *Checklist) listHeight() int {
	if m.height == 0 {
		return len(m.items)
	}
	// title, blank, blank, status, input/error, help
	h := m.height - 6
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Checklist) clampOffset() {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Checklist) countChecked() int {
	n := 0
	for _, it := range m.items {
		if it.Checked {
			n++
		}
	}
	return n
}

// View implements tea.Model.
func (m *Checklist) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(pendingStyle.Render("Nothing to review."))
		b.WriteString("\n")
	}
	end := m.offset + m.listHeight()
	if end > len(m.items) {
		end = len(m.items)
	}
	numWidth := len(fmt.Sprint(len(m.items)))
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(i, numWidth))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render(fmt.Sprintf("Keeping %d of %d.", m.countChecked(), len(m.items))))
	b.WriteString("\n")
	if m.inputMode {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.inputErr != "" {
		b.WriteString(errorStyle.Render("[Error] " + m.inputErr))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Checklist) renderRow(i, numWidth int) string {
	it := m.items[i]
	marker := "  "
	if i == m.cursor {
		marker = cursorStyle.Render("> ")
	}
	status, style := "[ ]", pendingStyle
	if it.Checked {
		status, style = "[X]", checkedStyle
	}
	prefix := fmt.Sprintf("%*d. %s ", numWidth, i+1, status)
	label := it.Label
	if m.width > 0 {
		avail := m.width - 2 - runewidth.StringWidth(prefix)
		if avail < 1 {
			avail = 1
		}
		label = runewidth.Truncate(label, avail, "…")
	}
	return marker + style.Render(prefix+label)
}
