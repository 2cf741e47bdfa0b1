// Package tui is the interactive task list: a Bubble Tea front end over the
// task manager. It renders whatever the manager's derived views return and
// forwards every user intent as a manager call.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/todos/internal/manager"
	"github.com/marcus/todos/internal/models"
)

// mode is the TUI input mode.
type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

// opDoneMsg reports the outcome of a store-backed mutation.
type opDoneMsg struct {
	err error
}

// Model is the Bubble Tea model for the interactive task list.
type Model struct {
	mgr *manager.Manager

	mode   mode
	cursor int
	input  textinput.Model
	width  int
	height int
	err    error
}

// New creates a TUI model over an initialized manager.
func New(mgr *manager.Manager) Model {
	ti := textinput.New()
	ti.CharLimit = 200
	return Model{mgr: mgr, input: ti}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case opDoneMsg:
		m.err = msg.err
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeAdd, modeEdit:
			return m.updateInput(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := m.mgr.Filtered()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case " ":
		if t := m.selected(tasks); t != nil {
			return m, m.mutate(func(ctx context.Context) error {
				return m.mgr.ToggleCompleted(ctx, t.ID)
			})
		}

	case "d":
		if t := m.selected(tasks); t != nil {
			return m, m.mutate(func(ctx context.Context) error {
				return m.mgr.Delete(ctx, t.ID)
			})
		}

	case "a":
		m.mode = modeAdd
		m.input.Placeholder = "What needs to be done?"
		m.input.SetValue("")
		m.input.Focus()

	case "e":
		if t := m.selected(tasks); t != nil {
			m.mgr.StartEdit(t.ID)
			_, draft, _ := m.mgr.Editing()
			m.mode = modeEdit
			m.input.Placeholder = ""
			m.input.SetValue(draft)
			m.input.CursorEnd()
			m.input.Focus()
		}

	case "f":
		m.cycleFilter()
		m.cursor = 0

	case "r":
		return m, m.mutate(m.mgr.Initialize)
	}

	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := m.input.Value()
		editing := m.mode == modeEdit
		m.mode = modeList
		m.input.Blur()

		if editing {
			m.mgr.SetDraft(value)
			return m, m.mutate(m.mgr.SaveEdit)
		}
		return m, m.mutate(func(ctx context.Context) error {
			_, err := m.mgr.Add(ctx, value, "", nil)
			return err
		})

	case "esc":
		if m.mode == modeEdit {
			m.mgr.CancelEdit()
		}
		m.mode = modeList
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	stats := m.mgr.Stats()
	header := fmt.Sprintf(" todos — filter: %s — %d total, %d active, %d done ",
		m.mgr.Filter(), stats.Total, stats.Active, stats.Completed)
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")

	tasks := m.mgr.Filtered()
	if len(tasks) == 0 {
		b.WriteString(subtleStyle.Render("  No tasks yet. Press 'a' to add one."))
		b.WriteString("\n")
	}

	for i, t := range tasks {
		cursor := "  "
		if i == m.cursor && m.mode == modeList {
			cursor = cursorStyle.Render("> ")
		}

		check := "[ ]"
		text := t.Text
		if t.Completed {
			check = "[x]"
			text = doneStyle.Render(text)
		}

		line := fmt.Sprintf("%s%s %s  %s", cursor, check, text, categoryStyle.Render("#"+t.Category))
		if t.DueDate != nil {
			due := "due " + t.DueDate.Format("2006-01-02")
			if m.mgr.Overdue(&t) {
				line += "  " + overdueStyle.Render(due+" (overdue)")
			} else {
				line += "  " + subtleStyle.Render(due)
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	switch m.mode {
	case modeAdd:
		b.WriteString("\nAdd: " + m.input.View() + "\n")
	case modeEdit:
		b.WriteString("\nEdit: " + m.input.View() + "\n")
	}

	if m.err != nil {
		b.WriteString("\n" + errStyle.Render("ERROR: "+m.err.Error()) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("j/k move  space toggle  a add  e edit  d delete  f filter  r refresh  q quit"))
	return b.String()
}

// mutate runs a manager mutation off the event loop and reports its outcome.
func (m Model) mutate(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{err: fn(context.Background())}
	}
}

// cycleFilter advances the category filter through the manager's derived
// category list, wrapping back to "all".
func (m *Model) cycleFilter() {
	cats := m.mgr.Categories()
	current := m.mgr.Filter()
	next := cats[0]
	for i, c := range cats {
		if c == current && i+1 < len(cats) {
			next = cats[i+1]
			break
		}
	}
	m.mgr.SetFilter(next)
}

func (m Model) selected(tasks []models.Task) *models.Task {
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return nil
	}
	return &tasks[m.cursor]
}

func (m *Model) clampCursor() {
	if n := len(m.mgr.Filtered()); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	} else if n == 0 {
		m.cursor = 0
	}
}
