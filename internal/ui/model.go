// Package ui is the interactive terminal front end of the to-do list.
package ui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/task"
)

// BlankNotice is shown when an empty task is submitted.
const BlankNotice = "You must write something!"

type focus int

const (
	focusInput focus = iota
	focusList
)

// ghost is a deleted row kept on screen until its delay runs out. The task is
// already gone from the Manager.
type ghost struct {
	id    int
	index int
	task  task.Task
}

type ghostExpiredMsg struct{ id int }

// Model is the bubbletea model. Every change goes through the Manager and
// the view is redrawn from Manager.Tasks().
type Model struct {
	ctx   context.Context
	mgr   *task.Manager
	delay time.Duration

	input   textinput.Model
	focus   focus
	editing int // index being edited, -1 when adding
	cursor  int
	status  string

	ghosts    []ghost
	nextGhost int
}

// New creates a Model over mgr. delay is how long deleted rows stay visible.
func New(ctx context.Context, mgr *task.Manager, delay time.Duration) Model {
	ti := textinput.New()
	ti.Placeholder = "Add your text"
	ti.CharLimit = 0 // task text has no size bound
	ti.Width = 50
	ti.Focus()

	return Model{
		ctx:     ctx,
		mgr:     mgr,
		delay:   delay,
		input:   ti,
		focus:   focusInput,
		editing: -1,
	}
}

// Run starts the terminal UI and blocks until the user quits or ctx is done.
func Run(ctx context.Context, mgr *task.Manager, delay time.Duration) error {
	p := tea.NewProgram(New(ctx, mgr, delay), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	case ghostExpiredMsg:
		m.dropGhost(msg.id)
	case tea.WindowSizeMsg:
		if msg.Width > 10 {
			m.input.Width = msg.Width - 10
		}
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.editing >= 0 {
			return m.finishEdit(), nil
		}
		return m.submitAdd(), nil
	case "esc":
		if m.editing >= 0 {
			m.editing = -1
			m.input.SetValue("")
			m.status = "Edit cancelled"
		}
		return m.focusOn(focusList), nil
	case "tab":
		if m.editing >= 0 {
			return m, nil
		}
		return m.focusOn(focusList), nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.mgr.Len()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab", "a", "i":
		return m.focusOn(focusInput), textinput.Blink
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < n-1 {
			m.cursor++
		}
	case " ", "x":
		if n > 0 {
			m.apply(task.Toggle(m.cursor), "")
		}
	case "d":
		if n > 0 {
			return m.deleteAtCursor()
		}
	case "e":
		if n > 0 {
			m.editing = m.cursor
			m.input.SetValue(m.mgr.Tasks()[m.cursor].Text)
			m.input.CursorEnd()
			m.status = "Editing task, enter to save, esc to cancel"
			return m.focusOn(focusInput), textinput.Blink
		}
	}
	return m, nil
}

func (m Model) submitAdd() Model {
	err := m.mgr.Apply(m.ctx, task.Add(m.input.Value()))
	switch {
	case errors.Is(err, task.ErrBlankText):
		m.status = BlankNotice
	case err != nil:
		m.status = errorStatus(err)
	default:
		m.input.SetValue("")
		m.cursor = m.mgr.Len() - 1
		m.status = "Added"
	}
	return m
}

func (m Model) finishEdit() Model {
	index := m.editing
	m.editing = -1
	err := m.mgr.Apply(m.ctx, task.Edit(index, m.input.Value()))
	m.input.SetValue("")
	switch {
	case errors.Is(err, task.ErrBlankText):
		// A blank edit leaves the task as it was.
		m.status = ""
	case err != nil:
		m.status = errorStatus(err)
	default:
		m.status = "Saved"
	}
	return m.focusOn(focusList)
}

func (m Model) deleteAtCursor() (tea.Model, tea.Cmd) {
	index := m.cursor
	removed := m.mgr.Tasks()[index]
	if !m.apply(task.Delete(index), "Deleted") {
		return m, nil
	}
	if n := m.mgr.Len(); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	}
	if n := m.mgr.Len(); n == 0 {
		m.cursor = 0
	}
	if m.delay <= 0 {
		return m, nil
	}

	id := m.nextGhost
	m.nextGhost++
	m.ghosts = append(m.ghosts, ghost{id: id, index: index, task: removed})
	return m, tea.Tick(m.delay, func(time.Time) tea.Msg {
		return ghostExpiredMsg{id: id}
	})
}

// apply runs an intent and records the outcome in the status line.
func (m *Model) apply(in task.Intent, okStatus string) bool {
	if err := m.mgr.Apply(m.ctx, in); err != nil {
		m.status = errorStatus(err)
		return false
	}
	m.status = okStatus
	return true
}

func (m *Model) dropGhost(id int) {
	for i, g := range m.ghosts {
		if g.id == id {
			m.ghosts = append(m.ghosts[:i], m.ghosts[i+1:]...)
			return
		}
	}
}

func (m Model) focusOn(f focus) Model {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	return m
}

func errorStatus(err error) string {
	return fmt.Sprintf("error: %v", err)
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("To-Do List"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	tasks := m.mgr.Tasks()
	ghosts := append([]ghost(nil), m.ghosts...)
	sort.SliceStable(ghosts, func(i, j int) bool { return ghosts[i].index < ghosts[j].index })

	if len(tasks) == 0 && len(ghosts) == 0 {
		b.WriteString(helpStyle.Render("  nothing to do"))
		b.WriteString("\n")
	}
	g := 0
	for i := 0; i <= len(tasks); i++ {
		for g < len(ghosts) && (ghosts[g].index <= i || i == len(tasks)) {
			b.WriteString("      ")
			b.WriteString(removingStyle.Render(ghosts[g].task.Text))
			b.WriteString("\n")
			g++
		}
		if i < len(tasks) {
			b.WriteString(m.renderRow(i, tasks[i]))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.helpLine()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderRow(i int, t task.Task) string {
	pointer := "  "
	if m.focus == focusList && i == m.cursor {
		pointer = cursorStyle.Render("> ")
	}
	mark := "[ ]"
	text := t.Text
	if t.Completed {
		mark = "[x]"
		text = doneStyle.Render(text)
	}
	return fmt.Sprintf("%s%s %s", pointer, mark, text)
}

func (m Model) helpLine() string {
	switch {
	case m.editing >= 0:
		return "enter save • esc cancel"
	case m.focus == focusInput:
		return "enter add • tab list • ctrl+c quit"
	default:
		return "↑/k ↓/j move • space toggle • e edit • d delete • tab input • q quit"
	}
}
