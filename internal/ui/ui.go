// Package ui implements the interactive task list on bubbletea.
// It is a pure view layer: it renders the controller's derived state
// and issues intents; all task state lives in the store.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasko/internal/config"
	"tasko/internal/service"
	"tasko/internal/store"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeConfirmDelete
)

// refreshedMsg reports the outcome of the startup reconciliation.
type refreshedMsg struct {
	err error
}

// mutatedMsg reports the outcome of an add/toggle/delete intent.
type mutatedMsg struct {
	action string
	err    error
}

// Model is the bubbletea model for the task list.
type Model struct {
	ctx        context.Context
	st         *store.Store
	keys       config.Keymap
	input      textinput.Model
	cursor     int
	mode       mode
	status     string
	refreshing bool
	pendingDel *service.Task
}

// Run loads the cached snapshot for an immediate render, then starts
// the program; the authoritative remote fetch runs as the Init command.
func Run(ctx context.Context, st *store.Store, cfg *config.Config) error {
	st.LoadCached()

	if f, err := store.ParseFilter(cfg.Settings.DefaultFilter); err == nil {
		st.SetFilter(f)
	}

	ti := textinput.New()
	ti.Placeholder = "Task description"
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		ctx:        ctx,
		st:         st,
		keys:       cfg.Settings.Keys,
		input:      ti,
		mode:       modeList,
		status:     "Press 'a' to add, space to toggle, 'd' to delete, 'f' to filter.",
		refreshing: true,
	}

	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.refreshCmd()
}

func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshedMsg{err: m.st.Refresh(m.ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m.updateAddMode(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg.String())
		default:
			return m.updateListMode(msg.String())
		}
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	case refreshedMsg:
		m.refreshing = false
		if msg.err != nil {
			m.status = "Offline: showing cached tasks"
		} else {
			m.status = "Synced"
		}
		m.cursor = clampCursor(m.cursor, len(m.st.Filtered()))
	case mutatedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("%s failed: %v", msg.action, msg.err)
		} else {
			m.status = capitalize(pastTense(msg.action)) + " task"
		}
		m.cursor = clampCursor(m.cursor, len(m.st.Filtered()))
	}
	return m, nil
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.keys.Cancel:
		m.mode = modeList
		m.input.SetValue("")
		m.status = "Cancelled"
		return m, nil
	case m.keys.Confirm:
		description := strings.TrimSpace(m.input.Value())
		if description == "" {
			m.status = "Description cannot be empty"
			return m, nil
		}
		if m.st.Pending() {
			m.status = "Still saving the previous task"
			return m, nil
		}
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeList
		m.status = "Saving..."
		st := m.st
		ctx := m.ctx
		return m, func() tea.Msg {
			return mutatedMsg{action: "add", err: st.Add(ctx, description)}
		}
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateConfirmDelete(key string) (tea.Model, tea.Cmd) {
	task := m.pendingDel
	m.pendingDel = nil
	m.mode = modeList
	switch key {
	case "y", m.keys.Confirm:
		if task == nil {
			return m, nil
		}
		m.status = "Deleting..."
		st := m.st
		ctx := m.ctx
		id := task.ID
		return m, func() tea.Msg {
			return mutatedMsg{action: "delete", err: st.Delete(ctx, id)}
		}
	default:
		m.status = "Cancelled"
		return m, nil
	}
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	tasks := m.st.Filtered()
	switch key {
	case "ctrl+c", m.keys.Quit:
		return m, tea.Quit
	case m.keys.Down:
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}
	case m.keys.Up:
		if m.cursor > 0 {
			m.cursor--
		}
	case m.keys.Add:
		m.mode = modeAdd
		m.input.Focus()
		m.status = "Add mode: type a description and press Enter"
		return m, textinput.Blink
	case m.keys.Toggle:
		if len(tasks) == 0 {
			return m, nil
		}
		task := tasks[clampCursor(m.cursor, len(tasks))]
		m.status = "Updating..."
		st := m.st
		ctx := m.ctx
		return m, func() tea.Msg {
			return mutatedMsg{action: "toggle", err: st.Toggle(ctx, task.ID)}
		}
	case m.keys.Delete:
		if len(tasks) == 0 {
			return m, nil
		}
		task := tasks[clampCursor(m.cursor, len(tasks))]
		m.pendingDel = &task
		m.mode = modeConfirmDelete
		m.status = fmt.Sprintf("Delete %q? y/n", task.Description)
	case m.keys.Filter:
		m.st.SetFilter(nextFilter(m.st.Filter()))
		m.cursor = clampCursor(m.cursor, len(m.st.Filtered()))
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	title := "tasko"
	if m.refreshing {
		title += " (syncing...)"
	}
	fmt.Fprintf(&b, "%s — filter: %s\n\n", title, m.st.Filter())

	tasks := m.st.Filtered()
	if len(tasks) == 0 {
		b.WriteString("  no tasks\n")
	}
	for i, t := range tasks {
		cursor := "  "
		if i == m.cursor && m.mode == modeList {
			cursor = "> "
		}
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, box, t.Description)
	}

	if m.mode == modeAdd {
		fmt.Fprintf(&b, "\nNew task: %s\n", m.input.View())
	}

	stats := m.st.Stats()
	fmt.Fprintf(&b, "\n%d total, %d active, %d completed", stats.Total, stats.Active, stats.Completed)
	if m.st.Pending() {
		b.WriteString(" • saving")
	}
	fmt.Fprintf(&b, "\n%s\n", m.status)

	return b.String()
}

func nextFilter(f store.Filter) store.Filter {
	switch f {
	case store.FilterAll:
		return store.FilterActive
	case store.FilterActive:
		return store.FilterCompleted
	default:
		return store.FilterAll
	}
}

func clampCursor(cursor, count int) int {
	if count == 0 {
		return 0
	}
	if cursor >= count {
		return count - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

func pastTense(verb string) string {
	if strings.HasSuffix(verb, "e") {
		return verb + "d"
	}
	return verb + "ed"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
