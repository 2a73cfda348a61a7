// Package tui renders the names form in a terminal.
//
// The model never mutates form state itself. Key presses are forwarded to a
// view.Controller and the screen is redrawn from the controller's latest
// snapshot whenever it publishes one.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harrylevesque/hellonames/internal/view"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	buttonStyle   = lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("63")).Foreground(lipgloss.Color("230"))
	disabledStyle = lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("238")).Foreground(lipgloss.Color("245"))
	itemStyle     = lipgloss.NewStyle().PaddingLeft(2)
)

// stateChangedMsg tells the model a new snapshot is available.
type stateChangedMsg struct{}

// submitDoneMsg is sent once the controller has settled a submission.
type submitDoneMsg struct{}

// Model is the bubbletea model for the names form.
type Model struct {
	ctx   context.Context
	ctrl  *view.Controller
	input textinput.Model
	spin  spinner.Model

	// changed is signalled, coalesced, on every controller snapshot.
	changed chan struct{}
	unsub   func()

	state    view.State
	// pending is set from Enter until submitDoneMsg. Snapshots published
	// before the submission starts must not re-enable the form.
	pending  bool
	quitting bool
}

// New wires a model to ctrl. Call Close when the program exits.
func New(ctx context.Context, ctrl *view.Controller) *Model {
	ti := textinput.New()
	ti.Placeholder = "Enter a name"
	ti.CharLimit = 256
	ti.Width = 40
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		ctx:     ctx,
		ctrl:    ctrl,
		input:   ti,
		spin:    sp,
		changed: make(chan struct{}, 1),
		state:   ctrl.State(),
	}
	m.unsub = ctrl.Subscribe(func(view.State) {
		select {
		case m.changed <- struct{}{}:
		default:
		}
	})
	return m
}

// Close detaches the model from its controller.
func (m *Model) Close() {
	if m.unsub != nil {
		m.unsub()
	}
}

func (m *Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.changed:
			return stateChangedMsg{}
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *Model) mountCmd() tea.Cmd {
	return func() tea.Msg {
		m.ctrl.Mount(m.ctx)
		return nil
	}
}

func (m *Model) submitCmd() tea.Cmd {
	return func() tea.Msg {
		m.ctrl.Submit(m.ctx)
		return submitDoneMsg{}
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick, m.waitForChange(), m.mountCmd())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateChangedMsg:
		m.sync()
		return m, m.waitForChange()

	case submitDoneMsg:
		m.pending = false
		m.sync()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		}
		// The form is disabled while a submission is in flight.
		if m.state.IsSubmitting {
			return m, nil
		}
		if msg.Type == tea.KeyEnter {
			if !m.state.CanSubmit() {
				return m, nil
			}
			m.pending = true
			m.state.IsSubmitting = true
			return m, m.submitCmd()
		}
		var cmd tea.Cmd
		before := m.input.Value()
		m.input, cmd = m.input.Update(msg)
		if v := m.input.Value(); v != before {
			m.ctrl.SetDraft(v)
			m.state.DraftName = v
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// sync pulls the latest snapshot and mirrors the draft into the input.
func (m *Model) sync() {
	m.state = m.ctrl.State()
	if m.pending {
		m.state.IsSubmitting = true
	}
	if m.input.Value() != m.state.DraftName {
		m.input.SetValue(m.state.DraftName)
		m.input.CursorEnd()
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	st := m.state
	var b strings.Builder

	b.WriteString(titleStyle.Render("Hello Names"))
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("  ")
	switch {
	case st.IsSubmitting:
		b.WriteString(disabledStyle.Render(m.spin.View() + " Adding..."))
	case st.CanSubmit():
		b.WriteString(buttonStyle.Render("Submit"))
	default:
		b.WriteString(disabledStyle.Render("Submit"))
	}
	b.WriteString("\n")

	if st.ErrorMessage != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(st.ErrorMessage))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render("Submitted Names"))
	b.WriteString("\n")
	b.WriteString(RenderNames(st, m.spin.View()))

	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("enter: submit • esc: quit"))
	b.WriteString("\n")
	return b.String()
}

// RenderNames renders the list section of st. spin is shown beside the
// loading text.
func RenderNames(st view.State, spin string) string {
	switch {
	case st.IsLoading:
		return fmt.Sprintf("%s Loading names...\n", spin)
	case len(st.Names) == 0:
		return subtleStyle.Render("No names yet. Be the first to add one!") + "\n"
	}
	var b strings.Builder
	for _, n := range st.Names {
		b.WriteString(itemStyle.Render("• " + n))
		b.WriteString("\n")
	}
	return b.String()
}

// Run starts an interactive program over ctrl and blocks until the user
// quits.
func Run(ctx context.Context, ctrl *view.Controller, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := New(ctx, ctrl)
	defer m.Close()

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
