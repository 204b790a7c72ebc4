// ============================================================================
// khwarizmi - Linear Equation Solver
// ============================================================================
//
// Package:     solver
// Description: Bubbletea model of the interactive solver REPL
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package solver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/msto63/khwarizmi/internal/khwarizmi/service"
)

// SolveFunc solves one equation
type SolveFunc func(ctx context.Context, input string) (*service.SolveResponse, error)

// Config holds REPL configuration
type Config struct {
	Solve     SolveFunc
	ShowSteps bool
	Timeout   time.Duration
	Version   string
}

// Model is the Bubbletea model of the solver REPL
type Model struct {
	width   int
	height  int
	ready   bool
	solving bool

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	entries []entry
	recall  []string
	cursor  int // index into recall while browsing, len(recall) otherwise

	solve     SolveFunc
	showSteps bool
	timeout   time.Duration
	version   string
}

// New creates a new REPL model
func New(cfg Config) Model {
	ti := textinput.New()
	ti.Placeholder = "2x + 3 = 7"
	ti.Prompt = PromptStyle.Render("» ")
	ti.CharLimit = 256
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return Model{
		input:     ti,
		spinner:   sp,
		solve:     cfg.Solve,
		showSteps: cfg.ShowSteps,
		timeout:   timeout,
		version:   cfg.Version,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 // Title panel
		footerHeight := 5 // Input panel + help
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - 8
		m.updateViewportContent()

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case solvedMsg:
		m.solving = false
		m.entries = append(m.entries, entry{input: msg.input, resp: msg.resp, err: msg.err})
		m.updateViewportContent()
		m.viewport.GotoBottom()
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyEnter:
		return m.submit()

	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
			m.input.SetValue(m.recall[m.cursor])
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyDown:
		if m.cursor < len(m.recall)-1 {
			m.cursor++
			m.input.SetValue(m.recall[m.cursor])
		} else {
			m.cursor = len(m.recall)
			m.input.SetValue("")
		}
		m.input.CursorEnd()
		return m, nil

	case tea.KeyPgUp:
		m.viewport.ViewUp()
		return m, nil

	case tea.KeyPgDown:
		m.viewport.ViewDown()
		return m, nil

	case tea.KeyCtrlS:
		m.showSteps = !m.showSteps
		m.updateViewportContent()
		return m, nil

	case tea.KeyCtrlL:
		m.entries = nil
		m.updateViewportContent()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit solves the current input or runs a REPL command
func (m Model) submit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" || m.solving {
		return m, nil
	}

	m.input.SetValue("")
	m.recall = append(m.recall, input)
	m.cursor = len(m.recall)

	switch input {
	case "exit", "quit", ":q":
		return m, tea.Quit
	case ":clear":
		m.entries = nil
		m.updateViewportContent()
		return m, nil
	case ":steps":
		m.showSteps = !m.showSteps
		m.updateViewportContent()
		return m, nil
	}

	m.solving = true
	return m, m.solveCmd(input)
}

func (m Model) solveCmd(input string) tea.Cmd {
	solve := m.solve
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		resp, err := solve(ctx, input)
		return solvedMsg{input: input, resp: resp, err: err}
	}
}

func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderEntries())
}

func (m Model) renderEntries() string {
	if len(m.entries) == 0 {
		return HelpDescStyle.Render("Gleichung eingeben, z.B. 2x + 3 = 7")
	}

	blocks := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		blocks = append(blocks, renderEntry(e, m.showSteps))
	}
	return strings.Join(blocks, "\n\n")
}

func renderEntry(e entry, showSteps bool) string {
	header := PromptStyle.Render("» ") + InputStyle.Render(e.input)
	if e.err != nil {
		return header + "\n" + RenderError(e.err)
	}
	if showSteps {
		return header + "\n" + RenderSteps(e.resp)
	}
	return header + "\n" + RenderResult(e.resp)
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Lade khwarizmi..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(HistoryPanelStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.renderInput())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())

	return b.String()
}

func (m Model) renderHeader() string {
	steps := "Schritte aus"
	if m.showSteps {
		steps = "Schritte an"
	}

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		LogoStyle.Render(Logo),
		"   ",
		SubHeaderStyle.Render(fmt.Sprintf("v%s  ·  %d gelöst  ·  %s", m.version, m.solvedCount(), steps)),
	)
	return TitlePanelStyle.Width(m.width - 4).Render(header)
}

func (m Model) renderInput() string {
	view := m.input.View()
	if m.solving {
		view = m.spinner.View() + " Löse..."
	}
	return InputPanelStyle.Width(m.width - 2).Render(view)
}

func (m Model) renderHelpBar() string {
	hints := []string{
		RenderKeyHint("Enter", "lösen"),
		RenderKeyHint("↑/↓", "Verlauf"),
		RenderKeyHint("Ctrl+S", "Schritte"),
		RenderKeyHint("Ctrl+L", "leeren"),
		RenderKeyHint("Esc", "beenden"),
	}
	return strings.Join(hints, "  ")
}

func (m Model) solvedCount() int {
	n := 0
	for _, e := range m.entries {
		if e.err == nil && e.resp != nil && e.resp.Solved {
			n++
		}
	}
	return n
}

// Run starts the REPL and blocks until it exits
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
