package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amorphlab/amorph/engine"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	opStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#98FB98"))

	paramStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type opInfo struct {
	op      engine.Op
	value   string // label for the varying input
	operand string // label for the fixed operand
}

var ops = []opInfo{
	{engine.OpBase, "value", "base"},
	{engine.OpModulus, "dividend", "divisor"},
	{engine.OpAnamorphicBase, "value", "base"},
	{engine.OpAnamorphicModulus, "dividend", "divisor"},
}

type modelState int

const (
	stateSelectOp modelState = iota
	stateInputArgs
	stateShowResult
)

type interactiveModel struct {
	err      error
	eng      *engine.Engine
	result   string
	inputs   []textinput.Model
	selected int
	focusIdx int
	state    modelState
}

func newInteractiveModel(engineOpts []engine.Option) *interactiveModel {
	return &interactiveModel{
		eng:   engine.New(engineOpts...),
		state: stateSelectOp,
	}
}

type callResultMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state != stateInputArgs || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectOp && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectOp && m.selected < len(ops)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectOp:
				m.prepareInputs()
				m.state = stateInputArgs

			case stateInputArgs:
				return m, m.evaluate

			case stateShowResult:
				// Re-run with the same inputs: the shared engine keeps
				// accumulating draws and ledger entries.
				return m, m.evaluate
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectOp
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectOp
				m.result = ""
				m.err = nil
			}
		}

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) prepareInputs() {
	info := ops[m.selected]
	labels := []string{info.value, info.operand, "fluidity"}
	placeholders := []string{"float", "float", "blank for default"}

	m.inputs = make([]textinput.Model, len(labels))
	for i, label := range labels {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.Prompt = label + ": "
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *interactiveModel) evaluate() tea.Msg {
	info := ops[m.selected]

	value, err := strconv.ParseFloat(strings.TrimSpace(m.inputs[0].Value()), 64)
	if err != nil {
		return callResultMsg{err: fmt.Errorf("parse %s: %w", info.value, err)}
	}
	operand, err := strconv.ParseFloat(strings.TrimSpace(m.inputs[1].Value()), 64)
	if err != nil {
		return callResultMsg{err: fmt.Errorf("parse %s: %w", info.operand, err)}
	}

	var callOpts []engine.CallOption
	if raw := strings.TrimSpace(m.inputs[2].Value()); raw != "" {
		fluidity, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return callResultMsg{err: fmt.Errorf("parse fluidity: %w", err)}
		}
		callOpts = append(callOpts, engine.WithFluidity(fluidity))
	}

	results, err := m.eng.Batch(info.op, []float64{value}, operand, callOpts...)
	if err != nil {
		return callResultMsg{err: err}
	}

	return callResultMsg{result: strconv.FormatFloat(results[0], 'g', -1, 64)}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Amorphous Arithmetic"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectOp:
		b.WriteString("Select an operation:\n\n")
		for i, info := range ops {
			line := m.formatOp(info)
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter choose • q quit"))

	case stateInputArgs:
		info := ops[m.selected]
		b.WriteString(fmt.Sprintf("Evaluating %s\n\n", opStyle.Render(info.op.String())))
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter evaluate • esc back"))

	case stateShowResult:
		info := ops[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", opStyle.Render(info.op.String())))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(m.statsLine())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter re-run • esc back • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) formatOp(info opInfo) string {
	return opStyle.Render(info.op.String()) +
		"(" + paramStyle.Render(info.value) + ", " + paramStyle.Render(info.operand) + ")"
}

func (m *interactiveModel) statsLine() string {
	s := m.eng.Stats()
	if s.Results == nil {
		return helpStyle.Render("ledger empty")
	}
	return helpStyle.Render(fmt.Sprintf("ledger: %d ops • mean %.4g • min %.4g • max %.4g",
		s.TotalOperations, s.Results.Mean, s.Results.Min, s.Results.Max))
}

func runInteractive(engineOpts []engine.Option) error {
	p := tea.NewProgram(newInteractiveModel(engineOpts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
