package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/offload/callspec"
	"github.com/wippyai/offload/device"
)

var (
	accent = lipgloss.Color("#7D56F4")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(accent).Padding(0, 1)
	kernelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98"))
	typeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Background(accent)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err      error
	dev      *device.Device
	filename string
	specs    string
	result   string
	kernels  []string
	input    textinput.Model
	selected int
	state    modelState
}

type modelState int

const (
	stateSelectKernel modelState = iota
	stateInputArgs
	stateShowResult
)

func newInteractiveModel(filename, specs string) *interactiveModel {
	return &interactiveModel{
		filename: filename,
		specs:    specs,
		state:    stateSelectKernel,
	}
}

type loadedMsg struct {
	err error
	dev *device.Device
}

type callResultMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadModule
}

func (m *interactiveModel) loadModule() tea.Msg {
	data, err := os.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	dev, err := device.New(context.Background(), data, nil)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{dev: dev}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, m.quit()

		case "q":
			if m.state != stateInputArgs {
				return m, m.quit()
			}

		case "up", "k":
			if m.state == stateSelectKernel && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectKernel && m.selected < len(m.kernels)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectKernel:
				if len(m.kernels) == 0 {
					return m, nil
				}
				m.prepareInput()
				m.state = stateInputArgs
				return m, textinput.Blink

			case stateInputArgs:
				m.specs = m.input.Value()
				return m, m.callKernel

			case stateShowResult:
				m.state = stateSelectKernel
				m.result = ""
				m.err = nil
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectKernel
			case stateShowResult:
				m.state = stateSelectKernel
				m.result = ""
				m.err = nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.dev = msg.dev
		m.kernels = msg.dev.Kernels()

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) quit() tea.Cmd {
	if m.dev != nil {
		m.dev.Close(context.Background())
	}
	return tea.Quit
}

func (m *interactiveModel) prepareInput() {
	ti := textinput.New()
	ti.Placeholder = "i32:in=41;i32:out"
	ti.Prompt = "args: "
	ti.Width = 60
	ti.SetValue(m.specs)
	ti.Focus()
	m.input = ti
}

func (m *interactiveModel) callKernel() tea.Msg {
	kernel := m.kernels[m.selected]

	call, err := callspec.ParseArgs(kernel, m.specs)
	if err != nil {
		return callResultMsg{err: err}
	}
	binding, err := call.Bind()
	if err != nil {
		return callResultMsg{err: err}
	}
	if err := m.dev.Call(context.Background(), kernel, &binding.Signature); err != nil {
		return callResultMsg{err: err}
	}
	return callResultMsg{result: renderTable(binding, true)}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Cannot load %s: %v", m.filename, m.err)) + "\n\n" + helpStyle.Render("q quit")
	}

	if m.dev == nil {
		return "Loading module..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Kernel Dispatcher"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectKernel:
		if len(m.kernels) == 0 {
			b.WriteString("Module exports no kernels.\n\n")
			b.WriteString(helpStyle.Render("q quit"))
			break
		}
		b.WriteString("Select a kernel to call:\n\n")
		for i, name := range m.kernels {
			if i == m.selected {
				b.WriteString(cursorStyle.Render("> " + formatKernel(name)))
			} else {
				b.WriteString("  " + formatKernel(name))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter choose • q quit"))

	case stateInputArgs:
		kernel := m.kernels[m.selected]
		b.WriteString(fmt.Sprintf("Calling %s\n\n", kernelStyle.Render(kernel)))
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(typeStyle.Render("type[shape]:kind=values, separated by ';'"))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter call • esc back"))

	case stateShowResult:
		kernel := m.kernels[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", kernelStyle.Render(kernel)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(m.result)
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter next call • q quit"))
	}

	return b.String()
}

func formatKernel(name string) string {
	return kernelStyle.Render(name) + "(" + typeStyle.Render("signature") + ") -> " + typeStyle.Render("status")
}

func runInteractive(filename, specs string) error {
	p := tea.NewProgram(newInteractiveModel(filename, specs), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
