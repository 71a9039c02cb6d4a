package tui

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// NonInteractiveEnv disables every prompt when set
const NonInteractiveEnv = "STEPWISE_NON_INTERACTIVE"

var (
	// ErrInteractiveDisabled is returned when NonInteractiveEnv is set
	ErrInteractiveDisabled = errors.New("interactive prompts are disabled (" + NonInteractiveEnv + " is set)")
	// ErrCanceled is returned when the user leaves a prompt without answering
	ErrCanceled = errors.New("canceled")
)

var (
	submitKey = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit"))
	cancelKey = key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "cancel"))
	yesKey    = key.NewBinding(key.WithKeys("y", "Y"))
	noKey     = key.NewBinding(key.WithKeys("n", "N"))

	promptStyle  = lipgloss.NewStyle().Bold(true)
	previewStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	problemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	frameStyle   = lipgloss.NewStyle().Margin(1, 0)
)

// stepMessageModel edits the free text of a step subject, previewing the
// subject the commit will end up with
type stepMessageModel struct {
	number  string
	input   textinput.Model
	problem string
	result  string
	err     error
	quit    bool
}

func newStepMessageModel(number, current string) stepMessageModel {
	input := textinput.New()
	input.Prompt = "> "
	input.SetValue(current)
	input.CharLimit = 200
	input.Width = 72
	input.Focus()
	return stepMessageModel{number: number, input: input}
}

func (m stepMessageModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m stepMessageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, cancelKey):
			m.err = ErrCanceled
			m.quit = true
			return m, tea.Quit
		case key.Matches(keyMsg, submitKey):
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				m.problem = "the message cannot be empty"
				return m, nil
			}
			m.result = text
			m.quit = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.problem = ""
	return m, cmd
}

func (m stepMessageModel) View() string {
	if m.quit {
		return ""
	}
	var b strings.Builder
	b.WriteString(promptStyle.Render("New message for step "+m.number+":") + "\n")
	b.WriteString(m.input.View() + "\n")
	b.WriteString(previewStyle.Render("Step "+m.number+": "+strings.TrimSpace(m.input.Value())) + "\n")
	if m.problem != "" {
		b.WriteString(problemStyle.Render(m.problem) + "\n")
	}
	b.WriteString(previewStyle.Render(submitKey.Help().Key + " " + submitKey.Help().Desc + " • " +
		cancelKey.Help().Key + " " + cancelKey.Help().Desc))
	return frameStyle.Render(b.String())
}

// confirmModel answers a yes/no question; enter takes the default
type confirmModel struct {
	question string
	answer   bool
	err      error
	quit     bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, cancelKey):
		m.err = ErrCanceled
	case key.Matches(keyMsg, yesKey):
		m.answer = true
	case key.Matches(keyMsg, noKey):
		m.answer = false
	case key.Matches(keyMsg, submitKey):
	default:
		return m, nil
	}
	m.quit = true
	return m, tea.Quit
}

func (m confirmModel) View() string {
	if m.quit {
		return ""
	}
	hint := "y/N"
	if m.answer {
		hint = "Y/n"
	}
	return frameStyle.Render(promptStyle.Render(m.question) + " " + previewStyle.Render("("+hint+")"))
}

// PromptStepMessage asks for the new free text of a step, pre-filled with
// its current text. The returned text is trimmed and never empty.
func PromptStepMessage(number, current string) (string, error) {
	final, err := run(newStepMessageModel(number, current))
	if err != nil {
		return "", err
	}
	m := final.(stepMessageModel)
	return m.result, m.err
}

// PromptConfirm asks a yes/no question
func PromptConfirm(question string, defaultAnswer bool) (bool, error) {
	final, err := run(confirmModel{question: question, answer: defaultAnswer})
	if err != nil {
		return false, err
	}
	m := final.(confirmModel)
	return m.answer, m.err
}

func run(model tea.Model) (tea.Model, error) {
	if os.Getenv(NonInteractiveEnv) != "" {
		return nil, ErrInteractiveDisabled
	}
	return tea.NewProgram(model, tea.WithInput(os.Stdin), tea.WithOutput(os.Stderr)).Run()
}
