package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type model struct {
	prompt    string
	input     textinput.Model
	value     string
	hint      string
	done      bool
	cancelled bool
}

func initialModel(prompt string) model {
	input := textinput.New()
	input.Placeholder = "/path/to/directory"
	input.Prompt = "> "
	input.PromptStyle = focusedPromptStyle
	input.TextStyle = textStyle
	input.Focus()

	return model{
		prompt: prompt,
		input:  input,
	}
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}
