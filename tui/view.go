package tui

import "strings"

func (m *model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(m.prompt) + "\n")
	b.WriteString(m.input.View() + "\n")

	if m.hint != "" {
		b.WriteString(errorStyle.Render(m.hint) + "\n")
	}

	b.WriteString(hintStyle.Render("enter 确认 • esc 取消") + "\n")

	return b.String()
}
