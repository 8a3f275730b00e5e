package tui

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/moyu-x/file-organizer/pkg/logger"
)

// ErrCancelled 用户取消输入
var ErrCancelled = errors.New("输入已取消")

// PromptDirectory 启动交互式输入框，返回用户输入的目录路径
func PromptDirectory(in io.Reader, out io.Writer, prompt string) (string, error) {
	logger.Get().Debug().Msg("启动目录输入界面")

	m := initialModel(prompt)
	p := tea.NewProgram(&m, tea.WithInput(in), tea.WithOutput(out))

	final, err := p.Run()
	if err != nil {
		logger.Get().Error().Err(err).Msg("TUI 运行错误")
		return "", err
	}

	result := final.(*model)
	if result.cancelled {
		return "", ErrCancelled
	}
	return result.value, nil
}
