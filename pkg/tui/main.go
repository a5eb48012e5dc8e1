// Package tui 提供交互式终端界面
package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/moyu-x/vibecleaner/internal"
	"github.com/moyu-x/vibecleaner/pkg/assistant"
	"github.com/moyu-x/vibecleaner/pkg/logger"
)

// ExecFunc 执行一个操作，界面本身不包含清理逻辑
type ExecFunc func(action assistant.Action, dryRun bool) (*assistant.Result, error)

type Config struct {
	Root        string
	ArchiveDays int
	Keep        internal.KeepPolicy
	Execute     ExecFunc
}

func Run(cfg *Config) error {
	if cfg == nil || cfg.Execute == nil {
		return errors.New("tui: 缺少执行函数")
	}

	logger.Get().Info().Msg("启动 TUI 界面")

	p := tea.NewProgram(newModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	if err != nil {
		logger.Get().Error().Err(err).Msg("TUI 运行错误")
	} else {
		logger.Get().Info().Msg("TUI 正常退出")
	}

	return err
}
