package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/moyu-x/vibecleaner/pkg/assistant"
	"github.com/moyu-x/vibecleaner/pkg/logger"
)

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.actions.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case resultMsg:
		m.state = StateDone
		m.result = msg.result
		m.err = nil
		logger.Get().Info().
			Str("action", string(m.running.Kind())).
			Int("total_operations", msg.result.Summary.TotalOperations).
			Msg("操作完成")
		return m, nil

	case errMsg:
		m.state = StateDone
		m.result = nil
		m.err = msg.err
		logger.Get().Error().Err(msg.err).Msg("操作失败")
		return m, nil

	case spinner.TickMsg:
		if m.state != StateRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.state == StateSelect {
		var cmd tea.Cmd
		m.actions, cmd = m.actions.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case StateSelect:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "d":
			m.dryRun = !m.dryRun
			return m, nil
		case "enter":
			item, ok := m.actions.SelectedItem().(actionItem)
			if !ok {
				return m, nil
			}
			m.state = StateRunning
			m.running = item.action
			return m, tea.Batch(m.spinner.Tick, m.run(item.action, m.dryRun))
		}
		var cmd tea.Cmd
		m.actions, cmd = m.actions.Update(msg)
		return m, cmd

	case StateDone:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "enter", "esc":
			m.state = StateSelect
			m.result = nil
			m.err = nil
		}
	}
	return m, nil
}

// run 在后台执行操作，结果以消息返回
func (m *model) run(action assistant.Action, dryRun bool) tea.Cmd {
	return func() tea.Msg {
		result, err := m.cfg.Execute(action, dryRun)
		if err != nil {
			return errMsg{err: err}
		}
		return resultMsg{result: result}
	}
}
