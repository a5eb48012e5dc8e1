package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/moyu-x/vibecleaner/pkg/assistant"
)

func (m *model) View() string {
	switch m.state {
	case StateSelect:
		return m.selectView()
	case StateRunning:
		return m.runningView()
	case StateDone:
		return m.doneView()
	default:
		return "未知状态"
	}
}

func (m *model) modeLabel() string {
	if m.dryRun {
		return dryRunStyle.Render("预览模式（不会修改文件）")
	}
	return applyStyle.Render("执行模式（将修改文件）")
}

func (m *model) selectView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🧹 vibecleaner") + "\n")
	b.WriteString(labelStyle.Render("目录：") + filePathStyle.Render(m.cfg.Root) + "\n")
	b.WriteString(labelStyle.Render("模式：") + m.modeLabel() + "\n\n")

	b.WriteString(focusedStyle.Render(m.actions.View()) + "\n\n")

	b.WriteString(separatorStyle.Render(strings.Repeat("─", 60)) + "\n")
	b.WriteString(hintStyle.Render("操作提示：") + "\n")
	b.WriteString("  • ↑/↓ 选择操作\n")
	b.WriteString("  • Enter 执行\n")
	b.WriteString("  • d 切换预览/执行模式\n")
	b.WriteString("  • q 退出\n")

	return lipgloss.NewStyle().
		Padding(1).
		Render(b.String())
}

func (m *model) runningView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🔄 正在执行...") + "\n\n")
	b.WriteString(m.spinner.View() + " " + m.running.Describe() + "\n")
	b.WriteString("  " + m.modeLabel() + "\n")

	return lipgloss.NewStyle().
		Padding(2).
		Render(b.String())
}

func (m *model) doneView() string {
	var b strings.Builder

	if m.err != nil {
		b.WriteString(errorTitleStyle.Render("❌ 执行失败") + "\n\n")
		b.WriteString(m.err.Error() + "\n\n")
	} else {
		b.WriteString(successTitleStyle.Render("✅ 完成！") + "\n\n")
		if m.result != nil {
			b.WriteString(statsBoxStyle.Render(strings.TrimRight(assistant.FormatResult(m.result), "\n")) + "\n\n")
		}
	}

	b.WriteString(separatorStyle.Render(strings.Repeat("─", 60)) + "\n")
	b.WriteString(hintStyle.Render("按 Enter 返回，q 退出") + "\n")

	return lipgloss.NewStyle().
		Padding(2).
		Render(b.String())
}
