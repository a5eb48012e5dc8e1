package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/moyu-x/vibecleaner/internal"
	"github.com/moyu-x/vibecleaner/pkg/assistant"
)

type State int

const (
	StateSelect State = iota
	StateRunning
	StateDone
)

type model struct {
	state   State
	cfg     *Config
	dryRun  bool
	actions list.Model
	spinner spinner.Model
	running assistant.Action
	result  *assistant.Result
	err     error
}

func newModel(cfg *Config) *model {
	days := cfg.ArchiveDays
	if days <= 0 {
		days = internal.DefaultArchiveDays
	}
	keep := cfg.Keep
	if keep == "" {
		keep = internal.KeepNewest
	}

	actions := []assistant.Action{
		assistant.Organize{},
		assistant.RemoveDuplicates{Keep: keep},
		assistant.RemoveOld{Days: days},
		assistant.Scan{},
	}
	items := make([]list.Item, 0, len(actions))
	for _, a := range actions {
		items = append(items, actionItem{action: a})
	}

	actionList := list.New(items, list.NewDefaultDelegate(), 60, 20)
	actionList.Title = "选择要执行的操作"
	actionList.SetShowStatusBar(false)
	actionList.SetFilteringEnabled(false)
	actionList.SetShowHelp(false)
	actionList.Styles.Title = titleStyle

	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		FPS:    time.Second / 10,
	}
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &model{
		state:   StateSelect,
		cfg:     cfg,
		dryRun:  true,
		actions: actionList,
		spinner: s,
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

type actionItem struct {
	action assistant.Action
}

func (i actionItem) Title() string {
	switch i.action.(type) {
	case assistant.Organize:
		return "整理文件"
	case assistant.RemoveDuplicates:
		return "删除重复文件"
	case assistant.RemoveOld:
		return "归档旧文件"
	default:
		return "扫描目录"
	}
}

func (i actionItem) Description() string { return i.action.Describe() }
func (i actionItem) FilterValue() string { return i.Title() }
