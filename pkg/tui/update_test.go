package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/moyu-x/vibecleaner/internal"
	"github.com/moyu-x/vibecleaner/pkg/assistant"
)

type call struct {
	action assistant.Action
	dryRun bool
}

func testModel(t *testing.T, fail error) (*model, *[]call) {
	t.Helper()
	var calls []call
	m := newModel(&Config{
		Root:        "/dl",
		ArchiveDays: 45,
		Execute: func(action assistant.Action, dryRun bool) (*assistant.Result, error) {
			calls = append(calls, call{action: action, dryRun: dryRun})
			if fail != nil {
				return nil, fail
			}
			return &assistant.Result{
				DryRun:   dryRun,
				Previews: []assistant.Preview{{Action: action.Kind(), Organized: map[string][]string{"Images": {"a.png"}}}},
				Summary:  internal.Summary{TotalOperations: 1},
			}, nil
		},
	})
	return m, &calls
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runSelected 按下回车并直接执行返回的命令
func runSelected(t *testing.T, m *model) {
	t.Helper()
	_, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Fatal("Expected a command after enter")
	}
	if m.state != StateRunning {
		t.Fatalf("Expected running state, got %d", m.state)
	}
	m.Update(m.run(m.running, m.dryRun)())
}

func TestModel_DryRunToggle(t *testing.T) {
	m, _ := testModel(t, nil)

	if !m.dryRun {
		t.Fatal("Expected preview mode by default")
	}
	m.Update(key("d"))
	if m.dryRun {
		t.Error("Expected d to switch to apply mode")
	}
	if !strings.Contains(m.View(), "执行模式") {
		t.Error("View should show apply mode")
	}
	m.Update(key("d"))
	if !m.dryRun {
		t.Error("Expected d to switch back to preview mode")
	}
}

func TestModel_RunAction(t *testing.T) {
	m, calls := testModel(t, nil)

	runSelected(t, m)

	if m.state != StateDone {
		t.Fatalf("Expected done state, got %d", m.state)
	}
	if len(*calls) != 1 {
		t.Fatalf("Expected 1 call, got %d", len(*calls))
	}
	if _, ok := (*calls)[0].action.(assistant.Organize); !ok {
		t.Errorf("Expected first item to organize, got %T", (*calls)[0].action)
	}
	if !(*calls)[0].dryRun {
		t.Error("Expected preview run")
	}
	if !strings.Contains(m.View(), "Images: 1 个文件") {
		t.Errorf("Result view missing organize summary:\n%s", m.View())
	}

	m.Update(key("enter"))
	if m.state != StateSelect {
		t.Error("Expected enter to return to the action list")
	}
}

func TestModel_SelectSecondAction(t *testing.T) {
	m, calls := testModel(t, nil)

	m.Update(key("down"))
	m.Update(key("d"))
	runSelected(t, m)

	got, ok := (*calls)[0].action.(assistant.RemoveDuplicates)
	if !ok {
		t.Fatalf("Expected duplicate removal, got %T", (*calls)[0].action)
	}
	if got.Keep != internal.KeepNewest {
		t.Errorf("Expected keep newest, got %s", got.Keep)
	}
	if (*calls)[0].dryRun {
		t.Error("Expected apply run after toggling")
	}
}

func TestModel_ArchiveDaysFromConfig(t *testing.T) {
	m, calls := testModel(t, nil)

	m.Update(key("down"))
	m.Update(key("down"))
	runSelected(t, m)

	if got, ok := (*calls)[0].action.(assistant.RemoveOld); !ok || got.Days != 45 {
		t.Errorf("Expected RemoveOld{45}, got %#v", (*calls)[0].action)
	}
}

func TestModel_Error(t *testing.T) {
	m, _ := testModel(t, errors.New("directory not found"))

	runSelected(t, m)

	if m.err == nil {
		t.Fatal("Expected error to be stored")
	}
	if !strings.Contains(m.View(), "directory not found") {
		t.Error("View should show the error")
	}
}

func TestModel_Quit(t *testing.T) {
	m, _ := testModel(t, nil)

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
}

func TestRun_RequiresExecute(t *testing.T) {
	if err := Run(&Config{Root: "/dl"}); err == nil {
		t.Error("Expected error without an execute function")
	}
}
