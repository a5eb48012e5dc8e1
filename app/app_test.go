package app

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moyu-x/vibecleaner/internal"
	"github.com/moyu-x/vibecleaner/pkg/assistant"
	"github.com/moyu-x/vibecleaner/pkg/cleaner"
	"github.com/moyu-x/vibecleaner/pkg/config"
)

// setup 创建下载目录和指向临时目录的配置
func setup(t *testing.T) (*config.Config, string) {
	t.Helper()
	base := t.TempDir()
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "state"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	dl := filepath.Join(base, "Downloads")
	require.NoError(t, os.MkdirAll(dl, 0755))

	configPath := filepath.Join(base, "config.yaml")
	content := "downloads_path: " + dl + "\nhistory:\n  path: " + filepath.Join(base, "history.db") + "\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := config.Load(configPath)
	require.NoError(t, err)
	return cfg, dl
}

func writeFile(t *testing.T, path, content string, age time.Duration) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	mtime := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestRunClean(t *testing.T) {
	cfg, dl := setup(t)
	writeFile(t, filepath.Join(dl, "report.pdf"), "pdf", time.Hour)
	writeFile(t, filepath.Join(dl, "copy1.bin"), "same", 2*time.Hour)
	writeFile(t, filepath.Join(dl, "copy2.bin"), "same", time.Hour)
	logPath := filepath.Join(t.TempDir(), "ops.json")

	report, err := RunClean(cfg, &CleanOptions{RemoveDuplicates: true, MinSizeMB: -1, LogPath: logPath})
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{"Documents": {"report.pdf"}}, report.Organized)
	assert.Equal(t, 1, report.DuplicatesRemoved)
	assert.FileExists(t, filepath.Join(dl, "Documents", "report.pdf"))
	assert.FileExists(t, filepath.Join(dl, "copy2.bin"))
	assert.NoFileExists(t, filepath.Join(dl, "copy1.bin"))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(data, &entries))
	assert.Len(t, entries, 2)

	stats, err := RunStats(cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Totals.Runs)
	assert.Equal(t, int64(1), stats.Totals.FilesMoved)
	assert.Equal(t, int64(1), stats.Totals.DuplicatesRemoved)
	require.Len(t, stats.Recent, 1)
	assert.Equal(t, "clean", stats.Recent[0].Command)
}

func TestRunClean_DryRunSavesLog(t *testing.T) {
	cfg, dl := setup(t)
	writeFile(t, filepath.Join(dl, "photo.jpg"), "jpg", time.Hour)
	logPath := filepath.Join(t.TempDir(), "ops.json")

	_, err := RunClean(cfg, &CleanOptions{DryRun: true, MinSizeMB: -1, LogPath: logPath})
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dl, "photo.jpg"))
	assert.FileExists(t, logPath)

	stats, err := RunStats(cfg)
	require.NoError(t, err)
	assert.Zero(t, stats.Totals.Runs, "preview runs are not counted")
	require.Len(t, stats.Recent, 1)
	assert.True(t, stats.Recent[0].DryRun)
}

func TestRunClean_Locked(t *testing.T) {
	cfg, dl := setup(t)

	lock, err := cleaner.Acquire(dl)
	require.NoError(t, err)
	defer lock.Release()

	_, err = RunClean(cfg, &CleanOptions{MinSizeMB: -1})
	assert.ErrorIs(t, err, internal.ErrLocked)
}

func TestRunClean_MissingDir(t *testing.T) {
	cfg, dl := setup(t)

	_, err := RunClean(cfg, &CleanOptions{Path: filepath.Join(dl, "nope"), DryRun: true, MinSizeMB: -1})
	assert.True(t, errors.Is(err, internal.ErrNotFound))
}

func TestRunDuplicates(t *testing.T) {
	cfg, dl := setup(t)
	writeFile(t, filepath.Join(dl, "a.txt"), "dup", 3*time.Hour)
	writeFile(t, filepath.Join(dl, "sub", "b.txt"), "dup", time.Hour)

	listed, err := RunDuplicates(cfg, &DuplicatesOptions{})
	require.NoError(t, err)
	require.Len(t, listed.Groups, 1)
	assert.Zero(t, listed.Removed)
	assert.FileExists(t, filepath.Join(dl, "a.txt"))

	removed, err := RunDuplicates(cfg, &DuplicatesOptions{Remove: true, KeepOldest: true})
	require.NoError(t, err)
	assert.Equal(t, 1, removed.Removed)
	assert.Equal(t, internal.KeepOldest, removed.Keep)
	assert.FileExists(t, filepath.Join(dl, "a.txt"))
	assert.NoFileExists(t, filepath.Join(dl, "sub", "b.txt"))
}

func TestRunAssist(t *testing.T) {
	cfg, dl := setup(t)
	writeFile(t, filepath.Join(dl, "song.mp3"), "mp3", time.Hour)

	resp, err := RunAssist(context.Background(), cfg, "organize my downloads", "", "")
	require.NoError(t, err)

	assert.Equal(t, []assistant.Action{assistant.Organize{}}, resp.Plan.Actions)
	assert.True(t, resp.Result.DryRun)
	assert.FileExists(t, filepath.Join(dl, "song.mp3"))
}

func TestExecuteAction_Apply(t *testing.T) {
	cfg, dl := setup(t)
	writeFile(t, filepath.Join(dl, "song.mp3"), "mp3", time.Hour)

	result, err := ExecuteAction(cfg, dl, assistant.Organize{}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.FilesMoved)
	assert.FileExists(t, filepath.Join(dl, "Audio", "song.mp3"))

	stats, err := RunStats(cfg)
	require.NoError(t, err)
	require.Len(t, stats.Recent, 1)
	assert.Equal(t, "ui", stats.Recent[0].Command)
}

func TestNewParser(t *testing.T) {
	cfg, _ := setup(t)

	assert.IsType(t, assistant.KeywordParser{}, NewParser(cfg, ""))
	assert.IsType(t, &assistant.CommandParser{}, NewParser(cfg, "command"))
}

func TestNewExecutor_UsesConfig(t *testing.T) {
	cfg, dl := setup(t)
	cfg.Organize.SniffExtensionless = true
	cfg.Cleanup.MinFileSizeMB = 2.5

	e := newExecutor(cfg, dl, true)
	assert.True(t, e.SniffExtensionless)
	assert.Equal(t, 2.5, e.MinSizeMB)
	assert.True(t, e.DryRun)
	assert.Len(t, e.Rules, len(cfg.Rules()))
}

func TestResolveRoot(t *testing.T) {
	cfg, dl := setup(t)

	assert.Equal(t, dl, ResolveRoot(cfg, ""))
	assert.Equal(t, "/elsewhere", ResolveRoot(cfg, "/elsewhere"))
}
