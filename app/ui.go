package app

import (
	"github.com/moyu-x/vibecleaner/pkg/assistant"
	"github.com/moyu-x/vibecleaner/pkg/config"
	"github.com/moyu-x/vibecleaner/pkg/tui"
)

func RunUI(cfg *config.Config, path string) error {
	root := ResolveRoot(cfg, path)
	return tui.Run(&tui.Config{
		Root:        root,
		ArchiveDays: cfg.Cleanup.ArchiveAfterDays,
		Keep:        cfg.KeepPolicy(),
		Execute: func(action assistant.Action, dryRun bool) (*assistant.Result, error) {
			return ExecuteAction(cfg, root, action, dryRun)
		},
	})
}
