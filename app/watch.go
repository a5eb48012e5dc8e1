package app

import (
	"context"
	"time"

	"github.com/moyu-x/vibecleaner/pkg/classifier"
	"github.com/moyu-x/vibecleaner/pkg/config"
	"github.com/moyu-x/vibecleaner/pkg/logger"
	"github.com/moyu-x/vibecleaner/pkg/session"
	"github.com/moyu-x/vibecleaner/pkg/watcher"
)

// RunWatch 监控目录，新文件出现后重新整理整个目录，直到 ctx 取消
func RunWatch(ctx context.Context, cfg *config.Config, path string, delay time.Duration) error {
	root := ResolveRoot(cfg, path)
	if delay <= 0 {
		delay = cfg.Watch.SettleDelay
	}

	release, err := acquire(root, false)
	if err != nil {
		return err
	}
	defer release()

	// 处理器只在单个 worker 上执行，会话不需要额外同步
	s := session.New(root)
	c := classifier.NewClassifier(cfg.Rules())
	c.SniffExtensionless = cfg.Organize.SniffExtensionless

	w, err := watcher.New(root, delay, watcher.HandlerFunc(func(created string) error {
		organized, err := c.Organize(s)
		if err != nil {
			return err
		}
		for category, files := range organized {
			logger.Get().Info().Msgf("%s: %d 个文件", category, len(files))
		}
		return nil
	}))
	if err != nil {
		return err
	}

	err = w.Run(ctx)
	recordSession(cfg, "watch", s)
	return err
}
