// Package app 连接配置、锁、会话和运行历史，cmd 只负责解析参数和输出
package app

import (
	"github.com/spf13/afero"

	"github.com/moyu-x/vibecleaner/pkg/cleaner"
	"github.com/moyu-x/vibecleaner/pkg/config"
	"github.com/moyu-x/vibecleaner/pkg/database"
	"github.com/moyu-x/vibecleaner/pkg/logger"
	"github.com/moyu-x/vibecleaner/pkg/session"
)

// ResolveRoot 命令行参数优先，否则使用配置中的下载目录
func ResolveRoot(cfg *config.Config, path string) string {
	if path != "" {
		return config.ExpandPath(path)
	}
	return cfg.DownloadsPath
}

// acquire 实际修改文件时获取目录锁，预览时返回空操作
func acquire(root string, dryRun bool) (func(), error) {
	if dryRun {
		return func() {}, nil
	}
	lock, err := cleaner.Acquire(root)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := lock.Release(); err != nil {
			logger.Get().Warn().Err(err).Msg("释放目录锁失败")
		}
	}, nil
}

// recordSession 将会话统计写入运行历史
func recordSession(cfg *config.Config, command string, s *session.Session) {
	recordRun(cfg, database.NewRunRecord(s.RunID, command, s.Root, s.DryRun, *s.Stats, s.Log.Len(), len(s.Errors())))
}

// recordRun 写入运行历史，失败只记录日志
func recordRun(cfg *config.Config, record *database.RunRecord) {
	if cfg.History.Path == "" {
		return
	}

	db, err := database.NewDatabase(cfg.History.Path)
	if err != nil {
		logger.Get().Warn().Err(err).Msg("打开运行历史失败")
		return
	}
	defer db.Close()

	if err := db.Insert(record); err != nil {
		logger.Get().Warn().Err(err).Msg("写入运行历史失败")
	}
}

// saveLog 指定了路径时保存操作日志
func saveLog(s *session.Session, path string) error {
	if path == "" {
		return nil
	}
	path = config.ExpandPath(path)
	// 会话在预览模式下使用内存文件系统，日志总是写入真实文件系统
	if err := s.Log.Save(afero.NewOsFs(), path); err != nil {
		return err
	}
	logger.Get().Info().Msgf("操作日志已保存: %s", path)
	return nil
}
