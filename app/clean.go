package app

import (
	"github.com/moyu-x/vibecleaner/internal"
	"github.com/moyu-x/vibecleaner/pkg/cleaner"
	"github.com/moyu-x/vibecleaner/pkg/config"
	"github.com/moyu-x/vibecleaner/pkg/logger"
	"github.com/moyu-x/vibecleaner/pkg/retention"
	"github.com/moyu-x/vibecleaner/pkg/session"
)

type CleanOptions struct {
	Path             string
	DryRun           bool
	NoOrganize       bool
	RemoveOld        bool
	RemoveDuplicates bool
	// 小于等于 0 时使用配置
	OlderThan int
	// 小于 0 时使用配置
	MinSizeMB  float64
	KeepOldest bool
	LogPath    string
}

func RunClean(cfg *config.Config, opts *CleanOptions) (*cleaner.Report, error) {
	root := ResolveRoot(cfg, opts.Path)
	logger.Get().Info().Msgf("目标目录: %s", root)

	release, err := acquire(root, opts.DryRun)
	if err != nil {
		return nil, err
	}
	defer release()

	policy := retention.Policy{Days: cfg.Cleanup.ArchiveAfterDays, MinSizeMB: cfg.Cleanup.MinFileSizeMB}
	if opts.OlderThan > 0 {
		policy.Days = opts.OlderThan
	}
	if opts.MinSizeMB >= 0 {
		policy.MinSizeMB = opts.MinSizeMB
	}

	keep := cfg.KeepPolicy()
	if opts.KeepOldest {
		keep = internal.KeepOldest
	}

	s := session.New(root, session.WithDryRun(opts.DryRun))
	report, err := cleaner.Clean(s, cleaner.Options{
		Organize:           !opts.NoOrganize,
		RemoveOld:          opts.RemoveOld,
		RemoveDuplicates:   opts.RemoveDuplicates,
		Retention:          policy,
		Keep:               keep,
		Rules:              cfg.Rules(),
		SniffExtensionless: cfg.Organize.SniffExtensionless,
	})

	// 失败前已完成的操作也要写入日志和历史
	if s.Log.Len() > 0 || err == nil {
		if logErr := saveLog(s, opts.LogPath); logErr != nil && err == nil {
			err = logErr
		}
		recordSession(cfg, "clean", s)
	}
	return report, err
}
