// Package cleaner 按顺序组合分类、归档和去重
package cleaner

import (
	"github.com/moyu-x/vibecleaner/internal"
	"github.com/moyu-x/vibecleaner/pkg/classifier"
	"github.com/moyu-x/vibecleaner/pkg/deduplicator"
	"github.com/moyu-x/vibecleaner/pkg/logger"
	"github.com/moyu-x/vibecleaner/pkg/retention"
	"github.com/moyu-x/vibecleaner/pkg/scanner"
	"github.com/moyu-x/vibecleaner/pkg/session"
)

type Options struct {
	Organize           bool
	RemoveOld          bool
	RemoveDuplicates   bool
	Retention          retention.Policy
	Keep               internal.KeepPolicy
	Rules              []classifier.Rule
	SniffExtensionless bool
}

// DefaultOptions 只分类，其余选项使用默认值
func DefaultOptions() Options {
	return Options{
		Organize:  true,
		Retention: retention.DefaultPolicy(),
		Keep:      internal.KeepNewest,
		Rules:     classifier.DefaultRules(),
	}
}

type Report struct {
	Organized         map[string][]string
	Archived          []scanner.FileRecord
	DuplicatesRemoved int
	Summary           internal.Summary
	Errors            []error
}

// Clean 依次执行分类、归档旧文件、删除重复文件
// 致命错误（目录不存在、文件名耗尽）立即返回，单个文件的失败记录在报告中
func Clean(s *session.Session, opts Options) (*Report, error) {
	logger.Get().Info().
		Str("run_id", s.RunID).
		Str("root", s.Root).
		Bool("dry_run", s.DryRun).
		Bool("organize", opts.Organize).
		Bool("remove_old", opts.RemoveOld).
		Bool("remove_duplicates", opts.RemoveDuplicates).
		Msg("开始清理")

	if err := scanner.EnsureDir(s.Fs, s.Root); err != nil {
		return nil, err
	}

	report := &Report{Organized: map[string][]string{}}

	if opts.Organize {
		c := classifier.NewClassifier(opts.Rules)
		c.SniffExtensionless = opts.SniffExtensionless
		organized, err := c.Organize(s)
		if err != nil {
			return finish(s, report), err
		}
		report.Organized = organized
	}

	if opts.RemoveOld {
		archived, err := retention.Archive(s, opts.Retention)
		if err != nil {
			return finish(s, report), err
		}
		report.Archived = archived
	}

	if opts.RemoveDuplicates {
		removed, err := deduplicator.Remove(s, opts.Keep)
		if err != nil {
			return finish(s, report), err
		}
		report.DuplicatesRemoved = removed
	}

	finish(s, report)
	logger.Get().Info().
		Int("files_moved", report.Summary.FilesMoved).
		Int("files_deleted", report.Summary.FilesDeleted).
		Int("duplicates_removed", report.Summary.DuplicatesRemoved).
		Float64("space_freed_mb", report.Summary.SpaceFreedMB).
		Int("errors", len(report.Errors)).
		Msg("清理完成")
	return report, nil
}

func finish(s *session.Session, report *Report) *Report {
	report.Summary = s.Summary()
	report.Errors = s.Errors()
	return report
}
