// Package retention 选出长期未修改的大文件并移动到归档目录
package retention

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/moyu-x/vibecleaner/internal"
	"github.com/moyu-x/vibecleaner/pkg/fileops"
	"github.com/moyu-x/vibecleaner/pkg/logger"
	"github.com/moyu-x/vibecleaner/pkg/scanner"
	"github.com/moyu-x/vibecleaner/pkg/session"
)

type Policy struct {
	Days      int
	MinSizeMB float64
}

// DefaultPolicy 默认 30 天，不限制大小
func DefaultPolicy() Policy {
	return Policy{Days: internal.DefaultArchiveDays}
}

func (p Policy) Validate() error {
	if p.Days < 0 {
		return fmt.Errorf("天数不能为负数: %d", p.Days)
	}
	if p.MinSizeMB < 0 {
		return fmt.Errorf("最小文件大小不能为负数: %v", p.MinSizeMB)
	}
	return nil
}

// Cutoff 修改时间严格早于该时间的文件才会被选中
func (p Policy) Cutoff(now time.Time) time.Time {
	return now.Add(-time.Duration(p.Days) * 24 * time.Hour)
}

func (p Policy) minBytes() int64 {
	return int64(p.MinSizeMB * internal.BytesPerMB)
}

// Select 递归扫描根目录（跳过归档目录），返回满足策略的文件
func Select(s *session.Session, p Policy) ([]scanner.FileRecord, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	cutoff := p.Cutoff(s.Now())
	minBytes := p.minBytes()
	logger.Get().Info().
		Time("cutoff", cutoff).
		Int64("min_bytes", minBytes).
		Msg("开始查找旧文件")

	walker := scanner.NewFileWalker(s.Fs)
	walker.SkipDirs = []string{internal.ArchiveDirName}

	var selected []scanner.FileRecord
	err := walker.Walk(s.Root, func(rec scanner.FileRecord) error {
		if rec.ModTime.Before(cutoff) && rec.Size >= minBytes {
			selected = append(selected, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Info().Msgf("找到 %d 个旧文件", len(selected))
	return selected, nil
}

// Archive 将选中的文件移动到 Archive/<相对路径>，保持原目录结构
func Archive(s *session.Session, p Policy) ([]scanner.FileRecord, error) {
	selected, err := Select(s, p)
	if err != nil {
		return nil, err
	}

	archiveRoot := filepath.Join(s.Root, internal.ArchiveDirName)
	for _, rec := range selected {
		destPath, err := fileops.UniquePath(s.Fs, filepath.Join(archiveRoot, rec.RelPath))
		if err != nil {
			if errors.Is(err, internal.ErrCollisionExhausted) {
				return selected, err
			}
			s.Fail(internal.OpArchive, rec.Path, err)
			continue
		}

		s.Record(internal.OpArchive, rec.Path, destPath)

		if err := s.Fs.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			s.Fail(internal.OpArchive, rec.Path, fmt.Errorf("创建归档目录: %w", err))
			continue
		}
		if err := fileops.MoveFile(s.Fs, rec.Path, destPath); err != nil {
			s.Fail(internal.OpArchive, rec.Path, err)
			continue
		}

		if s.DryRun {
			continue
		}
		s.Stats.FilesMoved++
		s.Stats.BytesFreed += rec.Size
		logger.Get().Info().Msgf("已归档: %s -> %s", rec.Path, destPath)
	}

	return selected, nil
}
