package assistant

import (
	"errors"
	"sort"
	"time"

	"github.com/h2non/filetype"
	"github.com/spf13/afero"

	"github.com/moyu-x/vibecleaner/internal"
	"github.com/moyu-x/vibecleaner/pkg/classifier"
	"github.com/moyu-x/vibecleaner/pkg/scanner"
)

// FolderStats 目录的快速概览，只统计直接子文件
type FolderStats struct {
	TotalFiles          int
	TotalSize           int64
	Extensions          []string
	OldestDays          int
	PotentialDuplicates int
	// MIME 类型 -> 文件数
	Kinds map[string]int
}

// ScanFolder 统计目录概况。目录不存在时返回空统计
func ScanFolder(fs afero.Fs, dir string, now time.Time) (*FolderStats, error) {
	stats := &FolderStats{Kinds: map[string]int{}}

	records, err := scanner.NewFileWalker(fs).List(dir)
	if errors.Is(err, internal.ErrNotFound) {
		return stats, nil
	}
	if err != nil {
		return nil, err
	}

	exts := map[string]bool{}
	bySize := map[int64]int{}
	var oldest time.Time
	for _, rec := range records {
		stats.TotalFiles++
		stats.TotalSize += rec.Size
		if rec.Ext != "" {
			exts[rec.Ext] = true
		}
		bySize[rec.Size]++
		if oldest.IsZero() || rec.ModTime.Before(oldest) {
			oldest = rec.ModTime
		}

		kind, err := classifier.Sniff(fs, rec.Path)
		if err != nil || kind == filetype.Unknown {
			stats.Kinds["unknown"]++
			continue
		}
		stats.Kinds[kind.MIME.Value]++
	}

	for ext := range exts {
		stats.Extensions = append(stats.Extensions, ext)
	}
	sort.Strings(stats.Extensions)

	// 大小相同的文件可能重复，每组多出的文件计数
	for _, n := range bySize {
		if n > 1 {
			stats.PotentialDuplicates += n - 1
		}
	}

	if !oldest.IsZero() {
		stats.OldestDays = int(now.Sub(oldest).Hours() / 24)
	}
	return stats, nil
}
