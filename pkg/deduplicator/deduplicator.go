// Package deduplicator 按内容查找并删除重复文件
package deduplicator

import (
	"fmt"
	"sort"

	"github.com/moyu-x/vibecleaner/internal"
	"github.com/moyu-x/vibecleaner/pkg/hasher"
	"github.com/moyu-x/vibecleaner/pkg/logger"
	"github.com/moyu-x/vibecleaner/pkg/scanner"
	"github.com/moyu-x/vibecleaner/pkg/session"
)

// Group 内容完全相同的一组文件，按扫描顺序排列
type Group struct {
	Fingerprint string
	Size        int64
	Files       []scanner.FileRecord
}

// Wasted 删除多余副本可释放的字节数
func (g Group) Wasted() int64 {
	if len(g.Files) < 2 {
		return 0
	}
	return g.Size * int64(len(g.Files)-1)
}

// Find 递归扫描根目录，返回至少包含两个文件的重复组
// 先按大小过滤，再比较文件头摘要，最后计算完整指纹
func Find(s *session.Session) ([]Group, error) {
	logger.Get().Info().Str("root", s.Root).Msg("开始查找重复文件")

	var records []scanner.FileRecord
	err := scanner.NewFileWalker(s.Fs).Walk(s.Root, func(rec scanner.FileRecord) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}

	bySize := make(map[int64]int, len(records))
	for _, rec := range records {
		bySize[rec.Size]++
	}

	// 文件头摘要，读取失败的文件直接得到不可读指纹
	heads := make(map[int]string)
	headCount := make(map[string]int)
	fingerprints := make(map[int]string)
	for i, rec := range records {
		if bySize[rec.Size] < 2 {
			continue
		}
		digest, err := hasher.HeadDigest(s.Fs, rec.Path, internal.HeadDigestSize)
		if err != nil {
			logger.Get().Warn().Err(err).Msgf("无法读取文件，跳过去重: %s", rec.Path)
			fingerprints[i] = hasher.UnreadableFingerprint(rec.Path)
			continue
		}
		key := fmt.Sprintf("%d:%016x", rec.Size, digest)
		heads[i] = key
		headCount[key]++
	}

	for i, rec := range records {
		key, ok := heads[i]
		if !ok || headCount[key] < 2 {
			continue
		}
		fp, err := hasher.Fingerprint(s.Fs, rec.Path)
		if err != nil {
			logger.Get().Warn().Err(err).Msgf("无法读取文件，跳过去重: %s", rec.Path)
			fp = hasher.UnreadableFingerprint(rec.Path)
		}
		fingerprints[i] = fp
	}

	var groups []Group
	index := make(map[string]int)
	for i, rec := range records {
		fp, ok := fingerprints[i]
		if !ok || hasher.IsUnreadable(fp) {
			continue
		}
		if pos, seen := index[fp]; seen {
			groups[pos].Files = append(groups[pos].Files, rec)
			continue
		}
		index[fp] = len(groups)
		groups = append(groups, Group{Fingerprint: fp, Size: rec.Size, Files: []scanner.FileRecord{rec}})
	}

	result := groups[:0]
	for _, g := range groups {
		if len(g.Files) > 1 {
			result = append(result, g)
		}
	}

	logger.Get().Info().Int("files", len(records)).Int("groups", len(result)).Msg("重复文件查找完成")
	return result, nil
}

// Order 按保留策略排序，第一个是保留的文件
// 稳定排序，修改时间相同时保持扫描顺序
func Order(files []scanner.FileRecord, policy internal.KeepPolicy) []scanner.FileRecord {
	ordered := make([]scanner.FileRecord, len(files))
	copy(ordered, files)
	sort.SliceStable(ordered, func(i, j int) bool {
		if policy == internal.KeepOldest {
			return ordered[i].ModTime.Before(ordered[j].ModTime)
		}
		return ordered[i].ModTime.After(ordered[j].ModTime)
	})
	return ordered
}

// Remove 查找重复组并删除每组中除保留文件以外的副本
// 返回决定删除的文件数，预览模式下相同
func Remove(s *session.Session, policy internal.KeepPolicy) (int, error) {
	groups, err := Find(s)
	if err != nil {
		return 0, err
	}
	return RemoveGroups(s, groups, policy), nil
}

// RemoveGroups 对已找到的重复组执行删除
func RemoveGroups(s *session.Session, groups []Group, policy internal.KeepPolicy) int {
	removed := 0
	for _, group := range groups {
		ordered := Order(group.Files, policy)
		keep := ordered[0]
		logger.Get().Debug().Msgf("保留文件: %s (%d 个副本)", keep.Path, len(ordered)-1)

		for _, dup := range ordered[1:] {
			removed++
			s.Record(internal.OpDeleteDuplicate, dup.Path, "")

			if err := s.Fs.Remove(dup.Path); err != nil {
				s.Fail(internal.OpDeleteDuplicate, dup.Path, err)
				continue
			}
			if s.DryRun {
				continue
			}
			s.Stats.FilesDeleted++
			s.Stats.DuplicatesRemoved++
			s.Stats.BytesFreed += dup.Size
			logger.Get().Info().Msgf("删除重复文件: %s", dup.Path)
		}
	}
	return removed
}
