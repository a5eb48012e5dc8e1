package internal

import (
	"fmt"
	"math"
	"strings"
)

// 操作类型
type OperationKind string

const (
	OpMove            OperationKind = "move"
	OpArchive         OperationKind = "archive"
	OpDeleteDuplicate OperationKind = "delete_duplicate"
)

// 重复文件保留策略
type KeepPolicy string

const (
	KeepNewest KeepPolicy = "newest"
	KeepOldest KeepPolicy = "oldest"
)

// ParseKeepPolicy 解析保留策略，空字符串视为 newest
func ParseKeepPolicy(s string) (KeepPolicy, error) {
	switch KeepPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", KeepNewest:
		return KeepNewest, nil
	case KeepOldest:
		return KeepOldest, nil
	}
	return "", fmt.Errorf("无效的保留策略: %q", s)
}

// 运行统计，只在实际修改文件系统时递增
type RunStats struct {
	FilesMoved        int
	FilesDeleted      int
	DuplicatesRemoved int
	BytesFreed        int64
}

// 提供给报告使用的统计摘要
type Summary struct {
	FilesMoved        int     `json:"files_moved"`
	FilesDeleted      int     `json:"files_deleted"`
	DuplicatesRemoved int     `json:"duplicates_removed"`
	SpaceFreedMB      float64 `json:"space_freed_mb"`
	TotalOperations   int     `json:"total_operations"`
}

// Summarize 生成统计摘要
func (s RunStats) Summarize(totalOperations int) Summary {
	return Summary{
		FilesMoved:        s.FilesMoved,
		FilesDeleted:      s.FilesDeleted,
		DuplicatesRemoved: s.DuplicatesRemoved,
		SpaceFreedMB:      BytesToMB(s.BytesFreed),
		TotalOperations:   totalOperations,
	}
}

// BytesToMB 字节转换为 MiB，保留两位小数
func BytesToMB(n int64) float64 {
	return math.Round(float64(n)/BytesPerMB*100) / 100
}
