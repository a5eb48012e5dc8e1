// Package oplog 记录每一次文件系统操作决策（无论是否为预览模式）
package oplog

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/vibecleaner/internal"
)

// Entry 单条操作记录
type Entry struct {
	Operation   internal.OperationKind `json:"operation"`
	Source      string                 `json:"source"`
	Destination *string                `json:"destination"`
	Timestamp   time.Time              `json:"timestamp"`
	DryRun      bool                   `json:"dry_run"`
}

// Dest 返回目标路径，没有目标时为空字符串
func (e Entry) Dest() string {
	if e.Destination == nil {
		return ""
	}
	return *e.Destination
}

// Log 只追加的操作日志，生命周期为一次调用
type Log struct {
	mu      sync.Mutex
	entries []Entry
}

func New() *Log {
	return &Log{}
}

// Record 追加一条记录，destination 为空表示没有目标路径
func (l *Log) Record(op internal.OperationKind, source, destination string, at time.Time, dryRun bool) Entry {
	entry := Entry{
		Operation: op,
		Source:    source,
		Timestamp: at,
		DryRun:    dryRun,
	}
	if destination != "" {
		dst := destination
		entry.Destination = &dst
	}

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()
	return entry
}

// Entries 返回记录的副本
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Save 以 JSON 数组形式写入文件，父目录不存在时创建
func (l *Log) Save(fs afero.Fs, path string) error {
	entries := l.Entries()
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("创建日志目录: %w", err)
	}
	if err := afero.WriteFile(fs, path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("写入操作日志: %w", err)
	}
	return nil
}
