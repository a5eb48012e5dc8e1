// Package session 保存一次调用的运行上下文，显式传给每个操作
package session

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/moyu-x/vibecleaner/internal"
	"github.com/moyu-x/vibecleaner/pkg/logger"
	"github.com/moyu-x/vibecleaner/pkg/oplog"
)

type Session struct {
	RunID  string
	Root   string
	Fs     afero.Fs
	DryRun bool
	Log    *oplog.Log
	Stats  *internal.RunStats
	Now    func() time.Time

	mu     sync.Mutex
	errors []error
}

type Option func(*Session)

func WithFs(fs afero.Fs) Option {
	return func(s *Session) { s.Fs = fs }
}

func WithDryRun(dryRun bool) Option {
	return func(s *Session) { s.DryRun = dryRun }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.Now = now }
}

func WithRunID(id string) Option {
	return func(s *Session) { s.RunID = id }
}

// New 创建会话，默认使用真实文件系统和当前时间
// 预览模式下各操作在 PreviewFs 上执行，后续步骤看到的是前面步骤修改后的目录
func New(root string, opts ...Option) *Session {
	s := &Session{
		RunID: uuid.NewString(),
		Root:  filepath.Clean(root),
		Fs:    afero.NewOsFs(),
		Log:   oplog.New(),
		Stats: &internal.RunStats{},
		Now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.DryRun {
		s.Fs = NewPreviewFs(s.Fs, s.Root)
	}
	return s
}

// Record 记录一次决策，预览模式和实际运行都会调用
func (s *Session) Record(op internal.OperationKind, source, destination string) {
	s.Log.Record(op, source, destination, s.Now(), s.DryRun)
	logger.Get().Debug().
		Str("run_id", s.RunID).
		Str("operation", string(op)).
		Str("source", source).
		Str("destination", destination).
		Bool("dry_run", s.DryRun).
		Msg("记录操作")
}

// Fail 记录单个文件的失败，处理继续进行
func (s *Session) Fail(op internal.OperationKind, path string, err error) {
	fileErr := &internal.FileError{Op: op, Path: path, Err: err}
	logger.Get().Error().Err(err).Str("operation", string(op)).Msgf("处理文件失败: %s", path)

	s.mu.Lock()
	s.errors = append(s.errors, fileErr)
	s.mu.Unlock()
}

// Errors 返回本次运行中可恢复的错误
func (s *Session) Errors() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]error, len(s.errors))
	copy(out, s.errors)
	return out
}

// Summary 统计摘要
func (s *Session) Summary() internal.Summary {
	return s.Stats.Summarize(s.Log.Len())
}
