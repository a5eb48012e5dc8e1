// Package watcher 监控目录中新建的文件并串行交给处理器
package watcher

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/panjf2000/ants/v2"
	"github.com/spf13/afero"

	"github.com/moyu-x/vibecleaner/pkg/logger"
	"github.com/moyu-x/vibecleaner/pkg/scanner"
)

// 停止时等待正在执行的任务的最长时间
const drainTimeout = 10 * time.Second

type Handler interface {
	HandleCreated(path string) error
}

type HandlerFunc func(path string) error

func (f HandlerFunc) HandleCreated(path string) error {
	return f(path)
}

type Watcher struct {
	watcher *fsnotify.Watcher
	pool    *ants.Pool
	handler Handler
	dir     string
	delay   time.Duration
}

// New 开始监控 dir（不递归），delay 为处理前等待文件写完的时间
func New(dir string, delay time.Duration, handler Handler) (*Watcher, error) {
	if err := scanner.EnsureDir(afero.NewOsFs(), dir); err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("创建文件监控失败: %w", err)
	}
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("监控目录失败 %s: %w", dir, err)
	}

	// 单个 worker，保证处理器不会并发执行
	pool, err := ants.NewPool(1)
	if err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("创建 goroutine 池失败: %w", err)
	}

	logger.Get().Info().Str("dir", dir).Dur("delay", delay).Msg("开始监控目录")
	return &Watcher{
		watcher: fsWatcher,
		pool:    pool,
		handler: handler,
		dir:     dir,
		delay:   delay,
	}, nil
}

// Run 处理事件直到 ctx 取消，返回前关闭监控并等待队列中的任务
func (w *Watcher) Run(ctx context.Context) error {
	defer w.close()

	for {
		select {
		case <-ctx.Done():
			logger.Get().Info().Msg("停止监控")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			info, err := os.Stat(event.Name)
			if err != nil || info.IsDir() {
				continue
			}

			logger.Get().Debug().Msgf("检测到新文件: %s", event.Name)
			path := event.Name
			if err := w.pool.Submit(func() { w.handle(path) }); err != nil {
				logger.Get().Error().Err(err).Msgf("提交任务失败: %s", path)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Get().Error().Err(err).Msg("文件监控出错")
		}
	}
}

func (w *Watcher) handle(path string) {
	// 等待下载完成，只是尽力而为
	if w.delay > 0 {
		time.Sleep(w.delay)
	}
	if err := w.handler.HandleCreated(path); err != nil {
		logger.Get().Error().Err(err).Msgf("处理新文件失败: %s", path)
	}
}

func (w *Watcher) close() {
	if err := w.watcher.Close(); err != nil {
		logger.Get().Error().Err(err).Msg("关闭文件监控失败")
	}
	if err := w.pool.ReleaseTimeout(drainTimeout); err != nil {
		logger.Get().Warn().Err(err).Msg("等待处理任务超时")
	}
}
