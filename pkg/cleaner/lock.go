package cleaner

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/gofrs/flock"

	"github.com/moyu-x/vibecleaner/internal"
	"github.com/moyu-x/vibecleaner/pkg/logger"
)

// Lock 目录级别的跨进程写锁
type Lock struct {
	file *flock.Flock
	root string
}

// Acquire 在 XDG 状态目录中为 root 获取非阻塞锁
func Acquire(root string) (*Lock, error) {
	lockPath, err := xdg.StateFile(filepath.Join(internal.AppName, "locks", lockName(root)))
	if err != nil {
		return nil, fmt.Errorf("获取锁文件路径失败: %w", err)
	}
	return AcquireAt(lockPath, root)
}

// AcquireAt 使用指定的锁文件路径
func AcquireAt(lockPath, root string) (*Lock, error) {
	file := flock.New(lockPath)
	ok, err := file.TryLock()
	if err != nil {
		return nil, fmt.Errorf("获取锁失败: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", internal.ErrLocked, root)
	}

	logger.Get().Debug().Str("root", root).Str("lock", lockPath).Msg("已获取目录锁")
	return &Lock{file: file, root: root}, nil
}

func (l *Lock) Release() error {
	if err := l.file.Unlock(); err != nil {
		return fmt.Errorf("释放锁失败: %w", err)
	}
	logger.Get().Debug().Str("root", l.root).Msg("已释放目录锁")
	return nil
}

func lockName(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	return hex.EncodeToString(sum[:8]) + ".lock"
}
