package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/vibecleaner/internal"
	"github.com/moyu-x/vibecleaner/pkg/logger"
)

// FileRecord 扫描时得到的文件快照，扫描结束后丢弃
type FileRecord struct {
	Path    string
	RelPath string
	Size    int64
	ModTime time.Time
	Ext     string
}

// Name 返回文件名
func (r FileRecord) Name() string {
	return filepath.Base(r.Path)
}

// NewFileRecord 根据 FileInfo 构造记录，扩展名统一为小写
func NewFileRecord(root, path string, info os.FileInfo) FileRecord {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = info.Name()
	}
	return FileRecord{
		Path:    path,
		RelPath: rel,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Ext:     strings.ToLower(filepath.Ext(info.Name())),
	}
}

type FileWalker struct {
	Fs            afero.Fs
	IncludeHidden bool
	// 相对于根目录、需要整体跳过的子目录
	SkipDirs []string
}

func NewFileWalker(fs afero.Fs) *FileWalker {
	return &FileWalker{
		Fs:            fs,
		IncludeHidden: true,
	}
}

// EnsureDir 检查目录是否存在
func EnsureDir(fs afero.Fs, dir string) error {
	ok, err := afero.DirExists(fs, dir)
	if err != nil {
		return fmt.Errorf("检查目录 %s: %w", dir, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", internal.ErrNotFound, dir)
	}
	return nil
}

// Walk 递归遍历根目录下的所有普通文件，顺序为字典序
func (w *FileWalker) Walk(root string, callback func(rec FileRecord) error) error {
	if err := EnsureDir(w.Fs, root); err != nil {
		return err
	}

	skip := make(map[string]bool, len(w.SkipDirs))
	for _, dir := range w.SkipDirs {
		skip[filepath.Clean(dir)] = true
	}

	return afero.Walk(w.Fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			logger.Get().Debug().Err(err).Str("path", path).Msg("访问路径出错")
			return nil
		}

		if info.IsDir() {
			if path == root {
				return nil
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr == nil && skip[rel] {
				return filepath.SkipDir
			}
			if !w.IncludeHidden && isHidden(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}
		if !w.IncludeHidden && isHidden(info.Name()) {
			return nil
		}

		return callback(NewFileRecord(root, path, info))
	})
}

// List 列出目录下的直接子文件（不递归），顺序为字典序
func (w *FileWalker) List(dir string) ([]FileRecord, error) {
	if err := EnsureDir(w.Fs, dir); err != nil {
		return nil, err
	}

	infos, err := afero.ReadDir(w.Fs, dir)
	if err != nil {
		return nil, fmt.Errorf("读取目录 %s: %w", dir, err)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })

	records := make([]FileRecord, 0, len(infos))
	for _, info := range infos {
		if !info.Mode().IsRegular() {
			continue
		}
		if !w.IncludeHidden && isHidden(info.Name()) {
			continue
		}
		records = append(records, NewFileRecord(dir, filepath.Join(dir, info.Name()), info))
	}
	return records, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
