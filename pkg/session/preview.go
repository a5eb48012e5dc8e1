package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/vibecleaner/pkg/logger"
)

// PreviewFs 预览模式使用的文件系统
// 目录结构复制到内存中，文件内容和元数据仍从底层读取；
// 移动、删除、创建目录只修改内存中的目录结构，底层文件系统保持不变
type PreviewFs struct {
	base  afero.Fs
	layer afero.Fs

	mu sync.RWMutex
	// 当前路径 -> 底层路径
	origin map[string]string
	mtimes map[string]time.Time
}

// NewPreviewFs 复制 root 下的目录结构，root 不存在时结果中也不存在
func NewPreviewFs(base afero.Fs, root string) *PreviewFs {
	p := &PreviewFs{
		base:   base,
		layer:  afero.NewMemMapFs(),
		origin: make(map[string]string),
		mtimes: make(map[string]time.Time),
	}

	err := afero.Walk(base, filepath.Clean(root), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			logger.Get().Debug().Err(err).Str("path", path).Msg("预览时读取路径失败")
			return nil
		}
		if info.IsDir() {
			return p.layer.MkdirAll(path, 0755)
		}
		f, err := p.layer.Create(path)
		if err != nil {
			return err
		}
		p.origin[path] = path
		return f.Close()
	})
	if err != nil {
		logger.Get().Warn().Err(err).Str("root", root).Msg("复制目录结构失败")
	}
	return p
}

func (p *PreviewFs) Name() string { return "PreviewFs" }

func (p *PreviewFs) source(name string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	src, ok := p.origin[name]
	return src, ok
}

func (p *PreviewFs) Stat(name string) (os.FileInfo, error) {
	return p.stat(filepath.Clean(name), false)
}

// LstatIfPossible 底层支持时不跟随符号链接，与实际运行的遍历结果一致
func (p *PreviewFs) LstatIfPossible(name string) (os.FileInfo, bool, error) {
	info, err := p.stat(filepath.Clean(name), true)
	return info, true, err
}

func (p *PreviewFs) stat(name string, lstat bool) (os.FileInfo, error) {
	info, err := p.layer.Stat(name)
	if err != nil {
		return nil, err
	}
	src, ok := p.source(name)
	if info.IsDir() || !ok {
		return info, nil
	}

	var baseInfo os.FileInfo
	if l, isLstater := p.base.(afero.Lstater); lstat && isLstater {
		baseInfo, _, err = l.LstatIfPossible(src)
	} else {
		baseInfo, err = p.base.Stat(src)
	}
	if err != nil {
		return nil, err
	}

	p.mu.RLock()
	mtime, changed := p.mtimes[name]
	p.mu.RUnlock()
	if !changed {
		mtime = baseInfo.ModTime()
	}
	return &previewInfo{FileInfo: baseInfo, name: filepath.Base(name), modTime: mtime}, nil
}

func (p *PreviewFs) Open(name string) (afero.File, error) {
	name = filepath.Clean(name)
	info, err := p.layer.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		f, err := p.layer.Open(name)
		if err != nil {
			return nil, err
		}
		return &previewDir{File: f, fs: p, path: name}, nil
	}
	if src, ok := p.source(name); ok {
		return p.base.Open(src)
	}
	return p.layer.Open(name)
}

// OpenFile 只读打开底层文件；写入只允许内存中的新文件，截断时丢弃底层内容
func (p *PreviewFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_APPEND|os.O_CREATE|os.O_TRUNC) == 0 {
		return p.Open(name)
	}
	name = filepath.Clean(name)
	if _, ok := p.source(name); ok {
		if flag&os.O_TRUNC == 0 {
			return nil, &os.PathError{Op: "open", Path: name, Err: syscall.EPERM}
		}
		p.forget(name)
	}
	return p.layer.OpenFile(name, flag, perm)
}

func (p *PreviewFs) Create(name string) (afero.File, error) {
	return p.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
}

func (p *PreviewFs) Mkdir(name string, perm os.FileMode) error {
	return p.layer.Mkdir(name, perm)
}

func (p *PreviewFs) MkdirAll(path string, perm os.FileMode) error {
	return p.layer.MkdirAll(path, perm)
}

func (p *PreviewFs) Remove(name string) error {
	name = filepath.Clean(name)
	if err := p.layer.Remove(name); err != nil {
		return err
	}
	p.forget(name)
	return nil
}

func (p *PreviewFs) RemoveAll(path string) error {
	path = filepath.Clean(path)
	if err := p.layer.RemoveAll(path); err != nil {
		return err
	}
	p.forget(path)
	return nil
}

func (p *PreviewFs) Rename(oldname, newname string) error {
	oldname, newname = filepath.Clean(oldname), filepath.Clean(newname)
	if err := p.layer.Rename(oldname, newname); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for _, path := range matching(p.origin, oldname) {
		moved := newname + strings.TrimPrefix(path, oldname)
		p.origin[moved] = p.origin[path]
		delete(p.origin, path)
		if mtime, ok := p.mtimes[path]; ok {
			p.mtimes[moved] = mtime
			delete(p.mtimes, path)
		}
	}
	return nil
}

func (p *PreviewFs) Chmod(name string, mode os.FileMode) error {
	return p.layer.Chmod(name, mode)
}

func (p *PreviewFs) Chown(name string, uid, gid int) error {
	return p.layer.Chown(name, uid, gid)
}

func (p *PreviewFs) Chtimes(name string, atime, mtime time.Time) error {
	name = filepath.Clean(name)
	if err := p.layer.Chtimes(name, atime, mtime); err != nil {
		return err
	}
	if _, ok := p.source(name); ok {
		p.mu.Lock()
		p.mtimes[name] = mtime
		p.mu.Unlock()
	}
	return nil
}

// forget 移除 path 及其子路径与底层文件的对应关系
func (p *PreviewFs) forget(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, key := range matching(p.origin, path) {
		delete(p.origin, key)
		delete(p.mtimes, key)
	}
}

// matching 返回等于 path 或位于 path 之下的键
func matching(m map[string]string, path string) []string {
	prefix := path + string(filepath.Separator)
	var keys []string
	for key := range m {
		if key == path || strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys
}

type previewInfo struct {
	os.FileInfo
	name    string
	modTime time.Time
}

func (i *previewInfo) Name() string       { return i.name }
func (i *previewInfo) ModTime() time.Time { return i.modTime }

// previewDir 目录列表中的文件信息替换为底层文件的信息
type previewDir struct {
	afero.File
	fs   *PreviewFs
	path string
}

func (d *previewDir) Readdir(count int) ([]os.FileInfo, error) {
	infos, err := d.File.Readdir(count)
	for i, info := range infos {
		if info.IsDir() {
			continue
		}
		if full, statErr := d.fs.stat(filepath.Join(d.path, info.Name()), true); statErr == nil {
			infos[i] = full
		}
	}
	return infos, err
}
