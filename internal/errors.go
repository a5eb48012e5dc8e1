package internal

import (
	"errors"
	"fmt"
)

var (
	// 目标目录不存在
	ErrNotFound = errors.New("directory not found")

	// 找不到可用的文件名
	ErrCollisionExhausted = errors.New("collision suffixes exhausted")

	// 另一个进程正在处理同一目录
	ErrLocked = errors.New("directory is locked by another process")
)

// FileError 单个文件操作失败，不中断整个处理流程
type FileError struct {
	Op   OperationKind
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
