// Package fileops 提供带冲突重命名的文件移动
package fileops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/moyu-x/vibecleaner/internal"
	"github.com/moyu-x/vibecleaner/pkg/logger"
)

// UniquePath 目标已存在时在扩展名前追加自增数字后缀
// report.pdf -> report_1.pdf -> report_2.pdf，.env -> .env_1
func UniquePath(fs afero.Fs, targetPath string) (string, error) {
	exists, err := afero.Exists(fs, targetPath)
	if err != nil {
		return "", fmt.Errorf("检查文件是否存在失败: %w", err)
	}
	if !exists {
		return targetPath, nil
	}

	ext := filepath.Ext(targetPath)
	// .env 这类只有前导点的文件名没有扩展名
	if ext == filepath.Base(targetPath) {
		ext = ""
	}
	baseName := strings.TrimSuffix(targetPath, ext)

	for i := 1; i <= internal.MaxCollisionSuffix; i++ {
		newPath := fmt.Sprintf("%s_%d%s", baseName, i, ext)
		exists, err := afero.Exists(fs, newPath)
		if err != nil {
			return "", fmt.Errorf("检查文件是否存在失败: %w", err)
		}
		if !exists {
			logger.Get().Debug().
				Str("original_path", targetPath).
				Str("new_path", newPath).
				Msg("文件名冲突，自动重命名")
			return newPath, nil
		}
	}

	return "", fmt.Errorf("%w: %s", internal.ErrCollisionExhausted, targetPath)
}

// MoveFile 使用 rename 移动文件，失败时（例如跨卷）复制后删除
func MoveFile(fs afero.Fs, src, dst string) error {
	err := fs.Rename(src, dst)
	if err == nil {
		return nil
	}
	logger.Get().Debug().
		Err(err).
		Str("source", src).
		Str("destination", dst).
		Msg("直接重命名失败，尝试复制后删除")

	info, err := fs.Stat(src)
	if err != nil {
		return fmt.Errorf("读取源文件信息失败: %w", err)
	}

	if err := copyFile(fs, src, dst, info.Mode().Perm()); err != nil {
		return err
	}

	// 保留修改时间，归档和去重依赖它
	if err := fs.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		logger.Get().Debug().Err(err).Str("path", dst).Msg("恢复修改时间失败")
	}

	if err := fs.Remove(src); err != nil {
		return fmt.Errorf("删除原文件失败: %w", err)
	}
	return nil
}

func copyFile(fs afero.Fs, src, dst string, perm os.FileMode) error {
	sourceFile, err := fs.Open(src)
	if err != nil {
		return fmt.Errorf("打开源文件失败: %w", err)
	}
	defer sourceFile.Close()

	destFile, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("创建目标文件失败: %w", err)
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		destFile.Close()
		_ = fs.Remove(dst)
		return fmt.Errorf("复制文件内容失败: %w", err)
	}
	return destFile.Close()
}
