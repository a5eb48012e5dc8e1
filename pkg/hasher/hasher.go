package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"

	"github.com/moyu-x/vibecleaner/internal"
	"github.com/moyu-x/vibecleaner/pkg/logger"
)

// 无法读取的文件使用路径作为退化指纹，不会与十六进制摘要冲突
const unreadablePrefix = "unreadable:"

// UnreadableFingerprint 返回基于路径的退化指纹
func UnreadableFingerprint(path string) string {
	return unreadablePrefix + path
}

// IsUnreadable 判断指纹是否为退化指纹
func IsUnreadable(fingerprint string) bool {
	return len(fingerprint) >= len(unreadablePrefix) && fingerprint[:len(unreadablePrefix)] == unreadablePrefix
}

// Fingerprint 计算整个文件内容的 SHA-256，按固定大小分块顺序读取
func Fingerprint(fs afero.Fs, filePath string) (string, error) {
	logger.Get().Trace().Msgf("计算文件指纹: %s", filePath)

	h := sha256.New()
	if err := digest(fs, filePath, h, -1); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HeadDigest 计算文件前 limit 字节的 xxHash，用于同大小文件的快速预筛选
func HeadDigest(fs afero.Fs, filePath string, limit int64) (uint64, error) {
	h := xxhash.New()
	if err := digest(fs, filePath, h, limit); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

func digest(fs afero.Fs, filePath string, h hash.Hash, limit int64) error {
	file, err := fs.Open(filePath)
	if err != nil {
		logger.Get().Debug().Err(err).Msgf("无法打开文件: %s", filePath)
		return err
	}
	defer file.Close()

	var src io.Reader = file
	if limit >= 0 {
		src = io.LimitReader(file, limit)
	}

	buf := make([]byte, internal.HashBufferSize)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			logger.Get().Debug().Err(err).Msgf("读取文件失败: %s", filePath)
			return err
		}
	}
}
