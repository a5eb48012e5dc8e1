package classifier

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"github.com/spf13/afero"

	"github.com/moyu-x/vibecleaner/internal"
	"github.com/moyu-x/vibecleaner/pkg/fileops"
	"github.com/moyu-x/vibecleaner/pkg/logger"
	"github.com/moyu-x/vibecleaner/pkg/scanner"
	"github.com/moyu-x/vibecleaner/pkg/session"
)

// filetype 需要的文件头大小
const headerSize = 261

type Classifier struct {
	rules []Rule
	// 没有扩展名的文件根据文件头推断扩展名
	SniffExtensionless bool
}

func NewClassifier(rules []Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	copied := make([]Rule, len(rules))
	copy(copied, rules)
	return &Classifier{rules: copied}
}

func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Organize 将根目录下的直接子文件按规则移动到分类目录
// 返回 分类名 -> 原文件名列表（按处理顺序）
func (c *Classifier) Organize(s *session.Session) (map[string][]string, error) {
	logger.Get().Info().Str("root", s.Root).Bool("dry_run", s.DryRun).Msg("开始分类文件")

	records, err := scanner.NewFileWalker(s.Fs).List(s.Root)
	if err != nil {
		return nil, err
	}

	organized := make(map[string][]string)
	for _, rec := range records {
		rule, ok := c.Categorize(s.Fs, rec)
		if !ok {
			logger.Get().Debug().Msgf("未分类文件: %s", rec.Name())
			continue
		}

		destDir := filepath.Join(s.Root, rule.Folder())
		destPath, err := fileops.UniquePath(s.Fs, filepath.Join(destDir, rec.Name()))
		if err != nil {
			if errors.Is(err, internal.ErrCollisionExhausted) {
				return organized, err
			}
			s.Fail(internal.OpMove, rec.Path, err)
			continue
		}

		organized[rule.Name()] = append(organized[rule.Name()], rec.Name())
		s.Record(internal.OpMove, rec.Path, destPath)

		// 目录已存在（包括并发创建）视为成功
		if err := s.Fs.MkdirAll(destDir, 0755); err != nil {
			s.Fail(internal.OpMove, rec.Path, fmt.Errorf("创建类型目录: %w", err))
			continue
		}
		if err := fileops.MoveFile(s.Fs, rec.Path, destPath); err != nil {
			s.Fail(internal.OpMove, rec.Path, err)
			continue
		}

		if s.DryRun {
			continue
		}
		s.Stats.FilesMoved++
		logger.Get().Debug().Msgf("已移动: %s -> %s (%s)", rec.Path, destPath, rule.Name())
	}

	logger.Get().Info().Int("categories", len(organized)).Msg("文件分类完成")
	return organized, nil
}

// Categorize 返回文件命中的第一条规则
func (c *Classifier) Categorize(fs afero.Fs, rec scanner.FileRecord) (Rule, bool) {
	ext := rec.Ext
	if ext == "" && c.SniffExtensionless {
		ext = c.sniffExtension(fs, rec.Path)
	}
	return Match(c.rules, ext)
}

func (c *Classifier) sniffExtension(fs afero.Fs, path string) string {
	kind, err := Sniff(fs, path)
	if err != nil {
		logger.Get().Debug().Err(err).Msgf("读取文件头失败: %s", path)
		return ""
	}
	if kind == filetype.Unknown {
		return ""
	}
	logger.Get().Trace().Msgf("根据文件头识别为 %s: %s", kind.Extension, path)
	return "." + kind.Extension
}

// Sniff 根据文件头识别文件类型，无法识别时返回 filetype.Unknown
func Sniff(fs afero.Fs, path string) (types.Type, error) {
	head, err := readHeader(fs, path)
	if err != nil {
		return filetype.Unknown, err
	}
	kind, err := filetype.Match(head)
	if err != nil {
		return filetype.Unknown, nil
	}
	return kind, nil
}

func readHeader(fs afero.Fs, path string) ([]byte, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	head := make([]byte, headerSize)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return head[:n], nil
}
