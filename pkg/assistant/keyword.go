package assistant

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/moyu-x/vibecleaner/internal"
)

// KeywordParser 基于关键字的解析，不依赖外部程序
type KeywordParser struct{}

func (KeywordParser) Parse(_ context.Context, request string, _ *FolderStats) (*Plan, error) {
	lower := strings.ToLower(request)

	switch {
	case strings.Contains(lower, "clean") || strings.Contains(lower, "organize"):
		return &Plan{
			Understanding: "整理下载目录",
			Actions:       []Action{Organize{}},
			SafetyNotes:   "默认只预览，不会修改文件",
			Source:        "keyword",
		}, nil

	case strings.Contains(lower, "duplicate"):
		return &Plan{
			Understanding: "删除重复文件",
			Actions:       []Action{RemoveDuplicates{Keep: internal.KeepNewest}},
			SafetyNotes:   "删除前会先列出重复文件",
			Source:        "keyword",
		}, nil

	case strings.Contains(lower, "old") || strings.Contains(lower, "archive"):
		days := firstNumber(lower, internal.DefaultArchiveDays)
		return &Plan{
			Understanding: fmt.Sprintf("处理 %d 天以前的文件", days),
			Actions:       []Action{RemoveOld{Days: days}},
			SafetyNotes:   "旧文件会移动到 Archive 目录，不会删除",
			Source:        "keyword",
		}, nil
	}

	return &Plan{
		Understanding: "查看下载目录的统计信息",
		Actions:       []Action{Scan{}},
		SafetyNotes:   "只读操作",
		Source:        "keyword",
	}, nil
}

// firstNumber 返回第一个纯数字的词
func firstNumber(text string, fallback int) int {
	for _, word := range strings.Fields(text) {
		if n, err := strconv.Atoi(word); err == nil && n >= 0 {
			return n
		}
	}
	return fallback
}

// detectActions 从无法解析为 JSON 的回复文本中识别动作
func detectActions(text string) []Action {
	lower := strings.ToLower(text)

	var actions []Action
	if strings.Contains(lower, "organize") {
		actions = append(actions, Organize{})
	}
	if strings.Contains(lower, "duplicate") {
		actions = append(actions, RemoveDuplicates{Keep: internal.KeepNewest})
	}
	if strings.Contains(lower, "old") || strings.Contains(lower, "archive") {
		actions = append(actions, RemoveOld{Days: internal.DefaultArchiveDays})
	}
	if len(actions) == 0 {
		actions = append(actions, Scan{})
	}
	return actions
}
