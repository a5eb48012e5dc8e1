// Package assistant 将自然语言请求转换为清理动作并以预览方式执行
package assistant

import (
	"fmt"

	"github.com/moyu-x/vibecleaner/internal"
)

type ActionKind string

const (
	KindOrganize         ActionKind = "ORGANIZE"
	KindRemoveDuplicates ActionKind = "REMOVE_DUPLICATES"
	KindRemoveOld        ActionKind = "REMOVE_OLD"
	KindScan             ActionKind = "SCAN"
)

// Action 只有下面四种实现
type Action interface {
	Kind() ActionKind
	Describe() string
	isAction()
}

type Organize struct{}

type RemoveDuplicates struct {
	Keep internal.KeepPolicy
}

type RemoveOld struct {
	Days int
}

type Scan struct{}

func (Organize) Kind() ActionKind         { return KindOrganize }
func (RemoveDuplicates) Kind() ActionKind { return KindRemoveDuplicates }
func (RemoveOld) Kind() ActionKind        { return KindRemoveOld }
func (Scan) Kind() ActionKind             { return KindScan }

func (Organize) Describe() string { return "按类型将文件整理到分类目录" }

func (a RemoveDuplicates) Describe() string {
	if a.Keep == internal.KeepOldest {
		return "删除重复文件，保留最早的版本"
	}
	return "删除重复文件，保留最新的版本"
}

func (a RemoveOld) Describe() string {
	return fmt.Sprintf("归档 %d 天以前的文件", a.Days)
}

func (Scan) Describe() string { return "分析目录，不做任何修改" }

func (Organize) isAction()         {}
func (RemoveDuplicates) isAction() {}
func (RemoveOld) isAction()        {}
func (Scan) isAction()             {}

// Plan 解析得到的执行计划
type Plan struct {
	Understanding string
	Actions       []Action
	SafetyNotes   string
	// 生成计划的解析器: keyword 或 command
	Source string
}
