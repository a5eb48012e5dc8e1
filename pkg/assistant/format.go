package assistant

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// Format 将处理结果渲染为终端文本
func Format(resp *Response) string {
	var b strings.Builder

	if resp.Plan != nil {
		if resp.Plan.Understanding != "" {
			fmt.Fprintf(&b, "理解: %s\n\n", resp.Plan.Understanding)
		}
		if len(resp.Plan.Actions) > 0 {
			b.WriteString("计划动作:\n")
			for _, action := range resp.Plan.Actions {
				fmt.Fprintf(&b, "  • %s\n", action.Describe())
			}
			b.WriteString("\n")
		}
		if resp.Plan.SafetyNotes != "" {
			fmt.Fprintf(&b, "注意: %s\n\n", resp.Plan.SafetyNotes)
		}
	}

	if resp.Result != nil {
		b.WriteString(FormatResult(resp.Result))
		if resp.Result.DryRun {
			b.WriteString("\n执行这些修改: vibecleaner clean\n")
		}
	}
	return b.String()
}

// FormatResult 渲染各动作的结果和统计摘要
func FormatResult(result *Result) string {
	var b strings.Builder

	if result.DryRun {
		b.WriteString("预览:\n")
	} else {
		b.WriteString("结果:\n")
	}

	for _, p := range result.Previews {
		switch p.Action {
		case KindOrganize:
			if len(p.Organized) == 0 {
				b.WriteString("  没有需要整理的文件\n")
			}
			categories := make([]string, 0, len(p.Organized))
			for category := range p.Organized {
				categories = append(categories, category)
			}
			sort.Strings(categories)
			for _, category := range categories {
				fmt.Fprintf(&b, "  %s: %d 个文件\n", category, len(p.Organized[category]))
			}
		case KindRemoveDuplicates:
			fmt.Fprintf(&b, "  找到 %d 组重复文件，%d 个副本待删除\n", p.Groups, p.Count)
		case KindRemoveOld:
			fmt.Fprintf(&b, "  找到 %d 个 %d 天以前的文件\n", p.Count, p.Days)
		case KindScan:
			if p.Stats == nil {
				continue
			}
			fmt.Fprintf(&b, "  文件数: %d\n", p.Stats.TotalFiles)
			fmt.Fprintf(&b, "  总大小: %s\n", humanize.IBytes(uint64(p.Stats.TotalSize)))
			fmt.Fprintf(&b, "  最早的文件: %d 天前\n", p.Stats.OldestDays)
			fmt.Fprintf(&b, "  可能重复: %d 个文件\n", p.Stats.PotentialDuplicates)
			if len(p.Stats.Extensions) > 0 {
				fmt.Fprintf(&b, "  扩展名: %s\n", strings.Join(p.Stats.Extensions, ", "))
			}
		}
	}

	fmt.Fprintf(&b, "  操作总数: %d\n", result.Summary.TotalOperations)
	fmt.Fprintf(&b, "  释放空间: %.2f MB\n", result.Summary.SpaceFreedMB)
	if len(result.Errors) > 0 {
		fmt.Fprintf(&b, "  失败: %d 个文件\n", len(result.Errors))
	}
	return b.String()
}
