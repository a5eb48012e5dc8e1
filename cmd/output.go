package cmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/moyu-x/vibecleaner/internal"
	"github.com/moyu-x/vibecleaner/pkg/cleaner"
)

func renderSummary(summary internal.Summary) string {
	rows := [][]string{
		{"移动的文件", strconv.Itoa(summary.FilesMoved)},
		{"删除的文件", strconv.Itoa(summary.FilesDeleted)},
		{"删除的重复文件", strconv.Itoa(summary.DuplicatesRemoved)},
		{"释放空间", fmt.Sprintf("%.2f MB", summary.SpaceFreedMB)},
		{"操作总数", strconv.Itoa(summary.TotalOperations)},
	}
	return renderTable([]string{"统计", "数值"}, rows, []columnAlignment{alignLeft, alignRight})
}

func printReport(w io.Writer, report *cleaner.Report, dryRun bool) {
	if dryRun {
		fmt.Fprintln(w, "预览模式：没有修改任何文件")
	}

	if len(report.Organized) > 0 {
		categories := make([]string, 0, len(report.Organized))
		for category := range report.Organized {
			categories = append(categories, category)
		}
		sort.Strings(categories)

		rows := make([][]string, 0, len(categories))
		for _, category := range categories {
			rows = append(rows, []string{category, strconv.Itoa(len(report.Organized[category]))})
		}
		fmt.Fprintln(w, renderTable([]string{"分类", "文件数"}, rows, []columnAlignment{alignLeft, alignRight}))
	}

	if len(report.Archived) > 0 {
		rows := make([][]string, 0, len(report.Archived))
		for _, rec := range report.Archived {
			rows = append(rows, []string{rec.RelPath, humanize.IBytes(uint64(rec.Size)), humanize.Time(rec.ModTime)})
		}
		fmt.Fprintln(w, renderTable([]string{"归档文件", "大小", "修改时间"}, rows, []columnAlignment{alignLeft, alignRight, alignLeft}))
	}

	fmt.Fprintln(w, renderSummary(report.Summary))
	printErrors(w, report.Errors)
}

func printErrors(w io.Writer, errs []error) {
	if len(errs) == 0 {
		return
	}
	fmt.Fprintf(w, "%d 个文件处理失败:\n", len(errs))
	for _, err := range errs {
		fmt.Fprintf(w, "  - %v\n", err)
	}
}
