package cmd

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/moyu-x/vibecleaner/app"
	"github.com/moyu-x/vibecleaner/pkg/deduplicator"
)

var dupOpts app.DuplicatesOptions

var duplicatesCmd = &cobra.Command{
	Use:   "duplicates",
	Short: "查找重复文件",
	Long: `递归扫描目录，按文件大小、文件头摘要和 SHA-256 指纹查找内容完全相同的文件。
默认只列出重复文件，使用 --remove 删除多余的副本。`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := app.RunDuplicates(cfg, &dupOpts)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(result.Groups) == 0 {
			fmt.Fprintln(out, "没有找到重复文件")
			return nil
		}

		var wasted int64
		rows := make([][]string, 0)
		for i, group := range result.Groups {
			wasted += group.Wasted()
			for j, file := range deduplicator.Order(group.Files, result.Keep) {
				status := "删除"
				if j == 0 {
					status = "保留"
				}
				rows = append(rows, []string{strconv.Itoa(i + 1), file.RelPath, humanize.IBytes(uint64(file.Size)), humanize.Time(file.ModTime), status})
			}
		}
		fmt.Fprintln(out, renderTable(
			[]string{"组", "文件", "大小", "修改时间", "操作"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft},
		))
		fmt.Fprintf(out, "%d 组重复文件，可释放 %s\n", len(result.Groups), humanize.IBytes(uint64(wasted)))

		if dupOpts.Remove {
			fmt.Fprintln(out, renderSummary(result.Summary))
			printErrors(out, result.Errors)
		} else {
			fmt.Fprintln(out, "使用 --remove 删除标记为删除的文件")
		}
		return nil
	},
}

func init() {
	duplicatesCmd.Flags().StringVarP(&dupOpts.Path, "path", "p", "", "要扫描的目录（默认使用配置中的下载目录）")
	duplicatesCmd.Flags().BoolVar(&dupOpts.Remove, "remove", false, "删除重复文件")
	duplicatesCmd.Flags().BoolVar(&dupOpts.KeepOldest, "keep-oldest", false, "保留最早的版本（默认保留最新的）")

	rootCmd.AddCommand(duplicatesCmd)
}
