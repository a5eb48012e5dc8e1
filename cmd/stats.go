package cmd

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/moyu-x/vibecleaner/app"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "显示历史清理统计",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := app.RunStats(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		totals := result.Totals
		lastRun := "从未"
		if !totals.LastRun.IsZero() {
			lastRun = humanize.Time(totals.LastRun)
		}
		fmt.Fprintln(out, renderTable([]string{"统计", "数值"}, [][]string{
			{"运行次数", strconv.FormatInt(totals.Runs, 10)},
			{"移动的文件", humanize.Comma(totals.FilesMoved)},
			{"删除的文件", humanize.Comma(totals.FilesDeleted)},
			{"删除的重复文件", humanize.Comma(totals.DuplicatesRemoved)},
			{"释放空间", humanize.IBytes(uint64(totals.BytesFreed))},
			{"最近运行", lastRun},
		}, []columnAlignment{alignLeft, alignRight}))

		if len(result.Recent) == 0 {
			return nil
		}
		rows := make([][]string, 0, len(result.Recent))
		for _, r := range result.Recent {
			mode := "执行"
			if r.DryRun {
				mode = "预览"
			}
			rows = append(rows, []string{
				r.CreatedAt.Format("2006-01-02 15:04"),
				r.Command,
				mode,
				strconv.Itoa(r.FilesMoved),
				strconv.Itoa(r.FilesDeleted),
				humanize.IBytes(uint64(r.BytesFreed)),
				r.Root,
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"时间", "命令", "模式", "移动", "删除", "释放", "目录"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
		))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
