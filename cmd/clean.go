package cmd

import (
	"github.com/spf13/cobra"

	"github.com/moyu-x/vibecleaner/app"
)

var cleanOpts app.CleanOptions

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "整理下载目录",
	Long: `按扩展名将目录下的文件移动到分类目录。
可选：将旧文件移动到 Archive 目录，删除重复文件。
使用 --dry-run 预览将要执行的操作。`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := app.RunClean(cfg, &cleanOpts)
		if report != nil {
			printReport(cmd.OutOrStdout(), report, cleanOpts.DryRun)
		}
		return err
	},
}

func init() {
	cleanCmd.Flags().StringVarP(&cleanOpts.Path, "path", "p", "", "要整理的目录（默认使用配置中的下载目录）")
	cleanCmd.Flags().BoolVarP(&cleanOpts.DryRun, "dry-run", "n", false, "预览模式，不实际修改文件")
	cleanCmd.Flags().BoolVar(&cleanOpts.NoOrganize, "no-organize", false, "跳过按类型分类")
	cleanCmd.Flags().BoolVarP(&cleanOpts.RemoveDuplicates, "duplicates", "d", false, "删除重复文件")
	cleanCmd.Flags().BoolVarP(&cleanOpts.RemoveOld, "remove-old", "o", false, "归档旧文件")
	cleanCmd.Flags().IntVar(&cleanOpts.OlderThan, "older-than", 0, "归档多少天以前的文件（默认使用配置，30 天）")
	cleanCmd.Flags().Float64Var(&cleanOpts.MinSizeMB, "min-size", -1, "只归档不小于该大小的文件（MB）")
	cleanCmd.Flags().BoolVar(&cleanOpts.KeepOldest, "keep-oldest", false, "删除重复文件时保留最早的版本")
	cleanCmd.Flags().StringVar(&cleanOpts.LogPath, "log", "", "将操作日志保存为 JSON 文件")

	rootCmd.AddCommand(cleanCmd)
}
