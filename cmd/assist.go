package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moyu-x/vibecleaner/app"
	"github.com/moyu-x/vibecleaner/pkg/assistant"
)

var (
	assistProvider string
	assistPath     string
)

var assistCmd = &cobra.Command{
	Use:   "assist <request...>",
	Short: "用自然语言描述要做的整理",
	Long: `将请求交给外部文本生成程序或关键字解析，转换为整理动作并预览结果。
例如: vibecleaner assist archive files older than 60 days`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := app.RunAssist(cmd.Context(), cfg, strings.Join(args, " "), assistProvider, assistPath)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), assistant.Format(resp))
		return nil
	},
}

func init() {
	assistCmd.Flags().StringVar(&assistProvider, "provider", "", "解析方式: keyword 或 command（默认使用配置）")
	assistCmd.Flags().StringVarP(&assistPath, "path", "p", "", "目标目录（默认使用配置中的下载目录）")

	rootCmd.AddCommand(assistCmd)
}
