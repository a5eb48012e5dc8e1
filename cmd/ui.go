package cmd

import (
	"github.com/spf13/cobra"

	"github.com/moyu-x/vibecleaner/app"
)

var uiPath string

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "启动交互式终端界面",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.RunUI(cfg, uiPath)
	},
}

func init() {
	uiCmd.Flags().StringVarP(&uiPath, "path", "p", "", "目标目录（默认使用配置中的下载目录）")

	rootCmd.AddCommand(uiCmd)
}
