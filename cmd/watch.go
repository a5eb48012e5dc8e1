package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/moyu-x/vibecleaner/app"
)

var watchDelay time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "监控目录并自动整理新文件",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.OutOrStdout(), "正在监控 %s，按 Ctrl+C 停止\n", app.ResolveRoot(cfg, path))
		return app.RunWatch(ctx, cfg, path, watchDelay)
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDelay, "delay", 0, "新文件出现后等待的时间（默认使用配置，1s）")

	rootCmd.AddCommand(watchCmd)
}
