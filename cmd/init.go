package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moyu-x/vibecleaner/pkg/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "生成默认配置文件",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.WriteDefault(cfgFile, initForce)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "已写入配置文件: %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "覆盖已存在的配置文件")

	rootCmd.AddCommand(initCmd)
}
