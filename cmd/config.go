package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/moyu-x/vibecleaner/pkg/config"
)

var configEdit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "显示或编辑配置",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if configEdit {
			return editConfig(cmd)
		}

		file := cfg.File
		if file == "" {
			file = "（未找到，使用默认值）"
		}
		rules := cfg.Rules()
		names := make([]string, 0, len(rules))
		for _, r := range rules {
			names = append(names, r.Name())
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"配置项", "值"}, [][]string{
			{"配置文件", file},
			{"downloads_path", cfg.DownloadsPath},
			{"logging.level", cfg.Logging.Level},
			{"organize.sniff_extensionless", strconv.FormatBool(cfg.Organize.SniffExtensionless)},
			{"organize.rules", strings.Join(names, ", ")},
			{"cleanup.archive_after_days", strconv.Itoa(cfg.Cleanup.ArchiveAfterDays)},
			{"cleanup.min_file_size_mb", strconv.FormatFloat(cfg.Cleanup.MinFileSizeMB, 'f', -1, 64)},
			{"cleanup.keep", string(cfg.KeepPolicy())},
			{"watch.settle_delay", cfg.Watch.SettleDelay.String()},
			{"assistant.provider", cfg.Assistant.Provider},
			{"history.path", cfg.History.Path},
		}, nil))
		return nil
	},
}

// editConfig 用 $EDITOR 打开配置文件，不存在时先写入默认配置
func editConfig(cmd *cobra.Command) error {
	path := cfg.File
	if path == "" {
		written, err := config.WriteDefault(cfgFile, false)
		if err != nil {
			return err
		}
		path = written
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)

	c := exec.Command(parts[0], append(parts[1:], path)...)
	c.Stdin = os.Stdin
	c.Stdout = cmd.OutOrStdout()
	c.Stderr = cmd.ErrOrStderr()
	if err := c.Run(); err != nil {
		return fmt.Errorf("打开编辑器失败: %w", err)
	}
	return nil
}

func init() {
	configCmd.Flags().BoolVarP(&configEdit, "edit", "e", false, "使用 $EDITOR 编辑配置文件")

	rootCmd.AddCommand(configCmd)
}
