package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/moyu-x/vibecleaner/pkg/config"
	"github.com/moyu-x/vibecleaner/pkg/logger"
)

var (
	cfgFile  string
	logLevel string
	logFile  string
	verbose  bool

	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vibecleaner",
	Short: "整理下载目录：分类、归档旧文件、删除重复文件",
	Long: `vibecleaner 是一个整理下载目录的命令行工具。

主要功能:
- 按扩展名将文件移动到 Documents、Images、Videos 等分类目录
- 将长期未修改的文件移动到 Archive 目录，保留原有目录结构
- 基于 SHA-256 内容指纹查找并删除重复文件
- 预览模式下只记录操作，不修改任何文件
- 监控目录，自动整理新下载的文件`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// setup 读取配置并初始化日志，命令行参数覆盖配置
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded

	level := cfg.Logging.Level
	if cmd.Flags().Changed("log-level") {
		level = logLevel
	}
	if verbose {
		level = "debug"
	}
	file := cfg.Logging.File
	if logFile != "" {
		file = config.ExpandPath(logFile)
	}

	if err := logger.Init(level, file); err != nil {
		return err
	}
	if cfg.File != "" {
		logger.Get().Debug().Msgf("使用配置文件: %s", cfg.File)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径（默认搜索 $XDG_CONFIG_HOME/vibecleaner/config.yaml）")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "日志级别: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "日志文件路径")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "显示详细日志")
}
