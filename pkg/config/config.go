// Package config 读取 YAML 配置，提供默认值
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/moyu-x/vibecleaner/internal"
	"github.com/moyu-x/vibecleaner/pkg/classifier"
)

type RuleConfig struct {
	Name       string
	Folder     string
	Extensions []string
}

type Config struct {
	DownloadsPath string `mapstructure:"downloads_path"`
	Logging       struct {
		Level string
		File  string
	}
	Organize struct {
		SniffExtensionless bool `mapstructure:"sniff_extensionless"`
		Rules              []RuleConfig
	}
	Cleanup struct {
		ArchiveAfterDays int     `mapstructure:"archive_after_days"`
		MinFileSizeMB    float64 `mapstructure:"min_file_size_mb"`
		Keep             string
	}
	Watch struct {
		SettleDelay time.Duration `mapstructure:"settle_delay"`
	}
	Assistant struct {
		Provider string
		Command  string
		Timeout  time.Duration
	}
	History struct {
		Path string
	}

	// 实际读取的配置文件，没有找到时为空
	File string `mapstructure:"-"`
}

// DefaultPath 默认配置文件位置
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, internal.AppName, internal.ConfigName+".yaml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("downloads_path", xdg.UserDirs.Download)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
	v.SetDefault("organize.sniff_extensionless", false)
	v.SetDefault("organize.rules", defaultRules())
	v.SetDefault("cleanup.archive_after_days", internal.DefaultArchiveDays)
	v.SetDefault("cleanup.min_file_size_mb", 0)
	v.SetDefault("cleanup.keep", string(internal.KeepNewest))
	v.SetDefault("watch.settle_delay", (internal.DefaultSettleDelayMillis * time.Millisecond).String())
	v.SetDefault("assistant.provider", "keyword")
	v.SetDefault("assistant.command", "")
	v.SetDefault("assistant.timeout", "30s")
	v.SetDefault("history.path", filepath.Join(xdg.StateHome, internal.AppName, internal.HistoryFileName))
}

func defaultRules() []map[string]any {
	rules := classifier.DefaultRules()
	out := make([]map[string]any, 0, len(rules))
	for _, rule := range rules {
		out = append(out, map[string]any{
			"name":       rule.Name(),
			"folder":     rule.Folder(),
			"extensions": rule.Extensions(),
		})
	}
	return out
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(strings.ToUpper(internal.AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// Load 读取配置。path 为空时按顺序搜索 XDG 配置目录、~/.vibecleaner 和当前目录，
// 找不到配置文件时使用默认值
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(ExpandPath(path))
	} else {
		v.SetConfigName(internal.ConfigName)
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, internal.AppName))
		v.AddConfigPath("$HOME/." + internal.AppName)
		v.AddConfigPath(".")
	}

	found := true
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// 指定的文件不存在时同样使用默认值，init 会在该位置创建
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		found = false
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	if found {
		cfg.File = v.ConfigFileUsed()
	}
	cfg.DownloadsPath = ExpandPath(cfg.DownloadsPath)
	cfg.History.Path = ExpandPath(cfg.History.Path)
	cfg.Logging.File = ExpandPath(cfg.Logging.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, err := internal.ParseKeepPolicy(c.Cleanup.Keep); err != nil {
		return err
	}
	if c.Cleanup.ArchiveAfterDays < 0 {
		return fmt.Errorf("cleanup.archive_after_days 不能为负数: %d", c.Cleanup.ArchiveAfterDays)
	}
	if c.Cleanup.MinFileSizeMB < 0 {
		return fmt.Errorf("cleanup.min_file_size_mb 不能为负数: %v", c.Cleanup.MinFileSizeMB)
	}
	switch c.Assistant.Provider {
	case "keyword", "command":
	default:
		return fmt.Errorf("未知的 assistant.provider: %q", c.Assistant.Provider)
	}
	for i, rule := range c.Organize.Rules {
		if rule.Name == "" || len(rule.Extensions) == 0 {
			return fmt.Errorf("organize.rules[%d] 需要 name 和 extensions", i)
		}
	}
	return nil
}

// Rules 转换为分类规则，未配置时使用默认规则
func (c *Config) Rules() []classifier.Rule {
	if len(c.Organize.Rules) == 0 {
		return classifier.DefaultRules()
	}
	rules := make([]classifier.Rule, 0, len(c.Organize.Rules))
	for _, rc := range c.Organize.Rules {
		rules = append(rules, classifier.NewRule(rc.Name, rc.Folder, rc.Extensions...))
	}
	return rules
}

// KeepPolicy 返回已校验的保留策略
func (c *Config) KeepPolicy() internal.KeepPolicy {
	policy, err := internal.ParseKeepPolicy(c.Cleanup.Keep)
	if err != nil {
		return internal.KeepNewest
	}
	return policy
}

// WriteDefault 写入默认配置，文件已存在且 force 为 false 时返回错误
func WriteDefault(path string, force bool) (string, error) {
	if path == "" {
		path = DefaultPath()
	}
	path = ExpandPath(path)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("创建配置目录失败: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	var err error
	if force {
		err = v.WriteConfigAs(path)
	} else {
		err = v.SafeWriteConfigAs(path)
	}
	if err != nil {
		return "", fmt.Errorf("写入配置文件失败: %w", err)
	}
	return path, nil
}

// ExpandPath 展开 ~ 和环境变量
func ExpandPath(path string) string {
	if path == "" {
		return path
	}
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
