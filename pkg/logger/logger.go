package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	Logger *zerolog.Logger
	mu     sync.Mutex
)

// ParseLevel 解析日志级别，未知级别回退为 info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Init 初始化 zerolog 日志
// level: 日志级别 ("trace", "debug", "info", "warn", "error")
// file: 日志文件路径，为空时仅输出到控制台
func Init(level string, file string) error {
	var output io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "2006-01-02 15:04:05"}

	if file != "" {
		// 文件中保留 JSON 格式，控制台保持可读
		fileWriter, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		output = zerolog.MultiLevelWriter(output, fileWriter)
	}

	logger := zerolog.New(output).With().Timestamp().Logger().Level(ParseLevel(level))
	Set(logger)
	return nil
}

// Set 替换全局 logger
func Set(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	Logger = &l
}

// Get 返回全局 logger 实例
// 如果 logger 未初始化，返回一个默认的 logger（输出到 /dev/null）
func Get() *zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if Logger == nil {
		logger := zerolog.New(io.Discard)
		Logger = &logger
	}
	return Logger
}
