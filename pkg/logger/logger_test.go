package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	testCases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"DEBUG":   zerolog.DebugLevel,
		"trace":   zerolog.TraceLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"info":    zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
	}

	for input, expected := range testCases {
		if got := ParseLevel(input); got != expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", input, got, expected)
		}
	}
}

func TestInit_WritesToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "run.log")

	if err := Init("info", logFile); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { Set(zerolog.New(nil)) })

	Get().Info().Str("path", "/tmp/x").Msg("测试日志")
	Get().Debug().Msg("不应该写入")

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("读取日志文件失败: %v", err)
	}

	if !strings.Contains(string(data), "测试日志") {
		t.Errorf("Expected log file to contain message, got %s", data)
	}
	if strings.Contains(string(data), "不应该写入") {
		t.Error("Debug message should be filtered at info level")
	}
}

func TestSetAndGet(t *testing.T) {
	var buf bytes.Buffer
	Set(zerolog.New(&buf))
	t.Cleanup(func() { Set(zerolog.New(nil)) })

	Get().Warn().Msg("hello")

	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("Expected buffer to contain message, got %q", buf.String())
	}
}
