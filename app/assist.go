package app

import (
	"context"

	"github.com/moyu-x/vibecleaner/pkg/assistant"
	"github.com/moyu-x/vibecleaner/pkg/config"
	"github.com/moyu-x/vibecleaner/pkg/database"
	"github.com/moyu-x/vibecleaner/pkg/logger"
)

// NewParser 根据 provider 选择解析器
func NewParser(cfg *config.Config, provider string) assistant.Parser {
	if provider == "" {
		provider = cfg.Assistant.Provider
	}
	if provider == "command" {
		return assistant.NewCommandParser(cfg.Assistant.Command, cfg.Assistant.Timeout)
	}
	return assistant.KeywordParser{}
}

func newExecutor(cfg *config.Config, root string, dryRun bool) *assistant.Executor {
	e := assistant.NewExecutor(root)
	e.DryRun = dryRun
	e.Rules = cfg.Rules()
	e.SniffExtensionless = cfg.Organize.SniffExtensionless
	e.MinSizeMB = cfg.Cleanup.MinFileSizeMB
	return e
}

// RunAssist 解析请求并以预览方式执行
func RunAssist(ctx context.Context, cfg *config.Config, request, provider, path string) (*assistant.Response, error) {
	root := ResolveRoot(cfg, path)
	logger.Get().Debug().Str("root", root).Str("request", request).Msg("处理助手请求")

	a := &assistant.Assistant{
		Parser:   NewParser(cfg, provider),
		Executor: newExecutor(cfg, root, true),
	}
	return a.Process(ctx, request)
}

// ExecuteAction 执行单个动作，非预览时加锁并写入运行历史
func ExecuteAction(cfg *config.Config, root string, action assistant.Action, dryRun bool) (*assistant.Result, error) {
	release, err := acquire(root, dryRun)
	if err != nil {
		return nil, err
	}
	defer release()

	result, err := newExecutor(cfg, root, dryRun).Execute([]assistant.Action{action})
	if err != nil {
		return nil, err
	}

	if !dryRun {
		recordRun(cfg, database.NewRunRecord(result.RunID, "ui", root, false, result.Stats, result.Summary.TotalOperations, len(result.Errors)))
	}
	return result, nil
}
