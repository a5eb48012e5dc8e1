package assistant

import (
	"context"
	"time"

	"github.com/spf13/afero"

	"github.com/moyu-x/vibecleaner/internal"
	"github.com/moyu-x/vibecleaner/pkg/classifier"
	"github.com/moyu-x/vibecleaner/pkg/deduplicator"
	"github.com/moyu-x/vibecleaner/pkg/logger"
	"github.com/moyu-x/vibecleaner/pkg/retention"
	"github.com/moyu-x/vibecleaner/pkg/session"
)

// Preview 单个动作的执行结果
type Preview struct {
	Action    ActionKind
	Organized map[string][]string
	// 重复组数
	Groups int
	// 删除或归档的文件数
	Count int
	Days  int
	Stats *FolderStats
}

type Result struct {
	RunID    string
	DryRun   bool
	Previews []Preview
	Summary  internal.Summary
	Stats    internal.RunStats
	Errors   []error
}

// Executor 在一个会话中依次执行动作，默认只预览
type Executor struct {
	Root               string
	Fs                 afero.Fs
	DryRun             bool
	Rules              []classifier.Rule
	SniffExtensionless bool
	// 归档旧文件时的最小文件大小
	MinSizeMB float64
	Now       func() time.Time
}

func NewExecutor(root string) *Executor {
	return &Executor{
		Root:   root,
		Fs:     afero.NewOsFs(),
		DryRun: true,
		Rules:  classifier.DefaultRules(),
		Now:    time.Now,
	}
}

func (e *Executor) Execute(actions []Action) (*Result, error) {
	s := session.New(e.Root, session.WithFs(e.Fs), session.WithDryRun(e.DryRun), session.WithClock(e.Now))
	result := &Result{RunID: s.RunID, DryRun: e.DryRun}

	for _, action := range actions {
		logger.Get().Info().Str("action", string(action.Kind())).Bool("dry_run", e.DryRun).Msg("执行动作")

		preview := Preview{Action: action.Kind()}
		switch a := action.(type) {
		case Organize:
			c := classifier.NewClassifier(e.Rules)
			c.SniffExtensionless = e.SniffExtensionless
			organized, err := c.Organize(s)
			if err != nil {
				return nil, err
			}
			preview.Organized = organized

		case RemoveDuplicates:
			groups, err := deduplicator.Find(s)
			if err != nil {
				return nil, err
			}
			preview.Groups = len(groups)
			preview.Count = deduplicator.RemoveGroups(s, groups, a.Keep)

		case RemoveOld:
			archived, err := retention.Archive(s, retention.Policy{Days: a.Days, MinSizeMB: e.MinSizeMB})
			if err != nil {
				return nil, err
			}
			preview.Days = a.Days
			preview.Count = len(archived)

		case Scan:
			stats, err := ScanFolder(s.Fs, e.Root, e.Now())
			if err != nil {
				return nil, err
			}
			preview.Stats = stats
		}
		result.Previews = append(result.Previews, preview)
	}

	result.Summary = s.Summary()
	result.Stats = *s.Stats
	result.Errors = s.Errors()
	return result, nil
}

// Assistant 组合解析和执行
type Assistant struct {
	Parser   Parser
	Executor *Executor
}

type Response struct {
	Request string
	Plan    *Plan
	Result  *Result
}

func (a *Assistant) Process(ctx context.Context, request string) (*Response, error) {
	stats, err := ScanFolder(a.Executor.Fs, a.Executor.Root, a.Executor.Now())
	if err != nil {
		return nil, err
	}

	plan, err := a.Parser.Parse(ctx, request, stats)
	if err != nil {
		return nil, err
	}
	logger.Get().Info().Str("source", plan.Source).Int("actions", len(plan.Actions)).Msg("解析请求完成")

	result, err := a.Executor.Execute(plan.Actions)
	if err != nil {
		return nil, err
	}
	return &Response{Request: request, Plan: plan, Result: result}, nil
}
