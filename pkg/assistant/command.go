package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/moyu-x/vibecleaner/internal"
	"github.com/moyu-x/vibecleaner/pkg/logger"
)

const defaultTimeout = 30 * time.Second

// Parser 把请求转换为执行计划
type Parser interface {
	Parse(ctx context.Context, request string, stats *FolderStats) (*Plan, error)
}

// Runner 执行外部命令，prompt 从标准输入传入，返回标准输出
type Runner func(ctx context.Context, name string, args []string, stdin string) (string, error)

// CommandParser 调用外部文本生成程序解析请求
// 程序缺失、失败或超时时退回 Fallback
type CommandParser struct {
	Command  string
	Timeout  time.Duration
	Fallback Parser
	Run      Runner
}

func NewCommandParser(command string, timeout time.Duration) *CommandParser {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &CommandParser{
		Command:  command,
		Timeout:  timeout,
		Fallback: KeywordParser{},
		Run:      execRunner,
	}
}

func (p *CommandParser) Parse(ctx context.Context, request string, stats *FolderStats) (*Plan, error) {
	args := strings.Fields(p.Command)
	if len(args) == 0 {
		logger.Get().Debug().Msg("未配置外部命令，使用关键字解析")
		return p.fallback().Parse(ctx, request, stats)
	}

	prompt, err := BuildPrompt(request, stats)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	output, err := p.Run(runCtx, args[0], args[1:], prompt)
	if err != nil {
		logger.Get().Warn().Err(err).Str("command", args[0]).Msg("外部命令不可用，使用关键字解析")
		return p.fallback().Parse(ctx, request, stats)
	}

	plan, err := DecodePlan(output)
	if err != nil {
		logger.Get().Debug().Err(err).Msg("回复不是有效的 JSON，按文本识别动作")
		return &Plan{
			Understanding: strings.TrimSpace(output),
			Actions:       detectActions(output),
			Source:        "command",
		}, nil
	}
	plan.Source = "command"
	return plan, nil
}

func (p *CommandParser) fallback() Parser {
	if p.Fallback == nil {
		return KeywordParser{}
	}
	return p.Fallback
}

func execRunner(ctx context.Context, name string, args []string, stdin string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("执行 %s 超时: %w", name, ctx.Err())
		}
		return "", fmt.Errorf("执行 %s 失败: %w: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

var promptTemplate = template.Must(template.New("prompt").Parse(`You are VibeCleaner, an assistant that organizes a Downloads folder.
Always prefer safe actions. Changes are previewed before they are applied.

Current folder state:
- Total files: {{.TotalFiles}}
- Total size: {{.TotalSize}}
- File types: {{.Extensions}}
- Oldest file: {{.OldestDays}} days old
- Potential duplicates: {{.PotentialDuplicates}}

User request: "{{.Request}}"

Available actions:
- ORGANIZE: sort files into category folders
- REMOVE_OLD: archive old files, parameters {"days": N}
- REMOVE_DUPLICATES: delete duplicate files, parameters {"keep": "newest" or "oldest"}
- SCAN: show statistics without changes

Respond only with JSON:
{
  "understanding": "what the user wants",
  "actions": [{"type": "ACTION_TYPE", "parameters": {}, "description": "what this does"}],
  "safety_notes": "important considerations"
}
`))

// BuildPrompt 生成发送给外部程序的提示词
func BuildPrompt(request string, stats *FolderStats) (string, error) {
	if stats == nil {
		stats = &FolderStats{}
	}
	exts := stats.Extensions
	if len(exts) > 10 {
		exts = exts[:10]
	}

	var buf bytes.Buffer
	err := promptTemplate.Execute(&buf, map[string]any{
		"TotalFiles":          stats.TotalFiles,
		"TotalSize":           humanize.IBytes(uint64(stats.TotalSize)),
		"Extensions":          strings.Join(exts, ", "),
		"OldestDays":          stats.OldestDays,
		"PotentialDuplicates": stats.PotentialDuplicates,
		"Request":             request,
	})
	if err != nil {
		return "", fmt.Errorf("生成提示词失败: %w", err)
	}
	return buf.String(), nil
}

type planJSON struct {
	Understanding string `json:"understanding"`
	Actions       []struct {
		Type       string         `json:"type"`
		Parameters map[string]any `json:"parameters"`
	} `json:"actions"`
	SafetyNotes string `json:"safety_notes"`
}

// DecodePlan 解析外部程序返回的 JSON，允许前后有多余的文本
func DecodePlan(text string) (*Plan, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, errors.New("回复中没有 JSON 对象")
	}

	var raw planJSON
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("解析回复失败: %w", err)
	}

	plan := &Plan{Understanding: raw.Understanding, SafetyNotes: raw.SafetyNotes}
	for _, a := range raw.Actions {
		switch ActionKind(strings.ToUpper(strings.TrimSpace(a.Type))) {
		case KindOrganize:
			plan.Actions = append(plan.Actions, Organize{})
		case KindRemoveDuplicates:
			keep, err := internal.ParseKeepPolicy(stringParam(a.Parameters, "keep"))
			if err != nil {
				keep = internal.KeepNewest
			}
			plan.Actions = append(plan.Actions, RemoveDuplicates{Keep: keep})
		case KindRemoveOld:
			plan.Actions = append(plan.Actions, RemoveOld{Days: intParam(a.Parameters, "days", internal.DefaultArchiveDays)})
		case KindScan:
			plan.Actions = append(plan.Actions, Scan{})
		default:
			logger.Get().Warn().Msgf("忽略不支持的动作: %s", a.Type)
		}
	}
	if len(plan.Actions) == 0 {
		plan.Actions = []Action{Scan{}}
	}
	return plan, nil
}

func stringParam(params map[string]any, key string) string {
	if s, ok := params[key].(string); ok {
		return s
	}
	return ""
}

func intParam(params map[string]any, key string, fallback int) int {
	switch v := params[key].(type) {
	case float64:
		if v >= 0 {
			return int(v)
		}
	case string:
		return firstNumber(v, fallback)
	}
	return fallback
}
