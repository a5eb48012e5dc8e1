package classifier

import (
	"strings"
)

// Rule 分类规则：名称、有序扩展名列表、目标子目录
// 构造后不可修改
type Rule struct {
	name       string
	folder     string
	extensions []string
}

// NewRule 创建规则，扩展名统一为小写并带前导点，folder 为空时使用 name
func NewRule(name, folder string, extensions ...string) Rule {
	if folder == "" {
		folder = name
	}
	exts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	return Rule{name: name, folder: folder, extensions: exts}
}

func (r Rule) Name() string   { return r.name }
func (r Rule) Folder() string { return r.folder }

// Extensions 返回扩展名列表的副本
func (r Rule) Extensions() []string {
	out := make([]string, len(r.extensions))
	copy(out, r.extensions)
	return out
}

// Matches 按声明顺序检查扩展名，ext 需要是小写带点的形式
func (r Rule) Matches(ext string) bool {
	for _, candidate := range r.extensions {
		if candidate == ext {
			return true
		}
	}
	return false
}

// Match 按规则表顺序查找第一个匹配的规则
func Match(rules []Rule, ext string) (Rule, bool) {
	ext = strings.ToLower(ext)
	if ext == "" {
		return Rule{}, false
	}
	for _, rule := range rules {
		if rule.Matches(ext) {
			return rule, true
		}
	}
	return Rule{}, false
}

// DefaultRules 默认规则表，顺序即优先级
func DefaultRules() []Rule {
	return []Rule{
		NewRule("Documents", "Documents", ".pdf", ".doc", ".docx", ".txt", ".odt", ".rtf", ".tex", ".wpd"),
		NewRule("Images", "Images", ".jpg", ".jpeg", ".png", ".gif", ".svg", ".webp", ".ico", ".bmp", ".tiff"),
		NewRule("Videos", "Videos", ".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv", ".webm", ".mpeg", ".mpg"),
		NewRule("Audio", "Audio", ".mp3", ".wav", ".flac", ".aac", ".ogg", ".wma", ".m4a", ".opus"),
		NewRule("Archives", "Archives", ".zip", ".rar", ".7z", ".tar", ".gz", ".bz2", ".xz", ".iso"),
		NewRule("Code", "Code", ".py", ".js", ".html", ".css", ".cpp", ".java", ".c", ".rs", ".go", ".php"),
		NewRule("Data", "Data", ".json", ".xml", ".csv", ".sql", ".db", ".sqlite"),
		NewRule("Executables", "Software", ".exe", ".msi", ".app", ".deb", ".rpm", ".dmg", ".pkg"),
	}
}
