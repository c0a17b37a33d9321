// Package prompt 实现带命名占位符的提示词模板。
//
// 占位符写作 {name}，name 由字母、数字和下划线组成且不以数字开头。
// {{ 和 }} 分别表示字面量 { 和 }，其余花括号按原样保留。
package prompt

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrTemplate 是所有模板错误的哨兵值，可用 errors.Is 判断。
var ErrTemplate = errors.New("prompt template error")

// TemplateError 表示填充或校验模板时缺少占位符对应的值，或模板缺少必需的占位符。
type TemplateError struct {
	// Missing 为填充时没有提供值的占位符
	Missing []string
	// Unreferenced 为模板中必需但不存在的占位符
	Unreferenced []string
}

func (e *TemplateError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing values for placeholders: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Unreferenced) > 0 {
		parts = append(parts, "template does not reference placeholders: "+strings.Join(e.Unreferenced, ", "))
	}
	if len(parts) == 0 {
		return ErrTemplate.Error()
	}
	return fmt.Sprintf("%s: %s", ErrTemplate, strings.Join(parts, "; "))
}

func (e *TemplateError) Unwrap() error { return ErrTemplate }

type segment struct {
	text        string
	placeholder bool
}

// Template 是不可变的提示词模板，零值等价于空模板。
type Template struct {
	text     string
	segments []segment
	names    []string
}

// New 解析 text。解析不会失败：不构成占位符的花括号按字面量处理。
func New(text string) Template {
	t := Template{text: text}
	seen := make(map[string]bool)

	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == '{' && i+1 < len(text) && text[i+1] == '{':
			lit.WriteByte('{')
			i += 2
		case c == '}' && i+1 < len(text) && text[i+1] == '}':
			lit.WriteByte('}')
			i += 2
		case c == '{':
			name, ok := scanName(text[i+1:])
			if !ok {
				lit.WriteByte(c)
				i++
				continue
			}
			flush()
			t.segments = append(t.segments, segment{text: name, placeholder: true})
			if !seen[name] {
				seen[name] = true
				t.names = append(t.names, name)
			}
			i += len(name) + 2
		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush()
	return t
}

// scanName 读取 s 开头形如 "name}" 的占位符名。
func scanName(s string) (string, bool) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '}':
			if i == 0 {
				return "", false
			}
			return s[:i], true
		case c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		case c >= '0' && c <= '9':
			if i == 0 {
				return "", false
			}
		default:
			return "", false
		}
	}
	return "", false
}

// Text 返回原始模板文本。
func (t Template) Text() string { return t.text }

// Placeholders 按首次出现的顺序返回去重后的占位符名。
func (t Template) Placeholders() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Has 报告模板是否引用了 name。
func (t Template) Has(name string) bool {
	for _, n := range t.names {
		if n == name {
			return true
		}
	}
	return false
}

// Require 检查模板引用了全部 names。
func (t Template) Require(names ...string) error {
	var absent []string
	for _, name := range names {
		if !t.Has(name) {
			absent = append(absent, name)
		}
	}
	if len(absent) == 0 {
		return nil
	}
	sort.Strings(absent)
	return &TemplateError{Unreferenced: absent}
}

// Populate 用 values 替换所有占位符。任一占位符缺值时返回 *TemplateError，
// 此时不产生任何部分结果。多余的值被忽略。
func (t Template) Populate(values map[string]string) (string, error) {
	var missing []string
	for _, name := range t.names {
		if _, ok := values[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return "", &TemplateError{Missing: missing}
	}

	var b strings.Builder
	b.Grow(len(t.text))
	for _, seg := range t.segments {
		if seg.placeholder {
			b.WriteString(values[seg.text])
			continue
		}
		b.WriteString(seg.text)
	}
	return b.String(), nil
}
