package parser

import (
	"regexp"
	"strings"
)

var horizontalSpace = regexp.MustCompile(`[ \t\f\v\x{00A0}\x{2000}-\x{200B}\x{3000}]+`)

// NormalizeText 版面提取使用的规范化
// 行内空白折叠为单个空格，去除行首尾空白，连续空行折叠为一个空行（保留段落），去掉首尾空行。
// 对已规范化的文本再次调用结果不变。
func NormalizeText(text string) string {
	lines := splitLines(text)
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(horizontalSpace.ReplaceAllString(line, " "))
		if line == "" {
			blank = len(out) > 0
			continue
		}
		if blank {
			out = append(out, "")
			blank = false
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// NormalizeBasic 基础提取使用的轻量规范化：行结构保留，行内空白折叠为单个空格，空行全部删除
func NormalizeBasic(text string) string {
	lines := splitLines(text)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(horizontalSpace.ReplaceAllString(line, " "))
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
