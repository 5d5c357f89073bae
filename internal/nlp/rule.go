package nlp

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/sentences"
	"github.com/clipperhouse/uax29/v2/words"
	"github.com/rs/zerolog"

	"resume-extractor/internal/logger"
)

// RuleAnalyzer 基于 Unicode 文本切分（UAX #29）与规则实体识别的分析器
type RuleAnalyzer struct {
	gazetteer [][]string
	logger    *zerolog.Logger
}

var _ Analyzer = (*RuleAnalyzer)(nil)

// RuleOption 规则分析器的配置选项
type RuleOption func(*RuleAnalyzer)

// WithGazetteer 追加已知机构名
func WithGazetteer(names ...string) RuleOption {
	return func(a *RuleAnalyzer) {
		for _, n := range names {
			a.addGazetteer(n)
		}
	}
}

// WithRuleLogger 配置日志
func WithRuleLogger(l *zerolog.Logger) RuleOption {
	return func(a *RuleAnalyzer) {
		a.logger = logger.OrNop(l)
	}
}

// NewRuleAnalyzer 创建规则分析器，内置常见雇主名录
func NewRuleAnalyzer(opts ...RuleOption) *RuleAnalyzer {
	a := &RuleAnalyzer{logger: logger.Nop()}
	for _, n := range defaultGazetteer {
		a.addGazetteer(n)
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger.Debug().Int("gazetteer_size", len(a.gazetteer)).Msg("规则分析器已创建")
	return a
}

func (a *RuleAnalyzer) addGazetteer(name string) {
	var seq []string
	for _, t := range a.Tokens(name) {
		seq = append(seq, strings.ToLower(t.Text))
	}
	if len(seq) > 0 {
		a.gazetteer = append(a.gazetteer, seq)
	}
}

// Available 规则分析器总是可用
func (a *RuleAnalyzer) Available() bool {
	return true
}

// 以这些缩写结尾的片段不是句末，同一行内与下一片段合并
var abbreviations = map[string]bool{
	"jan": true, "feb": true, "mar": true, "apr": true, "jun": true, "jul": true,
	"aug": true, "sep": true, "sept": true, "oct": true, "nov": true, "dec": true,
	"sr": true, "jr": true, "inc": true, "ltd": true, "co": true,
}

// Sentences 按 UAX #29 分句，换行是硬分隔；缩写后的断句在同一行内合并回去
func (a *RuleAnalyzer) Sentences(text string) []string {
	var out []string
	var pending strings.Builder
	flush := func() {
		if s := strings.TrimSpace(pending.String()); s != "" {
			out = append(out, s)
		}
		pending.Reset()
	}

	iter := sentences.FromString(text)
	for iter.Next() {
		raw := iter.Value()
		pending.WriteString(raw)
		if !strings.ContainsAny(raw, "\n\r") && endsWithAbbreviation(raw) {
			continue
		}
		flush()
	}
	flush()
	return out
}

// endsWithAbbreviation 片段的最后一个词是否为已知缩写，例如 "Jan." 或 "Sr."
func endsWithAbbreviation(fragment string) bool {
	fields := strings.Fields(fragment)
	if len(fields) == 0 {
		return false
	}
	last := fields[len(fields)-1]
	if !strings.HasSuffix(last, ".") {
		return false
	}
	word := strings.TrimLeft(strings.TrimSuffix(last, "."), "(\"'")
	return abbreviations[strings.ToLower(word)]
}

// Tokens 按 UAX #29 分词
// 紧跟在词后的 '+' 与 '#' 并入前一个词，保证 C++、C# 这类技能名是一个词元
func (a *RuleAnalyzer) Tokens(text string) []Token {
	var out []Token
	iter := words.FromString(text)
	for iter.Next() {
		v := iter.Value()
		if (v == "+" || v == "#") && len(out) > 0 && out[len(out)-1].End == iter.Start() {
			last := &out[len(out)-1]
			last.Text += v
			last.End = iter.End()
			continue
		}
		if !isWordLike(v) {
			continue
		}
		out = append(out, Token{Text: v, Start: iter.Start(), End: iter.End()})
	}
	return out
}

func isWordLike(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// Words 返回小写词序列，供上下文窗口等按词比较的场景使用
func Words(a Analyzer, text string) []string {
	tokens := a.Tokens(text)
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = strings.ToLower(t.Text)
	}
	return out
}
