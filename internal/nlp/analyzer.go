// Package nlp 提供可插拔的语言分析能力：分句、分词与命名实体识别。
// 依赖分析能力的组件先检查 Available()，不可用时走各自的正则回退路径。
package nlp

// 实体标签
const (
	LabelOrg  = "ORG"
	LabelGPE  = "GPE"
	LabelDate = "DATE"
)

// Token 一个词元及其在原文中的字节区间
type Token struct {
	Text  string
	Start int
	End   int
}

// Entity 一个命名实体
type Entity struct {
	Text  string
	Label string
	Start int
	End   int
}

// Analyzer 语言分析器
type Analyzer interface {
	// Available 分析能力是否可用
	Available() bool
	// Sentences 分句，结果已去除首尾空白且不含空句
	Sentences(text string) []string
	// Tokens 分词，只返回包含字母或数字的词元
	Tokens(text string) []Token
	// Entities 命名实体，按起始位置排序
	Entities(text string) []Entity
}

// NopAnalyzer 空实现，Available 恒为 false
type NopAnalyzer struct{}

var _ Analyzer = NopAnalyzer{}

func (NopAnalyzer) Available() bool           { return false }
func (NopAnalyzer) Sentences(string) []string { return nil }
func (NopAnalyzer) Tokens(string) []Token     { return nil }
func (NopAnalyzer) Entities(string) []Entity  { return nil }

// New 按名称创建分析器，rule 返回规则分析器，其它值返回 NopAnalyzer
func New(name string, opts ...RuleOption) Analyzer {
	if name == "rule" {
		return NewRuleAnalyzer(opts...)
	}
	return NopAnalyzer{}
}

// FirstEntity 返回指定标签的第一个实体
func FirstEntity(a Analyzer, text, label string) (Entity, bool) {
	for _, e := range a.Entities(text) {
		if e.Label == label {
			return e, true
		}
	}
	return Entity{}, false
}
