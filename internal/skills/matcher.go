// Package skills 按技能分类表在简历文本中识别技能。
package skills

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"resume-extractor/internal/config"
	"resume-extractor/internal/constants"
	"resume-extractor/internal/logger"
	"resume-extractor/internal/nlp"
	"resume-extractor/internal/taxonomy"
	"resume-extractor/internal/tracing"
	"resume-extractor/internal/types"
)

// term 分类表中的一个 (类别, 技能) 组合及其预编译的匹配形式
type term struct {
	category string
	skill    string
	words    []string       // 分析器切分出的小写词序列
	pattern  *regexp.Regexp // 整词匹配
	phrases  []string       // 章节扫描使用的变体
}

// Matcher 技能匹配器，构造后只读，可并发使用
type Matcher struct {
	taxonomy      *taxonomy.Taxonomy
	analyzer      nlp.Analyzer
	logger        *zerolog.Logger
	strategy      string
	contextWindow int
	sectionSpan   int
	terms         []term
}

// Option 匹配器配置选项
type Option func(*Matcher)

// WithStrategy 匹配策略：auto, context, regex, section
func WithStrategy(strategy string) Option {
	return func(m *Matcher) {
		if strategy != "" {
			m.strategy = strategy
		}
	}
}

// WithContextWindow 上下文窗口大小（前后各N个词）
func WithContextWindow(n int) Option {
	return func(m *Matcher) {
		if n > 0 {
			m.contextWindow = n
		}
	}
}

// WithSectionLineSpan 技能章节标题后扫描的行数
func WithSectionLineSpan(n int) Option {
	return func(m *Matcher) {
		if n > 0 {
			m.sectionSpan = n
		}
	}
}

// WithLogger 配置日志
func WithLogger(l *zerolog.Logger) Option {
	return func(m *Matcher) {
		m.logger = logger.OrNop(l)
	}
}

// NewMatcher 创建匹配器并预编译分类表中的全部技能
func NewMatcher(tax *taxonomy.Taxonomy, analyzer nlp.Analyzer, opts ...Option) *Matcher {
	if tax == nil {
		tax = taxonomy.Empty()
	}
	if analyzer == nil {
		analyzer = nlp.NopAnalyzer{}
	}
	m := &Matcher{
		taxonomy:      tax,
		analyzer:      analyzer,
		logger:        logger.Nop(),
		strategy:      config.SkillStrategyAuto,
		contextWindow: constants.DefaultContextWindow,
		sectionSpan:   constants.SkillSectionLineSpan,
	}
	for _, opt := range opts {
		opt(m)
	}

	for _, c := range tax.Categories() {
		for _, skill := range c.Skills {
			if strings.TrimSpace(skill) == "" {
				continue
			}
			m.terms = append(m.terms, term{
				category: c.Name,
				skill:    skill,
				words:    nlp.Words(analyzer, skill),
				pattern:  compileTerm(skill),
				phrases:  sectionPhrases(skill),
			})
		}
	}
	return m
}

// ExtractSkills 识别文本中的技能，按类别分组返回，从不返回错误
// 没有命中时返回 "No skills found" 哨兵，内部异常时返回 "Error extracting skills" 哨兵
func (m *Matcher) ExtractSkills(ctx context.Context, text string) (findings []types.SkillFinding) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error().Interface("panic", r).Msg("技能提取异常")
			tracing.RecordError(trace.SpanFromContext(ctx), fmt.Errorf("skill matching panicked: %v", r), tracing.ErrorTypeInternal)
			findings = sentinel(constants.ErrorExtractingSkill)
		}
	}()

	if len(m.terms) == 0 {
		m.logger.Warn().Msg("技能分类表为空")
		return sentinel(constants.NoSkillsFound)
	}

	used, hits := m.run(text)
	trace.SpanFromContext(ctx).AddEvent("skills.matched", trace.WithAttributes(
		attribute.String("strategy", used),
		attribute.Int("hits", len(hits)),
	))
	m.logger.Debug().Str("strategy", used).Int("hits", len(hits)).Msg("技能匹配完成")

	findings = assemble(hits)
	if len(findings) == 0 {
		return sentinel(constants.NoSkillsFound)
	}
	return findings
}

// run 按配置的策略匹配，返回实际使用的策略名与命中项
func (m *Matcher) run(text string) (string, []term) {
	switch m.strategy {
	case config.SkillStrategyRegex:
		return config.SkillStrategyRegex, m.matchRegex(text)
	case config.SkillStrategySection:
		return config.SkillStrategySection, m.matchSection(text)
	case config.SkillStrategyContext:
		if m.analyzer.Available() {
			if hits := m.matchContext(text); len(hits) > 0 {
				return config.SkillStrategyContext, hits
			}
		}
		return config.SkillStrategyRegex, m.matchRegex(text)
	default:
		if !m.analyzer.Available() {
			return config.SkillStrategySection, m.matchSection(text)
		}
		if hits := m.matchContext(text); len(hits) > 0 {
			return config.SkillStrategyContext, hits
		}
		return config.SkillStrategyRegex, m.matchRegex(text)
	}
}

func sentinel(category string) []types.SkillFinding {
	return []types.SkillFinding{{Category: category, TechStack: []string{}}}
}

// assemble 按类别分组，大小写不敏感去重，技能与类别均排序
func assemble(hits []term) []types.SkillFinding {
	grouped := make(map[string]map[string]string)
	for _, h := range hits {
		skills, ok := grouped[h.category]
		if !ok {
			skills = make(map[string]string)
			grouped[h.category] = skills
		}
		key := strings.ToLower(h.skill)
		if _, seen := skills[key]; !seen {
			skills[key] = h.skill
		}
	}

	findings := make([]types.SkillFinding, 0, len(grouped))
	for category, skills := range grouped {
		stack := make([]string, 0, len(skills))
		for _, s := range skills {
			stack = append(stack, s)
		}
		sort.Slice(stack, func(i, j int) bool {
			return strings.ToLower(stack[i]) < strings.ToLower(stack[j])
		})
		findings = append(findings, types.SkillFinding{Category: category, TechStack: stack})
	}
	sort.Slice(findings, func(i, j int) bool { return findings[i].Category < findings[j].Category })
	return findings
}

