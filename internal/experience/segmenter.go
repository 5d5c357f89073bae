// Package experience 定位简历中的工作经历章节并切分为 公司/职位/时间/地点 条目。
//
// 分析器路径以标题形式的经历句子为锚点，没有时才取第一个含关键词的句子；
// 锚点之后以章节关键词开头或含章节关键词的短句结束章节，长句中偶然出现的关键词不会截断章节。
package experience

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"resume-extractor/internal/config"
	"resume-extractor/internal/constants"
	"resume-extractor/internal/logger"
	"resume-extractor/internal/nlp"
	"resume-extractor/internal/tracing"
	"resume-extractor/internal/types"
)

// 不超过该词数的句子视为章节标题
const headingMaxWords = 6

// entryAccumulator 正在累积的经历条目，set 方法只在字段尚未命中时写入
type entryAccumulator struct {
	company, position, duration, location             string
	hasCompany, hasPosition, hasDuration, hasLocation bool
}

func (a *entryAccumulator) setCompany(v string) {
	if v = strings.TrimSpace(v); v != "" && !a.hasCompany {
		a.company, a.hasCompany = v, true
	}
}

func (a *entryAccumulator) setPosition(v string) {
	if v = strings.TrimSpace(v); v != "" && !a.hasPosition {
		a.position, a.hasPosition = v, true
	}
}

func (a *entryAccumulator) setDuration(v string) {
	if v = strings.TrimSpace(v); v != "" && !a.hasDuration {
		a.duration, a.hasDuration = v, true
	}
}

func (a *entryAccumulator) setLocation(v string) {
	if v = strings.TrimSpace(v); v != "" && !a.hasLocation {
		a.location, a.hasLocation = v, true
	}
}

func (a *entryAccumulator) complete() bool {
	return a.hasCompany && a.hasPosition
}

// entry 生成条目，缺失的时间与地点使用占位文本
func (a *entryAccumulator) entry() types.ExperienceEntry {
	e := types.ExperienceEntry{
		Company:  a.company,
		Position: a.position,
		Duration: constants.DurationNotSpecified,
		Location: constants.LocationNotSpecified,
	}
	if a.hasDuration {
		e.Duration = a.duration
	}
	if a.hasLocation {
		e.Location = a.location
	}
	return e
}

// Segmenter 工作经历切分器
type Segmenter struct {
	analyzer nlp.Analyzer
	logger   *zerolog.Logger
	strategy string
}

// Option 切分器配置选项
type Option func(*Segmenter)

// WithStrategy auto 在分析器可用时使用句子与实体识别，fallback 强制使用逐行规则
func WithStrategy(strategy string) Option {
	return func(s *Segmenter) {
		if strategy != "" {
			s.strategy = strategy
		}
	}
}

// WithLogger 配置日志
func WithLogger(l *zerolog.Logger) Option {
	return func(s *Segmenter) {
		s.logger = logger.OrNop(l)
	}
}

// NewSegmenter 创建切分器，analyzer 为空时只使用逐行规则
func NewSegmenter(analyzer nlp.Analyzer, opts ...Option) *Segmenter {
	if analyzer == nil {
		analyzer = nlp.NopAnalyzer{}
	}
	s := &Segmenter{
		analyzer: analyzer,
		logger:   logger.Nop(),
		strategy: config.ExperienceStrategyAuto,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExtractExperience 提取工作经历，没有经历章节时返回空列表，从不返回错误
func (s *Segmenter) ExtractExperience(ctx context.Context, text string) []types.ExperienceEntry {
	span := trace.SpanFromContext(ctx)

	if !experiencePattern.MatchString(text) {
		s.logger.Debug().Msg("未找到工作经历章节")
		return []types.ExperienceEntry{}
	}

	if s.strategy != config.ExperienceStrategyFallback && s.analyzer.Available() {
		entries, err := s.extractWithAnalyzer(text)
		if err == nil {
			span.AddEvent("experience.segmented", trace.WithAttributes(
				attribute.String("strategy", "analyzer"),
				attribute.Int("entries", len(entries)),
			))
			return entries
		}
		s.logger.Warn().Err(err).Msg("基于分析器的经历切分失败，改用逐行规则")
		tracing.RecordError(span, err, tracing.ErrorTypeAnalyzer)
	}

	entries := s.extractByLines(text)
	span.AddEvent("experience.segmented", trace.WithAttributes(
		attribute.String("strategy", config.ExperienceStrategyFallback),
		attribute.Int("entries", len(entries)),
	))
	return entries
}

// extractWithAnalyzer 以经历章节标题为锚点收集句子，逐句累积条目
func (s *Segmenter) extractWithAnalyzer(text string) (entries []types.ExperienceEntry, err error) {
	defer func() {
		if r := recover(); r != nil {
			entries = nil
			err = fmt.Errorf("analyzer segmentation panicked: %v", r)
		}
	}()

	section := s.experienceSection(s.analyzer.Sentences(text))
	s.logger.Debug().Int("sentences", len(section)).Msg("经历章节句子数")

	entries = []types.ExperienceEntry{}
	var acc entryAccumulator
	for _, line := range section {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		isPositionLine := positionPattern.MatchString(line)
		if acc.complete() && isPositionLine {
			entries = append(entries, acc.entry())
			acc = entryAccumulator{}
		}

		if !acc.hasPosition && isPositionLine {
			acc.setPosition(positionClause(line))
		}
		if !acc.hasCompany {
			if org, ok := nlp.FirstEntity(s.analyzer, line, nlp.LabelOrg); ok {
				acc.setCompany(org.Text)
			}
		}
		if !acc.hasDuration {
			acc.setDuration(findDuration(line))
		}
		if !acc.hasLocation {
			acc.setLocation(s.findLocation(line))
		}
	}
	if acc.complete() {
		entries = append(entries, acc.entry())
	}
	return entries, nil
}

// experienceSection 锚点优先取标题形式的句子，其次取第一个含关键词的句子
// 锚点之后遇到其它章节标题即结束
func (s *Segmenter) experienceSection(sentences []string) []string {
	anchor := -1
	for i, sent := range sentences {
		if experiencePattern.MatchString(sent) && s.isHeading(sent) {
			anchor = i
			break
		}
	}
	if anchor < 0 {
		for i, sent := range sentences {
			if experiencePattern.MatchString(sent) {
				anchor = i
				break
			}
		}
	}
	if anchor < 0 {
		return nil
	}

	section := []string{sentences[anchor]}
	for _, sent := range sentences[anchor+1:] {
		if s.endsSection(sent) {
			break
		}
		section = append(section, sent)
	}
	return section
}

func (s *Segmenter) isHeading(sent string) bool {
	return len(nlp.Words(s.analyzer, sent)) <= headingMaxWords
}

// endsSection 句子是其它章节的标题：以章节关键词开头，或是含章节关键词的短句
func (s *Segmenter) endsSection(sent string) bool {
	if experiencePattern.MatchString(sent) {
		return false
	}
	loc := sectionEndPattern.FindStringIndex(sent)
	if loc == nil {
		return false
	}
	return strings.TrimSpace(sent[:loc[0]]) == "" || s.isHeading(sent)
}

// findLocation 优先使用地点实体，其次匹配 "城市, 州" 形式
func (s *Segmenter) findLocation(line string) string {
	if gpe, ok := nlp.FirstEntity(s.analyzer, line, nlp.LabelGPE); ok {
		return gpe.Text
	}
	if m := locationPattern.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// extractByLines 不依赖分析器的逐行规则：分别跟踪公司、职位、时间，三者凑齐公司与职位即输出
func (s *Segmenter) extractByLines(text string) (entries []types.ExperienceEntry) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Msg("逐行经历切分异常")
			entries = []types.ExperienceEntry{}
		}
	}()

	entries = []types.ExperienceEntry{}
	var acc entryAccumulator
	emit := func() {
		if acc.complete() {
			entries = append(entries, acc.entry())
		}
		acc = entryAccumulator{}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := stripBullet(raw)
		if line == "" {
			continue
		}

		if company := findCompany(line); company != "" {
			acc.company, acc.hasCompany = company, true
		}
		if positionPattern.MatchString(line) {
			position := positionClause(line)
			if position == "" {
				position = line
			}
			acc.position, acc.hasPosition = position, true
			continue
		}
		if durationWords.MatchString(line) {
			acc.duration, acc.hasDuration = line, true
			continue
		}
		if acc.complete() {
			emit()
		}
	}
	emit()
	return entries
}
