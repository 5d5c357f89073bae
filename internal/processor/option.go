package processor

import (
	"github.com/rs/zerolog"

	"resume-extractor/internal/logger"
)

// ComponentOpt 组件选项类型，仅改变 Components 结构体内的字段
type ComponentOpt func(*Components)

// SettingOpt 设置选项类型，仅改变 Settings 结构体内的字段
type SettingOpt func(*Settings)

// NewComponents 按选项组装组件集合
func NewComponents(opts ...ComponentOpt) *Components {
	c := &Components{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultSettings 默认设置：写出提取文本，单线程处理
func DefaultSettings() *Settings {
	return &Settings{
		WriteOutput:  true,
		OutputSuffix: "",
		Workers:      1,
		Logger:       logger.Nop(),
	}
}

// ----- 组件选项 -----

// WithcompTextExtractor 设置PDF文本提取器组件
func WithcompTextExtractor(extractor TextExtractor) ComponentOpt {
	return func(c *Components) {
		c.TextExtractor = extractor
	}
}

// WithcompNameExtractor 设置姓名识别组件
func WithcompNameExtractor(extractor NameExtractor) ComponentOpt {
	return func(c *Components) {
		c.NameExtractor = extractor
	}
}

// WithcompSkillMatcher 设置技能匹配组件
func WithcompSkillMatcher(matcher SkillMatcher) ComponentOpt {
	return func(c *Components) {
		c.SkillMatcher = matcher
	}
}

// WithcompExperienceSegmenter 设置工作经历切分组件
func WithcompExperienceSegmenter(segmenter ExperienceSegmenter) ComponentOpt {
	return func(c *Components) {
		c.ExperienceSegmenter = segmenter
	}
}

// WithcompSummaryGenerator 设置摘要生成组件
func WithcompSummaryGenerator(generator SummaryGenerator) ComponentOpt {
	return func(c *Components) {
		c.SummaryGenerator = generator
	}
}

// ----- 设置选项 -----

// WithsetWriteOutput 设置是否把提取文本写到PDF旁边
func WithsetWriteOutput(write bool) SettingOpt {
	return func(s *Settings) {
		s.WriteOutput = write
	}
}

// WithsetOutputSuffix 设置输出文件名后缀
func WithsetOutputSuffix(suffix string) SettingOpt {
	return func(s *Settings) {
		s.OutputSuffix = suffix
	}
}

// WithsetWorkers 设置批处理并发数
func WithsetWorkers(workers int) SettingOpt {
	return func(s *Settings) {
		if workers > 0 {
			s.Workers = workers
		}
	}
}

// WithsetLogger 设置日志记录器
func WithsetLogger(l *zerolog.Logger) SettingOpt {
	return func(s *Settings) {
		s.Logger = logger.OrNop(l)
	}
}
