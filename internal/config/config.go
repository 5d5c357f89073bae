package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// 技能匹配策略
const (
	SkillStrategyAuto    = "auto"
	SkillStrategyContext = "context"
	SkillStrategyRegex   = "regex"
	SkillStrategySection = "section"
)

// 语言分析器实现
const (
	AnalyzerRule = "rule"
	AnalyzerNone = "none"
)

// 工作经历切分策略
const (
	ExperienceStrategyAuto     = "auto"
	ExperienceStrategyFallback = "fallback"
)

// Config 应用程序配置
type Config struct {
	// 技能分类表
	Taxonomy TaxonomyConfig `yaml:"taxonomy"`

	// PDF文本提取
	Extractor ExtractorConfig `yaml:"extractor"`

	// 语言分析器
	NLP NLPConfig `yaml:"nlp"`

	// 技能匹配
	Skills SkillsConfig `yaml:"skills"`

	// 工作经历切分
	Experience ExperienceConfig `yaml:"experience"`

	// 输出文件
	Output OutputConfig `yaml:"output"`

	// 批处理
	Processor ProcessorConfig `yaml:"processor"`

	// 日志配置
	Logger LoggerConfig `yaml:"logger"`
}

// TaxonomyConfig 技能分类表配置
type TaxonomyConfig struct {
	Path string `yaml:"path"` // 分类表文件路径，JSON 或 YAML
}

// ExtractorConfig PDF文本提取配置
type ExtractorConfig struct {
	ParagraphGapFactor float64 `yaml:"paragraph_gap_factor"` // 行距超过中位行距多少倍视为段落分隔
	BasicTimeout       string  `yaml:"basic_timeout"`        // 基础提取方式的超时，例如 "30s"
	InspectDocument    bool    `yaml:"inspect_document"`     // 是否用pdfcpu探测页数等元数据
	FontMetadata       bool    `yaml:"font_metadata"`        // 是否读取首页字体信息用于姓名识别
}

// NLPConfig 语言分析器配置
type NLPConfig struct {
	Analyzer string `yaml:"analyzer"` // rule 或 none
}

// SkillsConfig 技能匹配配置
type SkillsConfig struct {
	Strategy        string `yaml:"strategy"`          // auto, context, regex, section
	ContextWindow   int    `yaml:"context_window"`    // 上下文窗口（前后各N个词）
	SectionLineSpan int    `yaml:"section_line_span"` // 技能章节标题后扫描的行数
}

// ExperienceConfig 工作经历切分配置
type ExperienceConfig struct {
	Strategy string `yaml:"strategy"` // auto 或 fallback
}

// OutputConfig 输出文件配置
type OutputConfig struct {
	WriteText bool   `yaml:"write_text"` // 是否把提取文本写到PDF旁边
	Suffix    string `yaml:"suffix"`     // 文件名后缀，默认 _extracted
}

// ProcessorConfig 批处理配置
type ProcessorConfig struct {
	Workers int `yaml:"workers"` // 并行处理的文件数
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json, pretty
	TimeFormat   string `yaml:"time_format"`   // 时间格式
	ReportCaller bool   `yaml:"report_caller"` // 是否报告调用位置
}

// ErrConfigNotFound 指定的配置文件不存在
var ErrConfigNotFound = errors.New("config file not found")

// LoadConfig 从文件加载配置
// configPath 为空时按默认位置查找，均找不到则返回默认配置
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		searchPaths := []string{
			"config.yaml",
			"../config.yaml",
			"../../config.yaml",
			filepath.Join(os.Getenv("HOME"), ".resume-extractor", "config.yaml"),
		}

		// 可执行文件所在目录
		if execPath, err := os.Executable(); err == nil {
			searchPaths = append(searchPaths, filepath.Join(filepath.Dir(execPath), "config.yaml"))
		}

		for _, path := range searchPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}

		if configPath == "" {
			config := createDefaultConfig()
			applyEnvOverrides(config)
			return config, nil
		}
	}

	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	// 在默认配置上解析，未出现的键保留默认值
	config := createDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 相对路径的分类表以配置文件所在目录为基准
	if config.Taxonomy.Path != "" && !filepath.IsAbs(config.Taxonomy.Path) {
		if _, err := os.Stat(config.Taxonomy.Path); err != nil {
			config.Taxonomy.Path = filepath.Join(filepath.Dir(configPath), config.Taxonomy.Path)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// 从环境变量覆盖配置（如果存在）
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("RESUMEX_TAXONOMY_PATH"); v != "" {
		config.Taxonomy.Path = v
	}
	if v := os.Getenv("RESUMEX_LOG_LEVEL"); v != "" {
		config.Logger.Level = v
	}
	if v := os.Getenv("RESUMEX_ANALYZER"); v != "" {
		config.NLP.Analyzer = v
	}
}

// Validate 校验取值范围，非法的枚举值直接报错
func (c *Config) Validate() error {
	switch c.Skills.Strategy {
	case SkillStrategyAuto, SkillStrategyContext, SkillStrategyRegex, SkillStrategySection:
	default:
		return fmt.Errorf("invalid skills.strategy %q", c.Skills.Strategy)
	}
	switch c.NLP.Analyzer {
	case AnalyzerRule, AnalyzerNone:
	default:
		return fmt.Errorf("invalid nlp.analyzer %q", c.NLP.Analyzer)
	}
	switch c.Experience.Strategy {
	case ExperienceStrategyAuto, ExperienceStrategyFallback:
	default:
		return fmt.Errorf("invalid experience.strategy %q", c.Experience.Strategy)
	}
	if c.Skills.ContextWindow <= 0 {
		return fmt.Errorf("skills.context_window must be positive, got %d", c.Skills.ContextWindow)
	}
	if c.Skills.SectionLineSpan <= 0 {
		return fmt.Errorf("skills.section_line_span must be positive, got %d", c.Skills.SectionLineSpan)
	}
	if c.Processor.Workers < 1 {
		c.Processor.Workers = 1
	}
	if strings.TrimSpace(c.Output.Suffix) == "" {
		c.Output.Suffix = "_extracted"
	}
	return nil
}

// 创建默认配置
func createDefaultConfig() *Config {
	config := &Config{}

	config.Taxonomy.Path = "skills.json"

	config.Extractor.ParagraphGapFactor = 1.8
	config.Extractor.BasicTimeout = "30s"
	config.Extractor.InspectDocument = true
	config.Extractor.FontMetadata = true

	config.NLP.Analyzer = AnalyzerRule

	config.Skills.Strategy = SkillStrategyAuto
	config.Skills.ContextWindow = 5
	config.Skills.SectionLineSpan = 20

	config.Experience.Strategy = ExperienceStrategyAuto

	config.Output.WriteText = true
	config.Output.Suffix = "_extracted"

	config.Processor.Workers = 1

	config.Logger.Level = "info"
	config.Logger.Format = "pretty"
	config.Logger.TimeFormat = "2006-01-02 15:04:05"
	config.Logger.ReportCaller = false

	return config
}

// Default 返回一份默认配置
func Default() *Config {
	return createDefaultConfig()
}

// CreateSampleConfig 创建一个示例配置文件
func CreateSampleConfig(filePath string) error {
	if _, err := os.Stat(filePath); err == nil {
		return fmt.Errorf("文件 '%s' 已存在，不会覆盖", filePath)
	}

	data, err := yaml.Marshal(createDefaultConfig())
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("写入示例配置文件 '%s' 失败: %w", filePath, err)
	}
	return nil
}

// GetDuration utility to parse duration strings from config
func GetDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	if durationStr == "" {
		return defaultDuration
	}
	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return defaultDuration
	}
	return d
}
