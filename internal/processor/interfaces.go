package processor

import (
	"context"

	"resume-extractor/internal/parser"
	"resume-extractor/internal/types"
)

//
// 文本提取相关接口
//

// TextExtractor PDF文本提取器接口
type TextExtractor interface {
	// ExtractText 从PDF文件提取清洗后的文本和元数据，失败时返回 *parser.ExtractionError
	ExtractText(ctx context.Context, path string) (string, map[string]interface{}, error)

	// FirstPageWords 读取首页的字号与粗体信息，不支持时返回 nil
	FirstPageWords(path string) ([]parser.Word, error)
}

//
// 字段抽取相关接口
//

// NameExtractor 姓名识别接口
type NameExtractor interface {
	ExtractName(text string, words []parser.Word) string
}

// SkillMatcher 技能匹配接口，始终返回非空列表
type SkillMatcher interface {
	ExtractSkills(ctx context.Context, text string) []types.SkillFinding
}

// ExperienceSegmenter 工作经历切分接口
type ExperienceSegmenter interface {
	ExtractExperience(ctx context.Context, text string) []types.ExperienceEntry
}

// SummaryGenerator 个人摘要生成接口
type SummaryGenerator interface {
	Generate(name string, skills []types.SkillFinding, experience []types.ExperienceEntry) string
}
