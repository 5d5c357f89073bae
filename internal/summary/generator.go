// Package summary 根据姓名、技能与工作经历生成一段第一人称的个人摘要。
package summary

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"resume-extractor/internal/constants"
	"resume-extractor/internal/logger"
	"resume-extractor/internal/taxonomy"
	"resume-extractor/internal/types"
)

const (
	maxRoles       = 2
	maxClassSkills = 3
)

// Generator 摘要生成器，技能大类来自分类表中的保留键列表
type Generator struct {
	taxonomy *taxonomy.Taxonomy
	logger   *zerolog.Logger
}

// Option 生成器配置选项
type Option func(*Generator)

// WithLogger 配置日志
func WithLogger(l *zerolog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger.OrNop(l)
	}
}

// NewGenerator 创建摘要生成器
func NewGenerator(tax *taxonomy.Taxonomy, opts ...Option) *Generator {
	if tax == nil {
		tax = taxonomy.Empty()
	}
	g := &Generator{taxonomy: tax, logger: logger.Nop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate 按固定顺序拼接各从句，相同输入总是得到相同输出
func (g *Generator) Generate(name string, skills []types.SkillFinding, experience []types.ExperienceEntry) (summary string) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error().Interface("panic", r).Msg("生成摘要异常")
			summary = constants.ErrorGeneratingSum
		}
	}()

	var parts []string
	if name = strings.TrimSpace(name); name != "" {
		parts = append(parts, "Hi, I'm "+name)
	}

	n := len(experience)
	if n > 0 {
		unit := "years"
		if n == 1 {
			unit = "year"
		}
		parts = append(parts, fmt.Sprintf("with %d %s of professional experience", n, unit))

		roles := make([]string, 0, maxRoles)
		for _, e := range experience[:min(n, maxRoles)] {
			roles = append(roles, e.Position+" at "+e.Company)
		}
		parts = append(parts, "working as "+strings.Join(roles, ", "))
	}

	tech, business, soft := g.classify(skills)
	if len(tech) > 0 {
		parts = append(parts, "with expertise in "+capped(tech))
	}
	if len(business) > 0 {
		parts = append(parts, "and strong business acumen in "+capped(business))
	}
	if len(soft) > 0 {
		parts = append(parts, "with excellent "+capped(soft))
	}

	if len(parts) == 0 {
		return constants.NoSummaryInformation
	}

	switch {
	case n > 5:
		parts = append(parts, "demonstrating strong leadership and technical acumen")
	case n > 2:
		parts = append(parts, "showing rapid professional growth and skill development")
	default:
		parts = append(parts, "with a solid foundation in professional practices")
	}
	return strings.Join(parts, " ") + "."
}

// classify 按分类表的保留键列表把技能分到三个大类，保持出现顺序并去重
func (g *Generator) classify(findings []types.SkillFinding) (tech, business, soft []string) {
	seen := make(map[string]struct{})
	for _, f := range findings {
		for _, skill := range f.TechStack {
			key := strings.ToLower(skill)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			switch g.taxonomy.ClassOf(skill) {
			case taxonomy.ClassTechnical:
				tech = append(tech, skill)
			case taxonomy.ClassBusiness:
				business = append(business, skill)
			case taxonomy.ClassSoft:
				soft = append(soft, skill)
			}
		}
	}
	return tech, business, soft
}

// capped 最多列出三项，其余以 "and more" 概括
func capped(items []string) string {
	if len(items) <= maxClassSkills {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:maxClassSkills], ", ") + " and more"
}
