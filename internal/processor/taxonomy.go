package processor

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"resume-extractor/internal/logger"
	"resume-extractor/internal/taxonomy"
	"resume-extractor/internal/tracing"
)

// LoadTaxonomy 加载技能分类表，失败时返回空分类表，流水线照常运行
// 技能结果此时为 "No skills found"
func LoadTaxonomy(ctx context.Context, path string, l *zerolog.Logger) *taxonomy.Taxonomy {
	l = logger.OrNop(l)
	_, span := tracer.Start(ctx, "LoadTaxonomy",
		trace.WithAttributes(attribute.String("taxonomy_path", tracing.SafePath(path))))
	defer span.End()

	tax, err := taxonomy.Load(path)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeTaxonomy)
		l.Warn().Err(err).Str("path", path).Msg("加载技能分类表失败，使用空分类表")
		return taxonomy.Empty()
	}

	span.SetAttributes(
		attribute.Int("categories", tax.Len()),
		attribute.Int("skills", tax.SkillCount()),
	)
	if tax.Len() > 0 && !tax.HasClasses() {
		tracing.RecordDegradation(span, "taxonomy", "no technical_skills/business_skills/soft_skills lists")
		l.Warn().Str("path", path).Msg("分类表没有技能大类列表，摘要不会包含技能描述")
	}
	l.Info().Str("path", tax.Path()).Int("categories", tax.Len()).Int("skills", tax.SkillCount()).Msg("技能分类表加载成功")
	return tax
}
