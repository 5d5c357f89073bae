package processor // 简历提取流水线：文本提取、字段抽取、技能匹配、经历切分与摘要生成

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"resume-extractor/internal/config"
	"resume-extractor/internal/constants"
	"resume-extractor/internal/experience"
	"resume-extractor/internal/fields"
	"resume-extractor/internal/logger"
	"resume-extractor/internal/nlp"
	"resume-extractor/internal/parser"
	"resume-extractor/internal/skills"
	"resume-extractor/internal/summary"
	"resume-extractor/internal/taxonomy"
	"resume-extractor/internal/tracing"
	"resume-extractor/internal/types"
)

// 定义tracer
var tracer = otel.Tracer("resume-extractor/processor")

// 降级警告
const (
	WarnFontMetadata = "font metadata unavailable"
	WarnNameMissing  = "name not found, placeholder used"
	WarnEmailMissing = "email not found"
	WarnPhoneMissing = "phone not found"
	WarnNoSkills     = "no skills matched"
	WarnSkillsFailed = "skill matching failed"
	WarnNoExperience = "no experience entries found"
	WarnSummary      = "summary generation failed"
)

// Components 聚合所有功能组件依赖，便于集中管理和测试替换
type Components struct {
	TextExtractor       TextExtractor       // PDF文本提取
	NameExtractor       NameExtractor       // 姓名识别
	SkillMatcher        SkillMatcher        // 技能匹配
	ExperienceSegmenter ExperienceSegmenter // 工作经历切分
	SummaryGenerator    SummaryGenerator    // 摘要生成
}

// Settings 纯配置项，不包含任何业务逻辑组件
type Settings struct {
	WriteOutput  bool            // 是否写出提取文本
	OutputSuffix string          // 输出文件名后缀
	Workers      int             // 批处理并发数
	Logger       *zerolog.Logger // 日志记录器
}

// ResumeProcessor 简历提取流水线
// 除文本提取与输出写入外，各阶段的失败都降级为占位结果并记录警告
type ResumeProcessor struct {
	components Components
	settings   Settings
}

// NewResumeProcessor 创建新的简历处理器，使用明确分离的组件和设置
// 未提供的字段抽取组件使用不依赖分类表的默认实现
func NewResumeProcessor(comp *Components, set *Settings, opts ...SettingOpt) *ResumeProcessor {
	if comp == nil {
		comp = NewComponents()
	}
	if set == nil {
		set = DefaultSettings()
	}
	for _, opt := range opts {
		opt(set)
	}
	set.Logger = logger.OrNop(set.Logger)
	if set.Workers <= 0 {
		set.Workers = 1
	}

	c := *comp
	if c.NameExtractor == nil {
		c.NameExtractor = fields.NewNameExtractor()
	}
	if c.SkillMatcher == nil {
		c.SkillMatcher = skills.NewMatcher(nil, nil)
	}
	if c.ExperienceSegmenter == nil {
		c.ExperienceSegmenter = experience.NewSegmenter(nil)
	}
	if c.SummaryGenerator == nil {
		c.SummaryGenerator = summary.NewGenerator(nil)
	}
	return &ResumeProcessor{components: c, settings: *set}
}

// NewDefaultProcessor 按配置组装完整的流水线
func NewDefaultProcessor(ctx context.Context, cfg *config.Config, tax *taxonomy.Taxonomy, l *zerolog.Logger) (*ResumeProcessor, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	l = logger.OrNop(l)

	extractor, err := parser.NewPDFTextExtractor(ctx,
		parser.WithLogger(componentLogger(l, "parser")),
		parser.WithParagraphGapFactor(cfg.Extractor.ParagraphGapFactor),
		parser.WithBasicTimeout(config.GetDuration(cfg.Extractor.BasicTimeout, 30*time.Second)),
		parser.WithDocumentInspection(cfg.Extractor.InspectDocument),
		parser.WithFontMetadata(cfg.Extractor.FontMetadata),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create text extractor: %w", err)
	}

	analyzer := nlp.New(cfg.NLP.Analyzer, nlp.WithRuleLogger(componentLogger(l, "nlp")))

	comp := NewComponents(
		WithcompTextExtractor(extractor),
		WithcompNameExtractor(fields.NewNameExtractor(fields.WithNameLogger(componentLogger(l, "fields")))),
		WithcompSkillMatcher(skills.NewMatcher(tax, analyzer,
			skills.WithStrategy(cfg.Skills.Strategy),
			skills.WithContextWindow(cfg.Skills.ContextWindow),
			skills.WithSectionLineSpan(cfg.Skills.SectionLineSpan),
			skills.WithLogger(componentLogger(l, "skills")),
		)),
		WithcompExperienceSegmenter(experience.NewSegmenter(analyzer,
			experience.WithStrategy(cfg.Experience.Strategy),
			experience.WithLogger(componentLogger(l, "experience")),
		)),
		WithcompSummaryGenerator(summary.NewGenerator(tax, summary.WithLogger(componentLogger(l, "summary")))),
	)

	return NewResumeProcessor(comp, DefaultSettings(),
		WithsetWriteOutput(cfg.Output.WriteText),
		WithsetOutputSuffix(cfg.Output.Suffix),
		WithsetWorkers(cfg.Processor.Workers),
		WithsetLogger(l),
	), nil
}

func componentLogger(l *zerolog.Logger, name string) *zerolog.Logger {
	sub := l.With().Str("component", name).Logger()
	return &sub
}

// Process 处理单份简历
// 仅在文本提取失败或写出文件失败时返回错误；写出失败时仍返回已提取的结果
func (rp *ResumeProcessor) Process(ctx context.Context, path string) (*types.Resume, error) {
	start := time.Now()
	runID := uuid.NewString()

	ctx, span := tracer.Start(ctx, "ProcessResume",
		trace.WithAttributes(
			attribute.String("run_id", runID),
			attribute.String("source_path", tracing.SafePath(path)),
		))
	defer span.End()

	log := rp.settings.Logger.With().Str("run_id", runID).Str("file", path).Logger()
	log.Debug().Msg("开始处理简历")

	if rp.components.TextExtractor == nil {
		err := NewNotInitError(runID, path, "no text extractor configured")
		tracing.RecordError(span, err, tracing.ErrorTypeValidation)
		return nil, err
	}

	resume := &types.Resume{ID: runID, SourcePath: path}

	// 1. 文本提取
	text, metadata, err := rp.extractText(ctx, path)
	if err != nil {
		log.Error().Err(err).Msg("提取简历文本失败")
		tracing.RecordError(span, err, extractionErrorType(err))
		return nil, NewParseError(runID, path, err)
	}
	resume.Text = text
	resume.Metadata = metadata
	if resume.Metadata == nil {
		resume.Metadata = make(map[string]interface{})
	}
	resume.Metadata["run_id"] = runID

	// 2. 姓名、邮箱、电话
	rp.extractFields(ctx, path, resume)

	// 3. 技能
	rp.matchSkills(ctx, resume)

	// 4. 工作经历
	rp.segmentExperience(ctx, resume)

	// 5. 摘要
	rp.generateSummary(ctx, resume)

	// 6. 写出提取文本
	if rp.settings.WriteOutput {
		_, outSpan := tracer.Start(ctx, "WriteExtractedText")
		out, err := parser.WriteExtractedText(path, rp.settings.OutputSuffix, text)
		if err != nil {
			tracing.RecordError(outSpan, err, tracing.ErrorTypeOutput)
			outSpan.End()
			tracing.RecordError(span, err, tracing.ErrorTypeOutput)
			log.Error().Err(err).Msg("写出提取文本失败")
			resume.Duration = time.Since(start)
			return resume, NewWriteError(runID, path, err)
		}
		outSpan.SetAttributes(attribute.String("output_path", tracing.SafePath(out)))
		outSpan.End()
		resume.OutputPath = out
	}

	resume.Duration = time.Since(start)
	span.SetAttributes(
		attribute.Int("text_length", len(text)),
		attribute.Int("skill_categories", len(resume.Skills)),
		attribute.Int("experience_entries", len(resume.Experience)),
		attribute.Int("warnings", len(resume.Warnings)),
	)
	log.Info().
		Str("name", tracing.MaskPII(resume.Name)).
		Int("skills", len(resume.Skills)).
		Int("experience", len(resume.Experience)).
		Strs("warnings", resume.Warnings).
		Dur("elapsed", resume.Duration).
		Msg("简历处理完成")
	return resume, nil
}

func (rp *ResumeProcessor) extractText(ctx context.Context, path string) (string, map[string]interface{}, error) {
	ctx, span := tracer.Start(ctx, "ExtractText")
	defer span.End()

	text, metadata, err := rp.components.TextExtractor.ExtractText(ctx, path)
	if err != nil {
		tracing.RecordError(span, err, extractionErrorType(err))
		return "", nil, err
	}
	if method, ok := metadata["extraction_method"].(string); ok {
		span.SetAttributes(attribute.String("extraction_method", method))
	}
	span.SetAttributes(attribute.Int("text_length", len(text)))
	return text, metadata, nil
}

// extractionErrorType 超时单独归类，其余都是提取错误
func extractionErrorType(err error) tracing.ErrorType {
	if errors.Is(err, context.DeadlineExceeded) {
		return tracing.ErrorTypeTimeout
	}
	return tracing.ErrorTypeExtraction
}

func (rp *ResumeProcessor) extractFields(ctx context.Context, path string, resume *types.Resume) {
	_, span := tracer.Start(ctx, "ExtractFields")
	defer span.End()

	words, err := rp.components.TextExtractor.FirstPageWords(path)
	if err != nil {
		rp.warn(span, resume, "fields", fmt.Sprintf("%s: %v", WarnFontMetadata, err))
		words = nil
	}

	resume.Email = fields.ExtractEmail(resume.Text)
	resume.Phone = fields.ExtractPhone(resume.Text)
	resume.Name = rp.components.NameExtractor.ExtractName(resume.Text, words)

	if resume.Name == "" || resume.Name == constants.DefaultCandidateName {
		resume.Name = constants.DefaultCandidateName
		rp.warn(span, resume, "fields", WarnNameMissing)
	}
	if resume.Email == "" {
		rp.warn(span, resume, "fields", WarnEmailMissing)
	}
	if resume.Phone == "" {
		rp.warn(span, resume, "fields", WarnPhoneMissing)
	}
	span.SetAttributes(
		attribute.String("name", tracing.SafeAttributeValue("name", resume.Name, tracing.DefaultMaxLength)),
		attribute.String("email", tracing.SafeAttributeValue("email", resume.Email, tracing.DefaultMaxLength)),
	)
}

func (rp *ResumeProcessor) matchSkills(ctx context.Context, resume *types.Resume) {
	ctx, span := tracer.Start(ctx, "MatchSkills")
	defer span.End()

	resume.Skills = rp.components.SkillMatcher.ExtractSkills(ctx, resume.Text)
	if len(resume.Skills) == 0 {
		resume.Skills = []types.SkillFinding{{Category: constants.NoSkillsFound, TechStack: []string{}}}
	}

	switch resume.Skills[0].Category {
	case constants.ErrorExtractingSkill:
		rp.warn(span, resume, "skills", WarnSkillsFailed)
	case constants.NoSkillsFound:
		rp.warn(span, resume, "skills", WarnNoSkills)
	}
	span.SetAttributes(attribute.Int("categories", len(resume.Skills)))
}

func (rp *ResumeProcessor) segmentExperience(ctx context.Context, resume *types.Resume) {
	ctx, span := tracer.Start(ctx, "SegmentExperience")
	defer span.End()

	resume.Experience = rp.components.ExperienceSegmenter.ExtractExperience(ctx, resume.Text)
	if resume.Experience == nil {
		resume.Experience = []types.ExperienceEntry{}
	}
	if len(resume.Experience) == 0 {
		rp.warn(span, resume, "experience", WarnNoExperience)
	}
	span.SetAttributes(attribute.Int("entries", len(resume.Experience)))
}

func (rp *ResumeProcessor) generateSummary(ctx context.Context, resume *types.Resume) {
	_, span := tracer.Start(ctx, "GenerateSummary")
	defer span.End()

	resume.Summary = rp.components.SummaryGenerator.Generate(resume.Name, resume.Skills, resume.Experience)
	if resume.Summary == constants.ErrorGeneratingSum {
		rp.warn(span, resume, "summary", WarnSummary)
	}
}

// warn 记录一次非致命降级
func (rp *ResumeProcessor) warn(span trace.Span, resume *types.Resume, stage, reason string) {
	resume.Warnings = append(resume.Warnings, reason)
	tracing.RecordDegradation(span, stage, reason)
	rp.settings.Logger.Debug().Str("run_id", resume.ID).Str("stage", stage).Str("reason", reason).Msg("阶段降级")
}

// BatchResult 批处理中单个文件的结果
type BatchResult struct {
	Path   string
	Resume *types.Resume
	Err    error
}

// ProcessBatch 并发处理多份互不相关的简历，结果顺序与输入一致
// workers 不大于0时使用设置中的并发数
func (rp *ResumeProcessor) ProcessBatch(ctx context.Context, paths []string, workers int) []BatchResult {
	if workers <= 0 {
		workers = rp.settings.Workers
	}
	results := make([]BatchResult, len(paths))

	ctx, span := tracer.Start(ctx, "ProcessBatch",
		trace.WithAttributes(
			attribute.Int("files", len(paths)),
			attribute.Int("workers", workers),
		))
	defer span.End()

	// 单个文件的失败不取消其它文件，所以每个任务都返回nil
	var g errgroup.Group
	g.SetLimit(workers)
	for i, path := range paths {
		results[i].Path = path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Resume, results[i].Err = rp.Process(ctx, path)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	span.SetAttributes(attribute.Int("failed", failed))
	rp.settings.Logger.Info().Int("files", len(paths)).Int("failed", failed).Int("workers", workers).Msg("批处理完成")
	return results
}
