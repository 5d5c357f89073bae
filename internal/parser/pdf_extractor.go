package parser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"

	"resume-extractor/internal/constants"
	"resume-extractor/internal/logger"
)

// BasicExtractor 不做版面分析的基础提取方式
type BasicExtractor interface {
	ExtractFromFile(ctx context.Context, filePath string) (string, map[string]interface{}, error)
}

// PDFTextExtractor 两级PDF文本提取器：先按版面重建文本，失败或为空时退回基础提取
type PDFTextExtractor struct {
	logger       *zerolog.Logger
	gapFactor    float64
	basic        BasicExtractor
	basicTimeout time.Duration
	inspect      bool
	fontMetadata bool
}

// PDFOption PDF提取器配置选项
type PDFOption func(*PDFTextExtractor)

// WithLogger 配置日志
func WithLogger(l *zerolog.Logger) PDFOption {
	return func(e *PDFTextExtractor) {
		e.logger = logger.OrNop(l)
	}
}

// WithParagraphGapFactor 行距超过中位行距的倍数时视为段落分隔
func WithParagraphGapFactor(factor float64) PDFOption {
	return func(e *PDFTextExtractor) {
		if factor > 1 {
			e.gapFactor = factor
		}
	}
}

// WithBasicExtractor 替换基础提取方式
func WithBasicExtractor(b BasicExtractor) PDFOption {
	return func(e *PDFTextExtractor) {
		e.basic = b
	}
}

// WithBasicTimeout 基础提取方式的超时
func WithBasicTimeout(d time.Duration) PDFOption {
	return func(e *PDFTextExtractor) {
		e.basicTimeout = d
	}
}

// WithDocumentInspection 是否用 pdfcpu 探测页数与图片
func WithDocumentInspection(enabled bool) PDFOption {
	return func(e *PDFTextExtractor) {
		e.inspect = enabled
	}
}

// WithFontMetadata 是否读取首页字体信息
func WithFontMetadata(enabled bool) PDFOption {
	return func(e *PDFTextExtractor) {
		e.fontMetadata = enabled
	}
}

// NewPDFTextExtractor 创建提取器，未指定基础提取方式时使用 Eino PDF Parser
func NewPDFTextExtractor(ctx context.Context, opts ...PDFOption) (*PDFTextExtractor, error) {
	e := &PDFTextExtractor{
		logger:       logger.Nop(),
		gapFactor:    defaultGapFactor,
		basicTimeout: 30 * time.Second,
		inspect:      true,
		fontMetadata: true,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.basic == nil {
		basic, err := NewEinoPDFTextExtractor(ctx,
			WithEinoLogger(e.logger),
			WithEinoTimeout(e.basicTimeout),
		)
		if err != nil {
			return nil, err
		}
		e.basic = basic
	}
	return e, nil
}

// ExtractText 提取PDF文本并返回提取元数据
func (e *PDFTextExtractor) ExtractText(ctx context.Context, path string) (string, map[string]interface{}, error) {
	if _, err := os.Stat(path); err != nil {
		return "", nil, newExtractionError(path, "stat", "file does not exist or is unreadable", err)
	}

	start := time.Now()
	method := constants.ExtractionMethodLayout

	text, res, layoutErr := e.extractLayout(ctx, path)
	if layoutErr == nil && text == "" {
		layoutErr = errors.New("layout extraction produced no text")
	}

	if layoutErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", nil, newExtractionError(path, "layout", "", ctxErr)
		}
		e.logger.Warn().Err(layoutErr).Str("file", path).Msg("版面提取失败，改用基础方式")

		method = constants.ExtractionMethodBasic
		raw, _, basicErr := e.basic.ExtractFromFile(ctx, path)
		text = NormalizeBasic(raw)
		if basicErr == nil && text == "" {
			basicErr = errors.New("basic extraction produced no text")
		}
		if basicErr != nil {
			return "", nil, newExtractionError(path, "extract", "both extraction methods failed", errors.Join(layoutErr, basicErr))
		}
	}

	metadata := map[string]interface{}{
		"source_file_path":      path,
		"extraction_method":     method,
		"page_count":            res.pages,
		"layout_fallback_pages": res.fallbackPages,
		"text_length":           len(text),
	}

	if e.inspect {
		if info, err := InspectDocument(path); err != nil {
			e.logger.Debug().Err(err).Str("file", path).Msg("pdfcpu 探测失败，跳过")
		} else {
			metadata["page_count"] = info.PageCount
			metadata["has_images"] = info.HasImages
		}
	}
	metadata["processing_duration_ms"] = time.Since(start).Milliseconds()

	e.logger.Info().
		Str("file", path).
		Str("method", method).
		Int("chars", len(text)).
		Dur("elapsed", time.Since(start)).
		Msg("PDF文本提取完成")
	return text, metadata, nil
}

type layoutResult struct {
	pages         int
	fallbackPages int
}

// extractLayout 逐页按版面重建文本，单页失败时该页退回 GetPlainText
func (e *PDFTextExtractor) extractLayout(ctx context.Context, path string) (text string, res layoutResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("layout extraction panicked: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", res, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	res.pages = r.NumPage()
	fonts := make(map[string]*pdf.Font)

	var b strings.Builder
	for i := 1; i <= res.pages; i++ {
		if err := ctx.Err(); err != nil {
			return "", res, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		pageText, pageErr := layoutPage(p, e.gapFactor)
		if pageErr != nil || strings.TrimSpace(pageText) == "" {
			if pageErr != nil {
				e.logger.Debug().Err(pageErr).Int("page", i).Msg("版面分析失败，该页改用纯文本")
			}
			for _, name := range p.Fonts() {
				if _, ok := fonts[name]; !ok {
					font := p.Font(name)
					fonts[name] = &font
				}
			}
			plain, plainErr := p.GetPlainText(fonts)
			if plainErr != nil {
				e.logger.Warn().Err(plainErr).Int("page", i).Msg("页面文本读取失败，跳过该页")
				continue
			}
			if strings.TrimSpace(plain) != "" {
				res.fallbackPages++
			}
			pageText = plain
		}

		b.WriteString(NormalizeText(pageText))
		b.WriteString("\n")
	}
	return NormalizeText(b.String()), res, nil
}

// FirstPageWords 读取首页的词及其字号与粗体信息
func (e *PDFTextExtractor) FirstPageWords(path string) (words []Word, err error) {
	if !e.fontMetadata {
		return nil, nil
	}
	defer func() {
		if r := recover(); r != nil {
			words = nil
			err = fmt.Errorf("reading font metadata panicked: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	if r.NumPage() < 1 {
		return nil, nil
	}
	p := r.Page(1)
	if p.V.IsNull() {
		return nil, nil
	}

	for _, line := range groupGlyphLines(p.Content().Text) {
		words = append(words, lineWords(line)...)
	}
	return words, nil
}
