package parser

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
	"github.com/rs/zerolog"

	"resume-extractor/internal/logger"
)

// EinoPDFTextExtractor 使用 Eino PDF Parser 直接读取文件字节提取纯文本，不做版面分析
type EinoPDFTextExtractor struct {
	parser  *pdf.PDFParser
	logger  *zerolog.Logger
	timeout time.Duration
}

// EinoPDFOption PDF提取器的配置选项
type EinoPDFOption func(*EinoPDFTextExtractor)

// WithEinoLogger 配置日志
func WithEinoLogger(l *zerolog.Logger) EinoPDFOption {
	return func(e *EinoPDFTextExtractor) {
		e.logger = logger.OrNop(l)
	}
}

// WithEinoTimeout 配置单个文件的解析超时
func WithEinoTimeout(d time.Duration) EinoPDFOption {
	return func(e *EinoPDFTextExtractor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// NewEinoPDFTextExtractor 初始化 Eino PDF 文本提取器，按页返回文档
func NewEinoPDFTextExtractor(ctx context.Context, options ...EinoPDFOption) (*EinoPDFTextExtractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Eino PDF parser: %w", err)
	}

	extractor := &EinoPDFTextExtractor{
		parser:  p,
		logger:  logger.Nop(),
		timeout: 30 * time.Second,
	}
	for _, option := range options {
		option(extractor)
	}
	return extractor, nil
}

// ExtractFromFile 以只读方式打开文件并提取文本
func (e *EinoPDFTextExtractor) ExtractFromFile(ctx context.Context, filePath string) (string, map[string]interface{}, error) {
	startTime := time.Now()

	file, err := os.Open(filePath)
	if err != nil {
		return "", nil, fmt.Errorf("failed to open PDF file %s: %w", filePath, err)
	}
	defer file.Close()

	if fileInfo, err := file.Stat(); err == nil {
		e.logger.Debug().
			Str("file", filePath).
			Float64("size_mb", float64(fileInfo.Size())/1024/1024).
			Msg("基础方式开始处理PDF文件")
	}

	extraMeta := map[string]interface{}{
		"source_file_path": filePath,
	}
	text, metadata, err := e.ExtractTextFromReader(ctx, file, filePath, extraMeta)
	if err != nil {
		e.logger.Warn().Err(err).Dur("elapsed", time.Since(startTime)).Msg("基础方式处理PDF失败")
		return "", nil, err
	}
	return text, metadata, nil
}

// ExtractTextFromReader 从 io.Reader 中提取文本，多页之间以换行连接
func (e *EinoPDFTextExtractor) ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string, extraMeta map[string]interface{}) (text string, metadata map[string]interface{}, err error) {
	if extraMeta == nil {
		extraMeta = make(map[string]interface{})
	}

	// 底层解析库遇到损坏的文件会直接panic
	defer func() {
		if r := recover(); r != nil {
			text, metadata = "", extraMeta
			err = fmt.Errorf("eino PDF parser panicked for URI %s: %v", uri, r)
		}
	}()

	startTime := time.Now()
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	docs, err := e.parser.Parse(ctx, reader,
		einoParser.WithURI(uri),
		einoParser.WithExtraMeta(extraMeta),
	)
	duration := time.Since(startTime)
	if err != nil {
		return "", extraMeta, fmt.Errorf("eino PDF parser failed for URI %s: %w", uri, err)
	}
	if len(docs) == 0 {
		return "", extraMeta, fmt.Errorf("eino PDF parser returned no documents for URI %s", uri)
	}

	var b strings.Builder
	for _, doc := range docs {
		b.WriteString(doc.Content)
		b.WriteString("\n")
	}
	fullContent := b.String()

	finalMetadata := make(map[string]interface{}, len(extraMeta)+3)
	if docs[0].MetaData != nil {
		for k, v := range docs[0].MetaData {
			finalMetadata[k] = v
		}
	}
	for k, v := range extraMeta {
		finalMetadata[k] = v
	}
	finalMetadata["processing_duration_ms"] = duration.Milliseconds()
	finalMetadata["document_count"] = len(docs)
	finalMetadata["text_length"] = len(fullContent)

	e.logger.Debug().
		Str("uri", uri).
		Int("documents", len(docs)).
		Int("chars", len(fullContent)).
		Dur("elapsed", duration).
		Msg("基础方式提取完成")
	return fullContent, finalMetadata, nil
}
