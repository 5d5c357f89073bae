package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrorType 定义错误类型，便于分类和过滤
type ErrorType string

const (
	// ErrorTypeExtraction PDF文本提取错误
	ErrorTypeExtraction ErrorType = "extraction"
	// ErrorTypeTaxonomy 技能分类表加载错误
	ErrorTypeTaxonomy ErrorType = "taxonomy"
	// ErrorTypeAnalyzer 语言分析器错误
	ErrorTypeAnalyzer ErrorType = "analyzer"
	// ErrorTypeOutput 输出文件写入错误
	ErrorTypeOutput ErrorType = "output"
	// ErrorTypeValidation 验证错误
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeInternal 内部错误（被恢复的panic等）
	ErrorTypeInternal ErrorType = "internal"
	// ErrorTypeTimeout 超时错误
	ErrorTypeTimeout ErrorType = "timeout"
)

// RecordError 记录错误，添加统一的错误类型和详情
func RecordError(span trace.Span, err error, errorType ErrorType) {
	RecordErrorWithInfo(span, err, errorType)
}

// RecordErrorWithInfo 记录错误并添加额外信息
func RecordErrorWithInfo(span trace.Span, err error, errorType ErrorType, attributes ...attribute.KeyValue) {
	if span == nil || err == nil {
		return
	}

	span.RecordError(err)
	span.SetAttributes(
		attribute.String("error.type", string(errorType)),
		attribute.String("error.message", TruncateString(err.Error(), DefaultMaxLength)),
	)
	if len(attributes) > 0 {
		span.SetAttributes(attributes...)
	}
	span.SetStatus(codes.Error, err.Error())
}

// RecordDegradation 记录非致命降级（组件回退到占位结果），不把span标记为错误
func RecordDegradation(span trace.Span, stage string, reason string) {
	if span == nil {
		return
	}
	span.AddEvent("degraded", trace.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("reason", TruncateString(reason, DefaultMaxLength)),
	))
}
