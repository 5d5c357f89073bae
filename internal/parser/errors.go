package parser

import (
	"errors"
	"fmt"
)

// ErrExtraction PDF文本提取失败（两种提取方式均未得到文本）
var ErrExtraction = errors.New("failed to extract text from PDF")

// ExtractionError 包含路径与底层原因的提取错误
type ExtractionError struct {
	Path   string
	Op     string
	Detail string
	Cause  error
}

func newExtractionError(path, op, detail string, cause error) *ExtractionError {
	return &ExtractionError{Path: path, Op: op, Detail: detail, Cause: cause}
}

func (e *ExtractionError) Error() string {
	msg := fmt.Sprintf("%s (op:%s, path:%s)", ErrExtraction, e.Op, e.Path)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// Is 实现 errors.Is 接口，ExtractionError 总是匹配 ErrExtraction
func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtraction
}
