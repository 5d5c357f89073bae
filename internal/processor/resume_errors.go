package processor

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	ErrExtractorNotInit = errors.New("text extractor not initialized")
	ErrParseTextFailed  = errors.New("failed to extract resume text")
	ErrWriteTextFailed  = errors.New("failed to write extracted text")
)

// ResumeProcessError 包含详细错误信息的自定义错误
type ResumeProcessError struct {
	RunID   string
	Path    string
	Op      string
	BaseErr error
	Detail  string
	Cause   error
}

func (e *ResumeProcessError) Error() string {
	msg := fmt.Sprintf("%s (op:%s, run:%s, path:%s)", e.BaseErr, e.Op, e.RunID, e.Path)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap 同时暴露基础错误与底层原因，errors.As 可取到 *parser.ExtractionError
func (e *ResumeProcessError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.BaseErr}
	}
	return []error{e.BaseErr, e.Cause}
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *ResumeProcessError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewParseError(runID, path string, cause error) error {
	return &ResumeProcessError{
		RunID:   runID,
		Path:    path,
		Op:      "parse",
		BaseErr: ErrParseTextFailed,
		Cause:   cause,
	}
}

func NewWriteError(runID, path string, cause error) error {
	return &ResumeProcessError{
		RunID:   runID,
		Path:    path,
		Op:      "write",
		BaseErr: ErrWriteTextFailed,
		Cause:   cause,
	}
}

func NewNotInitError(runID, path, detail string) error {
	return &ResumeProcessError{
		RunID:   runID,
		Path:    path,
		Op:      "init",
		BaseErr: ErrExtractorNotInit,
		Detail:  detail,
	}
}
