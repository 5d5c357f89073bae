package taxonomy

import (
	"errors"
	"fmt"
)

var (
	ErrMissingFile       = errors.New("taxonomy file not found")
	ErrMalformedTaxonomy = errors.New("malformed taxonomy")
)

// Error 分类表加载错误
type Error struct {
	Path    string
	Op      string
	BaseErr error
	Detail  string
}

func newError(path, op string, base error, detail string) *Error {
	return &Error{Path: path, Op: op, BaseErr: base, Detail: detail}
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (op:%s, path:%s): %s", e.BaseErr, e.Op, e.Path, e.Detail)
	}
	return fmt.Sprintf("%s (op:%s, path:%s)", e.BaseErr, e.Op, e.Path)
}

func (e *Error) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *Error) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}
