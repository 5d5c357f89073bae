package parser

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEinoPDFTextExtractor(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	extractor, err := NewEinoPDFTextExtractor(ctx)
	require.NoError(t, err, "创建PDF提取器不应返回错误")
	require.NotNil(t, extractor, "创建的PDF提取器不应为nil")
	require.NotNil(t, extractor.parser, "PDF提取器内部的parser不应为nil")
	require.NotNil(t, extractor.logger, "PDF提取器应该有默认的logger")
	assert.Equal(t, 30*time.Second, extractor.timeout, "默认超时应为30秒")

	// 测试带自定义logger的创建
	customLogger := zerolog.New(&bytes.Buffer{})
	withLogger, err := NewEinoPDFTextExtractor(ctx, WithEinoLogger(&customLogger), WithEinoTimeout(5*time.Second))
	require.NoError(t, err, "创建带自定义logger的PDF提取器不应返回错误")
	assert.Same(t, &customLogger, withLogger.logger, "应该使用提供的自定义logger")
	assert.Equal(t, 5*time.Second, withLogger.timeout)

	// 非正数超时被忽略
	ignored, err := NewEinoPDFTextExtractor(ctx, WithEinoTimeout(0))
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, ignored.timeout)
}

func TestEinoExtractFromMissingFile(t *testing.T) {
	extractor, err := NewEinoPDFTextExtractor(context.Background())
	require.NoError(t, err)

	_, _, err = extractor.ExtractFromFile(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err, "文件不存在时应返回错误")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEinoExtractFromGarbage(t *testing.T) {
	extractor, err := NewEinoPDFTextExtractor(context.Background())
	require.NoError(t, err)

	text, _, err := extractor.ExtractTextFromReader(context.Background(), bytes.NewReader([]byte("this is not a pdf")), "garbage.pdf", nil)
	assert.Error(t, err, "非PDF内容应返回错误而不是panic")
	assert.Empty(t, text)
}
