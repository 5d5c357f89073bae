package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"resume-extractor/internal/constants"
)

// OutputPath 提取文本的输出路径：与PDF同目录，文件名追加后缀并改为 .txt
func OutputPath(pdfPath, suffix string) string {
	if suffix == "" {
		suffix = constants.ExtractedTextSuffix
	}
	return strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + suffix + constants.ExtractedTextExt
}

// WriteExtractedText 以UTF-8写出提取文本，已存在时覆盖，返回输出路径
func WriteExtractedText(pdfPath, suffix, text string) (string, error) {
	out := OutputPath(pdfPath, suffix)
	if err := os.WriteFile(out, []byte(strings.ToValidUTF8(text, "�")), 0o644); err != nil {
		return "", fmt.Errorf("write extracted text %s: %w", out, err)
	}
	return out, nil
}
