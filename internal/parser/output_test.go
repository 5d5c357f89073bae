package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		in, suffix, want string
	}{
		{"/tmp/resume.pdf", "", "/tmp/resume_extracted.txt"},
		{"/tmp/jane.doe.PDF", "", "/tmp/jane.doe_extracted.txt"},
		{"/tmp/dir.v2/resume", "", "/tmp/dir.v2/resume_extracted.txt"},
		{"resume.pdf", "_text", "resume_text.txt"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OutputPath(tt.in, tt.suffix), tt.in)
	}
}

func TestWriteExtractedTextOverwrites(t *testing.T) {
	pdfPath := filepath.Join(t.TempDir(), "resume.pdf")

	out, err := WriteExtractedText(pdfPath, "", "first version")
	require.NoError(t, err)
	assert.Equal(t, OutputPath(pdfPath, ""), out)

	out, err = WriteExtractedText(pdfPath, "", "Zoë Ångström\nsecond")
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Zoë Ångström\nsecond", string(data), "已存在的文件应被覆盖且保持UTF-8")

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm()&0o644)
}

func TestWriteExtractedTextBadDir(t *testing.T) {
	_, err := WriteExtractedText(filepath.Join(t.TempDir(), "missing", "resume.pdf"), "", "text")
	assert.Error(t, err)
}
