package parser

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-extractor/internal/constants"
	"resume-extractor/internal/parser/parsertest"
)

type stubBasic struct {
	text  string
	err   error
	calls int
}

func (s *stubBasic) ExtractFromFile(_ context.Context, _ string) (string, map[string]interface{}, error) {
	s.calls++
	return s.text, map[string]interface{}{}, s.err
}

func resumePage() parsertest.Page {
	return parsertest.Page{
		{Text: "Jane Doe", X: 72, Y: 740, Size: 18, Bold: true},
		{Text: "jane.doe@example.com", X: 72, Y: 720, Size: 11},
		{Text: "(415) 555-2671", X: 72, Y: 706, Size: 11},
		{Text: "Experience", X: 72, Y: 656, Size: 11, Bold: true},
		{Text: "Software Engineer at Acme Corp", X: 72, Y: 642, Size: 11},
	}
}

func writePDF(t *testing.T, name string, pages ...parsertest.Page) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, parsertest.WriteFile(path, pages...), "写入测试PDF失败")
	return path
}

func newTestExtractor(t *testing.T, basic BasicExtractor, opts ...PDFOption) *PDFTextExtractor {
	t.Helper()
	opts = append([]PDFOption{WithBasicExtractor(basic)}, opts...)
	e, err := NewPDFTextExtractor(context.Background(), opts...)
	require.NoError(t, err)
	return e
}

func TestExtractTextLayout(t *testing.T) {
	path := writePDF(t, "resume.pdf", resumePage())
	basic := &stubBasic{}
	e := newTestExtractor(t, basic)

	text, meta, err := e.ExtractText(context.Background(), path)
	require.NoError(t, err)

	want := "Jane Doe\njane.doe@example.com\n(415) 555-2671\n\nExperience\nSoftware Engineer at Acme Corp"
	assert.Equal(t, want, text, "版面提取应保留行序并在大行距处插入空行")
	assert.Equal(t, 0, basic.calls, "版面提取成功时不应调用基础方式")

	assert.Equal(t, constants.ExtractionMethodLayout, meta["extraction_method"])
	assert.Equal(t, path, meta["source_file_path"])
	assert.Equal(t, 1, meta["page_count"])
	assert.Equal(t, 0, meta["layout_fallback_pages"])
	assert.Equal(t, len(want), meta["text_length"])
	assert.Contains(t, meta, "processing_duration_ms")
}

func TestExtractTextMultiplePages(t *testing.T) {
	path := writePDF(t, "two-pages.pdf",
		parsertest.Lines(11, 14, "Page one"),
		parsertest.Lines(11, 14, "Page two"),
	)
	e := newTestExtractor(t, &stubBasic{}, WithDocumentInspection(false))

	text, meta, err := e.ExtractText(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Page one\nPage two", text)
	assert.Equal(t, 2, meta["page_count"])
}

func TestExtractTextJoinsColumnsWithSpace(t *testing.T) {
	path := writePDF(t, "columns.pdf", parsertest.Page{
		{Text: "Skills", X: 72, Y: 700, Size: 11},
		{Text: "Python", X: 300, Y: 700, Size: 11},
	})
	e := newTestExtractor(t, &stubBasic{}, WithDocumentInspection(false))

	text, _, err := e.ExtractText(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Skills Python", text)
}

func TestExtractTextParagraphGapFactor(t *testing.T) {
	page := parsertest.Lines(11, 14, "One", "Two", "", "Three", "Four")
	path := writePDF(t, "gaps.pdf", page)

	e := newTestExtractor(t, &stubBasic{}, WithDocumentInspection(false))
	text, _, err := e.ExtractText(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "One\nTwo\n\nThree\nFour", text)

	// 阈值提高后，两倍行距不再视为段落
	e = newTestExtractor(t, &stubBasic{}, WithDocumentInspection(false), WithParagraphGapFactor(2.5))
	text, _, err = e.ExtractText(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "One\nTwo\nThree\nFour", text)
}

func TestExtractTextFallsBackToBasic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a pdf document"), 0o644))

	basic := &stubBasic{text: "  Jane   Doe \n\n\n Python  developer \n"}
	e := newTestExtractor(t, basic, WithDocumentInspection(false))

	text, meta, err := e.ExtractText(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, basic.calls)
	assert.Equal(t, "Jane Doe\nPython developer", text, "基础方式只做轻量规范化")
	assert.Equal(t, constants.ExtractionMethodBasic, meta["extraction_method"])
}

func TestExtractTextBothTiersFail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a pdf document"), 0o644))

	basicErr := errors.New("basic failed")
	e := newTestExtractor(t, &stubBasic{err: basicErr}, WithDocumentInspection(false))

	text, meta, err := e.ExtractText(context.Background(), path)
	require.Error(t, err)
	assert.Empty(t, text)
	assert.Nil(t, meta)
	assert.ErrorIs(t, err, ErrExtraction)
	assert.ErrorIs(t, err, basicErr, "应保留底层原因")

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, path, extractionErr.Path)
}

func TestExtractTextEmptyDocumentFails(t *testing.T) {
	path := writePDF(t, "empty.pdf", parsertest.Page{})
	basic := &stubBasic{text: " \n "}
	e := newTestExtractor(t, basic, WithDocumentInspection(false))

	_, _, err := e.ExtractText(context.Background(), path)
	assert.ErrorIs(t, err, ErrExtraction, "两种方式都没有文本时应失败")
	assert.Equal(t, 1, basic.calls)
}

func TestExtractTextMissingFile(t *testing.T) {
	basic := &stubBasic{text: "never used"}
	e := newTestExtractor(t, basic)

	_, _, err := e.ExtractText(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExtraction)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, 0, basic.calls, "文件不存在时不应尝试任何提取方式")
}

func TestExtractTextCancelled(t *testing.T) {
	path := writePDF(t, "resume.pdf", resumePage())
	basic := &stubBasic{text: "unused"}
	e := newTestExtractor(t, basic)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := e.ExtractText(ctx, path)
	assert.ErrorIs(t, err, ErrExtraction)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, basic.calls)
}

func TestFirstPageWords(t *testing.T) {
	path := writePDF(t, "resume.pdf", resumePage())
	e := newTestExtractor(t, &stubBasic{})

	words, err := e.FirstPageWords(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(words), 3)

	assert.Equal(t, Word{Text: "Jane", Size: 18, Bold: true}, words[0])
	assert.Equal(t, Word{Text: "Doe", Size: 18, Bold: true}, words[1])
	assert.Equal(t, Word{Text: "jane.doe@example.com", Size: 11, Bold: false}, words[2])
}

func TestFirstPageWordsDisabled(t *testing.T) {
	path := writePDF(t, "resume.pdf", resumePage())
	e := newTestExtractor(t, &stubBasic{}, WithFontMetadata(false))

	words, err := e.FirstPageWords(path)
	assert.NoError(t, err)
	assert.Empty(t, words)
}

func TestFirstPageWordsNotPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a pdf document"), 0o644))
	e := newTestExtractor(t, &stubBasic{})

	words, err := e.FirstPageWords(path)
	assert.Error(t, err)
	assert.Empty(t, words)
}

func TestInspectDocument(t *testing.T) {
	path := writePDF(t, "two-pages.pdf",
		parsertest.Lines(11, 14, "Page one"),
		parsertest.Lines(11, 14, "Page two"),
	)
	info, err := InspectDocument(path)
	require.NoError(t, err)
	assert.Equal(t, 2, info.PageCount)
	assert.False(t, info.HasImages)

	_, err = InspectDocument(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}
