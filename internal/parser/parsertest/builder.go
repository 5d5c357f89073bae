// Package parsertest 在测试中按需用 pdfcpu 生成文本PDF，避免提交二进制测试文件。
package parsertest

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/font"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Line 页面上的一行文字，坐标为PDF用户空间（左下角为原点）
type Line struct {
	Text string
	X    float64
	Y    float64
	Size float64
	Bold bool
}

// Page 一页上的全部行
type Page []Line

const (
	regularFont = "Helvetica"
	boldFont    = "Helvetica-Bold"
	defaultSize = 11
)

// Lines 把若干行文字从页面顶部开始按固定行距排列
func Lines(size, leading float64, texts ...string) Page {
	page := make(Page, 0, len(texts))
	y := 720.0
	for _, t := range texts {
		if t != "" {
			page = append(page, Line{Text: t, X: 72, Y: y, Size: size})
		}
		y -= leading
	}
	return page
}

// Build 生成包含给定页面的PDF，使用 Helvetica 与 Helvetica-Bold 两种核心字体
// 写出时使用传统 xref 表，不使用对象流
func Build(pages ...Page) ([]byte, error) {
	xRefTable, err := pdfcpu.CreateXRefTableWithRootDict()
	if err != nil {
		return nil, fmt.Errorf("create xref table: %w", err)
	}
	root, err := xRefTable.Catalog()
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	fonts := types.Dict{}
	for name, base := range map[string]string{"F1": regularFont, "F2": boldFont} {
		ref, err := xRefTable.IndRefForNewObject(fontDict(base))
		if err != nil {
			return nil, fmt.Errorf("font %s: %w", base, err)
		}
		fonts.Insert(name, *ref)
	}

	mediaBox := types.NewRectangle(0, 0, 612, 792)
	pagesDict := types.Dict{
		"Type":     types.Name("Pages"),
		"Count":    types.Integer(len(pages)),
		"MediaBox": mediaBox.Array(),
	}
	pagesRef, err := xRefTable.IndRefForNewObject(pagesDict)
	if err != nil {
		return nil, fmt.Errorf("page tree: %w", err)
	}

	kids := types.Array{}
	for i, page := range pages {
		sd, err := xRefTable.NewStreamDictForBuf([]byte(contentStream(page)))
		if err != nil {
			return nil, fmt.Errorf("page %d content: %w", i+1, err)
		}
		if err := sd.Encode(); err != nil {
			return nil, fmt.Errorf("page %d encode: %w", i+1, err)
		}
		contentRef, err := xRefTable.IndRefForNewObject(*sd)
		if err != nil {
			return nil, fmt.Errorf("page %d content: %w", i+1, err)
		}

		pageRef, err := xRefTable.IndRefForNewObject(types.Dict{
			"Type":      types.Name("Page"),
			"Parent":    *pagesRef,
			"MediaBox":  mediaBox.Array(),
			"Resources": types.Dict{"Font": fonts},
			"Contents":  *contentRef,
		})
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		kids = append(kids, *pageRef)
	}
	pagesDict.Insert("Kids", kids)
	root.Insert("Pages", *pagesRef)
	xRefTable.PageCount = len(pages)

	conf := model.NewDefaultConfiguration()
	conf.WriteObjectStream = false
	conf.WriteXRefStream = false

	var buf bytes.Buffer
	if err := api.WriteContext(pdfcpu.CreateContext(xRefTable, conf), &buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile 生成PDF并写入 path
func WriteFile(path string, pages ...Page) error {
	data, err := Build(pages...)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// fontDict 核心字体字典，字宽取自 pdfcpu 内置的 AFM 度量
func fontDict(base string) types.Dict {
	widths := make(types.Array, 0, 95)
	for c := 32; c <= 126; c++ {
		widths = append(widths, types.Integer(font.CharWidth(base, rune(c))))
	}
	return types.Dict{
		"Type":      types.Name("Font"),
		"Subtype":   types.Name("Type1"),
		"BaseFont":  types.Name(base),
		"Encoding":  types.Name("WinAnsiEncoding"),
		"FirstChar": types.Integer(32),
		"LastChar":  types.Integer(126),
		"Widths":    widths,
	}
}

func contentStream(page Page) string {
	var b strings.Builder
	for _, l := range page {
		fontName := "F1"
		if l.Bold {
			fontName = "F2"
		}
		size := l.Size
		if size <= 0 {
			size = defaultSize
		}
		fmt.Fprintf(&b, "BT /%s %g Tf %g %g Td (%s) Tj ET\n", fontName, size, l.X, l.Y, escape(l.Text))
	}
	return b.String()
}

var escaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)

func escape(s string) string {
	return escaper.Replace(s)
}
