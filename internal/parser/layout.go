package parser

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Word 首页上的一个词及其字体信息，供姓名识别使用
type Word struct {
	Text string
	Size float64
	Bold bool
}

type glyphLine struct {
	y      float64
	glyphs []pdf.Text
}

const (
	defaultGapFactor = 1.8
	// 字宽缺失时按字号的一半估算
	fallbackWidthRatio = 0.5
	// 相邻字形间距超过字号的该比例时补一个空格
	spaceGapRatio = 0.2
)

// layoutPage 按字形坐标重建页面文本：同一基线的字形组成一行，行距明显大于常规行距处插入空行
func layoutPage(p pdf.Page, gapFactor float64) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("layout walk panicked: %v", r)
		}
	}()

	lines := groupGlyphLines(p.Content().Text)
	if len(lines) == 0 {
		return "", nil
	}

	paragraphGap := math.Inf(1)
	if median := medianLineGap(lines); median > 0 {
		if gapFactor <= 1 {
			gapFactor = defaultGapFactor
		}
		paragraphGap = median * gapFactor
	}

	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
			if lines[i-1].y-line.y > paragraphGap {
				b.WriteString("\n")
			}
		}
		b.WriteString(lineText(line))
	}
	return b.String(), nil
}

// groupGlyphLines 把字形按基线聚成行，行从上到下排列，行内从左到右
func groupGlyphLines(glyphs []pdf.Text) []glyphLine {
	var lines []glyphLine
	for _, g := range glyphs {
		if g.S == "" {
			continue
		}
		tol := math.Max(1, 0.3*glyphSize(g))
		placed := false
		for i := range lines {
			if math.Abs(lines[i].y-g.Y) <= tol {
				lines[i].glyphs = append(lines[i].glyphs, g)
				placed = true
				break
			}
		}
		if !placed {
			lines = append(lines, glyphLine{y: g.Y, glyphs: []pdf.Text{g}})
		}
	}

	sort.SliceStable(lines, func(i, j int) bool { return lines[i].y > lines[j].y })
	for i := range lines {
		gs := lines[i].glyphs
		sort.SliceStable(gs, func(a, b int) bool { return gs[a].X < gs[b].X })
	}
	return lines
}

func glyphSize(g pdf.Text) float64 {
	if g.FontSize > 0 {
		return g.FontSize
	}
	return 10
}

func glyphWidth(g pdf.Text) float64 {
	if g.W > 0 {
		return g.W
	}
	return glyphSize(g) * fallbackWidthRatio
}

func isBlankGlyph(g pdf.Text) bool {
	return strings.TrimSpace(g.S) == ""
}

// wideGap 两个字形之间是否留有词间距
func wideGap(prev, cur pdf.Text) bool {
	return cur.X-(prev.X+glyphWidth(prev)) > spaceGapRatio*glyphSize(cur)
}

func lineText(line glyphLine) string {
	var b strings.Builder
	for i, g := range line.glyphs {
		if isBlankGlyph(g) {
			b.WriteString(" ")
			continue
		}
		if i > 0 && !isBlankGlyph(line.glyphs[i-1]) && wideGap(line.glyphs[i-1], g) {
			b.WriteString(" ")
		}
		b.WriteString(g.S)
	}
	return b.String()
}

// lineWords 按空白字形与词间距切分一行中的词
func lineWords(line glyphLine) []Word {
	var words []Word
	var cur strings.Builder
	var size float64
	bold := true

	flush := func() {
		if cur.Len() > 0 {
			words = append(words, Word{Text: cur.String(), Size: size, Bold: bold})
		}
		cur.Reset()
		size = 0
		bold = true
	}

	for i, g := range line.glyphs {
		if isBlankGlyph(g) {
			flush()
			continue
		}
		if i > 0 && !isBlankGlyph(line.glyphs[i-1]) && wideGap(line.glyphs[i-1], g) {
			flush()
		}
		cur.WriteString(g.S)
		size = math.Max(size, glyphSize(g))
		bold = bold && isBoldFont(g.Font)
	}
	flush()
	return words
}

func isBoldFont(font string) bool {
	f := strings.ToLower(font)
	return strings.Contains(f, "bold") || strings.Contains(f, "black") || strings.Contains(f, "heavy")
}

func medianLineGap(lines []glyphLine) float64 {
	if len(lines) < 3 {
		return 0
	}
	gaps := make([]float64, 0, len(lines)-1)
	for i := 1; i < len(lines); i++ {
		gaps = append(gaps, lines[i-1].y-lines[i].y)
	}
	sort.Float64s(gaps)
	return gaps[len(gaps)/2]
}
