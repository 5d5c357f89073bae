package fields

import (
	"math"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"resume-extractor/internal/constants"
	"resume-extractor/internal/logger"
	"resume-extractor/internal/parser"
	"resume-extractor/internal/tracing"
)

const (
	nameScanLines      = 5
	maxEmailNameTokens = 3
	fontSizeEpsilon    = 0.01
)

var (
	sectionHeaderPattern = regexp.MustCompile(`(?i)\b(resume|cv|profile|summary|curriculum vitae)\b`)
	namePattern          = regexp.MustCompile(`^[A-Z][a-z]+\s+[A-Z][a-z]+`)
	digitPattern         = regexp.MustCompile(`[0-9]`)
	emailLocalSeparators = strings.NewReplacer(".", "", "_", "", "-", "", " ", "")
	nameCollapser        = strings.NewReplacer(" ", "", ".", "", "\t", "")
)

// 公共邮箱前缀，不能用来推断姓名
var genericInboxes = map[string]struct{}{
	"info": {}, "contact": {}, "admin": {}, "hello": {}, "support": {}, "sales": {},
	"office": {}, "hr": {}, "jobs": {}, "careers": {}, "mail": {}, "noreply": {},
}

// NameExtractor 按级联规则识别候选人姓名
type NameExtractor struct {
	logger *zerolog.Logger
}

// NameOption 姓名提取器配置选项
type NameOption func(*NameExtractor)

// WithNameLogger 配置日志
func WithNameLogger(l *zerolog.Logger) NameOption {
	return func(n *NameExtractor) {
		n.logger = logger.OrNop(l)
	}
}

// NewNameExtractor 创建姓名提取器
func NewNameExtractor(opts ...NameOption) *NameExtractor {
	n := &NameExtractor{
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// ExtractName 识别姓名，words 为首页的字体信息，可以为空
// 依次尝试：前几行中的候选并用邮箱/粗体/最大字号确认、由邮箱推断、首行、占位符
func (n *NameExtractor) ExtractName(text string, words []parser.Word) (name string) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Warn().Interface("panic", r).Msg("提取姓名异常，使用占位符")
			name = constants.DefaultCandidateName
		}
	}()

	local := emailLocalPart(ExtractEmail(text))
	maxSize := maxFontSize(words)

	for _, line := range leadingLines(text, nameScanLines) {
		if sectionHeaderPattern.MatchString(line) {
			continue
		}
		candidate := namePattern.FindString(line)
		if candidate == "" {
			continue
		}
		candidate = strings.Join(strings.Fields(candidate), " ")

		switch {
		case matchesEmail(candidate, local):
			n.logger.Debug().Str("name", tracing.MaskPII(candidate)).Msg("姓名与邮箱前缀一致")
			return candidate
		case allBold(candidate, words):
			n.logger.Debug().Str("name", tracing.MaskPII(candidate)).Msg("姓名为粗体")
			return candidate
		case inLargestFont(candidate, words, maxSize):
			n.logger.Debug().Str("name", tracing.MaskPII(candidate)).Msg("姓名使用最大字号")
			return candidate
		}
	}

	if derived := n.nameFromEmail(local); derived != "" {
		n.logger.Debug().Str("name", tracing.MaskPII(derived)).Msg("由邮箱前缀推断姓名")
		return derived
	}

	if lines := leadingLines(text, 1); len(lines) == 1 {
		if candidate := namePattern.FindString(lines[0]); candidate != "" {
			return strings.Join(strings.Fields(candidate), " ")
		}
	}

	n.logger.Debug().Msg("未识别到姓名，使用占位符")
	return constants.DefaultCandidateName
}

// nameFromEmail 把 john.smith 这样的邮箱前缀转换为 John Smith
func (n *NameExtractor) nameFromEmail(local string) string {
	if local == "" || digitPattern.MatchString(local) {
		return ""
	}
	if _, generic := genericInboxes[strings.ToLower(local)]; generic {
		return ""
	}

	parts := strings.FieldsFunc(local, func(r rune) bool { return r == '.' || r == '_' })
	if len(parts) == 0 || len(parts) > maxEmailNameTokens {
		return ""
	}
	// Caser 有内部状态，不能跨goroutine共享
	title := cases.Title(language.English)
	for i, p := range parts {
		if _, generic := genericInboxes[strings.ToLower(p)]; generic {
			return ""
		}
		parts[i] = title.String(p)
	}
	return strings.Join(parts, " ")
}

func leadingLines(text string, limit int) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == limit {
			break
		}
	}
	return lines
}

func matchesEmail(candidate, local string) bool {
	if local == "" {
		return false
	}
	collapsed := strings.ToLower(nameCollapser.Replace(candidate))
	return strings.Contains(strings.ToLower(emailLocalSeparators.Replace(local)), collapsed)
}

func wordText(w parser.Word) string {
	return strings.Trim(w.Text, ".,;:|")
}

func allBold(candidate string, words []parser.Word) bool {
	if len(words) == 0 {
		return false
	}
	for _, token := range strings.Fields(candidate) {
		found := false
		for _, w := range words {
			if w.Bold && wordText(w) == token {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func maxFontSize(words []parser.Word) float64 {
	largest := 0.0
	for _, w := range words {
		largest = math.Max(largest, w.Size)
	}
	return largest
}

func inLargestFont(candidate string, words []parser.Word, maxSize float64) bool {
	if maxSize <= 0 {
		return false
	}
	for _, token := range strings.Fields(candidate) {
		for _, w := range words {
			if wordText(w) == token && w.Size >= maxSize-fontSizeEpsilon {
				return true
			}
		}
	}
	return false
}
