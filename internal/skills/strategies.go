package skills

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"resume-extractor/internal/nlp"
)

// 上下文窗口中出现任一词即认为技能提及有效
var contextIndicators = buildIndicators(
	// 领域
	"programming", "development", "coding", "software",
	"framework", "library", "platform",
	"database", "sql", "nosql", "storage",
	"cloud", "aws", "azure", "gcp", "googlecloud", "heroku", "digitalocean",
	"devops", "ci", "cd", "continuous", "deployment", "infrastructure",
	"machine", "learning", "ai", "artificial", "intelligence", "deep", "neural",
	// 经验
	"using", "knowledge", "experience", "familiarity", "proficient", "skilled",
	// 技术栈
	"stack", "tools",
)

// 技能章节标题关键词
var sectionKeywords = []string{
	"skills", "technical skills", "key skills", "expertise", "technologies", "technical expertise",
}

var sectionPunctuation = strings.NewReplacer(",", " ", ".", " ", ":", " ", ";", " ")

func buildIndicators(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// matchContext 按词序列匹配技能，并要求前后窗口内出现指示词
func (m *Matcher) matchContext(text string) []term {
	tokens := nlp.Words(m.analyzer, text)
	if len(tokens) == 0 {
		return nil
	}

	positions := make(map[string][]int, len(tokens))
	for i, tok := range tokens {
		positions[tok] = append(positions[tok], i)
	}

	var hits []term
	for _, t := range m.terms {
		if len(t.words) == 0 {
			continue
		}
		for _, start := range positions[t.words[0]] {
			end := start + len(t.words)
			if end > len(tokens) || !equalWords(tokens[start:end], t.words) {
				continue
			}
			lo := max(0, start-m.contextWindow)
			hi := min(len(tokens), end+m.contextWindow)
			if hasIndicator(tokens[lo:hi]) {
				hits = append(hits, t)
				break
			}
		}
	}
	return hits
}

func equalWords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func hasIndicator(window []string) bool {
	for _, w := range window {
		if _, ok := contextIndicators[w]; ok {
			return true
		}
	}
	return false
}

// compileTerm 整词匹配，技能中的空白可匹配任意空白
// 只有首尾是单词字符时才加边界，".NET" 可在 "ASP.NET" 中命中，"C++" 可在 "C++17" 中命中；
// 以单词字符结尾时 '+' 和 '#' 视为词的一部分，"C" 不会在 "C++" 中命中
func compileTerm(skill string) *regexp.Regexp {
	parts := strings.Fields(skill)
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	expr := strings.Join(parts, `\s+`)

	trimmed := strings.TrimSpace(skill)
	first, _ := utf8.DecodeRuneInString(trimmed)
	last, _ := utf8.DecodeLastRuneInString(trimmed)
	if isWordRune(first) {
		expr = `(?:^|[^A-Za-z0-9_])` + expr
	}
	if isWordRune(last) {
		expr += `(?:$|[^A-Za-z0-9_+#])`
	}
	return regexp.MustCompile(`(?i)` + expr)
}

func isWordRune(r rune) bool {
	return r == '_' || ('0' <= r && r <= '9') || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

// matchRegex 在全文中逐个技能做整词匹配
func (m *Matcher) matchRegex(text string) []term {
	var hits []term
	for _, t := range m.terms {
		if t.pattern.MatchString(text) {
			hits = append(hits, t)
		}
	}
	return hits
}

// sectionPhrases 章节扫描的三种写法：原样、去掉空格、空格换成下划线
func sectionPhrases(skill string) []string {
	words := strings.Fields(sectionPunctuation.Replace(strings.ToLower(skill)))
	if len(words) == 0 {
		return nil
	}
	phrases := []string{strings.Join(words, " ")}
	if len(words) > 1 {
		phrases = append(phrases, strings.Join(words, ""), strings.Join(words, "_"))
	}
	return phrases
}

// matchSection 优先扫描技能章节；找不到章节标题时扫描全文
func (m *Matcher) matchSection(text string) []term {
	lines := strings.Split(strings.ToLower(text), "\n")

	scope := lines
	for i, line := range lines {
		if containsAny(line, sectionKeywords) {
			scope = lines[i:min(len(lines), i+m.sectionSpan)]
			break
		}
	}

	padded := " " + strings.Join(strings.Fields(sectionPunctuation.Replace(strings.Join(scope, " "))), " ") + " "

	var hits []term
	for _, t := range m.terms {
		for _, phrase := range t.phrases {
			if strings.Contains(padded, " "+phrase+" ") {
				hits = append(hits, t)
				break
			}
		}
	}
	return hits
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
