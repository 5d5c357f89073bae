package nlp

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// 机构名常见的结尾词
var orgSuffixes = map[string]bool{
	"inc": true, "llc": true, "llp": true, "ltd": true, "limited": true,
	"corp": true, "corporation": true, "company": true, "co": true,
	"group": true, "technologies": true, "technology": true, "labs": true,
	"systems": true, "solutions": true, "consulting": true, "consultants": true,
	"partners": true, "holdings": true, "gmbh": true, "ag": true, "plc": true,
	"sa": true, "studios": true, "networks": true, "agency": true,
	"associates": true, "enterprises": true, "industries": true, "services": true,
	"ventures": true, "foundation": true, "bank": true, "university": true,
	"college": true, "institute": true, "hospital": true, "capital": true,
}

// 出现在机构名任意位置即可判定的中心词，例如 "Bank of America"
var orgHeadWords = map[string]bool{
	"university": true, "bank": true, "college": true, "institute": true,
}

// 引出机构名的前置词
var orgTriggers = map[string]bool{
	"at": true, "joined": true,
}

var monthNames = map[string]bool{
	"jan": true, "january": true, "feb": true, "february": true, "mar": true, "march": true,
	"apr": true, "april": true, "may": true, "jun": true, "june": true, "jul": true, "july": true,
	"aug": true, "august": true, "sep": true, "sept": true, "september": true, "oct": true,
	"october": true, "nov": true, "november": true, "dec": true, "december": true,
	"present": true, "current": true,
}

var defaultGazetteer = []string{
	"Google", "Microsoft", "Amazon", "Apple", "Meta", "Facebook", "Netflix", "IBM",
	"Oracle", "Intel", "Nvidia", "Cisco", "Salesforce", "Adobe", "SAP", "Uber",
	"Airbnb", "Twitter", "LinkedIn", "Spotify", "Stripe", "Shopify", "PayPal",
	"Tesla", "Deloitte", "Accenture", "McKinsey", "KPMG", "PwC", "EY",
	"Infosys", "Wipro", "Cognizant", "Capgemini", "Goldman Sachs", "JPMorgan",
	"JP Morgan", "Morgan Stanley", "Bloomberg", "Atlassian", "GitHub", "GitLab",
	"Red Hat", "VMware", "Dropbox", "Slack", "Zoom", "Samsung", "Sony", "Siemens",
}

var (
	placePattern = regexp.MustCompile(`\b([A-Z][a-zA-Z]+(?:[ \t]+[A-Z][a-zA-Z]+)*),[ \t]*([A-Z]{2})\b`)
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?[ \t]*\d{4}\b`),
		regexp.MustCompile(`\b\d{1,2}[/.-]\d{4}\b`),
		regexp.MustCompile(`\b(?:19|20)\d{2}\b`),
	}
)

// Entities 规则实体识别：地点、日期、机构
func (a *RuleAnalyzer) Entities(text string) []Entity {
	var ents []Entity
	for _, m := range placePattern.FindAllStringIndex(text, -1) {
		ents = append(ents, Entity{Text: text[m[0]:m[1]], Label: LabelGPE, Start: m[0], End: m[1]})
	}
	for _, re := range datePatterns {
		for _, m := range re.FindAllStringIndex(text, -1) {
			if overlapsAny(ents, m[0], m[1]) {
				continue
			}
			ents = append(ents, Entity{Text: text[m[0]:m[1]], Label: LabelDate, Start: m[0], End: m[1]})
		}
	}
	for _, org := range a.organizations(text) {
		if overlapsAny(ents, org.Start, org.End) {
			continue
		}
		ents = append(ents, org)
	}
	sort.SliceStable(ents, func(i, j int) bool { return ents[i].Start < ents[j].Start })
	return ents
}

func overlapsAny(ents []Entity, start, end int) bool {
	for _, e := range ents {
		if start < e.End && e.Start < end {
			return true
		}
	}
	return false
}

// organizations 在首字母大写的词串中识别机构名
func (a *RuleAnalyzer) organizations(text string) []Entity {
	tokens := a.Tokens(text)
	var out []Entity
	for _, run := range capitalizedRuns(text, tokens) {
		if ent, ok := a.classifyRun(text, tokens, run); ok {
			out = append(out, ent)
		}
	}
	return out
}

type span struct{ from, to int } // tokens[from:to]

// capitalizedRuns 切出由首字母大写词组成的连续词串，中间允许 "of" 与 "&"
func capitalizedRuns(text string, tokens []Token) []span {
	var runs []span
	i := 0
	for i < len(tokens) {
		if !isCapitalized(tokens[i].Text) {
			i++
			continue
		}
		j := i + 1
		for j < len(tokens) && joinable(text[tokens[j-1].End:tokens[j].Start]) {
			if isCapitalized(tokens[j].Text) {
				j++
				continue
			}
			if strings.EqualFold(tokens[j].Text, "of") && j+1 < len(tokens) &&
				isCapitalized(tokens[j+1].Text) && joinable(text[tokens[j].End:tokens[j+1].Start]) {
				j += 2
				continue
			}
			break
		}
		runs = append(runs, span{from: i, to: j})
		i = j
	}
	return runs
}

func joinable(gap string) bool {
	if strings.ContainsAny(gap, "\n\r") {
		return false
	}
	return strings.Trim(gap, " \t&") == ""
}

func isCapitalized(word string) bool {
	r, _ := utf8.DecodeRuneInString(word)
	return unicode.IsUpper(r)
}

func (a *RuleAnalyzer) classifyRun(text string, tokens []Token, run span) (Entity, bool) {
	words := make([]string, 0, run.to-run.from)
	for _, t := range tokens[run.from:run.to] {
		words = append(words, strings.ToLower(t.Text))
	}
	start, end := tokens[run.from].Start, tokens[run.to-1].End

	whole := func() (Entity, bool) {
		e := end
		if e < len(text) && text[e] == '.' && orgSuffixes[words[len(words)-1]] {
			e++
		}
		return Entity{Text: text[start:e], Label: LabelOrg, Start: start, End: e}, true
	}

	if len(words) >= 2 && orgSuffixes[words[len(words)-1]] {
		return whole()
	}
	if len(words) >= 2 {
		for _, w := range words {
			if orgHeadWords[w] {
				return whole()
			}
		}
	}
	if !monthNames[words[0]] && a.triggered(text, tokens, run.from) {
		return whole()
	}

	// 名录匹配只取命中的部分
	for _, g := range a.gazetteer {
		for k := 0; k+len(g) <= len(words); k++ {
			if equalWords(words[k:k+len(g)], g) {
				s, e := tokens[run.from+k].Start, tokens[run.from+k+len(g)-1].End
				return Entity{Text: text[s:e], Label: LabelOrg, Start: s, End: e}, true
			}
		}
	}
	return Entity{}, false
}

// triggered 词串前是否紧跟 "at"、"joined" 或 "@"
func (a *RuleAnalyzer) triggered(text string, tokens []Token, first int) bool {
	before := strings.TrimRight(text[:tokens[first].Start], " \t")
	if strings.HasSuffix(before, "@") {
		return true
	}
	if first == 0 {
		return false
	}
	prev := tokens[first-1]
	if strings.TrimSpace(text[prev.End:tokens[first].Start]) != "" {
		return false
	}
	return orgTriggers[strings.ToLower(prev.Text)]
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
