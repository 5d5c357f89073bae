package experience

import (
	"regexp"
	"strings"
)

const monthAlternation = `jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec`

var (
	// 工作经历章节关键词
	experiencePattern = regexp.MustCompile(`(?i)\b(?:experience|work experience|professional experience|employment history|career history|professional background|work history|employment|career|professional summary|career summary|employment details)\b`)

	// 其它章节的标题关键词，出现时经历章节结束
	sectionEndPattern = regexp.MustCompile(`(?i)\b(?:education|skills|certifications|projects|achievements|publications|languages|interests|summary|objective|profile|contact|address)\b`)

	// 职位名词
	positionPattern = regexp.MustCompile(`(?i)\b(?:engineer|developer|manager|analyst|consultant|specialist|lead|director|architect|administrator|coordinator|assistant|associate|senior|junior|principal|technical|business|product|project|operations|quality|security|data|cloud|devops|software|application|system|network|database|frontend|backend|full stack|mobile|web)s?\b`)

	// 按优先级排列，越具体的格式越靠前
	durationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{1,2}/\d{4}\s*[-–]\s*\d{1,2}/\d{4}`),
		regexp.MustCompile(`\d{1,2}-\d{4}\s*[-–]\s*\d{1,2}-\d{4}`),
		regexp.MustCompile(`\d{1,2}\s*[./]\d{4}\s*[-–]\s*\d{1,2}\s*[./]\d{4}`),
		regexp.MustCompile(`(?i)\b(?:` + monthAlternation + `)[a-z]*\.?\s*\d{4}\s*[-–]\s*(?:` + monthAlternation + `)[a-z]*\.?\s*\d{4}`),
		regexp.MustCompile(`(?i)\b(?:` + monthAlternation + `)[a-z]*\.?\s*\d{4}\s*[-–]\s*(?:present|current)\b`),
		regexp.MustCompile(`\b\d{4}\s*[-–]\s*\d{4}\b`),
		regexp.MustCompile(`(?i)\b\d{4}\s*[-–]\s*(?:present|current)\b`),
	}

	locationPattern = regexp.MustCompile(`([A-Za-z\s]+,\s*[A-Z]{2})\b`)

	// 职位从句的分隔：两侧有空白的短横线或竖线，或逗号
	clauseSeparator = regexp.MustCompile(`\s+[-–—|]\s+|\s*\|\s*|,`)
	// "Engineer at Acme" 中 at 之后是公司名
	employerIntro = regexp.MustCompile(`\s+(?:at|@)\s+\S`)

	companyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:company|organization|firm|employer)\s*:\s*(\w+(?:[ \t]+\w+)*)`),
		regexp.MustCompile(`(?i:\b(?:at|with|for|in|to))[ \t]+([A-Z][\w&.'-]*(?:[ \t]+[A-Z][\w&.'-]*)*)`),
	}

	durationWords = regexp.MustCompile(`(?i)\b(?:years?|months?|present|january|february|march|april|may|june|july|august|september|october|november|december)\b`)

	// 这些词开头的大写词串是日期，不是公司
	notCompanyPattern = regexp.MustCompile(`(?i)^(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sept?(?:ember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?|present|current)\b`)
)

var bulletTrimmer = strings.NewReplacer("•", "", "▪", "", "●", "")

// stripBullet 去掉行首的项目符号
func stripBullet(line string) string {
	line = strings.TrimSpace(line)
	for _, b := range []string{"•", "-", "*", "▪", "●", "·"} {
		if strings.HasPrefix(line, b) {
			return strings.TrimSpace(line[len(b):])
		}
	}
	return line
}

// positionClause 取职位所在的第一个从句，并去掉 "at 公司" 部分
func positionClause(line string) string {
	clause := strings.TrimSpace(bulletTrimmer.Replace(stripBullet(line)))
	if loc := clauseSeparator.FindStringIndex(clause); loc != nil && loc[0] > 0 {
		clause = clause[:loc[0]]
	}
	if loc := employerIntro.FindStringIndex(clause); loc != nil && loc[0] > 0 {
		clause = clause[:loc[0]]
	}
	return strings.TrimSpace(clause)
}

// findDuration 返回第一个匹配的起止时间
func findDuration(line string) string {
	for _, p := range durationPatterns {
		if m := p.FindString(line); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

// findCompany 用介词短语或 "company:" 标签识别公司名
func findCompany(line string) string {
	for _, p := range companyPatterns {
		for _, m := range p.FindAllStringSubmatch(line, -1) {
			name := strings.TrimRight(strings.TrimSpace(m[1]), ".")
			if name == "" || notCompanyPattern.MatchString(name) {
				continue
			}
			return name
		}
	}
	return ""
}
