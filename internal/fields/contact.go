// Package fields 从简历文本中提取姓名、邮箱与电话。
// 所有提取函数都不向外返回错误，异常时返回空字符串或占位符。
package fields

import (
	"regexp"
	"strings"

	"resume-extractor/internal/logger"
)

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

// 按优先级排列：国际格式、带括号的本地格式、连续10位、分隔的三段式
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+?[0-9]{1,3}[-.\s]?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}`),
	regexp.MustCompile(`\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}`),
	regexp.MustCompile(`[0-9]{10}`),
	regexp.MustCompile(`[0-9]{3}[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}`),
}

var phoneNoise = regexp.MustCompile(`[^0-9+]`)

// ExtractEmail 返回文本中第一个邮箱地址，没有时返回空字符串
func ExtractEmail(text string) (email string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn().Interface("panic", r).Msg("提取邮箱异常")
			email = ""
		}
	}()
	return emailPattern.FindString(text)
}

// ExtractPhone 按优先级尝试各电话格式，返回第一个命中结果中的数字与加号
func ExtractPhone(text string) (phone string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn().Interface("panic", r).Msg("提取电话异常")
			phone = ""
		}
	}()
	for _, p := range phonePatterns {
		if m := p.FindString(text); m != "" {
			return phoneNoise.ReplaceAllString(m, "")
		}
	}
	return ""
}

// emailLocalPart 返回邮箱 @ 之前的部分
func emailLocalPart(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found {
		return ""
	}
	return local
}
