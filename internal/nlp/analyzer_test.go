package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTexts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}

func TestNopAnalyzer(t *testing.T) {
	var a Analyzer = NopAnalyzer{}
	assert.False(t, a.Available())
	assert.Empty(t, a.Sentences("Hello. World."))
	assert.Empty(t, a.Tokens("Hello"))
	assert.Empty(t, a.Entities("at Google"))
}

func TestNew(t *testing.T) {
	assert.True(t, New("rule").Available())
	assert.False(t, New("none").Available())
	assert.False(t, New("").Available(), "未知名称应回退到空实现")
}

func TestSentencesBreakOnNewlines(t *testing.T) {
	a := NewRuleAnalyzer()
	got := a.Sentences("Work Experience\nSenior Engineer at Google. Built APIs.\n\nEducation")
	assert.Equal(t, []string{
		"Work Experience",
		"Senior Engineer at Google.",
		"Built APIs.",
		"Education",
	}, got)
}

func TestSentencesKeepAbbreviations(t *testing.T) {
	a := NewRuleAnalyzer()
	got := a.Sentences("Sr. Software Engineer, Acme Inc.\nJan. 2020 - Dec. 2022\nShipped Go services. Led a team.")
	assert.Equal(t, []string{
		"Sr. Software Engineer, Acme Inc.",
		"Jan. 2020 - Dec. 2022",
		"Shipped Go services.",
		"Led a team.",
	}, got)

	// 缩写在行尾时不跨行合并
	got = a.Sentences("Worked at Acme Inc.\nBuilt APIs")
	assert.Equal(t, []string{"Worked at Acme Inc.", "Built APIs"}, got)
}

func TestTokensKeepTechnologyNames(t *testing.T) {
	a := NewRuleAnalyzer()
	tokens := a.Tokens("I know C++ and C#, Node.js.")
	assert.Equal(t, []string{"I", "know", "C++", "and", "C#", "Node.js"}, tokenTexts(tokens))

	text := "I know C++ and C#, Node.js."
	for _, tok := range tokens {
		assert.Equal(t, tok.Text, text[tok.Start:tok.End], "词元偏移应指向原文")
	}
}

func TestWordsLowercases(t *testing.T) {
	assert.Equal(t, []string{"using", "python", "daily"}, Words(NewRuleAnalyzer(), "Using Python, daily!"))
}

func TestEntities(t *testing.T) {
	a := NewRuleAnalyzer()

	tests := []struct {
		name string
		text string
		want []Entity
	}{
		{
			name: "at 引出的机构",
			text: "Senior Engineer at Google",
			want: []Entity{{Text: "Google", Label: LabelOrg, Start: 19, End: 25}},
		},
		{
			name: "公司后缀与地点",
			text: "Software Engineer, Acme Corp., San Francisco, CA",
			want: []Entity{
				{Text: "Acme Corp.", Label: LabelOrg, Start: 19, End: 29},
				{Text: "San Francisco, CA", Label: LabelGPE, Start: 31, End: 48},
			},
		},
		{
			name: "中心词与介词of",
			text: "Analyst with Bank of America",
			want: []Entity{{Text: "Bank of America", Label: LabelOrg, Start: 13, End: 28}},
		},
		{
			name: "日期",
			text: "Jan 2019 - Present",
			want: []Entity{{Text: "Jan 2019", Label: LabelDate, Start: 0, End: 8}},
		},
		{
			name: "名录命中",
			text: "Microsoft Azure certified",
			want: []Entity{{Text: "Microsoft", Label: LabelOrg, Start: 0, End: 9}},
		},
		{
			name: "无实体",
			text: "built internal tooling",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Entities(tt.text))
		})
	}
}

func TestWithGazetteer(t *testing.T) {
	a := NewRuleAnalyzer(WithGazetteer("Initech"))
	org, ok := FirstEntity(a, "Initech Platform Team", LabelOrg)
	require.True(t, ok)
	assert.Equal(t, "Initech", org.Text)

	_, ok = FirstEntity(NewRuleAnalyzer(), "Initech Platform Team", LabelOrg)
	assert.False(t, ok, "不在名录中的词串不应被识别")
}
