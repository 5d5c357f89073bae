package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"resume-extractor/internal/constants"
	"resume-extractor/internal/parser"
)

func TestExtractName(t *testing.T) {
	boldName := []parser.Word{
		{Text: "Curriculum", Size: 14}, {Text: "Vitae", Size: 14},
		{Text: "Software", Size: 11}, {Text: "Engineer", Size: 11},
		{Text: "Jane", Size: 11, Bold: true}, {Text: "Doe", Size: 11, Bold: true},
	}
	largeName := []parser.Word{
		{Text: "Software", Size: 11}, {Text: "Engineer", Size: 11},
		{Text: "Jane", Size: 20}, {Text: "Doe", Size: 20},
	}

	tests := []struct {
		name  string
		text  string
		words []parser.Word
		want  string
	}{
		{
			name: "与邮箱前缀一致",
			text: "John Smith\nSoftware Engineer\njohn.smith@example.com",
			want: "John Smith",
		},
		{
			name: "跳过章节标题行",
			text: "Resume Template\nMary Major\nmary_major@example.com",
			want: "Mary Major",
		},
		{
			name:  "粗体确认",
			text:  "Curriculum Vitae\nSoftware Engineer\nJane Doe\nwork@example.com",
			words: boldName,
			want:  "Jane Doe",
		},
		{
			name:  "最大字号确认",
			text:  "Software Engineer\nJane Doe",
			words: largeName,
			want:  "Jane Doe",
		},
		{
			name: "由邮箱前缀推断",
			text: "experienced developer\ncontact: ada_lovelace@example.com",
			want: "Ada Lovelace",
		},
		{
			name: "首行兜底",
			text: "Grace Hopper\nRear admiral",
			want: "Grace Hopper",
		},
		{
			name: "通用邮箱不推断姓名",
			text: "hello@example.com\n12345",
			want: constants.DefaultCandidateName,
		},
		{
			name: "含数字的邮箱不推断姓名",
			text: "jdoe99@example.com",
			want: constants.DefaultCandidateName,
		},
		{
			name: "空文本",
			text: "",
			want: constants.DefaultCandidateName,
		},
	}

	n := NewNameExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.ExtractName(tt.text, tt.words))
		})
	}
}

func TestExtractNameFirstAcceptedCandidateWins(t *testing.T) {
	// 第二行也是粗体，但第一行已经通过邮箱确认
	words := []parser.Word{{Text: "Acme", Bold: true, Size: 11}, {Text: "Corp", Bold: true, Size: 11}}
	got := NewNameExtractor().ExtractName("John Smith\nAcme Corp\njohn.smith@example.com", words)
	assert.Equal(t, "John Smith", got)
}

func TestNameFromEmail(t *testing.T) {
	n := NewNameExtractor()
	assert.Equal(t, "John Smith", n.nameFromEmail("john.smith"))
	assert.Equal(t, "Ada Lovelace", n.nameFromEmail("ADA_LOVELACE"))
	assert.Equal(t, "Jsmith", n.nameFromEmail("jsmith"))
	assert.Equal(t, "", n.nameFromEmail("info"))
	assert.Equal(t, "", n.nameFromEmail("careers.team"))
	assert.Equal(t, "", n.nameFromEmail("a.b.c.d"), "超过三段时不推断")
	assert.Equal(t, "", n.nameFromEmail("john2"))
	assert.Equal(t, "", n.nameFromEmail(""))
}
