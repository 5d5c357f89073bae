package main

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"resume-extractor/internal/constants"
	"resume-extractor/internal/types"
)

func TestPrintReport(t *testing.T) {
	r := &types.Resume{
		ID:         "run-1",
		SourcePath: "jane.pdf",
		OutputPath: "jane_extracted.txt",
		Text:       "Jane Doe",
		Name:       "Jane Doe",
		Email:      "jane.doe@example.com",
		Skills: []types.SkillFinding{
			{Category: "Programming Languages", TechStack: []string{"Go", "Python"}},
		},
		Experience: []types.ExperienceEntry{
			{Company: "Acme", Position: "Engineer", Duration: "2019 - 2021", Location: constants.LocationNotSpecified},
		},
		Summary:  "Hi, I'm Jane Doe.",
		Warnings: []string{"phone not found"},
		Duration: 1500 * time.Millisecond,
	}

	var buf bytes.Buffer
	printReport(&buf, r, false)
	out := buf.String()

	assert.Contains(t, out, "File: jane.pdf")
	assert.Contains(t, out, "Name:  Jane Doe")
	assert.Contains(t, out, "Phone: -", "缺失字段应显示为 -")
	assert.Contains(t, out, "Programming Languages: Go, Python")
	assert.Contains(t, out, "1. Engineer at Acme")
	assert.Contains(t, out, "   Duration: 2019 - 2021")
	assert.Contains(t, out, "   Location: Location not specified")
	assert.Contains(t, out, "Hi, I'm Jane Doe.")
	assert.Contains(t, out, "- phone not found")
	assert.Contains(t, out, "Extracted text saved to: jane_extracted.txt")
	assert.Contains(t, out, "Processed in 1.5s (run run-1)")
	assert.NotContains(t, out, "Extracted Text (")
}

func TestPrintReportSentinelsAndText(t *testing.T) {
	r := &types.Resume{
		Name:       constants.DefaultCandidateName,
		Text:       "lorem",
		Skills:     []types.SkillFinding{{Category: constants.NoSkillsFound, TechStack: []string{}}},
		Experience: []types.ExperienceEntry{},
		Summary:    constants.NoSummaryInformation,
	}

	var buf bytes.Buffer
	printReport(&buf, r, true)
	out := buf.String()

	assert.Contains(t, out, "\nNo skills found\n")
	assert.Contains(t, out, "No experience entries found")
	assert.Contains(t, out, "----- Extracted Text (5 chars) -----\nlorem\n")
	assert.NotContains(t, out, "Warnings")
	assert.NotContains(t, out, "saved to")
}

func TestPrintReportSkillStatus(t *testing.T) {
	tests := []struct {
		name   string
		skills []types.SkillFinding
		want   string
	}{
		{"没有技能结果", nil, "----- Skills -----\nNo skills found\n"},
		{"技能提取出错", []types.SkillFinding{{Category: constants.ErrorExtractingSkill, TechStack: []string{}}}, "----- Skills -----\n" + constants.ErrorExtractingSkill + "\n"},
		{"命中技能", []types.SkillFinding{{Category: "Languages", TechStack: []string{"Go", "Python"}}}, "----- Skills -----\nLanguages: Go, Python\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printReport(&buf, &types.Resume{Skills: tt.skills}, false)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestPrintFailure(t *testing.T) {
	var buf bytes.Buffer
	printFailure(&buf, "bad.pdf", errors.New("boom"))
	assert.Equal(t, "Failed to process bad.pdf: boom\n", buf.String())
}
