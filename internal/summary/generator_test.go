package summary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-extractor/internal/constants"
	"resume-extractor/internal/taxonomy"
	"resume-extractor/internal/types"
)

func newGenerator(t *testing.T) *Generator {
	t.Helper()
	tax, err := taxonomy.Load("../../testdata/skills.json")
	require.NoError(t, err)
	return NewGenerator(tax)
}

func TestGenerateSingleRole(t *testing.T) {
	g := newGenerator(t)

	got := g.Generate("Jane Doe",
		[]types.SkillFinding{{Category: "Programming Languages", TechStack: []string{"Python"}}},
		[]types.ExperienceEntry{{Position: "Engineer", Company: "Acme"}},
	)

	assert.True(t, strings.HasPrefix(got, "Hi, I'm Jane Doe"), got)
	assert.Contains(t, got, "working as Engineer at Acme")
	assert.True(t, strings.HasSuffix(got, "."), got)
	assert.Equal(t, "Hi, I'm Jane Doe with 1 year of professional experience working as Engineer at Acme "+
		"with expertise in Python with a solid foundation in professional practices.", got)
}

func TestGenerateAllClauses(t *testing.T) {
	g := newGenerator(t)

	skills := []types.SkillFinding{
		{Category: "Business", TechStack: []string{"Agile", "Scrum"}},
		{Category: "Cloud & DevOps", TechStack: []string{"AWS", "Docker", "Kubernetes"}},
		{Category: "Programming Languages", TechStack: []string{"Go", "Python", "Ruby"}},
		{Category: "Soft Skills", TechStack: []string{"Leadership"}},
	}
	exp := []types.ExperienceEntry{
		{Position: "Staff Engineer", Company: "Initech"},
		{Position: "Senior Engineer", Company: "Globex"},
		{Position: "Engineer", Company: "Acme"},
	}

	got := g.Generate("John Smith", skills, exp)
	assert.Equal(t, "Hi, I'm John Smith with 3 years of professional experience "+
		"working as Staff Engineer at Initech, Senior Engineer at Globex "+
		"with expertise in AWS, Docker, Kubernetes and more "+
		"and strong business acumen in Agile, Scrum "+
		"with excellent Leadership "+
		"showing rapid professional growth and skill development.", got)
}

func TestGenerateClosingClauseThresholds(t *testing.T) {
	g := newGenerator(t)
	entries := func(n int) []types.ExperienceEntry {
		out := make([]types.ExperienceEntry, n)
		for i := range out {
			out[i] = types.ExperienceEntry{Position: "Engineer", Company: "Acme"}
		}
		return out
	}

	assert.True(t, strings.HasSuffix(g.Generate("A B", nil, entries(2)), "with a solid foundation in professional practices."))
	assert.True(t, strings.HasSuffix(g.Generate("A B", nil, entries(3)), "showing rapid professional growth and skill development."))
	assert.True(t, strings.HasSuffix(g.Generate("A B", nil, entries(6)), "demonstrating strong leadership and technical acumen."))
}

func TestGenerateNoInformation(t *testing.T) {
	g := newGenerator(t)

	assert.Equal(t, constants.NoSummaryInformation, g.Generate("", nil, nil))
	// 哨兵类别与未分类的技能不产生任何从句
	assert.Equal(t, constants.NoSummaryInformation, g.Generate("  ", []types.SkillFinding{
		{Category: constants.NoSkillsFound, TechStack: []string{}},
		{Category: "Programming Languages", TechStack: []string{"Ruby"}},
	}, []types.ExperienceEntry{}))
}

func TestGenerateDeterministic(t *testing.T) {
	g := newGenerator(t)
	skills := []types.SkillFinding{{Category: "Programming Languages", TechStack: []string{"Go", "Python", "Java", "JavaScript"}}}

	first := g.Generate("Jane Doe", skills, nil)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, g.Generate("Jane Doe", skills, nil))
	}
	assert.Contains(t, first, "with expertise in Go, Python, Java and more")
}

func TestGenerateDeduplicatesSkillsAcrossCategories(t *testing.T) {
	g := newGenerator(t)
	skills := []types.SkillFinding{
		{Category: "A", TechStack: []string{"SQL"}},
		{Category: "B", TechStack: []string{"sql"}},
	}
	assert.Equal(t, "with expertise in SQL with a solid foundation in professional practices.", g.Generate("", skills, nil))
}

func TestGenerateWithoutTaxonomyClasses(t *testing.T) {
	g := NewGenerator(nil)
	got := g.Generate("Jane Doe", []types.SkillFinding{{Category: "X", TechStack: []string{"Python"}}}, nil)
	assert.Equal(t, "Hi, I'm Jane Doe with a solid foundation in professional practices.", got)
}
