package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus-hale/resume-extract/internal/taxonomy"
)

func testIndex(t *testing.T) *taxonomy.Index {
	t.Helper()
	idx, err := taxonomy.Build(&taxonomy.Vocabulary{
		Categories: map[string][]string{
			"programming": {"python", "java", "c++"},
			"frameworks":  {"django", "spring boot"},
			"devops":      {"docker", "kubernetes"},
		},
		Aliases: map[string][]string{
			"kubernetes": {"k8s"},
			"python":     {"py"},
		},
	})
	require.NoError(t, err)
	return idx
}

func TestNormalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Expert in Python", "python"},
		{"  Java developer ", "java"},
		{"advanced C++", "c++"},
		{"- Docker", "docker"},
		{"Python (3 years)", "python"},
		{"Docker v20.10", "docker"},
		{"Spring Boot 2", "spring boot"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), tt.in)
	}
}

func TestExtractFromSkillsSection(t *testing.T) {
	m := New(testIndex(t), nil)
	text := "Jane Roe\n\nSkills:\nPython, Django, Docker\n\nExperience\nBuilt things.\n"

	val, set := m.Extract(text)
	require.False(t, val.IsEmpty())

	type matchInfo struct {
		section string
		conf    float64
	}
	terms := map[string]matchInfo{}
	for _, matches := range set.ByCategory {
		for _, sm := range matches {
			terms[sm.Term] = matchInfo{sm.Section, sm.Confidence}
		}
	}
	for _, want := range []string{"python", "django", "docker"} {
		got, ok := terms[want]
		require.True(t, ok, want)
		assert.Equal(t, SectionSkills, got.section, want)
		// Section matches start from the 0.9 base.
		assert.GreaterOrEqual(t, got.conf, 0.9, want)
	}
}

func TestSectionTokensOutsideVocabulary(t *testing.T) {
	m := New(testIndex(t), nil)
	text := "Skills:\nErlang, Python, Qt (cross-platform), db\n\nExperience\nBuilt things.\n"

	_, set := m.Extract(text)

	require.Len(t, set.ByCategory["programming"], 1)
	assert.Equal(t, "python", set.ByCategory["programming"][0].Term)

	// Unknown section tokens land in the fallback bucket with the section
	// base confidence; tokens of two characters or fewer are dropped.
	bucket := set.ByCategory[CategoryUncategorized]
	require.Len(t, bucket, 1)
	assert.Equal(t, "erlang", bucket[0].Term)
	assert.Equal(t, SectionSkills, bucket[0].Section)
	assert.InDelta(t, 0.9, bucket[0].Confidence, 1e-9)
}

func TestSectionExactBonusUsesSectionBody(t *testing.T) {
	idx := testIndex(t)
	grams := map[string]struct{}{}

	// The term appears in the document at large but not in the section
	// body, so the exact-hit bonus must not apply.
	ctx := "java shipped in production."
	without := score(idx, "java", SectionSkills, ctx, "spring boot, docker", nil, grams)
	with := score(idx, "java", SectionSkills, ctx, "java, docker", nil, grams)

	assert.InDelta(t, 0.9, without, 1e-9)
	assert.InDelta(t, 1.0, with, 1e-9)
}

func TestExtractFullTextAlias(t *testing.T) {
	m := New(testIndex(t), nil)
	val, set := m.Extract("Ran workloads on k8s clusters in production.")

	require.False(t, val.IsEmpty())
	require.Len(t, set.ByCategory["devops"], 1)
	match := set.ByCategory["devops"][0]
	assert.Equal(t, "kubernetes", match.Term)
	assert.Equal(t, SectionFullText, match.Section)
	assert.GreaterOrEqual(t, match.Confidence, fullTextThreshold)
}

func TestSectionWinsOverFullText(t *testing.T) {
	m := New(testIndex(t), nil)
	text := "Skills:\nPython\n\nSummary\nYears of python services.\n"

	_, set := m.Extract(text)
	require.Len(t, set.ByCategory["programming"], 1)
	assert.Equal(t, SectionSkills, set.ByCategory["programming"][0].Section)
}

func TestProficiencyBoost(t *testing.T) {
	m := New(testIndex(t), nil)

	firstConf := func(text string) float64 {
		_, set := m.Extract(text)
		require.Len(t, set.ByCategory["programming"], 1)
		return set.ByCategory["programming"][0].Confidence
	}

	plain := firstConf("Worked with java daily on backend services for the platform.")
	boosted := firstConf("Expert in java with years on backend services for the platform.")
	assert.Greater(t, boosted, plain)
}

func TestExtractEmptyText(t *testing.T) {
	m := New(testIndex(t), nil)
	val, set := m.Extract("   ")
	assert.True(t, val.IsEmpty())
	assert.Zero(t, set.Total)
}

func TestExtractIsDeterministic(t *testing.T) {
	m := New(testIndex(t), nil)
	text := "Skills:\nPython, Django, Docker, C++, k8s\n\nAlso java and spring boot work.\n"
	a, as := m.Extract(text)
	b, bs := m.Extract(text)
	assert.Equal(t, a.Confidence, b.Confidence)
	assert.Equal(t, as, bs)
}

func TestDocumentConfidence(t *testing.T) {
	assert.Zero(t, documentConfidence(0, 0))
	assert.InDelta(t, 0.5, documentConfidence(1, 1), 1e-9)
	assert.InDelta(t, 0.9, documentConfidence(10, 5), 1e-9)
}
