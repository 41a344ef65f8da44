package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVocabulary() *Vocabulary {
	return &Vocabulary{
		Categories: map[string][]string{
			"programming": {"python", "go", "c++"},
			"frameworks":  {"react", "node.js", "spring boot"},
			"cloud":       {"amazon web services", "microsoft azure"},
		},
		Aliases: map[string][]string{
			"python": {"py"},
			"react":  {"reactjs", "react.js"},
			"go":     {"golang"},
		},
	}
}

func TestBuildAndLookup(t *testing.T) {
	idx, err := Build(testVocabulary())
	require.NoError(t, err)

	term, cat, ok := idx.Lookup("Python")
	require.True(t, ok)
	assert.Equal(t, "python", term)
	assert.Equal(t, "programming", cat)

	term, _, ok = idx.Lookup("golang")
	require.True(t, ok)
	assert.Equal(t, "go", term)

	_, _, ok = idx.Lookup("cobol")
	assert.False(t, ok)
}

func TestSurfaceVariants(t *testing.T) {
	idx, err := Build(testVocabulary())
	require.NoError(t, err)

	// Multi-word terms are reachable without the space and hyphenated.
	for _, surface := range []string{"spring boot", "springboot", "spring-boot"} {
		term, _, ok := idx.Lookup(surface)
		require.True(t, ok, surface)
		assert.Equal(t, "spring boot", term)
	}
}

func TestStructuralSynonyms(t *testing.T) {
	idx, err := Build(testVocabulary())
	require.NoError(t, err)

	assert.Contains(t, idx.Synonyms("microsoft azure"), "ms azure")
	assert.Contains(t, idx.Synonyms("amazon web services"), "aws")
}

func TestBuildIsDeterministic(t *testing.T) {
	a, err := Build(testVocabulary())
	require.NoError(t, err)
	b, err := Build(testVocabulary())
	require.NoError(t, err)

	assert.Equal(t, a.Categories(), b.Categories())
	for _, cat := range a.Categories() {
		assert.Equal(t, a.Terms(cat), b.Terms(cat))
		for _, term := range a.Terms(cat) {
			assert.Equal(t, a.Variants(term), b.Variants(term))
			assert.Equal(t, a.Synonyms(term), b.Synonyms(term))
		}
	}
}

func TestBuildRejectsCrossCategoryDuplicate(t *testing.T) {
	_, err := Build(&Vocabulary{
		Categories: map[string][]string{
			"a": {"docker"},
			"b": {"docker"},
		},
	})
	assert.Error(t, err)
}

func TestNgramOverlap(t *testing.T) {
	idx, err := Build(testVocabulary())
	require.NoError(t, err)

	assert.InDelta(t, 1.0, idx.NgramOverlap("python", "python"), 1e-9)
	assert.Greater(t, idx.NgramOverlap("python", "pythonic code"), 0.9)
	assert.Less(t, idx.NgramOverlap("python", "java"), 0.2)
}

func TestDefaultVocabulary(t *testing.T) {
	idx, err := Default()
	require.NoError(t, err)

	term, cat, ok := idx.Lookup("k8s")
	require.True(t, ok)
	assert.Equal(t, "kubernetes", term)
	assert.Equal(t, "devops", cat)

	_, _, ok = idx.Lookup("postgres")
	assert.True(t, ok)
	assert.NotEmpty(t, idx.Categories())
}
