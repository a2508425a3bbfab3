package services

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tenDocs builds a 10-document corpus where "beta" appears in 4 documents,
// "quantum" in exactly 2 (below the minimum document frequency of 3) and
// "omni" in 8 (above the 70% document-frequency cap).
func tenDocs() []string {
	docs := make([]string, 10)
	for i := range docs {
		docs[i] = fmt.Sprintf("filler%d", i)
	}
	for i := 0; i < 4; i++ {
		docs[i] += " beta"
	}
	for i := 4; i < 6; i++ {
		docs[i] += " quantum"
	}
	for i := 0; i < 8; i++ {
		docs[i] += " omni"
	}
	return docs
}

func TestFit_MinDocFrequencyBound(t *testing.T) {
	v := NewTfidfVectorizer()
	_, err := v.Fit(tenDocs())
	require.NoError(t, err)

	assert.Contains(t, v.Model().Vocabulary, "beta")
	assert.NotContains(t, v.Model().Vocabulary, "quantum")
}

func TestFit_MaxDocFrequencyBound(t *testing.T) {
	v := NewTfidfVectorizer()
	_, err := v.Fit(tenDocs())
	require.NoError(t, err)

	assert.NotContains(t, v.Model().Vocabulary, "omni")
}

func TestFit_SingletonsExcluded(t *testing.T) {
	v := NewTfidfVectorizer()
	_, err := v.Fit(tenDocs())
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		assert.NotContains(t, v.Model().Vocabulary, fmt.Sprintf("filler%d", i))
	}
}

func TestFit_RowsAreUnitLength(t *testing.T) {
	v := NewTfidfVectorizer()
	matrix, err := v.Fit(tenDocs())
	require.NoError(t, err)

	for i, row := range matrix {
		if len(row.Indices) == 0 {
			continue
		}
		var norm float64
		for _, val := range row.Values {
			norm += val * val
		}
		assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9, "row %d", i)
	}
}

func TestFit_EmptyCorpus(t *testing.T) {
	v := NewTfidfVectorizer()
	_, err := v.Fit(nil)
	assert.Error(t, err)
}

func TestFit_EmptyVocabulary(t *testing.T) {
	v := NewTfidfVectorizer()
	_, err := v.Fit([]string{"alpha", "bravo", "charlie"})
	assert.ErrorIs(t, err, ErrEmptyVocabulary)
}

func TestFit_CapturesBigrams(t *testing.T) {
	docs := []string{
		"machin learn model train",
		"machin learn pipelin deploy",
		"machin learn research paper",
		"unrelated filler text here",
		"unrelated filler text here",
	}
	v := NewTfidfVectorizer()
	_, err := v.Fit(docs)
	require.NoError(t, err)

	assert.Contains(t, v.Model().Vocabulary, "machin learn")
}

func TestTransform_UsesFittedVocabularyOnly(t *testing.T) {
	v := NewTfidfVectorizer()
	_, err := v.Fit(tenDocs())
	require.NoError(t, err)

	vec := v.Transform("completely novel words only")
	assert.Empty(t, vec.Indices)

	vec = v.Transform("beta plus novel words")
	require.Len(t, vec.Indices, 1)
	assert.InDelta(t, 1.0, vec.Values[0], 1e-9)
}

func TestTransform_BeforeFit(t *testing.T) {
	v := NewTfidfVectorizer()
	assert.Empty(t, v.Transform("anything").Indices)
}

func TestFit_DeterministicVocabulary(t *testing.T) {
	docs := tenDocs()

	a := NewTfidfVectorizer()
	_, err := a.Fit(docs)
	require.NoError(t, err)

	b := NewTfidfVectorizer()
	_, err = b.Fit(docs)
	require.NoError(t, err)

	assert.Equal(t, a.Model().Vocabulary, b.Model().Vocabulary)
	assert.Equal(t, a.Model().IDF, b.Model().IDF)
}
