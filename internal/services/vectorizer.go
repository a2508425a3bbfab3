package services

import (
	"errors"
	"math"
	"sort"
	"strings"

	"jobcompass/related-jobs/internal/models"
)

// Vectorizer fit parameters. Terms must appear in at least minDocFreq
// documents (drops singleton noise) and in no more than maxDocFreqRatio of
// them (drops near-universal terms); the vocabulary keeps the maxFeatures
// highest-count terms.
const (
	maxFeatures     = 5000
	minDocFreq      = 3
	maxDocFreqRatio = 0.7
)

// ErrEmptyVocabulary is returned when no term survives the document-frequency
// bounds, which makes the corpus unusable for lexical similarity.
var ErrEmptyVocabulary = errors.New("empty vocabulary: no term satisfies the document frequency bounds")

// TfidfVectorizer fits a bounded unigram+bigram TF-IDF model over a corpus of
// normalized documents and transforms documents into l2-normalized sparse
// vectors over the fitted vocabulary.
type TfidfVectorizer struct {
	model *models.TfidfModel
}

func NewTfidfVectorizer() *TfidfVectorizer {
	return &TfidfVectorizer{}
}

// LoadTfidfVectorizer wraps an already-fitted model, typically decoded from a
// persisted bundle, so novel queries transform into the same feature space.
func LoadTfidfVectorizer(model *models.TfidfModel) *TfidfVectorizer {
	return &TfidfVectorizer{model: model}
}

// Model returns the fitted state for persistence. Nil before Fit.
func (v *TfidfVectorizer) Model() *models.TfidfModel {
	return v.model
}

// Fit builds the vocabulary and IDF table from the corpus and returns the
// corpus rows. Row i corresponds to docs[i]. Fitting is deterministic: term
// selection breaks count ties alphabetically and vocabulary indices follow
// lexicographic term order.
func (v *TfidfVectorizer) Fit(docs []string) ([]models.SparseVector, error) {
	if len(docs) == 0 {
		return nil, errors.New("cannot fit vectorizer on an empty corpus")
	}

	numDocs := len(docs)
	perDoc := make([]map[string]int, numDocs)
	docFreq := make(map[string]int)
	corpusCount := make(map[string]int)

	for i, doc := range docs {
		counts := termCounts(doc)
		perDoc[i] = counts
		for term, count := range counts {
			docFreq[term]++
			corpusCount[term] += count
		}
	}

	maxDocCount := maxDocFreqRatio * float64(numDocs)
	candidates := make([]string, 0, len(docFreq))
	for term, df := range docFreq {
		if df < minDocFreq || float64(df) > maxDocCount {
			continue
		}
		candidates = append(candidates, term)
	}
	if len(candidates) == 0 {
		return nil, ErrEmptyVocabulary
	}

	// Keep the most frequent terms, ties alphabetical.
	sort.Slice(candidates, func(i, j int) bool {
		if corpusCount[candidates[i]] != corpusCount[candidates[j]] {
			return corpusCount[candidates[i]] > corpusCount[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})
	if len(candidates) > maxFeatures {
		candidates = candidates[:maxFeatures]
	}
	sort.Strings(candidates)

	vocabulary := make(map[string]int, len(candidates))
	idf := make([]float64, len(candidates))
	for i, term := range candidates {
		vocabulary[term] = i
		idf[i] = math.Log(float64(1+numDocs)/float64(1+docFreq[term])) + 1
	}

	v.model = &models.TfidfModel{
		Vocabulary: vocabulary,
		IDF:        idf,
		Documents:  numDocs,
	}

	matrix := make([]models.SparseVector, numDocs)
	for i := range perDoc {
		matrix[i] = v.vectorFromCounts(perDoc[i])
	}

	return matrix, nil
}

// Transform converts a document into a sparse vector over the fitted
// vocabulary without refitting. Terms outside the vocabulary are ignored;
// a document with no known terms yields an empty (all-zero) vector.
func (v *TfidfVectorizer) Transform(doc string) models.SparseVector {
	if v.model == nil {
		return models.SparseVector{}
	}
	return v.vectorFromCounts(termCounts(doc))
}

// vectorFromCounts builds the sublinear-TF/IDF vector for one document and
// l2-normalizes it so cosine similarity reduces to a dot product.
func (v *TfidfVectorizer) vectorFromCounts(counts map[string]int) models.SparseVector {
	type termWeight struct {
		index  int
		weight float64
	}

	weights := make([]termWeight, 0, len(counts))
	for term, count := range counts {
		idx, ok := v.model.Vocabulary[term]
		if !ok {
			continue
		}
		tf := 1 + math.Log(float64(count))
		weights = append(weights, termWeight{index: idx, weight: tf * v.model.IDF[idx]})
	}
	if len(weights) == 0 {
		return models.SparseVector{}
	}
	sort.Slice(weights, func(i, j int) bool { return weights[i].index < weights[j].index })

	indices := make([]int, len(weights))
	values := make([]float64, len(weights))
	var norm float64
	for i, tw := range weights {
		indices[i] = tw.index
		values[i] = tw.weight
		norm += tw.weight * tw.weight
	}
	norm = math.Sqrt(norm)
	for i := range values {
		values[i] /= norm
	}

	return models.SparseVector{Indices: indices, Values: values}
}

// termCounts tokenizes a normalized document into unigram and bigram counts.
// Bigrams are space-joined adjacent tokens, so multi-word phrases become
// single features.
func termCounts(doc string) map[string]int {
	tokens := strings.Fields(doc)
	counts := make(map[string]int, 2*len(tokens))
	for i, token := range tokens {
		counts[token]++
		if i+1 < len(tokens) {
			counts[token+" "+tokens[i+1]]++
		}
	}
	return counts
}
