package models

import "time"

// SparseVector is an l2-normalized term-weight vector in parallel-slice form.
// Indices are strictly ascending positions in the fitted vocabulary.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Dot returns the inner product of two sparse vectors. For l2-normalized
// vectors this is their cosine similarity.
func (v SparseVector) Dot(other SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(other.Indices) {
		switch {
		case v.Indices[i] == other.Indices[j]:
			sum += v.Values[i] * other.Values[j]
			i++
			j++
		case v.Indices[i] < other.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// IndexBundle is one published snapshot of the related-jobs index. Row i of
// Matrix always corresponds to Jobs[i]; any change to the corpus requires a
// full recomputation. Bundles are immutable once published.
type IndexBundle struct {
	Version string
	BuiltAt time.Time

	Jobs       []JobRecord
	Vectorizer *TfidfModel
	Matrix     []SparseVector

	// Related maps each job ID to its precomputed top-K related job IDs,
	// also written out separately as the lightweight export.
	Related map[string][]string
}

// TfidfModel is the fitted state of the lexical vectorizer: the bounded
// vocabulary and per-term inverse document frequencies. It is persisted with
// the bundle so novel queries transform into the exact same feature space.
type TfidfModel struct {
	Vocabulary map[string]int
	IDF        []float64
	Documents  int
}

// PositionOf returns the corpus position for a job ID, or -1.
func (b *IndexBundle) PositionOf(jobID string) int {
	for i := range b.Jobs {
		if b.Jobs[i].JobID == jobID {
			return i
		}
	}
	return -1
}
