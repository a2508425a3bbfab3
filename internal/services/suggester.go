package services

import (
	"fmt"
	"strings"

	"jobcompass/related-jobs/internal/models"
)

// Suggester is the query-time ranking surface over the published index.
// Every method is a pure function of (current bundle, parameters); no state
// beyond the read-only bundle handle is touched, so no locking is needed.
type Suggester interface {
	// Related returns the top-k related job IDs for one corpus job.
	Related(jobID string, k int) ([]string, error)

	// RelatedBatch resolves several independent single-job lookups. Unknown
	// IDs yield empty lists instead of failing the batch.
	RelatedBatch(jobIDs []string, k int) (map[string][]string, error)

	// RelatedMulti returns the top-k jobs most similar to the combined set of
	// at least two input jobs. Any unknown ID fails the whole request.
	RelatedMulti(jobIDs []string, k int) ([]string, error)

	// RelatedForText ranks corpus jobs against free text plus optional
	// categorical labels, returning scored matches.
	RelatedForText(text, industry, careerLevel, jobType string, k int) ([]models.QueryMatch, error)
}

type suggester struct {
	store      IndexStore
	normalizer TextNormalizer
}

func NewSuggester(store IndexStore, normalizer TextNormalizer) Suggester {
	return &suggester{
		store:      store,
		normalizer: normalizer,
	}
}

// Related implements Suggester.
func (s *suggester) Related(jobID string, k int) ([]string, error) {
	bundle, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	if k <= 0 {
		k = DefaultRelatedJobs
	}

	pos := bundle.PositionOf(jobID)
	if pos < 0 {
		return nil, fmt.Errorf("%q: %w", jobID, ErrJobNotFound)
	}

	// The precomputed export covers the common case; re-derive from the
	// matrix only when the caller asks for more than it holds.
	if related, ok := bundle.Related[jobID]; ok && k <= len(related) {
		return related[:k], nil
	}

	row := hybridRow(bundle, pos)
	return jobIDsAt(bundle, topKIndices(row, map[int]bool{pos: true}, k)), nil
}

// RelatedBatch implements Suggester.
func (s *suggester) RelatedBatch(jobIDs []string, k int) (map[string][]string, error) {
	if _, err := s.store.Current(); err != nil {
		return nil, err
	}

	result := make(map[string][]string, len(jobIDs))
	for _, jobID := range jobIDs {
		related, err := s.Related(jobID, k)
		if err != nil {
			// Lookups in a batch are independent; an unknown ID softens to
			// an empty list rather than failing the others.
			result[jobID] = []string{}
			continue
		}
		result[jobID] = related
	}
	return result, nil
}

// RelatedMulti implements Suggester.
func (s *suggester) RelatedMulti(jobIDs []string, k int) ([]string, error) {
	if len(jobIDs) < 2 {
		return nil, ErrTooFewJobs
	}

	bundle, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	if k <= 0 {
		k = DefaultRelatedJobs
	}

	positions := make([]int, 0, len(jobIDs))
	var unknown []string
	for _, jobID := range jobIDs {
		pos := bundle.PositionOf(jobID)
		if pos < 0 {
			unknown = append(unknown, jobID)
			continue
		}
		positions = append(positions, pos)
	}
	if len(unknown) > 0 {
		return nil, &UnknownJobsError{JobIDs: unknown}
	}

	// Elementwise mean of the input rows. The inputs themselves are kept out
	// of the ranking by the exclusion set, so they can never recommend
	// themselves or each other no matter how similar they are.
	averaged := make([]float64, len(bundle.Jobs))
	exclude := make(map[int]bool, len(positions))
	for _, pos := range positions {
		row := hybridRow(bundle, pos)
		for i, score := range row {
			averaged[i] += score
		}
		exclude[pos] = true
	}
	for i := range averaged {
		averaged[i] /= float64(len(positions))
	}

	return jobIDsAt(bundle, topKIndices(averaged, exclude, k)), nil
}

// RelatedForText implements Suggester.
func (s *suggester) RelatedForText(text, industry, careerLevel, jobType string, k int) ([]models.QueryMatch, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyQuery
	}

	bundle, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	if k <= 0 {
		k = DefaultRelatedJobs
	}

	query := LoadTfidfVectorizer(bundle.Vectorizer).Transform(s.normalizer.Normalize(text))
	row := hybridQueryRow(bundle, query, industry, careerLevel, jobType)

	matches := make([]models.QueryMatch, 0, k)
	for _, idx := range topKIndices(row, nil, k) {
		matches = append(matches, models.QueryMatch{
			JobID: bundle.Jobs[idx].JobID,
			Score: row[idx],
		})
	}
	return matches, nil
}

func jobIDsAt(bundle *models.IndexBundle, positions []int) []string {
	ids := make([]string, 0, len(positions))
	for _, pos := range positions {
		ids = append(ids, bundle.Jobs[pos].JobID)
	}
	return ids
}
