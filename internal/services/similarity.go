package services

import "jobcompass/related-jobs/internal/models"

// Hybrid blend weights. Lexical similarity dominates; the categorical score
// acts as a boost for jobs sharing the same labels. The weights sum to 1.0,
// which keeps every hybrid score inside [0, 1].
const (
	lexicalWeight     = 0.7
	categoricalWeight = 0.3
)

// Categorical label contributions. An exact match on all three labels sums
// to 1.0. Deliberately coarse; not a learned model.
const (
	industryMatchWeight    = 0.5
	careerLevelMatchWeight = 0.3
	jobTypeMatchWeight     = 0.2
)

// CategoricalSimilarity scores two jobs by label equality. Empty labels
// contribute nothing even when both sides are empty: two unknowns are not
// evidence of relatedness.
func CategoricalSimilarity(a, b models.JobRecord) float64 {
	var score float64
	if a.Industry != "" && a.Industry == b.Industry {
		score += industryMatchWeight
	}
	if a.CareerLevel != "" && a.CareerLevel == b.CareerLevel {
		score += careerLevelMatchWeight
	}
	if a.JobType != "" && a.JobType == b.JobType {
		score += jobTypeMatchWeight
	}
	return score
}

// CategoricalQueryScore scores a job against user-supplied labels. Each label
// contributes its fixed weight only when supplied and equal to the job's
// value, so a query with just an industry can earn at most 0.5.
func CategoricalQueryScore(job models.JobRecord, industry, careerLevel, jobType string) float64 {
	var score float64
	if industry != "" && industry == job.Industry {
		score += industryMatchWeight
	}
	if careerLevel != "" && careerLevel == job.CareerLevel {
		score += careerLevelMatchWeight
	}
	if jobType != "" && jobType == job.JobType {
		score += jobTypeMatchWeight
	}
	return score
}

// hybridRow computes the hybrid similarity of the job at pos against every
// corpus row. This is the single similarity primitive: the batch export, the
// single-job path and the multi-job average all go through it, and the dense
// N×N matrix is never materialized.
func hybridRow(bundle *models.IndexBundle, pos int) []float64 {
	base := bundle.Matrix[pos]
	job := bundle.Jobs[pos]

	row := make([]float64, len(bundle.Jobs))
	for i := range bundle.Jobs {
		lexical := base.Dot(bundle.Matrix[i])
		row[i] = lexicalWeight*lexical + categoricalWeight*CategoricalSimilarity(job, bundle.Jobs[i])
	}
	return row
}

// hybridQueryRow scores a transformed free-text query vector, with optional
// user-supplied labels, against every corpus row.
func hybridQueryRow(bundle *models.IndexBundle, query models.SparseVector, industry, careerLevel, jobType string) []float64 {
	row := make([]float64, len(bundle.Jobs))
	for i := range bundle.Jobs {
		lexical := query.Dot(bundle.Matrix[i])
		categorical := CategoricalQueryScore(bundle.Jobs[i], industry, careerLevel, jobType)
		row[i] = lexicalWeight*lexical + categoricalWeight*categorical
	}
	return row
}
