package services

import (
	"strings"

	"jobcompass/related-jobs/internal/models"
)

// Field repetition counts used when assembling the vectorizer document for a
// job. Repetition is how field importance reaches TF-IDF, which has no
// per-field weight knob. Industry repeats most: an industry match is the
// strongest proxy for relevance.
const (
	titleRepeat        = 6
	descriptionRepeat  = 1
	requirementsRepeat = 1
	industryRepeat     = 8
	careerLevelRepeat  = 2
	jobTypeRepeat      = 1
)

type DocumentBuilder interface {
	BuildDocument(job models.JobRecord) string
}

type documentBuilder struct {
	normalizer TextNormalizer
}

func NewDocumentBuilder(normalizer TextNormalizer) DocumentBuilder {
	return &documentBuilder{normalizer: normalizer}
}

// BuildDocument implements DocumentBuilder.
//
// Each field is normalized first, repeated its configured number of times
// with single-space separators, and the fields concatenated in a fixed order.
// Deterministic: the same record always yields the same document.
func (b *documentBuilder) BuildDocument(job models.JobRecord) string {
	fields := []struct {
		text   string
		repeat int
	}{
		{job.Title, titleRepeat},
		{job.Description, descriptionRepeat},
		{job.Requirements, requirementsRepeat},
		{job.Industry, industryRepeat},
		{job.CareerLevel, careerLevelRepeat},
		{job.JobType, jobTypeRepeat},
	}

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		normalized := b.normalizer.Normalize(f.text)
		if normalized == "" {
			continue
		}
		copies := make([]string, f.repeat)
		for i := range copies {
			copies[i] = normalized
		}
		parts = append(parts, strings.Join(copies, " "))
	}

	return strings.Join(parts, " ")
}
