package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobcompass/related-jobs/internal/models"
)

func countToken(doc, token string) int {
	n := 0
	for _, field := range strings.Fields(doc) {
		if field == token {
			n++
		}
	}
	return n
}

func TestBuildDocument_RepetitionCounts(t *testing.T) {
	normalizer := NewTextNormalizer()
	builder := NewDocumentBuilder(normalizer)

	// One unique word per field so each repetition count is observable.
	job := models.JobRecord{
		Title:        "Astrophysics",
		Description:  "Bequest",
		Requirements: "Plumage",
		Industry:     "Cartography",
		CareerLevel:  "Velocity",
		JobType:      "Momentum",
	}
	doc := builder.BuildDocument(job)

	cases := []struct {
		field string
		want  int
	}{
		{job.Title, 6},
		{job.Description, 1},
		{job.Requirements, 1},
		{job.Industry, 8},
		{job.CareerLevel, 2},
		{job.JobType, 1},
	}
	for _, tc := range cases {
		token := normalizer.Normalize(tc.field)
		require.NotEmpty(t, token)
		assert.Equal(t, tc.want, countToken(doc, token), "field %q", tc.field)
	}
}

func TestBuildDocument_FieldOrder(t *testing.T) {
	normalizer := NewTextNormalizer()
	builder := NewDocumentBuilder(normalizer)

	job := models.JobRecord{
		Title:    "Astrophysics",
		Industry: "Cartography",
	}
	doc := builder.BuildDocument(job)
	tokens := strings.Fields(doc)

	require.NotEmpty(t, tokens)
	assert.Equal(t, normalizer.Normalize(job.Title), tokens[0])
	assert.Equal(t, normalizer.Normalize(job.Industry), tokens[len(tokens)-1])
}

func TestBuildDocument_Deterministic(t *testing.T) {
	builder := NewDocumentBuilder(NewTextNormalizer())

	job := fixtureJobs()[0]
	first := builder.BuildDocument(job)
	second := builder.BuildDocument(job)

	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestBuildDocument_EmptyRecord(t *testing.T) {
	builder := NewDocumentBuilder(NewTextNormalizer())

	doc := builder.BuildDocument(models.JobRecord{})
	assert.Equal(t, "", doc)
}

func TestBuildDocument_NoDoubleSpaces(t *testing.T) {
	builder := NewDocumentBuilder(NewTextNormalizer())

	// Empty middle fields must not leave separator runs behind.
	doc := builder.BuildDocument(models.JobRecord{
		Title:   "Astrophysics",
		JobType: "Momentum",
	})
	assert.NotContains(t, doc, "  ")
}
