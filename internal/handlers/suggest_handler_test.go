package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobcompass/related-jobs/internal/models"
	"jobcompass/related-jobs/internal/services"
)

// mockSuggester implements services.Suggester for testing.
type mockSuggester struct {
	related      []string
	relatedErr   error
	batch        map[string][]string
	batchErr     error
	multi        []string
	multiErr     error
	textMatches  []models.QueryMatch
	textErr      error
	lastMultiIDs []string
}

func (m *mockSuggester) Related(jobID string, k int) ([]string, error) {
	return m.related, m.relatedErr
}

func (m *mockSuggester) RelatedBatch(jobIDs []string, k int) (map[string][]string, error) {
	return m.batch, m.batchErr
}

func (m *mockSuggester) RelatedMulti(jobIDs []string, k int) ([]string, error) {
	m.lastMultiIDs = jobIDs
	return m.multi, m.multiErr
}

func (m *mockSuggester) RelatedForText(text, industry, careerLevel, jobType string, k int) ([]models.QueryMatch, error) {
	return m.textMatches, m.textErr
}

func newTestApp(s services.Suggester) *fiber.App {
	app := fiber.New()
	h := NewSuggestHandler(s)

	suggest := app.Group("/api/v1/suggest")
	suggest.Get("/related-jobs/:id", h.HandleRelatedJobs)
	suggest.Post("/job-suggestions", h.HandleJobSuggestions)
	suggest.Post("/query", h.HandleQuery)
	return app
}

func decodeBody(t *testing.T, r io.Reader, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(r).Decode(out))
}

func TestHandleRelatedJobs_OK(t *testing.T) {
	app := newTestApp(&mockSuggester{related: []string{"B", "C", "D"}})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/suggest/related-jobs/A", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body models.RelatedJobsResponse
	decodeBody(t, resp.Body, &body)
	assert.Equal(t, []string{"B", "C", "D"}, body.RelatedJobs)
}

func TestHandleRelatedJobs_NotFound(t *testing.T) {
	app := newTestApp(&mockSuggester{relatedErr: services.ErrJobNotFound})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/suggest/related-jobs/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleRelatedJobs_IndexNotReady(t *testing.T) {
	app := newTestApp(&mockSuggester{relatedErr: services.ErrIndexNotReady})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/suggest/related-jobs/A", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestHandleJobSuggestions_MultiPath(t *testing.T) {
	mock := &mockSuggester{multi: []string{"C", "D", "E"}}
	app := newTestApp(mock)

	payload, _ := json.Marshal(models.JobSuggestionsRequest{JobIDs: []string{"A", "B"}})
	req := httptest.NewRequest("POST", "/api/v1/suggest/job-suggestions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body models.JobSuggestionsResponse
	decodeBody(t, resp.Body, &body)
	assert.Equal(t, []string{"C", "D", "E"}, body.Suggestions)
	assert.Equal(t, []string{"A", "B"}, mock.lastMultiIDs)
}

func TestHandleJobSuggestions_SinglePath(t *testing.T) {
	app := newTestApp(&mockSuggester{batch: map[string][]string{"A": {"B"}}})

	payload, _ := json.Marshal(models.JobSuggestionsRequest{JobIDs: []string{"A"}})
	req := httptest.NewRequest("POST", "/api/v1/suggest/job-suggestions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body models.JobSuggestionsResponse
	decodeBody(t, resp.Body, &body)
	assert.Equal(t, map[string][]string{"A": {"B"}}, body.PerJob)
}

func TestHandleJobSuggestions_EmptyIDs(t *testing.T) {
	app := newTestApp(&mockSuggester{})

	payload, _ := json.Marshal(models.JobSuggestionsRequest{})
	req := httptest.NewRequest("POST", "/api/v1/suggest/job-suggestions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleJobSuggestions_UnknownIDs(t *testing.T) {
	app := newTestApp(&mockSuggester{
		multiErr: &services.UnknownJobsError{JobIDs: []string{"ghost"}},
	})

	payload, _ := json.Marshal(models.JobSuggestionsRequest{JobIDs: []string{"A", "ghost"}})
	req := httptest.NewRequest("POST", "/api/v1/suggest/job-suggestions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp.Body, &body)
	assert.Contains(t, body["error"], "ghost")
}

func TestHandleQuery_OK(t *testing.T) {
	app := newTestApp(&mockSuggester{
		textMatches: []models.QueryMatch{{JobID: "A", Score: 0.85}},
	})

	payload, _ := json.Marshal(models.QueryRequest{Text: "senior backend engineer", Industry: "IT"})
	req := httptest.NewRequest("POST", "/api/v1/suggest/query", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body models.QueryResponse
	decodeBody(t, resp.Body, &body)
	require.Len(t, body.Matches, 1)
	assert.Equal(t, "A", body.Matches[0].JobID)
	assert.InDelta(t, 0.85, body.Matches[0].Score, 1e-9)
}

func TestHandleQuery_MissingText(t *testing.T) {
	app := newTestApp(&mockSuggester{})

	payload, _ := json.Marshal(models.QueryRequest{})
	req := httptest.NewRequest("POST", "/api/v1/suggest/query", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
