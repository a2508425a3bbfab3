package models

type RelatedJobsResponse struct {
	RelatedJobs []string `json:"related_jobs"`
}

type JobSuggestionsRequest struct {
	JobIDs         []string `json:"job_ids" validate:"required"`
	NumSuggestions int      `json:"num_suggestions"`
}

type JobSuggestionsResponse struct {
	// Suggestions holds the combined list for multi-ID requests.
	Suggestions []string `json:"job_suggestions,omitempty"`
	// PerJob holds the per-ID lists for single-ID requests.
	PerJob  map[string][]string `json:"job_suggestions_by_id,omitempty"`
	Message string              `json:"message"`
}

type QueryRequest struct {
	Text        string `json:"text" validate:"required"`
	Industry    string `json:"industry"`
	CareerLevel string `json:"career_level"`
	JobType     string `json:"job_type"`
	K           int    `json:"k"`
}

// QueryMatch is one scored hit for a free-text query.
type QueryMatch struct {
	JobID string  `json:"job_id"`
	Score float64 `json:"score"`
}

type QueryResponse struct {
	Matches []QueryMatch `json:"matches"`
}
