package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"jobcompass/related-jobs/internal/models"
	"jobcompass/related-jobs/internal/services"
)

type SuggestHandler struct {
	suggester services.Suggester
}

func NewSuggestHandler(suggester services.Suggester) *SuggestHandler {
	return &SuggestHandler{
		suggester: suggester,
	}
}

// HandleRelatedJobs handles GET /suggest/related-jobs/:id
func (h *SuggestHandler) HandleRelatedJobs(c *fiber.Ctx) error {
	jobID := c.Params("id")
	if jobID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job id is required",
		})
	}

	related, err := h.suggester.Related(jobID, c.QueryInt("k", services.DefaultRelatedJobs))
	if err != nil {
		return suggestError(c, err)
	}

	return c.JSON(models.RelatedJobsResponse{RelatedJobs: related})
}

// HandleJobSuggestions handles POST /suggest/job-suggestions
func (h *SuggestHandler) HandleJobSuggestions(c *fiber.Ctx) error {
	var req models.JobSuggestionsRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if len(req.JobIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_ids cannot be empty",
		})
	}

	k := req.NumSuggestions
	if k <= 0 {
		k = services.DefaultRelatedJobs
	}

	// Two or more IDs: one combined list; any unknown ID is a hard failure.
	if len(req.JobIDs) >= 2 {
		suggestions, err := h.suggester.RelatedMulti(req.JobIDs, k)
		if err != nil {
			return suggestError(c, err)
		}
		return c.JSON(models.JobSuggestionsResponse{
			Suggestions: suggestions,
			Message:     fmt.Sprintf("Suggestions retrieved for %d job ids", len(req.JobIDs)),
		})
	}

	// Single ID: per-ID map; an unknown ID softens to an empty list.
	perJob, err := h.suggester.RelatedBatch(req.JobIDs, k)
	if err != nil {
		return suggestError(c, err)
	}
	return c.JSON(models.JobSuggestionsResponse{
		PerJob:  perJob,
		Message: fmt.Sprintf("Suggestions retrieved for %d job ids", len(req.JobIDs)),
	})
}

// HandleQuery handles POST /suggest/query
func (h *SuggestHandler) HandleQuery(c *fiber.Ctx) error {
	var req models.QueryRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "text is required",
		})
	}

	matches, err := h.suggester.RelatedForText(req.Text, req.Industry, req.CareerLevel, req.JobType, req.K)
	if err != nil {
		return suggestError(c, err)
	}

	return c.JSON(models.QueryResponse{Matches: matches})
}

// suggestError maps suggester errors to HTTP statuses. "Index not ready" is
// deliberately distinct from "job not found".
func suggestError(c *fiber.Ctx, err error) error {
	var unknownErr *services.UnknownJobsError

	switch {
	case errors.Is(err, services.ErrIndexNotReady):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "related-jobs index is not ready yet",
		})
	case errors.Is(err, services.ErrJobNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, services.ErrTooFewJobs),
		errors.Is(err, services.ErrEmptyQuery),
		errors.As(err, &unknownErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute suggestions",
		})
	}
}
