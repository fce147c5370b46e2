package refresh

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"wishlist/internal/core/job"
)

type Handler struct {
	service *Service
	job     *job.JobService
}

func NewHandler(service *Service, jobSvc *job.JobService) *Handler {
	return &Handler{service: service, job: jobSvc}
}

type enqueueResponse struct {
	Success bool   `json:"success"`
	JobID   string `json:"job_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

type jobResponse struct {
	Success bool     `json:"success"`
	Data    *job.Job `json:"data,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// HandlePostRefresh serves POST /v1/goods/:id/refresh and returns the job
// id to poll.
func (h *Handler) HandlePostRefresh(c *fiber.Ctx) error {
	id := c.Params("id")
	jobID, err := h.service.Enqueue(c.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(enqueueResponse{Success: false, Error: "good not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(enqueueResponse{Success: false, Error: err.Error()})
	}
	return c.Status(fiber.StatusAccepted).JSON(enqueueResponse{Success: true, JobID: jobID})
}

// HandleGetJob serves GET /v1/jobs/:jobId.
func (h *Handler) HandleGetJob(c *fiber.Ctx) error {
	jobID := c.Params("jobId")
	j, err := h.job.GetJobStatus(c.Context(), jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(jobResponse{Success: false, Error: err.Error()})
	}
	return c.JSON(jobResponse{Success: true, Data: j})
}
