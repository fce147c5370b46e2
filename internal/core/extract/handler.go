package extract

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type extractRequest struct {
	URL string `json:"url"`
}

type extractResponse struct {
	Success bool         `json:"success"`
	Data    *ProductInfo `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// HandlePostExtract serves POST /v1/extract: {url} in, best-effort
// ProductInfo out. Failure kinds map to distinct status codes so clients
// can tell bad input from slow sites.
func (h *Handler) HandlePostExtract(c *fiber.Ctx) error {
	var req extractRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(extractResponse{Success: false, Error: "invalid request body"})
	}
	if req.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(extractResponse{Success: false, Error: "url is required"})
	}

	info, err := h.service.Extract(c.Context(), req.URL)
	if err != nil {
		return c.Status(statusFor(err)).JSON(extractResponse{Success: false, Error: err.Error()})
	}
	return c.JSON(extractResponse{Success: true, Data: &info})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrUnsupportedDomain):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrDeadline):
		return fiber.StatusRequestTimeout
	case errors.Is(err, ErrNavigation):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
