package good

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"wishlist/internal/core/extract"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	URL string `json:"url"`
}

type goodResponse struct {
	Success bool   `json:"success"`
	Data    *Good  `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type listResponse struct {
	Success bool   `json:"success"`
	Data    []Good `json:"data"`
	Error   string `json:"error,omitempty"`
}

// HandlePostGood serves POST /v1/goods: adds a gift by URL, filling in
// whatever product details the page gave up.
func (h *Handler) HandlePostGood(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(goodResponse{Success: false, Error: "invalid request body"})
	}
	if req.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(goodResponse{Success: false, Error: "url is required"})
	}

	g, err := h.service.CreateFromURL(c.Context(), req.URL)
	if err != nil {
		status := fiber.StatusInternalServerError
		if extract.IsInvalidInput(err) {
			status = fiber.StatusBadRequest
		} else if extract.IsUnsupportedDomain(err) {
			status = fiber.StatusUnprocessableEntity
		}
		return c.Status(status).JSON(goodResponse{Success: false, Error: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(goodResponse{Success: true, Data: &g})
}

// HandleGetGood serves GET /v1/goods/:id.
func (h *Handler) HandleGetGood(c *fiber.Ctx) error {
	id := c.Params("id")
	g, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(goodResponse{Success: false, Error: "good not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(goodResponse{Success: false, Error: err.Error()})
	}
	return c.JSON(goodResponse{Success: true, Data: &g})
}

// HandleListGoods serves GET /v1/goods.
func (h *Handler) HandleListGoods(c *fiber.Ctx) error {
	goods, err := h.service.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(listResponse{Success: false, Error: err.Error()})
	}
	if goods == nil {
		goods = []Good{}
	}
	return c.JSON(listResponse{Success: true, Data: goods})
}
