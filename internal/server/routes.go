package server

import (
	"wishlist/internal/core/extract"
	"wishlist/internal/core/good"
	"wishlist/internal/core/job"
	"wishlist/internal/core/refresh"
	"wishlist/internal/health"
	"wishlist/internal/platform/redis"
	tasks "wishlist/internal/platform/tasks"

	"github.com/gofiber/fiber/v2"
)

type Dependencies struct {
	Job      *job.JobService
	Extract  *extract.Service
	Goods    *good.Service
	GoodRepo *good.Repository
	Refresh  *refresh.Service
	Tasks    *tasks.Client
	Redis    *redis.Service
}

func RegisterRoutes(app *fiber.App, d Dependencies) *health.HealthHandler {
	// Health endpoints
	healthHandler := health.NewHealthHandler(d.Redis, d.GoodRepo)
	app.Get("/v1/health", health.HealthLimiter(), healthHandler.HandleHealth)

	api := app.Group("/v1")

	extractHandler := extract.NewHandler(d.Extract)
	api.Post("/extract", extractHandler.HandlePostExtract)

	goodHandler := good.NewHandler(d.Goods)
	api.Post("/goods", goodHandler.HandlePostGood)
	api.Get("/goods", goodHandler.HandleListGoods)
	api.Get("/goods/:id", goodHandler.HandleGetGood)

	refreshHandler := refresh.NewHandler(d.Refresh, d.Job)
	api.Post("/goods/:id/refresh", refreshHandler.HandlePostRefresh)
	api.Get("/jobs/:jobId", refreshHandler.HandleGetJob)

	return healthHandler
}
