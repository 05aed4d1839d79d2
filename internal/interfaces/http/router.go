package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/Bodega-api/internal/application/analytics"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC      *usecase.ItemUseCase
	LedgerUC    *inventory.LedgerUseCase
	DashboardUC *appanalytics.DashboardUseCase
	MISUC       *appanalytics.MISUseCase
	Logger      zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	validate := NewRequestValidator()
	api := app.Group("/api")

	items := api.Group("/inventory")
	itemHandler := NewItemHandler(deps.ItemUC, validate, deps.Logger)
	items.Get("/", itemHandler.List)
	items.Post("/", itemHandler.Create)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)

	movementHandler := NewMovementHandler(deps.LedgerUC, validate, deps.Logger)
	inward := api.Group("/inward")
	inward.Get("/", movementHandler.ListInward)
	inward.Post("/", movementHandler.CreateInward)
	outward := api.Group("/outward")
	outward.Get("/", movementHandler.ListOutward)
	outward.Post("/", movementHandler.CreateOutward)

	stats := api.Group("/stats")
	statsHandler := NewStatsHandler(deps.DashboardUC, deps.MISUC, deps.Logger)
	stats.Get("/dashboard", statsHandler.Dashboard)
	stats.Get("/mis", statsHandler.MIS)
}
