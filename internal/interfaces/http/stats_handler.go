package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/Bodega-api/internal/application/analytics"
)

// StatsHandler expone los snapshots de dashboard y MIS.
type StatsHandler struct {
	dashboard *appanalytics.DashboardUseCase
	mis       *appanalytics.MISUseCase
	log       zerolog.Logger
}

// NewStatsHandler construye el handler.
func NewStatsHandler(dashboard *appanalytics.DashboardUseCase, mis *appanalytics.MISUseCase, log zerolog.Logger) *StatsHandler {
	return &StatsHandler{dashboard: dashboard, mis: mis, log: log}
}

// Dashboard godoc
// @Summary      Estadísticas del dashboard
// @Tags         stats
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsDTO
// @Router       /api/stats/dashboard [get]
func (h *StatsHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboard.GetStats(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// MIS godoc
// @Summary      Reporte MIS
// @Description  KPIs del día, rotación (90 días), stock muerto y valorización por categoría.
// @Tags         stats
// @Produce      json
// @Success      200  {object}  dto.MISStatsDTO
// @Router       /api/stats/mis [get]
func (h *StatsHandler) MIS(c *fiber.Ctx) error {
	out, err := h.mis.GetStats(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
