package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
)

// MovementHandler maneja entradas (GRN) y despachos.
type MovementHandler struct {
	uc       *inventory.LedgerUseCase
	validate *RequestValidator
	log      zerolog.Logger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.LedgerUseCase, validate *RequestValidator, log zerolog.Logger) *MovementHandler {
	return &MovementHandler{uc: uc, validate: validate, log: log}
}

// ListInward godoc
// @Summary      Listar entradas
// @Tags         inward
// @Produce      json
// @Success      200  {array}  dto.InwardEntryResponse
// @Router       /api/inward [get]
func (h *MovementHandler) ListInward(c *fiber.Ctx) error {
	out, err := h.uc.ListInward(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateInward godoc
// @Summary      Registrar entrada (GRN)
// @Description  Persiste la entrada y suma cada línea al stock en una sola transacción.
// @Tags         inward
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInwardRequest  true  "Entrada"
// @Success      201   {object}  dto.InwardEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inward [post]
func (h *MovementHandler) CreateInward(c *fiber.Ctx) error {
	var in dto.CreateInwardRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.validate.Validate(in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.CreateInward(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListOutward godoc
// @Summary      Listar despachos
// @Tags         outward
// @Produce      json
// @Success      200  {array}  dto.OutwardEntryResponse
// @Router       /api/outward [get]
func (h *MovementHandler) ListOutward(c *fiber.Ctx) error {
	out, err := h.uc.ListOutward(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateOutward godoc
// @Summary      Registrar despacho
// @Description  Persiste el despacho y descuenta cada línea; el stock nunca queda negativo.
// @Tags         outward
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOutwardRequest  true  "Despacho"
// @Success      201   {object}  dto.OutwardEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/outward [post]
func (h *MovementHandler) CreateOutward(c *fiber.Ctx) error {
	var in dto.CreateOutwardRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.validate.Validate(in); err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.uc.CreateOutward(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
