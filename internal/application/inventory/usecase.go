package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// LedgerOptions comportamiento configurable del ledger de movimientos.
type LedgerOptions struct {
	// StrictItems: una línea con itemId inexistente rechaza todo el movimiento (Rollback).
	// En false la línea se omite y se informa en el resultado, la entrada se guarda igual.
	StrictItems bool
	Now         func() time.Time
}

// LedgerUseCase registra entradas (GRN) y despachos y ajusta el stock del catálogo.
// La entrada y todos sus ajustes se aplican en una sola transacción (TxRunner).
type LedgerUseCase struct {
	txRunner    TxRunner
	inwardRepo  repository.InwardRepository
	outwardRepo repository.OutwardRepository
	opts        LedgerOptions
	log         zerolog.Logger
}

// NewLedgerUseCase construye el caso de uso. Los repositorios sueltos solo se usan para lecturas.
func NewLedgerUseCase(
	txRunner TxRunner,
	inwardRepo repository.InwardRepository,
	outwardRepo repository.OutwardRepository,
	opts LedgerOptions,
	log zerolog.Logger,
) *LedgerUseCase {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &LedgerUseCase{
		txRunner:    txRunner,
		inwardRepo:  inwardRepo,
		outwardRepo: outwardRepo,
		opts:        opts,
		log:         log,
	}
}

// ListInward devuelve las entradas ordenadas por fecha descendente.
func (uc *LedgerUseCase) ListInward(ctx context.Context) ([]dto.InwardEntryResponse, error) {
	list, err := uc.inwardRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InwardEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toInwardResponse(e, nil))
	}
	return out, nil
}

// ListOutward devuelve los despachos ordenados por fecha descendente.
func (uc *LedgerUseCase) ListOutward(ctx context.Context) ([]dto.OutwardEntryResponse, error) {
	list, err := uc.outwardRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OutwardEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toOutwardResponse(e, nil))
	}
	return out, nil
}

// CreateInward valida grnNo único e items no vacíos, persiste la entrada y suma cada línea al stock.
func (uc *LedgerUseCase) CreateInward(ctx context.Context, in dto.CreateInwardRequest) (*dto.InwardEntryResponse, error) {
	grnNo := strings.TrimSpace(in.GRNNo)
	if grnNo == "" {
		return nil, domain.NewValidationError("grnNo", "es requerido")
	}
	lines, err := toLines(in.Items, true)
	if err != nil {
		return nil, err
	}
	now := uc.opts.Now()
	entry := &entity.InwardEntry{
		GRNNo:      grnNo,
		Supplier:   in.Supplier,
		Date:       entryDate(in.Date, now),
		Status:     defaultString(in.Status, entity.InwardStatusReceived),
		Items:      lines,
		TotalItems: uc.totalItems(in.TotalItems, lines, grnNo),
	}

	var results []dto.AdjustmentResultDTO
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		inwardRepo repository.InwardRepository,
		_ repository.OutwardRepository,
	) error {
		existing, err := inwardRepo.GetByGRN(ctx, grnNo)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.NewDuplicateError("grnNo", grnNo)
		}
		if err := inwardRepo.Create(ctx, entry); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.NewDuplicateError("grnNo", grnNo)
			}
			return err
		}
		results, err = uc.adjust(ctx, itemRepo, lines, +1, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.logResults("inward", grnNo, results)
	out := toInwardResponse(entry, results)
	return &out, nil
}

// CreateOutward valida dispatchNo único e items no vacíos, persiste el despacho y descuenta cada línea.
// Una salida mayor al stock disponible se recorta en cero (no es error).
func (uc *LedgerUseCase) CreateOutward(ctx context.Context, in dto.CreateOutwardRequest) (*dto.OutwardEntryResponse, error) {
	dispatchNo := strings.TrimSpace(in.DispatchNo)
	if dispatchNo == "" {
		return nil, domain.NewValidationError("dispatchNo", "es requerido")
	}
	lines, err := toLines(in.Items, false)
	if err != nil {
		return nil, err
	}
	now := uc.opts.Now()
	entry := &entity.OutwardEntry{
		DispatchNo: dispatchNo,
		Customer:   in.Customer,
		Date:       entryDate(in.Date, now),
		Status:     defaultString(in.Status, entity.OutwardStatusPacked),
		Items:      lines,
		TotalItems: uc.totalItems(in.TotalItems, lines, dispatchNo),
	}

	var results []dto.AdjustmentResultDTO
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.InwardRepository,
		outwardRepo repository.OutwardRepository,
	) error {
		existing, err := outwardRepo.GetByDispatchNo(ctx, dispatchNo)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.NewDuplicateError("dispatchNo", dispatchNo)
		}
		if err := outwardRepo.Create(ctx, entry); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.NewDuplicateError("dispatchNo", dispatchNo)
			}
			return err
		}
		results, err = uc.adjust(ctx, itemRepo, lines, -1, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.logResults("outward", dispatchNo, results)
	out := toOutwardResponse(entry, results)
	return &out, nil
}

// adjust aplica sign*quantity por línea y arma el resultado multi-estado.
func (uc *LedgerUseCase) adjust(
	ctx context.Context,
	itemRepo repository.ItemRepository,
	lines []entity.MovementLine,
	sign int,
	now time.Time,
) ([]dto.AdjustmentResultDTO, error) {
	adjuster := NewStockAdjuster(itemRepo, now)
	if err := adjuster.Lock(ctx, lines); err != nil {
		return nil, err
	}
	results := make([]dto.AdjustmentResultDTO, 0, len(lines))
	for i, l := range lines {
		res, err := adjuster.ApplyDelta(ctx, l.ItemID, sign*l.Quantity, l.UnitCost)
		if err != nil {
			return nil, err
		}
		res.Line = i
		if res.Status == dto.AdjustmentSkippedNotFound && uc.opts.StrictItems {
			return nil, domain.NewValidationError(
				fmt.Sprintf("items.%d.itemId", i),
				fmt.Sprintf("el artículo %d no existe", l.ItemID),
			)
		}
		results = append(results, res)
	}
	return results, nil
}

// totalItems usa el total del caller si viene; si no, la suma de las líneas.
func (uc *LedgerUseCase) totalItems(given int, lines []entity.MovementLine, ref string) int {
	sum := entity.SumQuantities(lines)
	if given == 0 {
		return sum
	}
	if given != sum {
		uc.log.Warn().
			Str("ref", ref).
			Int("total_items", given).
			Int("lines_sum", sum).
			Msg("totalItems no coincide con la suma de las líneas")
	}
	return given
}

func (uc *LedgerUseCase) logResults(kind, ref string, results []dto.AdjustmentResultDTO) {
	txID := uuid.New().String()
	for _, r := range results {
		switch {
		case r.Status == dto.AdjustmentSkippedNotFound:
			uc.log.Warn().Str("transaction_id", txID).Str("kind", kind).Str("ref", ref).
				Int64("item_id", r.ItemID).Msg("línea omitida: artículo inexistente")
		case r.Clamped:
			uc.log.Warn().Str("transaction_id", txID).Str("kind", kind).Str("ref", ref).
				Int64("item_id", r.ItemID).Int("requested", r.Requested).Int("available", r.PreviousQuantity).
				Msg("salida recortada al stock disponible")
		}
	}
	uc.log.Info().Str("transaction_id", txID).Str("kind", kind).Str("ref", ref).
		Int("lines", len(results)).Msg("movimiento registrado")
}

func toLines(in []dto.MovementLineDTO, allowCost bool) ([]entity.MovementLine, error) {
	if len(in) == 0 {
		return nil, domain.NewValidationError("items", "debe contener al menos una línea")
	}
	lines := make([]entity.MovementLine, 0, len(in))
	for i, l := range in {
		if l.ItemID <= 0 {
			return nil, domain.NewValidationError(fmt.Sprintf("items.%d.itemId", i), "debe ser positivo")
		}
		if l.Quantity <= 0 {
			return nil, domain.NewValidationError(fmt.Sprintf("items.%d.quantity", i), "debe ser positiva")
		}
		line := entity.MovementLine{ItemID: l.ItemID, Quantity: l.Quantity}
		if allowCost && l.UnitCost != nil {
			if l.UnitCost.IsNegative() {
				return nil, domain.NewValidationError(fmt.Sprintf("items.%d.unitCost", i), "no puede ser negativo")
			}
			cost := *l.UnitCost
			line.UnitCost = &cost
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func entryDate(d *time.Time, now time.Time) time.Time {
	if d == nil || d.IsZero() {
		return now
	}
	return *d
}

func defaultString(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func toLineDTOs(lines []entity.MovementLine) []dto.MovementLineDTO {
	out := make([]dto.MovementLineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.MovementLineDTO{ItemID: l.ItemID, Quantity: l.Quantity, UnitCost: l.UnitCost})
	}
	return out
}

func toInwardResponse(e *entity.InwardEntry, results []dto.AdjustmentResultDTO) dto.InwardEntryResponse {
	return dto.InwardEntryResponse{
		ID:          e.ID,
		GRNNo:       e.GRNNo,
		Supplier:    e.Supplier,
		Date:        e.Date,
		Status:      e.Status,
		Items:       toLineDTOs(e.Items),
		TotalItems:  e.TotalItems,
		Adjustments: results,
	}
}

func toOutwardResponse(e *entity.OutwardEntry, results []dto.AdjustmentResultDTO) dto.OutwardEntryResponse {
	return dto.OutwardEntryResponse{
		ID:          e.ID,
		DispatchNo:  e.DispatchNo,
		Customer:    e.Customer,
		Date:        e.Date,
		Status:      e.Status,
		Items:       toLineDTOs(e.Items),
		TotalItems:  e.TotalItems,
		Adjustments: results,
	}
}
