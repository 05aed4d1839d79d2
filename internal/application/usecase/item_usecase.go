package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	appinv "github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// ItemUseCase casos de uso del catálogo. La cantidad también cambia vía movimientos (ledger).
type ItemUseCase struct {
	repo            repository.ItemRepository
	txRunner        appinv.TxRunner
	defaultUnitCost decimal.Decimal
	now             func() time.Time
}

// NewItemUseCase construye el caso de uso. defaultUnitCost se asigna a los artículos dados de alta sin costo.
// Update corre dentro de txRunner para no pisar el stock que escriben los movimientos concurrentes.
func NewItemUseCase(repo repository.ItemRepository, txRunner appinv.TxRunner, defaultUnitCost decimal.Decimal) *ItemUseCase {
	return &ItemUseCase{repo: repo, txRunner: txRunner, defaultUnitCost: defaultUnitCost, now: time.Now}
}

// List lista artículos (created_at descendente) aplicando search y status con AND.
func (uc *ItemUseCase) List(ctx context.Context, in dto.ListItemsRequest) ([]dto.ItemResponse, error) {
	if in.Status != "" && !inventory.ValidStatus(in.Status) {
		return nil, domain.NewValidationError("status", "debe ser in_stock, low_stock u out_of_stock")
	}
	list, err := uc.repo.List(ctx, entity.ItemFilter{Search: strings.TrimSpace(in.Search), Status: in.Status})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, *toItemResponse(it))
	}
	return out, nil
}

// GetByID obtiene un artículo. Devuelve (nil, nil) si no existe.
func (uc *ItemUseCase) GetByID(ctx context.Context, id int64) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toItemResponse(item), nil
}

// Create da de alta un artículo. SKU duplicado o campos vacíos → ValidationError.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	sku := strings.TrimSpace(in.SKU)
	switch {
	case sku == "":
		return nil, domain.NewValidationError("sku", "es requerido")
	case strings.TrimSpace(in.Name) == "":
		return nil, domain.NewValidationError("name", "es requerido")
	case strings.TrimSpace(in.Category) == "":
		return nil, domain.NewValidationError("category", "es requerido")
	case strings.TrimSpace(in.Location) == "":
		return nil, domain.NewValidationError("location", "es requerido")
	}

	item := &entity.InventoryItem{
		SKU:         sku,
		Name:        in.Name,
		Category:    in.Category,
		Location:    in.Location,
		MinQuantity: entity.DefaultMinQuantity,
		UnitCost:    uc.defaultUnitCost,
		CreatedAt:   uc.now(),
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, domain.NewValidationError("quantity", "no puede ser negativa")
		}
		item.Quantity = *in.Quantity
	}
	if in.MinQuantity != nil {
		if *in.MinQuantity < 0 {
			return nil, domain.NewValidationError("minQuantity", "no puede ser negativa")
		}
		item.MinQuantity = *in.MinQuantity
	}
	if in.UnitCost != nil {
		if in.UnitCost.IsNegative() {
			return nil, domain.NewValidationError("unitCost", "no puede ser negativo")
		}
		item.UnitCost = *in.UnitCost
	}

	existing, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewDuplicateError("sku", sku)
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		// Carrera entre la verificación y el INSERT: el índice único responde.
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewDuplicateError("sku", sku)
		}
		return nil, err
	}
	return toItemResponse(item), nil
}

// Update fusiona los campos presentes sobre el artículo bloqueado (GetForUpdate).
// Devuelve domain.ErrNotFound si el ID no existe.
func (uc *ItemUseCase) Update(ctx context.Context, id int64, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if err := validateUpdate(in); err != nil {
		return nil, err
	}
	var updated *entity.InventoryItem
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		_ repository.InwardRepository,
		_ repository.OutwardRepository,
	) error {
		item, err := itemRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if in.SKU != nil && strings.TrimSpace(*in.SKU) != item.SKU {
			return domain.NewValidationError("sku", "el SKU no se puede modificar")
		}
		mergeItem(item, in)
		if err := itemRepo.Update(ctx, item); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toItemResponse(updated), nil
}

func validateUpdate(in dto.UpdateItemRequest) error {
	if in.Quantity != nil && *in.Quantity < 0 {
		return domain.NewValidationError("quantity", "no puede ser negativa")
	}
	if in.MinQuantity != nil && *in.MinQuantity < 0 {
		return domain.NewValidationError("minQuantity", "no puede ser negativa")
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return domain.NewValidationError("unitCost", "no puede ser negativo")
	}
	return nil
}

func mergeItem(item *entity.InventoryItem, in dto.UpdateItemRequest) {
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Location != nil {
		item.Location = *in.Location
	}
	if in.Quantity != nil {
		item.Quantity = *in.Quantity
	}
	if in.MinQuantity != nil {
		item.MinQuantity = *in.MinQuantity
	}
	if in.UnitCost != nil {
		item.UnitCost = *in.UnitCost
	}
}

func toItemResponse(it *entity.InventoryItem) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:          it.ID,
		SKU:         it.SKU,
		Name:        it.Name,
		Category:    it.Category,
		Location:    it.Location,
		Quantity:    it.Quantity,
		MinQuantity: it.MinQuantity,
		UnitCost:    it.UnitCost,
		Status:      string(inventory.ClassifyStock(it.Quantity, it.MinQuantity)),
		LastMovedAt: it.LastMovedAt,
		CreatedAt:   it.CreatedAt,
	}
}
