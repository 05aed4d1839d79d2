package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var (
	_ repository.InwardRepository  = (*InwardRepo)(nil)
	_ repository.OutwardRepository = (*OutwardRepo)(nil)
)

// InwardRepo implementación sobre PostgreSQL (usable con pool o tx). Las líneas van en JSONB.
type InwardRepo struct {
	q Querier
}

// NewInwardRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInwardRepository(q Querier) *InwardRepo {
	return &InwardRepo{q: q}
}

// Create persiste una entrada y asigna ID.
func (r *InwardRepo) Create(ctx context.Context, e *entity.InwardEntry) error {
	query := `
		INSERT INTO inward_entries (grn_no, supplier, date, status, items, total_items)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, e.GRNNo, e.Supplier, e.Date, e.Status, e.Items, e.TotalItems).Scan(&e.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inward entry: %w", err)
	}
	return nil
}

// GetByGRN obtiene una entrada por número de GRN.
func (r *InwardRepo) GetByGRN(ctx context.Context, grnNo string) (*entity.InwardEntry, error) {
	query := `
		SELECT id, grn_no, supplier, date, status, items, total_items
		FROM inward_entries WHERE grn_no = $1`
	var e entity.InwardEntry
	err := r.q.QueryRow(ctx, query, grnNo).Scan(&e.ID, &e.GRNNo, &e.Supplier, &e.Date, &e.Status, &e.Items, &e.TotalItems)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inward entry: %w", err)
	}
	return &e, nil
}

// List lista todas las entradas por fecha descendente.
func (r *InwardRepo) List(ctx context.Context) ([]*entity.InwardEntry, error) {
	query := `
		SELECT id, grn_no, supplier, date, status, items, total_items
		FROM inward_entries ORDER BY date DESC, id DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list inward entries: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.InwardEntry, 0)
	for rows.Next() {
		var e entity.InwardEntry
		if err := rows.Scan(&e.ID, &e.GRNNo, &e.Supplier, &e.Date, &e.Status, &e.Items, &e.TotalItems); err != nil {
			return nil, fmt.Errorf("scan inward entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// OutwardRepo implementación sobre PostgreSQL (usable con pool o tx).
type OutwardRepo struct {
	q Querier
}

// NewOutwardRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOutwardRepository(q Querier) *OutwardRepo {
	return &OutwardRepo{q: q}
}

// Create persiste un despacho y asigna ID.
func (r *OutwardRepo) Create(ctx context.Context, e *entity.OutwardEntry) error {
	query := `
		INSERT INTO outward_entries (dispatch_no, customer, date, status, items, total_items)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, e.DispatchNo, e.Customer, e.Date, e.Status, e.Items, e.TotalItems).Scan(&e.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert outward entry: %w", err)
	}
	return nil
}

// GetByDispatchNo obtiene un despacho por número.
func (r *OutwardRepo) GetByDispatchNo(ctx context.Context, dispatchNo string) (*entity.OutwardEntry, error) {
	query := `
		SELECT id, dispatch_no, customer, date, status, items, total_items
		FROM outward_entries WHERE dispatch_no = $1`
	var e entity.OutwardEntry
	err := r.q.QueryRow(ctx, query, dispatchNo).Scan(&e.ID, &e.DispatchNo, &e.Customer, &e.Date, &e.Status, &e.Items, &e.TotalItems)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get outward entry: %w", err)
	}
	return &e, nil
}

// List lista todos los despachos por fecha descendente.
func (r *OutwardRepo) List(ctx context.Context) ([]*entity.OutwardEntry, error) {
	query := `
		SELECT id, dispatch_no, customer, date, status, items, total_items
		FROM outward_entries ORDER BY date DESC, id DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list outward entries: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.OutwardEntry, 0)
	for rows.Next() {
		var e entity.OutwardEntry
		if err := rows.Scan(&e.ID, &e.DispatchNo, &e.Customer, &e.Date, &e.Status, &e.Items, &e.TotalItems); err != nil {
			return nil, fmt.Errorf("scan outward entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
