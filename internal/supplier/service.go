package supplier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/noah-isme/backend-dentlab/internal/common"
	dbgen "github.com/noah-isme/backend-dentlab/internal/db/gen"
)

// ErrNotFound is returned when the supplier id does not exist.
var ErrNotFound = errors.New("supplier: not found")

// Querier is the subset of generated queries used for suppliers.
type Querier interface {
	CreateSupplier(ctx context.Context, arg dbgen.CreateSupplierParams) (dbgen.Supplier, error)
	GetSupplier(ctx context.Context, id int64) (dbgen.Supplier, error)
	ListSuppliers(ctx context.Context) ([]dbgen.Supplier, error)
	UpdateSupplier(ctx context.Context, arg dbgen.UpdateSupplierParams) (dbgen.Supplier, error)
	DeleteSupplier(ctx context.Context, id int64) (int64, error)
}

// Supplier is a co-worker the lab outsources parts of an order to.
type Supplier struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Input carries the editable supplier fields.
type Input struct {
	Name string `json:"name" validate:"required,max=200"`
	Type string `json:"type" validate:"supplier_type"`
}

// Service manages supplier records.
type Service struct {
	queries Querier
}

// NewService constructs a Service.
func NewService(q Querier) (*Service, error) {
	if q == nil {
		return nil, errors.New("supplier: queries provider is required")
	}
	return &Service{queries: q}, nil
}

func (s *Service) List(ctx context.Context) ([]Supplier, error) {
	rows, err := s.queries.ListSuppliers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	out := make([]Supplier, 0, len(rows))
	for _, row := range rows {
		out = append(out, toSupplier(row))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Supplier, error) {
	row, err := s.queries.GetSupplier(ctx, id)
	if err != nil {
		return Supplier{}, mapError(err)
	}
	return toSupplier(row), nil
}

func (s *Service) Create(ctx context.Context, in Input) (Supplier, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Supplier{}, common.Validation("name", "name is required")
	}
	row, err := s.queries.CreateSupplier(ctx, dbgen.CreateSupplierParams{Name: name, Type: common.Text(in.Type)})
	if err != nil {
		return Supplier{}, fmt.Errorf("create supplier: %w", err)
	}
	return toSupplier(row), nil
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (Supplier, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Supplier{}, common.Validation("name", "name is required")
	}
	row, err := s.queries.UpdateSupplier(ctx, dbgen.UpdateSupplierParams{ID: id, Name: name, Type: common.Text(in.Type)})
	if err != nil {
		return Supplier{}, mapError(err)
	}
	return toSupplier(row), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	n, err := s.queries.DeleteSupplier(ctx, id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	if n == 0 {
		return common.NotFound("supplier not found", ErrNotFound)
	}
	return nil
}

// Names returns id → name for every supplier.
func (s *Service) Names(ctx context.Context) (map[int64]string, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(list))
	for _, sp := range list {
		names[sp.ID] = sp.Name
	}
	return names, nil
}

func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return common.NotFound("supplier not found", ErrNotFound)
	}
	return fmt.Errorf("supplier query: %w", err)
}

func toSupplier(row dbgen.Supplier) Supplier {
	return Supplier{ID: row.ID, Name: row.Name, Type: common.TextValue(row.Type)}
}
