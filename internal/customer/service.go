package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/noah-isme/backend-dentlab/internal/common"
	dbgen "github.com/noah-isme/backend-dentlab/internal/db/gen"
	"github.com/noah-isme/backend-dentlab/internal/pricing"
)

// ErrNotFound is returned when the customer id does not exist.
var ErrNotFound = errors.New("customer: not found")

// Querier is the subset of generated queries used by the customer service.
type Querier interface {
	CreateCustomer(ctx context.Context, arg dbgen.CreateCustomerParams) (dbgen.Customer, error)
	GetCustomer(ctx context.Context, id int64) (dbgen.Customer, error)
	ListCustomers(ctx context.Context, arg dbgen.ListCustomersParams) ([]dbgen.Customer, error)
	UpdateCustomer(ctx context.Context, arg dbgen.UpdateCustomerParams) (dbgen.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) (int64, error)
	GetCustomerPriceTier(ctx context.Context, id int64) (string, error)
}

// Customer is a clinic, doctor or lab that sends work.
type Customer struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Phone     string       `json:"phone,omitempty"`
	Category  string       `json:"category,omitempty"`
	Notes     string       `json:"notes,omitempty"`
	PriceTier pricing.Tier `json:"price_tier"`
}

// Input carries the editable customer fields.
type Input struct {
	Name      string `json:"name" validate:"required,max=200"`
	Phone     string `json:"phone" validate:"max=50"`
	Category  string `json:"category" validate:"customer_category"`
	Notes     string `json:"notes" validate:"max=2000"`
	PriceTier string `json:"price_tier" validate:"price_tier"`
}

// Filter narrows List. Zero values match everything.
type Filter struct {
	Name     string
	ID       int64
	Category string
}

// Service manages customer records.
type Service struct {
	queries Querier
}

// NewService constructs a Service.
func NewService(q Querier) (*Service, error) {
	if q == nil {
		return nil, errors.New("customer: queries provider is required")
	}
	return &Service{queries: q}, nil
}

// List returns customers matching f ordered by id.
func (s *Service) List(ctx context.Context, f Filter) ([]Customer, error) {
	params := dbgen.ListCustomersParams{
		Name:     common.Text(f.Name),
		Category: common.Text(f.Category),
	}
	if f.ID > 0 {
		id := f.ID
		params.ID = common.Int8(&id)
	}
	rows, err := s.queries.ListCustomers(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	out := make([]Customer, 0, len(rows))
	for _, row := range rows {
		out = append(out, toCustomer(row))
	}
	return out, nil
}

// Get returns one customer.
func (s *Service) Get(ctx context.Context, id int64) (Customer, error) {
	row, err := s.queries.GetCustomer(ctx, id)
	if err != nil {
		return Customer{}, mapReadError(err)
	}
	return toCustomer(row), nil
}

// Create stores a new customer. An empty tier defaults to Standard.
func (s *Service) Create(ctx context.Context, in Input) (Customer, error) {
	name, err := requireName(in.Name)
	if err != nil {
		return Customer{}, err
	}
	row, err := s.queries.CreateCustomer(ctx, dbgen.CreateCustomerParams{
		Name:      name,
		Phone:     common.Text(in.Phone),
		Category:  common.Text(in.Category),
		Notes:     common.Text(in.Notes),
		PriceTier: string(pricing.ParseTier(in.PriceTier)),
	})
	if err != nil {
		return Customer{}, fmt.Errorf("create customer: %w", err)
	}
	return toCustomer(row), nil
}

// Update replaces the editable fields of a customer.
func (s *Service) Update(ctx context.Context, id int64, in Input) (Customer, error) {
	name, err := requireName(in.Name)
	if err != nil {
		return Customer{}, err
	}
	row, err := s.queries.UpdateCustomer(ctx, dbgen.UpdateCustomerParams{
		ID:        id,
		Name:      name,
		Phone:     common.Text(in.Phone),
		Category:  common.Text(in.Category),
		Notes:     common.Text(in.Notes),
		PriceTier: string(pricing.ParseTier(in.PriceTier)),
	})
	if err != nil {
		return Customer{}, mapReadError(err)
	}
	return toCustomer(row), nil
}

// Delete removes a customer together with its orders.
func (s *Service) Delete(ctx context.Context, id int64) error {
	n, err := s.queries.DeleteCustomer(ctx, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if n == 0 {
		return common.NotFound("customer not found", ErrNotFound)
	}
	return nil
}

// Names returns id → name for every customer, used to label orders and reports.
func (s *Service) Names(ctx context.Context) (map[int64]string, error) {
	list, err := s.List(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(list))
	for _, c := range list {
		names[c.ID] = c.Name
	}
	return names, nil
}

// Tier returns the pricing tier of the customer, Standard when it does not exist.
func (s *Service) Tier(ctx context.Context, id int64) (pricing.Tier, error) {
	tier, err := s.queries.GetCustomerPriceTier(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pricing.TierStandard, nil
		}
		return pricing.TierStandard, fmt.Errorf("customer tier: %w", err)
	}
	return pricing.ParseTier(tier), nil
}

func requireName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", common.Validation("name", "name is required")
	}
	return name, nil
}

func mapReadError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return common.NotFound("customer not found", ErrNotFound)
	}
	return fmt.Errorf("customer query: %w", err)
}

func toCustomer(row dbgen.Customer) Customer {
	return Customer{
		ID:        row.ID,
		Name:      row.Name,
		Phone:     common.TextValue(row.Phone),
		Category:  common.TextValue(row.Category),
		Notes:     common.TextValue(row.Notes),
		PriceTier: pricing.ParseTier(row.PriceTier),
	}
}
