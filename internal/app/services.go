package app

import (
	"context"
	"fmt"

	"github.com/noah-isme/backend-dentlab/internal/analytics"
	"github.com/noah-isme/backend-dentlab/internal/cache"
	"github.com/noah-isme/backend-dentlab/internal/catalog"
	"github.com/noah-isme/backend-dentlab/internal/config"
	"github.com/noah-isme/backend-dentlab/internal/customer"
	"github.com/noah-isme/backend-dentlab/internal/lock"
	"github.com/noah-isme/backend-dentlab/internal/order"
	"github.com/noah-isme/backend-dentlab/internal/pricing"
	"github.com/noah-isme/backend-dentlab/internal/reminder"
	"github.com/noah-isme/backend-dentlab/internal/supplier"
)

// Services is the set of domain services behind the HTTP API.
type Services struct {
	Catalog   *catalog.Service
	Customers *customer.Service
	Suppliers *supplier.Service
	Reminders *reminder.Service
	Orders    *order.Service
	Analytics *analytics.Service
}

// NewServices wires the domain services on top of deps.
func NewServices(deps *Dependencies, cfg *config.Config) (*Services, error) {
	logger := deps.Logger
	catalogSvc, err := catalog.NewService(catalog.ServiceConfig{
		Queries: deps.Queries,
		Cache:   cache.NewCache(deps.Redis, cfg.CatalogCacheTTL),
		Locker:  lock.Locker{R: deps.Redis},
		Logger:  &logger,
	})
	if err != nil {
		return nil, err
	}
	customerSvc, err := customer.NewService(deps.Queries)
	if err != nil {
		return nil, err
	}
	supplierSvc, err := supplier.NewService(deps.Queries)
	if err != nil {
		return nil, err
	}
	reminderSvc, err := reminder.NewService(deps.Queries)
	if err != nil {
		return nil, err
	}
	orderSvc, err := order.NewService(order.ServiceConfig{
		Queries:   deps.Queries,
		Tiers:     customerSvc,
		Prices:    catalogSvc,
		Customers: customerSvc,
		Suppliers: supplierSvc,
		Engine:    pricing.NewEngine(cfg.LegacyMultiplier),
		PerPage:   cfg.OrdersPerPage,
		Logger:    &logger,
	})
	if err != nil {
		return nil, err
	}
	return &Services{
		Catalog:   catalogSvc,
		Customers: customerSvc,
		Suppliers: supplierSvc,
		Reminders: reminderSvc,
		Orders:    orderSvc,
		Analytics: &analytics.Service{
			Q:             deps.Queries,
			Customers:     customerSvc,
			Suppliers:     supplierSvc,
			Cache:         cache.NewCache(deps.Redis, cfg.ReportCacheTTL),
			TopN:          cfg.ReportTopN,
			TopCategories: cfg.ReportTopCategories,
			Currency:      cfg.CurrencyCode,
		},
	}, nil
}

// SeedPriceList installs the default price list when the catalog is empty.
func (s *Services) SeedPriceList(ctx context.Context, deps *Dependencies) error {
	inserted, err := s.Catalog.InitializeDefaults(ctx)
	if err != nil {
		return fmt.Errorf("seed price list: %w", err)
	}
	deps.Logger.Info().Int("inserted", inserted).Msg("price list ready")
	return nil
}
