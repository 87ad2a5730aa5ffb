package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-dentlab/internal/cache"
	"github.com/noah-isme/backend-dentlab/internal/common"
	dbgen "github.com/noah-isme/backend-dentlab/internal/db/gen"
	"github.com/noah-isme/backend-dentlab/internal/lineitem"
	"github.com/noah-isme/backend-dentlab/internal/lock"
	"github.com/noah-isme/backend-dentlab/internal/obs"
	"github.com/noah-isme/backend-dentlab/internal/pricing"
)

var (
	// ErrDuplicateCategory is returned when a category name is already taken by another entry.
	ErrDuplicateCategory = errors.New("catalog: category already exists")
	// ErrNotFound is returned when the entry id does not exist.
	ErrNotFound = errors.New("catalog: entry not found")
)

const (
	listCacheKey = "catalog:price-list"
	listGenKey   = "catalog:price-list:gen"
	seedLockKey  = "catalog:seed"
)

// Querier is the subset of generated queries the catalog needs.
type Querier interface {
	CreatePriceItem(ctx context.Context, arg dbgen.CreatePriceItemParams) (dbgen.PriceList, error)
	GetPriceItem(ctx context.Context, id int64) (dbgen.PriceList, error)
	ListPriceItems(ctx context.Context) ([]dbgen.PriceList, error)
	UpdatePriceItem(ctx context.Context, arg dbgen.UpdatePriceItemParams) (dbgen.PriceList, error)
	DeletePriceItem(ctx context.Context, id int64) (int64, error)
	CountPriceItems(ctx context.Context) (int64, error)
	GetPriceByCategory(ctx context.Context, dentCategory string) (pgtype.Numeric, error)
}

// Entry is one row of the price list.
type Entry struct {
	ID        int64           `json:"id"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Service owns the price list: CRUD, the cached snapshot used for pricing and
// the one-time seeding of defaults.
type Service struct {
	queries  Querier
	cache    *cache.Cache
	locker   lock.Locker
	seedTTL  time.Duration
	defaults []pricing.Entry
	logger   zerolog.Logger
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Queries Querier
	Cache   *cache.Cache
	// Locker guards InitializeDefaults across instances. Optional.
	Locker      lock.Locker
	SeedLockTTL time.Duration
	// Defaults overrides DefaultPriceList.
	Defaults []pricing.Entry
	Logger   *zerolog.Logger
}

// NewService constructs a Service instance.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Queries == nil {
		return nil, errors.New("catalog: queries provider is required")
	}
	defaults := cfg.Defaults
	if defaults == nil {
		defaults = DefaultPriceList
	}
	ttl := cfg.SeedLockTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = cfg.Logger.With().Str("component", "catalog").Logger()
	}
	return &Service{
		queries:  cfg.Queries,
		cache:    cfg.Cache,
		locker:   cfg.Locker,
		seedTTL:  ttl,
		defaults: defaults,
		logger:   logger,
	}, nil
}

// List returns every entry sorted by category. Served from cache when possible.
// The cache key carries the generation read before the query, so a fill racing a
// mutation lands on a key no reader asks for again.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	key := ""
	if gen, err := s.cache.Generation(ctx, listGenKey); err == nil {
		key = cache.Key(listCacheKey, gen)
	}
	var cached []Entry
	if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
		return cached, nil
	}
	rows, err := s.queries.ListPriceItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list price items: %w", err)
	}
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, toEntry(row))
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Category < entries[j].Category })
	_ = s.cache.SetJSON(ctx, key, entries)
	return entries, nil
}

// Get returns a single entry.
func (s *Service) Get(ctx context.Context, id int64) (Entry, error) {
	row, err := s.queries.GetPriceItem(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, common.NotFound("price list entry not found", ErrNotFound)
		}
		return Entry{}, fmt.Errorf("get price item: %w", err)
	}
	return toEntry(row), nil
}

// Snapshot returns an immutable view of the price list for pricing and reports.
func (s *Service) Snapshot(ctx context.Context) (pricing.PriceList, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return pricing.PriceList{}, err
	}
	list := make([]pricing.Entry, 0, len(entries))
	for _, e := range entries {
		list = append(list, pricing.Entry{Category: e.Category, UnitPrice: e.UnitPrice})
	}
	return pricing.NewPriceList(list), nil
}

// Lookup returns the unit price of category, or zero when it is not listed.
func (s *Service) Lookup(ctx context.Context, category string) (decimal.Decimal, error) {
	price, err := s.queries.GetPriceByCategory(ctx, strings.TrimSpace(category))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("lookup price: %w", err)
	}
	return common.Decimal(price), nil
}

// Categories returns the sorted category names.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Category)
	}
	return names, nil
}

// Add inserts a new category.
func (s *Service) Add(ctx context.Context, category string, price decimal.Decimal) (Entry, error) {
	category, err := validateEntry(category, price)
	if err != nil {
		return Entry{}, err
	}
	row, err := s.queries.CreatePriceItem(ctx, dbgen.CreatePriceItemParams{
		DentCategory: category,
		PricePerUnit: common.Numeric(price),
	})
	if err != nil {
		obs.Inc(obs.CatalogMutationsTotal, "add", "error")
		return Entry{}, mapWriteError(err, category)
	}
	s.invalidate(ctx)
	obs.Inc(obs.CatalogMutationsTotal, "add", "ok")
	return toEntry(row), nil
}

// Edit renames and/or reprices an entry. Renaming onto another entry's name fails
// with ErrDuplicateCategory; keeping the same name is allowed. Stored orders keep
// the totals computed when they were saved.
func (s *Service) Edit(ctx context.Context, id int64, category string, price decimal.Decimal) (Entry, error) {
	category, err := validateEntry(category, price)
	if err != nil {
		return Entry{}, err
	}
	row, err := s.queries.UpdatePriceItem(ctx, dbgen.UpdatePriceItemParams{
		ID:           id,
		DentCategory: category,
		PricePerUnit: common.Numeric(price),
	})
	if err != nil {
		obs.Inc(obs.CatalogMutationsTotal, "edit", "error")
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, common.NotFound("price list entry not found", ErrNotFound)
		}
		return Entry{}, mapWriteError(err, category)
	}
	s.invalidate(ctx)
	obs.Inc(obs.CatalogMutationsTotal, "edit", "ok")
	return toEntry(row), nil
}

// Delete removes an entry.
func (s *Service) Delete(ctx context.Context, id int64) error {
	n, err := s.queries.DeletePriceItem(ctx, id)
	if err != nil {
		obs.Inc(obs.CatalogMutationsTotal, "delete", "error")
		return fmt.Errorf("delete price item: %w", err)
	}
	if n == 0 {
		return common.NotFound("price list entry not found", ErrNotFound)
	}
	s.invalidate(ctx)
	obs.Inc(obs.CatalogMutationsTotal, "delete", "ok")
	return nil
}

// InitializeDefaults loads the default price list into an empty catalog and
// returns how many entries were inserted. A non-empty catalog is left alone, so
// calling it on every start is safe.
func (s *Service) InitializeDefaults(ctx context.Context) (int, error) {
	var inserted int
	seed := func(ctx context.Context) error {
		n, err := s.seed(ctx)
		inserted = n
		return err
	}
	err := s.locker.WithLock(ctx, seedLockKey, s.seedTTL, seed)
	if errors.Is(err, lock.ErrNotConfigured) {
		err = seed(ctx)
	}
	if err != nil {
		return inserted, err
	}
	if inserted > 0 {
		s.logger.Info().Int("entries", inserted).Msg("price list seeded")
	}
	return inserted, nil
}

func (s *Service) seed(ctx context.Context) (int, error) {
	count, err := s.queries.CountPriceItems(ctx)
	if err != nil {
		return 0, fmt.Errorf("count price items: %w", err)
	}
	if count > 0 {
		return 0, nil
	}
	inserted := 0
	for _, e := range s.defaults {
		_, err := s.queries.CreatePriceItem(ctx, dbgen.CreatePriceItemParams{
			DentCategory: e.Category,
			PricePerUnit: common.Numeric(e.UnitPrice),
		})
		if err != nil {
			if isUniqueViolation(err) {
				continue
			}
			return inserted, fmt.Errorf("seed %q: %w", e.Category, err)
		}
		inserted++
	}
	s.invalidate(ctx)
	return inserted, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Bump(ctx, listGenKey); err != nil {
		s.logger.Warn().Err(err).Msg("invalidate price list cache")
	}
}

func validateEntry(category string, price decimal.Decimal) (string, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return "", common.Validation("category", "category is required")
	}
	if !lineitem.ValidCategory(category) {
		return "", common.Validation("category", "category must not contain "+`"`+lineitem.Separator+`"`)
	}
	if price.IsNegative() {
		return "", common.Validation("unit_price", "unit_price must not be negative")
	}
	return category, nil
}

func mapWriteError(err error, category string) error {
	if isUniqueViolation(err) {
		appErr := common.Conflict(fmt.Sprintf("category %q already exists", category), ErrDuplicateCategory)
		appErr.Code = "DUPLICATE_CATEGORY"
		appErr.Details = map[string]any{"field": "category"}
		return appErr
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.NumericValueOutOfRange {
		appErr := common.Validation("unit_price", "unit_price is too large")
		appErr.Err = err
		return appErr
	}
	return fmt.Errorf("write price item: %w", err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func toEntry(row dbgen.PriceList) Entry {
	return Entry{ID: row.ID, Category: row.DentCategory, UnitPrice: common.Decimal(row.PricePerUnit)}
}
