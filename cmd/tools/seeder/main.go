package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-dentlab/internal/catalog"
	"github.com/noah-isme/backend-dentlab/internal/lineitem"
	"github.com/noah-isme/backend-dentlab/internal/obs"
	"github.com/noah-isme/backend-dentlab/internal/pricing"
)

type demoCustomer struct {
	name     string
	phone    string
	category string
	tier     pricing.Tier
}

var demoCustomers = []demoCustomer{
	{"Arman Dental Clinic", "021-4410-2231", "Clinic", pricing.TierLegacy},
	{"Dr. Sara Moradi", "0912-330-1188", "Doctor", pricing.TierStandard},
	{"Dr. Reza Kiani", "0935-210-4470", "Doctor", pricing.TierStandard},
	{"Pars Smile Center", "021-8873-0015", "Clinic", pricing.TierStandard},
	{"Nik Lab", "026-3320-9921", "Lab", pricing.TierLegacy},
}

var demoSuppliers = [][2]string{
	{"Ceramco", "Porcelain"},
	{"Veneer House", "Laminate"},
	{"Metal Works", "PFM"},
	{"Mill Point", "Milling"},
	{"Abutment Studio", "Customize Abutment"},
}

var shades = []string{"A1", "A2", "A3", "A3.5", "B1", "B2", "C2", "D3", "BL2"}

var doctors = []string{"Dr. Moradi", "Dr. Kiani", "Dr. Ahmadi", "Dr. Farahani"}

var patients = []string{"Mina R.", "Ali S.", "Neda K.", "Hamid T.", "Parisa J.", "Omid Z."}

func main() {
	orders := flag.Int("orders", 120, "number of demo orders")
	year := flag.Int("year", 1403, "first arrival year")
	reset := flag.Bool("reset", false, "truncate lab tables before seeding")
	seed := flag.Uint64("seed", 7, "random seed")
	flag.Parse()

	_ = godotenv.Load()
	logger := obs.NewLogger(obs.LogOptions{Format: "console", Level: "info"}).With().Str("tool", "seeder").Logger()

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		logger.Fatal().Msg("DATABASE_URL is not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		logger.Fatal().Err(err).Msg("ping database")
	}

	s := seeder{db: db, logger: logger, rng: rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))}
	if err := s.run(ctx, *reset, *orders, *year); err != nil {
		evt := logger.Fatal().Err(err)
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			evt = evt.Str("pg_code", string(pqErr.Code)).Str("pg_detail", pqErr.Detail)
		}
		evt.Msg("seed failed")
	}
	logger.Info().Msg("seeding completed")
}

type seeder struct {
	db     *sql.DB
	logger zerolog.Logger
	rng    *rand.Rand
}

func (s seeder) run(ctx context.Context, reset bool, orders, year int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if reset {
		if _, err := tx.ExecContext(ctx, `TRUNCATE orders, reminders, customers, suppliers RESTART IDENTITY CASCADE`); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}

	prices, err := s.priceList(ctx, tx)
	if err != nil {
		return err
	}
	customers, err := s.customers(ctx, tx)
	if err != nil {
		return err
	}
	suppliers, err := s.suppliers(ctx, tx)
	if err != nil {
		return err
	}
	if err := s.orders(ctx, tx, prices, customers, suppliers, orders, year); err != nil {
		return err
	}
	if err := s.reminders(ctx, tx, customers); err != nil {
		return err
	}
	return tx.Commit()
}

func (s seeder) priceList(ctx context.Context, tx *sql.Tx) (pricing.PriceList, error) {
	inserted := 0
	for _, e := range catalog.DefaultPriceList {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO price_list (dent_category, price_per_unit) VALUES ($1, $2) ON CONFLICT (dent_category) DO NOTHING`,
			e.Category, e.UnitPrice.String())
		if err != nil {
			return pricing.PriceList{}, fmt.Errorf("price list %q: %w", e.Category, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}
	s.logger.Info().Int("inserted", inserted).Msg("price list")

	rows, err := tx.QueryContext(ctx, `SELECT dent_category, price_per_unit FROM price_list`)
	if err != nil {
		return pricing.PriceList{}, err
	}
	defer rows.Close()
	var entries []pricing.Entry
	for rows.Next() {
		var e pricing.Entry
		var price string
		if err := rows.Scan(&e.Category, &price); err != nil {
			return pricing.PriceList{}, err
		}
		if err := e.UnitPrice.Scan(price); err != nil {
			return pricing.PriceList{}, err
		}
		entries = append(entries, e)
	}
	return pricing.NewPriceList(entries), rows.Err()
}

type seededCustomer struct {
	id   int64
	tier pricing.Tier
}

func (s seeder) customers(ctx context.Context, tx *sql.Tx) ([]seededCustomer, error) {
	out := make([]seededCustomer, 0, len(demoCustomers))
	for _, c := range demoCustomers {
		var id int64
		err := tx.QueryRowContext(ctx,
			`INSERT INTO customers (name, phone, category, notes, price_tier) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			c.name, c.phone, c.category, "demo", string(c.tier)).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("customer %q: %w", c.name, err)
		}
		out = append(out, seededCustomer{id: id, tier: c.tier})
	}
	s.logger.Info().Int("inserted", len(out)).Msg("customers")
	return out, nil
}

func (s seeder) suppliers(ctx context.Context, tx *sql.Tx) ([]int64, error) {
	ids := make([]int64, 0, len(demoSuppliers))
	for _, sp := range demoSuppliers {
		var id int64
		if err := tx.QueryRowContext(ctx, `INSERT INTO suppliers (name, type) VALUES ($1, $2) RETURNING id`, sp[0], sp[1]).Scan(&id); err != nil {
			return nil, fmt.Errorf("supplier %q: %w", sp[0], err)
		}
		ids = append(ids, id)
	}
	s.logger.Info().Int("inserted", len(ids)).Msg("suppliers")
	return ids, nil
}

func (s seeder) orders(ctx context.Context, tx *sql.Tx, prices pricing.PriceList, customers []seededCustomer, suppliers []int64, n, year int) error {
	engine := pricing.NewEngine(pricing.DefaultLegacyMultiplier)
	categories := prices.Entries()
	if len(categories) == 0 {
		return errors.New("price list is empty")
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO orders (
		customer_id, day_arrival_number, month_arrival_number, year_arrival_number,
		day_departure_number, month_departure_number, year_departure_number,
		doctor_name, patient_name, dent_category, co_worker_owns, no_units, color, price, status
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		c := customers[s.rng.IntN(len(customers))]
		items := make([]lineitem.Item, 0, 3)
		for range 1 + s.rng.IntN(3) {
			items = append(items, lineitem.Item{
				Category: categories[s.rng.IntN(len(categories))].Category,
				Quantity: 1 + s.rng.IntN(4),
			})
		}
		items = lineitem.Merge(items)
		raw := lineitem.Format(items)
		quote := engine.Quote(raw, prices, c.tier)

		arrivalYear := year + i*2/n
		month := 1 + s.rng.IntN(12)
		day := 1 + s.rng.IntN(30)

		var depDay, depMonth, depYear sql.NullInt64
		status := "In progress"
		if s.rng.IntN(10) < 8 {
			d := min(day+3+s.rng.IntN(7), 30)
			depDay = sql.NullInt64{Int64: int64(d), Valid: true}
			depMonth = sql.NullInt64{Int64: int64(month), Valid: true}
			depYear = sql.NullInt64{Int64: int64(arrivalYear), Valid: true}
			status = "Delivered"
		}

		workers := make([]string, 0, 2)
		for range s.rng.IntN(3) {
			workers = append(workers, strconv.FormatInt(suppliers[s.rng.IntN(len(suppliers))], 10))
		}

		_, err := stmt.ExecContext(ctx,
			c.id, day, month, arrivalYear,
			depDay, depMonth, depYear,
			doctors[s.rng.IntN(len(doctors))], patients[s.rng.IntN(len(patients))],
			raw, strings.Join(dedupe(workers), ","), quote.Units,
			shades[s.rng.IntN(len(shades))], quote.Total.String(), status)
		if err != nil {
			return fmt.Errorf("order %d: %w", i+1, err)
		}
	}
	s.logger.Info().Int("inserted", n).Msg("orders")
	return nil
}

func (s seeder) reminders(ctx context.Context, tx *sql.Tx, customers []seededCustomer) error {
	today := time.Now()
	for i, c := range customers {
		date := today.AddDate(0, 0, 3*(i+1)).Format("2006-01-02")
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO reminders (customer_id, reminder_date, note) VALUES ($1, $2, $3)`,
			c.id, date, "Follow up on open cases"); err != nil {
			return fmt.Errorf("reminder: %w", err)
		}
	}
	s.logger.Info().Int("inserted", len(customers)).Msg("reminders")
	return nil
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
