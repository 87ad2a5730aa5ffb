package catalog_test

import (
	"context"
	"sort"
	"sync"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	dbgen "github.com/noah-isme/backend-dentlab/internal/db/gen"
)

// fakeQueries is an in-memory price_list table with the UNIQUE(dent_category) constraint.
type fakeQueries struct {
	mu        sync.Mutex
	nextID    int64
	rows      map[int64]dbgen.PriceList
	listCalls int
	// afterList runs once the rows are read, before they are returned.
	afterList func()
}

func newFakeQueries() *fakeQueries {
	return &fakeQueries{rows: map[int64]dbgen.PriceList{}}
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: pgerrcode.UniqueViolation, Message: "duplicate key value violates unique constraint"}
}

func (f *fakeQueries) taken(category string, except int64) bool {
	for id, row := range f.rows {
		if id != except && row.DentCategory == category {
			return true
		}
	}
	return false
}

func (f *fakeQueries) CreatePriceItem(_ context.Context, arg dbgen.CreatePriceItemParams) (dbgen.PriceList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.taken(arg.DentCategory, 0) {
		return dbgen.PriceList{}, uniqueViolation()
	}
	f.nextID++
	row := dbgen.PriceList{ID: f.nextID, DentCategory: arg.DentCategory, PricePerUnit: arg.PricePerUnit}
	f.rows[row.ID] = row
	return row, nil
}

func (f *fakeQueries) GetPriceItem(_ context.Context, id int64) (dbgen.PriceList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return dbgen.PriceList{}, pgx.ErrNoRows
	}
	return row, nil
}

func (f *fakeQueries) ListPriceItems(context.Context) ([]dbgen.PriceList, error) {
	f.mu.Lock()
	f.listCalls++
	out := make([]dbgen.PriceList, 0, len(f.rows))
	for _, row := range f.rows {
		out = append(out, row)
	}
	hook := f.afterList
	f.afterList = nil
	f.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].DentCategory < out[j].DentCategory })
	if hook != nil {
		hook()
	}
	return out, nil
}

func (f *fakeQueries) UpdatePriceItem(_ context.Context, arg dbgen.UpdatePriceItemParams) (dbgen.PriceList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[arg.ID]; !ok {
		return dbgen.PriceList{}, pgx.ErrNoRows
	}
	if f.taken(arg.DentCategory, arg.ID) {
		return dbgen.PriceList{}, uniqueViolation()
	}
	row := dbgen.PriceList{ID: arg.ID, DentCategory: arg.DentCategory, PricePerUnit: arg.PricePerUnit}
	f.rows[arg.ID] = row
	return row, nil
}

func (f *fakeQueries) DeletePriceItem(_ context.Context, id int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return 0, nil
	}
	delete(f.rows, id)
	return 1, nil
}

func (f *fakeQueries) CountPriceItems(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.rows)), nil
}

func (f *fakeQueries) GetPriceByCategory(_ context.Context, category string) (pgtype.Numeric, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.DentCategory == category {
			return row.PricePerUnit, nil
		}
	}
	return pgtype.Numeric{}, pgx.ErrNoRows
}
