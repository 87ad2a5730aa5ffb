package order

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-dentlab/internal/common"
	dbgen "github.com/noah-isme/backend-dentlab/internal/db/gen"
	"github.com/noah-isme/backend-dentlab/internal/lineitem"
)

// DeletedCustomer labels orders whose customer row is gone.
const DeletedCustomer = "Deleted"

// Date is a lab calendar date. Months have at most 30 days.
type Date struct {
	Day   int `json:"day" validate:"min=1,max=30"`
	Month int `json:"month" validate:"min=1,max=12"`
	Year  int `json:"year" validate:"min=1,max=9999"`
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// ParseDate reads "YYYY-MM-DD" (or "YYYY/MM/DD") without calendar checks
// beyond the lab's month and day ranges.
func ParseDate(raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == '-' || r == '/' })
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("order: date %q is not YYYY-MM-DD", raw)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("order: date %q is not YYYY-MM-DD", raw)
		}
		nums[i] = n
	}
	d := Date{Year: nums[0], Month: nums[1], Day: nums[2]}
	if d.Year < 1 || d.Month < 1 || d.Month > 12 || d.Day < 1 || d.Day > 30 {
		return Date{}, fmt.Errorf("order: date %q is out of range", raw)
	}
	return d, nil
}

// Order is a case received from a customer, priced when it was last saved.
type Order struct {
	ID           int64           `json:"id"`
	CustomerID   int64           `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Arrival      Date            `json:"arrival"`
	Departure    *Date           `json:"departure"`
	Departed     bool            `json:"departed"`
	DoctorName   string          `json:"doctor_name,omitempty"`
	PatientName  string          `json:"patient_name,omitempty"`
	LineItems    string          `json:"line_items"`
	Items        []lineitem.Item `json:"items"`
	CoWorkerIDs  []int64         `json:"co_worker_ids"`
	CoWorkers    []string        `json:"co_workers"`
	Units        int             `json:"units"`
	Color        string          `json:"color,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Status       string          `json:"status,omitempty"`
}

// Input carries the editable order fields. Items win over LineItems when both are sent.
type Input struct {
	CustomerID  int64           `json:"customer_id" validate:"required,gt=0"`
	Arrival     Date            `json:"arrival"`
	Departure   *Date           `json:"departure"`
	DoctorName  string          `json:"doctor_name" validate:"max=200"`
	PatientName string          `json:"patient_name" validate:"max=200"`
	Items       []lineitem.Item `json:"items" validate:"dive"`
	LineItems   string          `json:"line_items" validate:"max=4000"`
	CoWorkerIDs []int64         `json:"co_worker_ids" validate:"dive,gt=0"`
	Color       string          `json:"color" validate:"shade"`
	Status      string          `json:"status" validate:"max=100"`
}

// QuoteInput is the body of the quote endpoint.
type QuoteInput struct {
	CustomerID int64           `json:"customer_id" validate:"omitempty,gt=0"`
	Items      []lineitem.Item `json:"items"`
	LineItems  string          `json:"line_items" validate:"max=4000"`
}

// Filter narrows List. Zero values match everything.
type Filter struct {
	ID       int64
	Customer string
	Doctor   string
	Status   string
	From     *Date
	To       *Date
	Page     int
	PerPage  int
}

// canonicalLineItems returns the stored form of the order's product mix.
func canonicalLineItems(items []lineitem.Item, raw string) string {
	if len(items) > 0 {
		return lineitem.Format(lineitem.Merge(items))
	}
	return lineitem.Format(lineitem.Parse(raw))
}

func formatCoWorkers(ids []int64) string {
	parts := make([]string, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id <= 0 {
			continue
		}
		seen[id] = struct{}{}
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}

func coWorkerNames(ids []int64, names map[int64]string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := names[id]; ok {
			out = append(out, name)
			continue
		}
		out = append(out, fmt.Sprintf("ID %d", id))
	}
	return out
}

func departureOf(day, month, year *int) *Date {
	if day == nil || month == nil || year == nil {
		return nil
	}
	return &Date{Day: *day, Month: *month, Year: *year}
}

func fromRow(row dbgen.Order) Order {
	o := Order{
		ID:          row.ID,
		CustomerID:  row.CustomerID,
		Arrival:     Date{Day: int(row.DayArrivalNumber), Month: int(row.MonthArrivalNumber), Year: int(row.YearArrivalNumber)},
		DoctorName:  common.TextValue(row.DoctorName),
		PatientName: common.TextValue(row.PatientName),
		LineItems:   row.DentCategory,
		Items:       lineitem.Parse(row.DentCategory),
		CoWorkerIDs: common.IDList(row.CoWorkerOwns),
		Units:       int(row.NoUnits),
		Color:       common.TextValue(row.Color),
		Price:       common.Decimal(row.Price),
		Status:      common.TextValue(row.Status),
	}
	o.Departure = departureOf(
		common.Int4Value(row.DayDepartureNumber),
		common.Int4Value(row.MonthDepartureNumber),
		common.Int4Value(row.YearDepartureNumber),
	)
	o.Departed = o.Departure != nil
	return o
}

func fromListRow(row dbgen.ListOrdersRow) Order {
	o := fromRow(dbgen.Order{
		ID:                   row.ID,
		CustomerID:           row.CustomerID,
		DayArrivalNumber:     row.DayArrivalNumber,
		MonthArrivalNumber:   row.MonthArrivalNumber,
		YearArrivalNumber:    row.YearArrivalNumber,
		DayDepartureNumber:   row.DayDepartureNumber,
		MonthDepartureNumber: row.MonthDepartureNumber,
		YearDepartureNumber:  row.YearDepartureNumber,
		DoctorName:           row.DoctorName,
		PatientName:          row.PatientName,
		DentCategory:         row.DentCategory,
		CoWorkerOwns:         row.CoWorkerOwns,
		NoUnits:              row.NoUnits,
		Color:                row.Color,
		Price:                row.Price,
		Status:               row.Status,
	})
	o.CustomerName = DeletedCustomer
	if row.CustomerName.Valid {
		o.CustomerName = row.CustomerName.String
	}
	return o
}
