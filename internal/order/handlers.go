package order

import (
	"net/http"
	"strconv"
	"strings"

	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/backend-dentlab/internal/common"
)

// Handler exposes order endpoints.
type Handler struct {
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(service *Service, v *validator.Validate) *Handler {
	if v == nil {
		v = common.NewValidator()
	}
	return &Handler{service: service, validate: v}
}

type orderCSV struct {
	ID          int64  `csv:"id"`
	Customer    string `csv:"customer"`
	Arrival     string `csv:"arrival"`
	Departure   string `csv:"departure"`
	DoctorName  string `csv:"doctor_name"`
	PatientName string `csv:"patient_name"`
	LineItems   string `csv:"line_items"`
	CoWorkers   string `csv:"co_workers"`
	Units       int    `csv:"units"`
	Color       string `csv:"color"`
	Price       string `csv:"price"`
	Status      string `csv:"status"`
}

// List handles GET /api/v1/orders.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	f.Page, f.PerPage = common.ParsePagination(r, h.service.perPage)
	if f.PerPage > maxPerPage {
		f.PerPage = maxPerPage
	}
	orders, total, err := h.service.List(r.Context(), f)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	common.JSON(w, http.StatusOK, map[string]any{
		"data": orders,
		"pagination": common.Pagination{
			Page:       f.Page,
			PerPage:    f.PerPage,
			TotalItems: int(total),
		},
	})
}

// Get handles GET /api/v1/orders/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := common.IDParam(r, "id")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	o, err := h.service.Get(r.Context(), id)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": o})
}

// Create handles POST /api/v1/orders.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := h.decode(r, &in); err != nil {
		common.WriteError(w, err)
		return
	}
	o, err := h.service.Create(r.Context(), in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": o})
}

// Update handles PUT /api/v1/orders/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := common.IDParam(r, "id")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	var in Input
	if err := h.decode(r, &in); err != nil {
		common.WriteError(w, err)
		return
	}
	o, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": o})
}

// Delete handles DELETE /api/v1/orders/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := common.IDParam(r, "id")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		common.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Quote handles POST /api/v1/orders/quote.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var in QuoteInput
	if err := common.DecodeJSON(r, &in); err != nil {
		common.WriteError(w, err)
		return
	}
	if err := common.ValidateStruct(h.validate, &in); err != nil {
		common.WriteError(w, err)
		return
	}
	q, err := h.service.Quote(r.Context(), in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": q})
}

// Export handles GET /api/v1/orders/export with the list filters.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	f.Page, f.PerPage = 1, maxExportRows
	orders, _, err := h.service.List(r.Context(), f)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	rows := make([]orderCSV, 0, len(orders))
	for _, o := range orders {
		row := orderCSV{
			ID:          o.ID,
			Customer:    o.CustomerName,
			Arrival:     o.Arrival.String(),
			DoctorName:  o.DoctorName,
			PatientName: o.PatientName,
			LineItems:   o.LineItems,
			CoWorkers:   strings.Join(o.CoWorkers, ", "),
			Units:       o.Units,
			Color:       o.Color,
			Price:       o.Price.StringFixed(2),
			Status:      o.Status,
		}
		if o.Departure != nil {
			row.Departure = o.Departure.String()
		}
		rows = append(rows, row)
	}
	common.WriteCSV(w, "orders.csv", rows)
}

func (h *Handler) decode(r *http.Request, in *Input) error {
	if err := common.DecodeJSON(r, in); err != nil {
		return err
	}
	return common.ValidateStruct(h.validate, in)
}

func filterFromQuery(r *http.Request) (Filter, error) {
	q := r.URL.Query()
	f := Filter{
		Customer: strings.TrimSpace(q.Get("customer")),
		Doctor:   strings.TrimSpace(q.Get("doctor")),
		Status:   strings.TrimSpace(q.Get("status")),
	}
	if raw := strings.TrimSpace(q.Get("id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return Filter{}, common.Validation("id", "id must be a positive integer")
		}
		f.ID = id
	}
	for _, bound := range []struct {
		name string
		dst  **Date
	}{{"from", &f.From}, {"to", &f.To}} {
		raw := strings.TrimSpace(q.Get(bound.name))
		if raw == "" {
			continue
		}
		d, err := ParseDate(raw)
		if err != nil {
			appErr := common.Validation(bound.name, bound.name+" must be YYYY-MM-DD")
			appErr.Err = err
			return Filter{}, appErr
		}
		*bound.dst = &d
	}
	return f, nil
}
