package customer

import (
	"net/http"
	"strconv"
	"strings"

	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/backend-dentlab/internal/common"
)

// Handler exposes customer endpoints.
type Handler struct {
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler. A nil validator gets the lab defaults.
func NewHandler(service *Service, v *validator.Validate) *Handler {
	if v == nil {
		v = common.NewValidator()
	}
	return &Handler{service: service, validate: v}
}

type customerCSV struct {
	ID        int64  `csv:"id"`
	Name      string `csv:"name"`
	Phone     string `csv:"phone"`
	Category  string `csv:"category"`
	Notes     string `csv:"notes"`
	PriceTier string `csv:"price_tier"`
}

// List handles GET /api/v1/customers?name=&id=&category=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context(), filterFromQuery(r))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": list})
}

// Get handles GET /api/v1/customers/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := common.IDParam(r, "id")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": c})
}

// Create handles POST /api/v1/customers.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := h.decode(r, &in); err != nil {
		common.WriteError(w, err)
		return
	}
	c, err := h.service.Create(r.Context(), in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": c})
}

// Update handles PUT /api/v1/customers/{id}.
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
	c, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": c})
}

// Delete handles DELETE /api/v1/customers/{id}.
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

// Export handles GET /api/v1/customers/export.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context(), filterFromQuery(r))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	rows := make([]customerCSV, 0, len(list))
	for _, c := range list {
		rows = append(rows, customerCSV{
			ID:        c.ID,
			Name:      c.Name,
			Phone:     c.Phone,
			Category:  c.Category,
			Notes:     c.Notes,
			PriceTier: string(c.PriceTier),
		})
	}
	common.WriteCSV(w, "customers.csv", rows)
}

func (h *Handler) decode(r *http.Request, in *Input) error {
	if err := common.DecodeJSON(r, in); err != nil {
		return err
	}
	return common.ValidateStruct(h.validate, in)
}

func filterFromQuery(r *http.Request) Filter {
	q := r.URL.Query()
	f := Filter{
		Name:     strings.TrimSpace(q.Get("name")),
		Category: strings.TrimSpace(q.Get("category")),
	}
	if id, err := strconv.ParseInt(strings.TrimSpace(q.Get("id")), 10, 64); err == nil && id > 0 {
		f.ID = id
	}
	return f
}
