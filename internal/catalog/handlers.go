package catalog

import (
	"net/http"

	validator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/noah-isme/backend-dentlab/internal/common"
)

// Handler exposes price list endpoints.
type Handler struct {
	service  *Service
	validate *validator.Validate
}

// HandlerConfig configures the Handler dependencies.
type HandlerConfig struct {
	Service   *Service
	Validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	v := cfg.Validator
	if v == nil {
		v = common.NewValidator()
	}
	return &Handler{service: cfg.Service, validate: v}
}

type entryRequest struct {
	Category  string          `json:"category" validate:"required,max=200"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type entryCSV struct {
	ID        int64  `csv:"id"`
	Category  string `csv:"category"`
	UnitPrice string `csv:"unit_price"`
}

// List handles GET /api/v1/price-list.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	entries, err := h.service.List(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": entries})
}

// Categories handles GET /api/v1/price-list/categories.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	names, err := h.service.Categories(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": names})
}

// Create handles POST /api/v1/price-list.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	var req entryRequest
	if err := h.decode(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	entry, err := h.service.Add(r.Context(), req.Category, req.UnitPrice)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": entry})
}

// Update handles PUT /api/v1/price-list/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	id, err := common.IDParam(r, "id")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	var req entryRequest
	if err := h.decode(r, &req); err != nil {
		common.WriteError(w, err)
		return
	}
	entry, err := h.service.Edit(r.Context(), id, req.Category, req.UnitPrice)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": entry})
}

// Delete handles DELETE /api/v1/price-list/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
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

// Export handles GET /api/v1/price-list/export.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog service not configured", nil)
		return
	}
	entries, err := h.service.List(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	rows := make([]entryCSV, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, entryCSV{ID: e.ID, Category: e.Category, UnitPrice: e.UnitPrice.StringFixed(2)})
	}
	common.WriteCSV(w, "price_list.csv", rows)
}

func (h *Handler) decode(r *http.Request, req *entryRequest) error {
	if err := common.DecodeJSON(r, req); err != nil {
		return err
	}
	return common.ValidateStruct(h.validate, req)
}
