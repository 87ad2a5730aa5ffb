package supplier

import (
	"net/http"

	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/backend-dentlab/internal/common"
)

// Handler exposes supplier endpoints.
type Handler struct {
	service  *Service
	validate *validator.Validate
}

func NewHandler(service *Service, v *validator.Validate) *Handler {
	if v == nil {
		v = common.NewValidator()
	}
	return &Handler{service: service, validate: v}
}

type supplierCSV struct {
	ID   int64  `csv:"id"`
	Name string `csv:"name"`
	Type string `csv:"type"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": list})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := common.IDParam(r, "id")
	if err != nil {
		common.WriteError(w, err)
		return
	}
	sp, err := h.service.Get(r.Context(), id)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": sp})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := h.decode(r, &in); err != nil {
		common.WriteError(w, err)
		return
	}
	sp, err := h.service.Create(r.Context(), in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": sp})
}

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
	sp, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": sp})
}

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

// Export handles GET /api/v1/suppliers/export.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}
	rows := make([]supplierCSV, 0, len(list))
	for _, sp := range list {
		rows = append(rows, supplierCSV(sp))
	}
	common.WriteCSV(w, "suppliers.csv", rows)
}

func (h *Handler) decode(r *http.Request, in *Input) error {
	if err := common.DecodeJSON(r, in); err != nil {
		return err
	}
	return common.ValidateStruct(h.validate, in)
}
