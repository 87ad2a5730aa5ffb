package analytics

import (
	"net/http"

	"github.com/noah-isme/backend-dentlab/internal/common"
)

// Handler exposes analytics read endpoints.
type Handler struct {
	Svc *Service
}

func filterFromQuery(r *http.Request) Filter {
	q := r.URL.Query()
	return Filter{Years: common.IntList(q.Get("years")), Months: common.IntList(q.Get("months"))}
}

// Overview returns the dashboard counters.
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "ANALYTICS_NOT_CONFIGURED", "analytics service not configured", nil)
		return
	}
	out, err := h.Svc.Overview(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "ANALYTICS_ERROR", "failed to load overview", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": out})
}

// Report returns every report section for ?years=&months=&top=.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "ANALYTICS_NOT_CONFIGURED", "analytics service not configured", nil)
		return
	}
	top := common.AtoiDefault(r.URL.Query().Get("top"), 0)
	if top < 0 {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "top must not be negative", nil)
		return
	}
	report, err := h.Svc.Report(r.Context(), filterFromQuery(r), top)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "ANALYTICS_ERROR", "failed to build report", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": report})
}

// Revenue returns revenue per arrival month.
func (h *Handler) Revenue(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "ANALYTICS_NOT_CONFIGURED", "analytics service not configured", nil)
		return
	}
	rows, err := h.Svc.Revenue(r.Context(), filterFromQuery(r))
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "ANALYTICS_ERROR", "failed to load revenue", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rows})
}

// Categories returns category popularity and prorated revenue.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "ANALYTICS_NOT_CONFIGURED", "analytics service not configured", nil)
		return
	}
	rows, err := h.Svc.Categories(r.Context(), filterFromQuery(r))
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "ANALYTICS_ERROR", "failed to load categories", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rows})
}
