package handlers

import (
	"net/http"
	"time"

	"github.com/marwanedjibo1-droid/facturio/internal/auth"
	"github.com/marwanedjibo1-droid/facturio/internal/httpx"
	"github.com/marwanedjibo1-droid/facturio/internal/services"
)

type ReportHandler struct {
	Svc *services.InvoiceService
}

func NewReportHandler(svc *services.InvoiceService) *ReportHandler {
	return &ReportHandler{Svc: svc}
}

// Dashboard: GET /api/reports/dashboard
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	stats, err := h.Svc.Dashboard(userID, time.Now())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_compute_dashboard", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": stats})
}

// Sales: GET /api/reports/sales?period=week|month or date_from/date_to
func (h *ReportHandler) Sales(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	now := time.Now()
	from := services.PeriodStart(r.URL.Query().Get("period"), now)
	to := now

	if v := r.URL.Query().Get("date_from"); v != "" {
		if t, err := time.Parse(dateLayout, v); err == nil {
			from = t
		}
	}
	if v := r.URL.Query().Get("date_to"); v != "" {
		if t, err := time.Parse(dateLayout, v); err == nil {
			to = t
		}
	}

	rows, err := h.Svc.SalesReport(userID, from, to)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_compute_report", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"count": len(rows), "data": rows})
}
