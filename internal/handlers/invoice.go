package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/marwanedjibo1-droid/facturio/internal/auth"
	"github.com/marwanedjibo1-droid/facturio/internal/httpx"
	"github.com/marwanedjibo1-droid/facturio/internal/models"
	"github.com/marwanedjibo1-droid/facturio/internal/services"
	"github.com/marwanedjibo1-droid/facturio/internal/validation"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type InvoiceHandler struct {
	DB       *gorm.DB
	Svc      *services.InvoiceService
	Activity *services.ActivityService
}

func NewInvoiceHandler(conn *gorm.DB, svc *services.InvoiceService, activity *services.ActivityService) *InvoiceHandler {
	return &InvoiceHandler{DB: conn, Svc: svc, Activity: activity}
}

type invoiceItemRequest struct {
	Description     string  `json:"description"`
	Quantity        float64 `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	DiscountPercent float64 `json:"discount_percent"`
}

type invoiceRequest struct {
	ClientID uint                 `json:"client_id"`
	Date     string               `json:"date"`
	DueDate  string               `json:"due_date"`
	TaxRate  *float64             `json:"tax_rate"`
	Notes    *string              `json:"notes"`
	Status   string               `json:"status"`
	Items    []invoiceItemRequest `json:"items"`
}

func validateItems(items []invoiceItemRequest, v validation.Violations) []services.ItemInput {
	inputs := make([]services.ItemInput, 0, len(items))
	for _, it := range items {
		validation.Required("items.description", it.Description, v)
		validation.NonNegativeFloat("items.quantity", it.Quantity, v)
		validation.NonNegativeFloat("items.unit_price", it.UnitPrice, v)
		validation.RangeFloat("items.discount_percent", it.DiscountPercent, 0, 100, v)
		inputs = append(inputs, services.ItemInput{
			Description:     it.Description,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			DiscountPercent: it.DiscountPercent,
		})
	}
	return inputs
}

// List: GET /api/invoices with status/client_id/date_from/date_to/search filters.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	limit, offset := pagination(r, 100)

	q := h.DB.Model(&models.Invoice{}).Where("invoices.user_id = ?", userID)
	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("invoices.status = ?", status)
	}
	if clientID := r.URL.Query().Get("client_id"); clientID != "" {
		q = q.Where("invoices.client_id = ?", clientID)
	}
	if from := r.URL.Query().Get("date_from"); from != "" {
		if t, err := time.Parse(dateLayout, from); err == nil {
			q = q.Where("invoices.date >= ?", t)
		}
	}
	if to := r.URL.Query().Get("date_to"); to != "" {
		if t, err := time.Parse(dateLayout, to); err == nil {
			q = q.Where("invoices.date <= ?", t)
		}
	}
	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Joins("LEFT JOIN clients ON clients.id = invoices.client_id").
			Where("LOWER(invoices.number) LIKE ? OR LOWER(clients.name) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}

	invoices := []models.Invoice{}
	err := q.Preload("Client").
		Order("invoices.date DESC, invoices.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&invoices).Error
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"count": len(invoices), "total": total, "data": invoices})
}

// Create: POST /api/invoices
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req invoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}

	v := make(validation.Violations)
	if req.ClientID == 0 {
		v["client_id"] = "required"
	}
	if len(req.Items) == 0 {
		v["items"] = "required"
	}
	if req.TaxRate != nil {
		validation.RangeFloat("tax_rate", *req.TaxRate, 0, 100, v)
	}
	items := validateItems(req.Items, v)

	date := time.Now()
	if req.Date != "" {
		t, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			v["date"] = "invalid_date"
		} else {
			date = t
		}
	}
	dueDate := date.AddDate(0, 0, 30)
	if req.DueDate != "" {
		t, err := time.Parse(dateLayout, req.DueDate)
		if err != nil {
			v["due_date"] = "invalid_date"
		} else {
			dueDate = t
		}
	}
	if !v.Empty() {
		httpx.ValidationError(w, v)
		return
	}

	notes := ""
	if req.Notes != nil {
		notes = *req.Notes
	}
	inv, err := h.Svc.Create(userID, services.CreateInvoiceInput{
		ClientID: req.ClientID,
		Date:     date,
		DueDate:  dueDate,
		TaxRate:  req.TaxRate,
		Notes:    notes,
		Status:   models.InvoiceStatus(req.Status),
		Items:    items,
	})
	if err != nil {
		writeServiceError(w, err, "failed_to_create_invoice")
		return
	}
	h.Activity.Log(userID, "created", "invoice", inv.ID, inv.Number)
	httpx.JSON(w, http.StatusCreated, map[string]any{"data": inv})
}

// View: GET /api/invoices/{id}
func (h *InvoiceHandler) View(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	inv, err := h.Svc.Get(userID, id)
	if err != nil {
		writeServiceError(w, err, "failed_to_load_invoice")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": inv})
}

// Update: PUT /api/invoices/{id}
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}

	var req invoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}

	v := make(validation.Violations)
	in := services.UpdateInvoiceInput{
		TaxRate: req.TaxRate,
		Notes:   req.Notes,
		Status:  models.InvoiceStatus(req.Status),
	}
	if req.TaxRate != nil {
		validation.RangeFloat("tax_rate", *req.TaxRate, 0, 100, v)
	}
	if req.Date != "" {
		t, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			v["date"] = "invalid_date"
		} else {
			in.Date = &t
		}
	}
	if req.DueDate != "" {
		t, err := time.Parse(dateLayout, req.DueDate)
		if err != nil {
			v["due_date"] = "invalid_date"
		} else {
			in.DueDate = &t
		}
	}
	if req.Items != nil {
		in.Items = validateItems(req.Items, v)
	}
	if !v.Empty() {
		httpx.ValidationError(w, v)
		return
	}

	inv, err := h.Svc.Update(userID, id, in)
	if err != nil {
		writeServiceError(w, err, "failed_to_update_invoice")
		return
	}
	h.Activity.Log(userID, "updated", "invoice", inv.ID, inv.Number)
	httpx.JSON(w, http.StatusOK, map[string]any{"data": inv})
}

// Delete: DELETE /api/invoices/{id}
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Svc.Delete(userID, id); err != nil {
		writeServiceError(w, err, "failed_to_delete_invoice")
		return
	}
	h.Activity.Log(userID, "deleted", "invoice", id, "")
	httpx.JSON(w, http.StatusOK, map[string]any{"message": "invoice_deleted"})
}

// Stats: GET /api/invoices/stats?period=today|week|month|year
func (h *InvoiceHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	stats, err := h.Svc.Stats(userID, r.URL.Query().Get("period"), time.Now())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_compute_stats", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": stats})
}

// NextNumber: GET /api/invoices/next-number. Preview only, never increments.
func (h *InvoiceHandler) NextNumber(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	number, err := h.Svc.NextNumber(userID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_read_counter", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": map[string]string{"number": number}})
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// writeServiceError maps service errors onto HTTP responses.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, services.ErrInvalidAmount):
		httpx.JSONError(w, http.StatusBadRequest, "invalid_amount", nil)
	case errors.Is(err, services.ErrOverPayment):
		httpx.JSONError(w, http.StatusBadRequest, "over_payment", nil)
	case errors.Is(err, services.ErrInvalidStatus):
		httpx.JSONError(w, http.StatusBadRequest, "invalid_status", nil)
	case errors.Is(err, services.ErrStatusLocked):
		httpx.JSONError(w, http.StatusBadRequest, "status_locked", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, fallback, nil)
	}
}
