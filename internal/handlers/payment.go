package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/marwanedjibo1-droid/facturio/internal/auth"
	"github.com/marwanedjibo1-droid/facturio/internal/httpx"
	"github.com/marwanedjibo1-droid/facturio/internal/models"
	"github.com/marwanedjibo1-droid/facturio/internal/services"
	"gorm.io/gorm"
)

type PaymentHandler struct {
	DB       *gorm.DB
	Svc      *services.InvoiceService
	Activity *services.ActivityService
}

func NewPaymentHandler(conn *gorm.DB, svc *services.InvoiceService, activity *services.ActivityService) *PaymentHandler {
	return &PaymentHandler{DB: conn, Svc: svc, Activity: activity}
}

type paymentRequest struct {
	InvoiceID uint    `json:"invoice_id"`
	Amount    float64 `json:"amount"`
	Date      string  `json:"date"`
	Method    string  `json:"method"`
	Notes     string  `json:"notes"`
}

// Create: POST /api/payments. Records the payment and reconciles the
// invoice's paid amount and status in one transactional step.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.InvoiceID == 0 {
		httpx.ValidationError(w, map[string]string{"invoice_id": "required"})
		return
	}

	var date time.Time
	if req.Date != "" {
		t, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			httpx.ValidationError(w, map[string]string{"date": "invalid_date"})
			return
		}
		date = t
	}

	payment, inv, err := h.Svc.RecordPayment(userID, services.PaymentInput{
		InvoiceID: req.InvoiceID,
		Amount:    req.Amount,
		Date:      date,
		Method:    models.PaymentMethod(req.Method),
		Notes:     req.Notes,
	})
	if err != nil {
		writeServiceError(w, err, "failed_to_record_payment")
		return
	}
	h.Activity.Log(userID, "created", "payment", payment.ID, fmt.Sprintf("%s %.2f", inv.Number, payment.Amount))
	httpx.JSON(w, http.StatusCreated, map[string]any{"data": payment, "invoice": inv})
}

// ListForInvoice: GET /api/invoices/{id}/payments
func (h *PaymentHandler) ListForInvoice(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	payments, err := h.Svc.PaymentsForInvoice(userID, id)
	if err != nil {
		writeServiceError(w, err, "failed_to_list_payments")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"count": len(payments), "data": payments})
}
