package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/marwanedjibo1-droid/facturio/internal/auth"
	"github.com/marwanedjibo1-droid/facturio/internal/db"
	"github.com/marwanedjibo1-droid/facturio/internal/httpx"
	"github.com/marwanedjibo1-droid/facturio/internal/validation"
	"gorm.io/gorm"
)

type SettingsHandler struct {
	DB *gorm.DB
}

func NewSettingsHandler(conn *gorm.DB) *SettingsHandler {
	return &SettingsHandler{DB: conn}
}

type settingsRequest struct {
	CompanyName    *string  `json:"company_name"`
	CompanyPhone   *string  `json:"company_phone"`
	CompanyAddress *string  `json:"company_address"`
	InvoicePrefix  *string  `json:"invoice_prefix"`
	TaxRate        *float64 `json:"tax_rate"`
	Currency       *string  `json:"currency"`
}

// View: GET /api/settings
func (h *SettingsHandler) View(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	settings, err := db.EnsureSettings(h.DB, userID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_settings", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": settings})
}

// Update: PUT /api/settings. Upsert; the invoice counter itself is
// only ever advanced by invoice creation, not through this endpoint.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}

	v := make(validation.Violations)
	if req.TaxRate != nil {
		validation.RangeFloat("tax_rate", *req.TaxRate, 0, 100, v)
	}
	if !v.Empty() {
		httpx.ValidationError(w, v)
		return
	}

	settings, err := db.EnsureSettings(h.DB, userID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_settings", nil)
		return
	}

	if req.CompanyName != nil {
		settings.CompanyName = *req.CompanyName
	}
	if req.CompanyPhone != nil {
		settings.CompanyPhone = *req.CompanyPhone
	}
	if req.CompanyAddress != nil {
		settings.CompanyAddress = *req.CompanyAddress
	}
	if req.InvoicePrefix != nil {
		settings.InvoicePrefix = *req.InvoicePrefix
	}
	if req.TaxRate != nil {
		settings.TaxRate = *req.TaxRate
	}
	if req.Currency != nil {
		settings.Currency = *req.Currency
	}

	if err := h.DB.Save(settings).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_settings", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": settings})
}
