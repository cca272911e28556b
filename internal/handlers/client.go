package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/marwanedjibo1-droid/facturio/internal/auth"
	"github.com/marwanedjibo1-droid/facturio/internal/httpx"
	"github.com/marwanedjibo1-droid/facturio/internal/models"
	"github.com/marwanedjibo1-droid/facturio/internal/services"
	"github.com/marwanedjibo1-droid/facturio/internal/validation"
	"gorm.io/gorm"
)

type ClientHandler struct {
	DB       *gorm.DB
	Activity *services.ActivityService
}

func NewClientHandler(conn *gorm.DB, activity *services.ActivityService) *ClientHandler {
	return &ClientHandler{DB: conn, Activity: activity}
}

type clientRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Notes    string `json:"notes"`
	IsActive *bool  `json:"is_active"`
}

// List: GET /api/clients?search=&limit=&offset=
// Each row carries the derived invoice count and unpaid balance.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	limit, offset := pagination(r, 100)
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	q := h.DB.Model(&models.Client{}).
		Select(`clients.*,
			(SELECT COUNT(*) FROM invoices WHERE invoices.client_id = clients.id) AS invoice_count,
			(SELECT COALESCE(SUM(total - paid_amount), 0) FROM invoices WHERE invoices.client_id = clients.id AND invoices.status <> 'paid') AS unpaid_amount`).
		Where("clients.user_id = ?", userID)
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(clients.name) LIKE ? OR clients.phone LIKE ?", like, "%"+search+"%")
	}

	clients := []models.ClientWithStats{}
	if err := q.Order("clients.name ASC").Limit(limit).Offset(offset).Scan(&clients).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_clients", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"count": len(clients), "data": clients})
}

// Create: POST /api/clients
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := make(validation.Violations)
	validation.Required("name", req.Name, v)
	if !v.Empty() {
		httpx.ValidationError(w, v)
		return
	}

	client := models.Client{
		UserID:   userID,
		Name:     strings.TrimSpace(req.Name),
		Phone:    req.Phone,
		Email:    req.Email,
		Address:  req.Address,
		Notes:    req.Notes,
		IsActive: true,
	}
	if err := h.DB.Create(&client).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_client", nil)
		return
	}
	h.Activity.Log(userID, "created", "client", client.ID, client.Name)
	httpx.JSON(w, http.StatusCreated, map[string]any{"data": client})
}

// View: GET /api/clients/{id}
func (h *ClientHandler) View(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	var client models.Client
	if err := h.DB.Where("id = ? AND user_id = ?", id, userID).First(&client).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "client_not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"data": client})
}

// Update: PUT /api/clients/{id}
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	var client models.Client
	if err := h.DB.Where("id = ? AND user_id = ?", id, userID).First(&client).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "client_not_found", nil)
		return
	}

	var req clientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.Name != "" {
		client.Name = strings.TrimSpace(req.Name)
	}
	client.Phone = req.Phone
	client.Email = req.Email
	client.Address = req.Address
	client.Notes = req.Notes
	if req.IsActive != nil {
		client.IsActive = *req.IsActive
	}

	if err := h.DB.Save(&client).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_client", nil)
		return
	}
	h.Activity.Log(userID, "updated", "client", client.ID, client.Name)
	httpx.JSON(w, http.StatusOK, map[string]any{"data": client})
}

// Delete: DELETE /api/clients/{id}
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id := r.PathValue("id")

	var client models.Client
	if err := h.DB.Where("id = ? AND user_id = ?", id, userID).First(&client).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "client_not_found", nil)
		return
	}
	if err := h.DB.Delete(&client).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_client", nil)
		return
	}
	h.Activity.Log(userID, "deleted", "client", client.ID, client.Name)
	httpx.JSON(w, http.StatusOK, map[string]any{"message": "client_deleted"})
}

// pagination reads limit/offset query params with a default page size.
func pagination(r *http.Request, defLimit int) (limit, offset int) {
	limit = defLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			offset = n
		}
	}
	return limit, offset
}
