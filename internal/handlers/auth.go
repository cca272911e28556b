package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/marwanedjibo1-droid/facturio/internal/auth"
	"github.com/marwanedjibo1-droid/facturio/internal/db"
	"github.com/marwanedjibo1-droid/facturio/internal/httpx"
	"github.com/marwanedjibo1-droid/facturio/internal/models"
	"github.com/marwanedjibo1-droid/facturio/internal/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	DB *gorm.DB
}

func NewAuthHandler(conn *gorm.DB) *AuthHandler {
	return &AuthHandler{DB: conn}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Register: POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	v := make(validation.Violations)
	validation.Required("email", req.Email, v)
	validation.Required("name", req.Name, v)
	if len(req.Password) < 6 {
		v["password"] = "too_short"
	}
	if !v.Empty() {
		httpx.ValidationError(w, v)
		return
	}

	var count int64
	if err := h.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_user", nil)
		return
	}
	if count > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "email_taken", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "hash_failed", nil)
		return
	}
	user := models.User{
		Email:    req.Email,
		Password: string(hash),
		Name:     req.Name,
		Role:     "user",
		IsActive: true,
	}
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		_, err := db.EnsureSettings(tx, user.ID)
		return err
	})
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_user", nil)
		return
	}

	auth.CreateSession(w, user.ID)
	httpx.JSON(w, http.StatusCreated, map[string]any{"user": user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login: POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := h.DB.Where("email = ?", req.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "login_failed", nil)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	if !user.IsActive {
		httpx.JSONError(w, http.StatusUnauthorized, "account_disabled", nil)
		return
	}

	auth.CreateSession(w, user.ID)
	httpx.JSON(w, http.StatusOK, map[string]any{"user": user})
}

// Logout: POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	httpx.JSON(w, http.StatusOK, map[string]any{"message": "logged_out"})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword: PUT /api/auth/password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)) != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}

	if len(req.NewPassword) < 6 {
		httpx.ValidationError(w, validation.Violations{"newPassword": "too_short"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "hash_failed", nil)
		return
	}
	if err := h.DB.Model(&user).Update("password", string(hash)).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_password", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"message": "password_updated"})
}

// Me: GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"user": user})
}
