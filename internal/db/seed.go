package db

import (
	"errors"

	"github.com/marwanedjibo1-droid/facturio/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed creates a default admin account with its settings row when the
// users table is empty. Safe to call on every start.
func Seed(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Email:    "admin@facturio.local",
		Password: string(hash),
		Name:     "Administrateur",
		Role:     "admin",
		IsActive: true,
	}
	return conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		settings := models.DefaultSettings(admin.ID)
		if err := tx.Create(&settings).Error; err != nil {
			return err
		}
		return nil
	})
}

// EnsureSettings fetches the settings row for a user, creating the
// defaults when it does not exist yet.
func EnsureSettings(tx *gorm.DB, userID uint) (*models.Settings, error) {
	var s models.Settings
	err := tx.Where("user_id = ?", userID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s = models.DefaultSettings(userID)
		if err := tx.Create(&s).Error; err != nil {
			return nil, err
		}
		return &s, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
