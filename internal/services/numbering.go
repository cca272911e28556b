package services

import (
	"fmt"

	"github.com/marwanedjibo1-droid/facturio/internal/db"
	"github.com/marwanedjibo1-droid/facturio/internal/models"
	"gorm.io/gorm"
)

// FormatNumber renders a counter value as an invoice number,
// e.g. prefix "F-" and counter 1234 give "F-001234".
func FormatNumber(prefix string, counter int64) string {
	return fmt.Sprintf("%s%06d", prefix, counter)
}

// NextNumber previews the number the next invoice will get. Pure read;
// the counter is only consumed inside the creation transaction.
func (s *InvoiceService) NextNumber(userID uint) (string, error) {
	settings, err := db.EnsureSettings(s.db, userID)
	if err != nil {
		return "", err
	}
	return FormatNumber(settings.InvoicePrefix, settings.InvoiceNumber), nil
}

// allocateNumber claims the tenant's next invoice number inside tx.
// The storage-side increment takes the settings row lock, so two
// concurrent creations for the same tenant are serialized and get
// distinct numbers; a rolled-back creation releases the number with it.
func allocateNumber(tx *gorm.DB, userID uint) (string, error) {
	if _, err := db.EnsureSettings(tx, userID); err != nil {
		return "", err
	}
	res := tx.Model(&models.Settings{}).
		Where("user_id = ?", userID).
		Update("invoice_number", gorm.Expr("invoice_number + 1"))
	if res.Error != nil {
		return "", res.Error
	}
	var settings models.Settings
	if err := tx.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		return "", err
	}
	return FormatNumber(settings.InvoicePrefix, settings.InvoiceNumber-1), nil
}
