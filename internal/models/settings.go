package models

import "time"

// Settings holds per-tenant invoicing preferences, including the
// invoice numbering counter. InvoiceNumber is the NEXT value to be
// assigned; allocation increments it inside the creation transaction.
type Settings struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint `gorm:"not null;uniqueIndex" json:"user_id"`

	CompanyName    string `gorm:"size:255" json:"company_name,omitempty"`
	CompanyPhone   string `gorm:"size:50" json:"company_phone,omitempty"`
	CompanyAddress string `gorm:"size:500" json:"company_address,omitempty"`

	InvoicePrefix string `gorm:"size:20;not null;default:'F-'" json:"invoice_prefix"`
	InvoiceNumber int64  `gorm:"not null;default:1" json:"invoice_number"`

	// TaxRate is the default rate in percent applied to new invoices.
	TaxRate  float64 `gorm:"not null;default:18" json:"tax_rate"`
	Currency string  `gorm:"size:10;not null;default:'XOF'" json:"currency"`
}

// DefaultSettings returns the settings a fresh tenant starts with.
func DefaultSettings(userID uint) Settings {
	return Settings{
		UserID:        userID,
		InvoicePrefix: "F-",
		InvoiceNumber: 1,
		TaxRate:       18,
		Currency:      "XOF",
	}
}
