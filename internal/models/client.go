package models

import "time"

// Client represents a customer the business bills.
type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// UserID is the owner of this client (tenant isolation)
	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	Name    string `gorm:"size:255;not null" json:"name"`
	Phone   string `gorm:"size:50" json:"phone,omitempty"`
	Email   string `gorm:"size:255" json:"email,omitempty"`
	Address string `gorm:"size:500" json:"address,omitempty"`
	Notes   string `gorm:"type:text" json:"notes,omitempty"`

	IsActive bool `gorm:"not null;default:true" json:"is_active"`

	Invoices []Invoice `gorm:"foreignKey:ClientID" json:"invoices,omitempty"`
}

// ClientWithStats is a client row plus billing aggregates derived at
// query time; unpaid amount and invoice count are never stored.
type ClientWithStats struct {
	Client
	InvoiceCount int64   `json:"invoice_count"`
	UnpaidAmount float64 `json:"unpaid_amount"`
}
