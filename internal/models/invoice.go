package models

import (
	"time"
)

// InvoiceStatus represents the payment status of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusPartial InvoiceStatus = "partial"
	InvoiceStatusUnpaid  InvoiceStatus = "unpaid"
	InvoiceStatusPending InvoiceStatus = "pending"
)

// ValidStatus reports whether s is one of the known invoice statuses.
func ValidStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceStatusPaid, InvoiceStatusPartial, InvoiceStatusUnpaid, InvoiceStatusPending:
		return true
	}
	return false
}

// StatusFor derives the status from the accumulated paid amount.
// A zero paid amount keeps the prior status, so a manual "pending"
// marker survives until the first payment lands.
func StatusFor(paidAmount, total float64, prior InvoiceStatus) InvoiceStatus {
	switch {
	case paidAmount >= total && paidAmount > 0:
		return InvoiceStatusPaid
	case paidAmount > 0:
		return InvoiceStatusPartial
	default:
		return prior
	}
}

// Invoice is a billing document issued to a client.
type Invoice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// UserID is the owner of this invoice (tenant isolation)
	UserID uint `gorm:"index;not null;uniqueIndex:idx_invoices_user_number" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	// Number is assigned once at creation from the tenant counter and never changes.
	Number string `gorm:"size:50;not null;uniqueIndex:idx_invoices_user_number" json:"number"`

	ClientID uint    `gorm:"index;not null" json:"client_id"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	Date    time.Time `gorm:"type:date;not null" json:"date"`
	DueDate time.Time `gorm:"type:date;not null" json:"due_date"`

	// Financial fields, maintained by the invoice service.
	Subtotal   float64 `gorm:"not null" json:"subtotal"`
	TaxRate    float64 `gorm:"not null" json:"tax_rate"`
	TaxAmount  float64 `gorm:"not null" json:"tax_amount"`
	Total      float64 `gorm:"not null" json:"total"`
	PaidAmount float64 `gorm:"not null;default:0" json:"paid_amount"`

	Status InvoiceStatus `gorm:"size:20;not null;default:'unpaid'" json:"status"`
	Notes  string        `gorm:"type:text" json:"notes,omitempty"`

	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
	Payments []Payment     `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"payments"`
}

// IsPaid returns true once payments cover the full total.
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// Balance returns the remaining amount due.
func (i *Invoice) Balance() float64 {
	return i.Total - i.PaidAmount
}

// IsOverdue reports whether the invoice is past due and not fully paid.
func (i *Invoice) IsOverdue(now time.Time) bool {
	return !i.IsPaid() && i.DueDate.Before(truncateToDay(now))
}

// InvoiceItem is one billable line on an invoice.
type InvoiceItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	InvoiceID uint `gorm:"index;not null" json:"invoice_id"`

	Description     string  `gorm:"size:500;not null" json:"description"`
	Quantity        float64 `gorm:"not null" json:"quantity"`
	UnitPrice       float64 `gorm:"not null" json:"unit_price"`
	DiscountPercent float64 `gorm:"not null;default:0" json:"discount_percent"`

	// Total is the stored line total, kept for display and export.
	Total float64 `gorm:"not null" json:"total"`

	// Position preserves the entered item order.
	Position int `gorm:"not null;default:0" json:"position"`
}

// LineTotal computes quantity × unit price with the per-line discount applied.
func (it *InvoiceItem) LineTotal() float64 {
	return it.Quantity * it.UnitPrice * (1 - it.DiscountPercent/100)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateOnly normalizes a timestamp to its UTC date, for the date-typed columns.
func DateOnly(t time.Time) time.Time {
	return truncateToDay(t)
}
