package models

import "time"

// PaymentMethod is how a payment was made.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodCheck    PaymentMethod = "check"
	PaymentMethodOther    PaymentMethod = "other"
)

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodCheck, PaymentMethodOther:
		return true
	}
	return false
}

// Payment records money received against an invoice. Payments are
// insert-only; there is no update or delete path.
type Payment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	InvoiceID uint `gorm:"index;not null" json:"invoice_id"`

	Amount float64       `gorm:"not null" json:"amount"`
	Date   time.Time     `gorm:"type:date;not null" json:"date"`
	Method PaymentMethod `gorm:"size:20;not null" json:"method"`
	Notes  string        `gorm:"type:text" json:"notes,omitempty"`
}
