package services

import (
	"time"

	"github.com/marwanedjibo1-droid/facturio/internal/models"
	"gorm.io/gorm"
)

// PaymentInput is a payment as submitted by the caller.
type PaymentInput struct {
	InvoiceID uint
	Amount    float64
	Date      time.Time
	Method    models.PaymentMethod
	Notes     string
}

// RecordPayment appends a payment to an invoice and reconciles
// paid_amount and status in the same transaction. The arithmetic runs
// at the storage layer (paid_amount = paid_amount + amount with a CASE
// for the status), so two concurrent payments on one invoice serialize
// on the row lock and neither update is lost. Payments that would push
// paid_amount above total are rejected.
func (s *InvoiceService) RecordPayment(userID uint, in PaymentInput) (*models.Payment, *models.Invoice, error) {
	if in.Amount <= 0 {
		return nil, nil, ErrInvalidAmount
	}
	method := in.Method
	if method == "" {
		method = models.PaymentMethodCash
	}
	if !models.ValidPaymentMethod(method) {
		return nil, nil, ErrInvalidAmount
	}

	var payment models.Payment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Invoice{}).
			Where("id = ? AND user_id = ? AND paid_amount + ? <= total", in.InvoiceID, userID, in.Amount).
			Updates(map[string]any{
				"paid_amount": gorm.Expr("paid_amount + ?", in.Amount),
				"status": gorm.Expr(
					"CASE WHEN paid_amount + ? >= total THEN 'paid' WHEN paid_amount + ? > 0 THEN 'partial' ELSE status END",
					in.Amount, in.Amount,
				),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Either the invoice does not exist for this tenant or the
			// payment would overpay it; tell the two apart.
			var count int64
			if err := tx.Model(&models.Invoice{}).Where("id = ? AND user_id = ?", in.InvoiceID, userID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrNotFound
			}
			return ErrOverPayment
		}

		date := in.Date
		if date.IsZero() {
			date = time.Now()
		}
		payment = models.Payment{
			InvoiceID: in.InvoiceID,
			Amount:    in.Amount,
			Date:      models.DateOnly(date),
			Method:    method,
			Notes:     in.Notes,
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		return nil, nil, err
	}

	inv, err := s.Get(userID, in.InvoiceID)
	if err != nil {
		return nil, nil, err
	}
	return &payment, inv, nil
}

// PaymentsForInvoice lists an invoice's payments, newest first.
func (s *InvoiceService) PaymentsForInvoice(userID, invoiceID uint) ([]models.Payment, error) {
	var count int64
	if err := s.db.Model(&models.Invoice{}).Where("id = ? AND user_id = ?", invoiceID, userID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNotFound
	}
	payments := []models.Payment{}
	err := s.db.Where("invoice_id = ?", invoiceID).Order("date DESC, id DESC").Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}
