package services

import (
	"errors"
	"time"

	"github.com/marwanedjibo1-droid/facturio/internal/db"
	"github.com/marwanedjibo1-droid/facturio/internal/models"
	"gorm.io/gorm"
)

// InvoiceService owns the invoice lifecycle: total computation, number
// allocation, item edits and payment reconciliation.
type InvoiceService struct {
	db *gorm.DB
}

func NewInvoiceService(conn *gorm.DB) *InvoiceService {
	return &InvoiceService{db: conn}
}

// ItemInput is one line item as submitted by the caller. Values are
// assumed validated (non-negative quantity/price, discount in [0,100]).
type ItemInput struct {
	Description     string  `json:"description"`
	Quantity        float64 `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	DiscountPercent float64 `json:"discount_percent"`
}

// CreateInvoiceInput carries everything needed to create an invoice.
type CreateInvoiceInput struct {
	ClientID uint
	Date     time.Time
	DueDate  time.Time
	// TaxRate in percent; nil means use the tenant's default rate.
	TaxRate *float64
	Notes   string
	// Status may override the initial "unpaid", e.g. marking a draft
	// "pending". Empty means unpaid.
	Status models.InvoiceStatus
	Items  []ItemInput
}

// UpdateInvoiceInput carries an invoice edit. Nil fields keep their
// current value; a non-nil Items slice replaces all line items.
type UpdateInvoiceInput struct {
	Date    *time.Time
	DueDate *time.Time
	TaxRate *float64
	Notes   *string
	Status  models.InvoiceStatus
	Items   []ItemInput
}

func buildItems(inputs []ItemInput) []models.InvoiceItem {
	items := make([]models.InvoiceItem, 0, len(inputs))
	for i, in := range inputs {
		item := models.InvoiceItem{
			Description:     in.Description,
			Quantity:        in.Quantity,
			UnitPrice:       in.UnitPrice,
			DiscountPercent: in.DiscountPercent,
			Position:        i,
		}
		item.Total = item.LineTotal()
		items = append(items, item)
	}
	return items
}

// Create allocates the invoice number, computes the financial fields
// and persists the header with its items, all in one transaction. A
// failure anywhere rolls the whole thing back, number included.
func (s *InvoiceService) Create(userID uint, in CreateInvoiceInput) (*models.Invoice, error) {
	var client models.Client
	if err := s.db.Where("id = ? AND user_id = ?", in.ClientID, userID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.InvoiceStatusUnpaid
	}
	if !models.ValidStatus(status) || status == models.InvoiceStatusPaid || status == models.InvoiceStatusPartial {
		return nil, ErrInvalidStatus
	}

	var created models.Invoice
	err := s.db.Transaction(func(tx *gorm.DB) error {
		settings, err := db.EnsureSettings(tx, userID)
		if err != nil {
			return err
		}

		taxRate := settings.TaxRate
		if in.TaxRate != nil {
			taxRate = *in.TaxRate
		}

		number, err := allocateNumber(tx, userID)
		if err != nil {
			return err
		}

		items := buildItems(in.Items)
		subtotal, taxAmount, total := ComputeTotals(items, taxRate)

		created = models.Invoice{
			UserID:    userID,
			ClientID:  in.ClientID,
			Number:    number,
			Date:      models.DateOnly(in.Date),
			DueDate:   models.DateOnly(in.DueDate),
			Subtotal:  subtotal,
			TaxRate:   taxRate,
			TaxAmount: taxAmount,
			Total:     total,
			Status:    status,
			Notes:     in.Notes,
			Items:     items,
			Payments:  []models.Payment{},
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(userID, created.ID)
}

// Update edits an invoice. When items are present they replace the
// existing lines and the financial fields are recomputed; the status is
// re-derived from the accumulated payments afterwards, so it can only
// be overridden manually (to pending/unpaid) while nothing is paid.
func (s *InvoiceService) Update(userID, invoiceID uint, in UpdateInvoiceInput) (*models.Invoice, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var inv models.Invoice
		if err := tx.Where("id = ? AND user_id = ?", invoiceID, userID).Preload("Items").First(&inv).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if in.Date != nil {
			inv.Date = models.DateOnly(*in.Date)
		}
		if in.DueDate != nil {
			inv.DueDate = models.DateOnly(*in.DueDate)
		}
		if in.TaxRate != nil {
			inv.TaxRate = *in.TaxRate
		}
		if in.Notes != nil {
			inv.Notes = *in.Notes
		}

		if in.Items != nil {
			if err := tx.Where("invoice_id = ?", inv.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
				return err
			}
			items := buildItems(in.Items)
			for i := range items {
				items[i].InvoiceID = inv.ID
			}
			if len(items) > 0 {
				if err := tx.Create(&items).Error; err != nil {
					return err
				}
			}
			inv.Items = items
		}

		inv.Subtotal, inv.TaxAmount, inv.Total = ComputeTotals(inv.Items, inv.TaxRate)

		prior := inv.Status
		if in.Status != "" {
			if !models.ValidStatus(in.Status) {
				return ErrInvalidStatus
			}
			if inv.PaidAmount > 0 {
				return ErrStatusLocked
			}
			if in.Status == models.InvoiceStatusPaid || in.Status == models.InvoiceStatusPartial {
				return ErrInvalidStatus
			}
			prior = in.Status
		}
		inv.Status = models.StatusFor(inv.PaidAmount, inv.Total, prior)

		return tx.Model(&models.Invoice{}).Where("id = ?", inv.ID).Updates(map[string]any{
			"date":       inv.Date,
			"due_date":   inv.DueDate,
			"tax_rate":   inv.TaxRate,
			"notes":      inv.Notes,
			"subtotal":   inv.Subtotal,
			"tax_amount": inv.TaxAmount,
			"total":      inv.Total,
			"status":     inv.Status,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(userID, invoiceID)
}

// Get loads one invoice with items, payments and client.
func (s *InvoiceService) Get(userID, invoiceID uint) (*models.Invoice, error) {
	var inv models.Invoice
	err := s.db.Where("id = ? AND user_id = ?", invoiceID, userID).
		Preload("Client").
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		Preload("Payments", func(tx *gorm.DB) *gorm.DB { return tx.Order("date DESC, id DESC") }).
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if inv.Items == nil {
		inv.Items = []models.InvoiceItem{}
	}
	if inv.Payments == nil {
		inv.Payments = []models.Payment{}
	}
	return &inv, nil
}

// Delete removes an invoice with its items and payments.
func (s *InvoiceService) Delete(userID, invoiceID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var inv models.Invoice
		if err := tx.Where("id = ? AND user_id = ?", invoiceID, userID).First(&inv).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("invoice_id = ?", inv.ID).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", inv.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&inv).Error
	})
}
