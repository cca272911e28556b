package services

import (
	"errors"
	"testing"
	"time"

	"github.com/marwanedjibo1-droid/facturio/internal/models"
)

func TestInvoiceCreate_ComputesFinancialFields(t *testing.T) {
	conn := setupTestDB(t)
	user, client := seedFixtures(t, conn)
	svc := NewInvoiceService(conn)

	inv := createTestInvoice(t, svc, user.ID, client.ID, []ItemInput{
		{Description: "Sacs de riz", Quantity: 2, UnitPrice: 50000},
		{Description: "Huile", Quantity: 1, UnitPrice: 30000, DiscountPercent: 10},
	}, 18)

	if !almostEqual(inv.Subtotal, 127000) {
		t.Errorf("subtotal = %f, want 127000", inv.Subtotal)
	}
	if !almostEqual(inv.TaxAmount, 22860) {
		t.Errorf("tax amount = %f, want 22860", inv.TaxAmount)
	}
	if !almostEqual(inv.Total, 149860) {
		t.Errorf("total = %f, want 149860", inv.Total)
	}
	if inv.Status != models.InvoiceStatusUnpaid {
		t.Errorf("status = %q, want unpaid", inv.Status)
	}
	if inv.PaidAmount != 0 {
		t.Errorf("paid amount = %f, want 0", inv.PaidAmount)
	}
	if len(inv.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(inv.Items))
	}
	if inv.Items[0].Description != "Sacs de riz" || inv.Items[1].Description != "Huile" {
		t.Errorf("item order not preserved: %q, %q", inv.Items[0].Description, inv.Items[1].Description)
	}
	if inv.Payments == nil || len(inv.Payments) != 0 {
		t.Errorf("payments should be an empty slice, got %#v", inv.Payments)
	}
}

func TestInvoiceCreate_DefaultTaxRateFromSettings(t *testing.T) {
	conn := setupTestDB(t)
	user, client := seedFixtures(t, conn)
	svc := NewInvoiceService(conn)

	inv, err := svc.Create(user.ID, CreateInvoiceInput{
		ClientID: client.ID,
		Date:     time.Now(),
		DueDate:  time.Now().AddDate(0, 0, 30),
		Items:    []ItemInput{{Description: "Service", Quantity: 1, UnitPrice: 100}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// Default settings carry an 18% rate.
	if !almostEqual(inv.TaxRate, 18) {
		t.Errorf("tax rate = %f, want 18 (settings default)", inv.TaxRate)
	}
	if !almostEqual(inv.Total, 118) {
		t.Errorf("total = %f, want 118", inv.Total)
	}
}

func TestInvoiceCreate_PendingOverride(t *testing.T) {
	conn := setupTestDB(t)
	user, client := seedFixtures(t, conn)
	svc := NewInvoiceService(conn)

	inv, err := svc.Create(user.ID, CreateInvoiceInput{
		ClientID: client.ID,
		Date:     time.Now(),
		DueDate:  time.Now(),
		Status:   models.InvoiceStatusPending,
		Items:    []ItemInput{{Description: "x", Quantity: 1, UnitPrice: 100}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inv.Status != models.InvoiceStatusPending {
		t.Errorf("status = %q, want pending", inv.Status)
	}
}

func TestInvoiceCreate_RejectsDerivedStatusOverride(t *testing.T) {
	conn := setupTestDB(t)
	user, client := seedFixtures(t, conn)
	svc := NewInvoiceService(conn)

	for _, status := range []models.InvoiceStatus{models.InvoiceStatusPaid, models.InvoiceStatusPartial, "draft"} {
		_, err := svc.Create(user.ID, CreateInvoiceInput{
			ClientID: client.ID,
			Status:   status,
			Items:    []ItemInput{{Description: "x", Quantity: 1, UnitPrice: 100}},
		})
		if !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("status %q: err = %v, want ErrInvalidStatus", status, err)
		}
	}
}

func TestInvoiceCreate_UnknownClient(t *testing.T) {
	conn := setupTestDB(t)
	user, _ := seedFixtures(t, conn)
	svc := NewInvoiceService(conn)

	_, err := svc.Create(user.ID, CreateInvoiceInput{
		ClientID: 4242,
		Items:    []ItemInput{{Description: "x", Quantity: 1, UnitPrice: 100}},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestInvoiceCreate_OtherTenantsClient(t *testing.T) {
	conn := setupTestDB(t)
	user, _ := seedFixtures(t, conn)
	svc := NewInvoiceService(conn)

	other := models.User{Email: "other@test", Password: "x", Name: "O", IsActive: true}
	if err := conn.Create(&other).Error; err != nil {
		t.Fatalf("other: %v", err)
	}
	foreign := models.Client{UserID: other.ID, Name: "Foreign", IsActive: true}
	if err := conn.Create(&foreign).Error; err != nil {
		t.Fatalf("foreign: %v", err)
	}

	_, err := svc.Create(user.ID, CreateInvoiceInput{
		ClientID: foreign.ID,
		Items:    []ItemInput{{Description: "x", Quantity: 1, UnitPrice: 100}},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound for another tenant's client", err)
	}
}

func TestInvoiceUpdate_ReplacesItemsAndRecomputes(t *testing.T) {
	conn := setupTestDB(t)
	user, client := seedFixtures(t, conn)
	svc := NewInvoiceService(conn)

	inv := createTestInvoice(t, svc, user.ID, client.ID, []ItemInput{
		{Description: "Old", Quantity: 1, UnitPrice: 100},
	}, 18)

	updated, err := svc.Update(user.ID, inv.ID, UpdateInvoiceInput{
		Items: []ItemInput{
			{Description: "New A", Quantity: 2, UnitPrice: 50000},
			{Description: "New B", Quantity: 1, UnitPrice: 30000, DiscountPercent: 10},
		},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(updated.Items))
	}
	if !almostEqual(updated.Subtotal, 127000) || !almostEqual(updated.Total, 149860) {
		t.Errorf("totals = (%f, %f), want (127000, 149860)", updated.Subtotal, updated.Total)
	}
	if updated.Number != inv.Number {
		t.Errorf("number changed on update: %q -> %q", inv.Number, updated.Number)
	}

	var count int64
	conn.Model(&models.InvoiceItem{}).Where("invoice_id = ?", inv.ID).Count(&count)
	if count != 2 {
		t.Errorf("stored items = %d, want 2 (old lines removed)", count)
	}
}

func TestInvoiceUpdate_StatusLockedOncePaid(t *testing.T) {
	conn := setupTestDB(t)
	user, client := seedFixtures(t, conn)
	svc := NewInvoiceService(conn)

	inv := createTestInvoice(t, svc, user.ID, client.ID, []ItemInput{
		{Description: "x", Quantity: 1, UnitPrice: 1000},
	}, 0)

	if _, _, err := svc.RecordPayment(user.ID, PaymentInput{InvoiceID: inv.ID, Amount: 400}); err != nil {
		t.Fatalf("payment: %v", err)
	}

	_, err := svc.Update(user.ID, inv.ID, UpdateInvoiceInput{Status: models.InvoiceStatusPending})
	if !errors.Is(err, ErrStatusLocked) {
		t.Errorf("err = %v, want ErrStatusLocked", err)
	}
}

func TestInvoiceUpdate_ShrinkingTotalBelowPaidMarksPaid(t *testing.T) {
	conn := setupTestDB(t)
	user, client := seedFixtures(t, conn)
	svc := NewInvoiceService(conn)

	inv := createTestInvoice(t, svc, user.ID, client.ID, []ItemInput{
		{Description: "x", Quantity: 1, UnitPrice: 1000},
	}, 0)
	if _, _, err := svc.RecordPayment(user.ID, PaymentInput{InvoiceID: inv.ID, Amount: 600}); err != nil {
		t.Fatalf("payment: %v", err)
	}

	updated, err := svc.Update(user.ID, inv.ID, UpdateInvoiceInput{
		Items: []ItemInput{{Description: "x", Quantity: 1, UnitPrice: 500}},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != models.InvoiceStatusPaid {
		t.Errorf("status = %q, want paid once total drops below paid amount", updated.Status)
	}
}

func TestInvoiceDelete_RemovesItemsAndPayments(t *testing.T) {
	conn := setupTestDB(t)
	user, client := seedFixtures(t, conn)
	svc := NewInvoiceService(conn)

	inv := createTestInvoice(t, svc, user.ID, client.ID, []ItemInput{
		{Description: "x", Quantity: 1, UnitPrice: 1000},
	}, 0)
	if _, _, err := svc.RecordPayment(user.ID, PaymentInput{InvoiceID: inv.ID, Amount: 300}); err != nil {
		t.Fatalf("payment: %v", err)
	}

	if err := svc.Delete(user.ID, inv.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var items, payments int64
	conn.Model(&models.InvoiceItem{}).Where("invoice_id = ?", inv.ID).Count(&items)
	conn.Model(&models.Payment{}).Where("invoice_id = ?", inv.ID).Count(&payments)
	if items != 0 || payments != 0 {
		t.Errorf("leftover rows after delete: items=%d payments=%d", items, payments)
	}

	if _, err := svc.Get(user.ID, inv.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete: err = %v, want ErrNotFound", err)
	}
}
