package services

import (
	"sync"
	"testing"
	"time"

	"github.com/marwanedjibo1-droid/facturio/internal/models"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		prefix  string
		counter int64
		want    string
	}{
		{"F-", 1234, "F-001234"},
		{"F-", 1, "F-000001"},
		{"INV/", 42, "INV/000042"},
		{"", 7, "000007"},
		{"F-", 1000000, "F-1000000"}, // counter outgrows the padding
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.prefix, tt.counter); got != tt.want {
			t.Errorf("FormatNumber(%q, %d) = %q, want %q", tt.prefix, tt.counter, got, tt.want)
		}
	}
}

func TestNextNumber_PreviewDoesNotConsume(t *testing.T) {
	conn := setupTestDB(t)
	user, _ := seedFixtures(t, conn)
	svc := NewInvoiceService(conn)

	for i := 0; i < 3; i++ {
		got, err := svc.NextNumber(user.ID)
		if err != nil {
			t.Fatalf("NextNumber: %v", err)
		}
		if got != "F-000001" {
			t.Errorf("NextNumber() = %q, want F-000001", got)
		}
	}
}

func TestNumbering_SequentialAllocation(t *testing.T) {
	conn := setupTestDB(t)
	user, client := seedFixtures(t, conn)
	svc := NewInvoiceService(conn)

	items := []ItemInput{{Description: "Service", Quantity: 1, UnitPrice: 1000}}

	first := createTestInvoice(t, svc, user.ID, client.ID, items, 18)
	if first.Number != "F-000001" {
		t.Errorf("first invoice number = %q, want F-000001", first.Number)
	}

	second := createTestInvoice(t, svc, user.ID, client.ID, items, 18)
	if second.Number != "F-000002" {
		t.Errorf("second invoice number = %q, want F-000002", second.Number)
	}

	next, err := svc.NextNumber(user.ID)
	if err != nil {
		t.Fatalf("NextNumber: %v", err)
	}
	if next != "F-000003" {
		t.Errorf("NextNumber() after two creations = %q, want F-000003", next)
	}
}

func TestNumbering_FailedCreationConsumesNoNumber(t *testing.T) {
	conn := setupTestDB(t)
	user, _ := seedFixtures(t, conn)
	svc := NewInvoiceService(conn)

	// Unknown client makes the creation fail before the transaction commits.
	_, err := svc.Create(user.ID, CreateInvoiceInput{ClientID: 9999, Items: []ItemInput{{Description: "x", Quantity: 1, UnitPrice: 1}}})
	if err == nil {
		t.Fatal("expected error for unknown client")
	}

	next, err := svc.NextNumber(user.ID)
	if err != nil {
		t.Fatalf("NextNumber: %v", err)
	}
	if next != "F-000001" {
		t.Errorf("NextNumber() = %q, want F-000001 (no number consumed)", next)
	}
}

func TestNumbering_ConcurrentCreationsGetDistinctNumbers(t *testing.T) {
	conn := setupTestDB(t)
	user, client := seedFixtures(t, conn)
	svc := NewInvoiceService(conn)

	const n = 5
	var wg sync.WaitGroup
	numbers := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			inv, err := svc.Create(user.ID, CreateInvoiceInput{
				ClientID: client.ID,
				Date:     time.Now(),
				DueDate:  time.Now().AddDate(0, 0, 30),
				TaxRate:  new(float64),
				Items:    []ItemInput{{Description: "x", Quantity: 1, UnitPrice: 100}},
			})
			errs[i] = err
			if err == nil {
				numbers[i] = inv.Number
			}
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("creation %d failed: %v", i, err)
		}
	}
	seen := make(map[string]bool, n)
	for _, number := range numbers {
		if seen[number] {
			t.Errorf("duplicate number %q", number)
		}
		seen[number] = true
	}

	next, err := svc.NextNumber(user.ID)
	if err != nil {
		t.Fatalf("NextNumber: %v", err)
	}
	if want := FormatNumber("F-", n+1); next != want {
		t.Errorf("NextNumber() = %q, want %q", next, want)
	}
}

func TestNumbering_TenantsAreIsolated(t *testing.T) {
	conn := setupTestDB(t)
	user, client := seedFixtures(t, conn)
	svc := NewInvoiceService(conn)

	other := models.User{Email: "other@test", Password: "x", Name: "Other", IsActive: true}
	if err := conn.Create(&other).Error; err != nil {
		t.Fatalf("other user: %v", err)
	}
	otherClient := models.Client{UserID: other.ID, Name: "OtherCo", IsActive: true}
	if err := conn.Create(&otherClient).Error; err != nil {
		t.Fatalf("other client: %v", err)
	}

	items := []ItemInput{{Description: "Service", Quantity: 1, UnitPrice: 500}}
	a := createTestInvoice(t, svc, user.ID, client.ID, items, 18)
	b := createTestInvoice(t, svc, other.ID, otherClient.ID, items, 18)

	if a.Number != "F-000001" || b.Number != "F-000001" {
		t.Errorf("each tenant starts its own sequence: got %q and %q", a.Number, b.Number)
	}
}
