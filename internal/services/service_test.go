package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/marwanedjibo1-droid/facturio/internal/db"
	"github.com/marwanedjibo1-droid/facturio/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// One connection keeps concurrent transactions queued instead of
	// tripping sqlite's shared-cache table locks.
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

// seedFixtures creates a user with settings and one client.
func seedFixtures(t *testing.T, conn *gorm.DB) (user models.User, client models.Client) {
	t.Helper()
	user = models.User{Email: "biz@test", Password: "x", Name: "Biz", Role: "user", IsActive: true}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("user: %v", err)
	}
	settings := models.DefaultSettings(user.ID)
	if err := conn.Create(&settings).Error; err != nil {
		t.Fatalf("settings: %v", err)
	}
	client = models.Client{UserID: user.ID, Name: "ClientCo", Phone: "+221770000000", IsActive: true}
	if err := conn.Create(&client).Error; err != nil {
		t.Fatalf("client: %v", err)
	}
	return user, client
}

// createTestInvoice makes an invoice through the service, failing the test on error.
func createTestInvoice(t *testing.T, svc *InvoiceService, userID, clientID uint, items []ItemInput, taxRate float64) *models.Invoice {
	t.Helper()
	inv, err := svc.Create(userID, CreateInvoiceInput{
		ClientID: clientID,
		Date:     time.Now(),
		DueDate:  time.Now().AddDate(0, 0, 30),
		TaxRate:  &taxRate,
		Items:    items,
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	return inv
}
