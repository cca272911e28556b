package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/marwanedjibo1-droid/facturio/internal/auth"
	"github.com/marwanedjibo1-droid/facturio/internal/db"
	"github.com/marwanedjibo1-droid/facturio/internal/models"
	"github.com/marwanedjibo1-droid/facturio/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
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

// seedTenant creates a user with default settings and one client.
func seedTenant(t *testing.T, conn *gorm.DB) (models.User, models.Client) {
	t.Helper()
	user := models.User{Email: "owner@test", Password: "x", Name: "Owner", Role: "user", IsActive: true}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("user: %v", err)
	}
	settings := models.DefaultSettings(user.ID)
	if err := conn.Create(&settings).Error; err != nil {
		t.Fatalf("settings: %v", err)
	}
	client := models.Client{UserID: user.ID, Name: "Boutique Awa", Phone: "771234567", IsActive: true}
	if err := conn.Create(&client).Error; err != nil {
		t.Fatalf("client: %v", err)
	}
	return user, client
}

// authedRequest builds a request carrying the user id in its context,
// the way the session middleware would after validating the cookie.
func authedRequest(method, target string, body string, userID uint) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(auth.WithUserID(req.Context(), userID))
}

// mustCreateInvoice makes an invoice through the service, dated today.
func mustCreateInvoice(t *testing.T, svc *services.InvoiceService, userID, clientID uint, items []services.ItemInput, taxRate float64) *models.Invoice {
	t.Helper()
	inv, err := svc.Create(userID, services.CreateInvoiceInput{
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

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v body=%s", err, w.Body.String())
	}
	return out
}
