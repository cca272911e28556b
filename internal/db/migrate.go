package db

import (
	"errors"
	"fmt"
	"strings"

	migrate "github.com/golang-migrate/migrate/v4"
	// Register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/marwanedjibo1-droid/facturio/internal/models"
	"gorm.io/gorm"
)

// Migrate brings the schema up to date via GORM AutoMigrate. This is
// the sqlite/dev path; postgres deployments use MigrateSQL instead.
func Migrate(conn *gorm.DB) error {
	toMigrate := []any{
		&models.User{},
		&models.Client{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.Payment{},
		&models.Settings{},
		&models.Activity{},
	}
	for _, m := range toMigrate {
		if err := conn.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}

	// sanity check: ensure required core tables exist
	for _, table := range []string{"users", "invoices", "payments", "settings"} {
		if !conn.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}

// MigrateSQL applies the versioned SQL migrations under dir against a
// postgres DSN using golang-migrate.
func MigrateSQL(dsn, dir string) error {
	if !strings.HasPrefix(strings.ToLower(dsn), "postgres://") && !strings.HasPrefix(strings.ToLower(dsn), "postgresql://") {
		return fmt.Errorf("sql migrations require a postgres URL DSN, got %q", dsn)
	}
	m, err := migrate.New("file://"+dir, dsn)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
