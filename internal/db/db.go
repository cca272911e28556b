package db

import (
	"fmt"
	"time"

	"github.com/marwanedjibo1-droid/facturio/internal/config"
	"github.com/marwanedjibo1-droid/facturio/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the database described by cfg. Postgres connections are
// retried a few times to ride out container startup ordering.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	log := logger.WithComponent("db")

	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

	var dial gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dial = postgres.Open(cfg.DSN)
	case "sqlite", "":
		dial = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}

	var conn *gorm.DB
	var err error
	for i := 0; i < 5; i++ {
		conn, err = gorm.Open(dial, gormCfg)
		if err == nil {
			break
		}
		log.Warn().Err(err).Int("attempt", i+1).Msg("database connection failed, retrying")
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	return conn, nil
}
