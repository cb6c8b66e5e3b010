package config

import (
	"fmt"
	"log/slog"
	"time"

	"eventpro-backend/clock"
	"eventpro-backend/monitoring"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB opens the store selected by DB_DRIVER and tunes its pool.
func ConnectDB(cfg Database, clk clock.Clock) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.URL + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	default:
		dialector = postgres.Open(cfg.URL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Warn),
		NowFunc: clk.Now,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(time.Minute)

	if err := registerQueryMetrics(db); err != nil {
		return nil, err
	}

	slog.Info("Connected to database", "driver", cfg.Driver)
	return db, nil
}

func registerQueryMetrics(db *gorm.DB) error {
	count := func(*gorm.DB) { monitoring.DatabaseQueries.Inc() }
	cb := db.Callback()
	if err := cb.Query().After("gorm:query").Register("metrics:query", count); err != nil {
		return fmt.Errorf("register query metrics: %w", err)
	}
	if err := cb.Create().After("gorm:create").Register("metrics:create", count); err != nil {
		return fmt.Errorf("register create metrics: %w", err)
	}
	if err := cb.Update().After("gorm:update").Register("metrics:update", count); err != nil {
		return fmt.Errorf("register update metrics: %w", err)
	}
	if err := cb.Delete().After("gorm:delete").Register("metrics:delete", count); err != nil {
		return fmt.Errorf("register delete metrics: %w", err)
	}
	return nil
}
