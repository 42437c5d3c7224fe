package db

import (
	"context"
	"fmt"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/noble-it/hub/internal/config"
	"github.com/noble-it/hub/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured database. Callers must check
// cfg.DatabaseEnabled first; an empty DSN is an error here.
func Open(cfg *config.Config) (*gorm.DB, error) {
	if !cfg.DatabaseEnabled() {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	dialector, err := dialectorFor(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	return gorm.Open(dialector, GormConfig())
}

// GormConfig is shared with the test helpers so both translate driver
// errors the same way.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		Logger: logger.Default.LogMode(logger.Warn),
	}
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	case config.DriverMySQL:
		dsnConfig, err := mysqldriver.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("invalid mysql DSN: %w", err)
		}

		// Incident timestamps are scanned into time.Time.
		dsnConfig.ParseTime = true
		dsnConfig.Loc = time.UTC

		return mysql.New(mysql.Config{
			DSN:       dsnConfig.FormatDSN(),
			DSNConfig: dsnConfig,
		}), nil
	case config.DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

func Migrate(db *gorm.DB) error {
	for _, model := range models.All() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("migrating %T: %w", model, err)
		}
	}

	return nil
}

// Ping checks the underlying connection, used by the health endpoint.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}
