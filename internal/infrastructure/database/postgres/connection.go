// internal/infrastructure/database/postgres/connection.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/seed-marketplace/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB wraps the gorm connection
type DB struct {
	gorm *gorm.DB
}

// NewConnection opens the table store and configures its pool
func NewConnection(cfg *config.Config, logger *logrus.Logger) (*DB, error) {
	logLevel := gormlogger.Warn
	if cfg.App.Debug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), &gorm.Config{
		Logger: gormlogger.New(logger, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	logger.WithFields(logrus.Fields{
		"host":     cfg.Database.Host,
		"database": cfg.Database.Name,
	}).Info("database connection established")

	return &DB{gorm: db}, nil
}

// GetDB returns the gorm handle
func (d *DB) GetDB() *gorm.DB {
	return d.gorm
}

// Health pings the database
func (d *DB) Health(ctx context.Context) error {
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying pool
func (d *DB) Close() error {
	sqlDB, err := d.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
