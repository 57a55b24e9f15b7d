// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/seed-marketplace/internal/domain/seed"
	"github.com/your-org/seed-marketplace/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, logger *logrus.Logger) *Migration {
	return &Migration{
		db:     db,
		logger: logger,
	}
}

// Models lists every table the service owns
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&seed.Seed{},
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	m.logger.Info("running database auto-migrations")

	for _, model := range Models() {
		m.logger.Debugf("migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	m.logger.Info("database auto-migrations completed")
	return nil
}

var indexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_seeds_created_at ON seeds (created_at DESC)",
	"CREATE INDEX IF NOT EXISTS idx_seeds_name_lower ON seeds (LOWER(name))",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users (LOWER(email))",
}

// CreateIndexes creates indexes gorm tags cannot express. Failures are
// counted and logged, not fatal.
func (m *Migration) CreateIndexes() error {
	var failed int
	for _, stmt := range indexes {
		if err := m.db.Exec(stmt).Error; err != nil {
			m.logger.WithError(err).WithField("sql", stmt).Warn("failed to create index")
			failed++
		}
	}

	m.logger.WithFields(logrus.Fields{
		"created": len(indexes) - failed,
		"failed":  failed,
	}).Info("database indexes ensured")

	if failed > 0 {
		return fmt.Errorf("%d of %d indexes failed", failed, len(indexes))
	}
	return nil
}

// Demo account created by SeedInitialData
const (
	DemoFarmerEmail    = "farmer@example.com"
	DemoFarmerPassword = "farmer123"
	DemoFarmerName     = "Demo Farmer"
)

// SeedInitialData adds a demo farmer and a few listings for local development
func (m *Migration) SeedInitialData() error {
	if err := m.seedDemoFarmer(); err != nil {
		return err
	}
	return m.seedDemoListings()
}

func (m *Migration) seedDemoFarmer() error {
	var existing user.User
	err := m.db.Where("email = ?", DemoFarmerEmail).First(&existing).Error
	if err == nil {
		m.logger.WithField("user_id", existing.ID).Debug("demo farmer already exists")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(DemoFarmerPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	farmer := user.User{
		Email:    DemoFarmerEmail,
		Password: string(hashedPassword),
		FullName: DemoFarmerName,
	}
	if err := m.db.Create(&farmer).Error; err != nil {
		return fmt.Errorf("failed to create demo farmer: %w", err)
	}

	m.logger.WithField("email", DemoFarmerEmail).Info("created demo farmer")
	return nil
}

func (m *Migration) seedDemoListings() error {
	var count int64
	if err := m.db.Model(&seed.Seed{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	listings := []seed.Seed{
		{Name: "Hybrid Tomato", Quality: "High Quality", Price: 12000, Farmer: DemoFarmerName},
		{Name: "Basmati Paddy", Quality: "Medium Quality", Price: 8500, Farmer: DemoFarmerName},
		{Name: "Desi Okra", Quality: "High Quality", Price: 5000, Farmer: DemoFarmerName},
	}
	if err := m.db.Create(&listings).Error; err != nil {
		return fmt.Errorf("failed to seed listings: %w", err)
	}

	m.logger.WithField("count", len(listings)).Info("seeded demo listings")
	return nil
}
