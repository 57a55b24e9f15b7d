// internal/domain/seed/repository.go
package seed

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Repository is the table store for seed listings
type Repository interface {
	List(ctx context.Context) ([]Seed, error)
	ListByFarmer(ctx context.Context, farmer string) ([]Seed, error)
	FindByID(ctx context.Context, id uint) (*Seed, error)
	Create(ctx context.Context, s *Seed) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a gorm-backed seed repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) List(ctx context.Context) ([]Seed, error) {
	var seeds []Seed
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&seeds).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch seeds: %w", err)
	}
	return seeds, nil
}

func (r *gormRepository) ListByFarmer(ctx context.Context, farmer string) ([]Seed, error) {
	var seeds []Seed
	err := r.db.WithContext(ctx).Where("farmer = ?", farmer).Order("id ASC").Find(&seeds).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch your seeds: %w", err)
	}
	return seeds, nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uint) (*Seed, error) {
	var s Seed
	err := r.db.WithContext(ctx).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSeedNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seed %d: %w", id, err)
	}
	return &s, nil
}

func (r *gormRepository) Create(ctx context.Context, s *Seed) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("failed to add seed: %w", err)
	}
	return nil
}
