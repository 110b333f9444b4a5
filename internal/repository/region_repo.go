package repository

import (
	"context"

	"ecotrack/internal/domain"

	"gorm.io/gorm"
)

type RegionRepository struct {
	db *gorm.DB
}

func NewRegionRepository(db *gorm.DB) *RegionRepository {
	return &RegionRepository{db: db}
}

func (r *RegionRepository) Create(ctx context.Context, region *domain.Region) error {
	return r.db.WithContext(ctx).Create(region).Error
}

// OldestByCompany returns the company's first region in insertion order,
// which is the default region for joiners.
func (r *RegionRepository) OldestByCompany(ctx context.Context, companyCode string) (*domain.Region, error) {
	var region domain.Region
	tx := r.db.WithContext(ctx).
		Where("company_code = ?", companyCode).
		Order("id ASC").
		First(&region)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &region, nil
}
