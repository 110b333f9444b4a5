package repository

import (
	"context"

	"ecotrack/internal/domain"

	"gorm.io/gorm"
)

type WasteTypeRepository struct {
	db *gorm.DB
}

func NewWasteTypeRepository(db *gorm.DB) *WasteTypeRepository {
	return &WasteTypeRepository{db: db}
}

func (r *WasteTypeRepository) CreateBatch(ctx context.Context, types []domain.WasteType) error {
	if len(types) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&types).Error
}

func (r *WasteTypeRepository) ListByCompany(ctx context.Context, companyCode string) ([]domain.WasteType, error) {
	var types []domain.WasteType
	tx := r.db.WithContext(ctx).
		Where("company_code = ?", companyCode).
		Order("id ASC").
		Find(&types)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return types, nil
}
