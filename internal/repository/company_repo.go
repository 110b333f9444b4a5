package repository

import (
	"context"

	"ecotrack/internal/domain"

	"gorm.io/gorm"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// FindActiveByCode returns an active company. Soft-deleted and frozen rows
// are filtered out here so missing and retired codes are indistinguishable
// to callers.
func (r *CompanyRepository) FindActiveByCode(ctx context.Context, code string) (*domain.Company, error) {
	var c domain.Company
	tx := r.db.WithContext(ctx).
		Where("code = ? AND status = ?", code, domain.CompanyActive).
		First(&c)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &c, nil
}

func (r *CompanyRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).
		Model(&domain.Company{}).
		Where("code = ?", code).
		Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}

// Create inserts a company. A code collision comes back as
// gorm.ErrDuplicatedKey regardless of the driver, so callers can treat
// it as "pick another code".
func (r *CompanyRepository) Create(ctx context.Context, c *domain.Company) error {
	err := r.db.WithContext(ctx).Create(c).Error
	if isDuplicate(err) {
		return gorm.ErrDuplicatedKey
	}
	return err
}

func (r *CompanyRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Company{}, id).Error
}

// SetOwner backfills the designated owner profile after registration.
func (r *CompanyRepository) SetOwner(ctx context.Context, code string, ownerID int64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Company{}).
		Where("code = ?", code).
		Update("owner_id", ownerID).Error
}
