package repository

import (
	"context"
	"errors"

	"ecotrack/internal/domain"

	"gorm.io/gorm"
)

// ErrMasterCodeUnavailable is returned when the guarded available -> used
// transition finds the code already consumed.
var ErrMasterCodeUnavailable = errors.New("master code is not available")

type MasterCodeRepository struct {
	db *gorm.DB
}

func NewMasterCodeRepository(db *gorm.DB) *MasterCodeRepository {
	return &MasterCodeRepository{db: db}
}

func (r *MasterCodeRepository) FindAvailable(ctx context.Context, code string) (*domain.MasterCode, error) {
	var mc domain.MasterCode
	tx := r.db.WithContext(ctx).
		Where("code = ? AND status = ?", code, domain.MasterCodeAvailable).
		First(&mc)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &mc, nil
}

func (r *MasterCodeRepository) Create(ctx context.Context, mc *domain.MasterCode) error {
	return r.db.WithContext(ctx).Create(mc).Error
}

// Redeem marks a master code used and links it to the company it
// provisioned. The update is guarded on the expected prior status; the
// application check alone does not rule out two requests passing the
// available lookup concurrently.
func (r *MasterCodeRepository) Redeem(ctx context.Context, id int64, companyID int64) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.MasterCode{}).
		Where("id = ? AND status = ?", id, domain.MasterCodeAvailable).
		Updates(map[string]any{
			"status":     domain.MasterCodeUsed,
			"company_id": companyID,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrMasterCodeUnavailable
	}
	return nil
}
