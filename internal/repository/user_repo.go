package repository

import (
	"context"
	"errors"

	"ecotrack/internal/domain"

	"gorm.io/gorm"
)

// ErrShadowAlreadyClaimed is returned when a shadow profile acquired an
// identity link between resolution and the claim write (double-claim race).
var ErrShadowAlreadyClaimed = errors.New("shadow profile already claimed")

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByPhone returns the profile row for a phone number, shadow or not.
// gorm.ErrRecordNotFound means the phone is unclaimed.
func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var u domain.User
	tx := r.db.WithContext(ctx).Where("phone = ?", phone).First(&u)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// ClaimShadow attaches an identity to a shadow row in place, preserving its
// id. The write is guarded on the identity link still being null, so a
// losing concurrent claim surfaces ErrShadowAlreadyClaimed instead of
// silently overwriting.
func (r *UserRepository) ClaimShadow(ctx context.Context, u *domain.User) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ? AND auth_id IS NULL", u.ID).
		Updates(map[string]any{
			"auth_id":      u.AuthID,
			"name":         u.Name,
			"address":      u.Address,
			"latitude":     u.Latitude,
			"longitude":    u.Longitude,
			"role":         u.Role,
			"company_code": u.CompanyCode,
			"region_id":    u.RegionID,
			"is_owner":     u.IsOwner,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrShadowAlreadyClaimed
	}
	return nil
}
