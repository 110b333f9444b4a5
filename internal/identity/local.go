package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type record struct {
	ID          string `gorm:"primaryKey;size:64"`
	Handle      string `gorm:"uniqueIndex;size:64"`
	SecretHash  string `gorm:"size:128"`
	Name        string
	Phone       string `gorm:"size:32"`
	Role        string `gorm:"size:32"`
	ConfirmedAt time.Time
	CreatedAt   time.Time
}

func (record) TableName() string { return "auth_identities" }

// LocalProvider keeps identities in the relational store, for local
// development and tests where no Supabase project is configured.
type LocalProvider struct {
	db *gorm.DB
}

func NewLocalProvider(db *gorm.DB) (*LocalProvider, error) {
	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, err
	}
	return &LocalProvider{db: db}, nil
}

func (p *LocalProvider) CreateIdentity(ctx context.Context, params CreateParams) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(params.Secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	rec := record{
		ID:          uuid.NewString(),
		Handle:      params.Handle,
		SecretHash:  string(hash),
		Name:        params.Name,
		Phone:       params.Phone,
		Role:        params.Role,
		ConfirmedAt: time.Now(),
	}
	if err := p.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (p *LocalProvider) DeleteIdentity(ctx context.Context, id string) error {
	return p.db.WithContext(ctx).Where("id = ?", id).Delete(&record{}).Error
}

// Exists reports whether an identity id is still present. Only used by
// tests to verify the compensating delete.
func (p *LocalProvider) Exists(ctx context.Context, id string) (bool, error) {
	var rec record
	err := p.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
