package domain

import (
	"time"

	"gorm.io/gorm"
)

type CompanyStatus string

const (
	CompanyActive CompanyStatus = "active"
	CompanyFrozen CompanyStatus = "frozen"
)

type MasterCodeStatus string

const (
	MasterCodeAvailable MasterCodeStatus = "available"
	MasterCodeUsed      MasterCodeStatus = "used"
)

// Company is a waste-collection operator. Code is the public join code
// clients, drivers and managers use to associate themselves with it.
type Company struct {
	ID           int64          `json:"id" gorm:"primaryKey"`
	Code         string         `json:"code" gorm:"size:16;uniqueIndex"`
	Name         string         `json:"name"`
	Status       CompanyStatus  `json:"status" gorm:"size:16;default:active"`
	MasterCodeID *int64         `json:"master_code_id,omitempty"`
	OwnerID      *int64         `json:"owner_id,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// MasterCode is a single-use provisioning token. It transitions
// available -> used exactly once and never reverts.
type MasterCode struct {
	ID        int64            `json:"id" gorm:"primaryKey"`
	Code      string           `json:"code" gorm:"size:32;uniqueIndex"`
	Status    MasterCodeStatus `json:"status" gorm:"size:16;default:available"`
	CompanyID *int64           `json:"company_id,omitempty" gorm:"uniqueIndex"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Region belongs to exactly one company. The first region created at
// provisioning time is the default region for subsequent joiners.
type Region struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	CompanyCode string    `json:"company_code" gorm:"size:16;index"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
}

// WasteType is a material category a company collects.
type WasteType struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	CompanyCode string    `json:"company_code" gorm:"size:16;index"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
}
