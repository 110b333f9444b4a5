package domain

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleClient       UserRole = "client"
	RoleDriver       UserRole = "driver"
	RoleManager      UserRole = "manager"
	RoleCompanyAdmin UserRole = "company_admin"
)

// ValidRole reports whether role is one of the roles accepted by registration.
func ValidRole(role UserRole) bool {
	switch role {
	case RoleClient, RoleDriver, RoleManager, RoleCompanyAdmin:
		return true
	}
	return false
}

// User is a platform profile. A row with a nil AuthID is a shadow contact:
// it was created ahead of time (e.g. by a manager) and can later be claimed
// by the real person registering with the same phone number.
type User struct {
	ID          int64          `json:"id" gorm:"primaryKey"`
	AuthID      *string        `json:"-" gorm:"column:auth_id;size:64;uniqueIndex"`
	Name        string         `json:"name"`
	// The partial index makes storage the arbiter of "one claimed profile
	// per phone" while still letting a shadow row share the number until
	// it is claimed.
	Phone       string         `json:"phone" gorm:"size:32;index;index:idx_users_phone_claimed,unique,where:auth_id IS NOT NULL"`
	Address     string         `json:"address,omitempty"`
	Latitude    *float64       `json:"latitude,omitempty"`
	Longitude   *float64       `json:"longitude,omitempty"`
	Role        UserRole       `json:"role" gorm:"size:32"`
	CompanyCode *string        `json:"company_code,omitempty" gorm:"size:16;index"`
	RegionID    *int64         `json:"region_id,omitempty"`
	IsOwner     bool           `json:"is_owner"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// IsShadow reports whether the profile has no linked auth identity yet.
func (u *User) IsShadow() bool { return u.AuthID == nil }
