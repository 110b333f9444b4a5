package registration

import (
	"context"

	"ecotrack/internal/domain"
	"ecotrack/internal/modules/company"
)

// UserStore — only the profile operations the saga needs.
type UserStore interface {
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	ClaimShadow(ctx context.Context, u *domain.User) error
}

// CompanyDirectory is the company side of onboarding, implemented by the
// company module's service.
type CompanyDirectory interface {
	ResolveJoinCode(ctx context.Context, code string) (*domain.Company, error)
	DefaultRegion(ctx context.Context, companyCode string) (int64, error)
	Provision(ctx context.Context, masterCode, ownerName string) (*company.Provisioned, error)
	AssignOwner(ctx context.Context, companyCode string, ownerID int64) error
}
