package company

import (
	"context"

	"ecotrack/internal/domain"
)

// CompanyStore — only the methods the company service uses.
type CompanyStore interface {
	FindActiveByCode(ctx context.Context, code string) (*domain.Company, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Create(ctx context.Context, c *domain.Company) error
	Delete(ctx context.Context, id int64) error
	SetOwner(ctx context.Context, code string, ownerID int64) error
}

type MasterCodeStore interface {
	FindAvailable(ctx context.Context, code string) (*domain.MasterCode, error)
	Redeem(ctx context.Context, id int64, companyID int64) error
}

type RegionStore interface {
	Create(ctx context.Context, region *domain.Region) error
	OldestByCompany(ctx context.Context, companyCode string) (*domain.Region, error)
}

type WasteTypeStore interface {
	CreateBatch(ctx context.Context, types []domain.WasteType) error
}
