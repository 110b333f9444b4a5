package company

import (
	"context"
	"errors"
	"fmt"

	"ecotrack/internal/domain"
	"ecotrack/internal/pkg/codes"
	"ecotrack/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// allocationAttempts bounds the unique-code retry loop. The candidate space
// (32^4) dwarfs concurrent registration volume, so exhausting this is a
// sign something is wrong, not a condition to wait out.
const allocationAttempts = 20

// starterWasteTypes is the fixed category set seeded for every new company.
var starterWasteTypes = []string{"Plastic", "Paper", "Glass"}

// Provisioned is the outcome of a master-code redemption. Region is nil
// when default-region seeding failed; the company still counts as created.
type Provisioned struct {
	Company *domain.Company
	Region  *domain.Region
}

// Service contains the company-side business logic of onboarding:
// join-code resolution, provisioning from master codes, default regions.
type Service struct {
	companies   CompanyStore
	masterCodes MasterCodeStore
	regions     RegionStore
	wasteTypes  WasteTypeStore
	gen         *codes.Generator
	logger      *zap.Logger
}

func NewService(
	companies CompanyStore,
	masterCodes MasterCodeStore,
	regions RegionStore,
	wasteTypes WasteTypeStore,
	gen *codes.Generator,
	logger *zap.Logger,
) *Service {
	return &Service{
		companies:   companies,
		masterCodes: masterCodes,
		regions:     regions,
		wasteTypes:  wasteTypes,
		gen:         gen,
		logger:      logger,
	}
}

// ResolveJoinCode validates a public join code and returns the company
// behind it. Malformed, missing and retired codes all come back ErrNotFound.
func (s *Service) ResolveJoinCode(ctx context.Context, rawCode string) (*domain.Company, error) {
	code := codes.Normalize(rawCode)
	if !codes.IsCompanyCode(code) {
		return nil, ErrNotFound
	}

	c, err := s.companies.FindActiveByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup company %s: %w", code, err)
	}
	return c, nil
}

// DefaultRegion returns the company's oldest region. A company without any
// region is a provisioning defect that needs operator intervention, not a
// retryable condition.
func (s *Service) DefaultRegion(ctx context.Context, companyCode string) (int64, error) {
	region, err := s.regions.OldestByCompany(ctx, companyCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNoRegionAvailable
		}
		return 0, fmt.Errorf("lookup default region for %s: %w", companyCode, err)
	}
	return region.ID, nil
}

// Provision redeems a one-time master code: allocates a unique join code,
// creates the company and seeds its default region and starter categories.
// Seeding failures are logged and swallowed; everything before that aborts.
func (s *Service) Provision(ctx context.Context, rawMasterCode, ownerName string) (*Provisioned, error) {
	masterCode := codes.Normalize(rawMasterCode)
	if !codes.IsMasterCode(masterCode) {
		return nil, ErrInvalidMasterCode
	}

	mc, err := s.masterCodes.FindAvailable(ctx, masterCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidMasterCode
		}
		return nil, fmt.Errorf("lookup master code: %w", err)
	}

	comp, err := s.createWithUniqueCode(ctx, ownerName, mc.ID)
	if err != nil {
		return nil, err
	}

	if err := s.masterCodes.Redeem(ctx, mc.ID, comp.ID); err != nil {
		// A concurrent redemption won the guarded transition after our
		// availability check. Drop the company we just created so the race
		// leaves exactly one winner, and report the code as gone.
		if delErr := s.companies.Delete(ctx, comp.ID); delErr != nil {
			s.logger.Error("failed to remove company after losing master-code race",
				zap.String("company_code", comp.Code),
				zap.Error(delErr),
			)
		}
		if errors.Is(err, repository.ErrMasterCodeUnavailable) {
			return nil, ErrInvalidMasterCode
		}
		return nil, fmt.Errorf("redeem master code: %w", err)
	}

	result := &Provisioned{Company: comp}

	region := &domain.Region{CompanyCode: comp.Code, Name: comp.Name}
	if err := s.regions.Create(ctx, region); err != nil {
		s.logger.Warn("failed to seed default region, company created without one",
			zap.String("company_code", comp.Code),
			zap.Error(err),
		)
	} else {
		result.Region = region
	}

	types := make([]domain.WasteType, 0, len(starterWasteTypes))
	for _, name := range starterWasteTypes {
		types = append(types, domain.WasteType{CompanyCode: comp.Code, Name: name})
	}
	if err := s.wasteTypes.CreateBatch(ctx, types); err != nil {
		s.logger.Warn("failed to seed starter waste categories",
			zap.String("company_code", comp.Code),
			zap.Error(err),
		)
	}

	return result, nil
}

// AssignOwner backfills the company's designated owner profile.
func (s *Service) AssignOwner(ctx context.Context, companyCode string, ownerID int64) error {
	return s.companies.SetOwner(ctx, companyCode, ownerID)
}

// createWithUniqueCode samples candidate codes until one is free. The
// existence check narrows the race window; the storage-level uniqueness
// constraint is the final arbiter, and an insert conflict means "try the
// next candidate", not request failure.
func (s *Service) createWithUniqueCode(ctx context.Context, ownerName string, masterCodeID int64) (*domain.Company, error) {
	name := fmt.Sprintf("%s Company", ownerName)

	for attempt := 0; attempt < allocationAttempts; attempt++ {
		code := s.gen.Next()

		exists, err := s.companies.ExistsByCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("check company code: %w", err)
		}
		if exists {
			continue
		}

		comp := &domain.Company{
			Code:         code,
			Name:         name,
			Status:       domain.CompanyActive,
			MasterCodeID: &masterCodeID,
		}
		err = s.companies.Create(ctx, comp)
		if err == nil {
			return comp, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.logger.Debug("company code collided on insert, retrying",
				zap.String("code", code),
				zap.Int("attempt", attempt+1),
			)
			continue
		}
		return nil, fmt.Errorf("create company: %w", err)
	}

	return nil, ErrCodeAllocationExhausted
}
