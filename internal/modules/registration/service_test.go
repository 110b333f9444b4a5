package registration

import (
	"context"
	"errors"
	"testing"

	"ecotrack/internal/domain"
	"ecotrack/internal/identity"
	"ecotrack/internal/modules/company"
	"ecotrack/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Mock user store implementing the interface
type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserStore) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if args.Error(0) == nil {
		u.ID = 101 // simulate the insert assigning an id
	}
	return args.Error(0)
}

func (m *mockUserStore) ClaimShadow(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

// Mock company directory
type mockCompanyDirectory struct {
	mock.Mock
}

func (m *mockCompanyDirectory) ResolveJoinCode(ctx context.Context, code string) (*domain.Company, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *mockCompanyDirectory) DefaultRegion(ctx context.Context, companyCode string) (int64, error) {
	args := m.Called(ctx, companyCode)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCompanyDirectory) Provision(ctx context.Context, masterCode, ownerName string) (*company.Provisioned, error) {
	args := m.Called(ctx, masterCode, ownerName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Provisioned), args.Error(1)
}

func (m *mockCompanyDirectory) AssignOwner(ctx context.Context, companyCode string, ownerID int64) error {
	args := m.Called(ctx, companyCode, ownerID)
	return args.Error(0)
}

// Mock identity provider
type mockIdentityProvider struct {
	mock.Mock
}

func (m *mockIdentityProvider) CreateIdentity(ctx context.Context, p identity.CreateParams) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (m *mockIdentityProvider) DeleteIdentity(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestService(users *mockUserStore, companies *mockCompanyDirectory, identities *mockIdentityProvider) *Service {
	return NewService(users, companies, identities, "ecotrack.id", zap.NewNop())
}

func strPtr(v string) *string { return &v }
func i64Ptr(v int64) *int64   { return &v }

func TestRegister_ConflictRejectedBeforeAnySideEffect(t *testing.T) {
	users := new(mockUserStore)
	companies := new(mockCompanyDirectory)
	identities := new(mockIdentityProvider)

	users.On("FindByPhone", mock.Anything, "+7700555").Return(&domain.User{
		ID:     5,
		Phone:  "+7700555",
		AuthID: strPtr("uid-existing"),
	}, nil)

	service := newTestService(users, companies, identities)

	_, err := service.Register(context.Background(), RegisterRequest{
		Name:     "Second Try",
		Phone:    "+7700555",
		Password: "secret123",
		Role:     "client",
	})

	assert.ErrorIs(t, err, ErrPhoneAlreadyRegistered)
	identities.AssertNotCalled(t, "CreateIdentity", mock.Anything, mock.Anything)
	companies.AssertNotCalled(t, "Provision", mock.Anything, mock.Anything, mock.Anything)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_ShadowClaimPreservesRowAndAssignments(t *testing.T) {
	users := new(mockUserStore)
	companies := new(mockCompanyDirectory)
	identities := new(mockIdentityProvider)

	shadow := &domain.User{
		ID:          7,
		Name:        "Placeholder",
		Phone:       "+7700777",
		Address:     "12 Abay Ave",
		Role:        domain.RoleClient,
		CompanyCode: strPtr("ECO-ABCD"),
		RegionID:    i64Ptr(3),
	}
	users.On("FindByPhone", mock.Anything, "+7700777").Return(shadow, nil)
	identities.On("CreateIdentity", mock.Anything, mock.Anything).Return("uid-new", nil)
	users.On("ClaimShadow", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == 7 &&
			u.AuthID != nil && *u.AuthID == "uid-new" &&
			u.Name == "Real Person" &&
			u.Address == "12 Abay Ave" &&
			u.CompanyCode != nil && *u.CompanyCode == "ECO-ABCD" &&
			u.RegionID != nil && *u.RegionID == 3
	})).Return(nil)

	service := newTestService(users, companies, identities)

	result, err := service.Register(context.Background(), RegisterRequest{
		Name:     "Real Person",
		Phone:    "+7700777",
		Password: "secret123",
		Role:     "client",
	})

	require.NoError(t, err)
	assert.EqualValues(t, 7, result.User.ID, "claim must preserve the shadow row id")
	users.AssertExpectations(t)
	identities.AssertExpectations(t)
}

func TestRegister_ShadowDoubleClaimSurfacesConflict(t *testing.T) {
	users := new(mockUserStore)
	companies := new(mockCompanyDirectory)
	identities := new(mockIdentityProvider)

	users.On("FindByPhone", mock.Anything, "+7700777").Return(&domain.User{ID: 7, Phone: "+7700777"}, nil)
	identities.On("CreateIdentity", mock.Anything, mock.Anything).Return("uid-loser", nil)
	users.On("ClaimShadow", mock.Anything, mock.Anything).Return(repository.ErrShadowAlreadyClaimed)
	identities.On("DeleteIdentity", mock.Anything, "uid-loser").Return(nil)

	service := newTestService(users, companies, identities)

	_, err := service.Register(context.Background(), RegisterRequest{
		Name:     "Loser",
		Phone:    "+7700777",
		Password: "secret123",
		Role:     "client",
	})

	assert.ErrorIs(t, err, ErrPhoneAlreadyRegistered)
	identities.AssertCalled(t, "DeleteIdentity", mock.Anything, "uid-loser")
}

func TestRegister_RollbackDeletesIdentityOnProfileWriteFailure(t *testing.T) {
	users := new(mockUserStore)
	companies := new(mockCompanyDirectory)
	identities := new(mockIdentityProvider)

	users.On("FindByPhone", mock.Anything, "+7700888").Return(nil, gorm.ErrRecordNotFound)
	identities.On("CreateIdentity", mock.Anything, mock.Anything).Return("uid-9", nil)
	users.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))
	identities.On("DeleteIdentity", mock.Anything, "uid-9").Return(nil)

	service := newTestService(users, companies, identities)

	_, err := service.Register(context.Background(), RegisterRequest{
		Name:     "Unlucky",
		Phone:    "+7700888",
		Password: "secret123",
		Role:     "client",
	})

	assert.ErrorIs(t, err, ErrProfileWrite)
	identities.AssertCalled(t, "DeleteIdentity", mock.Anything, "uid-9")
}

func TestRegister_JoinUnknownCompanyCreatesNothing(t *testing.T) {
	users := new(mockUserStore)
	companies := new(mockCompanyDirectory)
	identities := new(mockIdentityProvider)

	users.On("FindByPhone", mock.Anything, "+7700999").Return(nil, gorm.ErrRecordNotFound)
	companies.On("ResolveJoinCode", mock.Anything, "ECO-AB12").Return(nil, company.ErrNotFound)

	service := newTestService(users, companies, identities)

	_, err := service.Register(context.Background(), RegisterRequest{
		Name:        "Joiner",
		Phone:       "+7700999",
		Password:    "secret123",
		Role:        "client",
		CompanyCode: "ECO-AB12",
	})

	assert.ErrorIs(t, err, company.ErrNotFound)
	identities.AssertNotCalled(t, "CreateIdentity", mock.Anything, mock.Anything)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_JoinAssignsDefaultRegion(t *testing.T) {
	users := new(mockUserStore)
	companies := new(mockCompanyDirectory)
	identities := new(mockIdentityProvider)

	users.On("FindByPhone", mock.Anything, "+7700111").Return(nil, gorm.ErrRecordNotFound)
	companies.On("ResolveJoinCode", mock.Anything, "ECO-ABCD").Return(&domain.Company{Code: "ECO-ABCD", Name: "Green City"}, nil)
	companies.On("DefaultRegion", mock.Anything, "ECO-ABCD").Return(int64(3), nil)
	identities.On("CreateIdentity", mock.Anything, mock.MatchedBy(func(p identity.CreateParams) bool {
		return p.Handle == "7700111@ecotrack.id" && p.Role == "driver"
	})).Return("uid-driver", nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleDriver &&
			u.CompanyCode != nil && *u.CompanyCode == "ECO-ABCD" &&
			u.RegionID != nil && *u.RegionID == 3 &&
			!u.IsOwner
	})).Return(nil)

	service := newTestService(users, companies, identities)

	result, err := service.Register(context.Background(), RegisterRequest{
		Name:        "Driver",
		Phone:       "+7700111",
		Password:    "secret123",
		Role:        "driver",
		CompanyCode: "ECO-ABCD",
	})

	require.NoError(t, err)
	assert.Equal(t, "ECO-ABCD", result.CompanyCode)
	assert.Equal(t, "Green City", result.CompanyName)
	users.AssertExpectations(t)
}

func TestRegister_CompanyAdminProvisionsAndLinksOwner(t *testing.T) {
	users := new(mockUserStore)
	companies := new(mockCompanyDirectory)
	identities := new(mockIdentityProvider)

	users.On("FindByPhone", mock.Anything, "+7700222").Return(nil, gorm.ErrRecordNotFound)
	companies.On("Provision", mock.Anything, "MASTER1", "Founder").Return(&company.Provisioned{
		Company: &domain.Company{ID: 1, Code: "ECO-QRST", Name: "Founder Company"},
		Region:  &domain.Region{ID: 11, CompanyCode: "ECO-QRST", Name: "Founder Company"},
	}, nil)
	identities.On("CreateIdentity", mock.Anything, mock.Anything).Return("uid-admin", nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.IsOwner &&
			u.Role == domain.RoleCompanyAdmin &&
			u.CompanyCode != nil && *u.CompanyCode == "ECO-QRST" &&
			u.RegionID != nil && *u.RegionID == 11
	})).Return(nil)
	companies.On("AssignOwner", mock.Anything, "ECO-QRST", int64(101)).Return(nil)

	service := newTestService(users, companies, identities)

	result, err := service.Register(context.Background(), RegisterRequest{
		Name:        "Founder",
		Phone:       "+7700222",
		Password:    "secret123",
		Role:        "company_admin",
		CompanyCode: "MASTER1",
	})

	require.NoError(t, err)
	assert.Equal(t, "ECO-QRST", result.CompanyCode)
	assert.Equal(t, "Founder Company", result.CompanyName)
	companies.AssertExpectations(t)
}

func TestRegister_OwnerBackfillFailureIsNotFatal(t *testing.T) {
	users := new(mockUserStore)
	companies := new(mockCompanyDirectory)
	identities := new(mockIdentityProvider)

	users.On("FindByPhone", mock.Anything, "+7700333").Return(nil, gorm.ErrRecordNotFound)
	companies.On("Provision", mock.Anything, "MASTER1", "Founder").Return(&company.Provisioned{
		Company: &domain.Company{ID: 1, Code: "ECO-QRST", Name: "Founder Company"},
	}, nil)
	identities.On("CreateIdentity", mock.Anything, mock.Anything).Return("uid-admin", nil)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)
	companies.On("AssignOwner", mock.Anything, "ECO-QRST", int64(101)).Return(errors.New("update failed"))

	service := newTestService(users, companies, identities)

	result, err := service.Register(context.Background(), RegisterRequest{
		Name:        "Founder",
		Phone:       "+7700333",
		Password:    "secret123",
		Role:        "company_admin",
		CompanyCode: "MASTER1",
	})

	require.NoError(t, err, "owner backfill failure is logged, not surfaced")
	assert.Equal(t, "ECO-QRST", result.CompanyCode)
}

func TestRegister_Validation(t *testing.T) {
	service := newTestService(new(mockUserStore), new(mockCompanyDirectory), new(mockIdentityProvider))
	ctx := context.Background()

	_, err := service.Register(ctx, RegisterRequest{Name: "A", Phone: "1", Password: "secret123", Role: "superuser"})
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = service.Register(ctx, RegisterRequest{Name: "A", Phone: "1", Password: "short", Role: "client"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = service.Register(ctx, RegisterRequest{Name: "A", Phone: "1", Password: "secret123", Role: "company_admin"})
	assert.ErrorIs(t, err, ErrMasterCodeRequired)
}
