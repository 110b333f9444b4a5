package registration

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ecotrack/internal/domain"
	"ecotrack/internal/identity"
	"ecotrack/internal/repository"

	"go.uber.org/zap"
)

// The saga advances through these states in order; any failure is terminal
// and the caller may retry the whole request, which re-runs resolution from
// scratch.
type sagaStep string

const (
	stepValidating        sagaStep = "validating"
	stepResolvingIdentity sagaStep = "resolving_identity"
	stepCompany           sagaStep = "resolving_or_provisioning_company"
	stepAssigningRegion   sagaStep = "assigning_region"
	stepProvisioningAuth  sagaStep = "provisioning_auth_identity"
	stepWritingProfile    sagaStep = "writing_profile"
	stepLinkingOwner      sagaStep = "linking_company_owner"
)

const minPasswordLen = 6

type Result struct {
	User        *domain.User
	CompanyCode string
	CompanyName string
}

// Service coordinates the onboarding saga across the profile store, the
// company module and the external identity provider. There is no native
// transaction spanning those, so each step commits immediately and the one
// compensating action is deleting a freshly created identity when the
// profile write fails.
type Service struct {
	users        UserStore
	companies    CompanyDirectory
	identities   identity.Provider
	handleDomain string
	logger       *zap.Logger
}

func NewService(
	users UserStore,
	companies CompanyDirectory,
	identities identity.Provider,
	handleDomain string,
	logger *zap.Logger,
) *Service {
	return &Service{
		users:        users,
		companies:    companies,
		identities:   identities,
		handleDomain: handleDomain,
		logger:       logger,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Result, error) {
	s.step(stepValidating, req.Phone)

	role := domain.UserRole(strings.TrimSpace(req.Role))
	if !domain.ValidRole(role) {
		return nil, ErrInvalidRole
	}
	if len(req.Password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}
	phone := strings.TrimSpace(req.Phone)
	if role == domain.RoleCompanyAdmin && strings.TrimSpace(req.CompanyCode) == "" {
		return nil, ErrMasterCodeRequired
	}

	s.step(stepResolvingIdentity, phone)
	resolution, err := s.resolvePhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if resolution.Outcome == PhoneActiveConflict {
		return nil, ErrPhoneAlreadyRegistered
	}

	s.step(stepCompany, phone)
	var (
		companyCode *string
		companyName string
		regionID    *int64
		isOwner     bool
	)
	switch {
	case role == domain.RoleCompanyAdmin:
		prov, err := s.companies.Provision(ctx, req.CompanyCode, req.Name)
		if err != nil {
			return nil, err
		}
		companyCode = &prov.Company.Code
		companyName = prov.Company.Name
		isOwner = true
		if prov.Region != nil {
			regionID = &prov.Region.ID
		}

	case strings.TrimSpace(req.CompanyCode) != "":
		comp, err := s.companies.ResolveJoinCode(ctx, req.CompanyCode)
		if err != nil {
			return nil, err
		}

		s.step(stepAssigningRegion, phone)
		rid, err := s.companies.DefaultRegion(ctx, comp.Code)
		if err != nil {
			return nil, err
		}
		companyCode = &comp.Code
		companyName = comp.Name
		regionID = &rid
	}

	s.step(stepProvisioningAuth, phone)
	authID, err := s.identities.CreateIdentity(ctx, identity.CreateParams{
		Handle: identity.LoginHandle(phone, s.handleDomain),
		Secret: req.Password,
		Name:   req.Name,
		Phone:  phone,
		Role:   string(role),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIdentityProvisioning, err)
	}

	s.step(stepWritingProfile, phone)
	user, err := s.writeProfile(ctx, req, resolution, role, phone, authID, companyCode, regionID, isOwner)
	if err != nil {
		s.compensateIdentity(ctx, authID)
		return nil, err
	}

	if isOwner && companyCode != nil {
		s.step(stepLinkingOwner, phone)
		if err := s.companies.AssignOwner(ctx, *companyCode, user.ID); err != nil {
			// Uncompensated: the company exists and the profile is written;
			// an operator has to backfill the owner by hand.
			s.logger.Error("failed to link company owner",
				zap.String("company_code", *companyCode),
				zap.Int64("user_id", user.ID),
				zap.Error(err),
			)
		}
	}

	result := &Result{User: user}
	if companyCode != nil {
		result.CompanyCode = *companyCode
		result.CompanyName = companyName
	}
	return result, nil
}

// writeProfile runs in one of two mutually exclusive modes: claiming an
// existing shadow row in place, or inserting a fresh profile.
func (s *Service) writeProfile(
	ctx context.Context,
	req RegisterRequest,
	resolution Resolution,
	role domain.UserRole,
	phone, authID string,
	companyCode *string,
	regionID *int64,
	isOwner bool,
) (*domain.User, error) {
	if resolution.Outcome == PhoneShadowContact {
		user := *resolution.Shadow
		user.AuthID = &authID
		user.Name = req.Name
		user.Role = role
		user.IsOwner = isOwner
		if strings.TrimSpace(req.Address) != "" {
			user.Address = req.Address
			user.Latitude = req.Latitude
			user.Longitude = req.Longitude
		}
		// The shadow row keeps whatever company and region it already had
		// unless this registration resolved new ones.
		if companyCode != nil {
			user.CompanyCode = companyCode
			user.RegionID = regionID
		}

		if err := s.users.ClaimShadow(ctx, &user); err != nil {
			if errors.Is(err, repository.ErrShadowAlreadyClaimed) {
				// Lost a double-claim race: surface the conflict as if it
				// had been detected up front.
				return nil, ErrPhoneAlreadyRegistered
			}
			return nil, fmt.Errorf("%w: %v", ErrProfileWrite, err)
		}
		return &user, nil
	}

	user := &domain.User{
		AuthID:      &authID,
		Name:        req.Name,
		Phone:       phone,
		Address:     req.Address,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Role:        role,
		CompanyCode: companyCode,
		RegionID:    regionID,
		IsOwner:     isOwner,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProfileWrite, err)
	}
	return user, nil
}

// compensateIdentity deletes the identity created earlier in the saga.
// Best effort: a failure here leaves an orphaned identity and is only logged.
func (s *Service) compensateIdentity(ctx context.Context, authID string) {
	if err := s.identities.DeleteIdentity(ctx, authID); err != nil {
		s.logger.Error("failed to roll back auth identity",
			zap.String("auth_id", authID),
			zap.Error(err),
		)
	}
}

func (s *Service) step(step sagaStep, phone string) {
	s.logger.Debug("registration saga",
		zap.String("step", string(step)),
		zap.String("phone", phone),
	)
}
