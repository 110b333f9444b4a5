package registration

import "errors"

var (
	ErrInvalidRole            = errors.New("invalid role")
	ErrPasswordTooShort       = errors.New("password must be at least 6 characters")
	ErrMasterCodeRequired     = errors.New("master code is required for company registration")
	ErrPhoneAlreadyRegistered = errors.New("phone number is already registered")
	ErrIdentityProvisioning   = errors.New("failed to create login identity")
	ErrProfileWrite           = errors.New("failed to create user profile")
)
