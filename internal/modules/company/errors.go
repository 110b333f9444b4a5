package company

import "errors"

var (
	// ErrNotFound covers both missing and retired join codes; callers must
	// not be able to tell the two apart.
	ErrNotFound = errors.New("company not found")

	ErrInvalidMasterCode       = errors.New("master code is invalid or already used")
	ErrNoRegionAvailable       = errors.New("company has no region to assign")
	ErrCodeAllocationExhausted = errors.New("could not allocate a unique company code")
)
