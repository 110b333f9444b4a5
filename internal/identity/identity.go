// Package identity talks to the credential store. Profiles in the relational
// store never carry secrets; the saga provisions a login identity here and
// links it to the profile by its opaque id.
package identity

import "context"

// CreateParams describes the identity to provision. Handle is the synthetic
// login derived from the phone number; the identity is created pre-confirmed
// because the handle is not a real contactable address.
type CreateParams struct {
	Handle string
	Secret string
	Name   string
	Phone  string
	Role   string
}

type Provider interface {
	CreateIdentity(ctx context.Context, p CreateParams) (string, error)
	// DeleteIdentity is the saga's compensating action; it must be safe to
	// call for an id that no longer exists.
	DeleteIdentity(ctx context.Context, id string) error
}

// LoginHandle derives the deterministic login for a phone number: digits
// only, with a fixed domain suffix appended.
func LoginHandle(phone, domain string) string {
	digits := make([]rune, 0, len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	return string(digits) + "@" + domain
}
