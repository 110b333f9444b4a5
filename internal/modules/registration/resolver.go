package registration

import (
	"context"
	"errors"
	"fmt"

	"ecotrack/internal/domain"

	"gorm.io/gorm"
)

// PhoneOutcome classifies an incoming phone number. It is a closed
// three-way outcome so every caller is forced to handle all branches.
type PhoneOutcome int

const (
	// PhoneUnclaimed — no profile row exists for this phone.
	PhoneUnclaimed PhoneOutcome = iota
	// PhoneShadowContact — a profile exists but has no identity link yet;
	// registration claims it instead of creating a new row.
	PhoneShadowContact
	// PhoneActiveConflict — a profile with a live identity already owns
	// this phone; registration must abort before any side effects.
	PhoneActiveConflict
)

// Resolution carries the outcome plus, for shadow contacts, the row to merge into.
type Resolution struct {
	Outcome PhoneOutcome
	Shadow  *domain.User
}

func (s *Service) resolvePhone(ctx context.Context, phone string) (Resolution, error) {
	existing, err := s.users.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Resolution{Outcome: PhoneUnclaimed}, nil
		}
		return Resolution{}, fmt.Errorf("lookup phone: %w", err)
	}
	if existing.IsShadow() {
		return Resolution{Outcome: PhoneShadowContact, Shadow: existing}, nil
	}
	return Resolution{Outcome: PhoneActiveConflict}, nil
}
