package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gsc-community/events-api/internal/domain"
	"github.com/gsc-community/events-api/internal/repository"
)

const (
	CheckInStatusCheckedIn        = "checked_in"
	CheckInStatusAlreadyCheckedIn = "already_checked_in"
	CheckInStatusInvalid          = "invalid"
)

type TicketLookup interface {
	FindByTicketCode(ctx context.Context, eventID, ticketCode string) (domain.Registration, error)
	Update(ctx context.Context, eventID, registrationID string, updates map[string]string) (domain.Registration, error)
}

type CheckInService struct {
	regs TicketLookup
}

func NewCheckInService(regs TicketLookup) *CheckInService {
	return &CheckInService{
		regs: regs,
	}
}

type CheckInResult struct {
	Status       string
	AttendeeName string
	CheckedInAt  string
}

// CheckIn transitions a registration into the checked-in state. Repeat
// scans of the same ticket are the common case at a busy door, so the call
// is idempotent: a second scan reports already_checked_in with the original
// timestamp and changes nothing.
func (s *CheckInService) CheckIn(ctx context.Context, eventID, ticketCode string) (CheckInResult, error) {
	reg, err := s.regs.FindByTicketCode(ctx, eventID, ticketCode)
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			return CheckInResult{Status: CheckInStatusInvalid}, ErrRegistrationNotFound
		}

		return CheckInResult{}, fmt.Errorf("s.regs.FindByTicketCode -> %w", err)
	}

	if reg.CheckedIn {
		return CheckInResult{
			Status:       CheckInStatusAlreadyCheckedIn,
			AttendeeName: reg.FullName,
			CheckedInAt:  reg.CheckedInAt,
		}, nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err = s.regs.Update(ctx, eventID, reg.ID, map[string]string{
		"checkedIn":   "true",
		"checkedInAt": now,
	}); err != nil {
		return CheckInResult{}, fmt.Errorf("s.regs.Update -> %w", err)
	}

	return CheckInResult{
		Status:       CheckInStatusCheckedIn,
		AttendeeName: reg.FullName,
		CheckedInAt:  now,
	}, nil
}
