package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gsc-community/events-api/internal/domain"
	"github.com/gsc-community/events-api/internal/notify"
	"github.com/gsc-community/events-api/internal/pkg/sanitise"
	"github.com/gsc-community/events-api/internal/pkg/ticketcode"
	"github.com/gsc-community/events-api/internal/repository"
)

var (
	ErrEventNotFound        = repository.ErrEventNotFound
	ErrRegistrationNotFound = repository.ErrRegistrationNotFound
	ErrRegistrationClosed   = errors.New("registration is closed for this event")
	ErrEventCompleted       = errors.New("cannot register for a completed event")
	ErrCapacityExceeded     = errors.New("this event has reached capacity")
	ErrInvalidRole          = errors.New("invalid role")
	ErrAlreadyCheckedIn     = errors.New("cannot cancel after check-in")
)

// AlreadyRegisteredError reports a duplicate registration together with the
// ticket code that was issued the first time, so the caller can show it.
type AlreadyRegisteredError struct {
	TicketCode string
}

func (e *AlreadyRegisteredError) Error() string {
	return "already registered for this event"
}

type EventFinder interface {
	GetBySlug(ctx context.Context, slug string) (domain.Event, error)
	GetByID(ctx context.Context, eventID string) (domain.Event, error)
}

type RegistrationRepository interface {
	Create(ctx context.Context, reg domain.Registration) (domain.Registration, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Registration, error)
	FindByUser(ctx context.Context, eventID, userID string) (domain.Registration, error)
	FindByEmail(ctx context.Context, eventID, email string) (domain.Registration, error)
	Update(ctx context.Context, eventID, registrationID string, updates map[string]string) (domain.Registration, error)
	Delete(ctx context.Context, reg domain.Registration) error
}

type DemographicsRepository interface {
	Create(ctx context.Context, d domain.Demographics) error
	Delete(ctx context.Context, eventID, registrationID string) error
}

type RegistrationService struct {
	events EventFinder
	regs   RegistrationRepository
	demos  DemographicsRepository
	mailer notify.Mailer
}

func NewRegistrationService(events EventFinder, regs RegistrationRepository, demos DemographicsRepository, mailer notify.Mailer) *RegistrationService {
	return &RegistrationService{
		events: events,
		regs:   regs,
		demos:  demos,
		mailer: mailer,
	}
}

type RegisterInput struct {
	EventSlug        string
	FullName         string
	Email            string
	Company          string
	EmploymentStatus string
	Industry         string
	JobTitle         string
	CompanySize      string
	ExperienceLevel  string
}

type RegisterResult struct {
	Registration domain.Registration
	Event        domain.Event
	QRDataURL    string
}

// Register signs an authenticated user up for an event. Validation and
// capacity checks happen before any write; the confirmation email is
// best-effort after the registration has been persisted.
func (s *RegistrationService) Register(ctx context.Context, userID string, in RegisterInput) (RegisterResult, error) {
	event, err := s.events.GetBySlug(ctx, in.EventSlug)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return RegisterResult{}, ErrEventNotFound
		}

		return RegisterResult{}, fmt.Errorf("s.events.GetBySlug -> %w", err)
	}

	if !event.IsOpenForRegistration() {
		return RegisterResult{}, ErrRegistrationClosed
	}

	existing, err := s.regs.FindByUser(ctx, event.ID, userID)
	if err == nil {
		return RegisterResult{}, &AlreadyRegisteredError{TicketCode: existing.TicketCode}
	}
	if !errors.Is(err, repository.ErrRegistrationNotFound) {
		return RegisterResult{}, fmt.Errorf("s.regs.FindByUser -> %w", err)
	}

	if err = s.checkCapacity(ctx, event, domain.RoleAttendee); err != nil {
		return RegisterResult{}, err
	}

	code, err := ticketcode.New()
	if err != nil {
		return RegisterResult{}, fmt.Errorf("ticketcode.New -> %w", err)
	}

	reg := domain.Registration{
		ID:         uuid.NewString(),
		EventID:    event.ID,
		UserID:     userID,
		FullName:   strings.TrimSpace(sanitise.StripHTML(in.FullName)),
		Email:      strings.TrimSpace(in.Email),
		Company:    strings.TrimSpace(sanitise.StripHTML(in.Company)),
		TicketCode: code,
		Role:       domain.RoleAttendee,
	}

	created, err := s.regs.Create(ctx, reg)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateRegistration) {
			return RegisterResult{}, s.duplicateError(ctx, event.ID, userID, reg.Email)
		}

		return RegisterResult{}, fmt.Errorf("s.regs.Create -> %w", err)
	}

	err = s.demos.Create(ctx, domain.Demographics{
		EventID:          event.ID,
		RegistrationID:   created.ID,
		EmploymentStatus: in.EmploymentStatus,
		Industry:         in.Industry,
		JobTitle:         sanitise.StripHTML(in.JobTitle),
		CompanySize:      in.CompanySize,
		ExperienceLevel:  in.ExperienceLevel,
	})
	if err != nil {
		return RegisterResult{}, fmt.Errorf("s.demos.Create -> %w", err)
	}

	qr := ticketcode.QRDataURL(code)
	if err = s.mailer.SendTicket(ctx, created, event, qr); err != nil {
		zap.L().Warn(fmt.Sprintf("ticket email send failed (non-fatal): %v", err))
	}

	return RegisterResult{Registration: created, Event: event, QRDataURL: qr}, nil
}

type AdminRegisterInput struct {
	EventID string
	Name    string
	Email   string
	Role    string
}

// AdminRegister creates a registration on someone's behalf. The duplicate
// check is by email only, and speaker/sponsor/organiser roles bypass the
// capacity cap.
func (s *RegistrationService) AdminRegister(ctx context.Context, in AdminRegisterInput) (RegisterResult, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleAttendee
	}
	if !domain.ValidRole(role) {
		return RegisterResult{}, ErrInvalidRole
	}

	event, err := s.events.GetByID(ctx, in.EventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return RegisterResult{}, ErrEventNotFound
		}

		return RegisterResult{}, fmt.Errorf("s.events.GetByID -> %w", err)
	}

	if event.Status == domain.EventStatusCompleted {
		return RegisterResult{}, ErrEventCompleted
	}

	existing, err := s.regs.FindByEmail(ctx, event.ID, in.Email)
	if err == nil {
		return RegisterResult{}, &AlreadyRegisteredError{TicketCode: existing.TicketCode}
	}
	if !errors.Is(err, repository.ErrRegistrationNotFound) {
		return RegisterResult{}, fmt.Errorf("s.regs.FindByEmail -> %w", err)
	}

	if err = s.checkCapacity(ctx, event, role); err != nil {
		return RegisterResult{}, err
	}

	code, err := ticketcode.New()
	if err != nil {
		return RegisterResult{}, fmt.Errorf("ticketcode.New -> %w", err)
	}

	reg := domain.Registration{
		ID:         uuid.NewString(),
		EventID:    event.ID,
		FullName:   strings.TrimSpace(sanitise.StripHTML(in.Name)),
		Email:      strings.TrimSpace(sanitise.StripHTML(in.Email)),
		TicketCode: code,
		Role:       role,
	}

	created, err := s.regs.Create(ctx, reg)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateRegistration) {
			return RegisterResult{}, s.duplicateError(ctx, event.ID, "", reg.Email)
		}

		return RegisterResult{}, fmt.Errorf("s.regs.Create -> %w", err)
	}

	qr := ticketcode.QRDataURL(code)
	if err = s.mailer.SendTicket(ctx, created, event, qr); err != nil {
		zap.L().Warn(fmt.Sprintf("ticket email send failed (non-fatal): %v", err))
	}

	return RegisterResult{Registration: created, Event: event, QRDataURL: qr}, nil
}

// Cancel removes the caller's own registration. Not permitted once the
// attendee has checked in; attendance is already recorded at that point.
func (s *RegistrationService) Cancel(ctx context.Context, userID, registrationID string) error {
	userRegs, err := s.regs.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("s.regs.ListByUser -> %w", err)
	}

	var reg domain.Registration
	found := false
	for _, r := range userRegs {
		if r.ID == registrationID {
			reg = r
			found = true
			break
		}
	}
	if !found {
		return ErrRegistrationNotFound
	}

	if reg.CheckedIn {
		return ErrAlreadyCheckedIn
	}

	if err = s.regs.Delete(ctx, reg); err != nil {
		return fmt.Errorf("s.regs.Delete -> %w", err)
	}

	if err = s.demos.Delete(ctx, reg.EventID, reg.ID); err != nil {
		zap.L().Warn(fmt.Sprintf("demographics cleanup failed: %v", err))
	}

	if event, evErr := s.events.GetByID(ctx, reg.EventID); evErr == nil {
		if err = s.mailer.SendCancellation(ctx, reg, event); err != nil {
			zap.L().Warn(fmt.Sprintf("cancellation email send failed (non-fatal): %v", err))
		}
	}

	return nil
}

// RoleUpdateError records one failed id of a bulk role update.
type RoleUpdateError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// UpdateRoles applies the role per id; missing ids become partial errors
// and never abort the rest.
func (s *RegistrationService) UpdateRoles(ctx context.Context, eventID string, registrationIDs []string, role string) (int, []RoleUpdateError, error) {
	if !domain.ValidRole(role) {
		return 0, nil, ErrInvalidRole
	}

	regs, err := s.regs.ListByEvent(ctx, eventID)
	if err != nil {
		return 0, nil, fmt.Errorf("s.regs.ListByEvent -> %w", err)
	}

	known := make(map[string]struct{}, len(regs))
	for _, r := range regs {
		known[r.ID] = struct{}{}
	}

	updated := 0
	var updateErrs []RoleUpdateError
	for _, id := range registrationIDs {
		if _, ok := known[id]; !ok {
			updateErrs = append(updateErrs, RoleUpdateError{ID: id, Error: "Registration not found"})
			continue
		}
		if _, err = s.regs.Update(ctx, eventID, id, map[string]string{"role": role}); err != nil {
			updateErrs = append(updateErrs, RoleUpdateError{ID: id, Error: err.Error()})
			continue
		}
		updated++
	}

	return updated, updateErrs, nil
}

func (s *RegistrationService) checkCapacity(ctx context.Context, event domain.Event, role string) error {
	if event.RegistrationCap <= 0 || domain.BypassesCap(role) {
		return nil
	}

	regs, err := s.regs.ListByEvent(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("s.regs.ListByEvent -> %w", err)
	}
	if len(regs) >= event.RegistrationCap {
		return ErrCapacityExceeded
	}

	return nil
}

// duplicateError recovers the existing ticket code after a uniqueness
// guard rejected a concurrent duplicate.
func (s *RegistrationService) duplicateError(ctx context.Context, eventID, userID, email string) error {
	if userID != "" {
		if existing, err := s.regs.FindByUser(ctx, eventID, userID); err == nil {
			return &AlreadyRegisteredError{TicketCode: existing.TicketCode}
		}
	}
	if existing, err := s.regs.FindByEmail(ctx, eventID, email); err == nil {
		return &AlreadyRegisteredError{TicketCode: existing.TicketCode}
	}

	return &AlreadyRegisteredError{}
}
