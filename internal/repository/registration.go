package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gsc-community/events-api/internal/domain"
	"github.com/gsc-community/events-api/internal/repository/dao"
)

var (
	ErrRegistrationNotFound  = errors.New("registration not found")
	ErrDuplicateRegistration = errors.New("duplicate registration")
)

type RegistrationRepository struct {
	store RecordStore
}

func NewRegistrationRepository(store RecordStore) *RegistrationRepository {
	return &RegistrationRepository{
		store: store,
	}
}

// Create persists a registration and its uniqueness guards. The guards are
// single rows keyed by (event, lowercased email) and, when the holder is a
// signed-in user, (event, user id); inserting them rides the store's unique
// index, so the at-most-one invariant holds even under concurrent requests.
func (r *RegistrationRepository) Create(ctx context.Context, reg domain.Registration) (domain.Registration, error) {
	email := strings.ToLower(strings.TrimSpace(reg.Email))

	err := r.store.Insert(ctx, TableRegEmails, reg.EventID, email, map[string]string{
		"registrationId": reg.ID,
	})
	if err != nil {
		if errors.Is(err, ErrRecordExists) {
			return domain.Registration{}, ErrDuplicateRegistration
		}

		return domain.Registration{}, fmt.Errorf("r.store.Insert email guard -> %w", err)
	}

	if reg.UserID != "" {
		err = r.store.Insert(ctx, TableRegUsers, reg.EventID, reg.UserID, map[string]string{
			"registrationId": reg.ID,
		})
		if err != nil {
			// Roll back the email guard so a retry with a different account
			// isn't wedged by a half-created registration.
			_ = r.store.Delete(ctx, TableRegEmails, reg.EventID, email)
			if errors.Is(err, ErrRecordExists) {
				return domain.Registration{}, ErrDuplicateRegistration
			}

			return domain.Registration{}, fmt.Errorf("r.store.Insert user guard -> %w", err)
		}
	}

	reg.RegisteredAt = time.Now().UTC().Format(time.RFC3339)
	err = r.store.Insert(ctx, TableRegistrations, reg.EventID, reg.ID, registrationToFields(reg))
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.store.Insert -> %w", err)
	}

	return reg, nil
}

func (r *RegistrationRepository) Get(ctx context.Context, eventID, registrationID string) (domain.Registration, error) {
	e, err := r.store.Get(ctx, TableRegistrations, eventID, registrationID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return domain.Registration{}, ErrRegistrationNotFound
		}

		return domain.Registration{}, fmt.Errorf("r.store.Get -> %w", err)
	}

	return registrationFromEntity(e), nil
}

func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error) {
	entities, err := r.store.ListPartition(ctx, TableRegistrations, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.store.ListPartition -> %w", err)
	}

	regs := make([]domain.Registration, 0, len(entities))
	for _, e := range entities {
		regs = append(regs, registrationFromEntity(e))
	}

	return regs, nil
}

func (r *RegistrationRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	regs, err := r.ListByEvent(ctx, eventID)
	if err != nil {
		return 0, err
	}

	return len(regs), nil
}

func (r *RegistrationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Registration, error) {
	entities, err := r.store.Scan(ctx, TableRegistrations, func(e dao.Entity) bool {
		return e.Fields["userId"] == userID
	})
	if err != nil {
		return nil, fmt.Errorf("r.store.Scan -> %w", err)
	}

	regs := make([]domain.Registration, 0, len(entities))
	for _, e := range entities {
		regs = append(regs, registrationFromEntity(e))
	}

	return regs, nil
}

func (r *RegistrationRepository) FindByUser(ctx context.Context, eventID, userID string) (domain.Registration, error) {
	entities, err := r.store.ListPartition(ctx, TableRegistrations, eventID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.store.ListPartition -> %w", err)
	}

	for _, e := range entities {
		if e.Fields["userId"] == userID {
			return registrationFromEntity(e), nil
		}
	}

	return domain.Registration{}, ErrRegistrationNotFound
}

func (r *RegistrationRepository) FindByEmail(ctx context.Context, eventID, email string) (domain.Registration, error) {
	needle := strings.ToLower(strings.TrimSpace(email))
	entities, err := r.store.ListPartition(ctx, TableRegistrations, eventID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.store.ListPartition -> %w", err)
	}

	for _, e := range entities {
		if strings.ToLower(e.Fields["email"]) == needle {
			return registrationFromEntity(e), nil
		}
	}

	return domain.Registration{}, ErrRegistrationNotFound
}

func (r *RegistrationRepository) FindByTicketCode(ctx context.Context, eventID, ticketCode string) (domain.Registration, error) {
	entities, err := r.store.ListPartition(ctx, TableRegistrations, eventID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.store.ListPartition -> %w", err)
	}

	for _, e := range entities {
		if e.Fields["ticketCode"] == ticketCode {
			return registrationFromEntity(e), nil
		}
	}

	return domain.Registration{}, ErrRegistrationNotFound
}

func (r *RegistrationRepository) Update(ctx context.Context, eventID, registrationID string, updates map[string]string) (domain.Registration, error) {
	e, err := r.store.Merge(ctx, TableRegistrations, eventID, registrationID, updates)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return domain.Registration{}, ErrRegistrationNotFound
		}

		return domain.Registration{}, fmt.Errorf("r.store.Merge -> %w", err)
	}

	return registrationFromEntity(e), nil
}

// Delete removes the registration together with its uniqueness guards, so
// the same person can register again afterwards.
func (r *RegistrationRepository) Delete(ctx context.Context, reg domain.Registration) error {
	if err := r.store.Delete(ctx, TableRegistrations, reg.EventID, reg.ID); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return ErrRegistrationNotFound
		}

		return fmt.Errorf("r.store.Delete -> %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(reg.Email))
	_ = r.store.Delete(ctx, TableRegEmails, reg.EventID, email)
	if reg.UserID != "" {
		_ = r.store.Delete(ctx, TableRegUsers, reg.EventID, reg.UserID)
	}

	return nil
}

func registrationToFields(reg domain.Registration) map[string]string {
	return map[string]string{
		"userId":       reg.UserID,
		"fullName":     reg.FullName,
		"email":        reg.Email,
		"company":      reg.Company,
		"ticketCode":   reg.TicketCode,
		"role":         reg.Role,
		"checkedIn":    boolString(reg.CheckedIn),
		"checkedInAt":  reg.CheckedInAt,
		"registeredAt": reg.RegisteredAt,
	}
}

func registrationFromEntity(e dao.Entity) domain.Registration {
	return domain.Registration{
		ID:           e.RowKey,
		EventID:      e.PartitionKey,
		UserID:       e.Fields["userId"],
		FullName:     e.Fields["fullName"],
		Email:        e.Fields["email"],
		Company:      e.Fields["company"],
		TicketCode:   e.Fields["ticketCode"],
		Role:         e.Fields["role"],
		CheckedIn:    e.Fields["checkedIn"] == "true",
		CheckedInAt:  e.Fields["checkedInAt"],
		RegisteredAt: e.Fields["registeredAt"],
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
