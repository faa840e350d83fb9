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

var ErrVolunteerNotFound = errors.New("volunteer not found")

type VolunteerRepository struct {
	store RecordStore
}

func NewVolunteerRepository(store RecordStore) *VolunteerRepository {
	return &VolunteerRepository{
		store: store,
	}
}

func (r *VolunteerRepository) Create(ctx context.Context, v domain.Volunteer) (domain.Volunteer, error) {
	v.Email = strings.ToLower(strings.TrimSpace(v.Email))
	v.AddedAt = time.Now().UTC().Format(time.RFC3339)
	err := r.store.Insert(ctx, TableVolunteers, v.EventID, v.ID, map[string]string{
		"email":   v.Email,
		"name":    v.Name,
		"addedBy": v.AddedBy,
		"addedAt": v.AddedAt,
	})
	if err != nil {
		return domain.Volunteer{}, fmt.Errorf("r.store.Insert -> %w", err)
	}

	return v, nil
}

func (r *VolunteerRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Volunteer, error) {
	entities, err := r.store.ListPartition(ctx, TableVolunteers, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.store.ListPartition -> %w", err)
	}

	volunteers := make([]domain.Volunteer, 0, len(entities))
	for _, e := range entities {
		volunteers = append(volunteers, volunteerFromEntity(e))
	}

	return volunteers, nil
}

func (r *VolunteerRepository) Delete(ctx context.Context, eventID, volunteerID string) error {
	if err := r.store.Delete(ctx, TableVolunteers, eventID, volunteerID); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return ErrVolunteerNotFound
		}

		return fmt.Errorf("r.store.Delete -> %w", err)
	}

	return nil
}

// IsVolunteerForAnyEvent reports whether the email belongs to a volunteer
// of any event. Used by the identity resolver's role grant.
func (r *VolunteerRepository) IsVolunteerForAnyEvent(ctx context.Context, email string) (bool, error) {
	needle := strings.ToLower(strings.TrimSpace(email))
	matches, err := r.store.Scan(ctx, TableVolunteers, func(e dao.Entity) bool {
		return e.Fields["email"] == needle
	})
	if err != nil {
		return false, fmt.Errorf("r.store.Scan -> %w", err)
	}

	return len(matches) > 0, nil
}

func volunteerFromEntity(e dao.Entity) domain.Volunteer {
	return domain.Volunteer{
		ID:      e.RowKey,
		EventID: e.PartitionKey,
		Email:   e.Fields["email"],
		Name:    e.Fields["name"],
		AddedBy: e.Fields["addedBy"],
		AddedAt: e.Fields["addedAt"],
	}
}
