package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/gsc-community/events-api/internal/domain"
	"github.com/gsc-community/events-api/internal/repository"
)

var ErrVolunteerNotFound = repository.ErrVolunteerNotFound

type VolunteerRepository interface {
	Create(ctx context.Context, v domain.Volunteer) (domain.Volunteer, error)
	ListByEvent(ctx context.Context, eventID string) ([]domain.Volunteer, error)
	Delete(ctx context.Context, eventID, volunteerID string) error
}

type VolunteerService struct {
	events     EventFinder
	volunteers VolunteerRepository
}

func NewVolunteerService(events EventFinder, volunteers VolunteerRepository) *VolunteerService {
	return &VolunteerService{
		events:     events,
		volunteers: volunteers,
	}
}

func (s *VolunteerService) Add(ctx context.Context, addedBy, eventID, email, name string) (domain.Volunteer, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Volunteer{}, ErrEventNotFound
		}

		return domain.Volunteer{}, fmt.Errorf("s.events.GetByID -> %w", err)
	}

	created, err := s.volunteers.Create(ctx, domain.Volunteer{
		ID:      uuid.NewString(),
		EventID: eventID,
		Email:   email,
		Name:    name,
		AddedBy: addedBy,
	})
	if err != nil {
		return domain.Volunteer{}, fmt.Errorf("s.volunteers.Create -> %w", err)
	}

	return created, nil
}

func (s *VolunteerService) List(ctx context.Context, eventID string) ([]domain.Volunteer, error) {
	volunteers, err := s.volunteers.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.volunteers.ListByEvent -> %w", err)
	}

	return volunteers, nil
}

func (s *VolunteerService) Remove(ctx context.Context, eventID, volunteerID string) error {
	if err := s.volunteers.Delete(ctx, eventID, volunteerID); err != nil {
		if errors.Is(err, repository.ErrVolunteerNotFound) {
			return ErrVolunteerNotFound
		}

		return fmt.Errorf("s.volunteers.Delete -> %w", err)
	}

	return nil
}
