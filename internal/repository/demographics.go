package repository

import (
	"context"
	"fmt"

	"github.com/gsc-community/events-api/internal/domain"
)

type DemographicsRepository struct {
	store RecordStore
}

func NewDemographicsRepository(store RecordStore) *DemographicsRepository {
	return &DemographicsRepository{
		store: store,
	}
}

func (r *DemographicsRepository) Create(ctx context.Context, d domain.Demographics) error {
	err := r.store.Insert(ctx, TableDemographics, d.EventID, d.RegistrationID, map[string]string{
		"employmentStatus": d.EmploymentStatus,
		"industry":         d.Industry,
		"jobTitle":         d.JobTitle,
		"companySize":      d.CompanySize,
		"experienceLevel":  d.ExperienceLevel,
	})
	if err != nil {
		return fmt.Errorf("r.store.Insert -> %w", err)
	}

	return nil
}

func (r *DemographicsRepository) Delete(ctx context.Context, eventID, registrationID string) error {
	return r.store.Delete(ctx, TableDemographics, eventID, registrationID)
}
