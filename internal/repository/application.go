package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gsc-community/events-api/internal/domain"
	"github.com/gsc-community/events-api/internal/repository/dao"
)

var ErrApplicationNotFound = errors.New("application not found")

// ApplicationRepository reads chapter applications. The application
// workflow itself lives elsewhere; this service only needs approved records
// to decide who is a chapter lead.
type ApplicationRepository struct {
	store RecordStore
}

func NewApplicationRepository(store RecordStore) *ApplicationRepository {
	return &ApplicationRepository{
		store: store,
	}
}

// FindApprovedByEmail matches the email against the primary or second lead
// of any approved application.
func (r *ApplicationRepository) FindApprovedByEmail(ctx context.Context, email string) (domain.ChapterApplication, error) {
	needle := strings.ToLower(strings.TrimSpace(email))
	matches, err := r.store.Scan(ctx, TableApplications, func(e dao.Entity) bool {
		if e.Fields["status"] != domain.ApplicationStatusApproved {
			return false
		}
		return strings.ToLower(e.Fields["email"]) == needle ||
			strings.ToLower(e.Fields["secondLeadEmail"]) == needle
	})
	if err != nil {
		return domain.ChapterApplication{}, fmt.Errorf("r.store.Scan -> %w", err)
	}
	if len(matches) == 0 {
		return domain.ChapterApplication{}, ErrApplicationNotFound
	}

	return applicationFromEntity(matches[0]), nil
}

func applicationFromEntity(e dao.Entity) domain.ChapterApplication {
	return domain.ChapterApplication{
		ID:              e.RowKey,
		FullName:        e.Fields["fullName"],
		Email:           e.Fields["email"],
		City:            e.Fields["city"],
		Country:         e.Fields["country"],
		SecondLeadName:  e.Fields["secondLeadName"],
		SecondLeadEmail: e.Fields["secondLeadEmail"],
		Status:          e.Fields["status"],
		SubmittedAt:     e.Fields["submittedAt"],
	}
}
