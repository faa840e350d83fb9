package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gsc-community/events-api/internal/domain"
	"github.com/gsc-community/events-api/internal/repository/dao"
)

var ErrBadgeNotFound = errors.New("badge not found")

type BadgeRepository struct {
	store RecordStore
}

func NewBadgeRepository(store RecordStore) *BadgeRepository {
	return &BadgeRepository{
		store: store,
	}
}

func (r *BadgeRepository) Create(ctx context.Context, badge domain.Badge) (domain.Badge, error) {
	badge.IssuedAt = time.Now().UTC().Format(time.RFC3339)
	err := r.store.Insert(ctx, TableBadges, badge.EventID, badge.ID, map[string]string{
		"recipientEmail": badge.RecipientEmail,
		"recipientName":  badge.RecipientName,
		"badgeType":      badge.BadgeType,
		"userId":         badge.UserID,
		"issuedAt":       badge.IssuedAt,
	})
	if err != nil {
		return domain.Badge{}, fmt.Errorf("r.store.Insert -> %w", err)
	}

	return badge, nil
}

func (r *BadgeRepository) Get(ctx context.Context, eventID, badgeID string) (domain.Badge, error) {
	e, err := r.store.Get(ctx, TableBadges, eventID, badgeID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return domain.Badge{}, ErrBadgeNotFound
		}

		return domain.Badge{}, fmt.Errorf("r.store.Get -> %w", err)
	}

	return badgeFromEntity(e), nil
}

func (r *BadgeRepository) ListByEvent(ctx context.Context, eventID string) ([]domain.Badge, error) {
	entities, err := r.store.ListPartition(ctx, TableBadges, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.store.ListPartition -> %w", err)
	}

	badges := make([]domain.Badge, 0, len(entities))
	for _, e := range entities {
		badges = append(badges, badgeFromEntity(e))
	}

	return badges, nil
}

func badgeFromEntity(e dao.Entity) domain.Badge {
	return domain.Badge{
		ID:             e.RowKey,
		EventID:        e.PartitionKey,
		RecipientEmail: e.Fields["recipientEmail"],
		RecipientName:  e.Fields["recipientName"],
		BadgeType:      e.Fields["badgeType"],
		UserID:         e.Fields["userId"],
		IssuedAt:       e.Fields["issuedAt"],
	}
}
