package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gsc-community/events-api/internal/domain"
	"github.com/gsc-community/events-api/internal/repository/dao"
)

var ErrEventNotFound = errors.New("event not found")

type EventRepository struct {
	store RecordStore
}

func NewEventRepository(store RecordStore) *EventRepository {
	return &EventRepository{
		store: store,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	event.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	err := r.store.Insert(ctx, TableEvents, event.ChapterSlug, event.ID, eventToFields(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.store.Insert -> %w", err)
	}

	return event, nil
}

func (r *EventRepository) GetByKey(ctx context.Context, chapterSlug, eventID string) (domain.Event, error) {
	e, err := r.store.Get(ctx, TableEvents, chapterSlug, eventID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("r.store.Get -> %w", err)
	}

	return eventFromEntity(e), nil
}

// GetByID finds an event without knowing its chapter. Row keys are only
// unique within a partition in the underlying model, so this is a scan.
func (r *EventRepository) GetByID(ctx context.Context, eventID string) (domain.Event, error) {
	matches, err := r.store.Scan(ctx, TableEvents, func(e dao.Entity) bool {
		return e.RowKey == eventID
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.store.Scan -> %w", err)
	}
	if len(matches) == 0 {
		return domain.Event{}, ErrEventNotFound
	}

	return eventFromEntity(matches[0]), nil
}

func (r *EventRepository) GetBySlug(ctx context.Context, slug string) (domain.Event, error) {
	matches, err := r.store.Scan(ctx, TableEvents, func(e dao.Entity) bool {
		return e.Fields["slug"] == slug
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.store.Scan -> %w", err)
	}
	if len(matches) == 0 {
		return domain.Event{}, ErrEventNotFound
	}

	return eventFromEntity(matches[0]), nil
}

// List returns the events of one chapter, or all events when chapterSlug
// is empty.
func (r *EventRepository) List(ctx context.Context, chapterSlug string) ([]domain.Event, error) {
	var (
		entities []dao.Entity
		err      error
	)
	if chapterSlug == "" {
		entities, err = r.store.Scan(ctx, TableEvents, func(dao.Entity) bool { return true })
	} else {
		entities, err = r.store.ListPartition(ctx, TableEvents, chapterSlug)
	}
	if err != nil {
		return nil, fmt.Errorf("r.store list -> %w", err)
	}

	events := make([]domain.Event, 0, len(entities))
	for _, e := range entities {
		events = append(events, eventFromEntity(e))
	}

	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, chapterSlug, eventID string, updates map[string]string) (domain.Event, error) {
	updates["updatedAt"] = time.Now().UTC().Format(time.RFC3339)
	e, err := r.store.Merge(ctx, TableEvents, chapterSlug, eventID, updates)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("r.store.Merge -> %w", err)
	}

	return eventFromEntity(e), nil
}

func eventToFields(e domain.Event) map[string]string {
	return map[string]string{
		"title":           e.Title,
		"slug":            e.Slug,
		"chapterSlug":     e.ChapterSlug,
		"date":            e.Date,
		"endDate":         e.EndDate,
		"location":        e.Location,
		"description":     e.Description,
		"sessionizeApiId": e.SessionizeAPIID,
		"registrationCap": strconv.Itoa(e.RegistrationCap),
		"status":          e.Status,
		"createdBy":       e.CreatedBy,
		"createdAt":       e.CreatedAt,
	}
}

func eventFromEntity(e dao.Entity) domain.Event {
	cap, _ := strconv.Atoi(e.Fields["registrationCap"])
	return domain.Event{
		ID:              e.RowKey,
		ChapterSlug:     e.PartitionKey,
		Title:           e.Fields["title"],
		Slug:            e.Fields["slug"],
		Date:            e.Fields["date"],
		EndDate:         e.Fields["endDate"],
		Location:        e.Fields["location"],
		Description:     e.Fields["description"],
		SessionizeAPIID: e.Fields["sessionizeApiId"],
		RegistrationCap: cap,
		Status:          e.Fields["status"],
		CreatedBy:       e.Fields["createdBy"],
		CreatedAt:       e.Fields["createdAt"],
	}
}
