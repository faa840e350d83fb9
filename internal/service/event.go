package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gsc-community/events-api/internal/domain"
	"github.com/gsc-community/events-api/internal/notify"
	"github.com/gsc-community/events-api/internal/pkg/sanitise"
	"github.com/gsc-community/events-api/internal/pkg/slug"
	"github.com/gsc-community/events-api/internal/repository"
)

var ErrInvalidStatus = errors.New("invalid status")

const (
	maxTitleLength       = 200
	maxLocationLength    = 500
	maxDescriptionLength = 5000
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	GetByKey(ctx context.Context, chapterSlug, eventID string) (domain.Event, error)
	GetBySlug(ctx context.Context, slug string) (domain.Event, error)
	List(ctx context.Context, chapterSlug string) ([]domain.Event, error)
	Update(ctx context.Context, chapterSlug, eventID string, updates map[string]string) (domain.Event, error)
}

type RegistrationReader interface {
	ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error)
	CountByEvent(ctx context.Context, eventID string) (int, error)
}

type EventService struct {
	events     EventRepository
	regs       RegistrationReader
	notifier   notify.ChatNotifier
	dispatcher notify.Dispatcher
}

func NewEventService(events EventRepository, regs RegistrationReader, notifier notify.ChatNotifier, dispatcher notify.Dispatcher) *EventService {
	return &EventService{
		events:     events,
		regs:       regs,
		notifier:   notifier,
		dispatcher: dispatcher,
	}
}

type CreateEventInput struct {
	Title            string
	Date             string
	EndDate          string
	Description      string
	SessionizeAPIID  string
	RegistrationCap  int
	ChapterSlug      string
	LocationBuilding string
	LocationAddress1 string
	LocationAddress2 string
	LocationCity     string
	LocationState    string
	LegacyLocation   string
}

var ErrFieldTooLong = errors.New("field length exceeds maximum")

// Create stores a new published event, then fires the static-site dispatch
// and the chat announcement. Both are advisory; storage is the source of
// truth.
func (s *EventService) Create(ctx context.Context, createdBy string, in CreateEventInput) (domain.Event, error) {
	title := strings.TrimSpace(sanitise.StripHTML(in.Title))
	description := sanitise.StripHTML(in.Description)
	location := composeLocation(in)

	if len(title) > maxTitleLength || len(location) > maxLocationLength || len(description) > maxDescriptionLength {
		return domain.Event{}, ErrFieldTooLong
	}

	event := domain.Event{
		ID:              uuid.NewString(),
		ChapterSlug:     strings.ToLower(strings.TrimSpace(in.ChapterSlug)),
		Title:           title,
		Slug:            slug.Make(title),
		Date:            in.Date,
		EndDate:         in.EndDate,
		Location:        location,
		Description:     description,
		SessionizeAPIID: in.SessionizeAPIID,
		RegistrationCap: in.RegistrationCap,
		Status:          domain.EventStatusPublished,
		CreatedBy:       createdBy,
	}

	created, err := s.events.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.events.Create -> %w", err)
	}

	if err = s.dispatcher.EventCreated(ctx, created); err != nil {
		zap.L().Warn(fmt.Sprintf("github dispatch failed: %v", err))
	}
	if err = s.notifier.EventCreated(ctx, created); err != nil {
		zap.L().Warn(fmt.Sprintf("discord notification failed: %v", err))
	}

	return created, nil
}

type EventSummary struct {
	Event             domain.Event
	RegistrationCount int
}

// List returns a chapter's events (or all events for an empty slug) with
// their registration counts, for the dashboard.
func (s *EventService) List(ctx context.Context, chapterSlug string) ([]EventSummary, error) {
	events, err := s.events.List(ctx, chapterSlug)
	if err != nil {
		return nil, fmt.Errorf("s.events.List -> %w", err)
	}

	summaries := make([]EventSummary, 0, len(events))
	for _, ev := range events {
		count, err := s.regs.CountByEvent(ctx, ev.ID)
		if err != nil {
			return nil, fmt.Errorf("s.regs.CountByEvent -> %w", err)
		}
		summaries = append(summaries, EventSummary{Event: ev, RegistrationCount: count})
	}

	return summaries, nil
}

// GetPublic looks an event up by its page slug together with remaining
// capacity, for the public event page.
func (s *EventService) GetPublic(ctx context.Context, eventSlug string) (EventSummary, error) {
	event, err := s.events.GetBySlug(ctx, eventSlug)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return EventSummary{}, ErrEventNotFound
		}

		return EventSummary{}, fmt.Errorf("s.events.GetBySlug -> %w", err)
	}

	count, err := s.regs.CountByEvent(ctx, event.ID)
	if err != nil {
		return EventSummary{}, fmt.Errorf("s.regs.CountByEvent -> %w", err)
	}

	return EventSummary{Event: event, RegistrationCount: count}, nil
}

type AttendanceReport struct {
	EventID   string
	Total     int
	CheckedIn int
	Attendees []domain.Registration
}

func (s *EventService) Attendance(ctx context.Context, eventID string) (AttendanceReport, error) {
	regs, err := s.regs.ListByEvent(ctx, eventID)
	if err != nil {
		return AttendanceReport{}, fmt.Errorf("s.regs.ListByEvent -> %w", err)
	}

	checkedIn := 0
	for _, r := range regs {
		if r.CheckedIn {
			checkedIn++
		}
	}

	return AttendanceReport{
		EventID:   eventID,
		Total:     len(regs),
		CheckedIn: checkedIn,
		Attendees: regs,
	}, nil
}

// AttendanceCSV renders the attendance list for download.
func (s *EventService) AttendanceCSV(ctx context.Context, eventID string) (string, error) {
	report, err := s.Attendance(ctx, eventID)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Name", "Email", "Ticket Code", "Role", "Checked In", "Checked In At", "Registered At"})
	for _, r := range report.Attendees {
		checkedIn := "No"
		if r.CheckedIn {
			checkedIn = "Yes"
		}
		_ = w.Write([]string{r.FullName, r.Email, r.TicketCode, r.Role, checkedIn, r.CheckedInAt, r.RegisteredAt})
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return "", fmt.Errorf("csv.Write -> %w", err)
	}

	return buf.String(), nil
}

// UpdateStatus moves an event between lifecycle states. Transitions are
// not ordered; an event can be reopened.
func (s *EventService) UpdateStatus(ctx context.Context, chapterSlug, eventID, status string) (domain.Event, error) {
	if !domain.ValidEventStatus(status) {
		return domain.Event{}, ErrInvalidStatus
	}

	updated, err := s.events.Update(ctx, chapterSlug, eventID, map[string]string{"status": status})
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("s.events.Update -> %w", err)
	}

	return updated, nil
}

// composeLocation prefers the structured address fields and falls back to
// the legacy single location string.
func composeLocation(in CreateEventInput) string {
	if in.LocationAddress1 == "" {
		return sanitise.StripHTML(in.LegacyLocation)
	}

	parts := []string{}
	for _, p := range []string{in.LocationBuilding, in.LocationAddress1, in.LocationAddress2} {
		if p = strings.TrimSpace(sanitise.StripHTML(p)); p != "" {
			parts = append(parts, p)
		}
	}

	cityState := []string{}
	for _, p := range []string{in.LocationCity, in.LocationState} {
		if p = strings.TrimSpace(sanitise.StripHTML(p)); p != "" {
			cityState = append(cityState, p)
		}
	}
	if len(cityState) > 0 {
		parts = append(parts, strings.Join(cityState, " "))
	}

	return strings.Join(parts, "\n")
}
