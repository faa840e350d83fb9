package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gsc-community/events-api/internal/badge"
	"github.com/gsc-community/events-api/internal/domain"
	"github.com/gsc-community/events-api/internal/notify"
	"github.com/gsc-community/events-api/internal/repository"
)

type EventGetter interface {
	GetByKey(ctx context.Context, chapterSlug, eventID string) (domain.Event, error)
}

type RegistrationLister interface {
	ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error)
}

type BadgeRepository interface {
	Create(ctx context.Context, b domain.Badge) (domain.Badge, error)
}

type BadgeService struct {
	events   EventGetter
	regs     RegistrationLister
	badges   BadgeRepository
	renderer badge.Renderer
	mailer   notify.Mailer
}

func NewBadgeService(events EventGetter, regs RegistrationLister, badges BadgeRepository, renderer badge.Renderer, mailer notify.Mailer) *BadgeService {
	return &BadgeService{
		events:   events,
		regs:     regs,
		badges:   badges,
		renderer: renderer,
		mailer:   mailer,
	}
}

// IssueError records one recipient the batch could not fully serve.
type IssueError struct {
	Email string `json:"email"`
	Error string `json:"error"`
}

type IssueResult struct {
	Issued int
	Errors []IssueError
}

// Issue creates one badge per checked-in registrant and emails it. The
// loop is best-effort: a failing recipient lands in the error list and the
// rest of the batch continues. A failed email send still counts as issued;
// the badge record is the authoritative outcome.
func (s *BadgeService) Issue(ctx context.Context, eventID, chapterSlug string) (IssueResult, error) {
	event, err := s.events.GetByKey(ctx, chapterSlug, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return IssueResult{}, ErrEventNotFound
		}

		return IssueResult{}, fmt.Errorf("s.events.GetByKey -> %w", err)
	}

	regs, err := s.regs.ListByEvent(ctx, eventID)
	if err != nil {
		return IssueResult{}, fmt.Errorf("s.regs.ListByEvent -> %w", err)
	}

	var result IssueResult
	for _, reg := range regs {
		if !reg.CheckedIn {
			continue
		}

		badgeType := domain.BadgeTypeForRole(reg.Role)
		_, err = s.badges.Create(ctx, domain.Badge{
			ID:             uuid.NewString(),
			EventID:        eventID,
			RecipientEmail: reg.Email,
			RecipientName:  reg.FullName,
			BadgeType:      badgeType,
			UserID:         reg.UserID,
		})
		if err != nil {
			result.Errors = append(result.Errors, IssueError{Email: reg.Email, Error: err.Error()})
			zap.L().Warn(fmt.Sprintf("badge issue failed for %s: %v", reg.Email, err))
			continue
		}

		svg := s.renderer.Render(badge.Card{
			RecipientName: reg.FullName,
			EventTitle:    event.Title,
			EventDate:     event.Date,
			EventLocation: event.Location,
			BadgeType:     badgeType,
		})
		if err = s.mailer.SendBadge(ctx, reg.FullName, reg.Email, svg, event, badgeType); err != nil {
			result.Errors = append(result.Errors, IssueError{Email: reg.Email, Error: err.Error()})
			zap.L().Warn(fmt.Sprintf("badge email failed for %s: %v", reg.Email, err))
		}

		result.Issued++
	}

	return result, nil
}
