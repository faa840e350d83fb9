package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/gsc-community/events-api/internal/domain"
	"github.com/gsc-community/events-api/internal/pkg/ticketcode"
	"github.com/gsc-community/events-api/internal/repository"
)

type UserRegistrationLister interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Registration, error)
}

type TicketService struct {
	events EventFinder
	regs   UserRegistrationLister
}

func NewTicketService(events EventFinder, regs UserRegistrationLister) *TicketService {
	return &TicketService{
		events: events,
		regs:   regs,
	}
}

type Ticket struct {
	Registration domain.Registration `json:"registration"`
	Event        *domain.Event       `json:"event,omitempty"`
	QRDataURL    string              `json:"qrDataUrl,omitempty"`
}

// MyTickets lists the caller's registrations across all events, each with
// its event details and a QR data URL for the ticket code. Registrations
// whose event has since been deleted are still returned, without details.
func (s *TicketService) MyTickets(ctx context.Context, userID string) ([]Ticket, error) {
	regs, err := s.regs.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.regs.ListByUser -> %w", err)
	}

	events := map[string]*domain.Event{}
	tickets := make([]Ticket, 0, len(regs))
	for _, reg := range regs {
		event, cached := events[reg.EventID]
		if !cached {
			found, err := s.events.GetByID(ctx, reg.EventID)
			switch {
			case err == nil:
				event = &found
			case errors.Is(err, repository.ErrEventNotFound):
				event = nil
			default:
				zap.L().Warn(fmt.Sprintf("event lookup for ticket failed: %v", err))
				event = nil
			}
			events[reg.EventID] = event
		}

		tickets = append(tickets, Ticket{
			Registration: reg,
			Event:        event,
			QRDataURL:    ticketcode.QRDataURL(reg.TicketCode),
		})
	}

	return tickets, nil
}
