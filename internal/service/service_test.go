package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gsc-community/events-api/internal/domain"
	"github.com/gsc-community/events-api/internal/repository"
)

// fakeMailer records sends and can be told to fail for one address.
type fakeMailer struct {
	tickets       []string
	cancellations []string
	badges        []string
	failFor       string
}

var errSendFailed = errors.New("send failed")

func (m *fakeMailer) SendTicket(_ context.Context, reg domain.Registration, _ domain.Event, _ string) error {
	if reg.Email == m.failFor {
		return errSendFailed
	}
	m.tickets = append(m.tickets, reg.Email)
	return nil
}

func (m *fakeMailer) SendCancellation(_ context.Context, reg domain.Registration, _ domain.Event) error {
	if reg.Email == m.failFor {
		return errSendFailed
	}
	m.cancellations = append(m.cancellations, reg.Email)
	return nil
}

func (m *fakeMailer) SendBadge(_ context.Context, _, email, _ string, _ domain.Event, _ string) error {
	if email == m.failFor {
		return errSendFailed
	}
	m.badges = append(m.badges, email)
	return nil
}

type fixture struct {
	store  *repository.MemStore
	events *repository.EventRepository
	regs   *repository.RegistrationRepository
	demos  *repository.DemographicsRepository
	mailer *fakeMailer
	svc    *RegistrationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := repository.NewMemStore()
	f := &fixture{
		store:  store,
		events: repository.NewEventRepository(store),
		regs:   repository.NewRegistrationRepository(store),
		demos:  repository.NewDemographicsRepository(store),
		mailer: &fakeMailer{},
	}
	f.svc = NewRegistrationService(f.events, f.regs, f.demos, f.mailer)

	return f
}

func (f *fixture) createEvent(t *testing.T, event domain.Event) domain.Event {
	t.Helper()

	if event.ID == "" {
		event.ID = "evt-" + event.Slug
	}
	if event.ChapterSlug == "" {
		event.ChapterSlug = "columbus"
	}
	if event.Status == "" {
		event.Status = domain.EventStatusPublished
	}

	created, err := f.events.Create(context.Background(), event)
	require.NoError(t, err)

	return created
}
