package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gsc-community/events-api/internal/badge"
	"github.com/gsc-community/events-api/internal/domain"
	"github.com/gsc-community/events-api/internal/repository"
)

func TestIssueBadges(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, f *fixture) (domain.Event, []RegisterResult) {
		t.Helper()

		event := f.createEvent(t, domain.Event{Title: "Security Night", Slug: "security-night"})
		checkin := NewCheckInService(f.regs)

		var regs []RegisterResult
		for _, r := range []struct{ user, email string }{
			{"user-1", "a@example.com"},
			{"user-2", "b@example.com"},
			{"user-3", "c@example.com"},
		} {
			result, err := f.svc.Register(ctx, r.user, RegisterInput{
				EventSlug: "security-night",
				FullName:  "Attendee",
				Email:     r.email,
			})
			require.NoError(t, err)
			regs = append(regs, result)

			_, err = checkin.CheckIn(ctx, event.ID, result.Registration.TicketCode)
			require.NoError(t, err)
		}

		return event, regs
	}

	t.Run("issues one badge per checked-in attendee", func(t *testing.T) {
		f := newFixture(t)
		event, _ := setup(t, f)

		badges := repository.NewBadgeRepository(f.store)
		svc := NewBadgeService(f.events, f.regs, badges, badge.NewSVGRenderer(), f.mailer)

		result, err := svc.Issue(ctx, event.ID, event.ChapterSlug)
		require.NoError(t, err)
		assert.Equal(t, 3, result.Issued)
		assert.Empty(t, result.Errors)
		assert.Len(t, f.mailer.badges, 3)
	})

	t.Run("one failing email is reported but does not stop the batch", func(t *testing.T) {
		f := newFixture(t)
		event, _ := setup(t, f)
		f.mailer.failFor = "b@example.com"

		badges := repository.NewBadgeRepository(f.store)
		svc := NewBadgeService(f.events, f.regs, badges, badge.NewSVGRenderer(), f.mailer)

		result, err := svc.Issue(ctx, event.ID, event.ChapterSlug)
		require.NoError(t, err)

		assert.Equal(t, 3, result.Issued)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "b@example.com", result.Errors[0].Email)

		stored, err := badges.ListByEvent(ctx, event.ID)
		require.NoError(t, err)
		assert.Len(t, stored, 3)
	})

	t.Run("skips attendees who never checked in", func(t *testing.T) {
		f := newFixture(t)
		event, _ := setup(t, f)

		_, err := f.svc.Register(ctx, "user-4", RegisterInput{
			EventSlug: "security-night",
			FullName:  "No Show",
			Email:     "noshow@example.com",
		})
		require.NoError(t, err)

		badges := repository.NewBadgeRepository(f.store)
		svc := NewBadgeService(f.events, f.regs, badges, badge.NewSVGRenderer(), f.mailer)

		result, err := svc.Issue(ctx, event.ID, event.ChapterSlug)
		require.NoError(t, err)
		assert.Equal(t, 3, result.Issued)
	})

	t.Run("unknown event", func(t *testing.T) {
		f := newFixture(t)

		badges := repository.NewBadgeRepository(f.store)
		svc := NewBadgeService(f.events, f.regs, badges, badge.NewSVGRenderer(), f.mailer)

		_, err := svc.Issue(ctx, "missing", "columbus")
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}
