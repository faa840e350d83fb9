package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gsc-community/events-api/internal/domain"
)

func TestCheckIn(t *testing.T) {
	ctx := context.Background()

	t.Run("first scan checks in, second reports already checked in", func(t *testing.T) {
		f := newFixture(t)
		event := f.createEvent(t, domain.Event{Title: "Security Night", Slug: "security-night"})

		reg, err := f.svc.Register(ctx, "user-1", RegisterInput{
			EventSlug: "security-night",
			FullName:  "Ada Lovelace",
			Email:     "ada@example.com",
		})
		require.NoError(t, err)

		svc := NewCheckInService(f.regs)

		first, err := svc.CheckIn(ctx, event.ID, reg.Registration.TicketCode)
		require.NoError(t, err)
		assert.Equal(t, CheckInStatusCheckedIn, first.Status)
		assert.Equal(t, "Ada Lovelace", first.AttendeeName)
		assert.NotEmpty(t, first.CheckedInAt)

		second, err := svc.CheckIn(ctx, event.ID, reg.Registration.TicketCode)
		require.NoError(t, err)
		assert.Equal(t, CheckInStatusAlreadyCheckedIn, second.Status)
		assert.Equal(t, first.CheckedInAt, second.CheckedInAt)
	})

	t.Run("unknown ticket code is invalid", func(t *testing.T) {
		f := newFixture(t)
		event := f.createEvent(t, domain.Event{Title: "Security Night", Slug: "security-night"})

		svc := NewCheckInService(f.regs)

		result, err := svc.CheckIn(ctx, event.ID, "NOSUCH00")
		assert.ErrorIs(t, err, ErrRegistrationNotFound)
		assert.Equal(t, CheckInStatusInvalid, result.Status)
	})
}
