package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gsc-community/events-api/internal/domain"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a ticket and stores demographics", func(t *testing.T) {
		f := newFixture(t)
		event := f.createEvent(t, domain.Event{Title: "Security Night", Slug: "security-night"})

		result, err := f.svc.Register(ctx, "user-1", RegisterInput{
			EventSlug:        "security-night",
			FullName:         "Ada Lovelace",
			Email:            "ada@example.com",
			EmploymentStatus: "employed",
		})
		require.NoError(t, err)

		assert.Len(t, result.Registration.TicketCode, 8)
		assert.Equal(t, domain.RoleAttendee, result.Registration.Role)
		assert.Equal(t, event.ID, result.Registration.EventID)
		assert.NotEmpty(t, result.QRDataURL)
		assert.Equal(t, []string{"ada@example.com"}, f.mailer.tickets)
	})

	t.Run("unknown event slug", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Register(ctx, "user-1", RegisterInput{
			EventSlug: "unknown-event",
			FullName:  "Ada Lovelace",
			Email:     "ada@example.com",
		})
		assert.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("closed event", func(t *testing.T) {
		f := newFixture(t)
		f.createEvent(t, domain.Event{Title: "Closed", Slug: "closed", Status: domain.EventStatusClosed})

		_, err := f.svc.Register(ctx, "user-1", RegisterInput{
			EventSlug: "closed",
			FullName:  "Ada Lovelace",
			Email:     "ada@example.com",
		})
		assert.ErrorIs(t, err, ErrRegistrationClosed)
	})

	t.Run("second registration returns the original ticket code", func(t *testing.T) {
		f := newFixture(t)
		f.createEvent(t, domain.Event{Title: "Security Night", Slug: "security-night"})

		first, err := f.svc.Register(ctx, "user-1", RegisterInput{
			EventSlug: "security-night",
			FullName:  "Ada Lovelace",
			Email:     "ada@example.com",
		})
		require.NoError(t, err)

		_, err = f.svc.Register(ctx, "user-1", RegisterInput{
			EventSlug: "security-night",
			FullName:  "Ada Lovelace",
			Email:     "ada@example.com",
		})

		var dup *AlreadyRegisteredError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, first.Registration.TicketCode, dup.TicketCode)
	})

	t.Run("same email under a different account conflicts", func(t *testing.T) {
		f := newFixture(t)
		f.createEvent(t, domain.Event{Title: "Security Night", Slug: "security-night"})

		first, err := f.svc.Register(ctx, "user-1", RegisterInput{
			EventSlug: "security-night",
			FullName:  "Ada Lovelace",
			Email:     "ada@example.com",
		})
		require.NoError(t, err)

		_, err = f.svc.Register(ctx, "user-2", RegisterInput{
			EventSlug: "security-night",
			FullName:  "Ada Again",
			Email:     "Ada@Example.com",
		})

		var dup *AlreadyRegisteredError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, first.Registration.TicketCode, dup.TicketCode)
	})

	t.Run("capacity reached", func(t *testing.T) {
		f := newFixture(t)
		f.createEvent(t, domain.Event{Title: "Small Room", Slug: "small-room", RegistrationCap: 2})

		for i, email := range []string{"a@example.com", "b@example.com"} {
			_, err := f.svc.Register(ctx, "user-"+string(rune('1'+i)), RegisterInput{
				EventSlug: "small-room",
				FullName:  "Attendee",
				Email:     email,
			})
			require.NoError(t, err)
		}

		_, err := f.svc.Register(ctx, "user-3", RegisterInput{
			EventSlug: "small-room",
			FullName:  "Latecomer",
			Email:     "c@example.com",
		})
		assert.ErrorIs(t, err, ErrCapacityExceeded)
	})

	t.Run("email failure does not fail the registration", func(t *testing.T) {
		f := newFixture(t)
		f.createEvent(t, domain.Event{Title: "Security Night", Slug: "security-night"})
		f.mailer.failFor = "ada@example.com"

		result, err := f.svc.Register(ctx, "user-1", RegisterInput{
			EventSlug: "security-night",
			FullName:  "Ada Lovelace",
			Email:     "ada@example.com",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Registration.TicketCode)
	})

	t.Run("strips markup from names", func(t *testing.T) {
		f := newFixture(t)
		f.createEvent(t, domain.Event{Title: "Security Night", Slug: "security-night"})

		result, err := f.svc.Register(ctx, "user-1", RegisterInput{
			EventSlug: "security-night",
			FullName:  "<script>alert(1)</script>Ada",
			Email:     "ada@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, "alert(1)Ada", result.Registration.FullName)
	})
}

func TestAdminRegister(t *testing.T) {
	ctx := context.Background()

	fillEvent := func(t *testing.T, f *fixture, eventSlug string) {
		t.Helper()
		for _, r := range []struct{ user, email string }{
			{"user-1", "a@example.com"},
			{"user-2", "b@example.com"},
		} {
			_, err := f.svc.Register(ctx, r.user, RegisterInput{
				EventSlug: eventSlug,
				FullName:  "Attendee",
				Email:     r.email,
			})
			require.NoError(t, err)
		}
	}

	t.Run("attendee at capacity is refused", func(t *testing.T) {
		f := newFixture(t)
		event := f.createEvent(t, domain.Event{Title: "Small Room", Slug: "small-room", RegistrationCap: 2})
		fillEvent(t, f, "small-room")

		_, err := f.svc.AdminRegister(ctx, AdminRegisterInput{
			EventID: event.ID,
			Name:    "Third Person",
			Email:   "c@example.com",
			Role:    domain.RoleAttendee,
		})
		assert.ErrorIs(t, err, ErrCapacityExceeded)
	})

	t.Run("speaker bypasses capacity", func(t *testing.T) {
		f := newFixture(t)
		event := f.createEvent(t, domain.Event{Title: "Small Room", Slug: "small-room", RegistrationCap: 2})
		fillEvent(t, f, "small-room")

		result, err := f.svc.AdminRegister(ctx, AdminRegisterInput{
			EventID: event.ID,
			Name:    "Keynote Speaker",
			Email:   "speaker@example.com",
			Role:    domain.RoleSpeaker,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleSpeaker, result.Registration.Role)
	})

	t.Run("defaults to attendee role", func(t *testing.T) {
		f := newFixture(t)
		event := f.createEvent(t, domain.Event{Title: "Open Room", Slug: "open-room"})

		result, err := f.svc.AdminRegister(ctx, AdminRegisterInput{
			EventID: event.ID,
			Name:    "Walk In",
			Email:   "walkin@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAttendee, result.Registration.Role)
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		f := newFixture(t)
		event := f.createEvent(t, domain.Event{Title: "Open Room", Slug: "open-room"})

		_, err := f.svc.AdminRegister(ctx, AdminRegisterInput{
			EventID: event.ID,
			Name:    "Walk In",
			Email:   "walkin@example.com",
			Role:    "vip",
		})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("refuses completed events", func(t *testing.T) {
		f := newFixture(t)
		event := f.createEvent(t, domain.Event{Title: "Done", Slug: "done", Status: domain.EventStatusCompleted})

		_, err := f.svc.AdminRegister(ctx, AdminRegisterInput{
			EventID: event.ID,
			Name:    "Walk In",
			Email:   "walkin@example.com",
		})
		assert.ErrorIs(t, err, ErrEventCompleted)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		f := newFixture(t)
		event := f.createEvent(t, domain.Event{Title: "Open Room", Slug: "open-room"})

		first, err := f.svc.AdminRegister(ctx, AdminRegisterInput{
			EventID: event.ID,
			Name:    "Walk In",
			Email:   "walkin@example.com",
		})
		require.NoError(t, err)

		_, err = f.svc.AdminRegister(ctx, AdminRegisterInput{
			EventID: event.ID,
			Name:    "Walk In",
			Email:   "walkin@example.com",
		})

		var dup *AlreadyRegisteredError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, first.Registration.TicketCode, dup.TicketCode)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("cancel then re-register succeeds", func(t *testing.T) {
		f := newFixture(t)
		f.createEvent(t, domain.Event{Title: "Security Night", Slug: "security-night"})

		first, err := f.svc.Register(ctx, "user-1", RegisterInput{
			EventSlug: "security-night",
			FullName:  "Ada Lovelace",
			Email:     "ada@example.com",
		})
		require.NoError(t, err)

		require.NoError(t, f.svc.Cancel(ctx, "user-1", first.Registration.ID))
		assert.Equal(t, []string{"ada@example.com"}, f.mailer.cancellations)

		second, err := f.svc.Register(ctx, "user-1", RegisterInput{
			EventSlug: "security-night",
			FullName:  "Ada Lovelace",
			Email:     "ada@example.com",
		})
		require.NoError(t, err)
		assert.NotEqual(t, first.Registration.TicketCode, second.Registration.TicketCode)
	})

	t.Run("cannot cancel someone else's registration", func(t *testing.T) {
		f := newFixture(t)
		f.createEvent(t, domain.Event{Title: "Security Night", Slug: "security-night"})

		first, err := f.svc.Register(ctx, "user-1", RegisterInput{
			EventSlug: "security-night",
			FullName:  "Ada Lovelace",
			Email:     "ada@example.com",
		})
		require.NoError(t, err)

		err = f.svc.Cancel(ctx, "user-2", first.Registration.ID)
		assert.ErrorIs(t, err, ErrRegistrationNotFound)
	})

	t.Run("cancel after check-in is refused", func(t *testing.T) {
		f := newFixture(t)
		event := f.createEvent(t, domain.Event{Title: "Security Night", Slug: "security-night"})

		first, err := f.svc.Register(ctx, "user-1", RegisterInput{
			EventSlug: "security-night",
			FullName:  "Ada Lovelace",
			Email:     "ada@example.com",
		})
		require.NoError(t, err)

		checkin := NewCheckInService(f.regs)
		_, err = checkin.CheckIn(ctx, event.ID, first.Registration.TicketCode)
		require.NoError(t, err)

		err = f.svc.Cancel(ctx, "user-1", first.Registration.ID)
		assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	})
}

func TestUpdateRoles(t *testing.T) {
	ctx := context.Background()

	t.Run("mixed valid and invalid ids", func(t *testing.T) {
		f := newFixture(t)
		event := f.createEvent(t, domain.Event{Title: "Security Night", Slug: "security-night"})

		first, err := f.svc.Register(ctx, "user-1", RegisterInput{
			EventSlug: "security-night",
			FullName:  "Ada Lovelace",
			Email:     "ada@example.com",
		})
		require.NoError(t, err)

		updated, updateErrs, err := f.svc.UpdateRoles(ctx, event.ID,
			[]string{first.Registration.ID, "missing-id"}, domain.RoleVolunteer)
		require.NoError(t, err)

		assert.Equal(t, 1, updated)
		require.Len(t, updateErrs, 1)
		assert.Equal(t, "missing-id", updateErrs[0].ID)

		reg, err := f.regs.Get(ctx, event.ID, first.Registration.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleVolunteer, reg.Role)
	})

	t.Run("invalid role aborts before any update", func(t *testing.T) {
		f := newFixture(t)
		event := f.createEvent(t, domain.Event{Title: "Security Night", Slug: "security-night"})

		_, _, err := f.svc.UpdateRoles(ctx, event.ID, []string{"any"}, "vip")
		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}
