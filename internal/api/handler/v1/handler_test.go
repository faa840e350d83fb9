package v1

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/gsc-community/events-api/internal/api/middleware"
	"github.com/gsc-community/events-api/internal/domain"
	"github.com/gsc-community/events-api/internal/identity"
	"github.com/gsc-community/events-api/internal/repository"
	"github.com/gsc-community/events-api/internal/service"
)

type stubMailer struct{}

func (stubMailer) SendTicket(context.Context, domain.Registration, domain.Event, string) error {
	return nil
}

func (stubMailer) SendCancellation(context.Context, domain.Registration, domain.Event) error {
	return nil
}

func (stubMailer) SendBadge(context.Context, string, string, string, domain.Event, string) error {
	return nil
}

type stubNotifier struct{}

func (stubNotifier) EventCreated(context.Context, domain.Event) error {
	return nil
}

// testServer mounts the real handlers and middleware over an in-memory
// record store, so requests flow through the same stack as production.
type testServer struct {
	router *gin.Engine
	events *repository.EventRepository
	regs   *repository.RegistrationRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemStore()
	events := repository.NewEventRepository(store)
	regs := repository.NewRegistrationRepository(store)
	demos := repository.NewDemographicsRepository(store)
	apps := repository.NewApplicationRepository(store)
	volunteers := repository.NewVolunteerRepository(store)

	registrationHandler := NewRegistrationHandler(
		service.NewRegistrationService(events, regs, demos, stubMailer{}))
	checkInHandler := NewCheckInHandler(service.NewCheckInService(regs))
	eventHandler := NewEventHandler(
		service.NewEventService(events, regs, stubNotifier{}, stubNotifier{}))

	router := gin.New()
	router.Use(middleware.ResolvePrincipal(
		identity.NewHeaderProvider(),
		identity.NewResolver(apps, volunteers)))

	api := router.Group("/api/v1")
	api.GET("/events/:slug", eventHandler.HandleGetEvent)

	authed := api.Group("", middleware.RequireAuth())
	authed.POST("/registrations", registrationHandler.HandleRegister)
	authed.POST("/registrations/cancel", registrationHandler.HandleCancel)

	door := api.Group("", middleware.RequireRoles("admin", "volunteer"))
	door.POST("/checkin", checkInHandler.HandleCheckIn)

	admin := api.Group("", middleware.RequireRoles("admin"))
	admin.POST("/registrations/admin", registrationHandler.HandleAdminRegister)
	admin.POST("/registrations/roles", registrationHandler.HandleUpdateRoles)

	return &testServer{
		router: router,
		events: events,
		regs:   regs,
	}
}

func (ts *testServer) seedEvent(t *testing.T, event domain.Event) domain.Event {
	t.Helper()
	if event.ChapterSlug == "" {
		event.ChapterSlug = "columbus"
	}
	if event.Status == "" {
		event.Status = domain.EventStatusPublished
	}

	created, err := ts.events.Create(context.Background(), event)
	require.NoError(t, err)

	return created
}

func (ts *testServer) do(t *testing.T, method, path, principal string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if principal != "" {
		req.Header.Set(identity.PrincipalHeader, principal)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	return w
}

// principalHeader builds the base64 JSON trust header the perimeter would
// attach for an authenticated caller.
func principalHeader(t *testing.T, userID, email string, roles ...string) string {
	t.Helper()

	payload, err := json.Marshal(identity.Principal{
		UserID:           userID,
		UserDetails:      email,
		UserRoles:        roles,
		IdentityProvider: "github",
	})
	require.NoError(t, err)

	return base64.StdEncoding.EncodeToString(payload)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestGuards(t *testing.T) {
	ts := newTestServer(t)

	t.Run("anonymous request is rejected", func(t *testing.T) {
		w := ts.do(t, http.MethodPost, "/api/v1/registrations", "", gin.H{})
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("authenticated caller without admin role is forbidden", func(t *testing.T) {
		attendee := principalHeader(t, "user-1", "user@example.com", "authenticated")
		w := ts.do(t, http.MethodPost, "/api/v1/registrations/admin", attendee, gin.H{})
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("volunteer can reach the check-in endpoint", func(t *testing.T) {
		volunteer := principalHeader(t, "user-2", "door@example.com", "authenticated", "volunteer")
		w := ts.do(t, http.MethodPost, "/api/v1/checkin", volunteer, gin.H{
			"eventId":    "evt-none",
			"ticketCode": "AAAA1111",
		})
		require.NotEqual(t, http.StatusForbidden, w.Code)
		require.NotEqual(t, http.StatusUnauthorized, w.Code)
	})
}
