package v1

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gsc-community/events-api/internal/api/handler/v1/response"
	"github.com/gsc-community/events-api/internal/domain"
)

func TestHandleGetEvent(t *testing.T) {
	t.Run("public page with remaining spots", func(t *testing.T) {
		ts := newTestServer(t)
		ts.seedEvent(t, domain.Event{
			ID:              "evt-1",
			Title:           "Security Night",
			Slug:            "security-night",
			RegistrationCap: 50,
		})

		ada := principalHeader(t, "user-ada", "ada@example.com", "authenticated")
		w := ts.do(t, http.MethodPost, "/api/v1/registrations", ada, gin.H{
			"eventSlug": "security-night",
			"fullName":  "Ada Lovelace",
			"email":     "ada@example.com",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		// No auth header: the page is public.
		page := ts.do(t, http.MethodGet, "/api/v1/events/security-night", "", nil)
		require.Equal(t, http.StatusOK, page.Code)

		var resp response.EventResponse
		decodeBody(t, page, &resp)
		assert.Equal(t, "Security Night", resp.Title)
		assert.Equal(t, 1, resp.RegistrationCount)
		require.NotNil(t, resp.SpotsRemaining)
		assert.Equal(t, 49, *resp.SpotsRemaining)
	})

	t.Run("uncapped event omits remaining spots", func(t *testing.T) {
		ts := newTestServer(t)
		ts.seedEvent(t, domain.Event{ID: "evt-1", Title: "Security Night", Slug: "security-night"})

		page := ts.do(t, http.MethodGet, "/api/v1/events/security-night", "", nil)
		require.Equal(t, http.StatusOK, page.Code)

		var resp response.EventResponse
		decodeBody(t, page, &resp)
		assert.Nil(t, resp.SpotsRemaining)
	})

	t.Run("unknown slug", func(t *testing.T) {
		ts := newTestServer(t)

		page := ts.do(t, http.MethodGet, "/api/v1/events/no-such-event", "", nil)
		require.Equal(t, http.StatusNotFound, page.Code)
		assert.JSONEq(t, `{"error":"Event not found"}`, page.Body.String())
	})
}
