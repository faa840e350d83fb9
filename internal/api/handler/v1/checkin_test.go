package v1

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gsc-community/events-api/internal/api/handler/v1/response"
	"github.com/gsc-community/events-api/internal/domain"
	"github.com/gsc-community/events-api/internal/service"
)

func TestHandleCheckIn(t *testing.T) {
	door := func(t *testing.T) string {
		return principalHeader(t, "user-door", "door@example.com", "authenticated", "volunteer")
	}

	register := func(t *testing.T, ts *testServer) response.RegisterResponse {
		t.Helper()
		ada := principalHeader(t, "user-ada", "ada@example.com", "authenticated")
		w := ts.do(t, http.MethodPost, "/api/v1/registrations", ada, gin.H{
			"eventSlug": "security-night",
			"fullName":  "Ada Lovelace",
			"email":     "ada@example.com",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var reg response.RegisterResponse
		decodeBody(t, w, &reg)

		return reg
	}

	t.Run("scanning a valid ticket twice is idempotent", func(t *testing.T) {
		ts := newTestServer(t)
		ts.seedEvent(t, domain.Event{ID: "evt-1", Title: "Security Night", Slug: "security-night"})
		reg := register(t, ts)

		body := gin.H{"eventId": "evt-1", "ticketCode": reg.TicketCode}

		first := ts.do(t, http.MethodPost, "/api/v1/checkin", door(t), body)
		require.Equal(t, http.StatusOK, first.Code)

		var firstResp response.CheckInResponse
		decodeBody(t, first, &firstResp)
		assert.Equal(t, service.CheckInStatusCheckedIn, firstResp.Status)
		assert.Equal(t, "Ada Lovelace", firstResp.AttendeeName)
		assert.NotEmpty(t, firstResp.CheckedInAt)

		second := ts.do(t, http.MethodPost, "/api/v1/checkin", door(t), body)
		require.Equal(t, http.StatusOK, second.Code)

		var secondResp response.CheckInResponse
		decodeBody(t, second, &secondResp)
		assert.Equal(t, service.CheckInStatusAlreadyCheckedIn, secondResp.Status)
		assert.Equal(t, firstResp.CheckedInAt, secondResp.CheckedInAt)
	})

	t.Run("unknown ticket code", func(t *testing.T) {
		ts := newTestServer(t)
		ts.seedEvent(t, domain.Event{ID: "evt-1", Title: "Security Night", Slug: "security-night"})

		w := ts.do(t, http.MethodPost, "/api/v1/checkin", door(t), gin.H{
			"eventId":    "evt-1",
			"ticketCode": "NOSUCH00",
		})
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"status":"invalid"}`, w.Body.String())
	})

	t.Run("missing ticket code fails validation", func(t *testing.T) {
		ts := newTestServer(t)

		w := ts.do(t, http.MethodPost, "/api/v1/checkin", door(t), gin.H{
			"eventId": "evt-1",
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}
