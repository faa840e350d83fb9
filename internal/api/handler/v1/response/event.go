package response

import (
	"github.com/gsc-community/events-api/internal/domain"
)

type EventResponse struct {
	domain.Event
	RegistrationCount int  `json:"registrationCount"`
	SpotsRemaining    *int `json:"spotsRemaining,omitempty"`
}

// NewEventResponse computes remaining capacity for capped events; uncapped
// events omit the field.
func NewEventResponse(event domain.Event, registrationCount int) EventResponse {
	resp := EventResponse{
		Event:             event,
		RegistrationCount: registrationCount,
	}
	if event.RegistrationCap > 0 {
		remaining := event.RegistrationCap - registrationCount
		if remaining < 0 {
			remaining = 0
		}
		resp.SpotsRemaining = &remaining
	}

	return resp
}

type AttendanceResponse struct {
	EventID   string                `json:"eventId"`
	Total     int                   `json:"total"`
	CheckedIn int                   `json:"checkedIn"`
	Attendees []domain.Registration `json:"attendees"`
}
