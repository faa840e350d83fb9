package response

import (
	"github.com/gsc-community/events-api/internal/domain"
)

type RegisterResponse struct {
	RegistrationID string       `json:"registrationId"`
	TicketCode     string       `json:"ticketCode"`
	Role           string       `json:"role"`
	Event          domain.Event `json:"event"`
	QRDataURL      string       `json:"qrDataUrl,omitempty"`
}

type AdminRegisterResponse struct {
	RegistrationID string `json:"registrationId"`
	TicketCode     string `json:"ticketCode"`
	Role           string `json:"role"`
}

// DuplicateRegistrationResponse is the conflict body; it carries the ticket
// code issued the first time so the caller can re-display it.
type DuplicateRegistrationResponse struct {
	Error      string `json:"error"`
	TicketCode string `json:"ticketCode,omitempty"`
}

type CancelResponse struct {
	Success bool `json:"success"`
}

type CheckInResponse struct {
	Status       string `json:"status"`
	AttendeeName string `json:"attendeeName,omitempty"`
	CheckedInAt  string `json:"checkedInAt,omitempty"`
}

type RoleUpdateError struct {
	RegistrationID string `json:"registrationId"`
	Error          string `json:"error"`
}

type UpdateRolesResponse struct {
	Updated int               `json:"updated"`
	Errors  []RoleUpdateError `json:"errors"`
}

type IssueError struct {
	Email string `json:"email"`
	Error string `json:"error"`
}

type IssueBadgesResponse struct {
	Issued int          `json:"issued"`
	Errors []IssueError `json:"errors"`
}
