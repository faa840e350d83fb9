package domain

const (
	RoleAttendee  = "attendee"
	RoleVolunteer = "volunteer"
	RoleSpeaker   = "speaker"
	RoleSponsor   = "sponsor"
	RoleOrganiser = "organiser"
)

// ValidRoles is the fixed enumeration of registration roles.
var ValidRoles = []string{RoleAttendee, RoleVolunteer, RoleSpeaker, RoleSponsor, RoleOrganiser}

// CapBypassRoles never count against an event's registration cap.
var CapBypassRoles = []string{RoleSpeaker, RoleSponsor, RoleOrganiser}

func ValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

func BypassesCap(role string) bool {
	for _, r := range CapBypassRoles {
		if r == role {
			return true
		}
	}
	return false
}

type Registration struct {
	ID           string `json:"id"`
	EventID      string `json:"eventId"`
	UserID       string `json:"-"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Company      string `json:"company,omitempty"`
	TicketCode   string `json:"ticketCode"`
	Role         string `json:"role"`
	CheckedIn    bool   `json:"checkedIn"`
	CheckedInAt  string `json:"checkedInAt,omitempty"`
	RegisteredAt string `json:"registeredAt"`
}

// Demographics is stored in its own partition, keyed by the same
// (event, registration) ids, so attendee PII and survey answers never
// travel together.
type Demographics struct {
	EventID          string `json:"eventId"`
	RegistrationID   string `json:"registrationId"`
	EmploymentStatus string `json:"employmentStatus,omitempty"`
	Industry         string `json:"industry,omitempty"`
	JobTitle         string `json:"jobTitle,omitempty"`
	CompanySize      string `json:"companySize,omitempty"`
	ExperienceLevel  string `json:"experienceLevel,omitempty"`
}
