package domain

type Badge struct {
	ID             string `json:"id"`
	EventID        string `json:"eventId"`
	RecipientEmail string `json:"recipientEmail"`
	RecipientName  string `json:"recipientName"`
	BadgeType      string `json:"badgeType"`
	UserID         string `json:"-"`
	IssuedAt       string `json:"issuedAt"`
}

// BadgeTypeForRole maps a registration role to its badge label.
func BadgeTypeForRole(role string) string {
	switch role {
	case RoleVolunteer:
		return "Volunteer"
	case RoleSpeaker:
		return "Speaker"
	case RoleSponsor:
		return "Sponsor"
	case RoleOrganiser:
		return "Organiser"
	default:
		return "Attendee"
	}
}
