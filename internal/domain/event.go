package domain

const (
	EventStatusPublished = "published"
	EventStatusClosed    = "closed"
	EventStatusCompleted = "completed"
)

// ValidEventStatus reports whether s is one of the recognised lifecycle states.
func ValidEventStatus(s string) bool {
	return s == EventStatusPublished || s == EventStatusClosed || s == EventStatusCompleted
}

type Event struct {
	ID              string `json:"id"`
	ChapterSlug     string `json:"chapterSlug"`
	Title           string `json:"title"`
	Slug            string `json:"slug"`
	Date            string `json:"date"`
	EndDate         string `json:"endDate,omitempty"`
	Location        string `json:"location"`
	Description     string `json:"description"`
	SessionizeAPIID string `json:"sessionizeApiId,omitempty"`
	RegistrationCap int    `json:"registrationCap"`
	Status          string `json:"status"`
	CreatedBy       string `json:"-"`
	CreatedAt       string `json:"createdAt"`
}

// IsOpenForRegistration reports whether self-service registration is allowed.
func (e Event) IsOpenForRegistration() bool {
	return e.Status != EventStatusClosed && e.Status != EventStatusCompleted
}
