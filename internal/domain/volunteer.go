package domain

type Volunteer struct {
	ID      string `json:"id"`
	EventID string `json:"eventId"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	AddedBy string `json:"-"`
	AddedAt string `json:"addedAt"`
}
