package domain

const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusApproved = "approved"
	ApplicationStatusRejected = "rejected"
)

// ChapterApplication is owned by the chapter-application workflow; this
// service only reads approved records to grant the admin role.
type ChapterApplication struct {
	ID              string `json:"id"`
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	City            string `json:"city"`
	Country         string `json:"country"`
	SecondLeadName  string `json:"secondLeadName,omitempty"`
	SecondLeadEmail string `json:"secondLeadEmail,omitempty"`
	Status          string `json:"status"`
	SubmittedAt     string `json:"submittedAt"`
}
