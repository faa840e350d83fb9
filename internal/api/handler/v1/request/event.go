package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/gsc-community/events-api/internal/domain"
)

type CreateEventRequest struct {
	Title            string `json:"title"`
	Date             string `json:"date"`
	EndDate          string `json:"endDate"`
	Description      string `json:"description"`
	SessionizeAPIID  string `json:"sessionizeApiId"`
	RegistrationCap  int    `json:"registrationCap"`
	ChapterSlug      string `json:"chapterSlug"`
	LocationBuilding string `json:"locationBuilding"`
	LocationAddress1 string `json:"locationAddress1"`
	LocationAddress2 string `json:"locationAddress2"`
	LocationCity     string `json:"locationCity"`
	LocationState    string `json:"locationState"`
	Location         string `json:"location"`
}

func (req *CreateEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.Description, validation.Required, validation.Length(1, 5000)),
		validation.Field(&req.ChapterSlug, validation.Required, validation.Length(1, 80)),
		validation.Field(&req.RegistrationCap, validation.Min(0)),
	)
}

type UpdateEventStatusRequest struct {
	EventID     string `json:"eventId"`
	ChapterSlug string `json:"chapterSlug"`
	Status      string `json:"status"`
}

func (req *UpdateEventStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.ChapterSlug, validation.Required),
		validation.Field(&req.Status, validation.Required, validation.In(
			domain.EventStatusPublished, domain.EventStatusClosed, domain.EventStatusCompleted,
		)),
	)
}
