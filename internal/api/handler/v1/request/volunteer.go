package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type AddVolunteerRequest struct {
	EventID string `json:"eventId"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

func (req *AddVolunteerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Name, validation.Length(0, 200)),
	)
}
