package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Demographics struct {
	EmploymentStatus string `json:"employmentStatus"`
	Industry         string `json:"industry"`
	JobTitle         string `json:"jobTitle"`
	CompanySize      string `json:"companySize"`
	ExperienceLevel  string `json:"experienceLevel"`
}

type RegisterRequest struct {
	EventSlug    string        `json:"eventSlug"`
	FullName     string        `json:"fullName"`
	Email        string        `json:"email"`
	Company      string        `json:"company"`
	Demographics *Demographics `json:"demographics"`
}

func (req *RegisterRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventSlug, validation.Required, validation.Length(1, 80)),
		validation.Field(&req.FullName, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Company, validation.Length(0, 200)),
	)
}

type AdminRegisterRequest struct {
	EventID string `json:"eventId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}

func (req *AdminRegisterRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Email, validation.Required, is.Email),
	)
}

type CancelRequest struct {
	RegistrationID string `json:"registrationId"`
}

func (req *CancelRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RegistrationID, validation.Required),
	)
}

type UpdateRolesRequest struct {
	EventID         string   `json:"eventId"`
	RegistrationIDs []string `json:"registrationIds"`
	Role            string   `json:"role"`
}

func (req *UpdateRolesRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.RegistrationIDs, validation.Required),
		validation.Field(&req.Role, validation.Required),
	)
}

type CheckInRequest struct {
	EventID    string `json:"eventId"`
	TicketCode string `json:"ticketCode"`
}

func (req *CheckInRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.TicketCode, validation.Required, validation.Length(1, 16)),
	)
}

type IssueBadgesRequest struct {
	EventID     string `json:"eventId"`
	ChapterSlug string `json:"chapterSlug"`
}

func (req *IssueBadgesRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.ChapterSlug, validation.Required),
	)
}
