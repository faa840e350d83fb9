package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gsc-community/events-api/internal/api/handler/v1/request"
	"github.com/gsc-community/events-api/internal/api/handler/v1/response"
	"github.com/gsc-community/events-api/internal/service"
)

type RegistrationService interface {
	Register(ctx context.Context, userID string, in service.RegisterInput) (service.RegisterResult, error)
	AdminRegister(ctx context.Context, in service.AdminRegisterInput) (service.RegisterResult, error)
	Cancel(ctx context.Context, userID, registrationID string) error
	UpdateRoles(ctx context.Context, eventID string, registrationIDs []string, role string) (int, []service.RoleUpdateError, error)
}

type RegistrationHandler struct {
	svc RegistrationService
}

func NewRegistrationHandler(svc RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		svc: svc,
	}
}

// HandleRegister godoc
// @Summary      Register for an event
// @Description  Registers the authenticated user for the event identified by its page slug.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        request  body      request.RegisterRequest  true  "request body"
// @Success      201      {object}  response.RegisterResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.DuplicateRegistrationResponse
// @Failure      429      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /registrations [post]
// @Security     ClientPrincipal
func (h *RegistrationHandler) HandleRegister(ctx *gin.Context) {
	p, respErr := getPrincipalFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	in := service.RegisterInput{
		EventSlug: req.EventSlug,
		FullName:  req.FullName,
		Email:     req.Email,
		Company:   req.Company,
	}
	if req.Demographics != nil {
		in.EmploymentStatus = req.Demographics.EmploymentStatus
		in.Industry = req.Demographics.Industry
		in.JobTitle = req.Demographics.JobTitle
		in.CompanySize = req.Demographics.CompanySize
		in.ExperienceLevel = req.Demographics.ExperienceLevel
	}

	result, err := h.svc.Register(ctx.Request.Context(), p.UserID, in)
	if err != nil {
		renderRegistrationErr(ctx, "HandleRegister", err)
		return
	}

	ctx.JSON(http.StatusCreated, response.RegisterResponse{
		RegistrationID: result.Registration.ID,
		TicketCode:     result.Registration.TicketCode,
		Role:           result.Registration.Role,
		Event:          result.Event,
		QRDataURL:      result.QRDataURL,
	})
}

// HandleAdminRegister godoc
// @Summary      Register someone on their behalf
// @Description  Creates a registration for any attendee by email. Speaker, sponsor and organiser roles bypass the capacity check.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        request  body      request.AdminRegisterRequest  true  "request body"
// @Success      201      {object}  response.AdminRegisterResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.DuplicateRegistrationResponse
// @Failure      500      {object}  response.Err
// @Router       /registrations/admin [post]
// @Security     ClientPrincipal
func (h *RegistrationHandler) HandleAdminRegister(ctx *gin.Context) {
	var req request.AdminRegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.svc.AdminRegister(ctx.Request.Context(), service.AdminRegisterInput{
		EventID: req.EventID,
		Name:    req.Name,
		Email:   req.Email,
		Role:    req.Role,
	})
	if err != nil {
		renderRegistrationErr(ctx, "HandleAdminRegister", err)
		return
	}

	ctx.JSON(http.StatusCreated, response.AdminRegisterResponse{
		RegistrationID: result.Registration.ID,
		TicketCode:     result.Registration.TicketCode,
		Role:           result.Registration.Role,
	})
}

// HandleCancel godoc
// @Summary      Cancel a registration
// @Description  Cancels one of the caller's own registrations. Not possible after check-in.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        request  body      request.CancelRequest  true  "request body"
// @Success      200      {object}  response.CancelResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /registrations/cancel [post]
// @Security     ClientPrincipal
func (h *RegistrationHandler) HandleCancel(ctx *gin.Context) {
	p, respErr := getPrincipalFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CancelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.Cancel(ctx.Request.Context(), p.UserID, req.RegistrationID); err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			response.RenderErr(ctx, response.ErrNotFound("Registration not found"))
		case errors.Is(err, service.ErrAlreadyCheckedIn):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("HandleCancel -> h.svc.Cancel -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.CancelResponse{Success: true})
}

// HandleUpdateRoles godoc
// @Summary      Bulk-update registration roles
// @Description  Assigns a role to a set of registrations. Invalid ids are reported individually; valid ids are still updated.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        request  body      request.UpdateRolesRequest  true  "request body"
// @Success      200      {object}  response.UpdateRolesResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /registrations/roles [post]
// @Security     ClientPrincipal
func (h *RegistrationHandler) HandleUpdateRoles(ctx *gin.Context) {
	var req request.UpdateRolesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	updated, updateErrs, err := h.svc.UpdateRoles(ctx.Request.Context(), req.EventID, req.RegistrationIDs, req.Role)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRole) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("HandleUpdateRoles -> h.svc.UpdateRoles -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	resp := response.UpdateRolesResponse{
		Updated: updated,
		Errors:  make([]response.RoleUpdateError, 0, len(updateErrs)),
	}
	for _, e := range updateErrs {
		resp.Errors = append(resp.Errors, response.RoleUpdateError{
			RegistrationID: e.ID,
			Error:          e.Error,
		})
	}

	ctx.JSON(http.StatusOK, resp)
}

// renderRegistrationErr maps registration failures onto their wire shapes.
// Duplicates get a conflict body carrying the existing ticket code.
func renderRegistrationErr(ctx *gin.Context, handler string, err error) {
	var dup *service.AlreadyRegisteredError
	switch {
	case errors.As(err, &dup):
		ctx.AbortWithStatusJSON(http.StatusConflict, response.DuplicateRegistrationResponse{
			Error:      dup.Error(),
			TicketCode: dup.TicketCode,
		})
	case errors.Is(err, service.ErrEventNotFound):
		response.RenderErr(ctx, response.ErrNotFound("Event not found"))
	case errors.Is(err, service.ErrRegistrationClosed),
		errors.Is(err, service.ErrEventCompleted),
		errors.Is(err, service.ErrCapacityExceeded),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrFieldTooLong):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		err = fmt.Errorf("%v -> %w", handler, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}
