package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gsc-community/events-api/internal/api/handler/v1/request"
	"github.com/gsc-community/events-api/internal/api/handler/v1/response"
	"github.com/gsc-community/events-api/internal/domain"
	"github.com/gsc-community/events-api/internal/service"
)

type VolunteerService interface {
	Add(ctx context.Context, addedBy, eventID, email, name string) (domain.Volunteer, error)
	List(ctx context.Context, eventID string) ([]domain.Volunteer, error)
	Remove(ctx context.Context, eventID, volunteerID string) error
}

type VolunteerHandler struct {
	svc VolunteerService
}

func NewVolunteerHandler(svc VolunteerService) *VolunteerHandler {
	return &VolunteerHandler{
		svc: svc,
	}
}

// HandleListVolunteers godoc
// @Summary      List an event's volunteers
// @Tags         volunteers
// @Produce      json
// @Param        eventId  query     string  true  "event id"
// @Success      200      {array}   domain.Volunteer
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /volunteers [get]
// @Security     ClientPrincipal
func (h *VolunteerHandler) HandleListVolunteers(ctx *gin.Context) {
	eventID := ctx.Query("eventId")
	if eventID == "" {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("eventId is required")))
		return
	}

	volunteers, err := h.svc.List(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("HandleListVolunteers -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, volunteers)
}

// HandleAddVolunteer godoc
// @Summary      Add a volunteer to an event
// @Description  Volunteers gain door check-in access for every event while listed.
// @Tags         volunteers
// @Accept       json
// @Produce      json
// @Param        request  body      request.AddVolunteerRequest  true  "request body"
// @Success      201      {object}  domain.Volunteer
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /volunteers [post]
// @Security     ClientPrincipal
func (h *VolunteerHandler) HandleAddVolunteer(ctx *gin.Context) {
	p, respErr := getPrincipalFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AddVolunteerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	volunteer, err := h.svc.Add(ctx.Request.Context(), p.UserDetails, req.EventID, req.Email, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("Event not found"))
			return
		}

		err = fmt.Errorf("HandleAddVolunteer -> h.svc.Add -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, volunteer)
}

// HandleRemoveVolunteer godoc
// @Summary      Remove a volunteer from an event
// @Tags         volunteers
// @Produce      json
// @Param        volunteerID  path      string  true  "volunteer id"
// @Param        eventId      query     string  true  "event id"
// @Success      200          {object}  response.CancelResponse
// @Failure      400          {object}  response.Err
// @Failure      401          {object}  response.Err
// @Failure      403          {object}  response.Err
// @Failure      404          {object}  response.Err
// @Failure      500          {object}  response.Err
// @Router       /volunteers/{volunteerID} [delete]
// @Security     ClientPrincipal
func (h *VolunteerHandler) HandleRemoveVolunteer(ctx *gin.Context) {
	eventID := ctx.Query("eventId")
	if eventID == "" {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("eventId is required")))
		return
	}

	if err := h.svc.Remove(ctx.Request.Context(), eventID, ctx.Param("volunteerID")); err != nil {
		if errors.Is(err, service.ErrVolunteerNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("Volunteer not found"))
			return
		}

		err = fmt.Errorf("HandleRemoveVolunteer -> h.svc.Remove -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.CancelResponse{Success: true})
}
