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

type CheckInService interface {
	CheckIn(ctx context.Context, eventID, ticketCode string) (service.CheckInResult, error)
}

type CheckInHandler struct {
	svc CheckInService
}

func NewCheckInHandler(svc CheckInService) *CheckInHandler {
	return &CheckInHandler{
		svc: svc,
	}
}

// HandleCheckIn godoc
// @Summary      Check an attendee in
// @Description  Marks the ticket as checked in. Scanning the same ticket again reports already_checked_in without changing state.
// @Tags         checkin
// @Accept       json
// @Produce      json
// @Param        request  body      request.CheckInRequest  true  "request body"
// @Success      200      {object}  response.CheckInResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.CheckInResponse
// @Failure      500      {object}  response.Err
// @Router       /checkin [post]
// @Security     ClientPrincipal
func (h *CheckInHandler) HandleCheckIn(ctx *gin.Context) {
	var req request.CheckInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.svc.CheckIn(ctx.Request.Context(), req.EventID, req.TicketCode)
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			ctx.AbortWithStatusJSON(http.StatusNotFound, response.CheckInResponse{
				Status: result.Status,
			})
			return
		}

		err = fmt.Errorf("HandleCheckIn -> h.svc.CheckIn -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.CheckInResponse{
		Status:       result.Status,
		AttendeeName: result.AttendeeName,
		CheckedInAt:  result.CheckedInAt,
	})
}
