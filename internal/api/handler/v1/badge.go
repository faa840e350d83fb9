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

type BadgeService interface {
	Issue(ctx context.Context, eventID, chapterSlug string) (service.IssueResult, error)
}

type BadgeHandler struct {
	svc BadgeService
}

func NewBadgeHandler(svc BadgeService) *BadgeHandler {
	return &BadgeHandler{
		svc: svc,
	}
}

// HandleIssueBadges godoc
// @Summary      Issue badges for checked-in attendees
// @Description  Creates a badge per checked-in registration and emails it out. Individual failures are reported but never abort the batch.
// @Tags         badges
// @Accept       json
// @Produce      json
// @Param        request  body      request.IssueBadgesRequest  true  "request body"
// @Success      200      {object}  response.IssueBadgesResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /badges/issue [post]
// @Security     ClientPrincipal
func (h *BadgeHandler) HandleIssueBadges(ctx *gin.Context) {
	var req request.IssueBadgesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.svc.Issue(ctx.Request.Context(), req.EventID, req.ChapterSlug)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("Event not found"))
			return
		}

		err = fmt.Errorf("HandleIssueBadges -> h.svc.Issue -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	resp := response.IssueBadgesResponse{
		Issued: result.Issued,
		Errors: make([]response.IssueError, 0, len(result.Errors)),
	}
	for _, e := range result.Errors {
		resp.Errors = append(resp.Errors, response.IssueError{
			Email: e.Email,
			Error: e.Error,
		})
	}

	ctx.JSON(http.StatusOK, resp)
}
