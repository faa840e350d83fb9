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

type EventService interface {
	Create(ctx context.Context, createdBy string, in service.CreateEventInput) (domain.Event, error)
	List(ctx context.Context, chapterSlug string) ([]service.EventSummary, error)
	GetPublic(ctx context.Context, eventSlug string) (service.EventSummary, error)
	Attendance(ctx context.Context, eventID string) (service.AttendanceReport, error)
	AttendanceCSV(ctx context.Context, eventID string) (string, error)
	UpdateStatus(ctx context.Context, chapterSlug, eventID, status string) (domain.Event, error)
}

type EventHandler struct {
	svc EventService
}

func NewEventHandler(svc EventService) *EventHandler {
	return &EventHandler{
		svc: svc,
	}
}

// HandleGetEvent godoc
// @Summary      Get a public event page
// @Tags         events
// @Produce      json
// @Param        slug  path      string  true  "event page slug"
// @Success      200   {object}  response.EventResponse
// @Failure      404   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /events/{slug} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	summary, err := h.svc.GetPublic(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("Event not found"))
			return
		}

		err = fmt.Errorf("HandleGetEvent -> h.svc.GetPublic -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewEventResponse(summary.Event, summary.RegistrationCount))
}

// HandleCreateEvent godoc
// @Summary      Create an event
// @Description  Stores a new published event, then notifies the chat channel and triggers the static-site rebuild.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateEventRequest  true  "request body"
// @Success      201      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events [post]
// @Security     ClientPrincipal
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	p, respErr := getPrincipalFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.Create(ctx.Request.Context(), p.UserDetails, service.CreateEventInput{
		Title:            req.Title,
		Date:             req.Date,
		EndDate:          req.EndDate,
		Description:      req.Description,
		SessionizeAPIID:  req.SessionizeAPIID,
		RegistrationCap:  req.RegistrationCap,
		ChapterSlug:      req.ChapterSlug,
		LocationBuilding: req.LocationBuilding,
		LocationAddress1: req.LocationAddress1,
		LocationAddress2: req.LocationAddress2,
		LocationCity:     req.LocationCity,
		LocationState:    req.LocationState,
		LegacyLocation:   req.Location,
	})
	if err != nil {
		if errors.Is(err, service.ErrFieldTooLong) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("HandleCreateEvent -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandleListAttendance godoc
// @Summary      List events with registration counts
// @Tags         attendance
// @Produce      json
// @Param        chapterSlug  query     string  false  "restrict to one chapter"
// @Success      200          {array}   response.EventResponse
// @Failure      401          {object}  response.Err
// @Failure      403          {object}  response.Err
// @Failure      500          {object}  response.Err
// @Router       /attendance [get]
// @Security     ClientPrincipal
func (h *EventHandler) HandleListAttendance(ctx *gin.Context) {
	summaries, err := h.svc.List(ctx.Request.Context(), ctx.Query("chapterSlug"))
	if err != nil {
		err = fmt.Errorf("HandleListAttendance -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	resp := make([]response.EventResponse, 0, len(summaries))
	for _, s := range summaries {
		resp = append(resp, response.NewEventResponse(s.Event, s.RegistrationCount))
	}

	ctx.JSON(http.StatusOK, resp)
}

// HandleAttendanceDetail godoc
// @Summary      Get an event's attendee list
// @Tags         attendance
// @Produce      json
// @Param        eventID  path      string  true  "event id"
// @Success      200      {object}  response.AttendanceResponse
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /attendance/{eventID} [get]
// @Security     ClientPrincipal
func (h *EventHandler) HandleAttendanceDetail(ctx *gin.Context) {
	report, err := h.svc.Attendance(ctx.Request.Context(), ctx.Param("eventID"))
	if err != nil {
		err = fmt.Errorf("HandleAttendanceDetail -> h.svc.Attendance -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.AttendanceResponse{
		EventID:   report.EventID,
		Total:     report.Total,
		CheckedIn: report.CheckedIn,
		Attendees: report.Attendees,
	})
}

// HandleAttendanceCSV godoc
// @Summary      Download an event's attendee list as CSV
// @Tags         attendance
// @Produce      text/csv
// @Param        eventID  path      string  true  "event id"
// @Success      200      {string}  string  "CSV body"
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /attendance/{eventID}/csv [get]
// @Security     ClientPrincipal
func (h *EventHandler) HandleAttendanceCSV(ctx *gin.Context) {
	eventID := ctx.Param("eventID")
	body, err := h.svc.AttendanceCSV(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("HandleAttendanceCSV -> h.svc.AttendanceCSV -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "attendance-"+eventID+".csv"))
	ctx.Data(http.StatusOK, "text/csv", []byte(body))
}

// HandleUpdateEventStatus godoc
// @Summary      Update an event's lifecycle status
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        request  body      request.UpdateEventStatusRequest  true  "request body"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /attendance/status [post]
// @Security     ClientPrincipal
func (h *EventHandler) HandleUpdateEventStatus(ctx *gin.Context) {
	var req request.UpdateEventStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.UpdateStatus(ctx.Request.Context(), req.ChapterSlug, req.EventID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("Event not found"))
		case errors.Is(err, service.ErrInvalidStatus):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("HandleUpdateEventStatus -> h.svc.UpdateStatus -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, event)
}
