package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gsc-community/events-api/internal/api/handler/v1/response"
	"github.com/gsc-community/events-api/internal/service"
)

type TicketService interface {
	MyTickets(ctx context.Context, userID string) ([]service.Ticket, error)
}

type TicketHandler struct {
	svc TicketService
}

func NewTicketHandler(svc TicketService) *TicketHandler {
	return &TicketHandler{
		svc: svc,
	}
}

// HandleMyTickets godoc
// @Summary      List the caller's tickets
// @Description  Returns every registration the caller holds, with event details and a QR code per ticket.
// @Tags         tickets
// @Produce      json
// @Success      200  {array}   service.Ticket
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tickets [get]
// @Security     ClientPrincipal
func (h *TicketHandler) HandleMyTickets(ctx *gin.Context) {
	p, respErr := getPrincipalFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	tickets, err := h.svc.MyTickets(ctx.Request.Context(), p.UserID)
	if err != nil {
		err = fmt.Errorf("HandleMyTickets -> h.svc.MyTickets -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, tickets)
}
