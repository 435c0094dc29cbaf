package handlers

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/uuzor/mocalake/models"
	"github.com/uuzor/mocalake/services"
)

type TicketHandler struct {
	ticketService *services.TicketService
}

func NewTicketHandler(ticketService *services.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// Purchase - POST /api/tickets/purchase
func (h *TicketHandler) Purchase(c echo.Context) error {
	var req struct {
		EventID string `json:"eventId"`
		UserID  string `json:"userId"`
		UserDID string `json:"userDid"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request",
			"code":  "validation_error",
		})
	}

	result, err := h.ticketService.Purchase(c.Request().Context(), req.EventID, req.UserID, req.UserDID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"ticket":            result.Ticket,
		"credentialSubject": result.CredentialSubject,
		"message":           "Ticket purchased successfully. Ready for credential issuance.",
	})
}

// TicketsByUser - GET /api/tickets/user/:userId
func (h *TicketHandler) TicketsByUser(c echo.Context) error {
	tickets, err := h.ticketService.TicketsByUser(c.Request().Context(), c.PathParam("userId"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, tickets)
}

// TicketsByEvent - GET /api/tickets/event/:eventId
func (h *TicketHandler) TicketsByEvent(c echo.Context) error {
	tickets, err := h.ticketService.TicketsByEvent(c.Request().Context(), c.PathParam("eventId"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, tickets)
}

// CreateTicket - POST /api/tickets
func (h *TicketHandler) CreateTicket(c echo.Context) error {
	var req models.InsertTicket
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid ticket data",
			"code":  "validation_error",
		})
	}

	ticket, err := h.ticketService.Create(c.Request().Context(), req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, ticket)
}

// UpdateTicket - PUT /api/tickets/:id
func (h *TicketHandler) UpdateTicket(c echo.Context) error {
	var req models.TicketUpdate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid ticket data",
			"code":  "validation_error",
		})
	}

	ticket, err := h.ticketService.Update(c.Request().Context(), c.PathParam("id"), req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, ticket)
}

// Redeem - PUT /api/tickets/:id/redeem
func (h *TicketHandler) Redeem(c echo.Context) error {
	ticket, err := h.ticketService.Redeem(c.Request().Context(), c.PathParam("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, ticket)
}

// UpdateIssuance - PUT /api/tickets/:id/issuance
// Called when the external issuance service confirms or rejects the
// credential mint for a ticket.
func (h *TicketHandler) UpdateIssuance(c echo.Context) error {
	var req struct {
		Status  string  `json:"status"`
		TokenID *string `json:"tokenId"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request",
			"code":  "validation_error",
		})
	}

	ctx := c.Request().Context()
	id := c.PathParam("id")

	var (
		ticket *models.Ticket
		err    error
	)
	switch req.Status {
	case models.IssuanceIssued:
		ticket, err = h.ticketService.MarkIssued(ctx, id, req.TokenID)
	case models.IssuanceFailed:
		ticket, err = h.ticketService.MarkIssuanceFailed(ctx, id)
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Status must be issued or failed",
			"code":  "validation_error",
		})
	}
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, ticket)
}

// ReissueSubject - POST /api/tickets/:id/reissue
// Rebuilds the credential subject for a ticket whose issuance did not
// complete; safe to call repeatedly.
func (h *TicketHandler) ReissueSubject(c echo.Context) error {
	var req struct {
		UserDID string `json:"userDid"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request",
			"code":  "validation_error",
		})
	}

	subject, err := h.ticketService.ReissueCredentialSubject(c.Request().Context(), c.PathParam("id"), req.UserDID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"credentialSubject": subject})
}
