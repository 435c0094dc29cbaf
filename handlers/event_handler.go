package handlers

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/uuzor/mocalake/models"
	"github.com/uuzor/mocalake/services"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// ListEvents - GET /api/events
func (h *EventHandler) ListEvents(c echo.Context) error {
	events, err := h.eventService.List(c.Request().Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, events)
}

// GetEvent - GET /api/events/:id
func (h *EventHandler) GetEvent(c echo.Context) error {
	event, err := h.eventService.Get(c.Request().Context(), c.PathParam("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, event)
}

// CreateEvent - POST /api/events
func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req models.InsertEvent
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid event data",
			"code":  "validation_error",
		})
	}

	event, err := h.eventService.Create(c.Request().Context(), req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, event)
}

// UpdateEvent - PUT /api/events/:id
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	var req models.EventUpdate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid event data",
			"code":  "validation_error",
		})
	}

	event, err := h.eventService.Update(c.Request().Context(), c.PathParam("id"), req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, event)
}
