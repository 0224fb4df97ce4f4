package handlers

import (
	"errors"
	"net/http"

	"github.com/insyd-labs/notification-service/internal/dispatch"
	"github.com/insyd-labs/notification-service/internal/models"
	"github.com/labstack/echo/v4"
)

// EventHandler handles event submission
type EventHandler struct {
	engine *dispatch.Engine
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(engine *dispatch.Engine) *EventHandler {
	return &EventHandler{engine: engine}
}

// RegisterEventRoutes registers event routes
func (h *EventHandler) RegisterEventRoutes(g *echo.Group) {
	g.POST("/events", h.SubmitEvent)
}

// SubmitEvent runs one event through the dispatch engine. Partial
// per-recipient failures are reported in the response body, not as an
// HTTP error; only classification and actor-resolution failures reject
// the whole request.
func (h *EventHandler) SubmitEvent(c echo.Context) error {
	var req models.SubmitEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.engine.Dispatch(c.Request().Context(), req.ToEvent())
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidEvent):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, models.ErrUnknownUser):
			return echo.NewHTTPError(http.StatusNotFound, "Actor not found")
		case errors.Is(err, models.ErrStoreUnavailable):
			return echo.NewHTTPError(http.StatusInternalServerError, "Store unavailable")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Could not process event")
		}
	}

	return c.JSON(http.StatusAccepted, echo.Map{"success": true, "data": result})
}
