package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/insyd-labs/notification-service/internal/models"
	"github.com/insyd-labs/notification-service/internal/repositories"
	"github.com/labstack/echo/v4"
)

// defaultListLimit caps notification listings unless the caller asks
// for less.
const defaultListLimit = 50

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notifRepo}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/users/:id/notifications", h.GetNotifications)
	g.GET("/users/:id/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/users/:id/notifications/read-all", h.MarkAllAsRead)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
}

// GetNotifications returns a user's notifications, most recent first.
// An unknown user yields an empty list.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > defaultListLimit {
		limit = defaultListLimit
	}

	notifications, err := h.notificationRepository.GetByRecipientID(c.Request().Context(), uint(userID), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not list notifications")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"notifications": notifications},
	})
}

// GetUnreadCount returns the unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	count, err := h.notificationRepository.GetUnreadCount(c.Request().Context(), uint(userID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not count notifications")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"count": count}})
}

// MarkAsRead marks a notification as read. Marking an already-read
// notification succeeds with changed=false.
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	notifID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification ID")
	}

	changed, err := h.notificationRepository.MarkAsRead(c.Request().Context(), uint(notifID))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not update notification")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"changed": changed}})
}

// MarkAllAsRead marks all of a user's notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	changed, err := h.notificationRepository.MarkAllAsRead(c.Request().Context(), uint(userID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not update notifications")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"changed": changed}})
}
