package notification

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/provely/server/internal/utils/middleware"
	"github.com/provely/server/internal/utils/pagination"
)

// Handler handles HTTP requests for the notification inbox.
type Handler struct {
	service *Service
}

// NewHandler creates a new notification handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers notification routes. All routes require auth.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	notifications := r.Group("/notifications")
	{
		notifications.GET("", h.List)
		notifications.PATCH("/:id/viewed", h.MarkViewed)
		notifications.DELETE("/:id", h.Remove)
	}
}

// List handles listing the caller's notifications.
//
//	@Summary		List notifications
//	@Description	Get the current user's notifications, newest first
//	@Tags			Notifications
//	@Produce		json
//	@Security		BearerAuth
//	@Param			page		query		int	false	"Page"		default(1)
//	@Param			page_size	query		int	false	"Page size"	default(20)
//	@Success		200			{object}	map[string]interface{}
//	@Failure		401			{object}	map[string]string
//	@Router			/notifications [get]
func (h *Handler) List(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	p := pagination.New()
	if err := c.ShouldBindQuery(p); err != nil {
		p = pagination.New()
	}

	ns, total, err := h.service.List(c.Request.Context(), userID, p)
	if err != nil {
		h.handleError(c, err)
		return
	}

	items := make([]*NotificationResponse, 0, len(ns))
	for _, n := range ns {
		items = append(items, n.ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": items,
		"pagination":    p.Info(total),
	})
}

// MarkViewed handles marking a notification as viewed.
//
//	@Summary		Mark notification viewed
//	@Description	Mark one of the current user's notifications as viewed
//	@Tags			Notifications
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Notification ID"
//	@Success		204	{object}	nil
//	@Failure		401	{object}	map[string]string
//	@Failure		403	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/notifications/{id}/viewed [patch]
func (h *Handler) MarkViewed(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err := h.service.MarkViewed(c.Request.Context(), userID, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Remove handles removing a notification from the inbox.
//
//	@Summary		Remove notification
//	@Description	Remove a notification from the current user's inbox
//	@Tags			Notifications
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Notification ID"
//	@Success		204	{object}	nil
//	@Failure		401	{object}	map[string]string
//	@Failure		403	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/notifications/{id} [delete]
func (h *Handler) Remove(c *gin.Context) {
	userID, ok := h.getUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err := h.service.Remove(c.Request.Context(), userID, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) getUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	return userID, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotificationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "notification_not_found"})
	case errors.Is(err, ErrNotRecipient):
		c.JSON(http.StatusForbidden, gin.H{"error": "not_notification_recipient"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
