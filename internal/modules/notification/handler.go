package notification

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"servicehub/internal/middleware"
	"servicehub/internal/pkg/request"
	"servicehub/internal/pkg/response"
	"servicehub/internal/policy"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/notifications", middleware.Authorize(policy.NotificationRead))
	{
		g.GET("", h.List)
		g.PATCH("/read-all", h.MarkAllRead)
		g.PATCH("/:id/read", h.MarkRead)
	}
}

func (h *Handler) List(c *gin.Context) {
	list, unread, err := h.service.List(c.Request.Context(), middleware.UserID(c), request.QueryInt(c, "limit", defaultLimit))
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get notifications")
		return
	}

	response.OK(c, http.StatusOK, "", gin.H{
		"notifications": list,
		"unreadCount":   unread,
	})
}

func (h *Handler) MarkRead(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(c, "Notification not found")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to mark as read")
		return
	}

	response.OK(c, http.StatusOK, "Notification marked as read", nil)
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	n, err := h.service.MarkAllRead(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to mark all as read")
		return
	}

	response.OK(c, http.StatusOK, "All notifications marked as read", gin.H{"updated": n})
}
