package chat

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"servicehub/internal/domain"
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

// RegisterRoutes mounts /chats on the protected group.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/chats")
	{
		g.POST("", middleware.Authorize(policy.ChatOpen), h.Open)
		g.GET("", middleware.Authorize(policy.ChatList), h.List)
		g.GET("/:id/messages", middleware.Authorize(policy.ChatRead), h.Messages)
		g.POST("/:id/messages", middleware.Authorize(policy.ChatSend), h.Send)
	}
}

func (h *Handler) Open(c *gin.Context) {
	var req OpenChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "counterpartId is required")
		return
	}

	actor := domain.Actor{ID: middleware.UserID(c), Role: middleware.Role(c)}
	ch, err := h.service.Open(c.Request.Context(), actor, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, "", gin.H{"channel": ch})
}

func (h *Handler) List(c *gin.Context) {
	channels, err := h.service.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, "", gin.H{"channels": channels})
}

func (h *Handler) Messages(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}

	res, err := h.service.Messages(c.Request.Context(), middleware.UserID(c), id,
		request.QueryInt64(c, "beforeId"), request.QueryInt(c, "limit", defaultMessageLimit))
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, "", gin.H{
		"messages":   res.Messages,
		"markedRead": res.MarkedRead,
	})
}

func (h *Handler) Send(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "content is required")
		return
	}

	msg, err := h.service.Send(c.Request.Context(), middleware.UserID(c), id, req.Content)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusCreated, "Message sent", gin.H{"chatMessage": msg})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrEmptyContent):
		response.ValidationError(c, err.Error())
	case errors.Is(err, ErrCounterpartNotFound):
		response.NotFound(c, "Counterpart not found")
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "Channel not found")
	default:
		_ = c.Error(err)
		response.Internal(c, "Chat request failed")
	}
}
