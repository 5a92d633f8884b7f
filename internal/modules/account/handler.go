package account

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
	protected.GET("/users/me", middleware.Authorize(policy.AccountMe), h.Me)
	protected.PATCH("/admin/providers/:id/approval", middleware.Authorize(policy.ProviderApprove), h.SetProviderApproval)
}

func (h *Handler) Me(c *gin.Context) {
	view, err := h.service.Me(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, "", gin.H{"user": view})
}

func (h *Handler) SetProviderApproval(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}

	var req ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "decision must be one of: approve, reject")
		return
	}

	view, err := h.service.SetProviderApproval(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, "Provider approval updated", gin.H{"user": view})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.ValidationError(c, err.Error())
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "Account not found")
	default:
		_ = c.Error(err)
		response.Internal(c, "Account request failed")
	}
}
