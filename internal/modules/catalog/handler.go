package catalog

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

func (h *Handler) RegisterPublicRoutes(public *gin.RouterGroup) {
	public.GET("/services", h.List)
	public.GET("/services/:id", h.Get)
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/services", middleware.Authorize(policy.ServiceCreate), h.Create)
	protected.PATCH("/services/:id", middleware.Authorize(policy.ServiceUpdate), h.Update)
	protected.DELETE("/services/:id", middleware.Authorize(policy.ServiceDelete), h.Delete)
}

// List handles GET /services?category=&q=&providerId=&page=&limit=
func (h *Handler) List(c *gin.Context) {
	res, err := h.service.List(c.Request.Context(), ListQuery{
		Category:   c.Query("category"),
		Query:      c.Query("q"),
		ProviderID: request.QueryInt64(c, "providerId"),
		Page:       request.QueryInt(c, "page", 1),
		Limit:      request.QueryInt(c, "limit", 0),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, "", gin.H{
		"services": res.Services,
		"pagination": gin.H{
			"total": res.Total,
			"page":  res.Page,
			"limit": res.Limit,
		},
	})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}

	listing, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, "", gin.H{"service": listing})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "title, category and a positive price are required")
		return
	}

	listing, err := h.service.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusCreated, "Service created", gin.H{"service": listing})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	listing, err := h.service.Update(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, "Service updated", gin.H{"service": listing})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}

	deactivated, err := h.service.Delete(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	msg := "Service deleted"
	if deactivated {
		msg = "Service has bookings and was deactivated"
	}
	response.OK(c, http.StatusOK, msg, gin.H{"deactivated": deactivated})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.ValidationError(c, err.Error())
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "PROVIDER_NOT_APPROVED", "Provider account must be active and approved")
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "Service not found")
	default:
		_ = c.Error(err)
		response.Internal(c, "Service request failed")
	}
}
