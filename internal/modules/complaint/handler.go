package complaint

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
	g := protected.Group("/complaints")
	{
		g.POST("", middleware.Authorize(policy.ComplaintCreate), h.Create)
		g.GET("", middleware.Authorize(policy.ComplaintList), h.List)
		g.GET("/mine", middleware.Authorize(policy.ComplaintMine), h.Mine)
		g.PATCH("/:id/status", middleware.Authorize(policy.ComplaintStatus), h.SetStatus)
		g.PATCH("/:id/assign", middleware.Authorize(policy.ComplaintAssign), h.Assign)
		g.PATCH("/:id/resolve", middleware.Authorize(policy.ComplaintResolve), h.Resolve)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var form CreateComplaintForm
	if err := c.ShouldBind(&form); err != nil {
		response.ValidationError(c, "bookingId and description are required")
		return
	}

	fh, err := c.FormFile("attachment")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			response.ValidationError(c, "Invalid attachment")
			return
		}
		fh = nil
	}

	complaint, err := h.service.Create(c.Request.Context(), middleware.UserID(c), form, fh)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusCreated, "Complaint submitted", gin.H{"complaint": complaint})
}

func (h *Handler) List(c *gin.Context) {
	h.list(c, 0)
}

func (h *Handler) Mine(c *gin.Context) {
	h.list(c, middleware.UserID(c))
}

func (h *Handler) list(c *gin.Context, providerID int64) {
	res, err := h.service.List(c.Request.Context(), providerID, ListQuery{
		Status: c.Query("status"),
		Page:   request.QueryInt(c, "page", 1),
		Limit:  request.QueryInt(c, "limit", 0),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, "", gin.H{
		"complaints": res.Complaints,
		"pagination": gin.H{
			"total": res.Total,
			"page":  res.Page,
			"limit": res.Limit,
		},
	})
}

func (h *Handler) SetStatus(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "status is required")
		return
	}

	complaint, err := h.service.SetStatus(c.Request.Context(), middleware.UserID(c), id, req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, "Complaint status updated", gin.H{"complaint": complaint})
}

func (h *Handler) Assign(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}

	var req AssignRequest
	if err := request.BindOptionalJSON(c, &req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	complaint, err := h.service.Assign(c.Request.Context(), middleware.UserID(c), id, req.AdminID)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, "Complaint assigned", gin.H{"complaint": complaint})
}

func (h *Handler) Resolve(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}

	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "resolution is required")
		return
	}

	complaint, err := h.service.Resolve(c.Request.Context(), middleware.UserID(c), id, req.Resolution)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, "Complaint resolved", gin.H{"complaint": complaint})
}

func (h *Handler) fail(c *gin.Context, err error) {
	var fields FieldErrors
	switch {
	case errors.As(err, &fields):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid complaint form", fields)
	case errors.Is(err, ErrValidation):
		response.ValidationError(c, err.Error())
	case errors.Is(err, ErrAttachment):
		response.Error(c, http.StatusBadRequest, "INVALID_ATTACHMENT", err.Error())
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "Complaint or booking not found")
	default:
		_ = c.Error(err)
		response.Internal(c, "Complaint request failed")
	}
}
