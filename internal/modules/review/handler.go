package review

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"servicehub/internal/domain"
	"servicehub/internal/middleware"
	"servicehub/internal/pkg/request"
	"servicehub/internal/pkg/response"
	"servicehub/internal/policy"
	"servicehub/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(public *gin.RouterGroup) {
	public.GET("/services/:id/reviews", h.ListForService)
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/reviews", middleware.Authorize(policy.ReviewCreate), h.Create)
	protected.POST("/reviews/:id/response", middleware.Authorize(policy.ReviewRespond), h.Respond)
	protected.PATCH("/reviews/:id/moderate", middleware.Authorize(policy.ReviewModerate), h.Moderate)
	protected.GET("/admin/reviews", middleware.Authorize(policy.ReviewModerateQue), h.ModerationQueue)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	rv, err := h.service.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusCreated, "Review created", gin.H{"review": rv})
}

func (h *Handler) Respond(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "response is required")
		return
	}

	rv, err := h.service.Respond(c.Request.Context(), middleware.UserID(c), id, req.Response)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, "Response submitted for moderation", gin.H{"review": rv})
}

func (h *Handler) Moderate(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}

	var req ModerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "action must be one of: approve, reject")
		return
	}

	rv, err := h.service.Moderate(c.Request.Context(), middleware.UserID(c), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, "Review moderated", gin.H{"review": rv})
}

func (h *Handler) ListForService(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}

	items, total, err := h.service.ListForService(c.Request.Context(), id, pagination(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, "", gin.H{"reviews": items, "total": total})
}

func (h *Handler) ModerationQueue(c *gin.Context) {
	status := domain.ModerationStatus(c.Query("moderationStatus"))
	items, total, err := h.service.ModerationQueue(c.Request.Context(), status, pagination(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, "", gin.H{"reviews": items, "total": total})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		response.ValidationError(c, err.Error())
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "Review target not found")
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "REVIEW_EXISTS", "This booking has already been reviewed")
	case errors.Is(err, ErrReviewNotAllowed):
		response.Error(c, http.StatusForbidden, "REVIEW_NOT_ALLOWED", "Only completed bookings can be reviewed")
	default:
		_ = c.Error(err)
		response.Internal(c, "Review request failed")
	}
}

func pagination(c *gin.Context) repository.Pagination {
	return repository.Pagination{
		Page:  request.QueryInt(c, "page", 1),
		Limit: request.QueryInt(c, "limit", 0),
	}
}
