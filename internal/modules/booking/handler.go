package booking

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

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/bookings")
	{
		g.POST("", middleware.Authorize(policy.BookingCreate), h.Create)
		g.GET("", middleware.Authorize(policy.BookingList), h.List)
		g.GET("/:id", middleware.Authorize(policy.BookingView), h.Get)
		g.PATCH("/:id/accept", middleware.Authorize(policy.BookingAccept), h.Accept)
		g.PATCH("/:id/reject", middleware.Authorize(policy.BookingReject), h.Reject)
		g.PATCH("/:id/start", middleware.Authorize(policy.BookingStart), h.Start)
		g.PATCH("/:id/complete", middleware.Authorize(policy.BookingComplete), h.Complete)
		g.PATCH("/:id/cancel", middleware.Authorize(policy.BookingCancel), h.Cancel)
		g.PATCH("/:id/payment", middleware.Authorize(policy.BookingPayment), h.SetPayment)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}

	b, err := h.service.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusCreated, "Booking created", gin.H{"booking": b})
}

func (h *Handler) List(c *gin.Context) {
	res, err := h.service.List(c.Request.Context(), actor(c), ListQuery{
		Status: domain.BookingStatus(c.Query("status")),
		Page:   request.QueryInt(c, "page", 1),
		Limit:  request.QueryInt(c, "limit", 0),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, "", gin.H{
		"bookings": res.Bookings,
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

	b, err := h.service.Get(c.Request.Context(), actor(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, http.StatusOK, "", gin.H{"booking": b})
}

func (h *Handler) Accept(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}
	h.respond(c, "Booking accepted")(h.service.Accept(c.Request.Context(), middleware.UserID(c), id))
}

func (h *Handler) Reject(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}
	var req NoteRequest
	if err := request.BindOptionalJSON(c, &req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}
	h.respond(c, "Booking rejected")(h.service.Reject(c.Request.Context(), middleware.UserID(c), id, req.Note))
}

func (h *Handler) Start(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}
	h.respond(c, "Booking started")(h.service.Start(c.Request.Context(), middleware.UserID(c), id))
}

func (h *Handler) Complete(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}
	var req CompleteRequest
	if err := request.BindOptionalJSON(c, &req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}
	h.respond(c, "Booking completed")(h.service.Complete(c.Request.Context(), middleware.UserID(c), id, req))
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}
	var req NoteRequest
	if err := request.BindOptionalJSON(c, &req); err != nil {
		response.ValidationError(c, "Invalid request body")
		return
	}
	h.respond(c, "Booking cancelled")(h.service.Cancel(c.Request.Context(), middleware.UserID(c), id, req.Note))
}

func (h *Handler) SetPayment(c *gin.Context) {
	id, ok := request.ParamID(c, "id")
	if !ok {
		return
	}
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "paymentStatus must be one of: paid, refunded")
		return
	}
	h.respond(c, "Payment status updated")(h.service.SetPayment(c.Request.Context(), middleware.UserID(c), id, req.PaymentStatus))
}

func (h *Handler) respond(c *gin.Context, message string) func(*domain.Booking, error) {
	return func(b *domain.Booking, err error) {
		if err != nil {
			h.fail(c, err)
			return
		}
		response.OK(c, http.StatusOK, message, gin.H{"booking": b})
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.ValidationError(c, err.Error())
	case errors.Is(err, ErrProviderMismatch):
		response.Error(c, http.StatusBadRequest, "PROVIDER_MISMATCH", "Provider does not offer this service")
	case errors.Is(err, ErrServiceNotFound):
		response.Error(c, http.StatusNotFound, "SERVICE_NOT_FOUND", "Service not found or inactive")
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "Booking not found or already processed")
	default:
		_ = c.Error(err)
		response.Internal(c, "Failed to process booking")
	}
}

func actor(c *gin.Context) domain.Actor {
	return domain.Actor{ID: middleware.UserID(c), Role: middleware.Role(c)}
}
