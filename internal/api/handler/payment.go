package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/soleofit/soleo_go_server/internal/api/middleware"
	"github.com/soleofit/soleo_go_server/internal/model/dto"
	"github.com/soleofit/soleo_go_server/internal/pkg/response"
	"github.com/soleofit/soleo_go_server/internal/service"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
}

func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Create opens a PayPal order for a plan purchase.
// POST /api/v1/payments/create
func (h *PaymentHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	result, err := h.paymentService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case err == service.ErrPlanNotFound:
			response.NotFoundError(c, err.Error())
		case err == service.ErrPlanInactive, err == service.ErrPlanNotPurchasable:
			response.ParamError(c, err.Error())
		case err == service.ErrDuplicatePayment:
			response.ConflictError(c, err.Error())
		case errors.Is(err, service.ErrGatewayFailure):
			response.UpstreamError(c, service.ErrGatewayFailure.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "orden creada", result)
}

// Capture settles an approved order and activates the plan.
// POST /api/v1/payments/capture
func (h *PaymentHandler) Capture(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CapturePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	result, err := h.paymentService.Capture(c.Request.Context(), userID, req.OrderID)
	if err != nil {
		switch {
		case err == service.ErrPaymentNotFound:
			response.NotFoundError(c, err.Error())
		case err == service.ErrPaymentPermission:
			response.PermissionError(c, err.Error())
		case err == service.ErrPaymentNotPending, err == service.ErrOrderNotApproved:
			response.ParamError(c, err.Error())
		case errors.Is(err, service.ErrGatewayFailure):
			response.UpstreamError(c, service.ErrGatewayFailure.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "pago completado", result)
}

// Cancel voids a pending order.
// POST /api/v1/payments/cancel
func (h *PaymentHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CancelPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	if err := h.paymentService.Cancel(userID, req.OrderID); err != nil {
		switch err {
		case service.ErrPaymentNotFound:
			response.NotFoundError(c, err.Error())
		case service.ErrPaymentPermission:
			response.PermissionError(c, err.Error())
		case service.ErrPaymentNotPending:
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "pago cancelado", nil)
}

// ListMine returns the caller's payment history.
// GET /api/v1/payments/my
func (h *PaymentHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	page, pageSize := parsePagination(c)
	payments, total, err := h.paymentService.ListMine(userID, page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.SuccessPage(c, total, page, pageSize, payments)
}

// ListAll returns every payment, optionally filtered by user.
// GET /api/v1/admin/payments/history
func (h *PaymentHandler) ListAll(c *gin.Context) {
	var userID *int64
	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.ParamError(c, "user_id inválido")
			return
		}
		userID = &id
	}

	page, pageSize := parsePagination(c)
	payments, total, err := h.paymentService.ListAll(userID, page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.SuccessPage(c, total, page, pageSize, payments)
}

// Stats returns the revenue summary.
// GET /api/v1/admin/payments/stats
func (h *PaymentHandler) Stats(c *gin.Context) {
	stats, err := h.paymentService.Stats()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, stats)
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}
