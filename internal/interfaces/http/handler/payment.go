package handler

import (
	"github.com/ecommerce/backend/internal/application/payment"
	"github.com/ecommerce/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// PaymentHandler charges orders and exposes payment records
type PaymentHandler struct {
	BaseHandler
	paymentService *payment.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Process godoc
// @Summary      Pay for an order
// @Description  Charges the caller's pending order. A completed charge moves the order to processing; a failed one leaves it pending.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id      path string                        true "Order ID" format(uuid)
// @Param        request body payment.ProcessPaymentRequest true "Payment platform"
// @Success      201 {object} APIResponse[payment.ProcessPaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/orders/{id} [post]
func (h *PaymentHandler) Process(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	orderID, ok := h.parseID(c, "id", "Order")
	if !ok {
		return
	}
	var req payment.ProcessPaymentRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}
	resp, err := h.paymentService.Process(c.Request.Context(), orderID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get godoc
// @Summary      Get a payment
// @Description  Visible to the order's owner and to admins
// @Tags         payments
// @Produce      json
// @Param        id path string true "Payment ID" format(uuid)
// @Success      200 {object} APIResponse[payment.PaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/{id} [get]
func (h *PaymentHandler) Get(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id", "Payment")
	if !ok {
		return
	}
	resp, err := h.paymentService.GetByID(c.Request.Context(), id, userID, middleware.IsAdmin(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListByOrder godoc
// @Summary      List an order's payments
// @Description  Visible to the order's owner and to admins
// @Tags         payments
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[[]payment.PaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/orders/{id} [get]
func (h *PaymentHandler) ListByOrder(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	orderID, ok := h.parseID(c, "id", "Order")
	if !ok {
		return
	}
	resp, err := h.paymentService.ListByOrder(c.Request.Context(), orderID, userID, middleware.IsAdmin(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
