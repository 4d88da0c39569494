package handler

import (
	"github.com/ecommerce/backend/internal/application/order"
	"github.com/gin-gonic/gin"
)

// OrderHandler serves checkout and order management
type OrderHandler struct {
	BaseHandler
	orderService *order.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *order.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List godoc
// @Summary      List all orders
// @Tags         orders
// @Produce      json
// @Param        status    query string false "Order status" Enums(pending, processing, shipping, delivered, cancelled)
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]order.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var filter order.OrderListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOrDefault(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// ListMine godoc
// @Summary      List the caller's orders
// @Tags         orders
// @Produce      json
// @Param        status    query string false "Order status" Enums(pending, processing, shipping, delivered, cancelled)
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]order.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/mine [get]
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	var filter order.OrderListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	orders, total, err := h.orderService.ListForUser(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOrDefault(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// Get godoc
// @Summary      Get one of the caller's orders
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[order.OrderResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id", "Order")
	if !ok {
		return
	}
	resp, err := h.orderService.GetForUser(c.Request.Context(), id, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AdminGet godoc
// @Summary      Get any order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[order.OrderResponse]
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/admin/{id} [get]
func (h *OrderHandler) AdminGet(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Order")
	if !ok {
		return
	}
	resp, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Checkout godoc
// @Summary      Place an order from a cart
// @Description  Reserves stock, snapshots prices and empties the cart in one transaction
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        cart_id path string                true  "Cart ID" format(uuid)
// @Param        request body order.CheckoutRequest false "Optional shipping address"
// @Success      201 {object} APIResponse[order.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/checkout/{cart_id} [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	cartID, ok := h.parseID(c, "cart_id", "Cart")
	if !ok {
		return
	}

	var req order.CheckoutRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}

	resp, err := h.orderService.Checkout(c.Request.Context(), userID, cartID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// UpdateStatus godoc
// @Summary      Change an order's status
// @Description  pending → processing|cancelled, processing → shipping|cancelled, shipping → delivered. Cancelling restocks.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id      path string                    true "Order ID" format(uuid)
// @Param        request body order.UpdateStatusRequest true "New status"
// @Success      200 {object} APIResponse[order.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Order")
	if !ok {
		return
	}
	var req order.UpdateStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.orderService.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
