package handler

import (
	"github.com/ecommerce/backend/internal/application/shipping"
	"github.com/gin-gonic/gin"
)

// ShippingHandler quotes rates, buys labels and tracks deliveries
type ShippingHandler struct {
	BaseHandler
	shippingService *shipping.ShippingService
}

// NewShippingHandler creates a new ShippingHandler
func NewShippingHandler(shippingService *shipping.ShippingService) *ShippingHandler {
	return &ShippingHandler{shippingService: shippingService}
}

// GetRates godoc
// @Summary      Quote shipping rates
// @Description  Rates for a 5x5x5 in, 2 lb parcel from the shop to the given address
// @Tags         shipping
// @Accept       json
// @Produce      json
// @Param        id      path string                true "Order ID" format(uuid)
// @Param        request body shipping.RatesRequest true "Recipient address"
// @Success      200 {object} APIResponse[[]shipping.RateResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /shipping/orders/{id}/rates [post]
func (h *ShippingHandler) GetRates(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	orderID, ok := h.parseID(c, "id", "Order")
	if !ok {
		return
	}
	var req shipping.RatesRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}
	rates, err := h.shippingService.GetRates(c.Request.Context(), orderID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rates)
}

// PurchaseLabel godoc
// @Summary      Buy a shipping label
// @Description  Buys a PDF label for the chosen rate and records the delivery. A processing order moves to shipping.
// @Tags         shipping
// @Accept       json
// @Produce      json
// @Param        id      path string                        true "Order ID" format(uuid)
// @Param        request body shipping.PurchaseLabelRequest true "Chosen rate"
// @Success      201 {object} APIResponse[shipping.PurchaseLabelResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /shipping/orders/{id}/deliveries [post]
func (h *ShippingHandler) PurchaseLabel(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	orderID, ok := h.parseID(c, "id", "Order")
	if !ok {
		return
	}
	var req shipping.PurchaseLabelRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}
	resp, err := h.shippingService.PurchaseLabel(c.Request.Context(), orderID, userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListByOrder godoc
// @Summary      List an order's deliveries
// @Tags         shipping
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[[]shipping.DeliveryResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /shipping/orders/{id}/deliveries [get]
func (h *ShippingHandler) ListByOrder(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	orderID, ok := h.parseID(c, "id", "Order")
	if !ok {
		return
	}
	deliveries, err := h.shippingService.ListByOrder(c.Request.Context(), orderID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, deliveries)
}

// UpdateDeliveryStatus godoc
// @Summary      Update a delivery's status
// @Description  Marking a delivery delivered moves its order from shipping to delivered
// @Tags         shipping
// @Accept       json
// @Produce      json
// @Param        id      path string                               true "Delivery ID" format(uuid)
// @Param        request body shipping.UpdateDeliveryStatusRequest true "New status"
// @Success      200 {object} APIResponse[shipping.UpdateDeliveryStatusResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /shipping/deliveries/{id}/status [post]
func (h *ShippingHandler) UpdateDeliveryStatus(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Delivery")
	if !ok {
		return
	}
	var req shipping.UpdateDeliveryStatusRequest
	if !h.bindOptionalJSON(c, &req) {
		return
	}
	resp, err := h.shippingService.UpdateDeliveryStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetDelivery godoc
// @Summary      Get a delivery
// @Tags         shipping
// @Produce      json
// @Param        id path string true "Delivery ID" format(uuid)
// @Success      200 {object} APIResponse[shipping.DeliveryResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /shipping/deliveries/{id} [get]
func (h *ShippingHandler) GetDelivery(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Delivery")
	if !ok {
		return
	}
	resp, err := h.shippingService.GetDelivery(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
