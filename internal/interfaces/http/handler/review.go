package handler

import (
	"net/http"

	"github.com/ecommerce/backend/internal/application/catalog"
	"github.com/ecommerce/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReviewHandler serves product reviews
type ReviewHandler struct {
	BaseHandler
	reviewService *catalog.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *catalog.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// List godoc
// @Summary      List reviews
// @Tags         catalog
// @Produce      json
// @Param        product_id query string false "Only reviews of this product" format(uuid)
// @Param        page       query int    false "Page number" default(1)
// @Param        page_size  query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]catalog.ReviewResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /catalog/reviews [get]
func (h *ReviewHandler) List(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	var productID *uuid.UUID
	if raw := c.Query("product_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "product_id must be a valid UUID")
			return
		}
		productID = &id
	}

	reviews, total, err := h.reviewService.List(c.Request.Context(), productID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, reviews, total, filter.Page, filter.PageSize)
}

// Get godoc
// @Summary      Get a review
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Review ID" format(uuid)
// @Success      200 {object} APIResponse[catalog.ReviewResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /catalog/reviews/{id} [get]
func (h *ReviewHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Review")
	if !ok {
		return
	}
	review, err := h.reviewService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, review)
}

// Create godoc
// @Summary      Review a product
// @Description  The caller becomes the reviewer
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body catalog.CreateReviewRequest true "Review"
// @Success      201 {object} APIResponse[catalog.ReviewResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}
	var req catalog.CreateReviewRequest
	if !h.bindJSON(c, &req) {
		return
	}
	review, err := h.reviewService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, review)
}

// Update godoc
// @Summary      Replace a review
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id      path string                      true "Review ID" format(uuid)
// @Param        request body catalog.UpdateReviewRequest true "Review"
// @Success      200 {object} APIResponse[catalog.ReviewResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/reviews/{id} [put]
func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Review")
	if !ok {
		return
	}
	var req catalog.UpdateReviewRequest
	if !h.bindJSON(c, &req) {
		return
	}
	review, err := h.reviewService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, review)
}

// Patch godoc
// @Summary      Partially update a review
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id      path string                     true "Review ID" format(uuid)
// @Param        request body catalog.PatchReviewRequest true "Fields to change"
// @Success      200 {object} APIResponse[catalog.ReviewResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/reviews/{id} [patch]
func (h *ReviewHandler) Patch(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Review")
	if !ok {
		return
	}
	var req catalog.PatchReviewRequest
	if !h.bindJSON(c, &req) {
		return
	}
	review, err := h.reviewService.Patch(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, review)
}

// Delete godoc
// @Summary      Delete a review
// @Tags         catalog
// @Param        id path string true "Review ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Review")
	if !ok {
		return
	}
	if err := h.reviewService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
