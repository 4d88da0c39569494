package handler

import (
	"github.com/ecommerce/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// BrandHandler serves product brands
type BrandHandler struct {
	BaseHandler
	brandService *catalog.BrandService
}

// NewBrandHandler creates a new BrandHandler
func NewBrandHandler(brandService *catalog.BrandService) *BrandHandler {
	return &BrandHandler{brandService: brandService}
}

// List godoc
// @Summary      List brands
// @Tags         catalog
// @Produce      json
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        search    query string false "Name search"
// @Success      200 {object} APIResponse[[]catalog.BrandResponse]
// @Router       /catalog/brands [get]
func (h *BrandHandler) List(c *gin.Context) {
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	brands, total, err := h.brandService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, brands, total, filter.Page, filter.PageSize)
}

// Get godoc
// @Summary      Get a brand
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Brand ID" format(uuid)
// @Success      200 {object} APIResponse[catalog.BrandResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /catalog/brands/{id} [get]
func (h *BrandHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Brand")
	if !ok {
		return
	}
	brand, err := h.brandService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, brand)
}

// Create godoc
// @Summary      Create a brand
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body catalog.BrandRequest true "Brand"
// @Success      201 {object} APIResponse[catalog.BrandResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/brands [post]
func (h *BrandHandler) Create(c *gin.Context) {
	var req catalog.BrandRequest
	if !h.bindJSON(c, &req) {
		return
	}
	brand, err := h.brandService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, brand)
}

// Update godoc
// @Summary      Replace a brand
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id      path string               true "Brand ID" format(uuid)
// @Param        request body catalog.BrandRequest true "Brand"
// @Success      200 {object} APIResponse[catalog.BrandResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/brands/{id} [put]
func (h *BrandHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Brand")
	if !ok {
		return
	}
	var req catalog.BrandRequest
	if !h.bindJSON(c, &req) {
		return
	}
	brand, err := h.brandService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, brand)
}

// Patch godoc
// @Summary      Partially update a brand
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id      path string                    true "Brand ID" format(uuid)
// @Param        request body catalog.BrandPatchRequest true "Fields to change"
// @Success      200 {object} APIResponse[catalog.BrandResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/brands/{id} [patch]
func (h *BrandHandler) Patch(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Brand")
	if !ok {
		return
	}
	var req catalog.BrandPatchRequest
	if !h.bindJSON(c, &req) {
		return
	}
	brand, err := h.brandService.Patch(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, brand)
}

// Delete godoc
// @Summary      Delete a brand
// @Tags         catalog
// @Param        id path string true "Brand ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/brands/{id} [delete]
func (h *BrandHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Brand")
	if !ok {
		return
	}
	if err := h.brandService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
