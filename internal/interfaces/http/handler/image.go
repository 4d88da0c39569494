package handler

import (
	"github.com/ecommerce/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// ImageHandler manages product images held in object storage
type ImageHandler struct {
	BaseHandler
	imageService *catalog.ImageService
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(imageService *catalog.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// InitiateUpload godoc
// @Summary      Start a product image upload
// @Description  Records the image and returns a presigned URL the client PUTs the file to
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id      path string                             true "Product ID" format(uuid)
// @Param        request body catalog.InitiateImageUploadRequest true "Image metadata"
// @Success      201 {object} APIResponse[catalog.InitiateImageUploadResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/products/{id}/images [post]
func (h *ImageHandler) InitiateUpload(c *gin.Context) {
	productID, ok := h.parseID(c, "id", "Product")
	if !ok {
		return
	}
	var req catalog.InitiateImageUploadRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.imageService.InitiateUpload(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List godoc
// @Summary      List product images
// @Description  Each image carries a presigned download URL
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[[]catalog.ImageResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /catalog/products/{id}/images [get]
func (h *ImageHandler) List(c *gin.Context) {
	productID, ok := h.parseID(c, "id", "Product")
	if !ok {
		return
	}
	images, err := h.imageService.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, images)
}

// Delete godoc
// @Summary      Delete a product image
// @Tags         catalog
// @Param        id path string true "Image ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/images/{id} [delete]
func (h *ImageHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Image")
	if !ok {
		return
	}
	if err := h.imageService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
