package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/ecommerce/backend/internal/application/catalog"
	"github.com/ecommerce/backend/internal/infrastructure/spreadsheet"
	"github.com/ecommerce/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ProductHandler serves products and their spreadsheet exchange
type ProductHandler struct {
	BaseHandler
	productService     *catalog.ProductService
	spreadsheetService *catalog.SpreadsheetService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalog.ProductService, spreadsheetService *catalog.SpreadsheetService) *ProductHandler {
	return &ProductHandler{
		productService:     productService,
		spreadsheetService: spreadsheetService,
	}
}

// List godoc
// @Summary      List products
// @Description  Filter by category name, brand name and a case-insensitive name search
// @Tags         catalog
// @Produce      json
// @Param        category  query string false "Category name"
// @Param        brand     query string false "Brand name"
// @Param        search    query string false "Name contains"
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        order_by  query string false "Sort field" Enums(name, price, stock, created_at, updated_at)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]catalog.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /catalog/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalog.ProductListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := pageOrDefault(filter.Page, filter.PageSize)
	h.SuccessWithMeta(c, products, total, page, pageSize)
}

// Get godoc
// @Summary      Get a product
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[catalog.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /catalog/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Product")
	if !ok {
		return
	}
	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Create godoc
// @Summary      Create a product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body catalog.CreateProductRequest true "Product"
// @Success      201 {object} APIResponse[catalog.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalog.CreateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update godoc
// @Summary      Replace a product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id      path string                       true "Product ID" format(uuid)
// @Param        request body catalog.UpdateProductRequest true "Product"
// @Success      200 {object} APIResponse[catalog.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Product")
	if !ok {
		return
	}
	var req catalog.UpdateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	product, err := h.productService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Patch godoc
// @Summary      Partially update a product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id      path string                      true "Product ID" format(uuid)
// @Param        request body catalog.PatchProductRequest true "Fields to change"
// @Success      200 {object} APIResponse[catalog.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/products/{id} [patch]
func (h *ProductHandler) Patch(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Product")
	if !ok {
		return
	}
	var req catalog.PatchProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	product, err := h.productService.Patch(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete godoc
// @Summary      Delete a product
// @Tags         catalog
// @Param        id path string true "Product ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id", "Product")
	if !ok {
		return
	}
	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Export godoc
// @Summary      Export products
// @Description  Download every product as an xlsx workbook
// @Tags         catalog
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200 {file} binary
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/products/export [get]
func (h *ProductHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.spreadsheetService.Export(c.Request.Context(), &buf); err != nil {
		h.HandleError(c, err)
		return
	}

	fileName := fmt.Sprintf("products-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	c.Data(http.StatusOK, spreadsheet.ContentType, buf.Bytes())
}

// Import godoc
// @Summary      Import products
// @Description  Create or update products from an xlsx workbook. Invalid rows are skipped and reported.
// @Tags         catalog
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "xlsx workbook"
// @Success      200 {object} APIResponse[catalog.ImportResult]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/products/import [post]
func (h *ProductHandler) Import(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "An .xlsx file is required in the 'file' field")
		return
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Only .xlsx files are supported")
		return
	}

	file, err := header.Open()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer file.Close()

	result, err := h.spreadsheetService.Import(c.Request.Context(), file, header.Size)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
