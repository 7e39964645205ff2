package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"storecatalog/catalog-service/internal/app/catalog/entity"
	"storecatalog/catalog-service/internal/app/catalog/service"
	"storecatalog/pkg/logger"

	"github.com/gin-gonic/gin"
)

const msgInvalidRequestBody = "Invalid request body"

const (
	msgCategoryCreated = "Category created successfully"
	msgCategoryUpdated = "Category updated successfully"
	msgCategoryDeleted = "Category deleted successfully"
	msgProductCreated  = "Product created successfully"
	msgProductUpdated  = "Product updated successfully"
	msgProductDeleted  = "Product deleted successfully"
)

// CatalogHandler serves the /api/categories and /api/products resources.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// === CATEGORIES HANDLERS ===

// GetAllCategories handles GET /api/categories
func (h *CatalogHandler) GetAllCategories(c *gin.Context) {
	categories, err := h.catalogService.GetAllCategories(c.Request.Context())
	if err != nil {
		respondError(c, err, service.MsgFetchCategoriesFailed, entity.ResourceCategory, "list")
		return
	}
	respondSuccess(c, http.StatusOK, categories, "")
}

// GetCategory handles GET /api/categories/:id
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, ok := parseID(c, service.MsgFetchCategoryFailed, entity.ResourceCategory, "get")
	if !ok {
		return
	}

	category, err := h.catalogService.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, service.MsgFetchCategoryFailed, entity.ResourceCategory, "get")
		return
	}
	respondSuccess(c, http.StatusOK, category, "")
}

// CreateCategory handles POST /api/categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req entity.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailure(c, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, service.MsgCreateCategoryFailed, entity.ResourceCategory, "create")
		return
	}
	respondSuccess(c, http.StatusCreated, category, msgCategoryCreated)
}

// UpdateCategory handles PUT /api/categories/:id
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c, service.MsgUpdateCategoryFailed, entity.ResourceCategory, "update")
	if !ok {
		return
	}
	patch, ok := bindPatch(c)
	if !ok {
		return
	}

	category, err := h.catalogService.UpdateCategory(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err, service.MsgUpdateCategoryFailed, entity.ResourceCategory, "update")
		return
	}
	respondSuccess(c, http.StatusOK, category, msgCategoryUpdated)
}

// DeleteCategory handles DELETE /api/categories/:id
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, service.MsgDeleteCategoryFailed, entity.ResourceCategory, "delete")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, err, service.MsgDeleteCategoryFailed, entity.ResourceCategory, "delete")
		return
	}
	respondSuccess(c, http.StatusOK, nil, msgCategoryDeleted)
}

// === PRODUCTS HANDLERS ===

// GetAllProducts handles GET /api/products
func (h *CatalogHandler) GetAllProducts(c *gin.Context) {
	products, err := h.catalogService.GetAllProducts(c.Request.Context())
	if err != nil {
		respondError(c, err, service.MsgFetchProductsFailed, entity.ResourceProduct, "list")
		return
	}
	respondSuccess(c, http.StatusOK, products, "")
}

// GetProduct handles GET /api/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, service.MsgFetchProductFailed, entity.ResourceProduct, "get")
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, service.MsgFetchProductFailed, entity.ResourceProduct, "get")
		return
	}
	respondSuccess(c, http.StatusOK, product, "")
}

// CreateProduct handles POST /api/products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req entity.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailure(c, http.StatusBadRequest, msgInvalidRequestBody)
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, service.MsgCreateProductFailed, entity.ResourceProduct, "create")
		return
	}
	respondSuccess(c, http.StatusCreated, product, msgProductCreated)
}

// UpdateProduct handles PUT /api/products/:id. Only the fields present in
// the body are changed.
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, service.MsgUpdateProductFailed, entity.ResourceProduct, "update")
	if !ok {
		return
	}
	patch, ok := bindPatch(c)
	if !ok {
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err, service.MsgUpdateProductFailed, entity.ResourceProduct, "update")
		return
	}
	respondSuccess(c, http.StatusOK, product, msgProductUpdated)
}

// DeleteProduct handles DELETE /api/products/:id
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, service.MsgDeleteProductFailed, entity.ResourceProduct, "delete")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err, service.MsgDeleteProductFailed, entity.ResourceProduct, "delete")
		return
	}
	respondSuccess(c, http.StatusOK, nil, msgProductDeleted)
}

// === HELPERS ===

// parseID reads the :id path parameter. A malformed id is treated like a
// store failure of the operation.
func parseID(c *gin.Context, fallback, resource, operation string) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(c, service.PersistenceError(fallback, err), fallback, resource, operation)
		return 0, false
	}
	return id, true
}

// bindPatch decodes an update body. An empty body is an empty patch.
func bindPatch(c *gin.Context) (entity.Patch, bool) {
	var patch entity.Patch

	body, err := c.GetRawData()
	if err != nil {
		respondFailure(c, http.StatusBadRequest, msgInvalidRequestBody)
		return patch, false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return patch, true
	}
	if err := json.Unmarshal(body, &patch); err != nil {
		respondFailure(c, http.StatusBadRequest, msgInvalidRequestBody)
		return patch, false
	}
	return patch, true
}

func respondSuccess(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, entity.Response{Success: true, Data: data, Message: message})
}

func respondFailure(c *gin.Context, status int, message string) {
	c.JSON(status, entity.Response{Success: false, Message: message})
}

// respondError maps a classified error to its status code. Persistence
// causes are logged and replaced by the fixed fallback message.
func respondError(c *gin.Context, err error, fallback, resource, operation string) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrConflict):
		respondFailure(c, http.StatusBadRequest, service.Message(err, fallback))
	case errors.Is(err, service.ErrNotFound):
		respondFailure(c, http.StatusNotFound, service.Message(err, fallback))
	default:
		logger.Error().
			Err(err).
			Str("resource", resource).
			Str("operation", operation).
			Str("path", c.Request.URL.Path).
			Msg("Catalog request failed")
		respondFailure(c, http.StatusInternalServerError, fallback)
	}
}
