package storefront

import (
	"github.com/savagerise/storefront/internal/catalog"
	"github.com/savagerise/storefront/internal/http/response"
	"github.com/savagerise/storefront/internal/models"

	"github.com/gin-gonic/gin"
)

// GetProducts 商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	var page catalog.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	products, err := h.Catalog.List(c.Request.Context(), page)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"items": products})
}

// SearchProducts 商品搜索
func (h *Handler) SearchProducts(c *gin.Context) {
	var filters models.SearchFilters
	var page catalog.Page
	if err := c.ShouldBindQuery(&filters); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := c.ShouldBindQuery(&page); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	products, err := h.Catalog.Search(c.Request.Context(), filters, page)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"items": products})
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.Catalog.Product(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, product)
}

// GetCategories 分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.Catalog.Categories(c.Request.Context())
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"items": categories})
}

// GetCategoryProducts 分类下的商品
func (h *Handler) GetCategoryProducts(c *gin.Context) {
	var page catalog.Page
	if err := c.ShouldBindQuery(&page); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	products, err := h.Catalog.ByCategory(c.Request.Context(), c.Param("name"), page)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"items": products})
}
