package controllers

import (
	"net/http"

	"catalog-service/services"

	"github.com/gin-gonic/gin"
)

// ProductController handles HTTP requests for catalog operations.
type ProductController struct {
	products  services.ProductService
	validator *RequestValidator
	cache     *CacheManager
}

// NewProductController creates a new ProductController. cache may be nil.
func NewProductController(svc services.ProductService, validator *RequestValidator, cache *CacheManager) *ProductController {
	return &ProductController{products: svc, validator: validator, cache: cache}
}

// ListProducts handles GET /products
func (pc *ProductController) ListProducts(ctx *gin.Context) {
	query, err := pc.validator.ParseProductQuery(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if page, ok := pc.cache.GetProductList(ctx.Request.Context(), query); ok {
		ctx.JSON(http.StatusOK, page)
		return
	}

	page, svcErr := pc.products.ListProducts(ctx.Request.Context(), query)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	pc.cache.SetProductListAsync(query, page)
	ctx.JSON(http.StatusOK, page)
}

// DeleteProduct handles DELETE /products/:id
func (pc *ProductController) DeleteProduct(ctx *gin.Context) {
	id, err := pc.validator.ParseProductID(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if svcErr := pc.products.Remove(ctx.Request.Context(), id); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	pc.cache.Invalidate(ctx.Request.Context())
	ctx.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// DeletedPercentage handles GET /products/deleted-percentage
func (pc *ProductController) DeletedPercentage(ctx *gin.Context) {
	report, svcErr := pc.products.DeletedPercentage(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.String(http.StatusOK, report)
}

// NonDeletedReport handles GET /products/report
func (pc *ProductController) NonDeletedReport(ctx *gin.Context) {
	query, err := pc.validator.ParseStatsQuery(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	percentage, svcErr := pc.products.ActivePercentage(ctx.Request.Context(), query)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, percentage)
}

// LowStockProducts handles GET /products/low-stock
func (pc *ProductController) LowStockProducts(ctx *gin.Context) {
	threshold, err := pc.validator.ParseLowStockThreshold(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	products, svcErr := pc.products.LowStock(ctx.Request.Context(), threshold)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, products)
}
