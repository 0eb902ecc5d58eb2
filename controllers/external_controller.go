package controllers

import (
	"net/http"

	"catalog-service/services"

	"github.com/gin-gonic/gin"
)

// ExternalController handles requests against the external content source.
type ExternalController struct {
	external *services.ExternalAPIService
}

// NewExternalController creates a new ExternalController.
func NewExternalController(external *services.ExternalAPIService) *ExternalController {
	return &ExternalController{external: external}
}

// GetProducts handles GET /external/products. The fetch is live and has
// no persistence side effect.
func (ec *ExternalController) GetProducts(ctx *gin.Context) {
	list, svcErr := ec.external.FetchProducts(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// TriggerSync handles POST /external/sync. It runs the same pull-and-diff
// job the scheduler dispatches.
func (ec *ExternalController) TriggerSync(ctx *gin.Context) {
	synced, err := ec.external.SyncProducts(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Product sync failed"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"synced": synced})
}
