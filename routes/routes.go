package routes

import (
	"catalog-service/controllers"
	"catalog-service/middleware"
	"catalog-service/services"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all catalog, auth and external-source routes.
func RegisterRoutes(
	r *gin.Engine,
	pc *controllers.ProductController,
	ac *controllers.AuthController,
	ec *controllers.ExternalController,
	tokens *services.TokenService,
) {
	auth := r.Group("/auth")
	auth.Use(middleware.RateLimitMiddleware())
	auth.POST("/login", ac.Login)
	auth.POST("/register", ac.Register)
	auth.GET("/me", middleware.AuthMiddleware(tokens), ac.Me)

	products := r.Group("/products")
	products.GET("", pc.ListProducts)

	protected := products.Group("")
	protected.Use(middleware.AuthMiddleware(tokens))
	protected.DELETE("/:id", pc.DeleteProduct)
	protected.GET("/deleted-percentage", pc.DeletedPercentage)
	protected.GET("/report", pc.NonDeletedReport)
	protected.GET("/low-stock", pc.LowStockProducts)

	external := r.Group("/external")
	external.GET("/products", ec.GetProducts)
	external.POST("/sync", middleware.AuthMiddleware(tokens), ec.TriggerSync)
}
