package routes

import (
	"storefront-service/controllers"
	"storefront-service/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RegisterStorefrontRoutes sets up all storefront routes.
func RegisterStorefrontRoutes(r *gin.Engine, sc *controllers.StorefrontController) {
	r.GET("/", sc.Index)
	r.GET("/check_uploads", sc.CheckUploads)

	// Mutating routes get a per-IP rate limit.
	mutating := r.Group("/")
	mutating.Use(middleware.RateLimit(rate.Limit(10), 20))
	mutating.POST("/addshoppingcart", sc.AddToCart)
	mutating.POST("/payment", sc.Payment)
	mutating.POST("/checkout", sc.Checkout)
}
