package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/pastrieswithlove/bakery-api/controllers/cart"
	orderControllers "github.com/pastrieswithlove/bakery-api/controllers/order"
	productControllers "github.com/pastrieswithlove/bakery-api/controllers/product"
	siteControllers "github.com/pastrieswithlove/bakery-api/controllers/site"
	"github.com/pastrieswithlove/bakery-api/middleware"
)

// SetupAdminRoutes registers the staff endpoints. Requires API-key
// middleware.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── Order Fulfillment ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrders(d.DB))
			orderAdmin.GET("/export-excel", orderControllers.ExportOrdersToExcel(d.DB))
			orderAdmin.GET("/ws", d.Hub.Handler)
			orderAdmin.GET("/:orderID", orderControllers.GetOrderByID(d.DB))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatus(d.DB, d.Hub))
			orderAdmin.DELETE("/:orderID", orderControllers.DeleteOrder(d.DB))
		}

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productControllers.CreateProduct(d.DB))
			productAdmin.PUT("/:id", productControllers.UpdateProduct(d.DB))
			productAdmin.DELETE("/:id", productControllers.DeleteProduct(d.DB))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productControllers.CreateCategory(d.DB))
			categoryAdmin.PUT("/:id", productControllers.UpdateCategory(d.DB))
			categoryAdmin.DELETE("/:id", productControllers.DeleteCategory(d.DB))
		}

		// ─────────── Site Settings ───────────
		adminGroup.PUT("/site/settings", siteControllers.UpdateSettings(d.DB))

		// ─────────── Customer Cart Lookup ───────────
		adminGroup.GET("/user-cart/:user_id", cartControllers.GetAdminUserCart(d.Carts, d.Catalog, d.Pricing))
	}
}
