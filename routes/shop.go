package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/pastrieswithlove/bakery-api/controllers/cart"
	orderControllers "github.com/pastrieswithlove/bakery-api/controllers/order"
	productControllers "github.com/pastrieswithlove/bakery-api/controllers/product"
	siteControllers "github.com/pastrieswithlove/bakery-api/controllers/site"
	"github.com/pastrieswithlove/bakery-api/middleware"
)

// SetupShopRoutes registers the public storefront endpoints.
func SetupShopRoutes(r *gin.Engine, d Deps) {
	// ──────────────── Browse ────────────────
	r.GET("/products", productControllers.GetProducts(d.Catalog))
	r.GET("/products/:id", productControllers.GetProductByID(d.Catalog))
	r.GET("/categories", productControllers.GetCategories(d.Catalog))
	r.GET("/categories/:slug/products", productControllers.GetCategoryProducts(d.Catalog))

	// ──────────────── Site content ────────────────
	r.GET("/site/settings", siteControllers.GetPublicSettings(d.DB))
	r.POST("/contact", siteControllers.SubmitContact(d.DB, d.Mailer))
	r.POST("/newsletter/subscribe", siteControllers.SubscribeNewsletter(d.DB))

	// ──────────────── Shopping cart ────────────────
	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.ResolveSubject, middleware.RequireSubject)
	{
		cartGroup.GET("/", cartControllers.GetCart(d.Carts, d.Catalog, d.Pricing))
		cartGroup.GET("/count", cartControllers.CartCount(d.Carts))
		cartGroup.POST("/add/:product_id", cartControllers.AddToCart(d.Carts))
		cartGroup.POST("/update/:product_id", cartControllers.UpdateQuantity(d.Carts, d.Catalog, d.Pricing))
		cartGroup.DELETE("/:product_id", cartControllers.RemoveFromCart(d.Carts))
		cartGroup.DELETE("/", cartControllers.ClearCart(d.Carts))
	}

	// ──────────────── Checkout & confirmation ────────────────
	r.POST("/checkout",
		middleware.ResolveSubject,
		middleware.RequireSubject,
		orderControllers.CheckoutHandler(d.Checkout, d.Carts),
	)
	r.GET("/orders/:order_number", orderControllers.GetOrderConfirmation(d.Checkout))
}
