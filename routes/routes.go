package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pastrieswithlove/bakery-api/cart"
	"github.com/pastrieswithlove/bakery-api/catalog"
	"github.com/pastrieswithlove/bakery-api/checkout"
	orderControllers "github.com/pastrieswithlove/bakery-api/controllers/order"
	"github.com/pastrieswithlove/bakery-api/pricing"
)

// Deps bundles the wired services the route groups share.
type Deps struct {
	DB       *gorm.DB
	Catalog  *catalog.Store
	Carts    cart.Stores
	Pricing  *pricing.Calculator
	Checkout *checkout.Service
	Mailer   checkout.Mailer
	Hub      *orderControllers.Hub
}

// SetupRoutes is the single entry point that wires up the storefront,
// auth, and admin route groups.
func SetupRoutes(r *gin.Engine, d Deps) {
	SetupAuthRoutes(r)
	SetupShopRoutes(r, d)
	SetupAdminRoutes(r, d)
}
