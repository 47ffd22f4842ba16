package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/pastrieswithlove/bakery-api/cart"
	"github.com/pastrieswithlove/bakery-api/catalog"
	"github.com/pastrieswithlove/bakery-api/middleware"
	"github.com/pastrieswithlove/bakery-api/pricing"
)

type QuantityChangeInput struct {
	Change int `json:"change" binding:"required"`
}

type cartLineView struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
	InStock     bool            `json:"in_stock"`
}

// GET /cart
func GetCart(stores cart.Stores, reader catalog.Reader, calc *pricing.Calculator) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, authed := middleware.Subject(c)
		store := stores.For(authed)

		lines, err := store.Lines(subject)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		resolved, err := cart.Resolve(reader, lines)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		views := make([]cartLineView, 0, len(resolved))
		for _, line := range resolved {
			views = append(views, cartLineView{
				ProductID:   line.Product.ID,
				ProductName: line.Product.Name,
				UnitPrice:   line.Product.Price,
				Quantity:    line.Quantity,
				LineTotal:   line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))),
				InStock:     line.Product.InStock(),
			})
		}

		quote := calc.Price(resolved)
		c.JSON(http.StatusOK, gin.H{
			"items":      views,
			"subtotal":   quote.Subtotal,
			"shipping":   quote.Shipping,
			"total":      quote.Total,
			"cart_count": len(views),
		})
	}
}

// POST /cart/add/:product_id
func AddToCart(stores cart.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, authed := middleware.Subject(c)
		store := stores.For(authed)

		productID, ok := productIDParam(c)
		if !ok {
			return
		}

		quantity, err := store.Add(subject, productID, 1)
		if err != nil {
			respondCartError(c, err)
			return
		}

		count, _ := store.Count(subject)
		c.JSON(http.StatusOK, gin.H{
			"message":      "Product added to cart successfully",
			"new_quantity": quantity,
			"cart_count":   count,
		})
	}
}

// POST /cart/update/:product_id
//
// Applies a signed quantity change, clamped at zero; reaching zero removes
// the line. Responds with fresh totals so the cart page can re-render.
func UpdateQuantity(stores cart.Stores, reader catalog.Reader, calc *pricing.Calculator) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, authed := middleware.Subject(c)
		store := stores.For(authed)

		productID, ok := productIDParam(c)
		if !ok {
			return
		}

		var input QuantityChangeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		current, err := store.Get(subject, productID)
		if err != nil {
			respondCartError(c, err)
			return
		}

		newQuantity := current + input.Change
		if newQuantity < 0 {
			newQuantity = 0
		}
		if err := store.SetQuantity(subject, productID, newQuantity); err != nil {
			respondCartError(c, err)
			return
		}

		lines, err := store.Lines(subject)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		resolved, err := cart.Resolve(reader, lines)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		itemTotal := decimal.Zero
		if newQuantity > 0 {
			if product, err := reader.Product(productID); err == nil {
				itemTotal = product.Price.Mul(decimal.NewFromInt(int64(newQuantity)))
			}
		}

		quote := calc.Price(resolved)
		c.JSON(http.StatusOK, gin.H{
			"new_quantity": newQuantity,
			"item_total":   itemTotal,
			"subtotal":     quote.Subtotal,
			"shipping":     quote.Shipping,
			"total":        quote.Total,
			"cart_count":   len(resolved),
		})
	}
}

// DELETE /cart/:product_id
func RemoveFromCart(stores cart.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, authed := middleware.Subject(c)
		store := stores.For(authed)

		productID, ok := productIDParam(c)
		if !ok {
			return
		}

		if err := store.Remove(subject, productID); err != nil {
			respondCartError(c, err)
			return
		}

		count, _ := store.Count(subject)
		c.JSON(http.StatusOK, gin.H{
			"message":    "Item removed from cart",
			"cart_count": count,
		})
	}
}

// DELETE /cart
func ClearCart(stores cart.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, authed := middleware.Subject(c)
		store := stores.For(authed)

		if err := store.Clear(subject); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// GET /cart/count
func CartCount(stores cart.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, authed := middleware.Subject(c)
		store := stores.For(authed)

		count, err := store.Count(subject)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	}
}

// GET /admin/user-cart/:user_id
//
// Staff view of a signed-in customer's durable cart.
func GetAdminUserCart(stores cart.Stores, reader catalog.Reader, calc *pricing.Calculator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}

		lines, err := stores.Users.Lines(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		resolved, err := cart.Resolve(reader, lines)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		quote := calc.Price(resolved)
		c.JSON(http.StatusOK, gin.H{
			"items":    resolved,
			"subtotal": quote.Subtotal,
			"shipping": quote.Shipping,
			"total":    quote.Total,
		})
	}
}

func productIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
		return 0, false
	}
	return uint(id), true
}

func respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product does not exist"})
	case errors.Is(err, cart.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
	case errors.Is(err, cart.ErrOutOfStock):
		c.JSON(http.StatusConflict, gin.H{"error": "Not enough stock available"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
	}
}
