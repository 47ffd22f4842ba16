package orderControllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/pastrieswithlove/bakery-api/cart"
	"github.com/pastrieswithlove/bakery-api/checkout"
	"github.com/pastrieswithlove/bakery-api/middleware"
	"github.com/pastrieswithlove/bakery-api/models"
)

type orderItemView struct {
	ProductName        string          `json:"product_name"`
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	TotalPrice         decimal.Decimal `json:"total_price"`
	CustomizationNotes string          `json:"customization_notes,omitempty"`
}

type orderView struct {
	OrderNumber         string             `json:"order_number"`
	Status              models.OrderStatus `json:"status"`
	CustomerName        string             `json:"customer_name"`
	CustomerEmail       string             `json:"customer_email"`
	CustomerPhone       string             `json:"customer_phone"`
	TotalAmount         decimal.Decimal    `json:"total_amount"`
	DeliveryDate        string             `json:"delivery_date"`
	DeliveryAddress     string             `json:"delivery_address"`
	IsDelivery          bool               `json:"is_delivery"`
	SpecialInstructions string             `json:"special_instructions,omitempty"`
	Items               []orderItemView    `json:"items"`
	CreatedAt           string             `json:"created_at"`
}

// newOrderView shapes the confirmation payload. The row id stays internal;
// customers only ever see the order number.
func newOrderView(order *models.Order) orderView {
	items := make([]orderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemView{
			ProductName:        item.ProductName,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			TotalPrice:         item.TotalPrice(),
			CustomizationNotes: item.CustomizationNotes,
		})
	}
	return orderView{
		OrderNumber:         order.OrderNumber,
		Status:              order.Status,
		CustomerName:        order.CustomerName,
		CustomerEmail:       order.CustomerEmail,
		CustomerPhone:       order.CustomerPhone,
		TotalAmount:         order.TotalAmount,
		DeliveryDate:        order.DeliveryDate.Format(time.RFC3339),
		DeliveryAddress:     order.DeliveryAddress,
		IsDelivery:          order.IsDelivery(),
		SpecialInstructions: order.SpecialInstructions,
		Items:               items,
		CreatedAt:           order.CreatedAt.Format(time.RFC3339),
	}
}

// POST /checkout
func CheckoutHandler(svc *checkout.Service, stores cart.Stores) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, authed := middleware.Subject(c)
		store := stores.For(authed)

		var form checkout.Form
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		settings := models.LoadSettings(svc.DB)

		order, err := svc.Checkout(store, subject, form, settings)
		if err != nil {
			respondCheckoutError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Order placed successfully! We will contact you at " +
				order.CustomerPhone + " to confirm your order.",
			"order": newOrderView(order),
		})
	}
}

func respondCheckoutError(c *gin.Context, err error) {
	var noticeErr *checkout.NoticeError
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty."})
	case errors.Is(err, checkout.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in all required fields."})
	case errors.Is(err, checkout.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery date format."})
	case errors.As(err, &noticeErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Delivery date must be at least " + noticeErr.Notice + " from now.",
			"notice": noticeErr.Notice,
		})
	default:
		// Storage failures stay generic for the customer; the cause goes to
		// the server log.
		log.Printf("❌ Checkout failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "An error occurred while processing your order. Please try again.",
		})
	}
}

// GET /orders/:order_number
func GetOrderConfirmation(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		number := c.Param("order_number")
		order, err := svc.FindByOrderNumber(number)
		if err != nil {
			if errors.Is(err, checkout.ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, newOrderView(order))
	}
}
