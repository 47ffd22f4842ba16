package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pastrieswithlove/bakery-api/models"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GET /admin/orders
//
// Fulfillment listing with the filters staff actually use: status and a
// free-text search over order number, customer name and email.
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		statusFilter := c.Query("status")
		search := c.Query("search")

		query := db.Model(&models.Order{}).Preload("Items")

		if statusFilter != "" {
			status, err := models.ParseOrderStatus(statusFilter)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order status"})
				return
			}
			query = query.Where("status = ?", status)
		}
		if search != "" {
			like := "%" + search + "%"
			query = query.Where(
				"order_number ILIKE ? OR customer_name ILIKE ? OR customer_email ILIKE ?",
				like, like, like,
			)
		}

		var orders []models.Order
		if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": orders,
			"counts": orderCounts(db),
		})
	}
}

func orderCounts(db *gorm.DB) gin.H {
	count := func(status models.OrderStatus) int64 {
		var n int64
		db.Model(&models.Order{}).Where("status = ?", status).Count(&n)
		return n
	}

	var total int64
	db.Model(&models.Order{}).Count(&total)

	var revenue decimal.Decimal
	row := db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusCompleted).
		Select("COALESCE(SUM(total_amount), 0)").
		Row()
	if err := row.Scan(&revenue); err != nil {
		revenue = decimal.Zero
	}

	return gin.H{
		"total":         total,
		"pending":       count(models.OrderStatusPending),
		"confirmed":     count(models.OrderStatusConfirmed),
		"completed":     count(models.OrderStatusCompleted),
		"cancelled":     count(models.OrderStatusCancelled),
		"total_revenue": revenue,
	}
}

// GET /admin/orders/:orderID
func GetOrderByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		var order models.Order
		if err := db.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"order":         order,
			"is_delivery":   order.IsDelivery(),
			"next_statuses": order.Status.NextStatuses(),
		})
	}
}

// PUT /admin/orders/:orderID/status
//
// Accepts any valid status value. Sequencing is advised by next_statuses
// but not enforced here, so staff can correct mistakes; repeating a
// terminal status is a harmless no-op.
func UpdateOrderStatus(db *gorm.DB, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order status"})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		order.Status = newStatus
		if err := db.Model(&order).Update("status", newStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}

		if hub != nil {
			hub.Broadcast("order_status_changed", &order)
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Order status updated successfully",
			"order_number":  order.OrderNumber,
			"status":        order.Status,
			"next_statuses": order.Status.NextStatuses(),
		})
	}
}

// DELETE /admin/orders/:orderID
func DeleteOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			return tx.Where("id = ?", orderID).Delete(&models.Order{}).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
