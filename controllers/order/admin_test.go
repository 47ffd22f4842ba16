package orderControllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pastrieswithlove/bakery-api/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.OrderItem{}))
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, status models.OrderStatus) models.Order {
	t.Helper()
	order := models.Order{
		OrderNumber:   "ORD-20260314-ABCD1234",
		CustomerName:  "Wanjiru Kamau",
		CustomerEmail: "wanjiru@example.com",
		CustomerPhone: "+254 700 123 456",
		Status:        status,
		TotalAmount:   decimal.RequireFromString("2200.00"),
		DeliveryDate:  time.Now().Add(48 * time.Hour),
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func putStatus(t *testing.T, db *gorm.DB, orderID uint, status string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.PUT("/admin/orders/:orderID/status", UpdateOrderStatus(db, nil))

	body := strings.NewReader(fmt.Sprintf(`{"status": %q}`, status))
	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/admin/orders/%d/status", orderID), body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUpdateOrderStatus(t *testing.T) {
	db := openTestDB(t)
	order := seedOrder(t, db, models.OrderStatusReady)

	w := putStatus(t, db, order.ID, "completed")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		OrderNumber  string               `json:"order_number"`
		Status       models.OrderStatus   `json:"status"`
		NextStatuses []models.OrderStatus `json:"next_statuses"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, order.OrderNumber, resp.OrderNumber)
	assert.Equal(t, models.OrderStatusCompleted, resp.Status)
	assert.Empty(t, resp.NextStatuses)

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.OrderStatusCompleted, stored.Status)
}

func TestUpdateOrderStatusRepeatIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	order := seedOrder(t, db, models.OrderStatusCompleted)

	// Re-submitting the status an order already has succeeds and changes
	// nothing, even for a terminal state.
	w := putStatus(t, db, order.ID, "completed")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.OrderStatusCompleted, stored.Status)
	assert.Equal(t, order.OrderNumber, stored.OrderNumber)
}

func TestUpdateOrderStatusRejectsUnknownValue(t *testing.T) {
	db := openTestDB(t)
	order := seedOrder(t, db, models.OrderStatusPending)

	w := putStatus(t, db, order.ID, "shipped")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.OrderStatusPending, stored.Status, "rejected update must not touch the row")
}

func TestUpdateOrderStatusMissingOrder(t *testing.T) {
	db := openTestDB(t)

	w := putStatus(t, db, 9999, "confirmed")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteOrderRemovesItems(t *testing.T) {
	db := openTestDB(t)
	order := seedOrder(t, db, models.OrderStatusCancelled)
	require.NoError(t, db.Create(&models.OrderItem{
		OrderID:     order.ID,
		ProductID:   1,
		ProductName: "Almond Croissant",
		Quantity:    2,
		UnitPrice:   decimal.RequireFromString("500.00"),
	}).Error)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.DELETE("/admin/orders/:orderID", DeleteOrder(db))

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/admin/orders/%d", order.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var orders, items int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&items)
	assert.Zero(t, orders)
	assert.Zero(t, items, "items must be deleted with their order")
}
