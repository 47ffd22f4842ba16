package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"     // placed, awaiting confirmation
	OrderStatusConfirmed  OrderStatus = "confirmed"   // confirmed by staff
	OrderStatusInProgress OrderStatus = "in_progress" // being baked
	OrderStatusReady      OrderStatus = "ready"       // ready for pickup/delivery
	OrderStatusCompleted  OrderStatus = "completed"   // handed over
	OrderStatusCancelled  OrderStatus = "cancelled"   // cancelled by staff
)

var ErrInvalidOrderStatus = errors.New("invalid order status")

// OrderStatusTransitions documents the expected staff flow. It is advisory:
// the storage contract accepts any valid status value, including repeats of
// a terminal state, and leaves sequencing to the admin UI.
var OrderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusInProgress, OrderStatusCancelled},
	OrderStatusInProgress: {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:      {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted:  {},
	OrderStatusCancelled:  {},
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := OrderStatusTransitions[status]; !ok {
		return "", ErrInvalidOrderStatus
	}
	return status, nil
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// NextStatuses returns the advisory follow-up statuses for the admin UI.
func (s OrderStatus) NextStatuses() []OrderStatus {
	return OrderStatusTransitions[s]
}

type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OrderNumber string `gorm:"uniqueIndex;not null" json:"order_number"`

	CustomerName  string `gorm:"not null" json:"customer_name"`
	CustomerEmail string `gorm:"not null" json:"customer_email"`
	CustomerPhone string `gorm:"not null" json:"customer_phone"`

	Status OrderStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`

	// TotalAmount is frozen at checkout from the items' line totals and is
	// never recomputed afterwards.
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`

	DeliveryDate        time.Time `gorm:"not null" json:"delivery_date"`
	DeliveryAddress     string    `json:"delivery_address"` // blank means pickup
	SpecialInstructions string    `json:"special_instructions"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsDelivery is derived from the address, not stored.
func (o *Order) IsDelivery() bool {
	return strings.TrimSpace(o.DeliveryAddress) != ""
}

type OrderItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	OrderID   uint `gorm:"index:idx_order_product,unique" json:"order_id"`
	ProductID uint `gorm:"index:idx_order_product,unique" json:"product_id"`

	// ProductName and UnitPrice are copied from the product at checkout so
	// later catalog edits never change historical orders.
	ProductName string          `gorm:"not null" json:"product_name"`
	Quantity    int             `gorm:"not null;default:1" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`

	CustomizationNotes string `json:"customization_notes"`
}

func (i *OrderItem) TotalPrice() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
