package models

import "time"

// CartItem is one durable cart line for a signed-in subject. At most one
// row exists per (subject, product); adding an already-present product
// bumps Quantity instead of inserting a second row.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Subject   string    `gorm:"index:idx_cart_subject_product,unique;not null" json:"subject"`
	ProductID uint      `gorm:"index:idx_cart_subject_product,unique;not null" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
