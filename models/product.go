package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string          `gorm:"not null" json:"name"`
	Slug          string          `gorm:"uniqueIndex;not null" json:"slug"`
	Description   string          `json:"description"`
	CategoryID    uint            `gorm:"index" json:"category_id"`
	Category      Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	StockQuantity int             `gorm:"not null;default:0" json:"stock_quantity"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`
	IsFeatured    bool            `gorm:"default:false" json:"is_featured"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}

// StockStatus mirrors what the storefront shows on product cards.
func (p *Product) StockStatus() string {
	switch {
	case p.StockQuantity > 10:
		return "In Stock"
	case p.StockQuantity > 0:
		return "Low Stock"
	default:
		return "Out of Stock"
	}
}
