// Package pricing derives display totals from a cart snapshot using live
// catalog prices. Prices are only frozen later, at order creation.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/pastrieswithlove/bakery-api/cart"
)

// DefaultShippingFee is the flat delivery fee shown at cart time. It is a
// display-time concern and is not persisted on orders.
var DefaultShippingFee = decimal.RequireFromString("5.00")

type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

type Calculator struct {
	ShippingFee decimal.Decimal
}

func NewCalculator() *Calculator {
	return &Calculator{ShippingFee: DefaultShippingFee}
}

// Price quotes the given resolved cart lines. Shipping applies only when
// the cart has a positive subtotal.
func (c *Calculator) Price(lines []cart.ResolvedLine) Quote {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	shipping := decimal.Zero
	if subtotal.IsPositive() {
		shipping = c.ShippingFee
	}

	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal.Add(shipping),
	}
}
