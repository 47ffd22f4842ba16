package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/pastrieswithlove/bakery-api/cart"
	"github.com/pastrieswithlove/bakery-api/models"
)

func line(price string, qty int) cart.ResolvedLine {
	return cart.ResolvedLine{
		Product:  models.Product{Price: decimal.RequireFromString(price)},
		Quantity: qty,
	}
}

func TestPriceAppliesFlatShipping(t *testing.T) {
	calc := NewCalculator()

	quote := calc.Price([]cart.ResolvedLine{
		line("500.00", 2),
		line("1200.00", 1),
	})

	assert.True(t, quote.Subtotal.Equal(decimal.RequireFromString("2200.00")), "subtotal = %s", quote.Subtotal)
	assert.True(t, quote.Shipping.Equal(decimal.RequireFromString("5.00")), "shipping = %s", quote.Shipping)
	assert.True(t, quote.Total.Equal(decimal.RequireFromString("2205.00")), "total = %s", quote.Total)
}

func TestPriceEmptyCartHasNoShipping(t *testing.T) {
	calc := NewCalculator()

	quote := calc.Price(nil)

	assert.True(t, quote.Subtotal.IsZero())
	assert.True(t, quote.Shipping.IsZero())
	assert.True(t, quote.Total.IsZero())
}

func TestPriceNoRoundingDrift(t *testing.T) {
	calc := &Calculator{ShippingFee: decimal.Zero}

	// 0.10 added a hundred times must be exactly 10.00.
	lines := make([]cart.ResolvedLine, 100)
	for i := range lines {
		lines[i] = line("0.10", 1)
	}

	quote := calc.Price(lines)
	assert.True(t, quote.Total.Equal(decimal.RequireFromString("10.00")), "total = %s", quote.Total)
}

func TestPriceUsesLivePrices(t *testing.T) {
	calc := NewCalculator()

	before := calc.Price([]cart.ResolvedLine{line("3.50", 2)})
	after := calc.Price([]cart.ResolvedLine{line("4.00", 2)})

	assert.True(t, before.Subtotal.Equal(decimal.RequireFromString("7.00")))
	assert.True(t, after.Subtotal.Equal(decimal.RequireFromString("8.00")))
}
