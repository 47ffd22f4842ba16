// Package cart holds pending selections for a subject (a signed-in user id
// or an anonymous session id) behind one Store contract with two backings:
// durable database rows and an in-process session map.
package cart

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pastrieswithlove/bakery-api/catalog"
	"github.com/pastrieswithlove/bakery-api/models"
)

var (
	// ErrOutOfStock covers both an inactive product and a quantity that
	// would exceed the product's stock at the time of the change.
	ErrOutOfStock = errors.New("not enough stock available")

	ErrItemNotFound = errors.New("item not found in cart")

	// ErrInvalidQuantity rejects additions that could leave a line at zero
	// or below; lines only ever shrink through SetQuantity or Remove.
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Line is one (product, quantity) pairing in a subject's cart.
type Line struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// Store is the cart contract both backings satisfy identically.
type Store interface {
	// Add increases the line for productID by delta (creating it if
	// absent) and returns the new quantity. delta must be positive
	// (ErrInvalidQuantity otherwise); fails with ErrOutOfStock when the
	// product is inactive or the result would exceed its stock.
	Add(subject string, productID uint, delta int) (int, error)

	// Get returns the current quantity of an existing line.
	Get(subject string, productID uint) (int, error)

	// SetQuantity replaces the quantity of an existing line, subject to
	// the same stock ceiling. qty <= 0 removes the line.
	SetQuantity(subject string, productID uint, qty int) error

	Remove(subject string, productID uint) error

	// Lines returns the cart in insertion order.
	Lines(subject string) ([]Line, error)

	Clear(subject string) error
	Count(subject string) (int, error)
}

// TxClearer is implemented by backings whose Clear can join a database
// transaction, so checkout can clear the cart atomically with the order.
type TxClearer interface {
	ClearTx(tx *gorm.DB, subject string) error
}

// ResolvedLine pairs a cart line with its current product record.
type ResolvedLine struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Resolve attaches live products to cart lines. Lines whose product no
// longer exists are skipped rather than failing the whole cart.
func Resolve(reader catalog.Reader, lines []Line) ([]ResolvedLine, error) {
	resolved := make([]ResolvedLine, 0, len(lines))
	for _, line := range lines {
		product, err := reader.Product(line.ProductID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				continue
			}
			return nil, err
		}
		resolved = append(resolved, ResolvedLine{Product: *product, Quantity: line.Quantity})
	}
	return resolved, nil
}

// Stores selects the backing for a subject: database rows for signed-in
// users, the session map for anonymous visitors.
type Stores struct {
	Users  Store
	Guests Store
}

func (s Stores) For(authenticated bool) Store {
	if authenticated {
		return s.Users
	}
	return s.Guests
}
