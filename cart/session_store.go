package cart

import (
	"sync"

	"github.com/pastrieswithlove/bakery-api/catalog"
)

// SessionStore holds anonymous carts in process memory, keyed by session
// id. A cart here lives only as long as the process; guests who want a
// durable cart sign in.
type SessionStore struct {
	Catalog catalog.Reader

	mu    sync.Mutex
	carts map[string]*sessionCart
}

// sessionCart is a quantity map plus insertion order, so Lines comes back
// in the order products were first added, matching the row backing.
type sessionCart struct {
	quantities map[uint]int
	order      []uint
}

func NewSessionStore(reader catalog.Reader) *SessionStore {
	return &SessionStore{
		Catalog: reader,
		carts:   make(map[string]*sessionCart),
	}
}

func (s *SessionStore) cart(subject string) *sessionCart {
	c, ok := s.carts[subject]
	if !ok {
		c = &sessionCart{quantities: make(map[uint]int)}
		s.carts[subject] = c
	}
	return c
}

func (s *SessionStore) Add(subject string, productID uint, delta int) (int, error) {
	if delta <= 0 {
		return 0, ErrInvalidQuantity
	}
	product, err := s.Catalog.Product(productID)
	if err != nil {
		return 0, err
	}
	if !product.IsActive {
		return 0, ErrOutOfStock
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(subject)
	newQuantity := c.quantities[productID] + delta
	if newQuantity > product.StockQuantity {
		return 0, ErrOutOfStock
	}
	if _, exists := c.quantities[productID]; !exists {
		c.order = append(c.order, productID)
	}
	c.quantities[productID] = newQuantity
	return newQuantity, nil
}

func (s *SessionStore) Get(subject string, productID uint) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[subject]
	if !ok {
		return 0, ErrItemNotFound
	}
	qty, ok := c.quantities[productID]
	if !ok {
		return 0, ErrItemNotFound
	}
	return qty, nil
}

func (s *SessionStore) SetQuantity(subject string, productID uint, qty int) error {
	if qty <= 0 {
		return s.Remove(subject, productID)
	}

	product, err := s.Catalog.Product(productID)
	if err != nil {
		return err
	}
	if qty > product.StockQuantity {
		return ErrOutOfStock
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[subject]
	if !ok {
		return ErrItemNotFound
	}
	if _, exists := c.quantities[productID]; !exists {
		return ErrItemNotFound
	}
	c.quantities[productID] = qty
	return nil
}

func (s *SessionStore) Remove(subject string, productID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[subject]
	if !ok {
		return ErrItemNotFound
	}
	if _, exists := c.quantities[productID]; !exists {
		return ErrItemNotFound
	}
	delete(c.quantities, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *SessionStore) Lines(subject string) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[subject]
	if !ok {
		return []Line{}, nil
	}
	lines := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		lines = append(lines, Line{ProductID: id, Quantity: c.quantities[id]})
	}
	return lines, nil
}

func (s *SessionStore) Clear(subject string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, subject)
	return nil
}

func (s *SessionStore) Count(subject string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[subject]
	if !ok {
		return 0, nil
	}
	return len(c.quantities), nil
}
