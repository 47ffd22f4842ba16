// Package checkout converts a cart into a persisted order. Validation runs
// up front; the order, its items and the cart clear commit in one
// transaction so a failure never leaves a half-written order or a stale
// cart behind a committed one.
package checkout

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pastrieswithlove/bakery-api/cart"
	"github.com/pastrieswithlove/bakery-api/leadtime"
	"github.com/pastrieswithlove/bakery-api/models"
)

// DeliveryDateLayout matches the HTML datetime-local inputs the storefront
// submits.
const DeliveryDateLayout = "2006-01-02T15:04"

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrMissingFields = errors.New("please fill in all required fields")
	ErrInvalidDate   = errors.New("invalid delivery date format")
	ErrOrderNotFound = errors.New("order not found")
)

// NoticeError reports a delivery date inside the minimum notice window. It
// carries the configured notice text for display.
type NoticeError struct {
	Notice string
}

func (e *NoticeError) Error() string {
	return fmt.Sprintf("delivery date must be at least %s from now", e.Notice)
}

// CreationError wraps any storage failure during order materialization.
// Handlers surface it generically; the cause stays in server logs.
type CreationError struct {
	Err error
}

func (e *CreationError) Error() string {
	return "failed to create order: " + e.Err.Error()
}

func (e *CreationError) Unwrap() error {
	return e.Err
}

// Form is the checkout submission.
type Form struct {
	CustomerName        string `json:"customer_name"`
	CustomerEmail       string `json:"customer_email"`
	CustomerPhone       string `json:"customer_phone"`
	DeliveryDate        string `json:"delivery_date"`
	DeliveryAddress     string `json:"delivery_address"` // blank for pickup
	SpecialInstructions string `json:"special_instructions"`

	// ItemNotes carries optional per-product customization requests,
	// keyed by product id.
	ItemNotes map[uint]string `json:"item_notes"`
}

// Mailer sends the confirmation email. Implementations must not be
// required for checkout to succeed.
type Mailer interface {
	Send(to, subject, body string) error
}

type Service struct {
	DB *gorm.DB

	// Now is swappable for tests.
	Now func() time.Time

	// Mailer and Notify run best-effort after commit; either may be nil.
	Mailer Mailer
	Notify func(*models.Order)
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db, Now: time.Now}
}

// Checkout validates the form against the subject's cart and the site's
// minimum order notice, then atomically creates the order with prices
// frozen at this moment and clears the cart.
//
// Stock is neither re-validated nor decremented here: adding to the cart is
// the only stock gate, a deliberate policy of this storefront.
func (s *Service) Checkout(store cart.Store, subject string, form Form, settings models.SiteSettings) (*models.Order, error) {
	lines, err := store.Lines(subject)
	if err != nil {
		return nil, &CreationError{Err: err}
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	name := strings.TrimSpace(form.CustomerName)
	email := strings.TrimSpace(form.CustomerEmail)
	phone := strings.TrimSpace(form.CustomerPhone)
	dateStr := strings.TrimSpace(form.DeliveryDate)
	if name == "" || email == "" || phone == "" || dateStr == "" {
		return nil, ErrMissingFields
	}

	deliveryDate, err := time.ParseInLocation(DeliveryDateLayout, dateStr, time.Local)
	if err != nil {
		return nil, ErrInvalidDate
	}

	now := s.Now()
	notice := settings.MinimumOrderNotice
	if notice == "" {
		notice = "24 hours"
	}
	if deliveryDate.Before(leadtime.MinimumDeliveryDate(now, notice)) {
		return nil, &NoticeError{Notice: notice}
	}

	order := &models.Order{
		CustomerName:        name,
		CustomerEmail:       email,
		CustomerPhone:       phone,
		Status:              models.OrderStatusPending,
		DeliveryDate:        deliveryDate,
		DeliveryAddress:     strings.TrimSpace(form.DeliveryAddress),
		SpecialInstructions: strings.TrimSpace(form.SpecialInstructions),
	}

	txClearer, clearInTx := store.(cart.TxClearer)

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		number, err := s.uniqueOrderNumber(tx, now)
		if err != nil {
			return err
		}
		order.OrderNumber = number

		// Freeze each line against the product row as it stands right
		// now. Lines whose product has since been deleted are skipped.
		total := decimal.Zero
		var items []models.OrderItem
		for _, line := range lines {
			var product models.Product
			if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}
			items = append(items, models.OrderItem{
				ProductID:          product.ID,
				ProductName:        product.Name,
				Quantity:           line.Quantity,
				UnitPrice:          product.Price,
				CustomizationNotes: form.ItemNotes[product.ID],
			})
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		// Goods total only: shipping stays a display-time concern of the
		// cart quote and is not persisted on the order.
		order.TotalAmount = total
		order.Items = items

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		if clearInTx {
			return txClearer.ClearTx(tx, subject)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			return nil, ErrEmptyCart
		}
		return nil, &CreationError{Err: err}
	}

	// The session backing cannot join the transaction; clear it now that
	// the order is committed.
	if !clearInTx {
		if err := store.Clear(subject); err != nil {
			log.Printf("⚠️ Failed to clear cart for %s after order %s: %v", subject, order.OrderNumber, err)
		}
	}

	if s.Mailer != nil {
		if err := s.Mailer.Send(order.CustomerEmail, confirmationSubject(order), confirmationBody(order)); err != nil {
			log.Printf("⚠️ Confirmation email for order %s failed: %v", order.OrderNumber, err)
		}
	}
	if s.Notify != nil {
		s.Notify(order)
	}

	return order, nil
}

// uniqueOrderNumber probes a few candidates before trusting the random
// suffix; the unique index on order_number is the final arbiter under
// concurrent checkouts.
func (s *Service) uniqueOrderNumber(tx *gorm.DB, now time.Time) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		number := newOrderNumber(now)
		var count int64
		if err := tx.Model(&models.Order{}).Where("order_number = ?", number).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return number, nil
		}
	}
	return "", errors.New("could not generate a unique order number")
}

// newOrderNumber builds the customer-facing reference, e.g.
// ORD-20260829-3F2A9C1B.
func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}

// FindByOrderNumber looks up an order by its customer-facing reference.
// Confirmation flows never expose the internal row id.
func (s *Service) FindByOrderNumber(number string) (*models.Order, error) {
	var order models.Order
	err := s.DB.Preload("Items").Where("order_number = ?", number).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func confirmationSubject(order *models.Order) string {
	return fmt.Sprintf("Order %s received", order.OrderNumber)
}

func confirmationBody(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", order.CustomerName)
	fmt.Fprintf(&b, "Thank you for your order! Your order number is %s.\n\n", order.OrderNumber)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "  %dx %s @ %s\n", item.Quantity, item.ProductName, item.UnitPrice.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", order.TotalAmount.StringFixed(2))
	if order.IsDelivery() {
		fmt.Fprintf(&b, "Delivery to: %s\n", order.DeliveryAddress)
	} else {
		b.WriteString("Pickup in store.\n")
	}
	fmt.Fprintf(&b, "Scheduled for: %s\n\n", order.DeliveryDate.Format("Mon, 2 Jan 2006 15:04"))
	fmt.Fprintf(&b, "We will contact you at %s to confirm your order.\n", order.CustomerPhone)
	return b.String()
}
