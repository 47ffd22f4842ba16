package cart

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pastrieswithlove/bakery-api/catalog"
	"github.com/pastrieswithlove/bakery-api/models"
)

// DBStore keeps cart lines as rows keyed by (subject, product), one row per
// pair, enforced by a unique index.
type DBStore struct {
	DB      *gorm.DB
	Catalog catalog.Reader
}

func NewDBStore(db *gorm.DB, reader catalog.Reader) *DBStore {
	return &DBStore{DB: db, Catalog: reader}
}

func (s *DBStore) Add(subject string, productID uint, delta int) (int, error) {
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

	var item models.CartItem
	err = s.DB.Where("subject = ? AND product_id = ?", subject, productID).First(&item).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
		if delta > product.StockQuantity {
			return 0, ErrOutOfStock
		}
		item = models.CartItem{Subject: subject, ProductID: productID, Quantity: delta}
		if err := s.DB.Create(&item).Error; err != nil {
			return 0, err
		}
		return item.Quantity, nil
	}

	newQuantity := item.Quantity + delta
	if newQuantity > product.StockQuantity {
		return 0, ErrOutOfStock
	}
	item.Quantity = newQuantity
	if err := s.DB.Save(&item).Error; err != nil {
		return 0, err
	}
	return item.Quantity, nil
}

func (s *DBStore) Get(subject string, productID uint) (int, error) {
	var item models.CartItem
	err := s.DB.Where("subject = ? AND product_id = ?", subject, productID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrItemNotFound
		}
		return 0, err
	}
	return item.Quantity, nil
}

func (s *DBStore) SetQuantity(subject string, productID uint, qty int) error {
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

	var item models.CartItem
	err = s.DB.Where("subject = ? AND product_id = ?", subject, productID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	item.Quantity = qty
	return s.DB.Save(&item).Error
}

func (s *DBStore) Remove(subject string, productID uint) error {
	result := s.DB.Where("subject = ? AND product_id = ?", subject, productID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *DBStore) Lines(subject string) ([]Line, error) {
	var items []models.CartItem
	if err := s.DB.Where("subject = ?", subject).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, Line{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return lines, nil
}

func (s *DBStore) Clear(subject string) error {
	return s.DB.Where("subject = ?", subject).Delete(&models.CartItem{}).Error
}

// ClearTx clears the subject's rows inside the caller's transaction.
func (s *DBStore) ClearTx(tx *gorm.DB, subject string) error {
	return tx.Where("subject = ?", subject).Delete(&models.CartItem{}).Error
}

func (s *DBStore) Count(subject string) (int, error) {
	var count int64
	err := s.DB.Model(&models.CartItem{}).Where("subject = ?", subject).Count(&count).Error
	return int(count), err
}
