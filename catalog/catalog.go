package catalog

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pastrieswithlove/bakery-api/models"
)

var ErrNotFound = errors.New("product not found")

// Reader is the read-only catalog view the cart, pricing and checkout
// layers depend on.
type Reader interface {
	Product(id uint) (*models.Product, error)
}

// Store reads products and categories from the database.
type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) Product(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.DB.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *Store) ProductBySlug(slug string) (*models.Product, error) {
	var product models.Product
	if err := s.DB.Preload("Category").First(&product, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Filter narrows ActiveProducts the way the storefront's browse page does.
type Filter struct {
	CategorySlug string
	Search       string
	FeaturedOnly bool
}

func (s *Store) ActiveProducts(filter Filter) ([]models.Product, error) {
	query := s.DB.Model(&models.Product{}).
		Preload("Category").
		Where("is_active = ?", true)

	if filter.CategorySlug != "" && filter.CategorySlug != "all" {
		query = query.
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("products.name ILIKE ? OR products.description ILIKE ?", like, like)
	}
	if filter.FeaturedOnly {
		query = query.Where("is_featured = ?", true)
	}

	var products []models.Product
	if err := query.Order("products.created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) Categories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.DB.Where("is_active = ?", true).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
