package productControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pastrieswithlove/bakery-api/catalog"
	"github.com/pastrieswithlove/bakery-api/models"
)

// GET /products?category=<slug>&search=<text>&featured=true
func GetProducts(store *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := catalog.Filter{
			CategorySlug: c.DefaultQuery("category", "all"),
			Search:       c.Query("search"),
			FeaturedOnly: c.Query("featured") == "true",
		}

		products, err := store.ActiveProducts(filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /products/:id
func GetProductByID(store *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			// Fall back to slug lookup so storefront URLs stay pretty.
			product, err := store.ProductBySlug(c.Param("id"))
			if err != nil {
				respondProductError(c, err)
				return
			}
			c.JSON(http.StatusOK, product)
			return
		}

		product, err := store.Product(uint(id))
		if err != nil {
			respondProductError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func respondProductError(c *gin.Context, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
}

// -------- Admin product management --------

type ProductInput struct {
	Name          string          `json:"name" binding:"required"`
	Slug          string          `json:"slug" binding:"required"`
	Description   string          `json:"description"`
	CategoryID    uint            `json:"category_id" binding:"required"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	IsActive      *bool           `json:"is_active"`
	IsFeatured    bool            `json:"is_featured"`
}

func (in *ProductInput) validate() error {
	if in.Price.IsNegative() {
		return errors.New("price cannot be negative")
	}
	if in.StockQuantity < 0 {
		return errors.New("stock_quantity cannot be negative")
	}
	return nil
}

// POST /admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if err := input.validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		active := true
		if input.IsActive != nil {
			active = *input.IsActive
		}

		product := models.Product{
			Name:          input.Name,
			Slug:          input.Slug,
			Description:   input.Description,
			CategoryID:    input.CategoryID,
			Price:         input.Price,
			StockQuantity: input.StockQuantity,
			IsActive:      active,
			IsFeatured:    input.IsFeatured,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// PUT /admin/products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if err := input.validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		product.Name = input.Name
		product.Slug = input.Slug
		product.Description = input.Description
		product.CategoryID = input.CategoryID
		product.Price = input.Price
		product.StockQuantity = input.StockQuantity
		if input.IsActive != nil {
			product.IsActive = *input.IsActive
		}
		product.IsFeatured = input.IsFeatured

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// DELETE /admin/products/:id
//
// Cart rows referencing the product are left in place; the cart layer
// skips lines whose product has disappeared.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Product{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
