package cart_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pastrieswithlove/bakery-api/cart"
	"github.com/pastrieswithlove/bakery-api/catalog"
	"github.com/pastrieswithlove/bakery-api/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Category{}, &models.Product{}, &models.CartItem{},
	))
	return db
}

func seedProducts(t *testing.T, db *gorm.DB) (cupcake, cake, discontinued models.Product) {
	t.Helper()

	category := models.Category{Name: "Cakes", Slug: "cakes", IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	cupcake = models.Product{
		Name: "Vanilla Cupcake", Slug: "vanilla-cupcake", CategoryID: category.ID,
		Price: decimal.RequireFromString("3.50"), StockQuantity: 5, IsActive: true,
	}
	cake = models.Product{
		Name: "Chocolate Cake", Slug: "chocolate-cake", CategoryID: category.ID,
		Price: decimal.RequireFromString("25.00"), StockQuantity: 2, IsActive: true,
	}
	discontinued = models.Product{
		Name: "Fruit Mince Pie", Slug: "fruit-mince-pie", CategoryID: category.ID,
		Price: decimal.RequireFromString("4.00"), StockQuantity: 10, IsActive: false,
	}
	require.NoError(t, db.Create(&cupcake).Error)
	require.NoError(t, db.Create(&cake).Error)
	require.NoError(t, db.Create(&discontinued).Error)
	return cupcake, cake, discontinued
}

// Both cart backings must pass the same behavioral suite.
func TestStoreContract(t *testing.T) {
	backings := []struct {
		name  string
		build func(t *testing.T) (cart.Store, *gorm.DB, models.Product, models.Product, models.Product)
	}{
		{
			name: "db",
			build: func(t *testing.T) (cart.Store, *gorm.DB, models.Product, models.Product, models.Product) {
				db := openTestDB(t)
				cupcake, cake, discontinued := seedProducts(t, db)
				return cart.NewDBStore(db, catalog.NewStore(db)), db, cupcake, cake, discontinued
			},
		},
		{
			name: "session",
			build: func(t *testing.T) (cart.Store, *gorm.DB, models.Product, models.Product, models.Product) {
				db := openTestDB(t)
				cupcake, cake, discontinued := seedProducts(t, db)
				return cart.NewSessionStore(catalog.NewStore(db)), db, cupcake, cake, discontinued
			},
		},
	}

	for _, backing := range backings {
		t.Run(backing.name, func(t *testing.T) {
			t.Run("add creates then increments a single line", func(t *testing.T) {
				store, _, cupcake, _, _ := backing.build(t)

				qty, err := store.Add("alice", cupcake.ID, 1)
				require.NoError(t, err)
				assert.Equal(t, 1, qty)

				qty, err = store.Add("alice", cupcake.ID, 1)
				require.NoError(t, err)
				assert.Equal(t, 2, qty)

				lines, err := store.Lines("alice")
				require.NoError(t, err)
				require.Len(t, lines, 1, "one line per (subject, product)")
				assert.Equal(t, cart.Line{ProductID: cupcake.ID, Quantity: 2}, lines[0])
			})

			t.Run("add rejects non-positive deltas", func(t *testing.T) {
				store, _, cupcake, _, _ := backing.build(t)

				_, err := store.Add("alice", cupcake.ID, 0)
				assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
				_, err = store.Add("alice", cupcake.ID, -1)
				assert.ErrorIs(t, err, cart.ErrInvalidQuantity)

				lines, err := store.Lines("alice")
				require.NoError(t, err)
				assert.Empty(t, lines, "a rejected add must not create a line")

				// An existing line can never be pushed to zero through Add.
				_, err = store.Add("alice", cupcake.ID, 2)
				require.NoError(t, err)
				_, err = store.Add("alice", cupcake.ID, -2)
				assert.ErrorIs(t, err, cart.ErrInvalidQuantity)

				qty, err := store.Get("alice", cupcake.ID)
				require.NoError(t, err)
				assert.Equal(t, 2, qty)
			})

			t.Run("add enforces the stock ceiling", func(t *testing.T) {
				store, _, _, cake, _ := backing.build(t)

				_, err := store.Add("alice", cake.ID, 2)
				require.NoError(t, err)

				_, err = store.Add("alice", cake.ID, 1)
				assert.ErrorIs(t, err, cart.ErrOutOfStock)

				qty, err := store.Get("alice", cake.ID)
				require.NoError(t, err)
				assert.Equal(t, 2, qty, "failed add must not change the line")
			})

			t.Run("add rejects inactive products", func(t *testing.T) {
				store, _, _, _, discontinued := backing.build(t)

				_, err := store.Add("alice", discontinued.ID, 1)
				assert.ErrorIs(t, err, cart.ErrOutOfStock)
			})

			t.Run("add rejects unknown products", func(t *testing.T) {
				store, _, _, _, _ := backing.build(t)

				_, err := store.Add("alice", 9999, 1)
				assert.ErrorIs(t, err, catalog.ErrNotFound)
			})

			t.Run("set quantity respects the ceiling and removes at zero", func(t *testing.T) {
				store, _, cupcake, _, _ := backing.build(t)

				_, err := store.Add("alice", cupcake.ID, 1)
				require.NoError(t, err)

				require.NoError(t, store.SetQuantity("alice", cupcake.ID, 5))
				qty, err := store.Get("alice", cupcake.ID)
				require.NoError(t, err)
				assert.Equal(t, 5, qty)

				assert.ErrorIs(t, store.SetQuantity("alice", cupcake.ID, 6), cart.ErrOutOfStock)

				require.NoError(t, store.SetQuantity("alice", cupcake.ID, 0))
				_, err = store.Get("alice", cupcake.ID)
				assert.ErrorIs(t, err, cart.ErrItemNotFound)
			})

			t.Run("remove fails on a missing line", func(t *testing.T) {
				store, _, cupcake, _, _ := backing.build(t)

				assert.ErrorIs(t, store.Remove("alice", cupcake.ID), cart.ErrItemNotFound)
			})

			t.Run("lines keep insertion order and carts are per subject", func(t *testing.T) {
				store, _, cupcake, cake, _ := backing.build(t)

				_, err := store.Add("alice", cake.ID, 1)
				require.NoError(t, err)
				_, err = store.Add("alice", cupcake.ID, 3)
				require.NoError(t, err)
				_, err = store.Add("bob", cupcake.ID, 1)
				require.NoError(t, err)

				lines, err := store.Lines("alice")
				require.NoError(t, err)
				require.Len(t, lines, 2)
				assert.Equal(t, cake.ID, lines[0].ProductID)
				assert.Equal(t, cupcake.ID, lines[1].ProductID)

				count, err := store.Count("bob")
				require.NoError(t, err)
				assert.Equal(t, 1, count)
			})

			t.Run("clear empties only the subject's cart", func(t *testing.T) {
				store, _, cupcake, _, _ := backing.build(t)

				_, err := store.Add("alice", cupcake.ID, 1)
				require.NoError(t, err)
				_, err = store.Add("bob", cupcake.ID, 1)
				require.NoError(t, err)

				require.NoError(t, store.Clear("alice"))

				lines, err := store.Lines("alice")
				require.NoError(t, err)
				assert.Empty(t, lines)

				count, err := store.Count("bob")
				require.NoError(t, err)
				assert.Equal(t, 1, count)
			})
		})
	}
}

func TestResolveSkipsMissingProducts(t *testing.T) {
	db := openTestDB(t)
	cupcake, cake, _ := seedProducts(t, db)
	reader := catalog.NewStore(db)
	store := cart.NewDBStore(db, reader)

	_, err := store.Add("alice", cupcake.ID, 2)
	require.NoError(t, err)
	_, err = store.Add("alice", cake.ID, 1)
	require.NoError(t, err)

	// Delete a product out from under the cart.
	require.NoError(t, db.Delete(&models.Product{}, cake.ID).Error)

	lines, err := store.Lines("alice")
	require.NoError(t, err)
	require.Len(t, lines, 2)

	resolved, err := cart.Resolve(reader, lines)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, cupcake.ID, resolved[0].Product.ID)
	assert.Equal(t, 2, resolved[0].Quantity)
}
