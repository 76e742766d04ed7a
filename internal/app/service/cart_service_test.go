package service

import (
	"testing"

	"github.com/Iwamergun/dentalmarket-backend/internal/app/model"
	"github.com/Iwamergun/dentalmarket-backend/internal/app/repository"
	"github.com/Iwamergun/dentalmarket-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (CartService, *model.User, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	variantRepo := repository.NewProductVariantRepository(testDB)
	cartService := NewCartService(cartRepo, productRepo, variantRepo)

	user := &model.User{
		Email:        "klinik@example.com",
		PasswordHash: "hash",
		Name:         "Test Klinik",
		CompanyName:  "Test Dental Klinik",
		Role:         model.RoleDealer,
	}
	testDB.Create(user)

	category := &model.Category{
		Name:     "Dolgu Materyalleri",
		Slug:     "dolgu-materyalleri",
		IsActive: true,
	}
	testDB.Create(category)

	product := &model.Product{
		Name:          "Kompozit Dolgu Seti",
		Slug:          "kompozit-dolgu-seti",
		SKU:           "KDS-001",
		Price:         1500,
		StockQuantity: 10,
		CategoryID:    category.ID,
		IsActive:      true,
	}
	testDB.Create(product)

	return cartService, user, product, testDB
}

func TestCartService_GetUserCart_Empty(t *testing.T) {
	cartService, user, _, _ := setupCartServiceTest(t)

	summary, err := cartService.GetUserCart(user.ID)
	assert.NoError(t, err)
	assert.Len(t, summary.Items, 0)
	assert.Equal(t, 0, summary.ItemCount)
	assert.Equal(t, 0.0, summary.Total)
}

func TestCartService_AddToCart_Success(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	err := cartService.AddToCart(user.ID, product.ID, nil, 3)
	assert.NoError(t, err)

	summary, _ := cartService.GetUserCart(user.ID)
	assert.Len(t, summary.Items, 1)
	assert.Equal(t, 3, summary.Items[0].Quantity)
	assert.Equal(t, product.Price, summary.Items[0].UnitPrice)
}

func TestCartService_AddToCart_MergesSameLine(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	require.NoError(t, cartService.AddToCart(user.ID, product.ID, nil, 2))
	require.NoError(t, cartService.AddToCart(user.ID, product.ID, nil, 3))

	summary, err := cartService.GetUserCart(user.ID)
	assert.NoError(t, err)
	// Same product, same (nil) variant: one line with summed quantity
	assert.Len(t, summary.Items, 1)
	assert.Equal(t, 5, summary.Items[0].Quantity)
	assert.Equal(t, 5, summary.ItemCount)
}

func TestCartService_AddToCart_VariantGetsOwnLine(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t)

	variant := &model.ProductVariant{
		ProductID:       product.ID,
		Name:            "Renk",
		Value:           "A2",
		AdditionalPrice: 100,
		StockQuantity:   5,
	}
	testDB.Create(variant)

	require.NoError(t, cartService.AddToCart(user.ID, product.ID, nil, 1))
	require.NoError(t, cartService.AddToCart(user.ID, product.ID, &variant.ID, 2))

	summary, err := cartService.GetUserCart(user.ID)
	assert.NoError(t, err)
	assert.Len(t, summary.Items, 2)
	assert.Equal(t, 3, summary.ItemCount)

	// Variant line snapshots base price plus the variant surcharge
	for _, item := range summary.Items {
		if item.VariantID != nil {
			assert.Equal(t, product.Price+variant.AdditionalPrice, item.UnitPrice)
		}
	}
}

func TestCartService_AddToCart_PriceSnapshotSurvivesCatalogChange(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t)

	require.NoError(t, cartService.AddToCart(user.ID, product.ID, nil, 2))

	// Catalog price changes after the line was created
	testDB.Model(product).Update("price", 9999.0)

	summary, err := cartService.GetUserCart(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1500.0, summary.Items[0].UnitPrice)
	assert.Equal(t, 3000.0, summary.Total)
}

func TestCartService_AddToCart_ProductNotFound(t *testing.T) {
	cartService, user, _, _ := setupCartServiceTest(t)

	err := cartService.AddToCart(user.ID, 9999, nil, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_AddToCart_InactiveProduct(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t)

	testDB.Model(product).Update("is_active", false)

	err := cartService.AddToCart(user.ID, product.ID, nil, 1)
	assert.ErrorIs(t, err, ErrProductInactive)
}

func TestCartService_AddToCart_InvalidVariant(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t)

	otherCategory := &model.Category{Name: "Diğer", Slug: "diger", IsActive: true}
	testDB.Create(otherCategory)
	otherProduct := &model.Product{
		Name:          "Başka Ürün",
		Slug:          "baska-urun",
		SKU:           "BU-001",
		Price:         200,
		StockQuantity: 10,
		CategoryID:    otherCategory.ID,
		IsActive:      true,
	}
	testDB.Create(otherProduct)

	variant := &model.ProductVariant{
		ProductID:     otherProduct.ID,
		Name:          "Boy",
		Value:         "L",
		StockQuantity: 5,
	}
	testDB.Create(variant)

	// Variant belongs to a different product
	err := cartService.AddToCart(user.ID, product.ID, &variant.ID, 1)
	assert.ErrorIs(t, err, ErrInvalidVariant)
}

func TestCartService_AddToCart_InsufficientStock(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	err := cartService.AddToCart(user.ID, product.ID, nil, 100)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestCartService_AddToCart_MergedQuantityChecksStock(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	require.NoError(t, cartService.AddToCart(user.ID, product.ID, nil, 7))

	// 7 + 5 exceeds the stock of 10; the existing line must stay untouched
	err := cartService.AddToCart(user.ID, product.ID, nil, 5)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	summary, _ := cartService.GetUserCart(user.ID)
	assert.Equal(t, 7, summary.ItemCount)
}

func TestCartService_ItemCount_SumsQuantities(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t)

	variant := &model.ProductVariant{
		ProductID:     product.ID,
		Name:          "Renk",
		Value:         "A3",
		StockQuantity: 10,
	}
	testDB.Create(variant)

	require.NoError(t, cartService.AddToCart(user.ID, product.ID, nil, 2))
	require.NoError(t, cartService.AddToCart(user.ID, product.ID, &variant.ID, 4))

	// Badge count is the quantity sum, not the line count
	count, err := cartService.ItemCount(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, 6, count)
}

func TestCartService_UpdateCartItem_ChangesQuantity(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	require.NoError(t, cartService.AddToCart(user.ID, product.ID, nil, 2))
	summary, _ := cartService.GetUserCart(user.ID)
	itemID := summary.Items[0].ID

	err := cartService.UpdateCartItem(user.ID, itemID, 5)
	assert.NoError(t, err)

	summary, _ = cartService.GetUserCart(user.ID)
	assert.Equal(t, 5, summary.Items[0].Quantity)
}

func TestCartService_UpdateCartItem_ZeroRemovesLine(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	require.NoError(t, cartService.AddToCart(user.ID, product.ID, nil, 2))
	summary, _ := cartService.GetUserCart(user.ID)
	itemID := summary.Items[0].ID

	err := cartService.UpdateCartItem(user.ID, itemID, 0)
	assert.NoError(t, err)

	summary, _ = cartService.GetUserCart(user.ID)
	assert.Len(t, summary.Items, 0)
}

func TestCartService_UpdateCartItem_OtherUsersLineHidden(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t)

	require.NoError(t, cartService.AddToCart(user.ID, product.ID, nil, 2))
	summary, _ := cartService.GetUserCart(user.ID)
	itemID := summary.Items[0].ID

	other := &model.User{
		Email:        "diger@example.com",
		PasswordHash: "hash",
		Name:         "Diğer Klinik",
		Role:         model.RoleDealer,
	}
	testDB.Create(other)

	err := cartService.UpdateCartItem(other.ID, itemID, 5)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_RemoveFromCart(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	require.NoError(t, cartService.AddToCart(user.ID, product.ID, nil, 2))
	summary, _ := cartService.GetUserCart(user.ID)

	err := cartService.RemoveFromCart(user.ID, summary.Items[0].ID)
	assert.NoError(t, err)

	count, _ := cartService.ItemCount(user.ID)
	assert.Equal(t, 0, count)
}

func TestCartService_ClearCart(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t)

	variant := &model.ProductVariant{
		ProductID:     product.ID,
		Name:          "Renk",
		Value:         "B1",
		StockQuantity: 10,
	}
	testDB.Create(variant)

	require.NoError(t, cartService.AddToCart(user.ID, product.ID, nil, 2))
	require.NoError(t, cartService.AddToCart(user.ID, product.ID, &variant.ID, 1))

	err := cartService.ClearCart(user.ID)
	assert.NoError(t, err)

	summary, _ := cartService.GetUserCart(user.ID)
	assert.Len(t, summary.Items, 0)
	assert.Equal(t, 0, summary.ItemCount)
}
