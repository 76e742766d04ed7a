package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Iwamergun/dentalmarket-backend/internal/app/model"
	"github.com/Iwamergun/dentalmarket-backend/internal/app/repository"
	"github.com/Iwamergun/dentalmarket-backend/internal/app/service"
	"github.com/Iwamergun/dentalmarket-backend/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartControllerTest(t *testing.T) (*CartController, *gin.Engine, *gorm.DB, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	variantRepo := repository.NewProductVariantRepository(testDB)
	cartService := service.NewCartService(cartRepo, productRepo, variantRepo)
	cartController := NewCartController(cartService)

	user := &model.User{
		Email:        "klinik@example.com",
		PasswordHash: "hash",
		Name:         "Test Klinik",
		CompanyName:  "Test Dental Klinik",
		Role:         model.RoleDealer,
	}
	testDB.Create(user)

	category := &model.Category{
		Name:     "El Aletleri",
		Slug:     "el-aletleri",
		IsActive: true,
	}
	testDB.Create(category)

	product := &model.Product{
		Name:          "Periodontal Sond",
		Slug:          "periodontal-sond",
		SKU:           "PS-001",
		Price:         450,
		StockQuantity: 10,
		CategoryID:    category.ID,
		IsActive:      true,
	}
	testDB.Create(product)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return cartController, router, testDB, user, product
}

// Helper to inject the authenticated user the way the auth middleware does
func setUserIDInContext(c *gin.Context, userID uint) {
	c.Set("user_id", userID)
}

func TestCartController_GetCart_Success(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  2,
		UnitPrice: product.Price,
	})

	router.GET("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.GetCart(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, float64(2), response["item_count"])
	assert.Equal(t, float64(900), response["total"]) // 450 * 2
}

func TestCartController_GetCart_Empty(t *testing.T) {
	controller, router, _, user, _ := setupCartControllerTest(t)

	router.GET("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.GetCart(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, float64(0), response["item_count"])
	assert.Equal(t, float64(0), response["total"])
}

func TestCartController_GetCart_Unauthorized(t *testing.T) {
	controller, router, _, _, _ := setupCartControllerTest(t)

	router.GET("/cart", controller.GetCart)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "Giriş yapmanız gerekiyor", response["error"])
}

func TestCartController_GetCartCount(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  3,
		UnitPrice: product.Price,
	})

	router.GET("/cart/count", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.GetCartCount(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/cart/count", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, float64(3), response["item_count"])
}

func TestCartController_AddToCart_Success(t *testing.T) {
	controller, router, _, user, product := setupCartControllerTest(t)

	router.POST("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToCart(c)
	})

	reqBody := AddToCartRequest{
		ProductID: product.ID,
		Quantity:  2,
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "Ürün sepete eklendi", response["message"])
}

func TestCartController_AddToCart_Unauthorized(t *testing.T) {
	controller, router, _, _, product := setupCartControllerTest(t)

	router.POST("/cart", controller.AddToCart)

	reqBody := AddToCartRequest{
		ProductID: product.ID,
		Quantity:  2,
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCartController_AddToCart_ProductNotFound(t *testing.T) {
	controller, router, _, user, _ := setupCartControllerTest(t)

	router.POST("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToCart(c)
	})

	reqBody := AddToCartRequest{
		ProductID: 9999,
		Quantity:  2,
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "Ürün bulunamadı", response["error"])
}

func TestCartController_AddToCart_InsufficientStock(t *testing.T) {
	controller, router, _, user, product := setupCartControllerTest(t)

	router.POST("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToCart(c)
	})

	reqBody := AddToCartRequest{
		ProductID: product.ID,
		Quantity:  100, // Exceeds stock
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "Yetersiz stok", response["error"])
}

func TestCartController_AddToCart_InvalidRequest(t *testing.T) {
	controller, router, _, user, _ := setupCartControllerTest(t)

	router.POST("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToCart(c)
	})

	tests := []struct {
		name    string
		reqBody map[string]interface{}
	}{
		{
			name:    "Missing product_id",
			reqBody: map[string]interface{}{"quantity": 2},
		},
		{
			name:    "Missing quantity",
			reqBody: map[string]interface{}{"product_id": 1},
		},
		{
			name:    "Zero quantity",
			reqBody: map[string]interface{}{"product_id": 1, "quantity": 0},
		},
		{
			name:    "Negative quantity",
			reqBody: map[string]interface{}{"product_id": 1, "quantity": -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonBody, _ := json.Marshal(tt.reqBody)
			req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewBuffer(jsonBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var response map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &response)
			require.NoError(t, err)

			assert.Equal(t, "Geçersiz istek", response["error"])
		})
	}
}

func TestCartController_UpdateCartItem_Success(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartItem := &model.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  2,
		UnitPrice: product.Price,
	}
	cartRepo.Create(cartItem)

	router.PUT("/cart/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.UpdateCartItem(c)
	})

	reqBody := UpdateCartRequest{
		Quantity: 5,
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPut, "/cart/1", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "Sepet güncellendi", response["message"])
}

func TestCartController_UpdateCartItem_NotFound(t *testing.T) {
	controller, router, _, user, _ := setupCartControllerTest(t)

	router.PUT("/cart/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.UpdateCartItem(c)
	})

	reqBody := UpdateCartRequest{
		Quantity: 5,
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPut, "/cart/9999", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "Sepet satırı bulunamadı", response["error"])
}

func TestCartController_UpdateCartItem_InvalidID(t *testing.T) {
	controller, router, _, user, _ := setupCartControllerTest(t)

	router.PUT("/cart/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.UpdateCartItem(c)
	})

	reqBody := UpdateCartRequest{
		Quantity: 5,
	}

	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPut, "/cart/invalid", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "Geçersiz sepet satırı", response["error"])
}

func TestCartController_RemoveFromCart_Success(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartItem := &model.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  2,
		UnitPrice: product.Price,
	}
	cartRepo.Create(cartItem)

	router.DELETE("/cart/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.RemoveFromCart(c)
	})

	req := httptest.NewRequest(http.MethodDelete, "/cart/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "Ürün sepetten çıkarıldı", response["message"])
}

func TestCartController_RemoveFromCart_NotFound(t *testing.T) {
	controller, router, _, user, _ := setupCartControllerTest(t)

	router.DELETE("/cart/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.RemoveFromCart(c)
	})

	req := httptest.NewRequest(http.MethodDelete, "/cart/9999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "Sepet satırı bulunamadı", response["error"])
}

func TestCartController_ClearCart_Success(t *testing.T) {
	controller, router, testDB, user, product := setupCartControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2, UnitPrice: product.Price})

	router.DELETE("/cart", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.ClearCart(c)
	})

	req := httptest.NewRequest(http.MethodDelete, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "Sepet temizlendi", response["message"])

	// Verify cart is empty
	items, _ := cartRepo.FindByUserID(user.ID)
	assert.Len(t, items, 0)
}
