package router

import (
	"github.com/Iwamergun/dentalmarket-backend/config"
	"github.com/Iwamergun/dentalmarket-backend/internal/app/controller"
	"github.com/Iwamergun/dentalmarket-backend/internal/app/service"
	"github.com/Iwamergun/dentalmarket-backend/internal/middleware"
	"github.com/Iwamergun/dentalmarket-backend/internal/websocket"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController     *controller.AuthController
	productController  *controller.ProductController
	catalogController  *controller.CatalogController
	cartController     *controller.CartController
	favoriteController *controller.FavoriteController
	orderController    *controller.OrderController
	redirectController *controller.RedirectController
	uploadController   *controller.UploadController
	authMiddleware     *middleware.AuthMiddleware
	redirectService    service.RedirectService
	orderFeedHub       *websocket.Hub
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	catalogController *controller.CatalogController,
	cartController *controller.CartController,
	favoriteController *controller.FavoriteController,
	orderController *controller.OrderController,
	redirectController *controller.RedirectController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	redirectService service.RedirectService,
	orderFeedHub *websocket.Hub,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		productController:  productController,
		catalogController:  catalogController,
		cartController:     cartController,
		favoriteController: favoriteController,
		orderController:    orderController,
		redirectController: redirectController,
		uploadController:   uploadController,
		authMiddleware:     authMiddleware,
		redirectService:    redirectService,
		orderFeedHub:       orderFeedHub,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))
	// Redirect resolution runs before routing so legacy storefront URLs
	// get answered even when no route matches
	router.Use(middleware.RedirectMiddleware(r.redirectService))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "DentalMarket API is running",
		})
	})

	// Serve static files from uploads directory
	router.Static("/uploads", "./uploads")

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetProfile)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/popular", r.productController.GetPopularProducts)
			products.GET("/:slug", r.productController.GetProduct)

			products.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("supplier", "admin"),
				r.productController.CreateProduct,
			)
			products.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("supplier", "admin"),
				r.productController.UpdateProduct,
			)
			products.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.productController.DeleteProduct,
			)
			products.POST("/:id/variants",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("supplier", "admin"),
				r.productController.AddVariant,
			)
			products.DELETE("/:id/variants/:variant_id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("supplier", "admin"),
				r.productController.DeleteVariant,
			)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", r.catalogController.ListCategories)
			categories.GET("/:slug", r.catalogController.GetCategory)

			categories.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.catalogController.CreateCategory,
			)
			categories.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.catalogController.UpdateCategory,
			)
			categories.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.catalogController.DeleteCategory,
			)
		}

		brands := v1.Group("/brands")
		{
			brands.GET("", r.catalogController.ListBrands)

			brands.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.catalogController.CreateBrand,
			)
			brands.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.catalogController.UpdateBrand,
			)
			brands.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.catalogController.DeleteBrand,
			)
		}

		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.GET("/count", r.cartController.GetCartCount)
			cart.POST("", r.cartController.AddToCart)
			cart.PUT("/:id", r.cartController.UpdateCartItem)
			cart.DELETE("/:id", r.cartController.RemoveFromCart)
			cart.DELETE("", r.cartController.ClearCart)
		}

		// Favorites work for guests too: the optional middleware resolves
		// the scope, the controller falls back to the guest bucket
		favorites := v1.Group("/favorites")
		favorites.Use(r.authMiddleware.OptionalAuthenticate())
		{
			favorites.GET("", r.favoriteController.GetFavorites)
			favorites.GET("/count", r.favoriteController.GetFavoriteCount)
			favorites.GET("/:product_id", r.favoriteController.CheckFavorite)
			favorites.POST("/toggle", r.favoriteController.ToggleFavorite)
			favorites.POST("", r.favoriteController.AddFavorite)
			favorites.DELETE("/:product_id", r.favoriteController.RemoveFavorite)
			favorites.DELETE("", r.favoriteController.ClearFavorites)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.GET("", r.orderController.GetUserOrders)
			orders.GET("/:id", r.orderController.GetOrder)
			orders.POST("/checkout", r.orderController.Checkout)
		}

		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate())
		{
			adminOrders := admin.Group("/orders")
			adminOrders.Use(r.authMiddleware.RequireRole("supplier", "admin"))
			{
				adminOrders.GET("", r.orderController.ListOrders)
				adminOrders.PUT("/:id/status", r.orderController.UpdateOrderStatus)
			}

			redirects := admin.Group("/redirects")
			redirects.Use(r.authMiddleware.RequireRole("admin"))
			{
				redirects.GET("", r.redirectController.ListRules)
				redirects.GET("/:id", r.redirectController.GetRule)
				redirects.POST("", r.redirectController.CreateRule)
				redirects.PUT("/:id", r.redirectController.UpdateRule)
				redirects.DELETE("/:id", r.redirectController.DeleteRule)
			}

			admin.GET("/orders/feed",
				r.authMiddleware.RequireRole("supplier", "admin"),
				func(c *gin.Context) {
					userID, _ := middleware.GetUserID(c)
					websocket.ServeOrderFeed(r.orderFeedHub, c, userID)
				},
			)
		}

		upload := v1.Group("/upload")
		upload.Use(
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireRole("supplier", "admin"),
		)
		{
			upload.POST("/presigned-url", r.uploadController.GeneratePresignedURL)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
