package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"tienda-backend/controllers"
	"tienda-backend/database"
	"tienda-backend/middleware"
	"tienda-backend/providers"
	"tienda-backend/repository"
	"tienda-backend/routes"
	servicepkg "tienda-backend/services"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	db, err := database.Connect(cfg.DatabaseConfig())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db) //nolint:errcheck

	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate schema", zap.Error(err))
	}

	// Redis is optional; without it product reads just skip the cache.
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warn("Redis unavailable, product cache disabled", zap.Error(err))
			redisClient = nil
		}
	}

	jwtSecret := []byte(cfg.JWTSecret)

	// Provider and DI chain
	rateProvider := providers.NewCorreoProvider(cfg.RapidAPIHost, cfg.RapidAPIKey)

	userRepo := repository.NewGormUserRepository(db)
	productRepo := repository.NewGormProductRepository(db)
	sizeRepo := repository.NewGormProductSizeRepository(db)
	categoryRepo := repository.NewGormCategoryRepository(db)
	cartRepo := repository.NewGormCartRepository(db)
	orderRepo := repository.NewGormOrderRepository(db)
	paymentRepo := repository.NewGormPaymentRepository(db)
	shippingRepo := repository.NewGormShippingRepository(db)
	addressRepo := repository.NewGormAddressRepository(db)

	authService := servicepkg.NewAuthService(userRepo, jwtSecret, logger)
	catalogService := servicepkg.NewCatalogService(productRepo, sizeRepo, categoryRepo, logger)
	cartService := servicepkg.NewCartService(cartRepo, sizeRepo, logger)
	orderService := servicepkg.NewOrderService(orderRepo, sizeRepo, shippingRepo, addressRepo, rateProvider, cfg.Origin(), logger)
	paymentService := servicepkg.NewPaymentService(paymentRepo, orderRepo, logger)
	shippingService := servicepkg.NewShippingService(shippingRepo, logger)
	addressService := servicepkg.NewAddressService(addressRepo, logger)

	cache := controllers.NewCacheManager(redisClient, logger)
	authorizer := middleware.RoleAuthorizer{}

	ctrl := routes.Controllers{
		Users:      controllers.NewUserController(authService, authorizer),
		Products:   controllers.NewProductController(catalogService, cache),
		Sizes:      controllers.NewProductSizeController(catalogService, cache),
		Categories: controllers.NewCategoryController(catalogService),
		Carts:      controllers.NewCartController(cartService),
		CartItems:  controllers.NewCartItemController(cartService, cartRepo.OwnerID, authorizer),
		Orders:     controllers.NewOrderController(orderService, authorizer),
		OrderItems: controllers.NewOrderItemController(orderService),
		Payments:   controllers.NewPaymentController(paymentService),
		Shippings:  controllers.NewShippingController(shippingService),
		Addresses:  controllers.NewAddressController(addressService, authorizer),
	}
	resolvers := routes.NewResolvers(cartRepo, orderRepo, addressRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RateLimit())
	r.Use(middleware.RequestTimeout(30 * time.Second))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	routes.RegisterRoutes(r, ctrl, resolvers, jwtSecret)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	logger.Info("API started", zap.String("port", cfg.Port))
	<-quit
	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited cleanly")
}
