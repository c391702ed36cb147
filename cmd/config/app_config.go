package config

import (
	"os"
	"time"

	"github.com/familia-davanzo/assados-backend/internal/api/handlers"
	"github.com/familia-davanzo/assados-backend/internal/api/routes"
	"github.com/familia-davanzo/assados-backend/internal/middleware"
	"github.com/familia-davanzo/assados-backend/internal/utils"
	"github.com/familia-davanzo/assados-backend/internal/utils/storage"
	"github.com/familia-davanzo/assados-backend/pkg/inventory"
	"github.com/familia-davanzo/assados-backend/pkg/jwt"
	"github.com/familia-davanzo/assados-backend/pkg/order"
	"github.com/familia-davanzo/assados-backend/pkg/product"
	"github.com/familia-davanzo/assados-backend/pkg/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "America/Sao_Paulo",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	merchant := order.MerchantConfig{
		PixKey: utils.GetConfig("PIX_KEY"),
		Name:   utils.GetConfig("PIX_MERCHANT_NAME"),
		City:   utils.GetConfig("PIX_MERCHANT_CITY"),
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	productRepository := product.NewProductRepository(db)
	orderRepository := order.NewOrderRepository(db)
	inventoryRepository := inventory.NewInventoryRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	inventoryService := inventory.NewInventoryService(inventoryRepository)
	productService := product.NewProductService(productRepository, inventoryService, s3)
	orderService := order.NewOrderService(orderRepository, productService, merchant)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	productHandler := handlers.NewProductHandler(productService, validator)
	orderHandler := handlers.NewOrderHandler(orderService, validator)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, validator)

	// routes
	routesConfig := routes.Config{
		App:              app,
		UserHandler:      userHandler,
		ProductHandler:   productHandler,
		OrderHandler:     orderHandler,
		InventoryHandler: inventoryHandler,
		Middleware:       middlewares,
		JWTService:       jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
