package routes

import (
	"github.com/familia-davanzo/assados-backend/domain"
	"github.com/familia-davanzo/assados-backend/internal/api/handlers"
	"github.com/familia-davanzo/assados-backend/internal/middleware"
	"github.com/familia-davanzo/assados-backend/pkg/jwt"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App              *fiber.App
	UserHandler      handlers.UserHandler
	ProductHandler   handlers.ProductHandler
	OrderHandler     handlers.OrderHandler
	InventoryHandler handlers.InventoryHandler
	Middleware       middleware.Middleware
	JWTService       jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Public()
	c.User()
	c.Admin()
	c.Driver()
}

// Public routes serve the customer storefront: browse the menu, place an
// order, fetch the PIX code for it. No authentication, customers have no
// accounts.
func (c *Config) Public() {
	api := c.App.Group("/api/v1")
	{
		api.Get("/menu", c.ProductHandler.GetMenu)
		api.Post("/orders", c.OrderHandler.PlaceOrder)
		api.Get("/orders/:id/pix", c.OrderHandler.PixCode)
	}

	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Post("/forget", c.UserHandler.ForgotPassword)
		user.Post("/reset", c.UserHandler.ResetPassword)
	}
}

// Admin routes back the kitchen display and management panel.
func (c *Config) Admin() {
	admin := c.App.Group(
		"/api/v1/admin",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.OnlyRole(domain.RoleAdmin),
	)
	{
		admin.Get("/dashboard", c.OrderHandler.Dashboard)
		admin.Get("/orders", c.OrderHandler.GetOrders)
		admin.Get("/orders/kitchen", c.OrderHandler.KitchenQueue)
		admin.Get("/orders/history", c.OrderHandler.History)
		admin.Patch("/orders/:id/prepare", c.OrderHandler.StartPreparing)
		admin.Patch("/orders/:id/ready", c.OrderHandler.MarkReady)

		admin.Post("/products", c.ProductHandler.AddProduct)
		admin.Put("/products/:id", c.ProductHandler.UpdateProduct)
		admin.Delete("/products/:id", c.ProductHandler.DeleteProduct)
		admin.Post("/products/image", c.ProductHandler.UploadProductImage)

		admin.Get("/inventory", c.InventoryHandler.GetInventory)
		admin.Post("/inventory/entries", c.InventoryHandler.RegisterEntry)
	}
}

// Driver routes serve the delivery app: see what is ready, claim a
// delivery, confirm the drop-off.
func (c *Config) Driver() {
	driver := c.App.Group(
		"/api/v1/driver",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.OnlyRole(domain.RoleDriver),
	)
	{
		driver.Get("/pickup", c.OrderHandler.ReadyForPickup)
		driver.Get("/deliveries", c.OrderHandler.MyDeliveries)
		driver.Patch("/orders/:id/claim", c.OrderHandler.ClaimDelivery)
		driver.Patch("/orders/:id/deliver", c.OrderHandler.ConfirmDelivery)
	}
}
