package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-toko-api/internal/handler"
	"go-toko-api/internal/middleware"
	"go-toko-api/internal/model"
	"go-toko-api/internal/repository"
	"go-toko-api/internal/service"
	"go-toko-api/internal/ws"
	"go-toko-api/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	db.AutoMigrate(
		&model.User{},
		&model.Toko{},
		&model.UserToko{},
		&model.Product{},
		&model.Transaction{},
		&model.TransactionDetail{},
	)

	// 3. Seed the superadmin account
	seedSuperadmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	tokoRepo := repository.NewTokoRepo(db)
	productRepo := repository.NewProductRepo(db)
	txRepo := repository.NewTransactionRepo(db)

	authService := service.NewAuthService(userRepo)
	tokoService := service.NewTokoService(tokoRepo, userRepo, db)
	productService := service.NewProductService(productRepo)
	txService := service.NewTransactionService(txRepo, tokoRepo, db, wsHub)

	authHandler := handler.NewAuthHandler(authService)
	tokoHandler := handler.NewTokoHandler(tokoService)
	productHandler := handler.NewProductHandler(productService)
	txHandler := handler.NewTransactionHandler(txService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Toko Back Office v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	// All routes below require authentication
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Auth / user management
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/register", middleware.RequireRole(model.RoleSuperadmin, model.RoleAdmin), authHandler.Register)
	protected.Get("/auth/users", middleware.RequireRole(model.RoleSuperadmin), authHandler.ListUsers)
	protected.Put("/auth/users/:user_id", authHandler.UpdateUser)

	// Toko management
	protected.Get("/toko", middleware.RequireRole(model.RoleSuperadmin, model.RoleAdmin), tokoHandler.Index)
	protected.Post("/toko", middleware.RequireRole(model.RoleSuperadmin), tokoHandler.Store)
	protected.Get("/toko/:toko_id", tokoHandler.Show)
	protected.Put("/toko/:toko_id", middleware.RequireRole(model.RoleSuperadmin), tokoHandler.Update)
	protected.Delete("/toko/:toko_id", middleware.RequireRole(model.RoleSuperadmin), tokoHandler.Destroy)
	protected.Post("/toko/:toko_id/assign", middleware.RequireRole(model.RoleSuperadmin, model.RoleAdmin), tokoHandler.AssignUser)
	protected.Delete("/toko/:toko_id/users/:user_id", middleware.RequireRole(model.RoleSuperadmin, model.RoleAdmin), tokoHandler.RemoveUser)
	protected.Get("/toko/:toko_id/users", middleware.RequireRole(model.RoleSuperadmin, model.RoleAdmin), tokoHandler.ListUsers)
	protected.Get("/my-toko", tokoHandler.MyTokos)

	// Product catalog
	protected.Get("/products", productHandler.Index)
	protected.Get("/products/:product_id", productHandler.Show)
	protected.Post("/products", middleware.RequireRole(model.RoleSuperadmin, model.RoleAdmin), productHandler.Store)
	protected.Put("/products/:product_id", middleware.RequireRole(model.RoleSuperadmin, model.RoleAdmin), productHandler.Update)
	protected.Delete("/products/:product_id", middleware.RequireRole(model.RoleSuperadmin, model.RoleAdmin), productHandler.Destroy)

	// Transactions (summary before :transaksi_id so it doesn't get captured)
	protected.Post("/transactions", txHandler.Store)
	protected.Get("/transactions", txHandler.Index)
	protected.Get("/transactions/summary", txHandler.Summary)
	protected.Get("/transactions/:transaksi_id", txHandler.Show)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedSuperadmin creates the root superadmin account if it doesn't exist yet.
func seedSuperadmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	email := os.Getenv("SUPERADMIN_EMAIL")
	if email == "" {
		email = "superadmin@example.com"
	}

	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	password := os.Getenv("SUPERADMIN_PASSWORD")
	if password == "" {
		password = "superadmin123"
	}

	superadmin := &model.User{
		Email:    email,
		FullName: "Super Administrator",
		Role:     model.RoleSuperadmin,
	}
	superadmin.CreatedBy = "system"
	superadmin.UpdatedBy = "system"

	if err := superadmin.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash superadmin password: %v", err)
		return
	}

	if err := userRepo.Create(superadmin); err != nil {
		log.Printf("Warning: Failed to create superadmin user: %v", err)
	} else {
		log.Printf("✅ Superadmin user created: %s", email)
	}
}
