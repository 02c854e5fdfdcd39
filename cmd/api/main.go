package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go-catalog-api/internal/handler"
	"go-catalog-api/internal/media"
	"go-catalog-api/internal/middleware"
	"go-catalog-api/internal/model"
	"go-catalog-api/internal/repository"
	"go-catalog-api/internal/service"
	"go-catalog-api/internal/ws"
	"go-catalog-api/pkg/database"
	"go-catalog-api/pkg/validator"

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

	// Forbidden-word list is configurable; defaults match the stock set
	if words := os.Getenv("FORBIDDEN_WORDS"); words != "" {
		validator.SetForbiddenWords(strings.Split(words, ","))
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.Category{}, &model.Product{}, &model.Version{}, &model.VersionCategory{},
		&model.Material{}, &model.Contact{},
		&model.User{}, &model.Capability{}, &model.Role{},
	)

	// 3. Seed default capabilities, roles, and admin user
	seedCapabilitiesRolesAndAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Setup media storage
	mediaStorage, err := media.NewMinioStorage(media.ConfigFromEnv())
	if err != nil {
		log.Fatal("Failed to connect to media storage: ", err)
	}

	// 6. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	materialRepo := repository.NewMaterialRepo(db)
	contactRepo := repository.NewContactRepo(db)
	userRepo := repository.NewUserRepo(db)
	capabilityRepo := repository.NewCapabilityRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	catalogService := service.NewCatalogService(productRepo, categoryRepo, db, wsHub)
	categoryService := service.NewCategoryService(categoryRepo, db, wsHub)
	materialService := service.NewMaterialService(materialRepo, wsHub)
	contactService := service.NewContactService(contactRepo)
	statsService := service.NewStatsService(productRepo, categoryRepo, materialRepo)
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, capabilityRepo, roleRepo)

	catalogHandler := handler.NewCatalogHandler(catalogService, mediaStorage)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	materialHandler := handler.NewMaterialHandler(materialService)
	contactHandler := handler.NewContactHandler(contactService)
	statsHandler := handler.NewStatsHandler(statsService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleRepo)

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Catalog API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 8. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/password-reset", authHandler.RequestPasswordReset)
	auth.Post("/password-reset/confirm", authHandler.ConfirmPasswordReset)

	// Public catalog reads
	api.Get("/products", catalogHandler.GetProducts)
	api.Get("/products/:id", catalogHandler.GetProduct)
	api.Get("/categories", categoryHandler.GetCategories)
	api.Get("/categories/:id", categoryHandler.GetCategory)
	api.Get("/materials", materialHandler.GetMaterials)
	api.Get("/materials/:slug", materialHandler.GetMaterial)

	// Contact form
	api.Post("/contacts", contactHandler.SubmitContact)

	// ============ PROTECTED ROUTES ============
	// All routes below require authentication
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Session & profile
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Post("/auth/change-password", authHandler.ChangePassword)
	protected.Get("/auth/profile", authHandler.GetProfile)
	protected.Put("/auth/profile", authHandler.UpdateProfile)

	// Product Routes (ownership/moderation checked in the service layer)
	protected.Post("/products", catalogHandler.CreateProduct)
	protected.Put("/products/:id", catalogHandler.UpdateProduct)
	protected.Delete("/products/:id", catalogHandler.DeleteProduct)
	protected.Post("/products/:id/toggle-active", catalogHandler.ToggleActive)
	protected.Post("/products/:id/toggle-publish", catalogHandler.TogglePublished)
	protected.Post("/products/:id/image", catalogHandler.UploadProductImage)

	// Category Routes
	protected.Post("/categories", categoryHandler.CreateCategory)
	protected.Put("/categories/:id", categoryHandler.UpdateCategory)
	protected.Delete("/categories/:id", categoryHandler.DeleteCategory)

	// Material Routes
	protected.Post("/materials", materialHandler.CreateMaterial)
	protected.Put("/materials/:slug", materialHandler.UpdateMaterial)
	protected.Delete("/materials/:slug", materialHandler.DeleteMaterial)
	protected.Post("/materials/:slug/toggle-publish", materialHandler.TogglePublished)

	// Catalog stats
	protected.Get("/catalog/stats", statsHandler.GetCatalogStats)

	// Contact submissions (capability gated)
	protected.Get("/contacts", middleware.RequireCapability("contact:view"), contactHandler.GetContacts)

	// User Management Routes (with capability checks)
	protected.Get("/users", userHandler.GetUsers)
	protected.Get("/users/:id", userHandler.GetUser)
	protected.Post("/users", middleware.RequireCapability("user:create"), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequireCapability("user:update"), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequireCapability("user:delete"), userHandler.DeleteUser)
	protected.Put("/users/:id/capabilities", middleware.RequireCapability("user:update_capability"), userHandler.UpdateUserCapabilities)

	// Role Routes
	protected.Get("/roles", roleHandler.GetRoles)

	// Capabilities Route (list all available capabilities)
	protected.Get("/capabilities", func(c *fiber.Ctx) error {
		capabilities, err := capabilityRepo.FindAll()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch capabilities"})
		}
		return c.JSON(capabilities)
	})

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

	// 9. Graceful Shutdown
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

// seedCapabilitiesRolesAndAdmin creates default capabilities, roles, and admin user if they don't exist
func seedCapabilitiesRolesAndAdmin(db *gorm.DB) {
	capabilityRepo := repository.NewCapabilityRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	// 1. Seed capabilities first
	if err := capabilityRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed capabilities: %v", err)
	}

	// 2. Seed roles
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	// 3. Assign capabilities to roles
	allCapabilities, _ := capabilityRepo.FindAll()

	// ADMIN gets ALL capabilities
	adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
	if err == nil && len(adminRole.Capabilities) == 0 {
		db.Model(&adminRole).Association("Capabilities").Replace(allCapabilities)
		log.Println("ADMIN role assigned all capabilities")
	}

	// MODERATOR gets the three product moderation capabilities
	moderatorRole, err := roleRepo.FindByCode(model.RoleModerator)
	if err == nil && len(moderatorRole.Capabilities) == 0 {
		moderationCapabilities := []model.Capability{}
		for _, c := range allCapabilities {
			for _, code := range model.ModerationCapabilities {
				if c.Code == code {
					moderationCapabilities = append(moderationCapabilities, c)
				}
			}
		}
		db.Model(&moderatorRole).Association("Capabilities").Replace(moderationCapabilities)
		log.Println("MODERATOR role assigned product moderation capabilities")
	}

	// 4. Create default admin user with ADMIN role
	_, err = userRepo.FindByEmail("admin@example.com")
	if err != nil {
		adminRole, _ := roleRepo.FindByCode(model.RoleAdmin)

		admin := &model.User{
			Email:        "admin@example.com",
			FullName:     "Administrator",
			RoleID:       &adminRole.ID,
			IsActive:     true,
			Capabilities: adminRole.Capabilities,
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}

		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Println("Admin user created: admin@example.com / admin123 (ADMIN)")
		}
	}
}
