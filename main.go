package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fundraising-room-system/handlers"
	"fundraising-room-system/middleware"
	"fundraising-room-system/models"
	"fundraising-room-system/services"
	"fundraising-room-system/utils"
	"fundraising-room-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024, // 1MB — JSON API only
	})

	// 🔐❗ GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	// Load allowed origins from environment variable
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-Service-Token, X-Wallet-Address",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Wallet identity from the Gateway; enforced on admin and mutating routes
	app.Use(middleware.WalletContextMiddleware())

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey, which the services map to stable conflict codes.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.GlobalConfig{},
		&models.TokenRegistry{},
		&models.ApprovedToken{},
		&models.Room{},
		&models.PlayerEntry{},
		&models.TokenAccount{},
		&models.LedgerTransfer{},
		&models.LedgerEvent{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	adminService := services.NewAdminService(db)
	roomService := services.NewRoomService(db)
	gameService := services.NewGameService(db)
	feeService := services.NewFeeService(db)
	eventService := services.NewEventService(db)
	charityService := services.NewCharityService()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Outbox dispatcher: delivers emitted events to the indexer webhook
	dispatchClient := workers.NewDispatchClient(db)
	go workers.PollOutbox(ctx, dispatchClient, 10*time.Second)

	roomService.StartExpirationReporter()

	// ✅ Setup routes — enforced Gateway auth everywhere, wallet identity on writes
	handlers.SetupAdminRoutes(app, adminService, eventService)
	handlers.SetupRoomRoutes(app, roomService, gameService)
	handlers.SetupQueryRoutes(app, roomService, adminService, eventService, feeService, charityService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Event outbox dispatcher running (every 10s)")
	log.Println("✅ Expiration reporter running (every 10m)")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
