package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"workshop-backend/internal/auth"
	"workshop-backend/internal/cache"
	"workshop-backend/internal/config"
	"workshop-backend/internal/database"
	"workshop-backend/internal/db"
	"workshop-backend/internal/handlers"
	"workshop-backend/internal/health"
	apihttp "workshop-backend/internal/http"
	"workshop-backend/internal/middleware"
	"workshop-backend/internal/repositories"
	"workshop-backend/internal/services"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	migrator := database.NewMigrator(pool)
	if err := migrator.RunMigrations(context.Background()); err != nil {
		log.Fatalf("[Migrator] %v", err)
	}

	if err := cache.Init(cfg); err != nil {
		log.Printf("[Cache] Redis unavailable, running without cache: %v", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	vehicleRepo := repositories.NewVehicleRepository(pool)
	categoryRepo := repositories.NewCategoryRepository(pool)
	serviceRepo := repositories.NewServiceRepository(pool)
	itemRepo := repositories.NewInventoryItemRepository(pool)
	movementRepo := repositories.NewStockMovementRepository(pool)
	jobCardRepo := repositories.NewJobCardRepository(pool)
	invoiceRepo := repositories.NewInvoiceRepository(pool, jobCardRepo)
	saleRepo := repositories.NewPosSaleRepository(pool)
	usageRepo := repositories.NewDailyUsageRepository(pool)
	settingRepo := repositories.NewSettingRepository(pool)

	// Services
	jwtManager := auth.NewJWTManager(cfg)
	authService := services.NewAuthService(userRepo, jwtManager)
	userService := services.NewUserService(userRepo)
	customerService := services.NewCustomerService(customerRepo, vehicleRepo, jobCardRepo)
	vehicleService := services.NewVehicleService(vehicleRepo, customerRepo, jobCardRepo)
	catalogService := services.NewCatalogService(categoryRepo, serviceRepo)
	inventoryService := services.NewInventoryService(itemRepo, movementRepo, categoryRepo)
	jobCardService := services.NewJobCardService(jobCardRepo, customerRepo, vehicleRepo, serviceRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo, settingRepo)
	posService := services.NewPosService(saleRepo, settingRepo)
	usageService := services.NewDailyUsageService(usageRepo)
	settingService := services.NewSettingService(settingRepo)
	reportService := services.NewReportService(pool, settingRepo, jobCardRepo, saleRepo)

	healthChecker := health.NewHealthChecker(pool)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)

	router := apihttp.NewRouter(cfg, apihttp.Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		User:       handlers.NewUserHandler(userService),
		Customer:   handlers.NewCustomerHandler(customerService),
		Vehicle:    handlers.NewVehicleHandler(vehicleService),
		Catalog:    handlers.NewCatalogHandler(catalogService),
		Inventory:  handlers.NewInventoryHandler(inventoryService),
		JobCard:    handlers.NewJobCardHandler(jobCardService),
		Invoice:    handlers.NewInvoiceHandler(invoiceService),
		Pos:        handlers.NewPosHandler(posService),
		DailyUsage: handlers.NewDailyUsageHandler(usageService),
		Setting:    handlers.NewSettingHandler(settingService),
		Report:     handlers.NewReportHandler(reportService),
		Health:     handlers.NewHealthHandler(healthChecker),
	}, authMiddleware)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("[Server] Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[Server] %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("[Server] Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[Server] Shutdown error: %v", err)
	}
	if client := cache.GetClient(); client != nil {
		client.Close()
	}
}
