package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"docvault/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"docvault/internal/auth"
	"docvault/internal/cache"
	"docvault/internal/config"
	"docvault/internal/db"
	apperrors "docvault/internal/errors"
	"docvault/internal/handler"
	"docvault/internal/ingestion"
	"docvault/internal/model"
	"docvault/internal/repository"
	"docvault/internal/router"
	"docvault/internal/service"
	"docvault/internal/storage"
)

const ingestionDelay = 5 * time.Second

// @title Document Management API
// @version 1.0
// @description Multi-tenant document management with role-based access and asynchronous ingestion.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name access_token
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Document{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Document{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	fileStore, err := storage.NewFileStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("file store init: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	documentRepo := repository.NewDocumentRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo, cacheClient)
	ingestionClient := ingestion.NewClient(cfg.IngestionURL, cfg.InternalSecret)
	documentService := service.NewDocumentService(documentRepo, fileStore, ingestionClient, cacheClient)
	ingestionService := service.NewIngestionService(cacheClient, documentService, ingestionDelay)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, cfg.InternalSecret)
	documentHandler := handler.NewDocumentHandler(documentService)
	ingestionHandler := handler.NewIngestionHandler(ingestionService)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		authHandler,
		userHandler,
		documentHandler,
		ingestionHandler,
	)

	// Bootstrap the default admin user
	if err := bootstrapAdmin(authService, cfg); err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

func bootstrapAdmin(authService service.AuthService, cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := authService.Register(ctx, cfg.AdminEmail, cfg.AdminPassword, "Admin", "User", model.RoleAdmin)
	if err == apperrors.ErrUserAlreadyExists {
		log.Println("Admin user already exists")
		return nil
	}
	if err != nil {
		return err
	}
	log.Println("Admin user created successfully")
	return nil
}
