package main

import (
	"context"
	"log"

	"docvault/internal/auth"
	"docvault/internal/config"
	"docvault/internal/db"
	apperrors "docvault/internal/errors"
	"docvault/internal/model"
	"docvault/internal/repository"
	"docvault/internal/service"
)

type seedUser struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      model.Role
}

var seedUsers = []seedUser{
	{Email: "editor@docvault.local", Password: "Editor@123", FirstName: "Eddie", LastName: "Editor", Role: model.RoleEditor},
	{Email: "viewer@docvault.local", Password: "Viewer@123", FirstName: "Vera", LastName: "Viewer", Role: model.RoleViewer},
}

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}, &model.Document{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	authService := service.NewAuthService(userRepo, auth.NewJWTService(cfg.JWTSecret))

	ctx := context.Background()
	created := 0
	for _, su := range seedUsers {
		_, err := authService.Register(ctx, su.Email, su.Password, su.FirstName, su.LastName, su.Role)
		if err == apperrors.ErrUserAlreadyExists {
			log.Printf("User %s already exists, skipping", su.Email)
			continue
		}
		if err != nil {
			log.Fatalf("Failed to seed user %s: %v", su.Email, err)
		}
		created++
	}

	log.Printf("Seed complete: %d users created", created)
}
