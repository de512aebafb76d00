package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"userhub/internal/config"
	"userhub/internal/db"
	"userhub/internal/gravatar"
	"userhub/internal/model"
	"userhub/internal/repository"
)

// seedUser is a demo account created for local development.
type seedUser struct {
	Email        string
	Password     string
	Subscription string
}

var seedUsers = []seedUser{
	{Email: "starter@example.com", Password: "password123", Subscription: model.SubscriptionStarter},
	{Email: "pro@example.com", Password: "password123", Subscription: model.SubscriptionPro},
	{Email: "business@example.com", Password: "password123", Subscription: model.SubscriptionBusiness},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	created, skipped := 0, 0
	for _, seed := range seedUsers {
		_, err := userRepo.FindByEmail(ctx, seed.Email)
		if err == nil {
			skipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to check user %s: %v", seed.Email, err)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", seed.Email, err)
		}

		user := &model.User{
			Email:        seed.Email,
			PasswordHash: string(hashed),
			Subscription: seed.Subscription,
			AvatarURL:    gravatar.URL(seed.Email),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", seed.Email, err)
		}
		created++
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users created: %d", created)
	log.Printf("  - Existing users skipped: %d", skipped)
}
