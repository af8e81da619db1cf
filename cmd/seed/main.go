package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"moneta/internal/cache"
	"moneta/internal/config"
	"moneta/internal/db"
	"moneta/internal/model"
	"moneta/internal/repository"
	"moneta/internal/service"
)

// seedUser describes one user created by the seed script.
type seedUser struct {
	Username string
	Password string
	Role     model.Role
	Name     string
	Email    string
}

var seedUsers = []seedUser{
	{Username: "admin1", Password: "admin1", Role: model.RoleAdmin, Name: "Administrator", Email: "admin@moneta.local"},
	{Username: "manager", Password: "manager", Role: model.RoleManager, Name: "Loan Manager", Email: "manager@moneta.local"},
	{Username: "client", Password: "client", Role: model.RoleClient, Name: "Demo Client", Email: "client@moneta.local"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Account{},
		&model.Transaction{},
		&model.Loan{},
		&model.Appeal{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	accountRepo := repository.NewAccountRepository(gormDB)
	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	accountService := service.NewAccountService(accountRepo, userRepo, cacheClient)

	ctx := context.Background()
	created := 0
	for _, su := range seedUsers {
		existing, err := userRepo.FindByUsername(ctx, su.Username)
		if err != nil && err != gorm.ErrRecordNotFound {
			log.Fatalf("Error checking user %s: %v", su.Username, err)
		}
		if existing != nil {
			log.Printf("User %s already exists, skipping", su.Username)
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", su.Username, err)
		}

		user := &model.User{
			Username:     su.Username,
			PasswordHash: string(hashed),
			Role:         su.Role,
			Name:         su.Name,
			Email:        su.Email,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", su.Username, err)
		}
		created++

		// Clients get an initial checking account with card details.
		if su.Role == model.RoleClient {
			account, err := accountService.CreateAccount(ctx, su.Username, "Checking")
			if err != nil {
				log.Fatalf("Failed to create account for %s: %v", su.Username, err)
			}
			log.Printf("Created account %s for %s", account.Number, su.Username)
		}
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users created: %d", created)
	log.Printf("  - Total users processed: %d", len(seedUsers))
}
