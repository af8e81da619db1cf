package main

import (
	"log"
	"net/http"
	"os"

	_ "moneta/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"moneta/internal/auth"
	"moneta/internal/cache"
	"moneta/internal/config"
	"moneta/internal/db"
	"moneta/internal/handler"
	"moneta/internal/mailer"
	"moneta/internal/model"
	"moneta/internal/repository"
	"moneta/internal/router"
	"moneta/internal/service"
)

// @title Moneta Banking API
// @version 1.0
// @description Banking API with accounts, transfers, loans, and role-based administration.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

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
			&model.Transaction{},
			&model.Appeal{},
			&model.Loan{},
			&model.Account{},
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
		&model.Account{},
		&model.Transaction{},
		&model.Loan{},
		&model.Appeal{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	accountRepo := repository.NewAccountRepository(gormDB)
	transactionRepo := repository.NewTransactionRepository(gormDB)
	loanRepo := repository.NewLoanRepository(gormDB)
	appealRepo := repository.NewAppealRepository(gormDB)
	uow := repository.NewUnitOfWork(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Mailer is nil-safe; notifications are skipped when SMTP is not configured
	mail := mailer.New(cfg)

	// Initialize services
	authService := service.NewAuthService(uow, userRepo, appealRepo, jwtService, tokenStore)
	accountService := service.NewAccountService(accountRepo, userRepo, cacheClient)
	ledgerService := service.NewLedgerService(uow, accountRepo, transactionRepo, cacheClient)
	loanService := service.NewLoanService(uow, loanRepo, userRepo, cacheClient, mail)
	adminService := service.NewAdminService(uow, userRepo, appealRepo, mail)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	accountHandler := handler.NewAccountHandler(accountService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	loanHandler := handler.NewLoanHandler(loanService)
	adminHandler := handler.NewAdminHandler(adminService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		accountHandler,
		ledgerHandler,
		loanHandler,
		adminHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
