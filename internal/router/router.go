package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"moneta/internal/auth"
	"moneta/internal/config"
	"moneta/internal/errors"
	"moneta/internal/handler"
	"moneta/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	accountHandler *handler.AccountHandler,
	ledgerHandler *handler.LedgerHandler,
	loanHandler *handler.LoanHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.POST("/auth/appeal", authHandler.FileAppeal)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	// Client routes
	client := secured.Group("", requireRole(model.RoleClient))
	client.POST("/accounts", accountHandler.CreateAccount)
	client.GET("/accounts", accountHandler.ListAccounts)
	client.GET("/accounts/:number/history", ledgerHandler.AccountHistory)
	client.POST("/transactions/deposit", ledgerHandler.Deposit)
	client.POST("/transactions/transfer", ledgerHandler.Transfer)
	client.GET("/transactions/history", ledgerHandler.History)
	client.POST("/loans", loanHandler.RequestLoan)
	client.GET("/loans", loanHandler.ListOwnLoans)
	client.POST("/loans/:id/repay", loanHandler.Repay)

	// Manager routes
	manager := secured.Group("", requireRole(model.RoleManager))
	manager.GET("/loans/pending", loanHandler.ListPending)
	manager.POST("/loans/:id/approve", loanHandler.Approve)
	manager.POST("/loans/:id/reject", loanHandler.Reject)

	// Admin routes
	admin := secured.Group("", requireRole(model.RoleAdmin))
	admin.GET("/admin/users", adminHandler.ListUsers)
	admin.POST("/admin/users/:username/block", adminHandler.SetBlockStatus)
	admin.GET("/admin/appeals", adminHandler.ListOpenAppeals)
	admin.POST("/admin/appeals/:id/resolve", adminHandler.ResolveAppeal)
}

// requireRole rejects authenticated requests whose token role does not match.
func requireRole(role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok || claims.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
					Error: "insufficient role",
					Code:  "FORBIDDEN",
				})
			}
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
