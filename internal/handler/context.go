package handler

import (
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"moneta/internal/auth"
)

// currentClaims extracts the authenticated user's claims set by the JWT
// middleware.
func currentClaims(c echo.Context) (*auth.Claims, bool) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, false
	}
	claims, ok := token.Claims.(*auth.Claims)
	return claims, ok
}
