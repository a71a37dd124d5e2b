package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// RequireAdmin guards menu management routes: it expects a Bearer token
// signed with the shared secret and an admin role claim. The customer-facing
// API stays open; only this group is gated.
func RequireAdmin(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := claimsFromRequest(c, secret)
			if err != nil {
				return err
			}

			role, _ := claims["role"].(string)
			if role != "admin" {
				return echo.NewHTTPError(http.StatusForbidden, "admin role required")
			}

			if sub, ok := claims["sub"].(float64); ok {
				c.Set("user_id", uint(sub))
			}
			c.Set("role", role)
			return next(c)
		}
	}
}

func claimsFromRequest(c echo.Context, secret []byte) (jwt.MapClaims, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || tokenString == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	return claims, nil
}
