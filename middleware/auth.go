package middleware

import (
	"net/http"
	"strings"

	"github.com/Madhav-Gupta-28/storefront-backend-go/utils"
	"github.com/labstack/echo/v4"
)

const (
	ContextUserID = "userId"
	ContextRole   = "role"
)

// StaffAuth accepts requests carrying a valid bearer token whose role is one
// of the allowed staff roles.
func StaffAuth(secret string, roles []string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			claims, err := utils.ValidateJWT(secret, tokenParts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}
			if !allowed[claims.Role] {
				return echo.NewHTTPError(http.StatusForbidden, "Access denied: staff only")
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextRole, claims.Role)
			return next(c)
		}
	}
}
