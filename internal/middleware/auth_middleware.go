package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"kiraya_backend/internal/model"
	"kiraya_backend/pkg/utils/jwt"
)

// AuthMiddleware validates the bearer token (Authorization header or jwt
// cookie) and stores the claims in c.Locals("user").
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := ""

		authHeader := c.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else if cookie := c.Cookies("jwt"); cookie != "" {
			tokenString = cookie
		}

		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "fail",
				"message": "You are not logged in. Please log in to get access",
			})
		}

		claims, err := jwt.ValidateToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "fail",
				"message": "Invalid or expired token. Please log in again",
			})
		}

		c.Locals("user", claims)
		return c.Next()
	}
}

// RestrictTo limits a route to the given roles. Must run after
// AuthMiddleware.
func RestrictTo(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*jwt.Claims)

		for _, role := range roles {
			if claims.Role == role {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You do not have permission to perform this action",
		})
	}
}
