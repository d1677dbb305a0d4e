package middleware

import (
	"github.com/gofiber/fiber/v2"

	"kiraya_backend/internal/model"
	"kiraya_backend/pkg/database"
	"kiraya_backend/pkg/utils/jwt"
)

// CheckPropertyOwnership guards listing mutation routes: the target listing
// must belong to the caller unless the caller is an admin.
func CheckPropertyOwnership() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*jwt.Claims)
		propertyID := c.Params("id")

		var property model.PropertyListing
		if err := database.DB.First(&property, propertyID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "fail",
				"message": "Property not found",
			})
		}

		if property.OwnerID != claims.UserID && claims.Role != model.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":  "fail",
				"message": "You don't have permission to access this property",
			})
		}

		return c.Next()
	}
}
