package controller

import (
	"github.com/gofiber/fiber/v2"

	"kiraya_backend/internal/service"
	"kiraya_backend/pkg/database"
	"kiraya_backend/pkg/utils/jwt"
)

// GetDashboardStats returns the owner's activity counters.
func GetDashboardStats(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	dashboard, err := service.GetOwnerDashboard(database.GetDB(), claims.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"dashboard": dashboard,
		},
	})
}
