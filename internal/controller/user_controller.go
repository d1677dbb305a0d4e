package controller

import (
	"github.com/gofiber/fiber/v2"

	"kiraya_backend/internal/service"
	"kiraya_backend/pkg/database"
	"kiraya_backend/pkg/utils/jwt"
	"kiraya_backend/pkg/utils/storage"
	"kiraya_backend/pkg/utils/validation"
)

// UpdateMe updates profile fields; an optional "photo" file in the
// multipart form replaces the avatar.
func UpdateMe(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(service.UpdateProfileInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid input",
		})
	}
	if err := validation.ValidateStruct(input); err != nil {
		return err
	}

	photoURL := ""
	if file, err := c.FormFile("photo"); err == nil {
		if err := validation.ValidateImage(file); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "fail",
				"message": err.Error(),
			})
		}

		photoURL, err = storage.UploadUserPhoto(c.Context(), file, claims.UserID)
		if err != nil {
			return err
		}
	}

	user, err := service.UpdateProfile(database.GetDB(), claims.UserID, *input, photoURL)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"user": user.GetContactProfile(),
		},
	})
}

func DeleteMe(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	if err := service.DeactivateAccount(database.GetDB(), claims.UserID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
