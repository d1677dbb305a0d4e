package apperror

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FromGorm translates storage level failures into the error taxonomy so
// callers never see raw gorm errors. notFoundMsg is used for missing rows.
func FromGorm(err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound("%s", notFoundMsg)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Conflict("Duplicate value violates a unique constraint")
	default:
		return err
	}
}

// Handler is the central fiber error handler. Recognised errors become a
// "fail" envelope with their status code; anything else is logged in full
// and reported as an internal error carrying the immediate cause, so
// callers are never left staring at a generic failure text.
func Handler(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return c.Status(appErr.Code).JSON(fiber.Map{
			"status":  "fail",
			"message": appErr.Message,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"status":  "fail",
			"message": fiberErr.Message,
		})
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": "Resource not found",
		})
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":  "fail",
			"message": "Duplicate value violates a unique constraint",
		})
	}

	log.Printf("unhandled error: %+v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"status":  "error",
		"message": err.Error(),
	})
}
