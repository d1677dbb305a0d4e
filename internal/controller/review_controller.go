package controller

import (
	"github.com/gofiber/fiber/v2"

	"kiraya_backend/internal/service"
	"kiraya_backend/pkg/database"
	"kiraya_backend/pkg/utils/jwt"
	"kiraya_backend/pkg/utils/validation"
)

type CreateReviewBody struct {
	PropertyID uint   `json:"property_id" validate:"required"`
	Review     string `json:"review" validate:"required,min=10,max=1000"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
}

// CreateReview admits a review from a tenant with an approved booking on
// the property. The booking reference is resolved server-side.
func CreateReview(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	body := new(CreateReviewBody)
	if err := c.BodyParser(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid input",
		})
	}
	if err := validation.ValidateStruct(body); err != nil {
		return err
	}

	review, err := service.CreateReview(database.GetDB(), claims.UserID, body.PropertyID, service.CreateReviewInput{
		Review: body.Review,
		Rating: body.Rating,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"review": review,
		},
	})
}

// GetReviewsByProperty lists a property's reviews with tenant and booking
// summaries joined.
func GetReviewsByProperty(c *fiber.Ctx) error {
	propertyID, err := c.ParamsInt("propertyId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid property id",
		})
	}

	reviews, err := service.ListReviewsForProperty(database.GetDB(), uint(propertyID))
	if err != nil {
		return err
	}

	serialized := make([]fiber.Map, 0, len(reviews))
	for i := range reviews {
		r := &reviews[i]
		serialized = append(serialized, fiber.Map{
			"id":         r.ID,
			"review":     r.Review,
			"rating":     r.Rating,
			"created_at": r.CreatedAt,
			"property": fiber.Map{
				"id":      r.Property.ID,
				"title":   r.Property.Title,
				"address": r.Property.Address,
			},
			"tenant": fiber.Map{
				"id":        r.Tenant.ID,
				"full_name": r.Tenant.GetFullName(),
				"photo":     r.Tenant.Photo,
			},
			"booking": fiber.Map{
				"id":     r.Booking.ID,
				"status": r.Booking.Status,
			},
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"results": len(serialized),
		"data": fiber.Map{
			"reviews": serialized,
		},
	})
}

func UpdateReview(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid review id",
		})
	}

	input := new(service.CreateReviewInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid input",
		})
	}
	if err := validation.ValidateStruct(input); err != nil {
		return err
	}

	review, err := service.UpdateReview(database.GetDB(), uint(id), claims.UserID, claims.Role, *input)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"review": review,
		},
	})
}

func DeleteReview(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid review id",
		})
	}

	if err := service.DeleteReview(database.GetDB(), uint(id), claims.UserID, claims.Role); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
