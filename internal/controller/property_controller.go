package controller

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"kiraya_backend/internal/model"
	"kiraya_backend/internal/service"
	"kiraya_backend/pkg/database"
	"kiraya_backend/pkg/utils/jwt"
	"kiraya_backend/pkg/utils/storage"
	"kiraya_backend/pkg/utils/validation"
)

// parseListingImages uploads the multipart "images" files and returns their
// URLs. The count cap is enforced here before any upload starts.
func parseListingImages(c *fiber.Ctx, ownerID uint, title string, existing int) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, nil
	}

	files := form.File["images"]
	if len(files) == 0 {
		return nil, nil
	}
	if existing+len(files) > 5 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "You can upload a maximum of 5 images per property")
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		if err := validation.ValidateImage(file); err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		url, err := storage.UploadPropertyImage(c.Context(), file, ownerID, title)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}

	return urls, nil
}

// parseListingInput reads the listing fields either from a JSON body or
// from the "data" part of a multipart form.
func parseListingInput(c *fiber.Ctx, dest interface{}) error {
	if data := c.FormValue("data"); data != "" {
		return json.Unmarshal([]byte(data), dest)
	}
	return c.BodyParser(dest)
}

// CreateProperty runs the entitlement-gated listing creation. Images ride
// along in the multipart form.
func CreateProperty(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(service.CreateListingInput)
	if err := parseListingInput(c, input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid input",
		})
	}
	if err := validation.ValidateStruct(input); err != nil {
		return err
	}

	urls, err := parseListingImages(c, claims.UserID, input.Title, 0)
	if err != nil {
		return err
	}
	input.Images = append(input.Images, urls...)

	property, err := service.CreateListing(database.GetDB(), claims.UserID, *input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"property": property,
		},
	})
}

// UpdateProperty applies a partial update; newly uploaded images are
// appended to the existing set. Ownership is checked by middleware.
func UpdateProperty(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid property id",
		})
	}

	input := new(service.UpdateListingInput)
	if err := parseListingInput(c, input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid input",
		})
	}
	if err := validation.ValidateStruct(input); err != nil {
		return err
	}

	existing, err := service.GetProperty(database.GetDB(), uint(id))
	if err != nil {
		return err
	}

	urls, err := parseListingImages(c, claims.UserID, existing.Title, len(existing.Images))
	if err != nil {
		return err
	}

	property, err := service.UpdateListing(database.GetDB(), uint(id), *input, urls)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"property": property,
		},
	})
}

// ListProperties is the public catalog, filterable via query params.
func ListProperties(c *fiber.Ctx) error {
	filters := service.PropertyFilters{
		City:               c.Query("city"),
		Region:             c.Query("region"),
		PropertyType:       model.PropertyType(c.Query("property_type")),
		AvailabilityStatus: model.AvailabilityStatus(c.Query("availability_status")),
		MinRent:            c.QueryFloat("min_rent"),
		MaxRent:            c.QueryFloat("max_rent"),
	}

	properties, err := service.ListActiveProperties(database.GetDB(), filters)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"results": len(properties),
		"data": fiber.Map{
			"properties": properties,
		},
	})
}

// GetProperty returns one listing with its owner's public profile, plan
// and reviews joined — an explicit projection per call site rather than a
// fetch hook.
func GetProperty(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid property id",
		})
	}

	property, err := service.GetProperty(database.GetDB(), uint(id))
	if err != nil {
		return err
	}

	reviews, err := service.ListReviewsForProperty(database.GetDB(), property.ID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"property": property,
			"owner":    property.Owner.GetPublicProfile(),
			"plan":     property.Plan,
			"reviews":  reviews,
		},
	})
}

// MyProperties lists the caller's own listings, plan-populated.
func MyProperties(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	properties, err := service.ListPropertiesForOwner(database.GetDB(), claims.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"results": len(properties),
		"data": fiber.Map{
			"properties": properties,
		},
	})
}

// VerifyProperty is the admin verification flag flip.
func VerifyProperty(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid property id",
		})
	}

	property, err := service.VerifyProperty(database.GetDB(), uint(id))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"property": property,
		},
	})
}

func DeleteProperty(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid property id",
		})
	}

	if err := service.DeleteProperty(database.GetDB(), uint(id)); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
