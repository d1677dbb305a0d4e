package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"kiraya_backend/internal/model"
	"kiraya_backend/internal/service"
	"kiraya_backend/pkg/database"
	"kiraya_backend/pkg/email"
	"kiraya_backend/pkg/utils/jwt"
	"kiraya_backend/pkg/utils/validation"
)

// serializeBooking projects a booking (with preloaded parties) for the
// given viewer. The counterparty's contact details appear only once the
// booking's contact_info_shared flag is set.
func serializeBooking(b *model.Booking, viewerRole model.Role) fiber.Map {
	out := fiber.Map{
		"id":                     b.ID,
		"status":                 b.Status,
		"request_date":           b.RequestDate,
		"desired_move_in_date":   b.DesiredMoveInDate,
		"desired_lease_duration": b.DesiredLeaseDuration,
		"message_from_tenant":    b.MessageFromTenant,
		"message_from_owner":     b.MessageFromOwner,
		"contact_info_shared":    b.ContactInfoShared,
		"property":               b.Property.Summary(),
		"created_at":             b.CreatedAt,
	}

	if viewerRole == model.RoleTenant {
		if b.ContactInfoShared {
			out["owner"] = b.Owner.GetContactProfile()
		} else {
			out["owner"] = b.Owner.GetPublicProfile()
		}
	} else {
		if b.ContactInfoShared {
			out["tenant"] = b.Tenant.GetContactProfile()
		} else {
			out["tenant"] = b.Tenant.GetPublicProfile()
		}
	}

	return out
}

// CreateBooking opens a pending booking request on a property.
func CreateBooking(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	propertyID, err := c.ParamsInt("propertyId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid property id",
		})
	}

	input := new(service.CreateBookingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid input",
		})
	}
	if err := validation.ValidateStruct(input); err != nil {
		return err
	}

	booking, err := service.CreateBooking(database.GetDB(), claims.UserID, uint(propertyID), *input)
	if err != nil {
		return err
	}

	populated, err := service.GetBooking(database.GetDB(), booking.ID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"booking": serializeBooking(populated, model.RoleTenant),
		},
	})
}

// ApproveBooking is the owner's accept: contact info is disclosed and the
// property comes off the market.
func ApproveBooking(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid booking id",
		})
	}

	booking, err := service.ApproveBooking(database.GetDB(), uint(id), claims.UserID)
	if err != nil {
		return err
	}

	populated, err := service.GetBooking(database.GetDB(), booking.ID)
	if err != nil {
		return err
	}

	if email.GlobalEmailService != nil {
		sendErr := email.GlobalEmailService.SendBookingDecisionEmail(populated.Tenant.Email, email.BookingDecisionData{
			Name:          populated.Tenant.GetFullName(),
			PropertyTitle: populated.Property.Title,
			Approved:      true,
			OwnerName:     populated.Owner.GetFullName(),
			OwnerEmail:    populated.Owner.Email,
			OwnerPhone:    populated.Owner.PhoneNumber,
		})
		if sendErr != nil {
			log.Printf("Could not send booking approval email: %v", sendErr)
		}
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"booking": serializeBooking(populated, model.RoleOwner),
		},
	})
}

// RejectBooking is the owner's decline; contact info stays hidden.
func RejectBooking(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid booking id",
		})
	}

	booking, err := service.RejectBooking(database.GetDB(), uint(id), claims.UserID)
	if err != nil {
		return err
	}

	populated, err := service.GetBooking(database.GetDB(), booking.ID)
	if err != nil {
		return err
	}

	if email.GlobalEmailService != nil {
		sendErr := email.GlobalEmailService.SendBookingDecisionEmail(populated.Tenant.Email, email.BookingDecisionData{
			Name:          populated.Tenant.GetFullName(),
			PropertyTitle: populated.Property.Title,
			Approved:      false,
		})
		if sendErr != nil {
			log.Printf("Could not send booking rejection email: %v", sendErr)
		}
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Booking rejected successfully",
		"data": fiber.Map{
			"booking": fiber.Map{
				"id":           populated.ID,
				"status":       populated.Status,
				"request_date": populated.RequestDate,
				"property_id":  populated.PropertyID,
			},
		},
	})
}

// MyBookings lists the caller's bookings: requests made for tenants,
// requests received for owners.
func MyBookings(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	bookings, err := service.ListBookingsForUser(database.GetDB(), claims.UserID, claims.Role)
	if err != nil {
		return err
	}

	serialized := make([]fiber.Map, 0, len(bookings))
	for i := range bookings {
		serialized = append(serialized, serializeBooking(&bookings[i], claims.Role))
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"results": len(serialized),
		"data": fiber.Map{
			"bookings": serialized,
		},
	})
}

// MyBookingForProperty is the tenant's status check for one property,
// including the owner's contact details once approved.
func MyBookingForProperty(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	propertyID, err := c.ParamsInt("propertyId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid property id",
		})
	}

	projection, err := service.BookingForProperty(database.GetDB(), claims.UserID, uint(propertyID))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   projection,
	})
}
